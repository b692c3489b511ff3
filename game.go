package main

import (
	"fmt"
	"image/color"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/colornames"

	"github.com/milk9111/roomscroller/common"
	"github.com/milk9111/roomscroller/config"
	"github.com/milk9111/roomscroller/obj"
	"github.com/milk9111/roomscroller/render"
	"github.com/milk9111/roomscroller/system"
)

var clearColor = color.RGBA{R: 0x1d, G: 0x1a, B: 0x2b, A: 0xff}

// Game drives a system.Context from ebiten. ebiten paces Update at the
// configured tick rate; each tick advances by the measured time since the
// previous one.
type Game struct {
	ctx       *system.Context
	reload    *system.Reloader
	submitter *render.Submitter
	pauseUI   *ebitenui.UI
	debug     config.DebugConfig
	pacer     *system.Pacer

	paused bool
	quit   bool
}

func NewGame(ctx *system.Context, reload *system.Reloader, c config.Config) *Game {
	g := &Game{
		ctx:       ctx,
		reload:    reload,
		submitter: render.NewSubmitter(ctx.Atlas, clearColor),
		debug:     c.Debug,
		pacer:     system.NewPacer(c.Timing.TargetFPS, c.Timing.MaxDelta),
	}
	g.pauseUI = NewPauseUI(g)
	return g
}

func (g *Game) Update() error {
	if g.quit {
		return ebiten.Termination
	}
	dt := g.pacer.Measure()
	in := &g.ctx.Input
	pollInput(in)
	if in.Pressed(obj.ActionStart) {
		g.paused = !g.paused
	}
	if in.Pressed(obj.ActionSelect) {
		g.debug.Collision = !g.debug.Collision
	}
	if g.paused {
		g.pauseUI.Update()
		in.EndFrame()
		return nil
	}

	g.reload.Poll()
	g.ctx.Tick(dt)
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.ctx.Render(g.ctx.Queue)
	g.submitter.Submit(screen, g.ctx.Queue)

	if g.debug.Collision {
		g.drawCollision(screen)
	}
	if g.debug.Overlay {
		p := g.ctx.Player
		ebitenutil.DebugPrint(screen, fmt.Sprintf(
			"FPS %.0f TPS %.0f\nroom %d rooms %d/%d\n%s hp %d\ndraws %d",
			ebiten.ActualFPS(), ebiten.ActualTPS(),
			g.ctx.Camera.Room, g.ctx.Rooms.Player.Len(), g.ctx.Rooms.Process.Len(),
			p.State, p.Health.Current, g.ctx.Queue.Len(),
		))
	}
	if g.paused {
		g.pauseUI.Draw(screen)
	}
}

// drawCollision outlines the processed rooms, every collider and the
// solid cells around the player.
func (g *Game) drawCollision(screen *ebiten.Image) {
	view := g.ctx.Camera.ViewRect()
	stroke := func(r common.Rect, c color.Color) {
		vector.StrokeRect(screen,
			float32(r.X-view.X), float32(r.Y-view.Y), float32(r.Width), float32(r.Height),
			1, c, false)
	}

	w := g.ctx.World
	set := &g.ctx.Rooms.Process
	for i := 0; i < set.Len(); i++ {
		stroke(w.Room(set.At(i)).Box(), colornames.Yellow)
	}

	players := &g.ctx.Rooms.Player
	for i := 0; i < players.Len(); i++ {
		ri := players.At(i)
		l := w.CollisionLayer(ri)
		if l == nil {
			continue
		}
		room := w.Room(ri)
		cell := float64(l.CellSize)
		for cy := 0; cy < int(l.HeightCells); cy++ {
			for cx := 0; cx < int(l.WidthCells); cx++ {
				if !w.SolidAt(ri, cx, cy) {
					continue
				}
				r := common.Rect{X: float64(room.WorldX) + float64(cx)*cell, Y: float64(room.WorldY) + float64(cy)*cell, Width: cell, Height: cell}
				if r.Intersects(view) {
					stroke(r, colornames.Slategray)
				}
			}
		}
	}

	for _, e := range g.ctx.Enemies {
		if e.Active {
			c := colornames.Orange
			if e.Alert {
				c = colornames.Red
			}
			stroke(e.Box(), c)
		}
		e.Shots.Each(func(pr *obj.Projectile) { stroke(pr.Box(), colornames.Red) })
	}
	p := g.ctx.Player
	if p.Active {
		c := colornames.Lime
		if p.Grounded {
			c = colornames.Cyan
		}
		stroke(p.Box(), c)
	}
	p.Shots.Each(func(pr *obj.Projectile) { stroke(pr.Box(), colornames.Lime) })
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return int(g.ctx.Camera.ViewW), int(g.ctx.Camera.ViewH)
}

// Overruns counts ticks that arrived late.
func (g *Game) Overruns() int { return g.pacer.Overruns }

// Close releases the GPU atlas.
func (g *Game) Close() {
	g.submitter.Dispose()
}
