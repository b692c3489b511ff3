package system

import (
	"image"
	"image/color"
	"math"

	"github.com/milk9111/roomscroller/atlas"
	"github.com/milk9111/roomscroller/levels"
	"github.com/milk9111/roomscroller/obj"
	"github.com/milk9111/roomscroller/render"
)

// Render fills q with this frame's draw commands in screen space: tile
// layers of the processed rooms (bottom layer first), enemies and their
// shots, then the player and its shots. Off-screen commands are culled.
func (c *Context) Render(q *render.Queue) {
	if c == nil || c.World == nil || q == nil {
		return
	}
	q.Reset()
	view := c.Camera.ViewRect()
	ox, oy := int(math.Floor(view.X)), int(math.Floor(view.Y))
	vw, vh := int(view.Width), int(view.Height)

	set := &c.Rooms.Process
	for i := 0; i < set.Len(); i++ {
		c.renderRoom(q, set.At(i), ox, oy, vw, vh)
	}

	for _, e := range c.Enemies {
		if e.Active {
			c.pushActor(q, &e.Entity, color.RGBA{}, ox, oy, vw, vh)
		}
		c.pushShots(q, e.Shots, ox, oy, vw, vh)
	}

	p := c.Player
	if p.Active {
		var tint color.RGBA
		if p.Invulnerable() && blink(p.Health.Invuln) {
			tint = p.Spec.HurtTint.ToRGBA()
		}
		c.pushActor(q, &p.Entity, tint, ox, oy, vw, vh)
	}
	c.pushShots(q, p.Shots, ox, oy, vw, vh)
}

func (c *Context) renderRoom(q *render.Queue, ri, ox, oy, vw, vh int) {
	room := c.World.Room(ri)
	layers := c.World.Layers(ri)
	for li := len(layers) - 1; li >= 0; li-- {
		l := &layers[li]
		if l.Kind != levels.LayerTiles {
			continue
		}
		ts := c.World.Tileset(l)
		if ts == nil || ts.Slot == atlas.InvalidSlot {
			continue
		}
		cell := int(l.CellSize)
		for _, t := range c.World.Tiles(l) {
			alpha := t.Alpha * l.Opacity
			if alpha <= 0 {
				continue
			}
			x := int(room.WorldX+t.LayerX) - ox
			y := int(room.WorldY+t.LayerY) - oy
			dst := image.Rect(x, y, x+cell, y+cell)
			if !render.Visible(dst, vw, vh) {
				continue
			}
			q.Push(render.DrawCmd{
				Dst:   dst,
				Src:   image.Rect(int(t.SrcX), int(t.SrcY), int(t.SrcX)+cell, int(t.SrcY)+cell),
				Slot:  ts.Slot,
				FlipH: t.Flip&levels.FlipX != 0,
				FlipV: t.Flip&levels.FlipY != 0,
				Tint:  alphaTint(alpha),
			})
		}
	}
}

// alphaTint fades a sprite by a premultiplied colour scale. Full opacity
// draws untinted; callers skip fully transparent tiles.
func alphaTint(alpha float32) color.RGBA {
	if alpha >= 1 {
		return color.RGBA{}
	}
	a := uint8(math.Round(float64(alpha) * 255))
	return color.RGBA{R: a, G: a, B: a, A: a}
}

// pushActor draws an entity with its sprite bottom-centred on Pos.
func (c *Context) pushActor(q *render.Queue, e *obj.Entity, tint color.RGBA, ox, oy, vw, vh int) {
	if e.Sprite == atlas.InvalidSlot {
		return
	}
	src := e.Anim.Src(e.Sheet)
	w, h := c.frameSize(e.Sprite, src)
	x := int(math.Round(e.Pos.X)) - w/2 - ox
	y := int(math.Round(e.Pos.Y)) - h - oy
	dst := image.Rect(x, y, x+w, y+h)
	if !render.Visible(dst, vw, vh) {
		return
	}
	q.Push(render.DrawCmd{Dst: dst, Src: src, Slot: e.Sprite, FlipH: e.FlipH, Tint: tint})
}

// pushShots draws live projectiles centred on their position.
func (c *Context) pushShots(q *render.Queue, pool *obj.ProjectilePool, ox, oy, vw, vh int) {
	tint := pool.Tint()
	pool.Each(func(pr *obj.Projectile) {
		if pr.Sprite == atlas.InvalidSlot {
			return
		}
		w, h := c.frameSize(pr.Sprite, image.Rectangle{})
		x := int(math.Round(pr.Pos.X)) - w/2 - ox
		y := int(math.Round(pr.Pos.Y)) - h/2 - oy
		dst := image.Rect(x, y, x+w, y+h)
		if !render.Visible(dst, vw, vh) {
			return
		}
		q.Push(render.DrawCmd{Dst: dst, Slot: pr.Sprite, FlipH: pr.FlipH, Tint: tint})
	})
}

// frameSize is the size of the current frame, or of the whole atlas region
// for sprites without a sheet.
func (c *Context) frameSize(slot uint32, src image.Rectangle) (int, int) {
	if !src.Empty() {
		return src.Dx(), src.Dy()
	}
	s := c.Atlas.Sprite(slot)
	if s == nil {
		return 0, 0
	}
	return s.W, s.H
}

// blink alternates every tenth of a second.
func blink(t float64) bool {
	return int(t*10)%2 == 0
}
