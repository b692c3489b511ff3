package render

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/milk9111/roomscroller/atlas"
)

// Submitter draws queues with ebiten. The atlas is uploaded to the GPU once.
type Submitter struct {
	atlas *atlas.Atlas
	image *ebiten.Image
	clear color.Color
}

// NewSubmitter uploads a packed atlas. clear is the background colour; nil
// leaves the screen as ebiten hands it over.
func NewSubmitter(a *atlas.Atlas, clear color.Color) *Submitter {
	return &Submitter{
		atlas: a,
		image: ebiten.NewImageFromImage(a.RGBA()),
		clear: clear,
	}
}

// Submit draws every command of q onto screen in order.
func (s *Submitter) Submit(screen *ebiten.Image, q *Queue) {
	if s == nil || screen == nil || q == nil {
		return
	}
	if s.clear != nil {
		screen.Fill(s.clear)
	}
	for _, cmd := range q.Commands() {
		sprite := s.atlas.Sprite(cmd.Slot)
		if sprite == nil || !sprite.Placed {
			continue
		}
		src := SourceRect(sprite.Rect(), cmd.Src)
		if src.Empty() || cmd.Dst.Empty() {
			continue
		}
		sub, ok := s.image.SubImage(src).(*ebiten.Image)
		if !ok {
			continue
		}

		op := &ebiten.DrawImageOptions{}
		sw, sh := float64(src.Dx()), float64(src.Dy())
		sx, sy := 1.0, 1.0
		if cmd.FlipH {
			sx = -1
			op.GeoM.Translate(-sw, 0)
		}
		if cmd.FlipV {
			sy = -1
			op.GeoM.Translate(0, -sh)
		}
		op.GeoM.Scale(sx, sy)
		op.GeoM.Scale(float64(cmd.Dst.Dx())/sw, float64(cmd.Dst.Dy())/sh)
		op.GeoM.Translate(float64(cmd.Dst.Min.X), float64(cmd.Dst.Min.Y))
		if cmd.Tint != (color.RGBA{}) {
			op.ColorScale.ScaleWithColor(cmd.Tint)
		}
		screen.DrawImage(sub, op)
	}
}

// Dispose frees the GPU copy of the atlas.
func (s *Submitter) Dispose() {
	if s == nil || s.image == nil {
		return
	}
	s.image.Deallocate()
	s.image = nil
}
