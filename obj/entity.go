package obj

import (
	"github.com/jakecoffman/cp"

	"github.com/milk9111/roomscroller/atlas"
	"github.com/milk9111/roomscroller/common"
	"github.com/milk9111/roomscroller/component"
	"github.com/milk9111/roomscroller/prefabs"
)

// Entity is the state shared by every moving object. Pos is the anchor
// point; the collision box starts at Pos-Origin and is CollSize large.
type Entity struct {
	Active   bool
	Pos      cp.Vector
	PrevPos  cp.Vector
	Vel      cp.Vector
	Origin   cp.Vector
	CollSize cp.Vector
	Grounded bool
	FlipH    bool

	Sprite uint32
	Sheet  *component.SpriteSheet
	Anim   component.Animator
}

// Box returns the world-space collision box.
func (e *Entity) Box() common.Rect {
	return common.NewRect(e.Pos.Sub(e.Origin), e.CollSize)
}

// Center is the middle of the collision box.
func (e *Entity) Center() cp.Vector {
	return e.Box().Center()
}

// SetCollider applies a prefab collider.
func (e *Entity) SetCollider(c prefabs.ColliderSpec) {
	e.CollSize = cp.Vector{X: c.Width, Y: c.Height}
	e.Origin = cp.Vector{X: c.OriginX, Y: c.OriginY}
}

// BindSprite resolves a sprite key once at load time. Sprites without a
// sheet draw their whole atlas region.
func (e *Entity) BindSprite(a *atlas.Atlas, key string) {
	e.Sprite = a.Find(key)
	e.Sheet = a.Sheet(e.Sprite)
}

// Play switches animation unless it is already running.
func (e *Entity) Play(anim int) {
	e.Anim.Play(e.Sheet, anim)
}

func (e *Entity) animate(dt float64) {
	e.Anim.Update(dt, e.Sheet)
}

func applyGravity(e *Entity, gravity, maxFall, dt float64) {
	e.Vel.Y += gravity * dt
	if maxFall > 0 && e.Vel.Y > maxFall {
		e.Vel.Y = maxFall
	}
}
