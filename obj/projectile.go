package obj

import (
	"image/color"

	"github.com/jakecoffman/cp"

	"github.com/milk9111/roomscroller/atlas"
	"github.com/milk9111/roomscroller/common"
	"github.com/milk9111/roomscroller/levels"
	"github.com/milk9111/roomscroller/prefabs"
)

// Projectile is a pooled shot. It ignores gravity and moves freely;
// solid tiles only end it.
type Projectile struct {
	Entity
	Damage    int
	lifeTimer float64
	lifetime  float64
}

// ProjectilePool is a fixed set of projectiles owned by one shooter.
// Spawning into a full pool is a no-op.
type ProjectilePool struct {
	items  []Projectile
	spec   prefabs.ProjectileSpec
	sprite uint32
	tint   color.RGBA
}

// NewProjectilePool allocates spec.Count projectiles up front.
func NewProjectilePool(spec prefabs.ProjectileSpec) *ProjectilePool {
	n := spec.Count
	if n < 0 {
		n = 0
	}
	return &ProjectilePool{
		items:  make([]Projectile, n),
		spec:   spec,
		sprite: atlas.InvalidSlot,
		tint:   spec.Tint.ToRGBA(),
	}
}

// BindSprite resolves the projectile sprite key.
func (p *ProjectilePool) BindSprite(a *atlas.Atlas) {
	if p == nil || a == nil {
		return
	}
	p.sprite = a.Find(p.spec.Sprite.Key)
}

func (p *ProjectilePool) Cap() int {
	if p == nil {
		return 0
	}
	return len(p.items)
}

// Active counts live projectiles.
func (p *ProjectilePool) Active() int {
	if p == nil {
		return 0
	}
	n := 0
	for i := range p.items {
		if p.items[i].Active {
			n++
		}
	}
	return n
}

// Spawn fires a projectile from pos in direction dir (normalized here).
// It returns false when every slot is in use.
func (p *ProjectilePool) Spawn(pos, dir cp.Vector) bool {
	if p == nil {
		return false
	}
	for i := range p.items {
		pr := &p.items[i]
		if pr.Active {
			continue
		}
		*pr = Projectile{}
		pr.Active = true
		pr.Pos = pos
		pr.PrevPos = pos
		pr.SetCollider(p.spec.Collider)
		if dir.LengthSq() > 0 {
			dir = dir.Normalize()
		}
		pr.Vel = dir.Mult(p.spec.Speed)
		pr.FlipH = dir.X < 0
		pr.Sprite = p.sprite
		pr.Damage = p.spec.Damage
		pr.lifetime = p.spec.Lifetime
		return true
	}
	return false
}

// Update ages and moves every live projectile. A projectile whose
// lifetime has run out, or that ends the step inside a solid cell of the
// given rooms, is deactivated.
func (p *ProjectilePool) Update(w *levels.World, rooms *RoomSet, dt float64) {
	if p == nil {
		return
	}
	for i := range p.items {
		pr := &p.items[i]
		if !pr.Active {
			continue
		}
		pr.lifeTimer += dt
		if pr.lifeTimer >= pr.lifetime {
			pr.Active = false
			continue
		}
		pr.PrevPos = pr.Pos
		pr.Pos = pr.Pos.Add(pr.Vel.Mult(dt))
		if w != nil && rooms != nil && SolidOverlap(w, rooms, pr.Box()) {
			pr.Active = false
		}
	}
}

// Hit deactivates the first live projectile overlapping box and returns
// its damage.
func (p *ProjectilePool) Hit(box common.Rect) (int, bool) {
	if p == nil {
		return 0, false
	}
	for i := range p.items {
		pr := &p.items[i]
		if pr.Active && pr.Box().Intersects(box) {
			pr.Active = false
			return pr.Damage, true
		}
	}
	return 0, false
}

// Each calls fn for every live projectile.
func (p *ProjectilePool) Each(fn func(*Projectile)) {
	if p == nil {
		return
	}
	for i := range p.items {
		if p.items[i].Active {
			fn(&p.items[i])
		}
	}
}

func (p *ProjectilePool) Tint() color.RGBA { return p.tint }

// Reset deactivates every projectile.
func (p *ProjectilePool) Reset() {
	if p == nil {
		return
	}
	for i := range p.items {
		p.items[i].Active = false
	}
}
