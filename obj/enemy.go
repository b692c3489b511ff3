package obj

import (
	"github.com/charmbracelet/log"
	"github.com/jakecoffman/cp"

	"github.com/milk9111/roomscroller/atlas"
	"github.com/milk9111/roomscroller/component"
	"github.com/milk9111/roomscroller/levels"
	"github.com/milk9111/roomscroller/prefabs"
)

// Enemy patrols back and forth until the player comes within detection
// range, then stops, faces the player and fires on a cooldown. A Brain,
// when present, replaces the built-in patrol and fire decision.
type Enemy struct {
	Entity
	Kind   string
	Spec   *prefabs.EnemySpec
	Health component.Health
	Shots  *ProjectilePool
	Rooms  RoomSet
	Alert  bool

	brain       *prefabs.Brain
	patrolTimer float64
	fireTimer   float64
	brainFailed bool
}

// NewEnemy builds an enemy of the given marker kind. brain may be nil.
func NewEnemy(kind string, spec *prefabs.EnemySpec, brain *prefabs.Brain) *Enemy {
	e := &Enemy{
		Kind:   kind,
		Spec:   spec,
		Health: component.NewHealth(spec.Health),
		Shots:  NewProjectilePool(spec.Projectile),
		brain:  brain,
	}
	e.Sprite = atlas.InvalidSlot
	e.SetCollider(spec.Collider)
	return e
}

func (e *Enemy) BindSprites(a *atlas.Atlas) {
	if e == nil || a == nil {
		return
	}
	e.BindSprite(a, e.Spec.Sprite.Key)
	e.Shots.BindSprite(a)
	e.Anim.Restart(e.Sheet, e.Spec.Animation.Idle)
}

// Place activates the enemy at pos.
func (e *Enemy) Place(pos cp.Vector) {
	if e == nil {
		return
	}
	e.Active = true
	e.Pos = pos
	e.PrevPos = pos
	e.Vel = cp.Vector{}
	e.Health.Reset()
	e.patrolTimer = 0
	e.fireTimer = 0
	e.Alert = false
}

// SetBrain swaps the behaviour script, e.g. after a prefab reload.
func (e *Enemy) SetBrain(b *prefabs.Brain) {
	if e == nil {
		return
	}
	e.brain = b
	e.brainFailed = false
}

// Update runs one enemy tick. The enemy collides against the rooms its own
// box overlaps. Its projectiles are advanced separately by UpdateShots.
func (e *Enemy) Update(w *levels.World, player *Player, dt float64) {
	if e == nil || !e.Active {
		return
	}
	spec := e.Spec

	e.Health.Tick(dt)
	e.patrolTimer += dt
	if e.patrolTimer > 2*spec.PatrolTime {
		e.patrolTimer = 0
	}

	var toPlayer cp.Vector
	var dist float64
	seen := player != nil && player.Active && !player.Dead()
	if seen {
		toPlayer = player.Center().Sub(e.Center())
		dist = toPlayer.Length()
	}
	alert := seen && dist <= spec.DetectionDistance
	if alert != e.Alert {
		e.Alert = alert
		if alert {
			e.Play(spec.Animation.Alert)
		} else {
			e.fireTimer = 0
			e.Play(spec.Animation.Move)
		}
	}

	vx, fire := e.decide(toPlayer, dist, dt)
	e.Vel.X = vx
	switch {
	case e.Alert && toPlayer.X != 0:
		e.FlipH = toPlayer.X < 0
	case vx != 0:
		e.FlipH = vx < 0
	}

	if fire {
		e.fireTimer += dt
		if e.fireTimer >= spec.FireCooldown {
			e.fireTimer = 0
			e.Shots.Spawn(e.Center(), toPlayer)
		}
	}

	applyGravity(&e.Entity, spec.Gravity, spec.MaxFallSpeed, dt)
	if w != nil {
		CollectRooms(w, e.Box(), &e.Rooms)
		MoveWithCollision(w, &e.Rooms, &e.Entity, dt)
	} else {
		e.PrevPos = e.Pos
		e.Pos = e.Pos.Add(e.Vel.Mult(dt))
	}
	e.animate(dt)
}

func (e *Enemy) decide(toPlayer cp.Vector, dist, dt float64) (float64, bool) {
	spec := e.Spec
	if e.brain != nil && !e.brainFailed {
		out, err := e.brain.Think(prefabs.BrainInput{
			T:          e.patrolTimer,
			DT:         dt,
			DX:         toPlayer.X,
			DY:         toPlayer.Y,
			Dist:       dist,
			Alert:      e.Alert,
			Speed:      spec.PatrolSpeed,
			PatrolTime: spec.PatrolTime,
		})
		if err == nil {
			return out.VX, out.Fire
		}
		log.Warn("enemy script failed, using patrol", "kind", e.Kind, "script", e.brain.Path(), "err", err)
		e.brainFailed = true
	}
	if e.Alert {
		return 0, true
	}
	if e.patrolTimer <= spec.PatrolTime {
		return spec.PatrolSpeed, false
	}
	return -spec.PatrolSpeed, false
}

// UpdateShots advances this enemy's projectiles. Shots keep flying after
// their owner dies.
func (e *Enemy) UpdateShots(w *levels.World, rooms *RoomSet, dt float64) {
	if e == nil {
		return
	}
	e.Shots.Update(w, rooms, dt)
}

// Hurt damages the enemy and deactivates it on death.
func (e *Enemy) Hurt(amount int) bool {
	if e == nil || !e.Active {
		return false
	}
	if !e.Health.ApplyDamage(amount, 0) {
		return false
	}
	if !e.Health.IsAlive() {
		e.Active = false
		log.Debug("enemy died", "kind", e.Kind)
	}
	return true
}
