package obj

import (
	"github.com/charmbracelet/log"
	"github.com/jakecoffman/cp"

	"github.com/milk9111/roomscroller/atlas"
	"github.com/milk9111/roomscroller/component"
	"github.com/milk9111/roomscroller/levels"
	"github.com/milk9111/roomscroller/prefabs"
)

type PlayerState uint8

const (
	PlayerIdle PlayerState = iota
	PlayerRunning
	PlayerJumping
	PlayerFalling
	PlayerDead
)

func (s PlayerState) String() string {
	switch s {
	case PlayerIdle:
		return "idle"
	case PlayerRunning:
		return "running"
	case PlayerJumping:
		return "jumping"
	case PlayerFalling:
		return "falling"
	case PlayerDead:
		return "dead"
	}
	return "unknown"
}

// jumpCutFactor scales upward velocity when A is released mid-jump.
const jumpCutFactor = 0.5

type Player struct {
	Entity
	Spec   *prefabs.PlayerSpec
	State  PlayerState
	Health component.Health
	Shots  *ProjectilePool
	Spawn  cp.Vector

	coyote     float64
	jumpBuffer float64
	fireTimer  float64
	facing     float64
}

// NewPlayer builds a player from its prefab. The player is inactive until
// Respawn places it.
func NewPlayer(spec *prefabs.PlayerSpec) *Player {
	p := &Player{
		Spec:   spec,
		Health: component.NewHealth(spec.Health),
		Shots:  NewProjectilePool(spec.Projectile),
		facing: 1,
	}
	p.Sprite = atlas.InvalidSlot
	p.SetCollider(spec.Collider)
	return p
}

// BindSprites resolves the player and shot sprites after the atlas is packed.
func (p *Player) BindSprites(a *atlas.Atlas) {
	if p == nil || a == nil {
		return
	}
	p.BindSprite(a, p.Spec.Sprite.Key)
	p.Shots.BindSprite(a)
	p.Anim.Restart(p.Sheet, p.Spec.Animation.Idle)
}

// Respawn revives the player at pos with full health.
func (p *Player) Respawn(pos cp.Vector) {
	if p == nil {
		return
	}
	p.Spawn = pos
	p.Active = true
	p.Pos = pos
	p.PrevPos = pos
	p.Vel = cp.Vector{}
	p.Grounded = false
	p.Health.Reset()
	p.Shots.Reset()
	p.coyote, p.jumpBuffer, p.fireTimer = 0, 0, 0
	p.setState(PlayerFalling)
}

func (p *Player) Facing() float64 { return p.facing }

// Update runs one tick: timers, input decisions, gravity, collision
// against rooms, then state and animation.
func (p *Player) Update(in *Input, w *levels.World, rooms *RoomSet, dt float64) {
	if p == nil || !p.Active || p.State == PlayerDead {
		return
	}
	spec := p.Spec

	p.Health.Tick(dt)
	p.coyote -= dt
	p.jumpBuffer -= dt
	p.fireTimer -= dt

	move := in.AxisX()
	p.Vel.X = move * spec.MoveSpeed
	if move != 0 {
		p.facing = move
	}
	p.FlipH = p.facing < 0

	if in.Pressed(ActionA) {
		p.jumpBuffer = spec.JumpBuffer
	}
	if p.jumpBuffer > 0 && (p.Grounded || p.coyote > 0) {
		p.Vel.Y = -spec.JumpSpeed
		p.jumpBuffer = 0
		p.coyote = 0
		p.Grounded = false
		p.setState(PlayerJumping)
	}
	if in.Released(ActionA) && p.Vel.Y < 0 {
		p.Vel.Y *= jumpCutFactor
	}

	if in.Pressed(ActionB) && p.fireTimer <= 0 {
		muzzle := p.Center()
		if p.Shots.Spawn(muzzle, cp.Vector{X: p.facing}) {
			p.fireTimer = spec.FireCooldown
		}
	}

	applyGravity(&p.Entity, spec.Gravity, spec.MaxFallSpeed, dt)
	if w != nil && rooms != nil {
		MoveWithCollision(w, rooms, &p.Entity, dt)
	} else {
		p.PrevPos = p.Pos
		p.Pos = p.Pos.Add(p.Vel.Mult(dt))
	}

	if p.Grounded {
		p.coyote = spec.CoyoteTime
	}
	p.updateState(move)
	p.animate(dt)
}

// UpdateShots advances the player's projectiles against rooms.
func (p *Player) UpdateShots(w *levels.World, rooms *RoomSet, dt float64) {
	if p == nil {
		return
	}
	p.Shots.Update(w, rooms, dt)
}

func (p *Player) updateState(move float64) {
	switch {
	case p.Grounded && move != 0:
		p.setState(PlayerRunning)
	case p.Grounded:
		p.setState(PlayerIdle)
	case p.Vel.Y < 0:
		p.setState(PlayerJumping)
	default:
		p.setState(PlayerFalling)
	}
}

func (p *Player) setState(s PlayerState) {
	if p.State == s {
		return
	}
	log.Debug("player state", "from", p.State, "to", s)
	p.State = s
	switch s {
	case PlayerIdle:
		p.Play(p.Spec.Animation.Idle)
	case PlayerRunning:
		p.Play(p.Spec.Animation.Move)
	case PlayerJumping, PlayerFalling:
		p.Play(p.Spec.Animation.Air)
	}
}

// Hurt applies damage unless the player is invulnerable. A killing blow
// moves the player to the dead state.
func (p *Player) Hurt(amount int) bool {
	if p == nil || !p.Active {
		return false
	}
	if !p.Health.ApplyDamage(amount, p.Spec.Invulnerable) {
		return false
	}
	if p.Spec.ContactKnockUp > 0 {
		p.Vel.Y = -p.Spec.ContactKnockUp
	}
	if !p.Health.IsAlive() {
		p.setState(PlayerDead)
		p.Vel = cp.Vector{}
	}
	return true
}

// Invulnerable reports whether the post-hit window is running.
func (p *Player) Invulnerable() bool {
	return p != nil && p.Health.Invuln > 0
}

func (p *Player) Dead() bool {
	return p != nil && p.State == PlayerDead
}
