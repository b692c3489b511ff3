package obj

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/roomscroller/prefabs"
)

func testEnemySpec() *prefabs.EnemySpec {
	return &prefabs.EnemySpec{
		Name:              "enemy",
		Collider:          prefabs.ColliderSpec{Width: 12, Height: 14, OriginX: 6, OriginY: 14},
		PatrolSpeed:       20,
		PatrolTime:        2,
		DetectionDistance: 64,
		FireCooldown:      0.5,
		Health:            2,
		ContactDamage:     1,
		Projectile:        prefabs.ProjectileSpec{Count: 4, Speed: 100, Lifetime: 5, Damage: 1},
	}
}

func testPlayerAt(x, y float64) *Player {
	p := NewPlayer(testPlayerSpec())
	p.Respawn(cp.Vector{X: x, Y: y})
	return p
}

func TestEnemyPatrol(t *testing.T) {
	e := NewEnemy("Enemy", testEnemySpec(), nil)
	e.Place(cp.Vector{})

	var xs []float64
	for i := 0; i < 9; i++ {
		e.Update(nil, nil, 0.5)
		xs = append(xs, e.Vel.X)
	}
	require.Equal(t, []float64{20, 20, 20, 20, -20, -20, -20, -20, 20}, xs)
	require.False(t, e.Alert)
	require.InDelta(t, 20*0.5*5-20*0.5*4, e.Pos.X, 1e-9)
}

func TestEnemyDetectionAndCooldown(t *testing.T) {
	e := NewEnemy("Enemy", testEnemySpec(), nil)
	e.Place(cp.Vector{X: 100, Y: 100})
	player := testPlayerAt(150, 100)

	e.Update(nil, player, 0.25)
	require.True(t, e.Alert)
	require.Zero(t, e.Vel.X)
	require.Zero(t, e.Shots.Active())

	e.Update(nil, player, 0.25)
	require.Equal(t, 1, e.Shots.Active())
	e.Shots.Each(func(p *Projectile) {
		require.Greater(t, p.Vel.X, 0.0)
	})

	// leaving range resets the cooldown
	e.Update(nil, player, 0.25)
	player.Pos.X = 400
	e.Update(nil, player, 0.25)
	require.False(t, e.Alert)
	player.Pos.X = 150
	e.Update(nil, player, 0.25)
	require.True(t, e.Alert)
	require.Equal(t, 1, e.Shots.Active())
	e.Update(nil, player, 0.25)
	require.Equal(t, 2, e.Shots.Active())
}

func TestEnemyFullPoolDropsShot(t *testing.T) {
	spec := testEnemySpec()
	spec.Projectile.Count = 1
	spec.FireCooldown = 0.25
	e := NewEnemy("Enemy", spec, nil)
	e.Place(cp.Vector{X: 100, Y: 100})
	player := testPlayerAt(130, 100)

	for i := 0; i < 4; i++ {
		e.Update(nil, player, 0.25)
	}
	require.Equal(t, 1, e.Shots.Active())
}

func TestEnemyIgnoresDeadPlayer(t *testing.T) {
	e := NewEnemy("Enemy", testEnemySpec(), nil)
	e.Place(cp.Vector{X: 100, Y: 100})
	player := testPlayerAt(120, 100)
	player.Hurt(100)
	require.True(t, player.Dead())

	e.Update(nil, player, 0.25)
	require.False(t, e.Alert)
}

func TestEnemyDeath(t *testing.T) {
	e := NewEnemy("Enemy", testEnemySpec(), nil)
	e.Place(cp.Vector{})
	require.True(t, e.Hurt(1))
	require.True(t, e.Active)
	require.True(t, e.Hurt(1))
	require.False(t, e.Active)
	require.False(t, e.Hurt(1))

	// inactive enemies do not move
	e.Update(nil, nil, 1)
	require.Equal(t, cp.Vector{}, e.Pos)
}

func TestEnemyBrain(t *testing.T) {
	brain, err := prefabs.CompileBrain("scripts/chase.tengo")
	require.NoError(t, err)

	spec := testEnemySpec()
	spec.PatrolSpeed = 35
	spec.DetectionDistance = 96
	e := NewEnemy("Chaser", spec, brain.Clone())
	e.Place(cp.Vector{X: 100, Y: 100})
	player := testPlayerAt(180, 100)

	e.Update(nil, player, 0.1)
	require.True(t, e.Alert)
	require.Equal(t, 35.0, e.Vel.X)
	require.False(t, e.FlipH)
}

func TestEnemyCollidesWithOwnRooms(t *testing.T) {
	w := testWorld(t,
		room320(func(cx, cy int) bool { return cy == 14 }),
		testRoom{x: 320, w: 320, h: 240, solid: func(cx, cy int) bool { return cy == 14 }},
	)
	spec := testEnemySpec()
	spec.Gravity = 600
	spec.MaxFallSpeed = 320
	spec.PatrolSpeed = 0
	e := NewEnemy("Enemy", spec, nil)
	e.Place(cp.Vector{X: 322, Y: 200})

	for i := 0; i < 60; i++ {
		e.Update(w, nil, 1.0/60)
	}
	require.True(t, e.Grounded)
	require.InDelta(t, 224-Epsilon, e.Pos.Y, 1e-6)
	require.Equal(t, 2, e.Rooms.Len())
}

func TestEnemyCooldownResetsOnlyWhenLeavingAlert(t *testing.T) {
	e := NewEnemy("Enemy", testEnemySpec(), nil)
	e.Place(cp.Vector{X: 100, Y: 100})
	player := testPlayerAt(150, 100)

	// time already on the cooldown carries into alert
	e.fireTimer = 0.4
	e.Update(nil, player, 0.25)
	require.True(t, e.Alert)
	require.Equal(t, 1, e.Shots.Active())

	e.Update(nil, player, 0.25)
	require.InDelta(t, 0.25, e.fireTimer, 1e-9)

	player.Pos.X = 400
	e.Update(nil, player, 0.25)
	require.False(t, e.Alert)
	require.Zero(t, e.fireTimer)
}
