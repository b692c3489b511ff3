package obj

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/roomscroller/common"
	"github.com/milk9111/roomscroller/prefabs"
)

func testShotSpec(count int) prefabs.ProjectileSpec {
	return prefabs.ProjectileSpec{
		Count:    count,
		Speed:    200,
		Lifetime: 0.5,
		Damage:   1,
		Collider: prefabs.ColliderSpec{Width: 4, Height: 4, OriginX: 2, OriginY: 2},
	}
}

func TestProjectilePoolFull(t *testing.T) {
	pool := NewProjectilePool(testShotSpec(2))
	require.True(t, pool.Spawn(cp.Vector{}, cp.Vector{X: 1}))
	require.True(t, pool.Spawn(cp.Vector{}, cp.Vector{X: -1}))
	require.False(t, pool.Spawn(cp.Vector{}, cp.Vector{X: 1}))
	require.Equal(t, 2, pool.Active())

	// full pool leaves existing shots untouched
	var xs []float64
	pool.Each(func(p *Projectile) { xs = append(xs, p.Vel.X) })
	require.Equal(t, []float64{200, -200}, xs)
}

func TestProjectileReuseAfterLifetime(t *testing.T) {
	pool := NewProjectilePool(testShotSpec(1))
	require.True(t, pool.Spawn(cp.Vector{X: 10, Y: 10}, cp.Vector{X: 3, Y: 4}))

	pool.Update(nil, nil, 0.25)
	require.Equal(t, 1, pool.Active())
	pool.Each(func(p *Projectile) {
		require.InDelta(t, 10+0.6*200*0.25, p.Pos.X, 1e-9)
		require.InDelta(t, 10+0.8*200*0.25, p.Pos.Y, 1e-9)
	})
	require.False(t, pool.Spawn(cp.Vector{}, cp.Vector{X: 1}))

	pool.Update(nil, nil, 0.25)
	require.Zero(t, pool.Active())
	require.True(t, pool.Spawn(cp.Vector{}, cp.Vector{X: 1}))
}

func TestProjectileDiesOnSolid(t *testing.T) {
	w := testWorld(t, room320(func(cx, cy int) bool { return cx == 10 }))
	pool := NewProjectilePool(testShotSpec(1))
	require.True(t, pool.Spawn(cp.Vector{X: 150, Y: 108}, cp.Vector{X: 1}))

	pool.Update(w, allRooms(w), 0.1)
	require.Zero(t, pool.Active())
}

func TestProjectileHit(t *testing.T) {
	pool := NewProjectilePool(testShotSpec(2))
	pool.Spawn(cp.Vector{X: 50, Y: 50}, cp.Vector{X: 1})

	_, ok := pool.Hit(common.Rect{X: 100, Y: 100, Width: 10, Height: 10})
	require.False(t, ok)

	dmg, ok := pool.Hit(common.Rect{X: 45, Y: 45, Width: 10, Height: 10})
	require.True(t, ok)
	require.Equal(t, 1, dmg)
	require.Zero(t, pool.Active())
}

func TestNilProjectilePool(t *testing.T) {
	var pool *ProjectilePool
	require.False(t, pool.Spawn(cp.Vector{}, cp.Vector{X: 1}))
	require.Zero(t, pool.Active())
	pool.Update(nil, nil, 1)
	pool.Reset()
}
