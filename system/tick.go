package system

import (
	"github.com/milk9111/roomscroller/common"
)

// RespawnDelay is how long the player stays dead before reappearing at
// the spawn marker.
const RespawnDelay = 1.0

// Tick advances the game by dt seconds. The caller fills c.Input before
// calling; Tick ends the input frame itself.
//
// Order: rooms, player and its shots, enemies in processed rooms (each
// followed by its shots), combat, respawn, camera.
func (c *Context) Tick(dt float64) {
	if c == nil || c.World == nil {
		return
	}
	c.Rooms.Update(c.World, c.Player.Box(), c.Camera.ViewRect())

	c.Player.Update(&c.Input, c.World, &c.Rooms.Player, dt)
	c.Player.UpdateShots(c.World, &c.Rooms.Process, dt)

	for _, e := range c.Enemies {
		if !c.processed(e.Box()) {
			continue
		}
		e.Update(c.World, c.Player, dt)
		e.UpdateShots(c.World, &c.Rooms.Process, dt)
	}

	kills, died := ResolveCombat(c.Player, c.Enemies)
	c.Stats.Kills += kills
	if died {
		c.Stats.Deaths++
		c.deadTimer = 0
		c.logger.Info("player died", "deaths", c.Stats.Deaths)
	}
	if c.Player.Dead() {
		c.deadTimer += dt
		if c.deadTimer >= RespawnDelay {
			c.Player.Respawn(c.Player.Spawn)
			c.deadTimer = 0
		}
	}

	c.Camera.Update(c.World, &c.Rooms.Player, c.Player.Center(), c.Player.Box(), dt)
	c.Input.EndFrame()

	c.Stats.Frames++
	c.Stats.Seconds += dt
}

// processed reports whether box overlaps one of the rooms being processed
// this tick.
func (c *Context) processed(box common.Rect) bool {
	set := &c.Rooms.Process
	for i := 0; i < set.Len(); i++ {
		if r := c.World.Room(set.At(i)); r != nil && r.Box().Intersects(box) {
			return true
		}
	}
	return false
}

// EnemiesAlive counts active enemies.
func (c *Context) EnemiesAlive() int {
	n := 0
	for _, e := range c.Enemies {
		if e.Active {
			n++
		}
	}
	return n
}
