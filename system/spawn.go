package system

import (
	"strings"

	"github.com/jakecoffman/cp"

	"github.com/milk9111/roomscroller/levels"
	"github.com/milk9111/roomscroller/obj"
)

// fallbackSpawn is where the player starts, relative to the first room, in
// a world without a Player marker.
var fallbackSpawn = cp.Vector{X: 32, Y: 32}

// Spawn places the player and rebuilds every enemy from the world's
// markers, then snaps the camera onto the player.
func (c *Context) Spawn() {
	c.Player.Respawn(c.playerSpawn())
	c.Enemies = c.spawnEnemies()
	c.deadTimer = 0
	c.Rooms.Update(c.World, c.Player.Box(), c.Camera.ViewRect())
	c.Camera.SnapTo(c.World, &c.Rooms.Player, c.Player.Center(), c.Player.Box())
	c.Rooms.Update(c.World, c.Player.Box(), c.Camera.ViewRect())
}

func (c *Context) playerSpawn() cp.Vector {
	for _, m := range c.World.MarkersNamed(PlayerMarker) {
		return markerPos(m)
	}
	c.logger.Warn("world has no player marker", "marker", PlayerMarker)
	if r := c.World.Room(0); r != nil {
		return cp.Vector{X: float64(r.WorldX), Y: float64(r.WorldY)}.Add(fallbackSpawn)
	}
	return fallbackSpawn
}

func (c *Context) spawnEnemies() []*obj.Enemy {
	enemies := make([]*obj.Enemy, 0, len(c.Enemies))
	eachMarker(c.World, func(room int, name string, m *levels.Marker) {
		if name == PlayerMarker {
			return
		}
		spec, ok := c.enemySpecs[name]
		if !ok {
			return
		}
		e := obj.NewEnemy(strings.Clone(name), spec, c.brains[name].Clone())
		e.BindSprites(c.Atlas)
		e.Place(markerPos(m))
		enemies = append(enemies, e)
		c.logger.Debug("enemy spawned", "kind", name, "room", room, "x", m.WorldX, "y", m.WorldY)
	})
	return enemies
}
