package system

import (
	"github.com/milk9111/roomscroller/obj"
)

// ResolveCombat applies this tick's hits: player shots against enemies,
// enemy shots and enemy contact against the player. It returns the number
// of enemies killed and whether the player died.
func ResolveCombat(player *obj.Player, enemies []*obj.Enemy) (kills int, died bool) {
	if player == nil {
		return 0, false
	}
	wasDead := player.Dead()

	for _, e := range enemies {
		if e == nil || !e.Active {
			continue
		}
		box := e.Box()
		for e.Active {
			dmg, ok := player.Shots.Hit(box)
			if !ok {
				break
			}
			if e.Hurt(dmg) && !e.Active {
				kills++
			}
		}
	}

	if player.Active && !player.Dead() {
		box := player.Box()
		for _, e := range enemies {
			if e == nil {
				continue
			}
			if dmg, ok := e.Shots.Hit(box); ok {
				player.Hurt(dmg)
			}
			if e.Active && e.Spec.ContactDamage > 0 && e.Box().Intersects(box) {
				player.Hurt(e.Spec.ContactDamage)
			}
			if player.Dead() {
				break
			}
		}
	}

	return kills, !wasDead && player.Dead()
}
