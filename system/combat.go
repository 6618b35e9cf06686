package system

import "github.com/milk9111/platformer/component"

// resolveCombat applies the contacts between the player and the level after
// everything has moved.
func (w *World) resolveCombat() {
	p := w.Player
	if p.Dead() {
		return
	}
	fx := w.Effects

	if p.DashInvulnerable() {
		for _, e := range w.Enemies {
			if !e.Defeated && e.Rect().Intersects(p.Rect()) {
				e.Defeat(fx)
			}
		}
	}

	for _, e := range w.Enemies {
		if e.Touches(p) {
			p.Hurt(fx, component.FactionEnemy)
		}
	}

	if w.Tiles.HazardCheck(p.Rect()) {
		p.Hurt(fx, component.FactionEnvironment)
	}

	if fall := w.Specs.Player.Health.FallAirTime; fall > 0 && p.AirTime > fall {
		p.Kill(fx)
	}
}
