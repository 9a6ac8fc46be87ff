package battle

import (
	"fmt"

	"github.com/nstehr/trinity/trinity-core/model"
)

// InterceptorFunc attempts to intercept an incoming air attack on behalf of
// interceptingCiv. It may damage or destroy the attacker as a side effect;
// callers must re-check IsDefeated afterwards.
type InterceptorFunc func(e *Engine, attacker *UnitCombatant, targetTile model.TileID, interceptingCiv *model.Civilization)

// TryInterceptAirAttack scrambles the first interceptor-duty unit in range
// of the target tile against the attacker. At most one interception happens
// per call; the interceptor spends one of its attacks doing it.
func TryInterceptAirAttack(e *Engine, attacker *UnitCombatant, targetTile model.TileID, interceptingCiv *model.Civilization) {
	for _, u := range e.Game.CivUnits(interceptingCiv.ID) {
		def := e.Rules.Rules.UnitDef(u.Type)
		if !u.InterceptorDuty || def.InterceptRange == 0 {
			continue
		}
		if e.Game.AerialDistance(u.Tile, targetTile) > def.InterceptRange {
			continue
		}

		interceptor := e.UnitCombatant(u)
		damage := e.CalculateDamageToDefender(interceptor, attacker, u.Tile, e.Rand.Float64())
		attacker.TakeDamage(damage)
		markAttacked(u, e.Game.Tile(targetTile).Position)

		if attacker.IsDefeated() {
			e.Game.RemoveUnit(attacker.Unit.ID)
			interceptingCiv.AddNotification(
				fmt.Sprintf("Our [%s] intercepted and destroyed an enemy [%s]", u.Name, attacker.Name()),
				model.NotificationWar, model.IconWar,
				model.LocationAction(e.Game.Tile(targetTile).Position))
			attacker.Civ().AddNotification(
				fmt.Sprintf("Our [%s] was destroyed by an intercepting [%s]", attacker.Name(), u.Name),
				model.NotificationWar, model.IconWar)
		} else {
			interceptingCiv.AddNotification(
				fmt.Sprintf("Our [%s] intercepted an enemy [%s]", u.Name, attacker.Name()),
				model.NotificationWar, model.IconWar,
				model.LocationAction(e.Game.Tile(targetTile).Position))
			attacker.Civ().AddNotification(
				fmt.Sprintf("Our [%s] was attacked by an intercepting [%s]", attacker.Name(), u.Name),
				model.NotificationWar, model.IconWar)
		}
		return
	}
}
