package battle

import (
	"fmt"

	"github.com/nstehr/trinity/trinity-core/model"
)

// PostBattleNotifications queues the defender's player-facing message for
// one damage application. Self-inflicted damage (a nuke on own territory)
// produces no message.
func (e *Engine) PostBattleNotifications(attacker, defender Combatant, attackedTile *model.Tile) {
	defenderCiv := defender.Civ()
	if attacker.Civ().ID == defenderCiv.ID {
		return
	}

	attackerString := fmt.Sprintf("An enemy [%s]", attacker.Name())
	if attacker.IsCity() {
		attackerString = fmt.Sprintf("The enemy city [%s]", attacker.Name())
	}

	whatHappened := "has attacked"
	switch {
	case defender.IsDefeated() && defender.IsCity() && attacker.IsMelee():
		whatHappened = "has captured"
	case defender.IsDefeated():
		whatHappened = "has destroyed"
	}

	text := fmt.Sprintf("%s %s [%s]", attackerString, whatHappened, defender.Name())
	defenderCiv.AddNotification(text, model.NotificationWar, model.IconWar,
		model.LocationAction(attackedTile.Position))
}

// DestroyIfDefeated marks a civilization defeated once it has no living
// units and no surviving cities, and tells everyone it had met. Idempotent.
func (e *Engine) DestroyIfDefeated(defeated, attacker model.CivID) {
	civ := e.Game.Civ(defeated)
	if civ.Defeated {
		return
	}
	if len(e.Game.CivUnits(defeated)) > 0 || len(e.Game.CivCities(defeated)) > 0 {
		return
	}
	civ.Defeated = true

	text := fmt.Sprintf("[%s] has been destroyed by [%s]", civ.Name, e.Game.Civ(attacker).Name)
	for _, other := range e.Game.Civs {
		if other.ID != defeated && other.IsAlive() && other.Knows(defeated) {
			other.AddNotification(text, model.NotificationWar, model.IconWar)
		}
	}
}
