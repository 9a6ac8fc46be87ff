package battle

import (
	"log/slog"

	"github.com/nstehr/trinity/trinity-core/model"
)

// DamageDealt records the damage applied in one engagement.
type DamageDealt struct {
	ToAttacker int
	ToDefender int
}

// Attack resolves a single engagement launched from tileToAttackFrom and
// applies the results: damage, removal of the fallen, notifications, defeat
// checks, and the attacker's per-turn attack bookkeeping.
func (e *Engine) Attack(attacker, defender Combatant, tileToAttackFrom model.TileID) DamageDealt {
	toAttacker := e.CalculateDamageToAttacker(attacker, defender, tileToAttackFrom, e.Rand.Float64())
	toDefender := e.CalculateDamageToDefender(attacker, defender, tileToAttackFrom, e.Rand.Float64())

	defenderTile := defender.Tile()
	defender.TakeDamage(toDefender)
	attacker.TakeDamage(toAttacker)

	slog.Debug("attack resolved",
		"attacker", attacker.Name(),
		"defender", defender.Name(),
		"damageToAttacker", toAttacker,
		"damageToDefender", toDefender)

	e.PostBattleNotifications(attacker, defender, defenderTile)

	e.removeIfDead(defender)
	e.removeIfDead(attacker)

	e.DestroyIfDefeated(defender.Civ().ID, attacker.Civ().ID)
	e.DestroyIfDefeated(attacker.Civ().ID, defender.Civ().ID)

	if uc, ok := attacker.(*UnitCombatant); ok && !uc.IsDefeated() {
		markAttacked(uc.Unit, defenderTile.Position)
	}

	return DamageDealt{ToAttacker: toAttacker, ToDefender: toDefender}
}

// markAttacked records one spent attack on the unit.
func markAttacked(u *model.Unit, target model.Hex) {
	u.AttacksThisTurn++
	u.AttacksSinceTurnStart = append(u.AttacksSinceTurnStart, target)
	u.FortifiedTurns = 0
}

// removeIfDead detaches a defeated unit combatant from the map. Cities
// linger at minimum health; their capture or destruction is a separate step.
func (e *Engine) removeIfDead(c Combatant) {
	if uc, ok := c.(*UnitCombatant); ok && uc.IsDefeated() {
		e.Game.RemoveUnit(uc.Unit.ID)
	}
}
