package battle

import (
	"math"

	"github.com/nstehr/trinity/trinity-core/model"
	"github.com/nstehr/trinity/trinity-core/rules"
)

// AttackingStrength returns the attacker's effective strength after
// modifiers, floored at 1.0 so strength ratios stay finite and positive.
func (e *Engine) AttackingStrength(attacker, defender Combatant, tileToAttackFrom model.TileID) float64 {
	mods := e.GetAttackModifiers(attacker, defender, tileToAttackFrom)
	return math.Max(1.0, attacker.BaseAttackingStrength()*mods.Multiplier())
}

// DefendingStrength returns the defender's effective strength after
// modifiers, floored at 1.0.
func (e *Engine) DefendingStrength(attacker, defender Combatant, tileToAttackFrom model.TileID) float64 {
	mods := e.GetDefenceModifiers(attacker, defender, tileToAttackFrom)
	return math.Max(1.0, defender.BaseDefendingStrength(attacker.IsRanged())*mods.Multiplier())
}

// CalculateDamageToAttacker computes the counter-damage the attacker takes.
// Ranged non-air attackers and attackers of civilians take none.
// randomnessFactor must be in [-1, 1]; pass 0 for the deterministic midpoint.
func (e *Engine) CalculateDamageToAttacker(attacker, defender Combatant, tileToAttackFrom model.TileID, randomnessFactor float64) int {
	if attacker.IsRanged() && !attacker.IsAirUnit() {
		return 0
	}
	if defender.IsCivilian() {
		return 0
	}
	ratio := e.AttackingStrength(attacker, defender, tileToAttackFrom) /
		e.DefendingStrength(attacker, defender, tileToAttackFrom)
	return int(damageModifier(ratio, true, randomnessFactor) * e.healthDependantDamageRatio(defender))
}

// CalculateDamageToDefender computes the damage dealt to the defender.
// Civilian defenders take a flat constant instead of formula damage.
func (e *Engine) CalculateDamageToDefender(attacker, defender Combatant, tileToAttackFrom model.TileID, randomnessFactor float64) int {
	if defender.IsCivilian() {
		return e.constants().DamageToCivilianUnit
	}
	ratio := e.AttackingStrength(attacker, defender, tileToAttackFrom) /
		e.DefendingStrength(attacker, defender, tileToAttackFrom)
	return int(damageModifier(ratio, false, randomnessFactor) * e.healthDependantDamageRatio(attacker))
}

// damageModifier is the nonlinear core of the damage exchange. The stronger
// side's received damage uses the reciprocal of the ratio modifier, so a
// lopsided fight hurts the weaker side far more than the stronger one.
func damageModifier(attackerToDefenderRatio float64, damageToAttacker bool, randomnessFactor float64) float64 {
	strongerToWeaker := attackerToDefenderRatio
	if attackerToDefenderRatio < 1 {
		strongerToWeaker = 1 / attackerToDefenderRatio
	}
	ratioModifier := (math.Pow((strongerToWeaker+3)/4, 4) + 1) / 2
	if (damageToAttacker && attackerToDefenderRatio > 1) ||
		(!damageToAttacker && attackerToDefenderRatio < 1) {
		ratioModifier = 1 / ratioModifier
	}
	return (24 + 12*randomnessFactor) * ratioModifier
}

// healthDependantDamageRatio scales dealt damage by the dealing side's
// current health: each 3 missing health points shave 1% off. Cities and
// units suppressing the wounded penalty deal full damage.
func (e *Engine) healthDependantDamageRatio(dealer Combatant) float64 {
	uc, ok := dealer.(*UnitCombatant)
	if !ok {
		return 1.0
	}
	if e.Rules.UnitHasUnique(uc.Unit, rules.NoDamagePenaltyWoundedUnits, nil) {
		return 1.0
	}
	return 1.0 - float64(model.MaxUnitHealth-uc.Unit.Health)/e.constants().WoundedDamageRatioPercent
}
