package battle

import (
	"github.com/nstehr/trinity/trinity-core/rules"
)

// greatGeneralBonus finds the strongest aura bonus reaching the combatant
// from any friendly unit projecting one. Only the single best aura applies;
// overlapping generals never stack. Returns the projecting unit's name and
// the bonus, or a zero bonus when no aura reaches.
func (e *Engine) greatGeneralBonus(c *UnitCombatant, enemy Combatant, action string) (string, int) {
	civ := c.Civ()
	bestName := ""
	best := 0
	bestIsWarGeneral := false

	for _, general := range e.Game.CivUnits(civ.ID) {
		if general.ID == c.Unit.ID {
			continue
		}
		for _, u := range e.Rules.UnitUniques(general, rules.StrengthBonusInRadius, nil) {
			radius := u.IntParam(2, 0)
			if e.Game.AerialDistance(general.Tile, c.Unit.Tile) > radius {
				continue
			}
			if !e.Rules.Rules.MatchesUnitFilter(e.Game, c.Unit, u.Param(1)) {
				continue
			}
			if bonus := u.IntParam(0, 0); bonus > best {
				best = bonus
				bestName = general.Name
				bestIsWarGeneral = e.Rules.Rules.UnitDef(general.Type).GreatPerson == "War"
			}
		}
	}

	// The doubling unique scales the chosen aura, so a larger raw bonus from
	// an ordinary unit still wins over a smaller doubled one.
	if bestIsWarGeneral && e.Rules.UnitHasUnique(c.Unit, rules.GreatGeneralDoubleBonus, nil) {
		best *= 2
	}
	return bestName, best
}
