package battle

import (
	"fmt"
	"sort"

	"github.com/nstehr/trinity/trinity-core/model"
	"github.com/nstehr/trinity/trinity-core/rules"
)

// Modifier is one named percentage adjustment to base combat strength.
type Modifier struct {
	Cause string
	Value int
}

// ModifierList is an ordered cause → signed-percent mapping. Adding to an
// existing cause accumulates into the same entry; order is insertion order.
type ModifierList struct {
	entries []Modifier
	index   map[string]int
}

// NewModifierList returns an empty modifier list.
func NewModifierList() *ModifierList {
	return &ModifierList{index: make(map[string]int)}
}

// Add accumulates value under cause.
func (m *ModifierList) Add(cause string, value int) {
	if i, ok := m.index[cause]; ok {
		m.entries[i].Value += value
		return
	}
	m.index[cause] = len(m.entries)
	m.entries = append(m.entries, Modifier{Cause: cause, Value: value})
}

// AddAll merges another list into this one.
func (m *ModifierList) AddAll(other *ModifierList) {
	for _, e := range other.entries {
		m.Add(e.Cause, e.Value)
	}
}

// Value returns the accumulated value for cause.
func (m *ModifierList) Value(cause string) (int, bool) {
	i, ok := m.index[cause]
	if !ok {
		return 0, false
	}
	return m.entries[i].Value, true
}

// Len returns the number of distinct causes.
func (m *ModifierList) Len() int { return len(m.entries) }

// Entries returns the modifiers in insertion order.
func (m *ModifierList) Entries() []Modifier { return m.entries }

// Total sums all modifier values.
func (m *ModifierList) Total() int {
	total := 0
	for _, e := range m.entries {
		total += e.Value
	}
	return total
}

// Multiplier converts the summed percentages to a strength multiplier.
func (m *ModifierList) Multiplier() float64 {
	return 1.0 + float64(m.Total())/100.0
}

// GetAttackModifiers aggregates every named modifier applying to the
// attacking side of an engagement launched from tileToAttackFrom.
func (e *Engine) GetAttackModifiers(attacker, defender Combatant, tileToAttackFrom model.TileID) *ModifierList {
	mods := e.generalModifiers(attacker, defender, rules.ActionAttack, tileToAttackFrom)

	uc, ok := attacker.(*UnitCombatant)
	if !ok {
		return mods
	}

	e.addTerrainAttackModifiers(uc, defender, tileToAttackFrom, mods)

	if uc.Unit.PreparingAirSweep {
		mods.AddAll(e.airSweepAttackModifiers(uc))
	}

	if uc.IsMelee() {
		e.addFlankingBonus(uc, defender, mods)
	}

	return mods
}

// GetDefenceModifiers aggregates every named modifier applying to the
// defending side.
func (e *Engine) GetDefenceModifiers(attacker, defender Combatant, tileToAttackFrom model.TileID) *ModifierList {
	mods := e.generalModifiers(defender, attacker, rules.ActionDefend, tileToAttackFrom)

	uc, ok := defender.(*UnitCombatant)
	if !ok || uc.Unit.Embarked {
		// Embarked units get no terrain defensive bonuses.
		return mods
	}

	tile := uc.Tile()
	tileDefence := e.Rules.TileDefensiveBonus(tile)
	if (tileDefence > 0 && !e.Rules.UnitHasUnique(uc.Unit, rules.NoDefensiveTerrainBonus, nil)) ||
		(tileDefence < 0 && !e.Rules.UnitHasUnique(uc.Unit, rules.NoDefensiveTerrainPenalty, nil)) {
		mods.Add("Tile", int(tileDefence*100))
	}

	if uc.Unit.IsFortified() || uc.Unit.Guarding {
		mods.Add("Fortification", e.constants().FortificationBonus*fortificationTurns(uc.Unit))
	}

	return mods
}

// fortificationTurns counts the turns backing the fortification bonus.
// Guarding units defend as if fortified for two turns.
func fortificationTurns(u *model.Unit) int {
	turns := u.FortifiedTurns
	if u.Guarding && turns < 2 {
		turns = 2
	}
	return turns
}

// generalModifiers computes the modifiers shared by both sides, with the
// roles swapped for the defender's query.
func (e *Engine) generalModifiers(combatant, enemy Combatant, action string, tileToAttackFrom model.TileID) *ModifierList {
	mods := NewModifierList()
	ctx := e.contextFor(combatant, enemy, action)

	switch c := combatant.(type) {
	case *UnitCombatant:
		e.addUnitUniqueModifiers(c, enemy, ctx, tileToAttackFrom, mods)
		e.addResourceShortageMalus(c, mods)

		if name, bonus := e.greatGeneralBonus(c, enemy, action); bonus != 0 {
			mods.Add(name, bonus)
		}

		for _, u := range e.Rules.UnitUniques(c.Unit, rules.StrengthWhenStacked, ctx) {
			stackedBonus := 0
			for _, other := range e.Game.UnitsOn(c.Unit.Tile) {
				if e.Rules.Rules.MatchesUnitFilter(e.Game, other, u.Param(1)) {
					stackedBonus += u.IntParam(0, 0)
					break
				}
			}
			if stackedBonus > 0 {
				mods.Add(fmt.Sprintf("Stacked with [%s]", u.Param(1)), stackedBonus)
			}
		}

	case *CityCombatant:
		for _, u := range e.Rules.CityUniques(c.City, rules.StrengthForCities, ctx) {
			mods.Add(u.Describe(), u.IntParam(0, 0))
		}
	}

	if enemy != nil && enemy.Civ().Barbarian {
		difficulty := e.Rules.Rules.DifficultyFor(e.Game.Difficulty)
		mods.Add("Difficulty", int(difficulty.BarbarianBonus*100))
	}

	return mods
}

func (e *Engine) addUnitUniqueModifiers(c *UnitCombatant, enemy Combatant, ctx *rules.Context, tileToAttackFrom model.TileID, mods *ModifierList) {
	civ := c.Civ()

	for _, u := range e.Rules.UnitUniques(c.Unit, rules.Strength, ctx) {
		mods.Add(u.Describe(), u.IntParam(0, 0))
	}

	// Bonus near the capital, decaying 3 per tile of distance.
	for _, u := range e.Rules.UnitUniques(c.Unit, rules.StrengthNearCapital, ctx) {
		if civ.Capital == model.NoCity {
			break
		}
		capital := e.Game.City(civ.Capital)
		distance := e.Game.AerialDistance(c.Unit.Tile, capital.Center)
		effect := u.IntParam(0, 0) - 3*distance
		if effect > 0 {
			mods.Add(u.Describe(), effect)
		}
	}

	// Malus granted by enemy uniques to units standing next to them. Only
	// the single largest qualifying value applies, never a sum.
	adjacent := e.adjacentEnemyUnits(c, enemy, tileToAttackFrom)
	selfCtx := &rules.Context{
		Game:         e.Game,
		Rules:        e.Rules.Rules,
		Unit:         c.Unit,
		Civ:          civ,
		AttackedTile: c.Tile(),
	}
	best := 0
	found := false
	for _, adj := range adjacent {
		if !e.Game.Civ(adj.Civ).IsAtWarWith(civ.ID) {
			continue
		}
		for _, u := range e.Rules.UnitUniques(adj, rules.StrengthForAdjacentEnemies, nil) {
			if !e.Rules.Rules.MatchesUnitFilter(e.Game, c.Unit, u.Param(1)) {
				continue
			}
			if !selfCtx.TileIs(u.Param(2)) {
				continue
			}
			v := u.IntParam(0, 0)
			if !found || v > best {
				best = v
				found = true
			}
		}
	}
	if found {
		mods.Add("Adjacent enemy units", best)
	}
}

// adjacentEnemyUnits lists units on tiles adjacent to the combatant. When
// the enemy attacks from an adjacent tile it has not yet entered, the enemy
// unit counts as adjacent too.
func (e *Engine) adjacentEnemyUnits(c *UnitCombatant, enemy Combatant, tileToAttackFrom model.TileID) []*model.Unit {
	var out []*model.Unit
	ownTile := c.Tile()
	for _, n := range e.Game.Neighbors(ownTile.ID) {
		out = append(out, e.Game.UnitsOn(n.ID)...)
	}

	if enemyUnit, ok := enemy.(*UnitCombatant); ok {
		enemyAdjacent := ownTile.Position.IsAdjacentTo(enemyUnit.Tile().Position)
		fromAdjacent := ownTile.Position.IsAdjacentTo(e.Game.Tile(tileToAttackFrom).Position)
		if !enemyAdjacent && fromAdjacent {
			out = append(out, enemyUnit.Unit)
		}
	}
	return out
}

// addResourceShortageMalus applies the missing-resource malus once when any
// required strategic resource is in shortage. Barbarians ignore logistics.
func (e *Engine) addResourceShortageMalus(c *UnitCombatant, mods *ModifierList) {
	civ := c.Civ()
	if civ.Barbarian {
		return
	}
	required := c.def().Resources
	names := make([]string, 0, len(required))
	for name := range required {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if civ.Resources[name] < 0 {
			mods.Add("Missing resource", e.constants().MissingResourceMalus)
			break
		}
	}
}

func (e *Engine) addTerrainAttackModifiers(attacker *UnitCombatant, defender Combatant, tileToAttackFrom model.TileID, mods *ModifierList) {
	consts := e.constants()
	attackerTile := attacker.Tile()
	defenderTile := defender.Tile()
	acrossCoast := e.Rules.UnitHasUnique(attacker.Unit, rules.AttackAcrossCoast, nil)

	// Embarked unit landing on a hostile shore.
	if attacker.Unit.Embarked && !defenderTile.Water && !acrossCoast {
		mods.Add("Landing", consts.LandingMalus)
	}

	// Land melee unit attacking into water.
	if attacker.IsLandUnit() && !attackerTile.Water && attacker.IsMelee() &&
		defenderTile.Water && !acrossCoast {
		mods.Add("Boarding", consts.BoardingMalus)
	}

	// Melee unit on water attacking a land target that is not a city.
	if !attacker.IsAirUnit() && attacker.IsMelee() && attackerTile.Water &&
		!defenderTile.Water && !acrossCoast && !defender.IsCity() {
		mods.Add("Landing", consts.LandingMalus)
	}

	if e.isMeleeAttackingAcrossRiverWithNoBridge(attacker, tileToAttackFrom, defender) {
		mods.Add("Across river", consts.AcrossRiverMalus)
	}
}

func (e *Engine) isMeleeAttackingAcrossRiverWithNoBridge(attacker *UnitCombatant, tileToAttackFrom model.TileID, defender Combatant) bool {
	if !attacker.IsMelee() {
		return false
	}
	defenderTile := defender.Tile()
	if e.Game.AerialDistance(tileToAttackFrom, defenderTile.ID) != 1 {
		return false
	}
	if !e.Game.IsConnectedByRiver(tileToAttackFrom, defenderTile.ID) {
		return false
	}
	if e.Rules.UnitHasUnique(attacker.Unit, rules.AttackAcrossRiver, nil) {
		return false
	}
	from := e.Game.Tile(tileToAttackFrom)
	bridged := from.UnpillagedRoad() != model.RoadNone &&
		defenderTile.UnpillagedRoad() != model.RoadNone &&
		attacker.Civ().RoadsConnectAcrossRivers
	return !bridged
}

// airSweepAttackModifiers collects air-sweep-specific strength uniques.
func (e *Engine) airSweepAttackModifiers(attacker *UnitCombatant) *ModifierList {
	mods := NewModifierList()
	for _, u := range e.Rules.UnitUniques(attacker.Unit, rules.StrengthWhenAirsweep, nil) {
		mods.Add(u.Describe(), u.IntParam(0, 0))
	}
	return mods
}

// addFlankingBonus applies the flanking bonus: the base bonus, scaled by any
// flank-bonus uniques, multiplied by the number of other friendly melee
// units adjacent to the defender.
func (e *Engine) addFlankingBonus(attacker *UnitCombatant, defender Combatant, mods *ModifierList) {
	flankers := 0
	for _, n := range e.Game.Neighbors(defender.Tile().ID) {
		military := militaryUnitOn(e, n)
		if military == nil || military.ID == attacker.Unit.ID {
			continue
		}
		if military.Civ != attacker.Unit.Civ {
			continue
		}
		if e.UnitCombatant(military).IsMelee() {
			flankers++
		}
	}
	if flankers == 0 {
		return
	}

	bonus := e.constants().BaseFlankingBonus
	ctx := e.contextFor(attacker, defender, rules.ActionAttack)
	for _, u := range e.Rules.UnitUniques(attacker.Unit, rules.FlankAttackBonus, ctx) {
		bonus *= u.FloatParam(0, 100) / 100.0
	}
	mods.Add("Flanking", int(bonus*float64(flankers)))
}
