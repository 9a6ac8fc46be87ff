package rules

import (
	"strconv"
	"strings"

	"github.com/expr-lang/expr/vm"
)

// Kind identifies what a unique does. The combat engine only ever queries by
// kind; the parameter layout of each kind is documented on its constant.
type Kind string

const (
	// Strength grants a flat combat-strength percentage. Params: [percent].
	Strength Kind = "Strength"
	// StrengthNearCapital grants a bonus that decays by 3 per tile of
	// distance from the owner's capital. Params: [percent].
	StrengthNearCapital Kind = "StrengthNearCapital"
	// StrengthWhenStacked grants a bonus when stacked with a matching unit.
	// Params: [percent, unitFilter].
	StrengthWhenStacked Kind = "StrengthWhenStacked"
	// StrengthForAdjacentEnemies debuffs enemy units in adjacent tiles.
	// Params: [percent, unitFilter, tileFilter].
	StrengthForAdjacentEnemies Kind = "StrengthForAdjacentEnemies"
	// StrengthForCities grants city combat strength. Params: [percent].
	StrengthForCities Kind = "StrengthForCities"
	// StrengthWhenAirsweep grants strength while conducting an air sweep.
	// Params: [percent].
	StrengthWhenAirsweep Kind = "StrengthWhenAirsweep"
	// FlankAttackBonus scales the base flanking bonus. Params: [percent].
	FlankAttackBonus Kind = "FlankAttackBonus"
	// StrengthBonusInRadius is the great-general aura.
	// Params: [percent, unitFilter, radius].
	StrengthBonusInRadius Kind = "StrengthBonusInRadius"
	// GreatGeneralDoubleBonus doubles a qualifying general's aura. No params.
	GreatGeneralDoubleBonus Kind = "GreatGeneralDoubleBonus"

	// AttackAcrossCoast suppresses landing/boarding maluses. No params.
	AttackAcrossCoast Kind = "AttackAcrossCoast"
	// AttackAcrossRiver suppresses the across-river malus. No params.
	AttackAcrossRiver Kind = "AttackAcrossRiver"
	// NoDefensiveTerrainBonus forfeits positive tile defence. No params.
	NoDefensiveTerrainBonus Kind = "NoDefensiveTerrainBonus"
	// NoDefensiveTerrainPenalty ignores negative tile defence. No params.
	NoDefensiveTerrainPenalty Kind = "NoDefensiveTerrainPenalty"
	// NoDamagePenaltyWoundedUnits suppresses the wounded damage penalty.
	NoDamagePenaltyWoundedUnits Kind = "NoDamagePenaltyWoundedUnits"

	// NuclearWeapon marks a unit as a nuke. Params: [strength].
	NuclearWeapon Kind = "NuclearWeapon"
	// BlastRadius overrides the default nuke blast radius. Params: [radius].
	BlastRadius Kind = "BlastRadius"
	// SelfDestructs destroys the unit after it attacks. No params.
	SelfDestructs Kind = "SelfDestructs"
	// DestroyableByNukesChance marks a terrain feature as destroyable.
	// Params: [percentChance].
	DestroyableByNukesChance Kind = "DestroyableByNukesChance"
	// Irremovable marks an improvement that nukes cannot touch. No params.
	Irremovable Kind = "Irremovable"
	// Unpillagable marks an improvement that is removed instead of pillaged.
	Unpillagable Kind = "Unpillagable"
	// GarrisonDamageFromNukes scales nuke damage to units on the city
	// center. Params: [percent, cityFilter].
	GarrisonDamageFromNukes Kind = "GarrisonDamageFromNukes"
	// PopulationLossFromNukes scales nuke population loss.
	// Params: [percent, cityFilter].
	PopulationLossFromNukes Kind = "PopulationLossFromNukes"

	// BetterDefensiveBuildings scales building strength in cities.
	// Params: [percent].
	BetterDefensiveBuildings Kind = "BetterDefensiveBuildings"
	// GrantsCityStrength is carried by terrain under a city. Params: [amount].
	GrantsCityStrength Kind = "GrantsCityStrength"
)

// Unique is one conditional rule attached to a definition. Conditions hold
// expr sources evaluated against a combat Context; a unique only counts when
// every condition passes.
type Unique struct {
	Kind       Kind     `yaml:"kind"`
	Params     []string `yaml:"params"`
	Conditions []string `yaml:"conditions"`
	Source     string   `yaml:"source"` // human-readable origin for modifier labels

	programs []*vm.Program // compiled by Ruleset.Compile, parallel to Conditions
}

// Param returns the i-th parameter or "" when absent.
func (u *Unique) Param(i int) string {
	if i < 0 || i >= len(u.Params) {
		return ""
	}
	return u.Params[i]
}

// IntParam parses the i-th parameter, defaulting on any failure. Rule data
// comes from external mod content and must never crash the simulation.
func (u *Unique) IntParam(i, def int) int {
	return ParseIntOr(u.Param(i), def)
}

// FloatParam parses the i-th parameter, defaulting on any failure.
func (u *Unique) FloatParam(i int, def float64) float64 {
	return ParseFloatOr(u.Param(i), def)
}

// Describe builds the modifier label shown for this unique, in the form
// "Source - condition condition" when conditions are present.
func (u *Unique) Describe() string {
	source := u.Source
	if source == "" {
		source = string(u.Kind)
	}
	if len(u.Conditions) == 0 {
		return source
	}
	return source + " - " + strings.Join(u.Conditions, " ")
}

// ParseIntOr parses s as an integer, returning def on failure.
func ParseIntOr(s string, def int) int {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return def
	}
	return v
}

// ParseFloatOr parses s as a float, returning def on failure.
func ParseFloatOr(s string, def float64) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return def
	}
	return v
}
