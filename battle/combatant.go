package battle

import (
	"math"

	"github.com/nstehr/trinity/trinity-core/model"
	"github.com/nstehr/trinity/trinity-core/rules"
)

// Combatant is the uniform view over "a thing that can fight" — a unit or a
// city. The variant set is closed: UnitCombatant and CityCombatant are the
// only implementations, and code that differs per variant switches on the
// concrete type explicitly.
type Combatant interface {
	Name() string
	Civ() *model.Civilization
	Tile() *model.Tile

	Health() int
	MaxHealth() int
	// TakeDamage mutates the underlying unit or city, clamped to its valid
	// range. Reaching the defeated state makes the entity eligible for
	// removal; removal is post-battle bookkeeping's job, never automatic.
	TakeDamage(amount int)
	IsDefeated() bool

	// BaseAttackingStrength and BaseDefendingStrength are strengths before
	// modifiers; the engine applies modifiers and the 1.0 floor on top.
	BaseAttackingStrength() float64
	BaseDefendingStrength(vsRanged bool) float64

	IsRanged() bool
	IsCivilian() bool
	IsMelee() bool
	IsAirUnit() bool
	IsCity() bool
}

// UnitCombatant adapts a map unit for combat. It is a transient view created
// per resolution; the persistent state is the model.Unit it wraps.
type UnitCombatant struct {
	E    *Engine
	Unit *model.Unit
}

// UnitCombatant wraps a unit for combat resolution.
func (e *Engine) UnitCombatant(u *model.Unit) *UnitCombatant {
	return &UnitCombatant{E: e, Unit: u}
}

func (c *UnitCombatant) def() *rules.UnitDef {
	return c.E.Rules.Rules.UnitDef(c.Unit.Type)
}

func (c *UnitCombatant) Name() string { return c.Unit.Name }

func (c *UnitCombatant) Civ() *model.Civilization { return c.E.Game.Civ(c.Unit.Civ) }

func (c *UnitCombatant) Tile() *model.Tile { return c.E.Game.Tile(c.Unit.Tile) }

func (c *UnitCombatant) Health() int { return c.Unit.Health }

func (c *UnitCombatant) MaxHealth() int { return model.MaxUnitHealth }

func (c *UnitCombatant) TakeDamage(amount int) { c.Unit.TakeDamage(amount) }

func (c *UnitCombatant) IsDefeated() bool { return c.Unit.Destroyed || c.Unit.Health <= 0 }

func (c *UnitCombatant) BaseAttackingStrength() float64 {
	def := c.def()
	if def.IsRanged() {
		return float64(def.RangedStrength)
	}
	return float64(def.Strength)
}

func (c *UnitCombatant) BaseDefendingStrength(vsRanged bool) float64 {
	_ = vsRanged // units defend with their melee strength regardless
	return float64(c.def().Strength)
}

func (c *UnitCombatant) IsRanged() bool { return c.def().IsRanged() }

func (c *UnitCombatant) IsCivilian() bool { return c.def().Civilian }

func (c *UnitCombatant) IsMelee() bool {
	def := c.def()
	return !def.Civilian && !def.IsRanged()
}

func (c *UnitCombatant) IsAirUnit() bool { return c.def().Domain == rules.DomainAir }

// IsLandUnit reports whether the unit operates on land.
func (c *UnitCombatant) IsLandUnit() bool { return c.def().Domain == rules.DomainLand }

func (c *UnitCombatant) IsCity() bool { return false }

// CityCombatant adapts a city for combat.
type CityCombatant struct {
	E    *Engine
	City *model.City
}

// CityCombatant wraps a city for combat resolution.
func (e *Engine) CityCombatant(c *model.City) *CityCombatant {
	return &CityCombatant{E: e, City: c}
}

func (c *CityCombatant) Name() string { return c.City.Name }

func (c *CityCombatant) Civ() *model.Civilization { return c.E.Game.Civ(c.City.Civ) }

func (c *CityCombatant) Tile() *model.Tile { return c.E.Game.Tile(c.City.Center) }

func (c *CityCombatant) Health() int { return c.City.Health }

func (c *CityCombatant) MaxHealth() int { return c.City.MaxHealth }

func (c *CityCombatant) TakeDamage(amount int) { c.City.TakeDamage(amount) }

func (c *CityCombatant) IsDefeated() bool { return c.City.Destroyed || c.City.IsDefeated() }

// cityStrength computes the city's combat strength: a base, population,
// terrain grants, tech progress, a health-scaled garrison contribution, and
// defensive buildings scaled by any better-defensive-buildings uniques.
func (c *CityCombatant) cityStrength(action string) float64 {
	consts := c.E.constants()
	civ := c.Civ()
	center := c.Tile()

	strength := consts.CityStrengthBase
	strength += float64(c.City.Population) * consts.CityStrengthPerPop
	strength += float64(c.E.Rules.CityTerrainStrength(center))

	// As tech progresses so does city strength.
	techsKnown := c.E.Rules.Rules.TechProgress(civ.Nation)
	strength += math.Pow(techsKnown*consts.CityStrengthFromTechsMult, consts.CityStrengthFromTechsExp)

	// A garrisoned unit lends part of its strength, health-dependent.
	if garrison := militaryUnitOn(c.E, center); garrison != nil {
		garrisonStrength := float64(c.E.Rules.Rules.UnitDef(garrison.Type).Strength)
		strength += garrisonStrength * (float64(garrison.Health) / 100.0) * consts.CityStrengthFromGarrison
	}

	buildingsStrength := 0.0
	for _, b := range c.City.Buildings {
		if def := c.E.Rules.Rules.BuildingDef(b); def != nil {
			buildingsStrength += float64(def.CityStrength)
		}
	}
	ctx := &rules.Context{Game: c.E.Game, Rules: c.E.Rules.Rules, Action: action, City: c.City, Civ: civ}
	for _, u := range c.E.Rules.CivUniques(civ, rules.BetterDefensiveBuildings, ctx) {
		buildingsStrength *= u.FloatParam(0, 100) / 100.0
	}
	strength += buildingsStrength

	return strength
}

func (c *CityCombatant) BaseAttackingStrength() float64 {
	return c.cityStrength(rules.ActionAttack) * c.E.constants().CityAttackStrengthMultiplier
}

func (c *CityCombatant) BaseDefendingStrength(vsRanged bool) float64 {
	_ = vsRanged
	if c.IsDefeated() {
		return 1
	}
	return c.cityStrength(rules.ActionDefend)
}

func (c *CityCombatant) IsRanged() bool { return true }

func (c *CityCombatant) IsCivilian() bool { return false }

func (c *CityCombatant) IsMelee() bool { return false }

func (c *CityCombatant) IsAirUnit() bool { return false }

func (c *CityCombatant) IsCity() bool { return true }

// militaryUnitOn returns the military unit standing on a tile, nil if none.
func militaryUnitOn(e *Engine, t *model.Tile) *model.Unit {
	for _, u := range e.Game.UnitsOn(t.ID) {
		if !e.Rules.Rules.UnitDef(u.Type).Civilian {
			return u
		}
	}
	return nil
}
