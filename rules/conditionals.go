package rules

import (
	"fmt"
	"log/slog"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/nstehr/trinity/trinity-core/model"
)

// Combat actions as seen by unique conditions.
const (
	ActionAttack    = "Attack"
	ActionDefend    = "Defend"
	ActionIntercept = "Intercept"
)

// Context is the evaluation environment for unique conditions. It describes
// one side of one combat action; the same struct doubles as the expr env, so
// every exported method here is callable from condition expressions.
//
// For an attacker the attacked tile is the enemy's tile; for a defender it is
// the defender's own tile.
type Context struct {
	Game  *model.Game
	Rules *Ruleset

	Action string // ActionAttack, ActionDefend, ActionIntercept, or ""

	Unit *model.Unit // set when the combatant is a unit
	City *model.City // set when the combatant is a city
	Civ  *model.Civilization

	EnemyUnit *model.Unit
	EnemyCity *model.City
	EnemyCiv  *model.Civilization

	AttackedTile *model.Tile
}

// Attacking reports whether the combatant is the attacking side.
func (c Context) Attacking() bool { return c.Action == ActionAttack }

// Defending reports whether the combatant is the defending side.
func (c Context) Defending() bool { return c.Action == ActionDefend }

// Intercepting reports whether the combatant is intercepting an air attack.
func (c Context) Intercepting() bool { return c.Action == ActionIntercept }

// SelfIs matches the combatant against a unit/city filter.
func (c Context) SelfIs(filter string) bool {
	if c.City != nil {
		return matchesCityFilter(filter)
	}
	if c.Unit != nil {
		return c.Rules.MatchesUnitFilter(c.Game, c.Unit, filter)
	}
	return false
}

// EnemyIs matches the opposing combatant against a unit/city filter.
func (c Context) EnemyIs(filter string) bool {
	if c.EnemyCity != nil {
		return matchesCityFilter(filter)
	}
	if c.EnemyUnit != nil {
		return c.Rules.MatchesUnitFilter(c.Game, c.EnemyUnit, filter)
	}
	if c.EnemyCiv != nil && filter == "Barbarian" {
		return c.EnemyCiv.Barbarian
	}
	return false
}

// TileIs matches the attacked tile against a tile filter.
func (c Context) TileIs(filter string) bool {
	if c.AttackedTile == nil {
		return false
	}
	return c.matchesTileFilter(c.AttackedTile, filter)
}

// Wounded reports whether the combatant is below full health.
func (c Context) Wounded() bool {
	return c.Unit != nil && c.Unit.Health < model.MaxUnitHealth
}

// EnemyWounded reports whether the opposing unit is below full health.
func (c Context) EnemyWounded() bool {
	return c.EnemyUnit != nil && c.EnemyUnit.Health < model.MaxUnitHealth
}

func matchesCityFilter(filter string) bool {
	return filter == "All" || filter == "City"
}

func (c Context) matchesTileFilter(t *model.Tile, filter string) bool {
	switch filter {
	case "All":
		return true
	case "Land":
		return !t.Water
	case "Water":
		return t.Water
	case "Friendly territory":
		return c.Civ != nil && t.Owner == c.Civ.ID
	case "Enemy territory":
		return c.Civ != nil && t.Owner != model.NoCiv && t.Owner != c.Civ.ID &&
			c.Civ.IsAtWarWith(t.Owner)
	case "Foreign territory":
		return c.Civ != nil && t.Owner != model.NoCiv && t.Owner != c.Civ.ID
	default:
		return t.BaseTerrain == filter || t.HasFeature(filter)
	}
}

// MatchesUnitFilter matches a unit against a filter string. Unknown filters
// fall through to the unit's type and display name.
func (rs *Ruleset) MatchesUnitFilter(g *model.Game, u *model.Unit, filter string) bool {
	def := rs.UnitDef(u.Type)
	switch filter {
	case "All":
		return true
	case "Military":
		return !def.Civilian
	case "Civilian":
		return def.Civilian
	case "Land":
		return def.Domain == DomainLand
	case "Water":
		return def.Domain == DomainWater
	case "Air":
		return def.Domain == DomainAir
	case "Melee":
		return !def.Civilian && def.RangedStrength == 0
	case "Ranged":
		return def.RangedStrength > 0
	case "Wounded":
		return u.Health < model.MaxUnitHealth
	case "Embarked":
		return u.Embarked
	case "Barbarian":
		return g != nil && g.Civ(u.Civ).Barbarian
	default:
		return u.Type == filter || u.Name == filter
	}
}

// compile translates every condition on a unique into expr bytecode.
// Compilation failures are load-time errors: a ruleset with an unparseable
// condition is rejected whole rather than silently mis-evaluated.
func (u *Unique) compile() error {
	u.programs = u.programs[:0]
	for _, src := range u.Conditions {
		prog, err := expr.Compile(src, expr.Env(Context{}), expr.AsBool())
		if err != nil {
			return fmt.Errorf("compile condition %q on %s: %w", src, u.Kind, err)
		}
		u.programs = append(u.programs, prog)
	}
	return nil
}

// Matches reports whether every condition on the unique holds for ctx.
// Runtime evaluation errors are logged and treated as non-matching — bad mod
// content must never crash combat resolution.
func (u *Unique) Matches(ctx *Context) bool {
	if len(u.Conditions) == 0 {
		return true
	}
	if len(u.programs) != len(u.Conditions) {
		slog.Warn("unique conditions not compiled", "kind", u.Kind)
		return false
	}
	env := Context{}
	if ctx != nil {
		env = *ctx
	}
	for i, prog := range u.programs {
		result, err := vm.Run(prog, env)
		if err != nil {
			slog.Warn("unique condition error", "kind", u.Kind, "condition", u.Conditions[i], "error", err)
			return false
		}
		match, ok := result.(bool)
		if !ok || !match {
			return false
		}
	}
	return true
}
