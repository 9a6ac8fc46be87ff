package rules

import "github.com/nstehr/trinity/trinity-core/model"

// Query is the rule-query service the combat engine consumes. It resolves
// entity type names against the ruleset and filters each definition's
// uniques through their compiled conditionals.
type Query struct {
	Rules *Ruleset
	Game  *model.Game
}

// NewQuery binds a ruleset to a game state.
func NewQuery(rs *Ruleset, g *model.Game) *Query {
	return &Query{Rules: rs, Game: g}
}

func appendMatching(dst []*Unique, src []*Unique, kind Kind, ctx *Context) []*Unique {
	for _, u := range src {
		if u.Kind == kind && u.Matches(ctx) {
			dst = append(dst, u)
		}
	}
	return dst
}

// UnitUniques returns the matching uniques a unit carries: its type's, its
// promotions', and its civilization's (nation + policies).
func (q *Query) UnitUniques(u *model.Unit, kind Kind, ctx *Context) []*Unique {
	var out []*Unique
	out = appendMatching(out, q.Rules.UnitDef(u.Type).Uniques, kind, ctx)
	for _, p := range u.Promotions {
		if def, ok := q.Rules.Promotions[p]; ok {
			out = appendMatching(out, def.Uniques, kind, ctx)
		}
	}
	out = append(out, q.CivUniques(q.Game.Civ(u.Civ), kind, ctx)...)
	return out
}

// UnitHasUnique reports whether the unit carries any matching unique of kind.
func (q *Query) UnitHasUnique(u *model.Unit, kind Kind, ctx *Context) bool {
	return len(q.UnitUniques(u, kind, ctx)) > 0
}

// CivUniques returns the matching uniques attached to a civilization through
// its nation and adopted policies.
func (q *Query) CivUniques(civ *model.Civilization, kind Kind, ctx *Context) []*Unique {
	var out []*Unique
	if def, ok := q.Rules.Nations[civ.Nation]; ok {
		out = appendMatching(out, def.Uniques, kind, ctx)
	}
	for _, p := range civ.Policies {
		if def, ok := q.Rules.Policies[p]; ok {
			out = appendMatching(out, def.Uniques, kind, ctx)
		}
	}
	return out
}

// CityUniques returns the matching uniques a city carries: its buildings'
// and its civilization's.
func (q *Query) CityUniques(c *model.City, kind Kind, ctx *Context) []*Unique {
	var out []*Unique
	for _, b := range c.Buildings {
		if def := q.Rules.BuildingDef(b); def != nil {
			out = appendMatching(out, def.Uniques, kind, ctx)
		}
	}
	out = append(out, q.CivUniques(q.Game.Civ(c.Civ), kind, ctx)...)
	return out
}

// TerrainUniques returns the matching uniques of a named terrain or feature.
func (q *Query) TerrainUniques(name string, kind Kind) []*Unique {
	def := q.Rules.TerrainDef(name)
	if def == nil {
		return nil
	}
	return appendMatching(nil, def.Uniques, kind, nil)
}

// TileHasTerrainUnique reports whether any terrain on the tile (base or
// feature) carries a unique of kind.
func (q *Query) TileHasTerrainUnique(t *model.Tile, kind Kind) bool {
	if len(q.TerrainUniques(t.BaseTerrain, kind)) > 0 {
		return true
	}
	for _, f := range t.Features {
		if len(q.TerrainUniques(f, kind)) > 0 {
			return true
		}
	}
	return false
}

// ImprovementHasUnique reports whether the named improvement carries a
// unique of kind.
func (q *Query) ImprovementHasUnique(name string, kind Kind) bool {
	def := q.Rules.ImprovementDef(name)
	if def == nil {
		return false
	}
	return len(appendMatching(nil, def.Uniques, kind, nil)) > 0
}

// TileDefensiveBonus sums the fractional defence bonuses of the tile's base
// terrain and features.
func (q *Query) TileDefensiveBonus(t *model.Tile) float64 {
	bonus := 0.0
	if def := q.Rules.TerrainDef(t.BaseTerrain); def != nil {
		bonus += def.DefenceBonus
	}
	for _, f := range t.Features {
		if def := q.Rules.TerrainDef(f); def != nil {
			bonus += def.DefenceBonus
		}
	}
	return bonus
}

// CityTerrainStrength sums GrantsCityStrength uniques on the terrain under a
// city center.
func (q *Query) CityTerrainStrength(t *model.Tile) int {
	total := 0
	for _, u := range q.TerrainUniques(t.BaseTerrain, GrantsCityStrength) {
		total += u.IntParam(0, 0)
	}
	for _, f := range t.Features {
		for _, u := range q.TerrainUniques(f, GrantsCityStrength) {
			total += u.IntParam(0, 0)
		}
	}
	return total
}
