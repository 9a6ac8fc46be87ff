// Package battle implements combat resolution: modifier aggregation, the
// nonlinear damage formula, and the nuclear-strike path. It mutates game
// state through the model arenas and consults rule content exclusively
// through the rules query service.
//
// Resolution is single-threaded and synchronous: the engine assumes
// exclusive access to the game state for the duration of one attack or one
// detonation.
package battle

import (
	"math/rand"

	"github.com/nstehr/trinity/trinity-core/model"
	"github.com/nstehr/trinity/trinity-core/rules"
)

// Engine resolves combat against one game state. Rand is the single source
// of combat randomness; seed it for deterministic replays.
type Engine struct {
	Game  *model.Game
	Rules *rules.Query
	Rand  *rand.Rand

	// Interceptor is invoked during the nuke war-declaration pass for each
	// civilization whose units are hit by an air-delivered strike. It may
	// damage or destroy the attacker; callers re-check IsDefeated after it.
	Interceptor InterceptorFunc
}

// NewEngine binds a ruleset and game state to a combat engine.
func NewEngine(g *model.Game, rs *rules.Ruleset, rng *rand.Rand) *Engine {
	e := &Engine{
		Game:  g,
		Rules: rules.NewQuery(rs, g),
		Rand:  rng,
	}
	e.Interceptor = TryInterceptAirAttack
	return e
}

func (e *Engine) constants() rules.Constants {
	return e.Rules.Rules.Constants
}

// contextFor builds the conditional-evaluation context for one side of a
// combat action. The attacked tile is the enemy's tile when attacking and
// the combatant's own tile otherwise, so both sides evaluate conditions
// against the same engagement.
func (e *Engine) contextFor(combatant, enemy Combatant, action string) *rules.Context {
	ctx := &rules.Context{
		Game:   e.Game,
		Rules:  e.Rules.Rules,
		Action: action,
		Civ:    combatant.Civ(),
	}

	switch c := combatant.(type) {
	case *UnitCombatant:
		ctx.Unit = c.Unit
	case *CityCombatant:
		ctx.City = c.City
	}

	if enemy != nil {
		ctx.EnemyCiv = enemy.Civ()
		switch en := enemy.(type) {
		case *UnitCombatant:
			ctx.EnemyUnit = en.Unit
		case *CityCombatant:
			ctx.EnemyCity = en.City
		}
		if action == rules.ActionAttack {
			ctx.AttackedTile = enemy.Tile()
		} else {
			ctx.AttackedTile = combatant.Tile()
		}
	} else {
		ctx.AttackedTile = combatant.Tile()
	}

	return ctx
}
