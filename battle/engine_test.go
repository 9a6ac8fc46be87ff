package battle

import (
	"math/rand"
	"testing"

	"github.com/nstehr/trinity/trinity-core/model"
	"github.com/nstehr/trinity/trinity-core/rules"
)

// scenario is a small grassland map with two civs already at war and full
// mutual visibility. Tests place units and cities on top of it.
type scenario struct {
	g        *model.Game
	e        *Engine
	rome     model.CivID
	carthage model.CivID
}

func newScenario(t *testing.T, rs *rules.Ruleset) *scenario {
	t.Helper()
	if rs == nil {
		rs = rules.DefaultRuleset()
	}
	g := model.NewGame()
	g.Difficulty = "Prince"

	origin := model.Hex{}
	for q := -4; q <= 4; q++ {
		for r := -4; r <= 4; r++ {
			pos := model.Hex{Q: q, R: r}
			if origin.DistanceTo(pos) > 4 {
				continue
			}
			tile := model.NewTile(pos)
			tile.BaseTerrain = "Grassland"
			g.AddTile(tile)
		}
	}

	rome := g.AddCiv(model.NewCivilization("Rome"))
	carthage := g.AddCiv(model.NewCivilization("Carthage"))
	g.DeclareWar(rome, carthage)
	g.RevealAll(rome)
	g.RevealAll(carthage)

	return &scenario{
		g:        g,
		e:        NewEngine(g, rs, rand.New(rand.NewSource(7))),
		rome:     rome,
		carthage: carthage,
	}
}

func (s *scenario) unit(unitType string, civ model.CivID, pos model.Hex) *model.Unit {
	id := s.g.AddUnit(&model.Unit{Type: unitType, Civ: civ, Tile: s.g.TileAt(pos).ID})
	return s.g.Unit(id)
}

func (s *scenario) tile(pos model.Hex) *model.Tile { return s.g.TileAt(pos) }

func modValue(t *testing.T, mods *ModifierList, cause string) int {
	t.Helper()
	v, ok := mods.Value(cause)
	if !ok {
		t.Fatalf("modifier %q missing, have %+v", cause, mods.Entries())
	}
	return v
}

func TestAttackAppliesDamageBothWays(t *testing.T) {
	s := newScenario(t, nil)
	attacker := s.unit("Swordsman", s.rome, model.Hex{Q: 0, R: 0})
	defender := s.unit("Warrior", s.carthage, model.Hex{Q: 1, R: 0})

	dealt := s.e.Attack(s.e.UnitCombatant(attacker), s.e.UnitCombatant(defender), attacker.Tile)

	if dealt.ToDefender <= 0 {
		t.Error("melee attack should damage the defender")
	}
	if dealt.ToAttacker <= 0 {
		t.Error("melee defender should deal counter-damage")
	}
	if defender.Health != model.MaxUnitHealth-dealt.ToDefender && !defender.Destroyed {
		t.Errorf("defender health %d inconsistent with damage %d", defender.Health, dealt.ToDefender)
	}
	if attacker.AttacksThisTurn != 1 {
		t.Errorf("attack counter = %d, want 1", attacker.AttacksThisTurn)
	}
	if len(s.g.Civ(s.carthage).Notifications) == 0 {
		t.Error("defender civ should be notified of the attack")
	}
}

func TestAttackRemovesDeadDefender(t *testing.T) {
	s := newScenario(t, nil)
	attacker := s.unit("Knight", s.rome, model.Hex{Q: 0, R: 0})
	defender := s.unit("Warrior", s.carthage, model.Hex{Q: 1, R: 0})
	defender.Health = 1

	s.e.Attack(s.e.UnitCombatant(attacker), s.e.UnitCombatant(defender), attacker.Tile)

	if !defender.Destroyed {
		t.Fatal("defender at 1 health should die to a knight")
	}
	if len(s.g.UnitsOn(s.tile(model.Hex{Q: 1, R: 0}).ID)) != 0 {
		t.Error("dead defender still standing on tile")
	}
	// Carthage lost its last unit and has no cities.
	if !s.g.Civ(s.carthage).Defeated {
		t.Error("civ with nothing left should be marked defeated")
	}
}
