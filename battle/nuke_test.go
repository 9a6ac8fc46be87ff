package battle

import (
	"strings"
	"testing"

	"github.com/nstehr/trinity/trinity-core/model"
	"github.com/nstehr/trinity/trinity-core/rules"
)

func TestMayUseNuke_SelfTargetRejected(t *testing.T) {
	s := newScenario(t, nil)
	bomb := s.unit("Atomic Bomb", s.rome, model.Hex{Q: 0, R: 0})

	if s.e.MayUseNuke(s.e.UnitCombatant(bomb), bomb.Tile) {
		t.Error("nuking the tile the nuke stands on must be rejected")
	}
}

func TestMayUseNuke_InvisibleTargetRejected(t *testing.T) {
	s := newScenario(t, nil)
	bomb := s.unit("Atomic Bomb", s.rome, model.Hex{Q: 0, R: 0})
	target := s.tile(model.Hex{Q: 3, R: 0}).ID
	s.g.Civ(s.rome).VisibleTiles = map[model.TileID]bool{}

	if s.e.MayUseNuke(s.e.UnitCombatant(bomb), target) {
		t.Error("nuking an unseen tile must be rejected")
	}
}

func TestMayUseNuke_NeutralCivVetoes(t *testing.T) {
	s := newScenario(t, nil)
	// A third civ Rome has never met owns one tile in the blast radius.
	gaul := s.g.AddCiv(model.NewCivilization("Gaul"))
	s.tile(model.Hex{Q: 4, R: 0}).Owner = gaul

	bomb := s.unit("Atomic Bomb", s.rome, model.Hex{Q: 0, R: 0})
	target := s.tile(model.Hex{Q: 3, R: 0}).ID

	if s.e.MayUseNuke(s.e.UnitCombatant(bomb), target) {
		t.Error("an unattackable civ in the blast radius vetoes the strike")
	}

	// At war, the same strike is allowed.
	s.g.DeclareWar(s.rome, gaul)
	if !s.e.MayUseNuke(s.e.UnitCombatant(bomb), target) {
		t.Error("strike should be allowed once war permits attacking")
	}
}

func TestMayUseNuke_OwnAndBarbarianTilesAllowed(t *testing.T) {
	s := newScenario(t, nil)
	barbs := model.NewCivilization("Barbarians")
	barbs.Barbarian = true
	barbID := s.g.AddCiv(barbs)
	s.tile(model.Hex{Q: 4, R: 0}).Owner = barbID
	s.tile(model.Hex{Q: 2, R: 0}).Owner = s.rome
	s.unit("Warrior", s.rome, model.Hex{Q: 3, R: 0}) // nuking own units is allowed

	bomb := s.unit("Atomic Bomb", s.rome, model.Hex{Q: 0, R: 0})
	target := s.tile(model.Hex{Q: 3, R: 0}).ID

	if !s.e.MayUseNuke(s.e.UnitCombatant(bomb), target) {
		t.Error("own and barbarian holdings never veto a strike")
	}
}

func TestNuke_UndeclaredStrengthIsNoOp(t *testing.T) {
	s := newScenario(t, nil)
	warrior := s.unit("Warrior", s.rome, model.Hex{Q: 0, R: 0})
	victim := s.unit("Warrior", s.carthage, model.Hex{Q: 3, R: 0})

	s.e.Nuke(s.e.UnitCombatant(warrior), victim.Tile)

	if victim.Health != model.MaxUnitHealth {
		t.Error("a unit without nuclear strength must not detonate")
	}
	if warrior.AttacksThisTurn != 0 {
		t.Error("aborted strike must not spend an attack")
	}
}

func TestNuke_DeclaresWarAndNotifies(t *testing.T) {
	s := newScenario(t, nil)
	// A known neutral civ owns territory under the blast.
	gaul := s.g.AddCiv(model.NewCivilization("Gaul"))
	s.g.MeetCivs(s.rome, gaul)
	s.tile(model.Hex{Q: 3, R: 1}).Owner = gaul

	bomb := s.unit("Atomic Bomb", s.rome, model.Hex{Q: 0, R: 0})
	target := s.tile(model.Hex{Q: 3, R: 0}).ID
	s.e.Nuke(s.e.UnitCombatant(bomb), target)

	if !s.g.Civ(gaul).IsAtWarWith(s.rome) {
		t.Error("territory owner under the blast should declare war")
	}

	if !hasNotificationContaining(s.g.Civ(s.rome), "has declared war on us!") {
		t.Error("attacker should learn about the new war")
	}
	if !hasNotificationContaining(s.g.Civ(gaul), "has exploded in our territory!") {
		t.Error("territory owner should get the territory message")
	}
	// Carthage knows Rome (they are at war) but was not hit.
	if !hasNotificationContaining(s.g.Civ(s.carthage), "has been detonated by [Rome]!") {
		t.Error("known bystander should get the generic detonation message")
	}
}

func TestNuke_UnknownCivGetsAnonymousMessage(t *testing.T) {
	s := newScenario(t, nil)
	// Hermits have never met Rome and are far from the blast.
	hermits := s.g.AddCiv(model.NewCivilization("Hermits"))

	bomb := s.unit("Atomic Bomb", s.rome, model.Hex{Q: 0, R: 0})
	s.e.Nuke(s.e.UnitCombatant(bomb), s.tile(model.Hex{Q: 3, R: 0}).ID)

	if !hasNotificationContaining(s.g.Civ(hermits), "detonated by an unknown civilization!") {
		t.Error("unmet civ should get the anonymized message")
	}
}

func TestNuke_SelfDestructsAndBlanketPenalty(t *testing.T) {
	s := newScenario(t, nil)
	bomb := s.unit("Atomic Bomb", s.rome, model.Hex{Q: 0, R: 0})
	s.e.Nuke(s.e.UnitCombatant(bomb), s.tile(model.Hex{Q: 3, R: 0}).ID)

	if !bomb.Destroyed {
		t.Error("a self-destructing nuke should be gone after the strike")
	}
	d := s.g.Civ(s.carthage).DiplomacyWith(s.rome)
	if d.Modifiers[UsedNuclearWeapons] != -50 {
		t.Errorf("blanket penalty = %v, want -50", d.Modifiers[UsedNuclearWeapons])
	}
}

func TestNuke_AttackCounterWithoutSelfDestruct(t *testing.T) {
	rs := rules.DefaultRuleset()
	rs.Units["Reusable Nuke"] = &rules.UnitDef{
		Name:           "Reusable Nuke",
		Strength:       60,
		RangedStrength: 60,
		Domain:         rules.DomainAir,
		Uniques: []*rules.Unique{
			{Kind: rules.NuclearWeapon, Params: []string{"1"}, Source: "Reusable Nuke"},
			{Kind: rules.BlastRadius, Params: []string{"2"}, Source: "Reusable Nuke"},
		},
	}
	s := newScenario(t, rs)
	bomb := s.unit("Reusable Nuke", s.rome, model.Hex{Q: 0, R: 0})
	s.e.Nuke(s.e.UnitCombatant(bomb), s.tile(model.Hex{Q: 3, R: 0}).ID)

	if bomb.Destroyed {
		t.Error("a nuke without the self-destruct flag survives")
	}
	if bomb.AttacksThisTurn != 1 {
		t.Errorf("attack counter = %d, want 1", bomb.AttacksThisTurn)
	}
	if len(bomb.AttacksSinceTurnStart) != 1 {
		t.Errorf("attack positions recorded = %d, want 1", len(bomb.AttacksSinceTurnStart))
	}
}

func TestNukeCivilianKillThreshold(t *testing.T) {
	s := newScenario(t, nil)
	bomb := s.e.UnitCombatant(s.unit("Atomic Bomb", s.rome, model.Hex{Q: 0, R: 0}))

	survivor := s.unit("Worker", s.carthage, model.Hex{Q: 3, R: 0})
	s.e.applyNukeDamageToUnit(bomb, survivor, 59, s.tile(model.Hex{Q: 3, R: 0}))
	if survivor.Destroyed {
		t.Error("civilian at 100 health survives 59 damage")
	}
	if survivor.Health != model.MaxUnitHealth {
		t.Error("surviving civilians take no partial nuke damage")
	}

	victim := s.unit("Worker", s.carthage, model.Hex{Q: 3, R: 0})
	s.e.applyNukeDamageToUnit(bomb, victim, 60, s.tile(model.Hex{Q: 3, R: 0}))
	if !victim.Destroyed {
		t.Error("civilian dies once damage reaches the 40-health threshold")
	}
}

func TestNukeGroundZeroKillsMilitary(t *testing.T) {
	s := newScenario(t, nil)
	bomb := s.unit("Atomic Bomb", s.rome, model.Hex{Q: 0, R: 0})
	victim := s.unit("Warrior", s.carthage, model.Hex{Q: 3, R: 0})

	s.e.Nuke(s.e.UnitCombatant(bomb), victim.Tile)

	if !victim.Destroyed {
		t.Error("military unit on ground zero takes 100 damage and dies")
	}
}

func TestNukeCityDamage(t *testing.T) {
	s := newScenario(t, nil)
	cityID := s.g.AddCity(&model.City{
		Name:       "Carthage",
		Civ:        s.carthage,
		Center:     s.tile(model.Hex{Q: 3, R: 0}).ID,
		Population: 8,
	})
	city := s.g.City(cityID)

	s.e.nukeCityDamage(city, 1, 1.0)

	if city.Destroyed {
		t.Fatal("strength-1 strike never destroys a city")
	}
	if city.Health != model.MaxCityHealth/2 {
		t.Errorf("city health = %d, want half of %d", city.Health, model.MaxCityHealth)
	}
	// Strength 1 loses 30-68% of population.
	if city.Population < 3 || city.Population > 6 {
		t.Errorf("population = %d, want between 3 and 6 after a strength-1 strike", city.Population)
	}
}

func TestNukeCityDestructionTiers(t *testing.T) {
	s := newScenario(t, nil)
	// Second city, so destroying it doesn't touch the capital rules.
	s.g.AddCity(&model.City{Name: "Carthage", Civ: s.carthage, Center: s.tile(model.Hex{Q: -3, R: 0}).ID, Population: 10})
	smallID := s.g.AddCity(&model.City{Name: "Utica", Civ: s.carthage, Center: s.tile(model.Hex{Q: 3, R: 0}).ID, Population: 4})
	small := s.g.City(smallID)

	// Strength 2 destroys cities under 5 population.
	s.e.nukeCityDamage(small, 2, 1.0)
	if !small.Destroyed {
		t.Error("strength-2 strike destroys a city below 5 population")
	}
}

func TestNukeSparesOriginalCapital(t *testing.T) {
	s := newScenario(t, nil)
	capitalID := s.g.AddCity(&model.City{
		Name:              "Carthage",
		Civ:               s.carthage,
		Center:            s.tile(model.Hex{Q: 3, R: 0}).ID,
		Population:        3,
		IsOriginalCapital: true,
	})
	capital := s.g.City(capitalID)

	s.e.nukeCityDamage(capital, 3, 1.0)

	if capital.Destroyed {
		t.Error("original capitals are never destroyed by nukes")
	}
	// A max-strength strike still guts it: half health and all population.
	if capital.Population != 1 {
		t.Errorf("population = %d, want floor of 1", capital.Population)
	}
}

func TestNukePillageAndFallout(t *testing.T) {
	s := newScenario(t, nil)
	target := s.tile(model.Hex{Q: 3, R: 0})
	target.Improvement = "Farm"
	target.RoadStatus = model.Road

	bomb := s.unit("Atomic Bomb", s.rome, model.Hex{Q: 0, R: 0})
	s.e.Nuke(s.e.UnitCombatant(bomb), target.ID)

	// Ground zero always gets the full treatment.
	if !target.ImprovementPillaged {
		t.Error("ground-zero improvement should be pillaged")
	}
	if !target.RoadPillaged {
		t.Error("ground-zero road should be pillaged")
	}
	if !target.HasFeature(model.FeatureFallout) {
		t.Error("ground zero should be contaminated with fallout")
	}
}

func TestApplyPillageAndFallout_EdgeCases(t *testing.T) {
	s := newScenario(t, nil)

	// Unpillagable improvements are removed instead of pillaged.
	landmark := s.tile(model.Hex{Q: 1, R: 0})
	landmark.Improvement = "Landmark"
	s.e.applyPillageAndFallout(landmark)
	if landmark.Improvement != "" || landmark.ImprovementPillaged {
		t.Error("unpillagable improvement should be removed outright")
	}

	// Irremovable improvements survive untouched.
	ruins := s.tile(model.Hex{Q: 2, R: 0})
	ruins.Improvement = "City ruins"
	s.e.applyPillageAndFallout(ruins)
	if ruins.Improvement != "City ruins" || ruins.ImprovementPillaged {
		t.Error("irremovable improvement should survive")
	}

	// Water tiles never gain fallout.
	sea := s.tile(model.Hex{Q: 0, R: 1})
	sea.BaseTerrain = "Coast"
	sea.Water = true
	s.e.applyPillageAndFallout(sea)
	if sea.HasFeature(model.FeatureFallout) {
		t.Error("water tiles should not be contaminated")
	}

	// Fallout is not stacked.
	dirt := s.tile(model.Hex{Q: 0, R: 2})
	s.e.applyPillageAndFallout(dirt)
	s.e.applyPillageAndFallout(dirt)
	count := 0
	for _, f := range dirt.Features {
		if f == model.FeatureFallout {
			count++
		}
	}
	if count != 1 {
		t.Errorf("fallout features = %d, want 1", count)
	}
}

func TestNukeCityCenterTerrainUntouched(t *testing.T) {
	s := newScenario(t, nil)
	center := s.tile(model.Hex{Q: 3, R: 0})
	center.Improvement = "Farm"
	s.g.AddCity(&model.City{Name: "Carthage", Civ: s.carthage, Center: center.ID, Population: 8})

	bomb := s.unit("Atomic Bomb", s.rome, model.Hex{Q: 0, R: 0})
	s.e.Nuke(s.e.UnitCombatant(bomb), center.ID)

	if center.ImprovementPillaged || center.HasFeature(model.FeatureFallout) {
		t.Error("surviving city centers keep their terrain and improvements")
	}
}

func TestNuke_InterceptionStopsDetonation(t *testing.T) {
	s := newScenario(t, nil)
	// A known neutral civ whose unit sits under the blast: it declares war
	// and gets a shot at intercepting before the nuke lands.
	gaul := s.g.AddCiv(model.NewCivilization("Gaul"))
	s.g.MeetCivs(s.rome, gaul)
	victim := s.unit("Warrior", gaul, model.Hex{Q: 3, R: 0})
	bomb := s.unit("Atomic Bomb", s.rome, model.Hex{Q: 0, R: 0})

	// Force the interception to always destroy the incoming nuke.
	s.e.Interceptor = func(e *Engine, attacker *UnitCombatant, targetTile model.TileID, civ *model.Civilization) {
		attacker.TakeDamage(attacker.Health())
		e.Game.RemoveUnit(attacker.Unit.ID)
	}

	s.e.Nuke(s.e.UnitCombatant(bomb), victim.Tile)

	if victim.Health != model.MaxUnitHealth {
		t.Error("intercepted nuke must not detonate")
	}
	if !s.g.Civ(gaul).IsAtWarWith(s.rome) {
		t.Error("the attempt alone is a declaration of war")
	}
	if !hasNotificationContaining(s.g.Civ(s.rome), "After an attempted attack") {
		t.Error("attacker should be told the attempt failed")
	}
	d := s.g.Civ(s.carthage).DiplomacyWith(s.rome)
	if d.Modifiers[UsedNuclearWeapons] != 0 {
		t.Error("no blanket penalty when the nuke never detonated")
	}
}

func hasNotificationContaining(civ *model.Civilization, substr string) bool {
	for _, n := range civ.Notifications {
		if strings.Contains(n.Text, substr) {
			return true
		}
	}
	return false
}
