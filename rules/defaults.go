package rules

import "github.com/nstehr/trinity/trinity-core/model"

// DefaultRuleset returns the built-in rule content. It is intentionally
// small — enough to run a full engagement and a detonation without any
// external files. Mods replace it wholesale via Load.
func DefaultRuleset() *Ruleset {
	rs := &Ruleset{
		Units: map[string]*UnitDef{
			"Warrior": {Strength: 8, Domain: DomainLand},
			"Swordsman": {
				Strength:  14,
				Domain:    DomainLand,
				Resources: map[string]int{"Iron": 1},
			},
			"Archer":     {Strength: 5, RangedStrength: 7, Domain: DomainLand},
			"Knight":     {Strength: 20, Domain: DomainLand, Resources: map[string]int{"Horses": 1}},
			"Destroyer":  {Strength: 30, Domain: DomainWater},
			"Fighter":    {Strength: 45, RangedStrength: 45, Domain: DomainAir, InterceptRange: 5},
			"Worker":     {Civilian: true, Domain: DomainLand},
			"Settler":    {Civilian: true, Domain: DomainLand},
			"Great General": {
				Civilian:    true,
				Domain:      DomainLand,
				GreatPerson: "War",
				Uniques: []*Unique{
					{Kind: StrengthBonusInRadius, Params: []string{"15", "Military", "2"}, Source: "Great General"},
				},
			},
			"Atomic Bomb": {
				Strength:       50,
				RangedStrength: 50,
				Domain:         DomainAir,
				Resources:      map[string]int{"Uranium": 1},
				Uniques: []*Unique{
					{Kind: NuclearWeapon, Params: []string{"1"}, Source: "Atomic Bomb"},
					{Kind: BlastRadius, Params: []string{"2"}, Source: "Atomic Bomb"},
					{Kind: SelfDestructs, Source: "Atomic Bomb"},
				},
			},
			"Nuclear Missile": {
				Strength:       60,
				RangedStrength: 60,
				Domain:         DomainAir,
				Resources:      map[string]int{"Uranium": 2},
				Uniques: []*Unique{
					{Kind: NuclearWeapon, Params: []string{"2"}, Source: "Nuclear Missile"},
					{Kind: BlastRadius, Params: []string{"2"}, Source: "Nuclear Missile"},
					{Kind: SelfDestructs, Source: "Nuclear Missile"},
				},
			},
		},
		Terrains: map[string]*TerrainDef{
			"Grassland": {},
			"Plains":    {},
			"Hill":      {DefenceBonus: 0.25},
			"Forest": {
				DefenceBonus: 0.25,
				Uniques: []*Unique{
					{Kind: DestroyableByNukesChance, Params: []string{"50"}, Source: "Forest"},
				},
			},
			"Jungle": {
				DefenceBonus: 0.25,
				Uniques: []*Unique{
					{Kind: DestroyableByNukesChance, Params: []string{"50"}, Source: "Jungle"},
				},
			},
			"Marsh":    {DefenceBonus: -0.15},
			"Coast":    {Water: true},
			"Ocean":    {Water: true},
			"Mountain": {Impassable: true},
			model.FeatureFallout: {DefenceBonus: -0.15},
		},
		Improvements: map[string]*ImprovementDef{
			"Farm": {},
			"Mine": {},
			"Landmark": {
				Uniques: []*Unique{{Kind: Unpillagable, Source: "Landmark"}},
			},
			"City ruins": {
				Uniques: []*Unique{{Kind: Irremovable, Source: "City ruins"}},
			},
		},
		Buildings: map[string]*BuildingDef{
			"Walls":  {CityStrength: 5},
			"Castle": {CityStrength: 7},
			"Bomb Shelter": {
				Uniques: []*Unique{
					{Kind: PopulationLossFromNukes, Params: []string{"25", "All"}, Source: "Bomb Shelter"},
					{Kind: GarrisonDamageFromNukes, Params: []string{"25", "All"}, Source: "Bomb Shelter"},
				},
			},
		},
		Nations: map[string]*NationDef{},
		Promotions: map[string]*PromotionDef{
			"Shock": {
				Uniques: []*Unique{
					{Kind: Strength, Params: []string{"15"}, Conditions: []string{`TileIs("Land") && !TileIs("Hill") && !TileIs("Forest") && !TileIs("Jungle")`}, Source: "Shock"},
				},
			},
			"Drill": {
				Uniques: []*Unique{
					{Kind: Strength, Params: []string{"15"}, Conditions: []string{`TileIs("Hill") || TileIs("Forest") || TileIs("Jungle")`}, Source: "Drill"},
				},
			},
			"March": {
				Uniques: []*Unique{{Kind: NoDamagePenaltyWoundedUnits, Source: "March"}},
			},
			"Amphibious": {
				Uniques: []*Unique{
					{Kind: AttackAcrossCoast, Source: "Amphibious"},
					{Kind: AttackAcrossRiver, Source: "Amphibious"},
				},
			},
		},
		Policies: map[string]*PolicyDef{
			"Discipline": {
				Uniques: []*Unique{
					{Kind: FlankAttackBonus, Params: []string{"150"}, Source: "Discipline"},
				},
			},
		},
		Difficulties: map[string]*Difficulty{
			"Settler":   {BarbarianBonus: 0.75},
			"Chieftain": {BarbarianBonus: 0.5},
			"Prince":    {BarbarianBonus: 0.25},
			"Deity":     {},
		},
		Constants: DefaultConstants(),
	}
	rs.fillNames()
	if err := rs.Compile(); err != nil {
		// The built-in content is ours; failing to compile it is a
		// programming error, not a mod-content problem.
		panic(err)
	}
	return rs
}
