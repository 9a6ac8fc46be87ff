package rules

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// Domain classifies where a unit type operates.
type Domain string

const (
	DomainLand  Domain = "Land"
	DomainWater Domain = "Water"
	DomainAir   Domain = "Air"
)

// UnitDef is a unit type definition. RangedStrength > 0 makes the type
// ranged; Strength is used for melee attack and all defence.
type UnitDef struct {
	Name           string         `yaml:"name"`
	Strength       int            `yaml:"strength"`
	RangedStrength int            `yaml:"rangedStrength"`
	Domain         Domain         `yaml:"domain"`
	Civilian       bool           `yaml:"civilian"`
	Resources      map[string]int `yaml:"resources"` // strategic resources consumed per turn
	InterceptRange int            `yaml:"interceptRange"`
	GreatPerson    string         `yaml:"greatPerson"` // e.g. "War" for great generals
	Uniques        []*Unique      `yaml:"uniques"`
}

// IsRanged reports whether the type attacks at range.
func (d *UnitDef) IsRanged() bool { return d.RangedStrength > 0 }

// TerrainDef describes a base terrain or terrain feature.
type TerrainDef struct {
	Name         string    `yaml:"name"`
	Water        bool      `yaml:"water"`
	Impassable   bool      `yaml:"impassable"`
	DefenceBonus float64   `yaml:"defenceBonus"` // fractional, e.g. 0.25
	Uniques      []*Unique `yaml:"uniques"`
}

// ImprovementDef describes a tile improvement.
type ImprovementDef struct {
	Name    string    `yaml:"name"`
	Uniques []*Unique `yaml:"uniques"`
}

// BuildingDef describes a city building.
type BuildingDef struct {
	Name         string    `yaml:"name"`
	CityStrength int       `yaml:"cityStrength"`
	Uniques      []*Unique `yaml:"uniques"`
}

// NationDef carries civilization-wide uniques.
type NationDef struct {
	Name    string    `yaml:"name"`
	Uniques []*Unique `yaml:"uniques"`
}

// PromotionDef carries per-unit earned uniques.
type PromotionDef struct {
	Name    string    `yaml:"name"`
	Uniques []*Unique `yaml:"uniques"`
}

// PolicyDef carries adopted-policy uniques.
type PolicyDef struct {
	Name    string    `yaml:"name"`
	Uniques []*Unique `yaml:"uniques"`
}

// Difficulty tunes combat against barbarians.
type Difficulty struct {
	Name           string  `yaml:"name"`
	BarbarianBonus float64 `yaml:"barbarianBonus"` // fractional, converted to a percent modifier
}

// Constants are the tunable combat numbers. Values mirror the classic
// strategy-game balance they were lifted from.
type Constants struct {
	BaseFlankingBonus    float64 `yaml:"baseFlankingBonus"`
	LandingMalus         int     `yaml:"landingMalus"`
	BoardingMalus        int     `yaml:"boardingMalus"`
	AcrossRiverMalus     int     `yaml:"acrossRiverMalus"`
	MissingResourceMalus int     `yaml:"missingResourceMalus"`
	FortificationBonus   int     `yaml:"fortificationBonus"`

	DamageToCivilianUnit      int     `yaml:"damageToCivilianUnit"`
	WoundedDamageRatioPercent float64 `yaml:"woundedDamageRatioPercent"`

	CityStrengthBase             float64 `yaml:"cityStrengthBase"`
	CityStrengthPerPop           float64 `yaml:"cityStrengthPerPop"`
	CityStrengthFromTechsMult    float64 `yaml:"cityStrengthFromTechsMult"`
	CityStrengthFromTechsExp     float64 `yaml:"cityStrengthFromTechsExp"`
	CityStrengthFromGarrison     float64 `yaml:"cityStrengthFromGarrison"`
	CityAttackStrengthMultiplier float64 `yaml:"cityAttackStrengthMultiplier"`
}

// DefaultConstants returns the standard balance numbers.
func DefaultConstants() Constants {
	return Constants{
		BaseFlankingBonus:    10,
		LandingMalus:         -50,
		BoardingMalus:        -50,
		AcrossRiverMalus:     -20,
		MissingResourceMalus: -25,
		FortificationBonus:   20,

		DamageToCivilianUnit:      40,
		WoundedDamageRatioPercent: 300,

		CityStrengthBase:             8,
		CityStrengthPerPop:           0.4,
		CityStrengthFromTechsMult:    5.5,
		CityStrengthFromTechsExp:     2.8,
		CityStrengthFromGarrison:     0.2,
		CityAttackStrengthMultiplier: 0.75,
	}
}

// Ruleset is the full rule content combat evaluates against. It is static
// per game; all mutable state lives in model.Game.
type Ruleset struct {
	Units        map[string]*UnitDef        `yaml:"units"`
	Terrains     map[string]*TerrainDef     `yaml:"terrains"`
	Improvements map[string]*ImprovementDef `yaml:"improvements"`
	Buildings    map[string]*BuildingDef    `yaml:"buildings"`
	Nations      map[string]*NationDef      `yaml:"nations"`
	Promotions   map[string]*PromotionDef   `yaml:"promotions"`
	Policies     map[string]*PolicyDef      `yaml:"policies"`
	Difficulties map[string]*Difficulty     `yaml:"difficulties"`
	Constants    Constants                  `yaml:"constants"`

	// TechsResearched approximates tech progress for city strength as a
	// fraction of the tree, per civilization nation name.
	TechsResearched map[string]float64 `yaml:"techsResearched"`
}

// Load reads a YAML ruleset from disk and compiles every unique condition.
func Load(path string) (*Ruleset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read ruleset: %w", err)
	}
	rs := &Ruleset{Constants: DefaultConstants()}
	if err := yaml.Unmarshal(data, rs); err != nil {
		return nil, fmt.Errorf("parse ruleset: %w", err)
	}
	rs.fillNames()
	if err := rs.Compile(); err != nil {
		return nil, err
	}
	return rs, nil
}

// fillNames copies map keys into empty Name fields so YAML authors don't
// have to repeat themselves.
func (rs *Ruleset) fillNames() {
	for k, d := range rs.Units {
		if d.Name == "" {
			d.Name = k
		}
	}
	for k, d := range rs.Terrains {
		if d.Name == "" {
			d.Name = k
		}
	}
	for k, d := range rs.Improvements {
		if d.Name == "" {
			d.Name = k
		}
	}
	for k, d := range rs.Buildings {
		if d.Name == "" {
			d.Name = k
		}
	}
	for k, d := range rs.Nations {
		if d.Name == "" {
			d.Name = k
		}
	}
	for k, d := range rs.Promotions {
		if d.Name == "" {
			d.Name = k
		}
	}
	for k, d := range rs.Policies {
		if d.Name == "" {
			d.Name = k
		}
	}
	for k, d := range rs.Difficulties {
		if d.Name == "" {
			d.Name = k
		}
	}
}

// Compile translates every unique condition in the ruleset into expr
// bytecode. Must be called before the ruleset is queried.
func (rs *Ruleset) Compile() error {
	for _, us := range rs.allUniques() {
		for _, u := range us {
			if err := u.compile(); err != nil {
				return err
			}
		}
	}
	return nil
}

func (rs *Ruleset) allUniques() [][]*Unique {
	var out [][]*Unique
	for _, d := range rs.Units {
		out = append(out, d.Uniques)
	}
	for _, d := range rs.Terrains {
		out = append(out, d.Uniques)
	}
	for _, d := range rs.Improvements {
		out = append(out, d.Uniques)
	}
	for _, d := range rs.Buildings {
		out = append(out, d.Uniques)
	}
	for _, d := range rs.Nations {
		out = append(out, d.Uniques)
	}
	for _, d := range rs.Promotions {
		out = append(out, d.Uniques)
	}
	for _, d := range rs.Policies {
		out = append(out, d.Uniques)
	}
	return out
}

var defaultUnitDef = &UnitDef{Name: "Unknown", Strength: 1, Domain: DomainLand}

// UnitDef resolves a unit type name. Unknown types resolve to a harmless
// default rather than nil — bad mod content must not crash combat.
func (rs *Ruleset) UnitDef(name string) *UnitDef {
	if d, ok := rs.Units[name]; ok {
		return d
	}
	return defaultUnitDef
}

// TerrainDef resolves a terrain or feature name, nil if unknown.
func (rs *Ruleset) TerrainDef(name string) *TerrainDef {
	return rs.Terrains[name]
}

// ImprovementDef resolves an improvement name, nil if unknown.
func (rs *Ruleset) ImprovementDef(name string) *ImprovementDef {
	return rs.Improvements[name]
}

// BuildingDef resolves a building name, nil if unknown.
func (rs *Ruleset) BuildingDef(name string) *BuildingDef {
	return rs.Buildings[name]
}

// DifficultyFor returns the named difficulty, or a zero-bonus default.
func (rs *Ruleset) DifficultyFor(name string) *Difficulty {
	if d, ok := rs.Difficulties[name]; ok {
		return d
	}
	return &Difficulty{Name: name}
}

// TechProgress returns the researched fraction of the tech tree for a
// nation, defaulting to 0.5 for nations the ruleset doesn't track.
func (rs *Ruleset) TechProgress(nation string) float64 {
	if v, ok := rs.TechsResearched[nation]; ok {
		return clamp(v, 0, 1)
	}
	return 0.5
}

// clamp restricts v to [min, max].
func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
