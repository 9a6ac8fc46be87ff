package model

// UnitID is a stable handle into the game's unit arena.
type UnitID int

// NoUnit marks an absent unit reference.
const NoUnit UnitID = -1

// MaxUnitHealth is the upper bound for unit health.
const MaxUnitHealth = 100

// Unit is a single map unit. Type resolves against the ruleset's unit
// definitions; everything combat needs beyond per-instance state lives there.
type Unit struct {
	ID   UnitID
	Name string // display name, defaults to the type name
	Type string // ruleset unit definition
	Civ  CivID
	Tile TileID

	Health     int // 0-100, clamped by TakeDamage
	Promotions []string

	Embarked          bool
	FortifiedTurns    int // 0 when not fortified
	Guarding          bool
	PreparingAirSweep bool
	InterceptorDuty   bool // set when the unit is standing by to intercept air attacks

	AttacksThisTurn       int
	AttacksSinceTurnStart []Hex

	Destroyed bool
}

// TakeDamage reduces health, clamped to [0, MaxUnitHealth]. Reaching zero
// makes the unit eligible for removal; removal itself is the caller's job.
func (u *Unit) TakeDamage(amount int) {
	u.Health -= amount
	if u.Health < 0 {
		u.Health = 0
	}
	if u.Health > MaxUnitHealth {
		u.Health = MaxUnitHealth
	}
}

// IsFortified reports whether the unit is currently fortified.
func (u *Unit) IsFortified() bool {
	return u.FortifiedTurns > 0
}

// HasPromotion reports whether the unit carries the named promotion.
func (u *Unit) HasPromotion(name string) bool {
	for _, p := range u.Promotions {
		if p == name {
			return true
		}
	}
	return false
}
