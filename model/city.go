package model

// CityID is a stable handle into the game's city arena.
type CityID int

// NoCity marks an absent city reference.
const NoCity CityID = -1

// MaxCityHealth is the default full health of a city. City health is a
// larger-range counter than unit health and never drops below 1.
const MaxCityHealth = 200

// City is a settlement. Center points at the tile holding the city center.
type City struct {
	ID     CityID
	Name   string
	Civ    CivID
	Center TileID

	Health     int
	MaxHealth  int
	Population int

	Buildings []string // ruleset building definitions present in the city

	IsOriginalCapital bool
	JustCaptured      bool

	Destroyed bool
}

// TakeDamage reduces city health, floored at 1 — cities are captured or
// destroyed through explicit paths, never by damage alone.
func (c *City) TakeDamage(amount int) {
	c.Health -= amount
	if c.Health < 1 {
		c.Health = 1
	}
}

// IsDefeated reports whether the city has been beaten down to minimum health.
func (c *City) IsDefeated() bool {
	return c.Health == 1
}

// HasBuilding reports whether the named building is present.
func (c *City) HasBuilding(name string) bool {
	for _, b := range c.Buildings {
		if b == name {
			return true
		}
	}
	return false
}
