package model

// Game owns every entity arena. All cross-references between civilizations,
// units, cities and tiles are handle fields resolved through these arenas,
// so the state graph has no ownership cycles.
//
// Combat resolution assumes exclusive access to a Game for the duration of a
// single resolution; there is no internal locking.
type Game struct {
	Civs   []*Civilization
	Units  []*Unit
	Cities []*City
	Tiles  []*Tile

	// Difficulty names a ruleset difficulty definition.
	Difficulty string

	byPos map[Hex]TileID

	// rivers records tile pairs separated by a river edge, keyed by the
	// lower tile ID.
	rivers map[[2]TileID]bool
}

// NewGame returns an empty game state.
func NewGame() *Game {
	return &Game{
		byPos:  make(map[Hex]TileID),
		rivers: make(map[[2]TileID]bool),
	}
}

// NewCivilization returns a civilization with initialized relationship and
// visibility state. Add it to a game with AddCiv.
func NewCivilization(name string) *Civilization {
	return &Civilization{
		ID:           NoCiv,
		Name:         name,
		Nation:       name,
		Capital:      NoCity,
		Resources:    make(map[string]int),
		Diplomacy:    make(map[CivID]*Diplomacy),
		VisibleTiles: make(map[TileID]bool),
	}
}

// NewTile returns an unowned tile at the given position. Add it to a game
// with AddTile.
func NewTile(pos Hex) *Tile {
	return &Tile{
		ID:       NoTile,
		Position: pos,
		Owner:    NoCiv,
		City:     NoCity,
	}
}

// AddCiv appends a civilization to the arena and assigns its handle.
func (g *Game) AddCiv(c *Civilization) CivID {
	c.ID = CivID(len(g.Civs))
	g.Civs = append(g.Civs, c)
	return c.ID
}

// AddTile appends a tile to the arena and indexes its position.
func (g *Game) AddTile(t *Tile) TileID {
	t.ID = TileID(len(g.Tiles))
	g.Tiles = append(g.Tiles, t)
	g.byPos[t.Position] = t.ID
	return t.ID
}

// AddUnit appends a unit to the arena and places it on its tile.
func (g *Game) AddUnit(u *Unit) UnitID {
	u.ID = UnitID(len(g.Units))
	if u.Name == "" {
		u.Name = u.Type
	}
	if u.Health == 0 {
		u.Health = MaxUnitHealth
	}
	g.Units = append(g.Units, u)
	tile := g.Tile(u.Tile)
	tile.Units = append(tile.Units, u.ID)
	return u.ID
}

// AddCity appends a city to the arena and marks its center tile.
func (g *Game) AddCity(c *City) CityID {
	c.ID = CityID(len(g.Cities))
	if c.MaxHealth == 0 {
		c.MaxHealth = MaxCityHealth
	}
	if c.Health == 0 {
		c.Health = c.MaxHealth
	}
	g.Cities = append(g.Cities, c)
	center := g.Tile(c.Center)
	center.City = c.ID
	center.Owner = c.Civ
	civ := g.Civ(c.Civ)
	if civ.Capital == NoCity {
		civ.Capital = c.ID
	}
	return c.ID
}

// Civ resolves a civilization handle. Panics on a stale handle: that is an
// orchestration bug, not an expected game state.
func (g *Game) Civ(id CivID) *Civilization { return g.Civs[id] }

// Unit resolves a unit handle.
func (g *Game) Unit(id UnitID) *Unit { return g.Units[id] }

// City resolves a city handle.
func (g *Game) City(id CityID) *City { return g.Cities[id] }

// Tile resolves a tile handle.
func (g *Game) Tile(id TileID) *Tile { return g.Tiles[id] }

// TileAt returns the tile at the given position, or nil if off-map.
func (g *Game) TileAt(pos Hex) *Tile {
	id, ok := g.byPos[pos]
	if !ok {
		return nil
	}
	return g.Tiles[id]
}

// Neighbors returns the on-map tiles adjacent to id.
func (g *Game) Neighbors(id TileID) []*Tile {
	t := g.Tile(id)
	out := make([]*Tile, 0, 6)
	for _, pos := range t.Position.Neighbors() {
		if n := g.TileAt(pos); n != nil {
			out = append(out, n)
		}
	}
	return out
}

// TilesInDistance returns every on-map tile within radius of center,
// including center itself.
func (g *Game) TilesInDistance(center TileID, radius int) []*Tile {
	c := g.Tile(center)
	var out []*Tile
	for _, t := range g.Tiles {
		if c.Position.DistanceTo(t.Position) <= radius {
			out = append(out, t)
		}
	}
	return out
}

// AerialDistance returns the hex distance between two tiles.
func (g *Game) AerialDistance(a, b TileID) int {
	return g.Tile(a).Position.DistanceTo(g.Tile(b).Position)
}

// AddRiver records a river edge between two adjacent tiles.
func (g *Game) AddRiver(a, b TileID) {
	g.rivers[riverKey(a, b)] = true
}

// IsConnectedByRiver reports whether a river runs between two adjacent tiles.
func (g *Game) IsConnectedByRiver(a, b TileID) bool {
	return g.rivers[riverKey(a, b)]
}

func riverKey(a, b TileID) [2]TileID {
	if a > b {
		a, b = b, a
	}
	return [2]TileID{a, b}
}

// UnitsOn returns the living units standing on a tile.
func (g *Game) UnitsOn(id TileID) []*Unit {
	t := g.Tile(id)
	out := make([]*Unit, 0, len(t.Units))
	for _, uid := range t.Units {
		u := g.Unit(uid)
		if !u.Destroyed {
			out = append(out, u)
		}
	}
	return out
}

// CivUnits returns the living units owned by a civilization.
func (g *Game) CivUnits(civ CivID) []*Unit {
	var out []*Unit
	for _, u := range g.Units {
		if u.Civ == civ && !u.Destroyed {
			out = append(out, u)
		}
	}
	return out
}

// CivCities returns the surviving cities owned by a civilization.
func (g *Game) CivCities(civ CivID) []*City {
	var out []*City
	for _, c := range g.Cities {
		if c.Civ == civ && !c.Destroyed {
			out = append(out, c)
		}
	}
	return out
}

// RemoveUnit marks the unit destroyed and detaches it from its tile.
// Idempotent: removing an already-destroyed unit is a no-op.
func (g *Game) RemoveUnit(id UnitID) {
	u := g.Unit(id)
	if u.Destroyed {
		return
	}
	u.Destroyed = true
	t := g.Tile(u.Tile)
	for i, uid := range t.Units {
		if uid == id {
			t.Units = append(t.Units[:i], t.Units[i+1:]...)
			break
		}
	}
}

// DestroyCity removes a city from the map.
func (g *Game) DestroyCity(id CityID) {
	c := g.City(id)
	if c.Destroyed {
		return
	}
	c.Destroyed = true
	center := g.Tile(c.Center)
	center.City = NoCity
}

// MeetCivs creates mutual diplomacy records between two civilizations.
func (g *Game) MeetCivs(a, b CivID) {
	if a == b {
		return
	}
	ca, cb := g.Civ(a), g.Civ(b)
	if ca.Diplomacy[b] == nil {
		ca.Diplomacy[b] = &Diplomacy{}
	}
	if cb.Diplomacy[a] == nil {
		cb.Diplomacy[a] = &Diplomacy{}
	}
}

// DeclareWar puts both civilizations at war. Civilizations that have not met
// are introduced first; war is always mutual.
func (g *Game) DeclareWar(aggressor, defender CivID) {
	if aggressor == defender {
		return
	}
	g.MeetCivs(aggressor, defender)
	g.Civ(aggressor).Diplomacy[defender].Status = War
	g.Civ(defender).Diplomacy[aggressor].Status = War
}

// RevealTiles adds tiles to a civilization's visible set.
func (g *Game) RevealTiles(civ CivID, tiles ...TileID) {
	c := g.Civ(civ)
	for _, t := range tiles {
		c.VisibleTiles[t] = true
	}
}

// RevealAll makes the whole map visible to a civilization.
func (g *Game) RevealAll(civ CivID) {
	c := g.Civ(civ)
	for _, t := range g.Tiles {
		c.VisibleTiles[t.ID] = true
	}
}
