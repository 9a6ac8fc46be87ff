package model

// TileID is a stable handle into the game's tile arena.
type TileID int

// NoTile marks an absent tile reference.
const NoTile TileID = -1

// RoadStatus classifies the road infrastructure on a tile.
type RoadStatus int

const (
	RoadNone RoadStatus = iota
	Road
	Railroad
)

// FeatureFallout is the terrain feature added by nuclear detonations.
const FeatureFallout = "Fallout"

// Tile is one map cell. Ownership and occupancy are handle fields, never
// ownership — the Game arenas own every entity.
type Tile struct {
	ID       TileID
	Position Hex

	BaseTerrain string
	Features    []string // terrain features on top of the base terrain
	Water       bool
	Impassable  bool

	Owner CivID  // civilization owning this tile, NoCiv if unowned
	City  CityID // city whose center tile this is, NoCity otherwise

	Improvement         string // empty if none
	ImprovementPillaged bool
	RoadStatus          RoadStatus
	RoadPillaged        bool

	Units []UnitID // occupants, maintained by the Game
}

// IsCityCenter reports whether a city center sits on this tile.
func (t *Tile) IsCityCenter() bool {
	return t.City != NoCity
}

// HasFeature reports whether the named terrain feature is present.
func (t *Tile) HasFeature(name string) bool {
	for _, f := range t.Features {
		if f == name {
			return true
		}
	}
	return false
}

// AddFeature appends a terrain feature if not already present.
func (t *Tile) AddFeature(name string) {
	if !t.HasFeature(name) {
		t.Features = append(t.Features, name)
	}
}

// RemoveFeature removes the named terrain feature, if present.
func (t *Tile) RemoveFeature(name string) {
	for i, f := range t.Features {
		if f == name {
			t.Features = append(t.Features[:i], t.Features[i+1:]...)
			return
		}
	}
}

// UnpillagedImprovement returns the improvement name if one is present and
// not already pillaged.
func (t *Tile) UnpillagedImprovement() string {
	if t.Improvement == "" || t.ImprovementPillaged {
		return ""
	}
	return t.Improvement
}

// UnpillagedRoad returns the road status, or RoadNone if the road is pillaged.
func (t *Tile) UnpillagedRoad() RoadStatus {
	if t.RoadPillaged {
		return RoadNone
	}
	return t.RoadStatus
}

// RemoveImprovement clears the improvement and its pillage state.
func (t *Tile) RemoveImprovement() {
	t.Improvement = ""
	t.ImprovementPillaged = false
}
