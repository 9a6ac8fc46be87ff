package model

import "testing"

func testMap(g *Game, radius int) {
	origin := Hex{}
	for q := -radius; q <= radius; q++ {
		for r := -radius; r <= radius; r++ {
			pos := Hex{Q: q, R: r}
			if origin.DistanceTo(pos) > radius {
				continue
			}
			tile := NewTile(pos)
			tile.BaseTerrain = "Grassland"
			g.AddTile(tile)
		}
	}
}

func TestAddUnitDefaults(t *testing.T) {
	g := NewGame()
	testMap(g, 1)
	civ := g.AddCiv(NewCivilization("Rome"))

	id := g.AddUnit(&Unit{Type: "Warrior", Civ: civ, Tile: g.TileAt(Hex{}).ID})
	u := g.Unit(id)

	if u.Health != MaxUnitHealth {
		t.Errorf("expected full health, got %d", u.Health)
	}
	if u.Name != "Warrior" {
		t.Errorf("expected name to default to type, got %q", u.Name)
	}

	units := g.UnitsOn(u.Tile)
	if len(units) != 1 || units[0].ID != id {
		t.Errorf("unit not standing on its tile: %v", units)
	}
}

func TestRemoveUnitIdempotent(t *testing.T) {
	g := NewGame()
	testMap(g, 1)
	civ := g.AddCiv(NewCivilization("Rome"))
	id := g.AddUnit(&Unit{Type: "Warrior", Civ: civ, Tile: g.TileAt(Hex{}).ID})

	g.RemoveUnit(id)
	g.RemoveUnit(id) // second removal must be a no-op

	if !g.Unit(id).Destroyed {
		t.Error("unit should be destroyed")
	}
	if len(g.UnitsOn(g.Unit(id).Tile)) != 0 {
		t.Error("destroyed unit still on tile")
	}
	if len(g.CivUnits(civ)) != 0 {
		t.Error("destroyed unit still counted for civ")
	}
}

func TestAddCitySetsCapitalAndOwnership(t *testing.T) {
	g := NewGame()
	testMap(g, 2)
	civ := g.AddCiv(NewCivilization("Carthage"))

	first := g.AddCity(&City{Name: "Carthage", Civ: civ, Center: g.TileAt(Hex{}).ID, Population: 5})
	second := g.AddCity(&City{Name: "Utica", Civ: civ, Center: g.TileAt(Hex{2, 0}).ID, Population: 3})

	if g.Civ(civ).Capital != first {
		t.Errorf("capital = %d, want first city %d", g.Civ(civ).Capital, first)
	}
	center := g.Tile(g.City(second).Center)
	if center.City != second || center.Owner != civ {
		t.Error("city center tile not marked")
	}
	if g.City(first).Health != MaxCityHealth {
		t.Errorf("expected default city health, got %d", g.City(first).Health)
	}
}

func TestDeclareWarIsMutualAndMeets(t *testing.T) {
	g := NewGame()
	a := g.AddCiv(NewCivilization("Rome"))
	b := g.AddCiv(NewCivilization("Carthage"))

	if g.Civ(a).Knows(b) {
		t.Fatal("civs should start unmet")
	}
	g.DeclareWar(a, b)

	if !g.Civ(a).IsAtWarWith(b) || !g.Civ(b).IsAtWarWith(a) {
		t.Error("war must be mutual")
	}
	if !g.Civ(a).Knows(b) || !g.Civ(b).Knows(a) {
		t.Error("declaring war introduces the civs")
	}
}

func TestRiverConnectionIsSymmetric(t *testing.T) {
	g := NewGame()
	testMap(g, 1)
	a := g.TileAt(Hex{}).ID
	b := g.TileAt(Hex{1, 0}).ID

	g.AddRiver(b, a)
	if !g.IsConnectedByRiver(a, b) || !g.IsConnectedByRiver(b, a) {
		t.Error("river connection should hold in both directions")
	}
	if g.IsConnectedByRiver(a, g.TileAt(Hex{0, 1}).ID) {
		t.Error("unrelated pair reported as river-connected")
	}
}

func TestTilesInDistanceIncludesCenter(t *testing.T) {
	g := NewGame()
	testMap(g, 3)
	center := g.TileAt(Hex{}).ID

	tiles := g.TilesInDistance(center, 1)
	if len(tiles) != 7 {
		t.Errorf("expected 7 tiles (center + 6 neighbors), got %d", len(tiles))
	}

	found := false
	for _, tile := range tiles {
		if tile.ID == center {
			found = true
		}
	}
	if !found {
		t.Error("center tile missing from its own radius")
	}
}

func TestVisibility(t *testing.T) {
	g := NewGame()
	testMap(g, 1)
	civ := g.AddCiv(NewCivilization("Rome"))
	target := g.TileAt(Hex{1, 0}).ID

	if g.Civ(civ).CanSee(target) {
		t.Fatal("tiles start hidden")
	}
	g.RevealTiles(civ, target)
	if !g.Civ(civ).CanSee(target) {
		t.Error("revealed tile still hidden")
	}
	g.RevealAll(civ)
	for _, tile := range g.Tiles {
		if !g.Civ(civ).CanSee(tile.ID) {
			t.Errorf("tile %v hidden after RevealAll", tile.Position)
		}
	}
}
