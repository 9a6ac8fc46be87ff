package battle

import (
	"fmt"
	"log/slog"
	"math"
	"strconv"

	"github.com/nstehr/trinity/trinity-core/model"
	"github.com/nstehr/trinity/trinity-core/rules"
)

// UsedNuclearWeapons is the blanket opinion penalty applied to every
// civilization that knows a nuke user.
const UsedNuclearWeapons = "Used nuclear weapons"

// MayUseNuke reports whether the attacker is allowed to detonate on the
// target tile. Nuking the tile the nuke stands on is forbidden; so is any
// strike that would drag the attacker into a war it cannot declare. Nuking
// your own territory and units is allowed.
func (e *Engine) MayUseNuke(attacker *UnitCombatant, targetTile model.TileID) bool {
	if attacker.Unit.Tile == targetTile {
		return false
	}
	attackerCiv := attacker.Civ()
	if !attackerCiv.CanSee(targetTile) {
		return false
	}

	canNuke := true
	checkDefenderCiv := func(civID model.CivID) {
		if civID == model.NoCiv {
			return
		}
		civ := e.Game.Civ(civID)
		if civ.ID == attackerCiv.ID || civ.Defeated || civ.Barbarian {
			return
		}
		if d := attackerCiv.DiplomacyWith(civID); d != nil && d.CanAttack() {
			return
		}
		canNuke = false
	}

	for _, tile := range e.Game.TilesInDistance(targetTile, e.NukeBlastRadius(attacker)) {
		checkDefenderCiv(tile.Owner)
		if combatant := e.combatantOnTile(tile); combatant != nil {
			checkDefenderCiv(combatant.Civ().ID)
		}
	}
	return canNuke
}

// Nuke detonates the attacker's weapon on the target tile: war declarations,
// notifications, per-tile explosion effects, self-destruction, and the
// blanket diplomatic penalty. A unit without a declared strike strength is
// malformed content and aborts with no state change.
func (e *Engine) Nuke(attacker *UnitCombatant, targetTile model.TileID) {
	attackingCiv := attacker.Civ()

	nukeStrength, ok := e.NukeStrength(attacker)
	if !ok {
		slog.Warn("unit has no declared nuclear strength", "unit", attacker.Name())
		return
	}

	hitTiles := e.Game.TilesInDistance(targetTile, e.NukeBlastRadius(attacker))

	hitCivsTerritory, declaredWarCivs := e.declareWarOnHitCivs(attacker, hitTiles, targetTile)

	e.addNukeNotifications(targetTile, attacker, declaredWarCivs, hitCivsTerritory)

	// Intercepted before it could detonate.
	if attacker.IsDefeated() {
		return
	}

	attacker.Unit.AttacksSinceTurnStart = append(attacker.Unit.AttacksSinceTurnStart,
		e.Game.Tile(targetTile).Position)

	for _, tile := range hitTiles {
		e.nukeExplosionForTile(attacker, tile, nukeStrength, tile.ID == targetTile)
	}

	if e.Rules.UnitHasUnique(attacker.Unit, rules.SelfDestructs, nil) {
		e.Game.RemoveUnit(attacker.Unit.ID)
	}

	// The reputational hit lands on everyone who knows the attacker, not
	// just the civilizations under the blast.
	for _, civ := range e.Game.Civs {
		if civ.ID == attackingCiv.ID || !civ.Knows(attackingCiv.ID) {
			continue
		}
		civ.DiplomacyWith(attackingCiv.ID).SetModifier(UsedNuclearWeapons, -50)
	}

	if !attacker.IsDefeated() {
		attacker.Unit.AttacksThisTurn++
	}
}

// NukeStrength reads the declared strike strength, reporting absence (or an
// unparseable parameter) distinctly from zero.
func (e *Engine) NukeStrength(attacker *UnitCombatant) (int, bool) {
	uniques := e.Rules.UnitUniques(attacker.Unit, rules.NuclearWeapon, nil)
	if len(uniques) == 0 {
		return 0, false
	}
	v, err := strconv.Atoi(uniques[0].Param(0))
	if err != nil {
		return 0, false
	}
	return v, true
}

// NukeBlastRadius reads the declared blast radius, defaulting to 2.
func (e *Engine) NukeBlastRadius(attacker *UnitCombatant) int {
	uniques := e.Rules.UnitUniques(attacker.Unit, rules.BlastRadius, nil)
	if len(uniques) == 0 {
		return 2
	}
	return uniques[0].IntParam(0, 2)
}

// combatantOnTile returns the combatant holding a tile: its city if the tile
// is a city center, otherwise the first living unit on it.
func (e *Engine) combatantOnTile(t *model.Tile) Combatant {
	if t.IsCityCenter() {
		return e.CityCombatant(e.Game.City(t.City))
	}
	if units := e.Game.UnitsOn(t.ID); len(units) > 0 {
		return e.UnitCombatant(units[0])
	}
	return nil
}

// declareWarOnHitCivs declares war on every civilization whose territory or
// units sit under the blast, and scrambles interceptors for civilizations
// whose units were targeted. Returns the territory owners hit and the civs
// that newly declared war, deduplicated.
func (e *Engine) declareWarOnHitCivs(attacker *UnitCombatant, hitTiles []*model.Tile, targetTile model.TileID) (hitCivsTerritory, declaredWarCivs []*model.Civilization) {
	attackingCiv := attacker.Civ()

	declared := make(map[model.CivID]bool)
	tryDeclareWar := func(sufferedID model.CivID) {
		suffered := e.Game.Civ(sufferedID)
		if suffered.ID == attackingCiv.ID || !suffered.Knows(attackingCiv.ID) {
			return
		}
		if suffered.IsAtWarWith(attackingCiv.ID) {
			return
		}
		e.Game.DeclareWar(sufferedID, attackingCiv.ID)
		if !declared[sufferedID] {
			declared[sufferedID] = true
			declaredWarCivs = append(declaredWarCivs, suffered)
		}
	}

	seenTerritory := make(map[model.CivID]bool)
	for _, tile := range hitTiles {
		if tile.Owner == model.NoCiv || seenTerritory[tile.Owner] {
			continue
		}
		seenTerritory[tile.Owner] = true
		hitCivsTerritory = append(hitCivsTerritory, e.Game.Civ(tile.Owner))
		tryDeclareWar(tile.Owner)
	}

	// Civilizations whose units are under the blast get a chance to
	// intercept the incoming strike before it lands.
	seenUnits := make(map[model.CivID]bool)
	for _, tile := range hitTiles {
		for _, u := range e.Game.UnitsOn(tile.ID) {
			if u.Civ == attackingCiv.ID || seenUnits[u.Civ] {
				continue
			}
			seenUnits[u.Civ] = true
			tryDeclareWar(u.Civ)
			if attacker.IsAirUnit() && !attacker.IsDefeated() && e.Interceptor != nil {
				e.Interceptor(e, attacker, targetTile, e.Game.Civ(u.Civ))
			}
		}
	}

	return hitCivsTerritory, declaredWarCivs
}

func (e *Engine) addNukeNotifications(targetTile model.TileID, attacker *UnitCombatant, declaredWarCivs, hitCivsTerritory []*model.Civilization) {
	attackingCiv := attacker.Civ()
	actions := []model.NotificationAction{
		model.LocationAction(e.Game.Tile(targetTile).Position),
		model.CivilopediaAction(fmt.Sprintf("Units/%s", attacker.Name())),
	}

	// Intercepted and destroyed before detonating: the attacker still
	// learns who declared war over the attempt, and nothing else happens.
	if attacker.IsDefeated() {
		for _, defendingCiv := range declaredWarCivs {
			attackingCiv.AddNotification(
				fmt.Sprintf("After an attempted attack by our [%s], [%s] has declared war on us!",
					attacker.Name(), defendingCiv.Name),
				model.NotificationDiplomacy, model.IconWar, actions...)
		}
		return
	}

	for _, defendingCiv := range declaredWarCivs {
		attackingCiv.AddNotification(
			fmt.Sprintf("After being hit by our [%s], [%s] has declared war on us!",
				attacker.Name(), defendingCiv.Name),
			model.NotificationDiplomacy, model.IconWar, actions...)
	}

	inTerritory := make(map[model.CivID]bool)
	for _, civ := range hitCivsTerritory {
		inTerritory[civ.ID] = true
	}

	for _, otherCiv := range e.Game.Civs {
		if !otherCiv.IsAlive() || otherCiv.ID == attackingCiv.ID {
			continue
		}
		switch {
		case inTerritory[otherCiv.ID]:
			otherCiv.AddNotification(
				fmt.Sprintf("A(n) [%s] from [%s] has exploded in our territory!",
					attacker.Name(), attackingCiv.Name),
				model.NotificationWar, model.IconWar, actions...)
		case otherCiv.Knows(attackingCiv.ID):
			otherCiv.AddNotification(
				fmt.Sprintf("A(n) [%s] has been detonated by [%s]!",
					attacker.Name(), attackingCiv.Name),
				model.NotificationWar, model.IconWar, actions...)
		default:
			otherCiv.AddNotification(
				fmt.Sprintf("A(n) [%s] has been detonated by an unknown civilization!",
					attacker.Name()),
				model.NotificationWar, model.IconWar, actions...)
		}
	}
}

// nukeExplosionForTile applies one tile's worth of explosion effects: city
// damage, unit damage, terrain destruction, pillage and fallout.
func (e *Engine) nukeExplosionForTile(attacker *UnitCombatant, tile *model.Tile, nukeStrength int, isGroundZero bool) {
	attackingCiv := attacker.Civ()

	// Shortage of the weapon's strategic resources halves damage per
	// missing resource. Barbarians ignore logistics.
	resourceModifier := 1.0
	if !attackingCiv.Barbarian {
		for resource := range attacker.def().Resources {
			if attackingCiv.Resources[resource] < 0 {
				resourceModifier *= 0.5
			}
		}
	}

	// A bunker shields the garrison even when the city itself is lost.
	buildingModifier := 1.0

	if tile.IsCityCenter() {
		city := e.Game.City(tile.City)
		buildingModifier = e.cityAggregateModifier(city, rules.GarrisonDamageFromNukes)
		e.nukeCityDamage(city, nukeStrength, resourceModifier)
		e.PostBattleNotifications(attacker, e.CityCombatant(city), tile)
		e.DestroyIfDefeated(city.Civ, attackingCiv.ID)
	}

	// Snapshot: units may be destroyed mid-iteration.
	unitsOnTile := e.Game.UnitsOn(tile.ID)
	for _, unit := range unitsOnTile {
		var damage int
		switch {
		case isGroundZero || nukeStrength >= 2:
			damage = 100
		case nukeStrength == 1:
			damage = 30 + e.Rand.Intn(40) + e.Rand.Intn(40)
		default:
			damage = 20 + e.Rand.Intn(30)
		}
		damage = int(float64(damage)*buildingModifier*resourceModifier + epsilon)
		e.applyNukeDamageToUnit(attacker, unit, damage, tile)
	}

	// Surviving city centers keep their terrain and improvements intact.
	if tile.IsCityCenter() {
		return
	}

	if e.Rules.TileHasTerrainUnique(tile, rules.DestroyableByNukesChance) {
		features := append([]string(nil), tile.Features...)
		for _, feature := range features {
			for _, u := range e.Rules.TerrainUniques(feature, rules.DestroyableByNukesChance) {
				chance := u.FloatParam(0, 0) / 100.0
				if !(chance > 0 && isGroundZero) && e.Rand.Float64() >= chance {
					continue
				}
				tile.RemoveFeature(feature)
				e.applyPillageAndFallout(tile)
			}
		}
	} else if isGroundZero || e.Rand.Float64() < 0.5 {
		e.applyPillageAndFallout(tile)
	}
}

const epsilon = 1e-6

// applyNukeDamageToUnit damages one unit caught in a blast. Civilians die
// outright once the damage would push them to 40 health or below; military
// units take the damage through the normal path.
func (e *Engine) applyNukeDamageToUnit(attacker *UnitCombatant, unit *model.Unit, damage int, tile *model.Tile) {
	defender := e.UnitCombatant(unit)
	if defender.IsCivilian() {
		if unit.Health-damage <= 40 {
			e.Game.RemoveUnit(unit.ID)
		}
	} else {
		defender.TakeDamage(damage)
	}

	e.PostBattleNotifications(attacker, defender, tile)
	e.removeIfDead(defender)
	e.DestroyIfDefeated(unit.Civ, attacker.Civ().ID)
}

// applyPillageAndFallout wrecks a tile's infrastructure and contaminates it.
func (e *Engine) applyPillageAndFallout(tile *model.Tile) {
	if improvement := tile.UnpillagedImprovement(); improvement != "" {
		if !e.Rules.ImprovementHasUnique(improvement, rules.Irremovable) {
			if e.Rules.ImprovementHasUnique(improvement, rules.Unpillagable) {
				tile.RemoveImprovement()
			} else {
				tile.ImprovementPillaged = true
			}
		}
	}

	if tile.UnpillagedRoad() != model.RoadNone {
		tile.RoadPillaged = true
	}

	if tile.Water || tile.Impassable || tile.HasFeature(model.FeatureFallout) {
		return
	}
	tile.AddFeature(model.FeatureFallout)
}

// nukeCityDamage damages a city, possibly destroying it outright. Original
// capitals are always protected; a current capital taken this turn is not.
func (e *Engine) nukeCityDamage(city *model.City, nukeStrength int, resourceModifier float64) {
	if (nukeStrength > 2 || (nukeStrength > 1 && city.Population < 5)) &&
		e.cityCanBeDestroyed(city, true) {
		e.Game.DestroyCity(city.ID)
		return
	}

	cc := e.CityCombatant(city)
	cc.TakeDamage(int(float64(cc.Health()) * 0.5 * resourceModifier))

	var lossFraction float64
	switch nukeStrength {
	case 0:
		lossFraction = 0
	case 1:
		lossFraction = (30 + float64(e.Rand.Intn(20)) + float64(e.Rand.Intn(20))) / 100
	case 2:
		lossFraction = (60 + float64(e.Rand.Intn(10)) + float64(e.Rand.Intn(10))) / 100
	default:
		lossFraction = 1
	}

	loss := int(float64(city.Population) *
		e.cityAggregateModifier(city, rules.PopulationLossFromNukes) *
		lossFraction)
	city.Population = int(math.Max(1, float64(city.Population-loss)))
}

// cityCanBeDestroyed applies the capital-protection rules. justCaptured
// lifts the protection for a capital whose conqueror has not yet settled in.
func (e *Engine) cityCanBeDestroyed(city *model.City, justCaptured bool) bool {
	if city.IsOriginalCapital {
		return false
	}
	isCapital := e.Game.Civ(city.Civ).Capital == city.ID
	if isCapital && !(justCaptured || city.JustCaptured) {
		return false
	}
	return true
}

// cityAggregateModifier multiplies together the qualifying building-rule
// percentages of a kind, 1.0 when none apply.
func (e *Engine) cityAggregateModifier(city *model.City, kind rules.Kind) float64 {
	modifier := 1.0
	for _, u := range e.Rules.CityUniques(city, kind, nil) {
		if !cityMatchesFilter(city, u.Param(1)) {
			continue
		}
		modifier *= u.FloatParam(0, 0) / 100.0
	}
	return modifier
}

func cityMatchesFilter(city *model.City, filter string) bool {
	return filter == "All" || filter == "City" || filter == city.Name
}
