package model

import "github.com/google/uuid"

// CivID is a stable handle into the game's civilization arena.
type CivID int

// NoCiv marks an unowned tile or absent civilization reference.
const NoCiv CivID = -1

// DiplomaticStatus is the war/peace state between two civilizations.
type DiplomaticStatus int

const (
	Peace DiplomaticStatus = iota
	War
)

// Diplomacy is one civilization's record of its relationship with another.
// A civilization "knows" exactly the civilizations it holds a record for.
type Diplomacy struct {
	Status    DiplomaticStatus
	Modifiers map[string]float64 // named opinion modifiers, e.g. "Used nuclear weapons"
}

// CanAttack reports whether the relationship already permits attacking.
func (d *Diplomacy) CanAttack() bool {
	return d.Status == War
}

// SetModifier overwrites the named opinion modifier.
func (d *Diplomacy) SetModifier(name string, value float64) {
	if d.Modifiers == nil {
		d.Modifiers = make(map[string]float64)
	}
	d.Modifiers[name] = value
}

// NotificationAction is a clickable payload attached to a notification.
// Formatting and dispatch are the front-end's job.
type NotificationAction struct {
	Kind     string `json:"kind"` // "location" or "civilopedia"
	Location Hex    `json:"location,omitempty"`
	Link     string `json:"link,omitempty"`
}

// LocationAction points a notification at a map position.
func LocationAction(pos Hex) NotificationAction {
	return NotificationAction{Kind: "location", Location: pos}
}

// CivilopediaAction points a notification at a civilopedia entry.
func CivilopediaAction(link string) NotificationAction {
	return NotificationAction{Kind: "civilopedia", Link: link}
}

// Notification is a queued message for one civilization. Text is a template
// with [placeholders] already substituted; localization is external.
type Notification struct {
	ID       string               `json:"id"`
	Text     string               `json:"text"`
	Category string               `json:"category"`
	Icon     string               `json:"icon"`
	Actions  []NotificationAction `json:"actions,omitempty"`
}

// Notification categories and icons shared by combat and diplomacy events.
const (
	NotificationWar       = "War"
	NotificationDiplomacy = "Diplomacy"

	IconWar = "OtherIcons/War"
)

// Civilization is one player-or-AI faction. Uniques attach through the
// ruleset via Nation and Policies; per-game mutable state lives here.
type Civilization struct {
	ID        CivID
	Name      string
	Nation    string // ruleset nation definition
	Barbarian bool
	Defeated  bool

	Capital  CityID
	Policies []string

	// Resources is the strategic-resource stockpile; negative values are
	// shortages and trigger combat maluses.
	Resources map[string]int

	RoadsConnectAcrossRivers bool

	Diplomacy     map[CivID]*Diplomacy
	VisibleTiles  map[TileID]bool
	Notifications []Notification
}

// Knows reports whether this civilization has met other.
func (c *Civilization) Knows(other CivID) bool {
	_, ok := c.Diplomacy[other]
	return ok
}

// DiplomacyWith returns the relationship record for other, or nil if unmet.
func (c *Civilization) DiplomacyWith(other CivID) *Diplomacy {
	return c.Diplomacy[other]
}

// IsAtWarWith reports whether this civilization is at war with other.
func (c *Civilization) IsAtWarWith(other CivID) bool {
	d := c.Diplomacy[other]
	return d != nil && d.Status == War
}

// IsAlive reports whether the civilization is still in the game.
func (c *Civilization) IsAlive() bool {
	return !c.Defeated
}

// CanSee reports whether the tile is currently visible to this civilization.
func (c *Civilization) CanSee(tile TileID) bool {
	return c.VisibleTiles[tile]
}

// AddNotification queues a message for this civilization's player.
func (c *Civilization) AddNotification(text, category, icon string, actions ...NotificationAction) {
	c.Notifications = append(c.Notifications, Notification{
		ID:       uuid.NewString(),
		Text:     text,
		Category: category,
		Icon:     icon,
		Actions:  actions,
	})
}
