package report

import "github.com/nstehr/trinity/trinity-core/model"

// Frame types understood by report consumers.
const (
	TypeCombat       = "combat"
	TypeDetonation   = "detonation"
	TypeNotification = "notification"
)

// CombatResult describes one resolved engagement.
type CombatResult struct {
	Attacker         string    `json:"attacker"`
	Defender         string    `json:"defender"`
	AttackerCiv      string    `json:"attackerCiv"`
	DefenderCiv      string    `json:"defenderCiv"`
	Location         model.Hex `json:"location"`
	DamageToAttacker int       `json:"damageToAttacker"`
	DamageToDefender int       `json:"damageToDefender"`
	AttackerDefeated bool      `json:"attackerDefeated"`
	DefenderDefeated bool      `json:"defenderDefeated"`
}

// Detonation describes one nuclear strike.
type Detonation struct {
	Weapon      string    `json:"weapon"`
	AttackerCiv string    `json:"attackerCiv"`
	Target      model.Hex `json:"target"`
	Strength    int       `json:"strength"`
	Radius      int       `json:"radius"`
	Intercepted bool      `json:"intercepted"`
}

// CivNotification relays one queued player notification.
type CivNotification struct {
	Civ          string             `json:"civ"`
	Notification model.Notification `json:"notification"`
}
