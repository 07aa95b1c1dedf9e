package components

import "github.com/yohamta/donburi"

// DeathData marks a combatant whose health reached zero.
type DeathData struct {
	Killer    donburi.Entity
	HasKiller bool
	Elapsed   float64 // seconds since death
}

var Death = donburi.NewComponentType[DeathData]()
