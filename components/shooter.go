package components

import "github.com/yohamta/donburi"

// ShooterData drives a combatant that fires at the nearest enemy.
type ShooterData struct {
	Cooldown float64 // seconds between shots
	Timer    float64 // seconds until the next shot
	Range    float64
	Spread   float64 // max aim error in radians
}

var Shooter = donburi.NewComponentType[ShooterData]()
