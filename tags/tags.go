package tags

import "github.com/yohamta/donburi"

var (
	Combatant  = donburi.NewTag().SetName("Combatant")
	Wall       = donburi.NewTag().SetName("Wall")
	Projectile = donburi.NewTag().SetName("Projectile")
	Explosion  = donburi.NewTag().SetName("Explosion")
	Field      = donburi.NewTag().SetName("Field")
)

// Resolv tags for physics collision
const (
	ResolvSolid      = "solid"
	ResolvCombatant  = "Combatant"
	ResolvProjectile = "Projectile"
	ResolvExplosion  = "Explosion"
	ResolvField      = "Field"
)
