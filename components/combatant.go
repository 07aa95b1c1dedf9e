package components

import (
	cfg "github.com/automoto/doomerang-combat/config"
	"github.com/yohamta/donburi"
	dmath "github.com/yohamta/donburi/features/math"
)

type CombatantData struct {
	ID    string
	Name  string
	Spawn dmath.Vec2 // respawn point
}

// LayerData is the collision category an entity belongs to.
type LayerData struct {
	Layer cfg.Layer
}

// WeaponData is a weapon held by a combatant. Damage sources initialized
// with a weapon adopt its damage.
type WeaponData struct {
	Name       string
	Damage     int
	Projectile string // archetype key in config.Projectiles
}

var (
	Combatant = donburi.NewComponentType[CombatantData]()
	Layer     = donburi.NewComponentType[LayerData]()
	Weapon    = donburi.NewComponentType[WeaponData]()
)
