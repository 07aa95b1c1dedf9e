package components

import (
	cfg "github.com/automoto/doomerang-combat/config"
	"github.com/yohamta/donburi"
)

// DamageData is one damage event. Attacker and Source may be nil.
type DamageData struct {
	Attacker *donburi.Entry
	Target   *donburi.Entry
	Source   *donburi.Entry
	Amount   int
	Critical bool
}

// DamageSourceData decides which entities a projectile, explosion or field
// may damage. Owner is held as an entity id so the source never keeps its
// owner alive.
type DamageSourceData struct {
	Owner    donburi.Entity
	HasOwner bool
	Weapon   *WeaponData

	Damage int
	Mask   cfg.LayerMask

	Whitelist map[donburi.Entity]struct{}
	Blacklist map[donburi.Entity]struct{}

	Initialized bool
}

// Reset clears the source back to its freshly constructed state.
func (d *DamageSourceData) Reset() {
	d.Owner = 0
	d.HasOwner = false
	d.Weapon = nil
	d.Damage = 0
	d.Mask = 0
	clear(d.Whitelist)
	clear(d.Blacklist)
	d.Initialized = false
}

var DamageSource = donburi.NewComponentType[DamageSourceData]()
