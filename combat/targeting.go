package combat

import (
	"github.com/automoto/doomerang-combat/components"
	cfg "github.com/automoto/doomerang-combat/config"
	"github.com/yohamta/donburi"
)

// InitDamageSource binds src to its owner and weapon. The owner is always
// blacklisted. A weapon's damage replaces the base damage.
func InitDamageSource(src *components.DamageSourceData, owner *donburi.Entry, weapon *components.WeaponData) {
	if src.Whitelist == nil {
		src.Whitelist = make(map[donburi.Entity]struct{})
	}
	if src.Blacklist == nil {
		src.Blacklist = make(map[donburi.Entity]struct{})
	}

	src.Owner = 0
	src.HasOwner = false
	if owner != nil && owner.Valid() {
		src.Owner = owner.Entity()
		src.HasOwner = true
		AddToBlacklist(src, owner.Entity())
	}

	src.Weapon = weapon
	if weapon != nil {
		src.Damage = weapon.Damage
	}
	src.Initialized = true
}

// AddToWhitelist makes target damageable regardless of the mask.
func AddToWhitelist(src *components.DamageSourceData, target donburi.Entity) {
	if src.Whitelist == nil {
		src.Whitelist = make(map[donburi.Entity]struct{})
	}
	src.Whitelist[target] = struct{}{}
}

// AddToBlacklist excludes target. The blacklist wins over the whitelist.
func AddToBlacklist(src *components.DamageSourceData, target donburi.Entity) {
	if src.Blacklist == nil {
		src.Blacklist = make(map[donburi.Entity]struct{})
	}
	src.Blacklist[target] = struct{}{}
}

// LayerOf returns the collision layer of e.
func LayerOf(e *donburi.Entry) cfg.Layer {
	if e.HasComponent(components.Layer) {
		return components.Layer.Get(e).Layer
	}
	return cfg.LayerDefault
}

// CanDamage reports whether src may damage target.
func CanDamage(src *components.DamageSourceData, target *donburi.Entry) bool {
	if src == nil || !Alive(target) {
		return false
	}
	id := target.Entity()
	if _, ok := src.Blacklist[id]; ok {
		return false
	}
	if _, ok := src.Whitelist[id]; ok {
		return true
	}
	return src.Mask.Has(LayerOf(target))
}

// Owner resolves the owner entry if it is still in the world.
func Owner(w donburi.World, src *components.DamageSourceData) *donburi.Entry {
	if !src.HasOwner || !w.Valid(src.Owner) {
		return nil
	}
	return w.Entry(src.Owner)
}

// GenerateDamageData builds the damage event src would deal to target.
func GenerateDamageData(w donburi.World, src *components.DamageSourceData, source, target *donburi.Entry) components.DamageData {
	return components.DamageData{
		Attacker: Owner(w, src),
		Target:   target,
		Source:   source,
		Amount:   src.Damage,
	}
}
