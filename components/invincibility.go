package components

import (
	cfg "github.com/automoto/doomerang-combat/config"
	"github.com/yohamta/donburi"
)

// InvincibilityRecord is one independently timed immunity.
type InvincibilityRecord struct {
	Duration   float64
	Remaining  float64
	ShowEffect bool
}

// HitInvincibilityPolicy returns how long HitInvincibility lasts after a hit.
type HitInvincibilityPolicy func(DamageData) float64

type InvincibilityData struct {
	Records map[cfg.InvincibilityKind]*InvincibilityRecord

	// Nil uses config.Combat.HitInvincibility
	HitPolicy HitInvincibilityPolicy
}

var Invincibility = donburi.NewComponentType[InvincibilityData]()
