package config

// InvincibilityKind is a reason an entity is immune to damage. The numeric
// value is the fixed priority: higher wins when choosing a visual cue.
type InvincibilityKind int

const (
	InvincibilityNone InvincibilityKind = iota
	InvincibilityHit
	InvincibilityBuff
	InvincibilityCutscene
	InvincibilitySpawn
)

// InvincibilityKinds lists every real kind in ascending priority.
var InvincibilityKinds = []InvincibilityKind{
	InvincibilityHit,
	InvincibilityBuff,
	InvincibilityCutscene,
	InvincibilitySpawn,
}

// Priority returns the fixed priority of k.
func (k InvincibilityKind) Priority() int {
	return int(k)
}

// BlocksDamage reports whether an active record of this kind stops damage.
// Spawn invincibility is cosmetic only.
func (k InvincibilityKind) BlocksDamage() bool {
	switch k {
	case InvincibilityHit, InvincibilityBuff, InvincibilityCutscene:
		return true
	default:
		return false
	}
}

func (k InvincibilityKind) String() string {
	switch k {
	case InvincibilityHit:
		return "hit"
	case InvincibilityBuff:
		return "buff"
	case InvincibilityCutscene:
		return "cutscene"
	case InvincibilitySpawn:
		return "spawn"
	default:
		return "none"
	}
}
