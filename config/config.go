package config

import (
	"image/color"

	"github.com/yohamta/donburi/ecs"
)

// Default is the only ECS layer the headless simulation uses.
const Default ecs.LayerID = 0

// SimConfig contains the fixed-tick simulation settings
type SimConfig struct {
	TickRate int `mapstructure:"tickRate"` // ticks per second

	// Collision space
	SpaceWidth  int `mapstructure:"spaceWidth"`
	SpaceHeight int `mapstructure:"spaceHeight"`
	CellSize    int `mapstructure:"cellSize"`

	// Projectiles further than this outside the space are recycled
	OutOfBoundsMargin float64 `mapstructure:"outOfBoundsMargin"`

	// Combatant bodies
	Friction float64 `mapstructure:"friction"` // velocity lost per second
	Gravity  float64 `mapstructure:"gravity"`  // downward acceleration, px/s^2
}

// CombatConfig contains damage and collision tuning values
type CombatConfig struct {
	// Default HitInvincibility duration in seconds
	HitInvincibility float64 `mapstructure:"hitInvincibility"`

	// Layers that count as obstacles for every projectile that does not
	// override it
	ObstacleMask LayerMask `mapstructure:"obstacleMask"`

	// Radius of the circle that SpawnEntity fans multiple spawns over
	SpawnScatterRadius float64 `mapstructure:"spawnScatterRadius"`

	// Upward velocity added to knockback (negative is up)
	KnockbackUpwardForce float64 `mapstructure:"knockbackUpwardForce"`

	// Seconds a dead combatant waits before respawning, 0 disables respawn
	RespawnDelay float64 `mapstructure:"respawnDelay"`
	// SpawnInvincibility granted on respawn
	SpawnInvincibility float64 `mapstructure:"spawnInvincibility"`
}

// InvincibilityStyle is the presentation cue for one invincibility kind
type InvincibilityStyle struct {
	BlinkInterval float64 // seconds
	Color         color.RGBA
}

// InvincibilityConfig maps each kind to its visual cue
type InvincibilityConfig struct {
	Styles map[InvincibilityKind]InvincibilityStyle
}

// Style returns the cue for kind, falling back to a white 0.1s blink.
func (c InvincibilityConfig) Style(kind InvincibilityKind) InvincibilityStyle {
	if s, ok := c.Styles[kind]; ok {
		return s
	}
	return InvincibilityStyle{BlinkInterval: 0.1, Color: White}
}

// PoolEntry describes one prewarmed template
type PoolEntry struct {
	Template    string `mapstructure:"template"`
	InitialSize int    `mapstructure:"initialSize"`
	Expandable  bool   `mapstructure:"expandable"`
}

// PoolConfig lists the templates prewarmed before gameplay starts
type PoolConfig struct {
	Entries []PoolEntry `mapstructure:"entries"`
}

var (
	White  = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	Red    = color.RGBA{R: 255, G: 0, B: 0, A: 255}
	Yellow = color.RGBA{R: 255, G: 235, B: 4, A: 255}
	Cyan   = color.RGBA{R: 0, G: 255, B: 255, A: 255}
	Clear  = color.RGBA{}
)

var (
	Sim           SimConfig
	Combat        CombatConfig
	Invincibility InvincibilityConfig
	Pool          PoolConfig
)

func init() {
	Sim = SimConfig{
		TickRate:          60,
		SpaceWidth:        1280,
		SpaceHeight:       720,
		CellSize:          32,
		OutOfBoundsMargin: 100,
		Friction:          600,
		Gravity:           900,
	}

	Combat = CombatConfig{
		HitInvincibility:     0.5,
		ObstacleMask:         Mask(LayerObstacle),
		SpawnScatterRadius:   12,
		KnockbackUpwardForce: -120,
		RespawnDelay:         2,
		SpawnInvincibility:   1.5,
	}

	Invincibility = InvincibilityConfig{
		Styles: map[InvincibilityKind]InvincibilityStyle{
			InvincibilityHit:      {BlinkInterval: 0.1, Color: Red},
			InvincibilityBuff:     {BlinkInterval: 0.3, Color: Yellow},
			InvincibilityCutscene: {BlinkInterval: 0.1, Color: Clear}, // no visible cue
			InvincibilitySpawn:    {BlinkInterval: 0.2, Color: Cyan},
		},
	}

	Pool = PoolConfig{
		Entries: []PoolEntry{
			{Template: TemplateBullet, InitialSize: 64, Expandable: true},
			{Template: TemplateExplosionSmall, InitialSize: 8, Expandable: true},
			{Template: TemplateExplosionLarge, InitialSize: 4, Expandable: true},
			{Template: TemplatePoisonField, InitialSize: 4, Expandable: true},
		},
	}

	initArchetypes()
}

// DeltaTime returns the fixed step length in seconds.
func DeltaTime() float64 {
	if Sim.TickRate <= 0 {
		return 1.0 / 60.0
	}
	return 1.0 / float64(Sim.TickRate)
}
