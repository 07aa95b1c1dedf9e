package config

import (
	"errors"
	"fmt"

	dmath "github.com/yohamta/donburi/features/math"
)

// MovementKind selects a projectile movement strategy
type MovementKind int

const (
	MovementStraight MovementKind = iota
	MovementHoming
	MovementSine
	MovementSpiral
	MovementCurve
	MovementGravity
)

func (k MovementKind) String() string {
	switch k {
	case MovementStraight:
		return "straight"
	case MovementHoming:
		return "homing"
	case MovementSine:
		return "sine"
	case MovementSpiral:
		return "spiral"
	case MovementCurve:
		return "curve"
	case MovementGravity:
		return "gravity"
	default:
		return fmt.Sprintf("movement(%d)", int(k))
	}
}

// LifetimeKind selects a projectile lifetime strategy
type LifetimeKind int

const (
	LifetimeTime LifetimeKind = iota
	LifetimeDistance
	LifetimeHitCount
	LifetimeInfinite
)

func (k LifetimeKind) String() string {
	switch k {
	case LifetimeTime:
		return "time"
	case LifetimeDistance:
		return "distance"
	case LifetimeHitCount:
		return "hit_count"
	case LifetimeInfinite:
		return "infinite"
	default:
		return fmt.Sprintf("lifetime(%d)", int(k))
	}
}

// ActionKind is one discrete response to a collision
type ActionKind int

const (
	ActionPenetrate ActionKind = iota
	ActionBounce
	ActionStop
	ActionDestroy
	ActionSpawnEntity
)

func (k ActionKind) String() string {
	switch k {
	case ActionPenetrate:
		return "penetrate"
	case ActionBounce:
		return "bounce"
	case ActionStop:
		return "stop"
	case ActionDestroy:
		return "destroy"
	case ActionSpawnEntity:
		return "spawn_entity"
	default:
		return fmt.Sprintf("action(%d)", int(k))
	}
}

// ActionConfig is one entry of a collision action list.
type ActionConfig struct {
	Kind          ActionKind
	MaxExecutions int

	// Bounce
	Damping float64

	// SpawnEntity
	Template    string
	SpawnCount  int
	SpawnOffset dmath.Vec2
}

// ColliderConfig is the axis aligned box used as the projectile volume,
// centered on the projectile position.
type ColliderConfig struct {
	Width  float64
	Height float64
}

// ProjectileConfig is an immutable archetype shared by every projectile
// spawned from it.
type ProjectileConfig struct {
	Name string

	// Movement
	Movement         MovementKind
	InitialSpeed     float64 // px/s
	MaxSpeed         float64 // px/s
	AccelerationTime float64 // seconds to reach MaxSpeed
	Easing           string  // gween ease name, see strategy.EaseByName

	HomingStrength float64 // blend rate per second
	HomingRange    float64

	SineAmplitude float64
	SineFrequency float64 // cycles per second

	SpiralRadius float64
	SpiralSpeed  float64 // revolutions per second

	CurveHeight   float64
	CurveDuration float64 // seconds to complete the arc

	Gravity float64 // px/s^2, positive is down

	// Lifetime
	Lifetime    LifetimeKind
	MaxLifetime float64 // seconds
	MaxDistance float64 // px
	MaxHits     int

	Collider ColliderConfig

	// Layers the projectile is allowed to damage
	TargetMask LayerMask
	// Layers treated as obstacles. Zero uses Combat.ObstacleMask.
	ObstacleMask LayerMask

	OnHitEnemy    []ActionConfig
	OnHitObstacle []ActionConfig

	// Damage
	Damage             int
	CriticalChance     float64 // 0..1
	CriticalMultiplier float64
	KnockbackForce     float64
}

// Obstacles returns the obstacle mask in effect for this archetype.
func (c *ProjectileConfig) Obstacles() LayerMask {
	if c.ObstacleMask != 0 {
		return c.ObstacleMask
	}
	return Combat.ObstacleMask
}

// ErrNilProjectileConfig is returned when a projectile is initialized
// without an archetype.
var ErrNilProjectileConfig = errors.New("projectile config is nil")

// Validate reports every invalid field of the archetype.
func (c *ProjectileConfig) Validate() error {
	if c == nil {
		return ErrNilProjectileConfig
	}

	var errs []error
	add := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%s: "+format, append([]any{c.Name}, args...)...))
	}

	if c.InitialSpeed < 0 {
		add("initial speed %v is negative", c.InitialSpeed)
	}
	if c.MaxSpeed < c.InitialSpeed {
		add("max speed %v below initial speed %v", c.MaxSpeed, c.InitialSpeed)
	}
	if c.AccelerationTime < 0 {
		add("acceleration time %v is negative", c.AccelerationTime)
	}

	switch c.Lifetime {
	case LifetimeTime:
		if c.MaxLifetime <= 0 {
			add("max lifetime must be positive")
		}
	case LifetimeDistance:
		if c.MaxDistance <= 0 {
			add("max distance must be positive")
		}
	case LifetimeHitCount:
		if c.MaxHits < 1 {
			add("max hits must be at least 1")
		}
	}

	if c.Collider.Width <= 0 || c.Collider.Height <= 0 {
		add("collider %vx%v must be positive", c.Collider.Width, c.Collider.Height)
	}
	if c.Damage < 0 {
		add("damage %d is negative", c.Damage)
	}
	if c.CriticalChance < 0 || c.CriticalChance > 1 {
		add("critical chance %v outside [0,1]", c.CriticalChance)
	}
	if c.CriticalChance > 0 && c.CriticalMultiplier < 1 {
		add("critical multiplier %v below 1", c.CriticalMultiplier)
	}

	lists := []struct {
		name    string
		actions []ActionConfig
	}{
		{"enemy", c.OnHitEnemy},
		{"obstacle", c.OnHitObstacle},
	}
	for _, list := range lists {
		for i, a := range list.actions {
			if a.MaxExecutions < 1 {
				add("%s action %d (%s) max executions must be at least 1", list.name, i, a.Kind)
			}
			if a.Kind == ActionSpawnEntity && a.Template == "" {
				add("%s action %d spawns without a template", list.name, i)
			}
		}
	}

	return errors.Join(errs...)
}

// ExplosionConfig is a pooled one-shot area damage source.
type ExplosionConfig struct {
	Radius     float64
	Duration   float64 // seconds the volume stays live
	Damage     int
	TargetMask LayerMask
}

// FieldConfig is a pooled area that damages on an interval.
type FieldConfig struct {
	Radius     float64
	Duration   float64
	Interval   float64
	Damage     int
	TargetMask LayerMask
}
