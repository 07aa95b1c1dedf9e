// Package strategy holds the pluggable projectile movement and lifetime
// algorithms and the factories that select them by kind.
package strategy

import (
	cfg "github.com/automoto/doomerang-combat/config"
	dmath "github.com/yohamta/donburi/features/math"
)

// Body is the physics body a movement strategy steers.
type Body interface {
	Position() dmath.Vec2
	Velocity() dmath.Vec2
	SetVelocity(v dmath.Vec2)

	// NearestTarget returns the closest damageable target within maxRange.
	NearestTarget(maxRange float64) (Target, bool)
}

// Target is something a homing projectile can chase.
type Target interface {
	Position() dmath.Vec2
	Alive() bool
}

// Movement updates a projectile's velocity and heading.
type Movement interface {
	Initialize(body Body, c *cfg.ProjectileConfig, direction dmath.Vec2)
	UpdateMovement(dt, elapsed float64)
	SetDirection(direction dmath.Vec2)
	ScaleSpeed(multiplier float64)
	Direction() dmath.Vec2
	Speed() float64

	// RequiresPerTickUpdate reports whether UpdateMovement must run every
	// tick. When false the strategy is skipped and velocity is only changed
	// by collision actions.
	RequiresPerTickUpdate() bool
}

// Lifetime decides when a projectile expires.
type Lifetime interface {
	Initialize(c *cfg.ProjectileConfig, onExpire func())
	UpdateLifetime(dt, traveled float64, hits int)
	ShouldDestroy() bool
}

// NewMovement returns the strategy for kind. Unknown kinds move straight.
func NewMovement(kind cfg.MovementKind) Movement {
	switch kind {
	case cfg.MovementHoming:
		return &Homing{}
	case cfg.MovementSine:
		return &Sine{}
	case cfg.MovementSpiral:
		return &Spiral{}
	case cfg.MovementCurve:
		return &Curve{}
	case cfg.MovementGravity:
		return &Gravity{}
	default:
		return &Straight{}
	}
}

// NewLifetime returns the strategy for kind. Unknown kinds expire on time.
func NewLifetime(kind cfg.LifetimeKind) Lifetime {
	switch kind {
	case cfg.LifetimeDistance:
		return &DistanceLifetime{}
	case cfg.LifetimeHitCount:
		return &HitCountLifetime{}
	case cfg.LifetimeInfinite:
		return &InfiniteLifetime{}
	default:
		return &TimeLifetime{}
	}
}
