package systems

import (
	"errors"
	"fmt"

	"github.com/automoto/doomerang-combat/collision"
	"github.com/automoto/doomerang-combat/combat"
	"github.com/automoto/doomerang-combat/components"
	cfg "github.com/automoto/doomerang-combat/config"
	"github.com/automoto/doomerang-combat/shared/gamemath"
	"github.com/automoto/doomerang-combat/strategy"
	"github.com/automoto/doomerang-combat/tags"
	"github.com/automoto/doomerang-combat/telemetry"
	"github.com/rs/zerolog"
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
	dmath "github.com/yohamta/donburi/features/math"
)

// ErrInvalidConfig is returned when a projectile is launched from an
// archetype that fails validation.
var ErrInvalidConfig = errors.New("invalid projectile config")

// Pool is the part of the pool manager the projectile systems need.
type Pool interface {
	collision.Pool
	Active(e *donburi.Entry) bool
}

// Projectiles launches projectiles and runs their per tick movement,
// collision and lifetime.
type Projectiles struct {
	pool     Pool
	pipeline *collision.Pipeline
	log      zerolog.Logger
	metrics  *telemetry.Metrics

	expired []*donburi.Entry
}

// NewProjectiles creates the projectile systems.
func NewProjectiles(pool Pool, pipeline *collision.Pipeline, log zerolog.Logger, metrics *telemetry.Metrics) *Projectiles {
	return &Projectiles{
		pool:     pool,
		pipeline: pipeline,
		log:      log.With().Str("system", "projectiles").Logger(),
		metrics:  metrics,
	}
}

// Spawn launches a projectile from the pool. The owner is never damaged by
// it. A weapon's damage is adopted unless the archetype sets its own.
func (p *Projectiles) Spawn(w donburi.World, config *cfg.ProjectileConfig, owner *donburi.Entry, weapon *components.WeaponData, position, direction dmath.Vec2) (*donburi.Entry, error) {
	e, err := p.pool.Spawn(cfg.TemplateBullet, position, gamemath.Angle(direction))
	if err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		p.log.Error().Err(err).Msg("projectile initialization aborted")
		p.pool.Release(e)
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	proj := components.Projectile.Get(e)
	proj.Reset()
	proj.Config = config
	proj.LastPosition = position

	src := components.DamageSource.Get(e)
	combat.InitDamageSource(src, owner, weapon)
	if config.Damage > 0 {
		src.Damage = config.Damage
	}
	src.Mask = config.TargetMask

	obj := components.Object.Get(e)
	obj.W = config.Collider.Width
	obj.H = config.Collider.Height
	obj.SetShape(resolv.NewRectangle(0, 0, obj.W, obj.H))
	obj.CenterOn(position.X, position.Y)

	body := projectileBody{world: w, entry: e}
	proj.Movement = strategy.NewMovement(config.Movement)
	proj.Movement.Initialize(body, config, direction)
	components.Transform.Get(e).Rotation = gamemath.Angle(proj.Movement.Direction())

	proj.Lifetime = strategy.NewLifetime(config.Lifetime)
	proj.Lifetime.Initialize(config, func() {
		p.expired = append(p.expired, e)
	})

	components.AddToSpace(w, obj.Object)
	proj.Armed = true

	p.metrics.ProjectileSpawned(config.Name)
	return e, nil
}

// SpawnFromWeapon fires the shooter's weapon archetype along direction.
func (p *Projectiles) SpawnFromWeapon(w donburi.World, shooter *donburi.Entry, direction dmath.Vec2) (*donburi.Entry, error) {
	if !shooter.HasComponent(components.Weapon) {
		return nil, fmt.Errorf("%w: shooter has no weapon", ErrInvalidConfig)
	}
	weapon := components.Weapon.Get(shooter)
	config, ok := cfg.Projectiles[weapon.Projectile]
	if !ok {
		return nil, fmt.Errorf("%w: unknown archetype %q", ErrInvalidConfig, weapon.Projectile)
	}
	pos := components.Transform.Get(shooter).Position
	return p.Spawn(w, config, shooter, weapon, pos, direction)
}

func (p *Projectiles) active(e *donburi.Entry) bool {
	return components.Projectile.Get(e).Armed && p.pool.Active(e)
}

// UpdateMovement advances movement strategies that need per tick work.
// Stopped projectiles stay put.
func (p *Projectiles) UpdateMovement(ecs *ecs.ECS) {
	dt := cfg.DeltaTime()
	tags.Projectile.Each(ecs.World, func(e *donburi.Entry) {
		if !p.active(e) {
			return
		}
		proj := components.Projectile.Get(e)
		if proj.Stopped || proj.Movement == nil {
			return
		}
		proj.MoveTime += dt
		if proj.Movement.RequiresPerTickUpdate() {
			proj.Movement.UpdateMovement(dt, proj.MoveTime)
		}
	})
}

// UpdateLifetime accumulates traveled distance from actual displacement,
// ticks lifetimes and recycles expired or out of bounds projectiles.
func (p *Projectiles) UpdateLifetime(ecs *ecs.ECS) {
	dt := cfg.DeltaTime()
	var outOfBounds []*donburi.Entry

	tags.Projectile.Each(ecs.World, func(e *donburi.Entry) {
		if !p.active(e) {
			return
		}
		proj := components.Projectile.Get(e)
		pos := components.Transform.Get(e).Position

		proj.Traveled += gamemath.Distance(proj.LastPosition, pos)
		proj.LastPosition = pos

		proj.Lifetime.UpdateLifetime(dt, proj.Traveled, proj.HitCount)

		if !proj.Lifetime.ShouldDestroy() && outside(pos) {
			outOfBounds = append(outOfBounds, e)
		}
	})

	for _, e := range p.expired {
		if p.pool.Release(e) {
			p.metrics.ProjectileReleased("lifetime")
		}
	}
	p.expired = p.expired[:0]

	for _, e := range outOfBounds {
		if p.pool.Release(e) {
			p.metrics.ProjectileReleased("bounds")
		}
	}
}

func outside(pos dmath.Vec2) bool {
	m := cfg.Sim.OutOfBoundsMargin
	return pos.X < -m || pos.Y < -m ||
		pos.X > float64(cfg.Sim.SpaceWidth)+m || pos.Y > float64(cfg.Sim.SpaceHeight)+m
}
