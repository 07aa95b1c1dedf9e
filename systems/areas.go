package systems

import (
	"github.com/automoto/doomerang-combat/combat"
	"github.com/automoto/doomerang-combat/components"
	cfg "github.com/automoto/doomerang-combat/config"
	"github.com/automoto/doomerang-combat/shared/gamemath"
	"github.com/automoto/doomerang-combat/tags"
	"github.com/automoto/doomerang-combat/telemetry"
	"github.com/rs/zerolog"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// Areas runs pooled explosions and damage fields.
type Areas struct {
	pool    Pool
	log     zerolog.Logger
	metrics *telemetry.Metrics
}

func NewAreas(pool Pool, log zerolog.Logger, metrics *telemetry.Metrics) *Areas {
	return &Areas{
		pool:    pool,
		log:     log.With().Str("system", "areas").Logger(),
		metrics: metrics,
	}
}

// UpdateExplosions damages each eligible combatant inside an explosion once
// and recycles explosions whose duration ran out. An explosion stays inert
// until its damage source has been initialized.
func (a *Areas) UpdateExplosions(ecs *ecs.ECS) {
	dt := cfg.DeltaTime()
	var done []*donburi.Entry

	tags.Explosion.Each(ecs.World, func(e *donburi.Entry) {
		if !a.pool.Active(e) {
			return
		}
		ex := components.Explosion.Get(e)
		src := components.DamageSource.Get(e)

		if !ex.Armed && src.Initialized {
			arm(src, ex.Config.Damage, ex.Config.TargetMask)
			ex.Armed = true
		}

		if ex.Armed {
			for _, target := range a.inside(e, ex.Config.Radius) {
				if _, hit := ex.Hit[target.Entity()]; hit {
					continue
				}
				ex.Hit[target.Entity()] = struct{}{}
				a.damage(ecs.World, e, src, target)
			}
		}

		ex.Elapsed += dt
		if ex.Elapsed >= ex.Config.Duration {
			done = append(done, e)
		}
	})

	for _, e := range done {
		a.pool.Release(e)
	}
}

// UpdateFields pulses damage on every eligible combatant inside a field
// once per interval, starting on the tick it is armed.
func (a *Areas) UpdateFields(ecs *ecs.ECS) {
	dt := cfg.DeltaTime()
	var done []*donburi.Entry

	tags.Field.Each(ecs.World, func(e *donburi.Entry) {
		if !a.pool.Active(e) {
			return
		}
		f := components.Field.Get(e)
		src := components.DamageSource.Get(e)

		if !f.Armed && src.Initialized {
			arm(src, f.Config.Damage, f.Config.TargetMask)
			f.Armed = true
			f.SinceTick = f.Config.Interval
		}

		if f.Armed && f.Config.Interval > 0 {
			for f.SinceTick >= f.Config.Interval {
				f.SinceTick -= f.Config.Interval
				for _, target := range a.inside(e, f.Config.Radius) {
					a.damage(ecs.World, e, src, target)
				}
			}
			f.SinceTick += dt
		}

		f.Elapsed += dt
		if f.Elapsed >= f.Config.Duration {
			done = append(done, e)
		}
	})

	for _, e := range done {
		a.pool.Release(e)
	}
}

func arm(src *components.DamageSourceData, damage int, mask cfg.LayerMask) {
	if damage > 0 {
		src.Damage = damage
	}
	if mask != 0 {
		src.Mask = mask
	}
}

// inside returns the live combatants whose boxes touch the circle around
// the area's center.
func (a *Areas) inside(e *donburi.Entry, radius float64) []*donburi.Entry {
	center := components.Transform.Get(e).Position
	obj := components.Object.Get(e).Object

	var out []*donburi.Entry
	for _, other := range overlapping(obj, tags.ResolvCombatant) {
		if !gamemath.CircleOverlapsRect(center, radius, other.X, other.Y, other.W, other.H) {
			continue
		}
		out = append(out, other.Data.(*donburi.Entry))
	}
	return out
}

func (a *Areas) damage(w donburi.World, source *donburi.Entry, src *components.DamageSourceData, target *donburi.Entry) {
	if !combat.CanDamage(src, target) {
		return
	}
	data := combat.GenerateDamageData(w, src, source, target)
	if combat.TakeDamage(w, target, data) {
		a.metrics.DamageApplied(data.Amount, false)
	} else {
		a.metrics.DamageAbsorbed()
	}
}
