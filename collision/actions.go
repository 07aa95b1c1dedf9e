package collision

import (
	"math"

	"github.com/automoto/doomerang-combat/combat"
	"github.com/automoto/doomerang-combat/components"
	cfg "github.com/automoto/doomerang-combat/config"
	"github.com/automoto/doomerang-combat/shared/gamemath"
	dmath "github.com/yohamta/donburi/features/math"
)

// Fixed execution priorities, lowest runs first.
const (
	PriorityPenetrate   = 1
	PriorityBounce      = 2
	PriorityStop        = 3
	PrioritySpawnEntity = 5
	PriorityDestroy     = 10
)

// Result is the outcome of one action. A zero Direction means no change.
type Result struct {
	Continue        bool
	Destroy         bool
	Direction       dmath.Vec2
	SpeedMultiplier float64
}

// DefaultResult leaves the projectile unaffected.
func DefaultResult() Result {
	return Result{Continue: true, SpeedMultiplier: 1}
}

// Combine merges results in execution order.
func Combine(results []Result) Result {
	out := DefaultResult()
	for _, r := range results {
		out.Continue = out.Continue && r.Continue
		out.Destroy = out.Destroy || r.Destroy
		if !gamemath.IsZero(r.Direction) {
			out.Direction = r.Direction
		}
		out.SpeedMultiplier *= r.SpeedMultiplier
	}
	return out
}

// Action is one collision response.
type Action interface {
	Kind() cfg.ActionKind
	Priority() int
	Execute(ctx *Context) Result
}

func (p *Pipeline) newAction(c cfg.ActionConfig) Action {
	switch c.Kind {
	case cfg.ActionBounce:
		return bounce{damping: c.Damping, pipeline: p}
	case cfg.ActionStop:
		return stop{}
	case cfg.ActionDestroy:
		return destroy{}
	case cfg.ActionSpawnEntity:
		return spawnEntity{config: c, pipeline: p}
	default:
		return penetrate{}
	}
}

type penetrate struct{}

func (penetrate) Kind() cfg.ActionKind    { return cfg.ActionPenetrate }
func (penetrate) Priority() int           { return PriorityPenetrate }
func (penetrate) Execute(*Context) Result { return DefaultResult() }

type bounce struct {
	damping  float64
	pipeline *Pipeline
}

func (bounce) Kind() cfg.ActionKind { return cfg.ActionBounce }
func (bounce) Priority() int        { return PriorityBounce }

// Execute reflects the heading about the normal from the closest surface
// point toward the projectile.
func (b bounce) Execute(ctx *Context) Result {
	normal := gamemath.Normalize(gamemath.Sub(ctx.Position, ctx.HitPoint))
	if gamemath.IsZero(normal) {
		b.pipeline.log.Debug().Msg("degenerate bounce normal, using up")
		normal = gamemath.Up
	}

	dir := components.Projectile.Get(ctx.Projectile).Direction()
	reflected := gamemath.Reflect(dir, normal)

	return Result{
		Continue:        true,
		Direction:       reflected,
		SpeedMultiplier: gamemath.Clamp(b.damping, 0.1, 1),
	}
}

type stop struct{}

func (stop) Kind() cfg.ActionKind { return cfg.ActionStop }
func (stop) Priority() int        { return PriorityStop }
func (stop) Execute(*Context) Result {
	return Result{Continue: false, SpeedMultiplier: 0}
}

type destroy struct{}

func (destroy) Kind() cfg.ActionKind { return cfg.ActionDestroy }
func (destroy) Priority() int        { return PriorityDestroy }
func (destroy) Execute(*Context) Result {
	return Result{Continue: false, Destroy: true, SpeedMultiplier: 1}
}

type spawnEntity struct {
	config   cfg.ActionConfig
	pipeline *Pipeline
}

func (spawnEntity) Kind() cfg.ActionKind { return cfg.ActionSpawnEntity }
func (spawnEntity) Priority() int        { return PrioritySpawnEntity }

// Execute spawns the configured template at the hit point, fanned out on a
// circle when more than one is requested. Spawned damage sources inherit
// the projectile's owner and weapon. Projectiles cannot be spawned here: the
// pool does not support reentrant projectile spawns, so they are released
// straight back.
func (s spawnEntity) Execute(ctx *Context) Result {
	log := s.pipeline.log
	if s.config.Template == "" {
		log.Error().Msg("spawn action without template")
		return DefaultResult()
	}

	count := max(s.config.SpawnCount, 1)
	src := components.DamageSource.Get(ctx.Projectile)
	owner := combat.Owner(s.pipeline.world, src)

	for i := 0; i < count; i++ {
		pos := gamemath.Add(ctx.HitPoint, s.config.SpawnOffset)
		if count > 1 {
			angle := 2 * math.Pi * float64(i) / float64(count)
			pos = gamemath.Add(pos, gamemath.Scale(gamemath.FromAngle(angle), cfg.Combat.SpawnScatterRadius))
		}

		e, err := s.pipeline.pool.Spawn(s.config.Template, pos, 0)
		if err != nil {
			log.Error().Err(err).Str("template", s.config.Template).Msg("spawn action failed")
			continue
		}

		if e.HasComponent(components.Projectile) {
			log.Warn().Str("template", s.config.Template).Msg("reentrant projectile spawn rejected")
			s.pipeline.pool.Release(e)
			continue
		}

		if e.HasComponent(components.DamageSource) {
			combat.InitDamageSource(components.DamageSource.Get(e), owner, src.Weapon)
		}
	}

	return DefaultResult()
}
