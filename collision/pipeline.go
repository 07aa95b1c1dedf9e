// Package collision resolves projectile collisions into an ordered set of
// actions and applies their combined result.
package collision

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/automoto/doomerang-combat/combat"
	"github.com/automoto/doomerang-combat/components"
	cfg "github.com/automoto/doomerang-combat/config"
	"github.com/automoto/doomerang-combat/shared/gamemath"
	"github.com/automoto/doomerang-combat/tags"
	"github.com/automoto/doomerang-combat/telemetry"
	"github.com/rs/zerolog"
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
	dmath "github.com/yohamta/donburi/features/math"
)

// Pool is the part of the pool manager the pipeline needs.
type Pool interface {
	Spawn(key string, position dmath.Vec2, rotation float64) (*donburi.Entry, error)
	Release(e *donburi.Entry) bool
}

// Context describes one collision event.
type Context struct {
	Projectile *donburi.Entry
	Other      *resolv.Object
	// Target is the damageable entity hit, nil for obstacles
	Target   *donburi.Entry
	Mask     cfg.LayerMask
	Position dmath.Vec2 // projectile center
	// HitPoint is the point on the other volume's surface closest to the
	// projectile, for obstacles and entities alike
	HitPoint dmath.Vec2
}

// Kind classifies a collision.
type Kind int

const (
	Ignored Kind = iota
	Obstacle
	Entity
)

func (k Kind) String() string {
	switch k {
	case Obstacle:
		return "obstacle"
	case Entity:
		return "entity"
	default:
		return "ignored"
	}
}

// Outcome reports what Resolve did.
type Outcome struct {
	Kind      Kind
	Result    Result
	Executed  []cfg.ActionKind
	Damaged   bool
	Destroyed bool
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithRoll replaces the critical hit roll. fn must return values in [0, 1).
func WithRoll(fn func() float64) Option {
	return func(p *Pipeline) {
		p.roll = fn
	}
}

// WithMetrics records damage and action counters.
func WithMetrics(m *telemetry.Metrics) Option {
	return func(p *Pipeline) {
		p.metrics = m
	}
}

// Pipeline resolves projectile collisions. It holds no per event state;
// action budgets live on the projectile.
type Pipeline struct {
	world   donburi.World
	pool    Pool
	log     zerolog.Logger
	metrics *telemetry.Metrics
	roll    func() float64
}

// NewPipeline creates a pipeline that recycles projectiles through pool.
func NewPipeline(w donburi.World, pool Pool, log zerolog.Logger, opts ...Option) *Pipeline {
	p := &Pipeline{
		world: w,
		pool:  pool,
		log:   log.With().Str("component", "collision").Logger(),
		roll:  rand.Float64,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Resolve handles projectile touching other. Obstacles take precedence over
// entities. Entity hits deal damage before the enemy action list runs.
func (p *Pipeline) Resolve(projectile *donburi.Entry, other *resolv.Object) Outcome {
	if projectile == nil || !projectile.Valid() || other == nil {
		return Outcome{}
	}
	proj := components.Projectile.Get(projectile)
	if !proj.Armed || proj.Config == nil {
		return Outcome{}
	}
	config := proj.Config
	src := components.DamageSource.Get(projectile)

	ctx := &Context{
		Projectile: projectile,
		Other:      other,
		Position:   components.Transform.Get(projectile).Position,
	}
	ctx.HitPoint = gamemath.ClosestPointOnRect(ctx.Position, other.X, other.Y, other.W, other.H)

	otherEntry, _ := other.Data.(*donburi.Entry)
	if otherEntry != nil && !otherEntry.Valid() {
		otherEntry = nil
	}

	out := Outcome{}
	var list []cfg.ActionConfig

	switch {
	case p.isObstacle(config, other, otherEntry):
		out.Kind = Obstacle
		ctx.Mask = config.Obstacles()
		list = config.OnHitObstacle

	case otherEntry != nil && otherEntry.HasComponent(components.Health) && combat.CanDamage(src, otherEntry):
		out.Kind = Entity
		ctx.Mask = src.Mask
		ctx.Target = otherEntry
		out.Damaged = p.damage(projectile, proj, src, otherEntry)
		proj.HitCount++
		list = config.OnHitEnemy

	default:
		return out
	}

	actions := p.runnable(proj, list)
	results := make([]Result, 0, len(actions))
	for _, a := range actions {
		results = append(results, p.execute(a, ctx))
		out.Executed = append(out.Executed, a.Kind())
	}

	out.Result = Combine(results)
	out.Destroyed = p.apply(projectile, proj, out.Result)
	return out
}

// ChangesMotion reports whether the projectile was released, stopped,
// turned or slowed by the collision.
func (o Outcome) ChangesMotion() bool {
	if o.Kind == Ignored {
		return false
	}
	r := o.Result
	return o.Destroyed || !r.Continue || !gamemath.IsZero(r.Direction) || r.SpeedMultiplier != 1
}

func (p *Pipeline) isObstacle(config *cfg.ProjectileConfig, other *resolv.Object, e *donburi.Entry) bool {
	if e != nil && e.HasComponent(components.Layer) {
		return config.Obstacles().Has(combat.LayerOf(e))
	}
	return other.HasTags(tags.ResolvSolid)
}

// runnable instantiates every configured action whose budget is not spent,
// counting it as executed, sorted by priority.
func (p *Pipeline) runnable(proj *components.ProjectileData, list []cfg.ActionConfig) []Action {
	if proj.ActionCounts == nil {
		proj.ActionCounts = make(map[cfg.ActionKind]int)
	}
	actions := make([]Action, 0, len(list))
	for _, c := range list {
		if proj.ActionCounts[c.Kind] >= c.MaxExecutions {
			continue
		}
		proj.ActionCounts[c.Kind]++
		actions = append(actions, p.newAction(c))
	}
	sort.SliceStable(actions, func(i, j int) bool {
		return actions[i].Priority() < actions[j].Priority()
	})
	return actions
}

// execute runs one action, turning a panic into the default result.
func (p *Pipeline) execute(a Action, ctx *Context) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			p.log.Error().Str("action", a.Kind().String()).Str("panic", fmt.Sprint(r)).Msg("collision action failed")
			res = DefaultResult()
		}
	}()
	p.metrics.ActionExecuted(a.Kind())
	return a.Execute(ctx)
}

func (p *Pipeline) damage(projectile *donburi.Entry, proj *components.ProjectileData, src *components.DamageSourceData, target *donburi.Entry) bool {
	data := combat.GenerateDamageData(p.world, src, projectile, target)

	c := proj.Config
	if c.CriticalChance > 0 && p.roll() < c.CriticalChance {
		data.Amount = gamemath.RoundDamage(float64(data.Amount) * c.CriticalMultiplier)
		data.Critical = true
	}

	if !combat.TakeDamage(p.world, target, data) {
		p.metrics.DamageAbsorbed()
		return false
	}
	p.metrics.DamageApplied(data.Amount, data.Critical)

	if c.KnockbackForce > 0 && target.HasComponent(components.Physics) {
		phys := components.Physics.Get(target)
		push := gamemath.Scale(proj.Direction(), c.KnockbackForce)
		push.Y += cfg.Combat.KnockbackUpwardForce
		phys.Velocity = gamemath.Add(phys.Velocity, push)
	}
	return true
}

// apply pushes the combined result onto the projectile and reports whether it
// was released.
func (p *Pipeline) apply(projectile *donburi.Entry, proj *components.ProjectileData, r Result) bool {
	if r.Destroy {
		if p.pool.Release(projectile) {
			p.metrics.ProjectileReleased("collision")
		}
		return true
	}

	phys := components.Physics.Get(projectile)

	if !r.Continue {
		phys.Velocity = dmath.Vec2{}
		if proj.Movement != nil {
			proj.Movement.ScaleSpeed(0)
		}
		proj.Stopped = true
		return false
	}

	if proj.Movement == nil {
		return false
	}
	if !gamemath.IsZero(r.Direction) {
		dir := gamemath.Normalize(r.Direction)
		proj.Movement.SetDirection(dir)
		components.Transform.Get(projectile).Rotation = gamemath.Angle(dir)
	}
	if r.SpeedMultiplier != 1 {
		proj.Movement.ScaleSpeed(r.SpeedMultiplier)
	}
	if !proj.Movement.RequiresPerTickUpdate() {
		phys.Velocity = gamemath.Scale(proj.Movement.Direction(), proj.Movement.Speed())
	}
	return false
}
