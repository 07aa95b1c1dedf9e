package collision_test

import (
	"testing"

	"github.com/automoto/doomerang-combat/collision"
	"github.com/automoto/doomerang-combat/components"
	cfg "github.com/automoto/doomerang-combat/config"
	"github.com/automoto/doomerang-combat/pool"
	"github.com/automoto/doomerang-combat/systems"
	"github.com/automoto/doomerang-combat/systems/factory"
	"github.com/rs/zerolog"
	"github.com/solarlune/resolv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
	dmath "github.com/yohamta/donburi/features/math"
)

type arena struct {
	ecs         *ecs.ECS
	pool        *pool.Manager
	pipeline    *collision.Pipeline
	projectiles *systems.Projectiles
	shooter     *donburi.Entry
}

// panicPool blows up when asked for the "boom" template.
type panicPool struct {
	*pool.Manager
}

func (p panicPool) Spawn(key string, pos dmath.Vec2, rot float64) (*donburi.Entry, error) {
	if key == "boom" {
		panic("boom")
	}
	return p.Manager.Spawn(key, pos, rot)
}

func newArena(t *testing.T, opts ...collision.Option) *arena {
	t.Helper()
	w := donburi.NewWorld()
	e := ecs.NewECS(w)
	factory.CreateSpace(e, 1280, 720, 32, 32)

	m := pool.New(w, zerolog.Nop())
	require.NoError(t, factory.RegisterTemplates(e, m))

	pp := panicPool{Manager: m}
	pipeline := collision.NewPipeline(w, pp, zerolog.Nop(), opts...)

	a := &arena{
		ecs:         e,
		pool:        m,
		pipeline:    pipeline,
		projectiles: systems.NewProjectiles(pp, pipeline, zerolog.Nop(), nil),
	}
	a.shooter = factory.CreateCombatant(e, factory.CombatantSpec{
		Name: "shooter", Layer: cfg.LayerPlayer, X: 40, Y: 40, Width: 16, Height: 16, Health: 100,
		Weapon: &components.WeaponData{Name: "test", Damage: 10},
	})
	return a
}

func (a *arena) enemy(x, y float64) *donburi.Entry {
	return factory.CreateCombatant(a.ecs, factory.CombatantSpec{
		Name: "enemy", Layer: cfg.LayerEnemy, X: x, Y: y, Width: 16, Height: 16, Health: 100,
	})
}

func (a *arena) launch(t *testing.T, c *cfg.ProjectileConfig, pos, dir dmath.Vec2) *donburi.Entry {
	t.Helper()
	e, err := a.projectiles.Spawn(a.ecs.World, c, a.shooter, components.Weapon.Get(a.shooter), pos, dir)
	require.NoError(t, err)
	return e
}

func (a *arena) active(template string) int {
	for _, s := range a.pool.Stats() {
		if s.Template == template {
			return s.Active
		}
	}
	return 0
}

func testConfig() *cfg.ProjectileConfig {
	return &cfg.ProjectileConfig{
		Name:         "test",
		Movement:     cfg.MovementStraight,
		InitialSpeed: 100,
		MaxSpeed:     100,
		Lifetime:     cfg.LifetimeInfinite,
		Collider:     cfg.ColliderConfig{Width: 4, Height: 4},
		TargetMask:   cfg.Mask(cfg.LayerEnemy),
	}
}

func objectOf(e *donburi.Entry) *resolv.Object {
	return components.Object.Get(e).Object
}

func TestResolve_BounceAndDestroy(t *testing.T) {
	a := newArena(t)
	c := testConfig()
	c.OnHitObstacle = []cfg.ActionConfig{
		{Kind: cfg.ActionBounce, MaxExecutions: 1, Damping: 0.5},
		{Kind: cfg.ActionDestroy, MaxExecutions: 1},
	}
	wall := factory.CreateWall(a.ecs, 200, 0, 20, 400)
	p := a.launch(t, c, dmath.Vec2{X: 195, Y: 100}, dmath.Vec2{X: 1})

	out := a.pipeline.Resolve(p, objectOf(wall))

	assert.Equal(t, collision.Obstacle, out.Kind)
	assert.Equal(t, []cfg.ActionKind{cfg.ActionBounce, cfg.ActionDestroy}, out.Executed)
	assert.True(t, out.Destroyed)
	assert.True(t, out.Result.Destroy)
	assert.False(t, a.pool.Active(p))
}

func TestResolve_BounceReflects(t *testing.T) {
	a := newArena(t)
	c := testConfig()
	c.OnHitObstacle = []cfg.ActionConfig{{Kind: cfg.ActionBounce, MaxExecutions: 3, Damping: 0.5}}
	wall := factory.CreateWall(a.ecs, 200, 0, 20, 400)
	p := a.launch(t, c, dmath.Vec2{X: 195, Y: 100}, dmath.Vec2{X: 1})

	out := a.pipeline.Resolve(p, objectOf(wall))

	require.False(t, out.Destroyed)
	proj := components.Projectile.Get(p)
	assert.InDelta(t, -1, proj.Direction().X, 1e-9)
	assert.InDelta(t, 0, proj.Direction().Y, 1e-9)
	assert.InDelta(t, 50, proj.Speed(), 1e-9)
	assert.InDelta(t, -50, components.Physics.Get(p).Velocity.X, 1e-9)
}

func TestResolve_DampingClamped(t *testing.T) {
	a := newArena(t)
	c := testConfig()
	c.OnHitObstacle = []cfg.ActionConfig{{Kind: cfg.ActionBounce, MaxExecutions: 1, Damping: 0}}
	wall := factory.CreateWall(a.ecs, 200, 0, 20, 400)
	p := a.launch(t, c, dmath.Vec2{X: 195, Y: 100}, dmath.Vec2{X: 1})

	out := a.pipeline.Resolve(p, objectOf(wall))

	assert.InDelta(t, 0.1, out.Result.SpeedMultiplier, 1e-9)
	assert.InDelta(t, 10, components.Projectile.Get(p).Speed(), 1e-9)
}

func TestResolve_DegenerateNormalFallsBackToUp(t *testing.T) {
	a := newArena(t)
	c := testConfig()
	c.OnHitObstacle = []cfg.ActionConfig{{Kind: cfg.ActionBounce, MaxExecutions: 1, Damping: 1}}
	wall := factory.CreateWall(a.ecs, 200, 0, 20, 400)
	// center inside the wall, so the closest point is the center itself
	p := a.launch(t, c, dmath.Vec2{X: 210, Y: 100}, dmath.Vec2{Y: 1})

	a.pipeline.Resolve(p, objectOf(wall))

	dir := components.Projectile.Get(p).Direction()
	assert.InDelta(t, 0, dir.X, 1e-9)
	assert.InDelta(t, -1, dir.Y, 1e-9)
}

func TestResolve_EntityBounceUsesSurfaceNormal(t *testing.T) {
	a := newArena(t)
	c := testConfig()
	c.OnHitEnemy = []cfg.ActionConfig{{Kind: cfg.ActionBounce, MaxExecutions: 1, Damping: 1}}
	// enemy box spans 292..308 x 92..108, struck on its top face off center
	target := a.enemy(300, 100)
	p := a.launch(t, c, dmath.Vec2{X: 296, Y: 90}, dmath.Vec2{Y: 1})

	out := a.pipeline.Resolve(p, objectOf(target))

	require.Equal(t, collision.Entity, out.Kind)
	dir := components.Projectile.Get(p).Direction()
	assert.InDelta(t, 0, dir.X, 1e-9)
	assert.InDelta(t, -1, dir.Y, 1e-9)
}

func TestResolve_EntitySpawnAtSurfacePoint(t *testing.T) {
	a := newArena(t)
	c := testConfig()
	c.OnHitEnemy = []cfg.ActionConfig{
		{Kind: cfg.ActionSpawnEntity, MaxExecutions: 1, Template: cfg.TemplateExplosionSmall, SpawnCount: 1},
	}
	target := a.enemy(300, 100)
	p := a.launch(t, c, dmath.Vec2{X: 296, Y: 90}, dmath.Vec2{Y: 1})

	a.pipeline.Resolve(p, objectOf(target))

	var blast *donburi.Entry
	components.Explosion.Each(a.ecs.World, func(e *donburi.Entry) {
		if a.pool.Active(e) {
			blast = e
		}
	})
	require.NotNil(t, blast)
	pos := components.Transform.Get(blast).Position
	assert.InDelta(t, 296, pos.X, 1e-9)
	assert.InDelta(t, 92, pos.Y, 1e-9)
}

func TestResolve_PenetrateBudget(t *testing.T) {
	a := newArena(t)
	c := testConfig()
	c.Damage = 10
	c.OnHitEnemy = []cfg.ActionConfig{{Kind: cfg.ActionPenetrate, MaxExecutions: 1}}
	first := a.enemy(300, 100)
	second := a.enemy(340, 100)
	p := a.launch(t, c, dmath.Vec2{X: 290, Y: 100}, dmath.Vec2{X: 1})

	out := a.pipeline.Resolve(p, objectOf(first))
	assert.Equal(t, collision.Entity, out.Kind)
	assert.True(t, out.Damaged)
	assert.Equal(t, []cfg.ActionKind{cfg.ActionPenetrate}, out.Executed)

	out = a.pipeline.Resolve(p, objectOf(second))
	assert.True(t, out.Damaged)
	assert.Empty(t, out.Executed)
	assert.Equal(t, 1, components.Projectile.Get(p).ActionCounts[cfg.ActionPenetrate])
	assert.Equal(t, 2, components.Projectile.Get(p).HitCount)
	assert.True(t, a.pool.Active(p))
}

func TestResolve_Stop(t *testing.T) {
	a := newArena(t)
	c := testConfig()
	c.OnHitObstacle = []cfg.ActionConfig{{Kind: cfg.ActionStop, MaxExecutions: 1}}
	wall := factory.CreateWall(a.ecs, 200, 0, 20, 400)
	p := a.launch(t, c, dmath.Vec2{X: 195, Y: 100}, dmath.Vec2{X: 1})

	out := a.pipeline.Resolve(p, objectOf(wall))

	assert.False(t, out.Destroyed)
	assert.False(t, out.Result.Continue)
	proj := components.Projectile.Get(p)
	assert.True(t, proj.Stopped)
	assert.Zero(t, proj.Speed())
	assert.Equal(t, dmath.Vec2{}, components.Physics.Get(p).Velocity)
	assert.True(t, a.pool.Active(p))
}

func TestResolve_IgnoresOwnerAndFriendlies(t *testing.T) {
	a := newArena(t)
	c := testConfig()
	c.Damage = 10
	c.OnHitEnemy = []cfg.ActionConfig{{Kind: cfg.ActionDestroy, MaxExecutions: 1}}
	p := a.launch(t, c, dmath.Vec2{X: 40, Y: 40}, dmath.Vec2{X: 1})

	out := a.pipeline.Resolve(p, objectOf(a.shooter))

	assert.Equal(t, collision.Ignored, out.Kind)
	assert.Equal(t, 100, components.Health.Get(a.shooter).Current)
	assert.True(t, a.pool.Active(p))
}

func TestResolve_PriorityOrder(t *testing.T) {
	a := newArena(t)
	c := testConfig()
	c.OnHitEnemy = []cfg.ActionConfig{
		{Kind: cfg.ActionDestroy, MaxExecutions: 1},
		{Kind: cfg.ActionSpawnEntity, MaxExecutions: 1, Template: cfg.TemplateExplosionSmall, SpawnCount: 1},
		{Kind: cfg.ActionPenetrate, MaxExecutions: 1},
	}
	target := a.enemy(300, 100)
	p := a.launch(t, c, dmath.Vec2{X: 290, Y: 100}, dmath.Vec2{X: 1})

	out := a.pipeline.Resolve(p, objectOf(target))

	assert.Equal(t, []cfg.ActionKind{cfg.ActionPenetrate, cfg.ActionSpawnEntity, cfg.ActionDestroy}, out.Executed)
	assert.True(t, out.Destroyed)
	assert.Equal(t, 1, a.active(cfg.TemplateExplosionSmall))
}

func TestResolve_SpawnedAreaInheritsOwner(t *testing.T) {
	a := newArena(t)
	c := testConfig()
	c.OnHitObstacle = []cfg.ActionConfig{
		{Kind: cfg.ActionSpawnEntity, MaxExecutions: 1, Template: cfg.TemplatePoisonField, SpawnCount: 1},
	}
	wall := factory.CreateWall(a.ecs, 200, 0, 20, 400)
	p := a.launch(t, c, dmath.Vec2{X: 195, Y: 100}, dmath.Vec2{X: 1})

	a.pipeline.Resolve(p, objectOf(wall))

	var field *donburi.Entry
	components.Field.Each(a.ecs.World, func(e *donburi.Entry) {
		if a.pool.Active(e) {
			field = e
		}
	})
	require.NotNil(t, field)
	src := components.DamageSource.Get(field)
	assert.True(t, src.Initialized)
	assert.Equal(t, a.shooter.Entity(), src.Owner)
	pos := components.Transform.Get(field).Position
	assert.InDelta(t, 200, pos.X, 1e-9)
	assert.InDelta(t, 100, pos.Y, 1e-9)
}

func TestResolve_SpawnCountScatters(t *testing.T) {
	a := newArena(t)
	c := testConfig()
	c.OnHitObstacle = []cfg.ActionConfig{
		{Kind: cfg.ActionSpawnEntity, MaxExecutions: 1, Template: cfg.TemplateExplosionLarge, SpawnCount: 3},
	}
	wall := factory.CreateWall(a.ecs, 200, 0, 20, 400)
	p := a.launch(t, c, dmath.Vec2{X: 195, Y: 100}, dmath.Vec2{X: 1})

	a.pipeline.Resolve(p, objectOf(wall))

	assert.Equal(t, 3, a.active(cfg.TemplateExplosionLarge))
}

func TestResolve_SpawnProjectileRejected(t *testing.T) {
	a := newArena(t)
	c := testConfig()
	c.OnHitObstacle = []cfg.ActionConfig{
		{Kind: cfg.ActionSpawnEntity, MaxExecutions: 1, Template: cfg.TemplateBullet, SpawnCount: 2},
	}
	wall := factory.CreateWall(a.ecs, 200, 0, 20, 400)
	p := a.launch(t, c, dmath.Vec2{X: 195, Y: 100}, dmath.Vec2{X: 1})

	out := a.pipeline.Resolve(p, objectOf(wall))

	assert.Equal(t, []cfg.ActionKind{cfg.ActionSpawnEntity}, out.Executed)
	assert.Equal(t, 1, a.active(cfg.TemplateBullet))
	assert.True(t, a.pool.Active(p))
}

func TestResolve_UnknownTemplateIsNoop(t *testing.T) {
	a := newArena(t)
	c := testConfig()
	c.OnHitObstacle = []cfg.ActionConfig{
		{Kind: cfg.ActionSpawnEntity, MaxExecutions: 1, Template: "missing", SpawnCount: 1},
	}
	wall := factory.CreateWall(a.ecs, 200, 0, 20, 400)
	p := a.launch(t, c, dmath.Vec2{X: 195, Y: 100}, dmath.Vec2{X: 1})

	out := a.pipeline.Resolve(p, objectOf(wall))

	assert.Equal(t, collision.DefaultResult(), out.Result)
	assert.True(t, a.pool.Active(p))
}

func TestResolve_EmptyTemplateIsNoop(t *testing.T) {
	a := newArena(t)
	c := testConfig()
	wall := factory.CreateWall(a.ecs, 200, 0, 20, 400)
	p := a.launch(t, c, dmath.Vec2{X: 195, Y: 100}, dmath.Vec2{X: 1})

	// an unvalidated config swapped in after launch
	broken := *c
	broken.OnHitObstacle = []cfg.ActionConfig{{Kind: cfg.ActionSpawnEntity, MaxExecutions: 1}}
	components.Projectile.Get(p).Config = &broken

	out := a.pipeline.Resolve(p, objectOf(wall))

	assert.Equal(t, collision.DefaultResult(), out.Result)
	assert.Equal(t, 1, a.active(cfg.TemplateBullet))
}

func TestResolve_PanicRecovered(t *testing.T) {
	a := newArena(t)
	c := testConfig()
	c.OnHitObstacle = []cfg.ActionConfig{
		{Kind: cfg.ActionSpawnEntity, MaxExecutions: 1, Template: "boom", SpawnCount: 1},
		{Kind: cfg.ActionDestroy, MaxExecutions: 1},
	}
	wall := factory.CreateWall(a.ecs, 200, 0, 20, 400)
	p := a.launch(t, c, dmath.Vec2{X: 195, Y: 100}, dmath.Vec2{X: 1})

	var out collision.Outcome
	require.NotPanics(t, func() {
		out = a.pipeline.Resolve(p, objectOf(wall))
	})
	assert.Equal(t, []cfg.ActionKind{cfg.ActionSpawnEntity, cfg.ActionDestroy}, out.Executed)
	assert.True(t, out.Destroyed)
}

func TestResolve_CriticalAndKnockback(t *testing.T) {
	a := newArena(t, collision.WithRoll(func() float64 { return 0 }))
	c := testConfig()
	c.Damage = 10
	c.CriticalChance = 0.5
	c.CriticalMultiplier = 2
	c.KnockbackForce = 100
	c.OnHitEnemy = []cfg.ActionConfig{{Kind: cfg.ActionPenetrate, MaxExecutions: 5}}
	target := a.enemy(300, 100)
	p := a.launch(t, c, dmath.Vec2{X: 290, Y: 100}, dmath.Vec2{X: 1})

	out := a.pipeline.Resolve(p, objectOf(target))

	require.True(t, out.Damaged)
	assert.Equal(t, 80, components.Health.Get(target).Current)
	v := components.Physics.Get(target).Velocity
	assert.InDelta(t, 100, v.X, 1e-9)
	assert.InDelta(t, cfg.Combat.KnockbackUpwardForce, v.Y, 1e-9)
}

func TestResolve_NoCriticalOnHighRoll(t *testing.T) {
	a := newArena(t, collision.WithRoll(func() float64 { return 0.99 }))
	c := testConfig()
	c.Damage = 10
	c.CriticalChance = 0.5
	c.CriticalMultiplier = 2
	target := a.enemy(300, 100)
	p := a.launch(t, c, dmath.Vec2{X: 290, Y: 100}, dmath.Vec2{X: 1})

	a.pipeline.Resolve(p, objectOf(target))

	assert.Equal(t, 90, components.Health.Get(target).Current)
}

func TestResolve_WeaponDamageAdopted(t *testing.T) {
	a := newArena(t)
	c := testConfig()
	target := a.enemy(300, 100)
	p := a.launch(t, c, dmath.Vec2{X: 290, Y: 100}, dmath.Vec2{X: 1})

	a.pipeline.Resolve(p, objectOf(target))

	// archetype damage is 0, so the weapon's 10 applies
	assert.Equal(t, 90, components.Health.Get(target).Current)
}

func TestResolve_Disarmed(t *testing.T) {
	a := newArena(t)
	c := testConfig()
	c.OnHitObstacle = []cfg.ActionConfig{{Kind: cfg.ActionDestroy, MaxExecutions: 1}}
	wall := factory.CreateWall(a.ecs, 200, 0, 20, 400)
	p := a.launch(t, c, dmath.Vec2{X: 195, Y: 100}, dmath.Vec2{X: 1})
	components.Projectile.Get(p).Armed = false

	out := a.pipeline.Resolve(p, objectOf(wall))

	assert.Equal(t, collision.Ignored, out.Kind)
	assert.Empty(t, out.Executed)
}
