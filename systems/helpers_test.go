package systems_test

import (
	"testing"

	"github.com/automoto/doomerang-combat/collision"
	"github.com/automoto/doomerang-combat/components"
	cfg "github.com/automoto/doomerang-combat/config"
	"github.com/automoto/doomerang-combat/pool"
	"github.com/automoto/doomerang-combat/systems"
	"github.com/automoto/doomerang-combat/systems/factory"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

type arena struct {
	ecs         *ecs.ECS
	pool        *pool.Manager
	projectiles *systems.Projectiles
	areas       *systems.Areas
	shooter     *donburi.Entry
}

func newArena(t *testing.T) *arena {
	t.Helper()
	w := donburi.NewWorld()
	e := ecs.NewECS(w)
	factory.CreateSpace(e, cfg.Sim.SpaceWidth, cfg.Sim.SpaceHeight, cfg.Sim.CellSize, cfg.Sim.CellSize)

	m := pool.New(w, zerolog.Nop())
	require.NoError(t, factory.RegisterTemplates(e, m))
	pipeline := collision.NewPipeline(w, m, zerolog.Nop(), collision.WithRoll(func() float64 { return 1 }))

	a := &arena{
		ecs:         e,
		pool:        m,
		projectiles: systems.NewProjectiles(m, pipeline, zerolog.Nop(), nil),
		areas:       systems.NewAreas(m, zerolog.Nop(), nil),
	}
	a.shooter = factory.CreateCombatant(e, factory.CombatantSpec{
		Name: "shooter", Layer: cfg.LayerPlayer, X: 40, Y: 40, Width: 16, Height: 16, Health: 100,
		Weapon: &components.WeaponData{Name: "test", Damage: 10, Projectile: "pistol"},
	})
	return a
}

func (a *arena) enemy(x, y float64) *donburi.Entry {
	return factory.CreateCombatant(a.ecs, factory.CombatantSpec{
		Name: "enemy", Layer: cfg.LayerEnemy, X: x, Y: y, Width: 16, Height: 16, Health: 100,
	})
}

func (a *arena) tick(steps int, fns ...func(*ecs.ECS)) {
	for i := 0; i < steps; i++ {
		for _, fn := range fns {
			fn(a.ecs)
		}
	}
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
		InitialSpeed: 60,
		MaxSpeed:     60,
		Lifetime:     cfg.LifetimeInfinite,
		Collider:     cfg.ColliderConfig{Width: 4, Height: 4},
		TargetMask:   cfg.Mask(cfg.LayerEnemy),
	}
}

// noHitInvincibility lets repeated hits land on consecutive ticks.
func noHitInvincibility(t *testing.T) {
	prev := cfg.Combat
	cfg.Combat.HitInvincibility = 0
	t.Cleanup(func() { cfg.Combat = prev })
}
