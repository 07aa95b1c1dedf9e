package systems_test

import (
	"testing"

	"github.com/automoto/doomerang-combat/combat"
	"github.com/automoto/doomerang-combat/components"
	cfg "github.com/automoto/doomerang-combat/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yohamta/donburi"
	dmath "github.com/yohamta/donburi/features/math"
)

func (a *arena) area(t *testing.T, template string, pos dmath.Vec2, armed bool) *donburi.Entry {
	t.Helper()
	e, err := a.pool.Spawn(template, pos, 0)
	require.NoError(t, err)
	if armed {
		combat.InitDamageSource(components.DamageSource.Get(e), a.shooter, nil)
	}
	return e
}

func TestUpdateExplosions_DamagesOnce(t *testing.T) {
	noHitInvincibility(t)
	a := newArena(t)
	near := a.enemy(300, 300)
	far := a.enemy(600, 300)
	ex := a.area(t, cfg.TemplateExplosionSmall, dmath.Vec2{X: 310, Y: 300}, true)

	a.tick(3, a.areas.UpdateExplosions)

	damage := cfg.Explosions[cfg.TemplateExplosionSmall].Damage
	assert.Equal(t, 100-damage, components.Health.Get(near).Current)
	assert.Equal(t, 100, components.Health.Get(far).Current)
	assert.True(t, a.pool.Active(ex))
}

func TestUpdateExplosions_SparesOwnerAndFriendlies(t *testing.T) {
	a := newArena(t)
	ex := a.area(t, cfg.TemplateExplosionLarge, components.Transform.Get(a.shooter).Position, true)

	a.tick(1, a.areas.UpdateExplosions)

	assert.Equal(t, 100, components.Health.Get(a.shooter).Current)
	assert.True(t, components.Explosion.Get(ex).Armed)
}

func TestUpdateExplosions_InertUntilInitialized(t *testing.T) {
	a := newArena(t)
	target := a.enemy(300, 300)
	ex := a.area(t, cfg.TemplateExplosionSmall, dmath.Vec2{X: 300, Y: 300}, false)

	a.tick(2, a.areas.UpdateExplosions)
	assert.Equal(t, 100, components.Health.Get(target).Current)

	combat.InitDamageSource(components.DamageSource.Get(ex), a.shooter, nil)
	a.tick(1, a.areas.UpdateExplosions)
	assert.Less(t, components.Health.Get(target).Current, 100)
}

func TestUpdateExplosions_ReleasedAfterDuration(t *testing.T) {
	a := newArena(t)
	ex := a.area(t, cfg.TemplateExplosionSmall, dmath.Vec2{X: 300, Y: 300}, true)
	ticks := int(cfg.Explosions[cfg.TemplateExplosionSmall].Duration*float64(cfg.Sim.TickRate)) + 2

	a.tick(ticks, a.areas.UpdateExplosions)

	assert.False(t, a.pool.Active(ex))
	assert.Nil(t, components.Object.Get(ex).Space)

	// recycled instances come back clean
	again := a.area(t, cfg.TemplateExplosionSmall, dmath.Vec2{X: 300, Y: 300}, false)
	assert.Equal(t, ex.Entity(), again.Entity())
	assert.Empty(t, components.Explosion.Get(again).Hit)
	assert.False(t, components.DamageSource.Get(again).Initialized)
}

func TestUpdateFields_PulsesPerInterval(t *testing.T) {
	noHitInvincibility(t)
	a := newArena(t)
	target := a.enemy(300, 300)
	a.area(t, cfg.TemplatePoisonField, dmath.Vec2{X: 300, Y: 300}, true)
	field := cfg.Fields[cfg.TemplatePoisonField]

	a.tick(1, a.areas.UpdateFields)
	assert.Equal(t, 100-field.Damage, components.Health.Get(target).Current, "first pulse on arming")

	// 0.75s later one more interval has elapsed
	a.tick(44, a.areas.UpdateFields)
	assert.Equal(t, 100-2*field.Damage, components.Health.Get(target).Current)
}

func TestUpdateFields_ReleasedAfterDuration(t *testing.T) {
	a := newArena(t)
	f := a.area(t, cfg.TemplatePoisonField, dmath.Vec2{X: 300, Y: 300}, true)
	ticks := int(cfg.Fields[cfg.TemplatePoisonField].Duration*float64(cfg.Sim.TickRate)) + 2

	a.tick(ticks, a.areas.UpdateFields)

	assert.False(t, a.pool.Active(f))
}
