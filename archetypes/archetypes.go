package archetypes

import (
	"github.com/automoto/doomerang-combat/components"
	cfg "github.com/automoto/doomerang-combat/config"
	"github.com/automoto/doomerang-combat/tags"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

var (
	Combatant = newArchetype(
		tags.Combatant,
		components.Combatant,
		components.Layer,
		components.Transform,
		components.Object,
		components.Health,
		components.Invincibility,
		components.Physics,
	)
	Wall = newArchetype(
		tags.Wall,
		components.Layer,
		components.Object,
	)
	Space = newArchetype(
		components.Space,
	)
	Projectile = newArchetype(
		tags.Projectile,
		components.Projectile,
		components.DamageSource,
		components.Transform,
		components.Object,
		components.Physics,
		components.Pooled,
	)
	Explosion = newArchetype(
		tags.Explosion,
		components.Explosion,
		components.DamageSource,
		components.Transform,
		components.Object,
		components.Pooled,
	)
	Field = newArchetype(
		tags.Field,
		components.Field,
		components.DamageSource,
		components.Transform,
		components.Object,
		components.Pooled,
	)
)

type archetype struct {
	components []donburi.IComponentType
}

func newArchetype(cs ...donburi.IComponentType) *archetype {
	return &archetype{
		components: cs,
	}
}

func (a *archetype) Spawn(ecs *ecs.ECS, cs ...donburi.IComponentType) *donburi.Entry {
	e := ecs.World.Entry(ecs.Create(
		cfg.Default,
		append(a.components, cs...)...,
	))
	return e
}
