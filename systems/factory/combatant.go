package factory

import (
	"github.com/automoto/doomerang-combat/archetypes"
	"github.com/automoto/doomerang-combat/combat"
	"github.com/automoto/doomerang-combat/components"
	cfg "github.com/automoto/doomerang-combat/config"
	"github.com/automoto/doomerang-combat/tags"
	"github.com/google/uuid"
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
	dmath "github.com/yohamta/donburi/features/math"
)

// CombatantSpec describes a combatant to place in the arena.
type CombatantSpec struct {
	ID     string // generated when empty
	Name   string
	Layer  cfg.Layer
	X, Y   float64 // center
	Width  float64
	Height float64
	Health int
	Weapon *components.WeaponData

	// Shooter makes the combatant fire its weapon on its own
	Shooter *components.ShooterData

	// Seconds of SpawnInvincibility on creation, 0 for none
	SpawnInvincibility float64
}

// CreateCombatant spawns a damageable body into the arena.
func CreateCombatant(ecs *ecs.ECS, spec CombatantSpec) *donburi.Entry {
	c := archetypes.Combatant.Spawn(ecs)

	id := spec.ID
	if id == "" {
		id = uuid.NewString()
	}
	components.Combatant.SetValue(c, components.CombatantData{
		ID:    id,
		Name:  spec.Name,
		Spawn: dmath.Vec2{X: spec.X, Y: spec.Y},
	})
	components.Layer.SetValue(c, components.LayerData{Layer: spec.Layer})
	components.Health.SetValue(c, components.HealthData{Current: spec.Health, Max: spec.Health})
	components.Invincibility.SetValue(c, components.InvincibilityData{
		Records: make(map[cfg.InvincibilityKind]*components.InvincibilityRecord),
	})
	components.Physics.SetValue(c, components.PhysicsData{Friction: cfg.Sim.Friction})
	components.Transform.SetValue(c, components.TransformData{Position: dmath.Vec2{X: spec.X, Y: spec.Y}})

	obj := resolv.NewObject(spec.X-spec.Width/2, spec.Y-spec.Height/2, spec.Width, spec.Height, tags.ResolvCombatant)
	obj.SetShape(resolv.NewRectangle(0, 0, spec.Width, spec.Height))
	obj.Data = c
	components.Object.SetValue(c, components.ObjectData{Object: obj})
	components.AddToSpace(ecs.World, obj)

	if spec.Weapon != nil {
		donburi.Add(c, components.Weapon, spec.Weapon)
	}
	if spec.Shooter != nil {
		donburi.Add(c, components.Shooter, spec.Shooter)
	}

	combat.StartInvincibility(ecs.World, c, cfg.InvincibilitySpawn, spec.SpawnInvincibility, true)

	return c
}
