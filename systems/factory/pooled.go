package factory

import (
	"errors"
	"fmt"
	"sort"

	"github.com/automoto/doomerang-combat/archetypes"
	"github.com/automoto/doomerang-combat/components"
	cfg "github.com/automoto/doomerang-combat/config"
	"github.com/automoto/doomerang-combat/pool"
	"github.com/automoto/doomerang-combat/tags"
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
	dmath "github.com/yohamta/donburi/features/math"
)

// ProjectileTemplate builds bullets. A bullet is sized and armed when it is
// launched, so activation leaves it out of the collision space.
func ProjectileTemplate(ecs *ecs.ECS) pool.Template {
	return pool.Template{
		Key: cfg.TemplateBullet,
		New: func(w donburi.World) *donburi.Entry {
			p := archetypes.Projectile.Spawn(ecs)

			obj := resolv.NewObject(0, 0, 1, 1, tags.ResolvProjectile)
			obj.SetShape(resolv.NewRectangle(0, 0, 1, 1))
			obj.Data = p
			components.Object.SetValue(p, components.ObjectData{Object: obj})

			components.Projectile.Get(p).Reset()
			components.DamageSource.Get(p).Reset()
			return p
		},
		OnBeforeDeactivated: func(w donburi.World, e *donburi.Entry) {
			components.Projectile.Get(e).Armed = false
			components.Object.Get(e).Detach()
		},
		OnResetState: func(w donburi.World, e *donburi.Entry) {
			components.Projectile.Get(e).Reset()
			components.DamageSource.Get(e).Reset()
			components.Physics.SetValue(e, components.PhysicsData{})
			components.Transform.SetValue(e, components.TransformData{})
		},
	}
}

// ExplosionTemplate builds the explosion registered under key in
// config.Explosions.
func ExplosionTemplate(ecs *ecs.ECS, key string) pool.Template {
	return pool.Template{
		Key: key,
		New: func(w donburi.World) *donburi.Entry {
			e := archetypes.Explosion.Spawn(ecs)
			attachArea(e, tags.ResolvExplosion, cfg.Explosions[key].Radius)
			components.Explosion.Get(e).Reset()
			components.DamageSource.Get(e).Reset()
			return e
		},
		OnActivated: func(w donburi.World, e *donburi.Entry) {
			components.Explosion.Get(e).Config = cfg.Explosions[key]
			components.AddToSpace(w, components.Object.Get(e).Object)
		},
		OnBeforeDeactivated: func(w donburi.World, e *donburi.Entry) {
			components.Explosion.Get(e).Armed = false
			components.Object.Get(e).Detach()
		},
		OnResetState: func(w donburi.World, e *donburi.Entry) {
			components.Explosion.Get(e).Reset()
			components.DamageSource.Get(e).Reset()
			components.Transform.SetValue(e, components.TransformData{})
		},
	}
}

// FieldTemplate builds the damage field registered under key in
// config.Fields.
func FieldTemplate(ecs *ecs.ECS, key string) pool.Template {
	return pool.Template{
		Key: key,
		New: func(w donburi.World) *donburi.Entry {
			e := archetypes.Field.Spawn(ecs)
			attachArea(e, tags.ResolvField, cfg.Fields[key].Radius)
			components.DamageSource.Get(e).Reset()
			return e
		},
		OnActivated: func(w donburi.World, e *donburi.Entry) {
			components.Field.Get(e).Config = cfg.Fields[key]
			components.AddToSpace(w, components.Object.Get(e).Object)
		},
		OnBeforeDeactivated: func(w donburi.World, e *donburi.Entry) {
			components.Field.Get(e).Armed = false
			components.Object.Get(e).Detach()
		},
		OnResetState: func(w donburi.World, e *donburi.Entry) {
			components.Field.Get(e).Reset()
			components.DamageSource.Get(e).Reset()
			components.Transform.SetValue(e, components.TransformData{})
		},
	}
}

// attachArea gives an area effect a square volume enclosing its radius.
func attachArea(e *donburi.Entry, tag string, radius float64) {
	size := 2 * radius
	if size <= 0 {
		size = 1
	}
	obj := resolv.NewObject(0, 0, size, size, tag)
	obj.SetShape(resolv.NewRectangle(0, 0, size, size))
	obj.Data = e
	components.Object.SetValue(e, components.ObjectData{Object: obj})
	components.Transform.SetValue(e, components.TransformData{Position: dmath.Vec2{}})
}

// RegisterTemplates registers the bullet template and one template per
// configured explosion and field.
func RegisterTemplates(ecs *ecs.ECS, m *pool.Manager) error {
	templates := []pool.Template{ProjectileTemplate(ecs)}
	for _, key := range sortedKeys(cfg.Explosions) {
		templates = append(templates, ExplosionTemplate(ecs, key))
	}
	for _, key := range sortedKeys(cfg.Fields) {
		templates = append(templates, FieldTemplate(ecs, key))
	}

	var errs []error
	for _, t := range templates {
		if err := m.Register(t); err != nil {
			errs = append(errs, fmt.Errorf("register %s: %w", t.Key, err))
		}
	}
	return errors.Join(errs...)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
