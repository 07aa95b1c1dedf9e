package systems

import (
	"math"

	"github.com/automoto/doomerang-combat/components"
	cfg "github.com/automoto/doomerang-combat/config"
	"github.com/automoto/doomerang-combat/shared/gamemath"
	"github.com/automoto/doomerang-combat/tags"
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
	dmath "github.com/yohamta/donburi/features/math"
)

// UpdatePhysics moves projectiles and reports new contacts to the collision
// pipeline, then moves combatants with friction against walls.
func (p *Projectiles) UpdatePhysics(ecs *ecs.ECS) {
	dt := cfg.DeltaTime()

	var moving []*donburi.Entry
	tags.Projectile.Each(ecs.World, func(e *donburi.Entry) {
		if p.active(e) {
			moving = append(moving, e)
		}
	})

	// Resolving can release projectiles, so iterate a snapshot.
	for _, e := range moving {
		p.stepProjectile(e, dt)
	}

	UpdateCombatants(ecs)
}

// stepProjectile moves in sub steps no longer than a quarter of the
// collider so the center never tunnels into a volume before a contact is
// reported.
func (p *Projectiles) stepProjectile(e *donburi.Entry, dt float64) {
	phys := components.Physics.Get(e)
	tr := components.Transform.Get(e)
	obj := components.Object.Get(e)

	delta := gamemath.Scale(phys.Velocity, dt)
	dist := gamemath.Length(delta)

	steps := 1
	if maxStep := math.Min(obj.W, obj.H) / 4; maxStep > 0 && dist > maxStep {
		steps = int(math.Ceil(dist / maxStep))
	}
	step := gamemath.Scale(delta, 1/float64(steps))

	for i := 0; i < steps; i++ {
		tr.Position = gamemath.Add(tr.Position, step)
		obj.CenterOn(tr.Position.X, tr.Position.Y)

		if p.checkContacts(e) {
			return
		}
	}
}

// checkContacts resolves every volume that started overlapping the
// projectile since the last check. It reports whether a contact changed the
// projectile's motion, which ends the current move.
func (p *Projectiles) checkContacts(e *donburi.Entry) bool {
	proj := components.Projectile.Get(e)
	obj := components.Object.Get(e)

	current := overlapping(obj.Object, tags.ResolvSolid, tags.ResolvCombatant)

	resolved := false
	for _, other := range current {
		owner := other.Data.(*donburi.Entry)
		if _, touching := proj.Touching[owner.Entity()]; touching {
			continue
		}
		out := p.pipeline.Resolve(e, other)
		if out.ChangesMotion() {
			resolved = true
		}
		if !p.active(e) {
			return true
		}
	}

	clear(proj.Touching)
	for _, other := range current {
		proj.Touching[other.Data.(*donburi.Entry).Entity()] = struct{}{}
	}
	return resolved
}

// overlapping returns the volumes with any of tags whose boxes intersect
// obj, skipping volumes that are not linked to a live entry.
func overlapping(obj *resolv.Object, tagNames ...string) []*resolv.Object {
	if obj == nil || obj.Space == nil {
		return nil
	}
	check := obj.Check(0, 0, tagNames...)
	if check == nil {
		return nil
	}

	var out []*resolv.Object
	for _, other := range check.Objects {
		if other == obj {
			continue
		}
		owner, ok := other.Data.(*donburi.Entry)
		if !ok || owner == nil || !owner.Valid() {
			continue
		}
		if !gamemath.RectsOverlap(obj.X, obj.Y, obj.W, obj.H, other.X, other.Y, other.W, other.H) {
			continue
		}
		out = append(out, other)
	}
	return out
}

// UpdateCombatants applies friction to combatant bodies and slides them
// along walls, one axis at a time.
func UpdateCombatants(ecs *ecs.ECS) {
	dt := cfg.DeltaTime()
	tags.Combatant.Each(ecs.World, func(e *donburi.Entry) {
		if e.HasComponent(components.Death) {
			return
		}
		phys := components.Physics.Get(e)
		if gamemath.IsZero(phys.Velocity) {
			return
		}

		speed := gamemath.ApplyFriction(gamemath.Length(phys.Velocity), phys.Friction*dt)
		if phys.MaxSpeed > 0 {
			speed = gamemath.ClampSpeed(speed, phys.MaxSpeed)
		}
		phys.Velocity = gamemath.Scale(gamemath.Normalize(phys.Velocity), speed)

		tr := components.Transform.Get(e)
		obj := components.Object.Get(e)

		dx := phys.Velocity.X * dt
		if dx != 0 {
			if blocked(obj.Object, dx, 0) {
				phys.Velocity.X = 0
			} else {
				tr.Position.X += dx
			}
		}
		dy := phys.Velocity.Y * dt
		if dy != 0 {
			if blocked(obj.Object, 0, dy) {
				phys.Velocity.Y = 0
			} else {
				tr.Position.Y += dy
			}
		}
		obj.CenterOn(tr.Position.X, tr.Position.Y)
	})
}

func blocked(obj *resolv.Object, dx, dy float64) bool {
	if obj.Space == nil {
		return false
	}
	check := obj.Check(dx, dy, tags.ResolvSolid)
	if check == nil {
		return false
	}
	for _, wall := range check.Objects {
		if gamemath.RectsOverlap(obj.X+dx, obj.Y+dy, obj.W, obj.H, wall.X, wall.Y, wall.W, wall.H) {
			return true
		}
	}
	return false
}

// Place moves an entry and its volume to a center position.
func Place(e *donburi.Entry, pos dmath.Vec2) {
	if e.HasComponent(components.Transform) {
		components.Transform.Get(e).Position = pos
	}
	if e.HasComponent(components.Object) {
		components.Object.Get(e).CenterOn(pos.X, pos.Y)
	}
}
