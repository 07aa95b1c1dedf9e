package systems

import (
	"math"

	"github.com/automoto/doomerang-combat/combat"
	"github.com/automoto/doomerang-combat/components"
	"github.com/automoto/doomerang-combat/shared/gamemath"
	"github.com/automoto/doomerang-combat/strategy"
	"github.com/yohamta/donburi"
	dmath "github.com/yohamta/donburi/features/math"
)

// projectileBody exposes a projectile entry to its movement strategy.
type projectileBody struct {
	world donburi.World
	entry *donburi.Entry
}

func (b projectileBody) Position() dmath.Vec2 {
	return components.Transform.Get(b.entry).Position
}

func (b projectileBody) Velocity() dmath.Vec2 {
	return components.Physics.Get(b.entry).Velocity
}

func (b projectileBody) SetVelocity(v dmath.Vec2) {
	components.Physics.Get(b.entry).Velocity = v
}

// NearestTarget returns the closest combatant the projectile may damage.
func (b projectileBody) NearestTarget(maxRange float64) (strategy.Target, bool) {
	src := components.DamageSource.Get(b.entry)
	pos := b.Position()

	var best *donburi.Entry
	bestDist := math.Inf(1)
	components.Combatant.Each(b.world, func(e *donburi.Entry) {
		if !combat.CanDamage(src, e) {
			return
		}
		d := gamemath.Distance(pos, components.Transform.Get(e).Position)
		if d <= maxRange && d < bestDist {
			best, bestDist = e, d
		}
	})
	if best == nil {
		return nil, false
	}
	return combatantTarget{entry: best}, true
}

type combatantTarget struct {
	entry *donburi.Entry
}

func (t combatantTarget) Position() dmath.Vec2 {
	if !t.entry.Valid() {
		return dmath.Vec2{}
	}
	return components.Transform.Get(t.entry).Position
}

func (t combatantTarget) Alive() bool {
	return combat.Alive(t.entry)
}
