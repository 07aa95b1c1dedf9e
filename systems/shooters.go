package systems

import (
	"math"
	"math/rand"

	"github.com/automoto/doomerang-combat/combat"
	"github.com/automoto/doomerang-combat/components"
	cfg "github.com/automoto/doomerang-combat/config"
	"github.com/automoto/doomerang-combat/shared/gamemath"
	"github.com/rs/zerolog"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// Shooters fires each shooter's weapon at the nearest live enemy in range.
type Shooters struct {
	projectiles *Projectiles
	rng         *rand.Rand
	log         zerolog.Logger
}

// NewShooters uses a fixed seed so arena runs replay identically.
func NewShooters(projectiles *Projectiles, seed int64, log zerolog.Logger) *Shooters {
	return &Shooters{
		projectiles: projectiles,
		rng:         rand.New(rand.NewSource(seed)),
		log:         log.With().Str("system", "shooters").Logger(),
	}
}

type shooterState struct {
	entry *donburi.Entry
	layer cfg.Layer
}

func (s *Shooters) Update(ecs *ecs.ECS) {
	dt := cfg.DeltaTime()

	var combatants []shooterState
	components.Combatant.Each(ecs.World, func(e *donburi.Entry) {
		if combat.Alive(e) {
			combatants = append(combatants, shooterState{entry: e, layer: combat.LayerOf(e)})
		}
	})

	components.Shooter.Each(ecs.World, func(e *donburi.Entry) {
		if !combat.Alive(e) {
			return
		}
		sh := components.Shooter.Get(e)
		sh.Timer -= dt
		if sh.Timer > 0 {
			return
		}

		pos := components.Transform.Get(e).Position
		layer := combat.LayerOf(e)

		var target *donburi.Entry
		best := math.Inf(1)
		for _, c := range combatants {
			if c.entry == e || c.layer == layer {
				continue
			}
			d := gamemath.Distance(pos, components.Transform.Get(c.entry).Position)
			if d <= sh.Range && d < best {
				target, best = c.entry, d
			}
		}
		if target == nil {
			return
		}

		aim := gamemath.Sub(components.Transform.Get(target).Position, pos)
		angle := gamemath.Angle(aim) + (s.rng.Float64()*2-1)*sh.Spread
		if _, err := s.projectiles.SpawnFromWeapon(ecs.World, e, gamemath.FromAngle(angle)); err != nil {
			s.log.Error().Err(err).Msg("shooter could not fire")
		}
		sh.Timer = sh.Cooldown
	})
}
