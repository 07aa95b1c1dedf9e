package systems

import (
	"github.com/automoto/doomerang-combat/combat"
	"github.com/automoto/doomerang-combat/components"
	cfg "github.com/automoto/doomerang-combat/config"
	"github.com/automoto/doomerang-combat/events"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// UpdateInvincibility counts down every active invincibility record.
func UpdateInvincibility(ecs *ecs.ECS) {
	dt := cfg.DeltaTime()
	components.Invincibility.Each(ecs.World, func(e *donburi.Entry) {
		combat.TickInvincibility(ecs.World, e, dt)
	})
}

// ProcessEvents delivers the events queued during this tick.
func ProcessEvents(ecs *ecs.ECS) {
	events.Flush(ecs.World)
}
