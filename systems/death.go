package systems

import (
	"github.com/automoto/doomerang-combat/combat"
	"github.com/automoto/doomerang-combat/components"
	cfg "github.com/automoto/doomerang-combat/config"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
	dmath "github.com/yohamta/donburi/features/math"
)

// UpdateDeaths respawns dead combatants at their spawn point once the
// respawn delay has passed.
func UpdateDeaths(ecs *ecs.ECS) {
	dt := cfg.DeltaTime()
	var respawn []*donburi.Entry

	components.Death.Each(ecs.World, func(e *donburi.Entry) {
		death := components.Death.Get(e)
		death.Elapsed += dt
		if cfg.Combat.RespawnDelay > 0 && death.Elapsed >= cfg.Combat.RespawnDelay {
			respawn = append(respawn, e)
		}
	})

	// Removing Death while iterating it would skip entries.
	for _, e := range respawn {
		Respawn(ecs.World, e)
	}
}

// Respawn revives a combatant at its spawn point with SpawnInvincibility.
func Respawn(w donburi.World, e *donburi.Entry) {
	combat.Revive(w, e)
	if e.HasComponent(components.Combatant) {
		Place(e, components.Combatant.Get(e).Spawn)
	}
	if e.HasComponent(components.Physics) {
		components.Physics.Get(e).Velocity = dmath.Vec2{}
	}
	combat.StartInvincibility(w, e, cfg.InvincibilitySpawn, cfg.Combat.SpawnInvincibility, true)
}
