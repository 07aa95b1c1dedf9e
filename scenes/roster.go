package scenes

import (
	"github.com/automoto/doomerang-combat/components"
	cfg "github.com/automoto/doomerang-combat/config"
	"github.com/automoto/doomerang-combat/systems/factory"
)

// DefaultRoster lines up one turret per archetype on the left facing a
// column of training dummies on the right.
func DefaultRoster() []factory.CombatantSpec {
	weapons := []string{
		"pistol", "machinegun", "ricochet", "piercer", "homing_missile",
		"grenade", "wave", "spiral", "mortar", "harpoon", "lance",
	}

	w := float64(cfg.Sim.SpaceWidth)
	h := float64(cfg.Sim.SpaceHeight)

	var roster []factory.CombatantSpec
	rowGap := (h - 2*arenaWall) / float64(len(weapons)+1)
	for i, name := range weapons {
		roster = append(roster, factory.CombatantSpec{
			Name:   "turret-" + name,
			Layer:  cfg.LayerPlayer,
			X:      arenaWall + 60,
			Y:      arenaWall + rowGap*float64(i+1),
			Width:  16,
			Height: 16,
			Health: 100,
			Weapon: &components.WeaponData{Name: name, Damage: 5, Projectile: name},
			Shooter: &components.ShooterData{
				Cooldown: 0.6,
				Timer:    0.1 * float64(i),
				Range:    w,
				Spread:   0.05,
			},
			SpawnInvincibility: cfg.Combat.SpawnInvincibility,
		})
	}

	const dummies = 6
	dummyGap := (h - 2*arenaWall) / float64(dummies+1)
	for i := 0; i < dummies; i++ {
		roster = append(roster, factory.CombatantSpec{
			Name:   "dummy",
			Layer:  cfg.LayerEnemy,
			X:      w - arenaWall - 200,
			Y:      arenaWall + dummyGap*float64(i+1),
			Width:  24,
			Height: 24,
			Health: 150,
		})
	}
	return roster
}
