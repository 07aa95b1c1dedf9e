package config

import dmath "github.com/yohamta/donburi/features/math"

// Pool template keys
const (
	TemplateBullet         = "bullet"
	TemplateExplosionSmall = "explosion_small"
	TemplateExplosionLarge = "explosion_large"
	TemplatePoisonField    = "poison_field"
)

var (
	Projectiles map[string]*ProjectileConfig
	Explosions  map[string]ExplosionConfig
	Fields      map[string]FieldConfig
)

func once(kind ActionKind) ActionConfig {
	return ActionConfig{Kind: kind, MaxExecutions: 1}
}

func initArchetypes() {
	enemies := Mask(LayerEnemy)
	bullet := ColliderConfig{Width: 6, Height: 6}

	Projectiles = map[string]*ProjectileConfig{
		"pistol": {
			Name:          "pistol",
			Movement:      MovementStraight,
			InitialSpeed:  420,
			MaxSpeed:      420,
			Lifetime:      LifetimeTime,
			MaxLifetime:   1.5,
			Collider:      bullet,
			TargetMask:    enemies,
			OnHitEnemy:    []ActionConfig{once(ActionDestroy)},
			OnHitObstacle: []ActionConfig{once(ActionDestroy)},
			Damage:        10,
		},
		"machinegun": {
			Name:               "machinegun",
			Movement:           MovementStraight,
			InitialSpeed:       200,
			MaxSpeed:           600,
			AccelerationTime:   0.25,
			Easing:             "OutQuad",
			Lifetime:           LifetimeDistance,
			MaxDistance:        500,
			Collider:           ColliderConfig{Width: 4, Height: 4},
			TargetMask:         enemies,
			OnHitEnemy:         []ActionConfig{once(ActionDestroy)},
			OnHitObstacle:      []ActionConfig{once(ActionDestroy)},
			Damage:             4,
			CriticalChance:     0.1,
			CriticalMultiplier: 2,
		},
		"ricochet": {
			Name:         "ricochet",
			Movement:     MovementStraight,
			InitialSpeed: 380,
			MaxSpeed:     380,
			Lifetime:     LifetimeTime,
			MaxLifetime:  3,
			Collider:     bullet,
			TargetMask:   enemies,
			OnHitEnemy:   []ActionConfig{once(ActionDestroy)},
			// passes through walls once the bounces are spent
			OnHitObstacle: []ActionConfig{{Kind: ActionBounce, MaxExecutions: 3, Damping: 0.85}},
			Damage:        8,
		},
		"piercer": {
			Name:          "piercer",
			Movement:      MovementStraight,
			InitialSpeed:  520,
			MaxSpeed:      520,
			Lifetime:      LifetimeDistance,
			MaxDistance:   900,
			Collider:      ColliderConfig{Width: 10, Height: 4},
			TargetMask:    enemies,
			OnHitEnemy:    []ActionConfig{{Kind: ActionPenetrate, MaxExecutions: 2}},
			OnHitObstacle: []ActionConfig{once(ActionDestroy)},
			Damage:        12,
		},
		"homing_missile": {
			Name:           "homing_missile",
			Movement:       MovementHoming,
			InitialSpeed:   240,
			MaxSpeed:       240,
			HomingStrength: 4,
			HomingRange:    400,
			Lifetime:       LifetimeTime,
			MaxLifetime:    4,
			Collider:       ColliderConfig{Width: 8, Height: 8},
			TargetMask:     enemies,
			OnHitEnemy: []ActionConfig{
				{Kind: ActionSpawnEntity, MaxExecutions: 1, Template: TemplateExplosionSmall, SpawnCount: 1},
				once(ActionDestroy),
			},
			OnHitObstacle: []ActionConfig{
				{Kind: ActionSpawnEntity, MaxExecutions: 1, Template: TemplateExplosionSmall, SpawnCount: 1},
				once(ActionDestroy),
			},
			Damage:         15,
			KnockbackForce: 200,
		},
		"grenade": {
			Name:         "grenade",
			Movement:     MovementGravity,
			InitialSpeed: 320,
			MaxSpeed:     320,
			Gravity:      Sim.Gravity,
			Lifetime:     LifetimeTime,
			MaxLifetime:  2.5,
			Collider:     ColliderConfig{Width: 8, Height: 8},
			TargetMask:   enemies,
			OnHitEnemy: []ActionConfig{
				{Kind: ActionSpawnEntity, MaxExecutions: 1, Template: TemplateExplosionLarge, SpawnCount: 3},
				once(ActionDestroy),
			},
			OnHitObstacle:  []ActionConfig{{Kind: ActionBounce, MaxExecutions: 4, Damping: 0.5}},
			Damage:         5,
			KnockbackForce: 150,
		},
		"wave": {
			Name:          "wave",
			Movement:      MovementSine,
			InitialSpeed:  300,
			MaxSpeed:      300,
			SineAmplitude: 24,
			SineFrequency: 2,
			Lifetime:      LifetimeTime,
			MaxLifetime:   2,
			Collider:      bullet,
			TargetMask:    enemies,
			OnHitEnemy:    []ActionConfig{{Kind: ActionPenetrate, MaxExecutions: 5}},
			OnHitObstacle: []ActionConfig{once(ActionDestroy)},
			Damage:        6,
		},
		"spiral": {
			Name:          "spiral",
			Movement:      MovementSpiral,
			InitialSpeed:  180,
			MaxSpeed:      180,
			SpiralRadius:  30,
			SpiralSpeed:   1.5,
			Lifetime:      LifetimeTime,
			MaxLifetime:   3,
			Collider:      bullet,
			TargetMask:    enemies,
			OnHitEnemy:    []ActionConfig{once(ActionDestroy)},
			OnHitObstacle: []ActionConfig{once(ActionDestroy)},
			Damage:        7,
		},
		"mortar": {
			Name:          "mortar",
			Movement:      MovementCurve,
			InitialSpeed:  260,
			MaxSpeed:      260,
			CurveHeight:   80,
			CurveDuration: 1.2,
			Lifetime:      LifetimeTime,
			MaxLifetime:   1.2,
			Collider:      ColliderConfig{Width: 10, Height: 10},
			TargetMask:    enemies,
			OnHitEnemy: []ActionConfig{
				{Kind: ActionSpawnEntity, MaxExecutions: 1, Template: TemplatePoisonField, SpawnCount: 1},
				once(ActionDestroy),
			},
			OnHitObstacle: []ActionConfig{
				{Kind: ActionSpawnEntity, MaxExecutions: 1, Template: TemplatePoisonField, SpawnCount: 1, SpawnOffset: dmath.Vec2{Y: -8}},
				once(ActionDestroy),
			},
			Damage: 20,
		},
		"harpoon": {
			Name:          "harpoon",
			Movement:      MovementStraight,
			InitialSpeed:  500,
			MaxSpeed:      500,
			Lifetime:      LifetimeTime,
			MaxLifetime:   5,
			Collider:      ColliderConfig{Width: 12, Height: 4},
			TargetMask:    enemies,
			OnHitEnemy:    []ActionConfig{{Kind: ActionPenetrate, MaxExecutions: 1}},
			OnHitObstacle: []ActionConfig{once(ActionStop)},
			Damage:        14,
		},
		"lance": {
			Name:          "lance",
			Movement:      MovementStraight,
			InitialSpeed:  450,
			MaxSpeed:      450,
			Lifetime:      LifetimeHitCount,
			MaxHits:       3,
			Collider:      ColliderConfig{Width: 16, Height: 4},
			TargetMask:    enemies,
			OnHitEnemy:    []ActionConfig{{Kind: ActionPenetrate, MaxExecutions: 3}},
			OnHitObstacle: []ActionConfig{once(ActionDestroy)},
			Damage:        9,
		},
	}

	Explosions = map[string]ExplosionConfig{
		TemplateExplosionSmall: {Radius: 32, Duration: 0.2, Damage: 20, TargetMask: enemies},
		TemplateExplosionLarge: {Radius: 64, Duration: 0.3, Damage: 35, TargetMask: enemies},
	}

	Fields = map[string]FieldConfig{
		TemplatePoisonField: {Radius: 48, Duration: 3, Interval: 0.5, Damage: 3, TargetMask: enemies},
	}
}
