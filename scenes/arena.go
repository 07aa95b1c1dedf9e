// Package scenes assembles the headless combat arena and drives it.
package scenes

import (
	"fmt"
	"math/rand"

	"github.com/automoto/doomerang-combat/collision"
	"github.com/automoto/doomerang-combat/components"
	cfg "github.com/automoto/doomerang-combat/config"
	"github.com/automoto/doomerang-combat/persistence"
	"github.com/automoto/doomerang-combat/pool"
	"github.com/automoto/doomerang-combat/systems"
	"github.com/automoto/doomerang-combat/systems/factory"
	"github.com/automoto/doomerang-combat/telemetry"
	"github.com/rs/zerolog"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
	"go.opentelemetry.io/otel/metric"
)

const arenaWall = 16

type Options struct {
	Seed int64
	Log  zerolog.Logger

	// Meter receives combat metrics, nil disables them
	Meter metric.Meter

	// Roster defaults to DefaultRoster
	Roster []factory.CombatantSpec
}

// ArenaScene is a walled arena of shooters and targets running the full
// combat stack.
type ArenaScene struct {
	ecs   *ecs.ECS
	pool  *pool.Manager
	stats *RunStats
	log   zerolog.Logger
	seed  int64
	ticks int
}

func NewArenaScene(opts Options) (*ArenaScene, error) {
	if err := cfg.ValidateArchetypes(); err != nil {
		return nil, fmt.Errorf("archetypes: %w", err)
	}

	log := opts.Log.With().Str("scene", "arena").Logger()
	w := donburi.NewWorld()
	e := ecs.NewECS(w)

	m := pool.New(w, log)
	if err := factory.RegisterTemplates(e, m); err != nil {
		return nil, err
	}

	var metrics *telemetry.Metrics
	if opts.Meter != nil {
		var err error
		if metrics, err = telemetry.New(opts.Meter, m); err != nil {
			return nil, err
		}
	}

	// Crits roll from their own stream so runs replay from the seed.
	crits := rand.New(rand.NewSource(opts.Seed + 1))
	pipeline := collision.NewPipeline(w, m, log, collision.WithMetrics(metrics), collision.WithRoll(crits.Float64))
	projectiles := systems.NewProjectiles(m, pipeline, log, metrics)
	areas := systems.NewAreas(m, log, metrics)
	shooters := systems.NewShooters(projectiles, opts.Seed, log)

	e.AddSystem(systems.UpdateInvincibility)
	e.AddSystem(shooters.Update)
	e.AddSystem(projectiles.UpdateMovement)
	e.AddSystem(projectiles.UpdatePhysics)
	e.AddSystem(projectiles.UpdateLifetime)
	e.AddSystem(areas.UpdateExplosions)
	e.AddSystem(areas.UpdateFields)
	e.AddSystem(systems.UpdateDeaths)
	e.AddSystem(systems.ProcessEvents)

	factory.CreateSpace(e, cfg.Sim.SpaceWidth, cfg.Sim.SpaceHeight, cfg.Sim.CellSize, cfg.Sim.CellSize)
	factory.CreateArenaBounds(e, float64(cfg.Sim.SpaceWidth), float64(cfg.Sim.SpaceHeight), arenaWall)

	if err := m.Prewarm(cfg.Pool.Entries); err != nil {
		return nil, err
	}

	stats := newRunStats()
	stats.subscribe(w)

	roster := opts.Roster
	if roster == nil {
		roster = DefaultRoster()
	}
	for _, spec := range roster {
		stats.track(factory.CreateCombatant(e, spec))
	}

	log.Info().Int("combatants", len(roster)).Int64("seed", opts.Seed).Msg("arena ready")

	return &ArenaScene{
		ecs:   e,
		pool:  m,
		stats: stats,
		log:   log,
		seed:  opts.Seed,
	}, nil
}

// Update advances the arena one fixed tick.
func (a *ArenaScene) Update() {
	a.ecs.Update()
	a.ticks++
}

func (a *ArenaScene) ECS() *ecs.ECS { return a.ecs }

func (a *ArenaScene) Pool() *pool.Manager { return a.pool }

func (a *ArenaScene) Ticks() int { return a.ticks }

// Alive counts living combatants on layer.
func (a *ArenaScene) Alive(layer cfg.Layer) int {
	n := 0
	components.Combatant.Each(a.ecs.World, func(e *donburi.Entry) {
		if components.Layer.Get(e).Layer == layer && !e.HasComponent(components.Death) {
			n++
		}
	})
	return n
}

// Summary reports the run so far.
func (a *ArenaScene) Summary() persistence.RunSummary {
	return a.stats.Summary(a.seed, a.ticks)
}
