package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	cfg "github.com/automoto/doomerang-combat/config"
	"github.com/automoto/doomerang-combat/logging"
	"github.com/automoto/doomerang-combat/persistence"
	"github.com/automoto/doomerang-combat/scenes"
	"github.com/automoto/doomerang-combat/telemetry"
	"github.com/rs/zerolog"
)

func main() {
	configPath := flag.String("config", "", "YAML config file overriding the defaults")
	ticks := flag.Int("ticks", 600, "Ticks to simulate (0 = until interrupted, realtime only)")
	realtime := flag.Bool("realtime", false, "Tick at the configured rate instead of as fast as possible")
	seed := flag.Int64("seed", 42, "Random seed for aim spread and critical hits")
	logLevel := flag.String("loglevel", "info", "Log level (trace, debug, info, warn, error)")
	save := flag.Bool("save", false, "Append the run summary to the saved history")
	flag.Parse()

	log := logging.New(os.Stdout, nil, *logLevel)

	if *configPath != "" {
		if err := cfg.Load(*configPath); err != nil {
			log.Fatal().Err(err).Str("path", *configPath).Msg("config")
		}
	}

	arena, err := scenes.NewArenaScene(scenes.Options{
		Seed:  *seed,
		Log:   log,
		Meter: telemetry.Meter(),
	})
	if err != nil {
		log.Fatal().Err(err).Msg("arena setup failed")
	}

	loop := scenes.NewGameLoop(arena, cfg.Sim.TickRate, log)
	if *realtime {
		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		loop.Run(ctx, *ticks)
		stop()
	} else {
		loop.RunFast(*ticks)
	}

	summary := arena.Summary()
	logSummary(log, summary)

	if *save {
		history, err := persistence.Open(log)
		if err != nil {
			log.Error().Err(err).Msg("run not saved")
			return
		}
		if err := history.Append(summary); err != nil {
			log.Error().Err(err).Msg("run not saved")
		}
	}
}

func logSummary(log zerolog.Logger, s persistence.RunSummary) {
	log.Info().
		Int("ticks", s.Ticks).
		Float64("seconds", s.Seconds).
		Int("hits", s.Hits).
		Int("criticals", s.Criticals).
		Int("released", s.Released).
		Msg("run complete")

	for _, c := range s.Combatants {
		log.Info().
			Str("name", c.Name).
			Int("kills", c.Kills).
			Int("deaths", c.Deaths).
			Int("dealt", c.DamageDealt).
			Int("taken", c.DamageTaken).
			Msg("combatant")
	}
}
