package scenes

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// Updater is a scene advanced once per tick.
type Updater interface {
	Update()
}

// GameLoop drives a scene at a fixed tick rate.
type GameLoop struct {
	scene    Updater
	tickRate int
	log      zerolog.Logger
	stopChan chan struct{}
}

func NewGameLoop(scene Updater, tickRate int, log zerolog.Logger) *GameLoop {
	return &GameLoop{
		scene:    scene,
		tickRate: tickRate,
		log:      log,
		stopChan: make(chan struct{}),
	}
}

// Run ticks in real time until ctx is done, Stop is called or maxTicks
// ticks have run. maxTicks <= 0 runs without a limit. It returns the number
// of ticks run.
func (g *GameLoop) Run(ctx context.Context, maxTicks int) int {
	ticker := time.NewTicker(time.Second / time.Duration(g.tickRate))
	defer ticker.Stop()

	g.log.Info().Int("tickRate", g.tickRate).Msg("game loop started")

	ticks := 0
	for maxTicks <= 0 || ticks < maxTicks {
		select {
		case <-ctx.Done():
			g.log.Info().Int("ticks", ticks).Msg("game loop cancelled")
			return ticks
		case <-g.stopChan:
			g.log.Info().Int("ticks", ticks).Msg("game loop stopped")
			return ticks
		case <-ticker.C:
			g.scene.Update()
			ticks++
		}
	}
	g.log.Info().Int("ticks", ticks).Msg("game loop finished")
	return ticks
}

// RunFast ticks n times back to back, for headless simulation.
func (g *GameLoop) RunFast(n int) {
	for i := 0; i < n; i++ {
		g.scene.Update()
	}
}

// Stop ends Run. It must be called at most once.
func (g *GameLoop) Stop() {
	close(g.stopChan)
}
