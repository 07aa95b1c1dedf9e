// Package persistence keeps a history of arena run summaries on disk.
package persistence

import (
	"encoding/json"
	"fmt"

	"github.com/quasilyte/gdata"
	"github.com/rs/zerolog"
)

const (
	appName    = "doomerang-combat"
	historyKey = "runs"

	// MaxRuns is how many summaries the history keeps, oldest dropped first.
	MaxRuns = 20
)

// CombatantSummary is one combatant's tally for a run.
type CombatantSummary struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Kills       int    `json:"kills"`
	Deaths      int    `json:"deaths"`
	DamageDealt int    `json:"damageDealt"`
	DamageTaken int    `json:"damageTaken"`
}

// RunSummary is the result of one arena run.
type RunSummary struct {
	Seed       int64              `json:"seed"`
	Ticks      int                `json:"ticks"`
	Seconds    float64            `json:"seconds"`
	Hits       int                `json:"hits"`
	Criticals  int                `json:"criticals"`
	Released   int                `json:"released"`
	Combatants []CombatantSummary `json:"combatants"`
}

// ItemStore is the subset of gdata.Manager the history uses.
type ItemStore interface {
	LoadItem(key string) ([]byte, error)
	SaveItem(key string, data []byte) error
}

// History reads and appends run summaries.
type History struct {
	store ItemStore
	log   zerolog.Logger
}

// Open opens the history in the user's data directory.
func Open(log zerolog.Logger) (*History, error) {
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return nil, fmt.Errorf("open run history: %w", err)
	}
	return NewHistory(m, log), nil
}

func NewHistory(store ItemStore, log zerolog.Logger) *History {
	return &History{
		store: store,
		log:   log.With().Str("component", "persistence").Logger(),
	}
}

// Load returns the stored summaries, oldest first. A missing history is
// empty, not an error.
func (h *History) Load() ([]RunSummary, error) {
	data, err := h.store.LoadItem(historyKey)
	if err != nil {
		h.log.Warn().Err(err).Msg("could not load run history")
		return nil, nil
	}
	if len(data) == 0 {
		return nil, nil
	}

	var runs []RunSummary
	if err := json.Unmarshal(data, &runs); err != nil {
		return nil, fmt.Errorf("parse run history: %w", err)
	}
	return runs, nil
}

// Append stores run at the end of the history, trimming it to MaxRuns.
func (h *History) Append(run RunSummary) error {
	runs, err := h.Load()
	if err != nil {
		// a corrupt history is replaced
		h.log.Warn().Err(err).Msg("discarding unreadable run history")
		runs = nil
	}

	runs = append(runs, run)
	if len(runs) > MaxRuns {
		runs = runs[len(runs)-MaxRuns:]
	}

	data, err := json.Marshal(runs)
	if err != nil {
		return fmt.Errorf("serialize run history: %w", err)
	}
	if err := h.store.SaveItem(historyKey, data); err != nil {
		return fmt.Errorf("save run history: %w", err)
	}
	h.log.Debug().Int("runs", len(runs)).Msg("run history saved")
	return nil
}
