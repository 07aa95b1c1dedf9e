package persistence

import (
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memStore struct {
	items   map[string][]byte
	loadErr error
	saveErr error
}

func newMemStore() *memStore {
	return &memStore{items: make(map[string][]byte)}
}

func (m *memStore) LoadItem(key string) ([]byte, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	return m.items[key], nil
}

func (m *memStore) SaveItem(key string, data []byte) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.items[key] = data
	return nil
}

func TestHistory_EmptyLoad(t *testing.T) {
	h := NewHistory(newMemStore(), zerolog.Nop())

	runs, err := h.Load()

	require.NoError(t, err)
	assert.Empty(t, runs)
}

func TestHistory_AppendAndLoad(t *testing.T) {
	h := NewHistory(newMemStore(), zerolog.Nop())
	run := RunSummary{
		Seed:  42,
		Ticks: 600,
		Hits:  12,
		Combatants: []CombatantSummary{
			{ID: "a", Name: "turret", Kills: 2, DamageDealt: 120},
		},
	}

	require.NoError(t, h.Append(run))
	require.NoError(t, h.Append(RunSummary{Seed: 7}))

	runs, err := h.Load()
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, run, runs[0])
	assert.Equal(t, int64(7), runs[1].Seed)
}

func TestHistory_TrimsOldest(t *testing.T) {
	h := NewHistory(newMemStore(), zerolog.Nop())
	for i := 0; i < MaxRuns+5; i++ {
		require.NoError(t, h.Append(RunSummary{Seed: int64(i)}))
	}

	runs, err := h.Load()
	require.NoError(t, err)
	require.Len(t, runs, MaxRuns)
	assert.Equal(t, int64(5), runs[0].Seed)
	assert.Equal(t, int64(MaxRuns+4), runs[MaxRuns-1].Seed)
}

func TestHistory_CorruptIsReplaced(t *testing.T) {
	store := newMemStore()
	store.items[historyKey] = []byte("{not json")
	h := NewHistory(store, zerolog.Nop())

	_, err := h.Load()
	assert.Error(t, err)

	require.NoError(t, h.Append(RunSummary{Seed: 1}))
	runs, err := h.Load()
	require.NoError(t, err)
	assert.Len(t, runs, 1)
}

func TestHistory_SaveError(t *testing.T) {
	store := newMemStore()
	store.saveErr = errors.New("disk full")
	h := NewHistory(store, zerolog.Nop())

	err := h.Append(RunSummary{})

	assert.ErrorIs(t, err, store.saveErr)
}

func TestHistory_LoadErrorIsEmpty(t *testing.T) {
	store := newMemStore()
	store.loadErr = errors.New("locked")
	h := NewHistory(store, zerolog.Nop())

	runs, err := h.Load()

	require.NoError(t, err)
	assert.Nil(t, runs)
}
