// Package pool recycles transient entities such as projectiles, explosions
// and fields. An instance is either active in the world or queued in its
// pool, never both.
package pool

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/automoto/doomerang-combat/components"
	cfg "github.com/automoto/doomerang-combat/config"
	"github.com/automoto/doomerang-combat/events"
	"github.com/rs/zerolog"
	"github.com/yohamta/donburi"
	dmath "github.com/yohamta/donburi/features/math"
)

var (
	ErrUnknownTemplate = errors.New("unknown pool template")
	ErrInvalidTemplate = errors.New("invalid pool template")
)

// Hook is a lifecycle callback. Hooks run with the pool locked and must not
// call back into the Manager.
type Hook func(w donburi.World, e *donburi.Entry)

// Template builds and recycles instances of one kind.
type Template struct {
	Key string

	// New constructs a fresh, inactive instance.
	New func(w donburi.World) *donburi.Entry

	OnActivated         Hook
	OnBeforeDeactivated Hook
	OnResetState        Hook
}

type entry struct {
	template   Template
	expandable bool
	reserved   int
	total      int
	queue      []*donburi.Entry
}

// Stat is a snapshot of one template's instances.
type Stat struct {
	Template string
	Total    int
	Inactive int
	Active   int
}

// Manager owns every pooled instance.
type Manager struct {
	world donburi.World
	log   zerolog.Logger

	mu      sync.Mutex
	entries map[string]*entry
	owned   map[donburi.Entity]*entry
}

// New creates an empty pool manager for w.
func New(w donburi.World, log zerolog.Logger) *Manager {
	return &Manager{
		world:   w,
		log:     log.With().Str("component", "pool").Logger(),
		entries: make(map[string]*entry),
		owned:   make(map[donburi.Entity]*entry),
	}
}

// Register adds a template. Registering a key twice replaces the template
// for future constructions.
func (m *Manager) Register(t Template) error {
	if t.Key == "" || t.New == nil {
		return fmt.Errorf("%w: key %q", ErrInvalidTemplate, t.Key)
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if en, ok := m.entries[t.Key]; ok {
		en.template = t
		return nil
	}
	m.entries[t.Key] = &entry{template: t, expandable: true}
	return nil
}

// Prewarm constructs InitialSize inactive instances for each entry before
// gameplay starts.
func (m *Manager) Prewarm(entries []cfg.PoolEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	var errs []error
	for _, pe := range entries {
		en, ok := m.entries[pe.Template]
		if !ok {
			errs = append(errs, fmt.Errorf("prewarm %q: %w", pe.Template, ErrUnknownTemplate))
			continue
		}
		en.expandable = pe.Expandable
		en.reserved = pe.InitialSize
		for i := 0; i < pe.InitialSize; i++ {
			e := m.construct(en)
			m.enqueue(en, e)
		}
		m.log.Debug().Str("template", pe.Template).Int("size", pe.InitialSize).Bool("expandable", pe.Expandable).Msg("prewarmed")
	}
	return errors.Join(errs...)
}

// Spawn activates an instance of key at position with rotation, reusing the
// most recently released instance when one is queued.
func (m *Manager) Spawn(key string, position dmath.Vec2, rotation float64) (*donburi.Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	en, ok := m.entries[key]
	if !ok {
		return nil, fmt.Errorf("spawn %q: %w", key, ErrUnknownTemplate)
	}

	var e *donburi.Entry
	for len(en.queue) > 0 && e == nil {
		last := len(en.queue) - 1
		e = en.queue[last]
		en.queue[last] = nil
		en.queue = en.queue[:last]
		if !e.Valid() {
			// removed from the world behind the pool's back
			delete(m.owned, e.Entity())
			en.total--
			e = nil
		}
	}
	if e == nil {
		if !en.expandable && en.total >= en.reserved {
			m.log.Warn().Str("template", key).Int("size", en.total).Msg("pool exhausted, growing non-expandable pool")
		}
		e = m.construct(en)
	}

	components.Pooled.Get(e).InPool = false

	if e.HasComponent(components.Transform) {
		tr := components.Transform.Get(e)
		tr.Position = position
		tr.Rotation = rotation
	}
	if e.HasComponent(components.Object) {
		components.Object.Get(e).CenterOn(position.X, position.Y)
	}

	if en.template.OnActivated != nil {
		en.template.OnActivated(m.world, e)
	}
	return e, nil
}

// Release returns e to its pool. It returns false when e is already pooled
// or was not built by this manager; unknown instances are only deactivated
// and stay in the world.
func (m *Manager) Release(e *donburi.Entry) bool {
	if e == nil || !e.Valid() {
		return false
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	en, ok := m.owned[e.Entity()]
	if !ok {
		m.log.Warn().Interface("entity", e.Entity()).Msg("release of unpooled instance, deactivating only")
		m.deactivate(e)
		return false
	}

	pooled := components.Pooled.Get(e)
	if pooled.InPool {
		m.log.Debug().Str("template", en.template.Key).Msg("double release ignored")
		return false
	}

	if en.template.OnBeforeDeactivated != nil {
		en.template.OnBeforeDeactivated(m.world, e)
	}
	if en.template.OnResetState != nil {
		en.template.OnResetState(m.world, e)
	}

	m.deactivate(e)
	m.enqueue(en, e)

	events.ReleasedEvent.Publish(m.world, events.Released{Entity: e.Entity(), Template: en.template.Key})
	return true
}

// Active reports whether e is a pooled instance currently in the world.
func (m *Manager) Active(e *donburi.Entry) bool {
	if e == nil || !e.Valid() {
		return false
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.owned[e.Entity()]; !ok {
		return false
	}
	return !components.Pooled.Get(e).InPool
}

// Stats returns a snapshot per template, sorted by key.
func (m *Manager) Stats() []Stat {
	m.mu.Lock()
	defer m.mu.Unlock()

	stats := make([]Stat, 0, len(m.entries))
	for key, en := range m.entries {
		stats = append(stats, Stat{
			Template: key,
			Total:    en.total,
			Inactive: len(en.queue),
			Active:   en.total - len(en.queue),
		})
	}
	sort.Slice(stats, func(i, j int) bool { return stats[i].Template < stats[j].Template })
	return stats
}

func (m *Manager) construct(en *entry) *donburi.Entry {
	e := en.template.New(m.world)
	if !e.HasComponent(components.Pooled) {
		donburi.Add(e, components.Pooled, &components.PooledData{})
	}
	components.Pooled.SetValue(e, components.PooledData{Template: en.template.Key})
	m.owned[e.Entity()] = en
	en.total++
	m.deactivate(e)
	return e
}

func (m *Manager) deactivate(e *donburi.Entry) {
	if e.HasComponent(components.Object) {
		components.Object.Get(e).Detach()
	}
	if e.HasComponent(components.Physics) {
		components.Physics.Get(e).Velocity = dmath.Vec2{}
	}
}

func (m *Manager) enqueue(en *entry, e *donburi.Entry) {
	components.Pooled.Get(e).InPool = true
	en.queue = append(en.queue, e)
}
