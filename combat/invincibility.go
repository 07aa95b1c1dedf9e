package combat

import (
	"github.com/automoto/doomerang-combat/components"
	cfg "github.com/automoto/doomerang-combat/config"
	"github.com/automoto/doomerang-combat/events"
	"github.com/yohamta/donburi"
)

func invincibility(e *donburi.Entry) *components.InvincibilityData {
	if e == nil || !e.Valid() || !e.HasComponent(components.Invincibility) {
		return nil
	}
	inv := components.Invincibility.Get(e)
	if inv.Records == nil {
		inv.Records = make(map[cfg.InvincibilityKind]*components.InvincibilityRecord)
	}
	return inv
}

// StartInvincibility starts a countdown of duration seconds for kind,
// replacing any record of the same kind. Non-positive durations are ignored.
func StartInvincibility(w donburi.World, e *donburi.Entry, kind cfg.InvincibilityKind, duration float64, showEffect bool) {
	if duration <= 0 || kind == cfg.InvincibilityNone {
		return
	}
	inv := invincibility(e)
	if inv == nil {
		return
	}

	inv.Records[kind] = &components.InvincibilityRecord{
		Duration:   duration,
		Remaining:  duration,
		ShowEffect: showEffect,
	}

	events.InvincibilityStartedEvent.Publish(w, events.InvincibilityStarted{
		Entity:     e.Entity(),
		Kind:       kind,
		Duration:   duration,
		ShowEffect: showEffect,
	})
}

// StopInvincibility removes the record for kind. Stopping an inactive kind
// does nothing.
func StopInvincibility(w donburi.World, e *donburi.Entry, kind cfg.InvincibilityKind) {
	inv := invincibility(e)
	if inv == nil {
		return
	}
	if _, ok := inv.Records[kind]; !ok {
		return
	}
	delete(inv.Records, kind)

	events.InvincibilityEndedEvent.Publish(w, events.InvincibilityEnded{
		Entity: e.Entity(),
		Kind:   kind,
	})
}

// IsInvincible checks a single kind, or any kind for InvincibilityNone.
func IsInvincible(e *donburi.Entry, kind cfg.InvincibilityKind) bool {
	inv := invincibility(e)
	if inv == nil {
		return false
	}
	if kind == cfg.InvincibilityNone {
		return len(inv.Records) > 0
	}
	_, ok := inv.Records[kind]
	return ok
}

// Remaining returns the seconds left on kind, or 0 when inactive.
func Remaining(e *donburi.Entry, kind cfg.InvincibilityKind) float64 {
	inv := invincibility(e)
	if inv == nil {
		return 0
	}
	if r, ok := inv.Records[kind]; ok {
		return r.Remaining
	}
	return 0
}

// HighestPriorityInvincibility returns the active kind with the greatest
// priority, or InvincibilityNone.
func HighestPriorityInvincibility(e *donburi.Entry) cfg.InvincibilityKind {
	inv := invincibility(e)
	if inv == nil {
		return cfg.InvincibilityNone
	}
	best := cfg.InvincibilityNone
	for kind := range inv.Records {
		if kind.Priority() > best.Priority() {
			best = kind
		}
	}
	return best
}

// TickInvincibility advances every active countdown by dt and stops the
// kinds that ran out.
func TickInvincibility(w donburi.World, e *donburi.Entry, dt float64) {
	inv := invincibility(e)
	if inv == nil {
		return
	}
	for _, kind := range cfg.InvincibilityKinds {
		r, ok := inv.Records[kind]
		if !ok {
			continue
		}
		r.Remaining -= dt
		if r.Remaining <= 0 {
			StopInvincibility(w, e, kind)
		}
	}
}

func blocksDamage(e *donburi.Entry) bool {
	inv := invincibility(e)
	if inv == nil {
		return false
	}
	for kind := range inv.Records {
		if kind.BlocksDamage() {
			return true
		}
	}
	return false
}
