// Package events carries the notifications the combat core publishes for a
// presentation layer. Events are queued and delivered when the scene flushes
// them at the end of a tick.
package events

import (
	cfg "github.com/automoto/doomerang-combat/config"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

type Hit struct {
	Target   donburi.Entity
	Attacker donburi.Entity
	Amount   int
	Critical bool
	Health   int
}

type Death struct {
	Target    donburi.Entity
	Killer    donburi.Entity
	HasKiller bool
}

type InvincibilityStarted struct {
	Entity     donburi.Entity
	Kind       cfg.InvincibilityKind
	Duration   float64
	ShowEffect bool
}

type InvincibilityEnded struct {
	Entity donburi.Entity
	Kind   cfg.InvincibilityKind
}

type Released struct {
	Entity   donburi.Entity
	Template string
}

var (
	HitEvent                  = events.NewEventType[Hit]()
	DeathEvent                = events.NewEventType[Death]()
	InvincibilityStartedEvent = events.NewEventType[InvincibilityStarted]()
	InvincibilityEndedEvent   = events.NewEventType[InvincibilityEnded]()
	ReleasedEvent             = events.NewEventType[Released]()
)

// Flush delivers every queued event to its subscribers.
func Flush(w donburi.World) {
	events.ProcessAllEvents(w)
}
