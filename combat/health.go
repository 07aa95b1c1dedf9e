// Package combat implements health, invincibility and damage source
// targeting over donburi entries.
package combat

import (
	"github.com/automoto/doomerang-combat/components"
	cfg "github.com/automoto/doomerang-combat/config"
	"github.com/automoto/doomerang-combat/events"
	"github.com/yohamta/donburi"
)

// Alive reports whether e is a valid entry with health left.
func Alive(e *donburi.Entry) bool {
	if e == nil || !e.Valid() || !e.HasComponent(components.Health) {
		return false
	}
	return components.Health.Get(e).Alive()
}

// TakeDamage subtracts data.Amount from e's health. It is a no-op for dead
// entities and while a damage blocking invincibility is active. On a hit it
// publishes a Hit event, starts HitInvincibility and marks e dead once its
// health reaches zero. It reports whether the damage was applied.
func TakeDamage(w donburi.World, e *donburi.Entry, data components.DamageData) bool {
	if !Alive(e) || blocksDamage(e) {
		return false
	}

	amount := data.Amount
	if amount < 0 {
		amount = 0
	}

	health := components.Health.Get(e)
	health.Current -= amount
	if health.Current < 0 {
		health.Current = 0
	}

	hit := events.Hit{
		Target:   e.Entity(),
		Amount:   amount,
		Critical: data.Critical,
		Health:   health.Current,
	}
	if data.Attacker != nil {
		hit.Attacker = data.Attacker.Entity()
	}
	events.HitEvent.Publish(w, hit)

	StartInvincibility(w, e, cfg.InvincibilityHit, hitInvincibility(e, data), true)

	if health.Current == 0 {
		die(w, e, data.Attacker)
	}
	return true
}

func hitInvincibility(e *donburi.Entry, data components.DamageData) float64 {
	if e.HasComponent(components.Invincibility) {
		if policy := components.Invincibility.Get(e).HitPolicy; policy != nil {
			return policy(data)
		}
	}
	return cfg.Combat.HitInvincibility
}

func die(w donburi.World, e *donburi.Entry, killer *donburi.Entry) {
	death := components.DeathData{}
	if killer != nil && killer.Valid() {
		death.Killer = killer.Entity()
		death.HasKiller = true
	}
	if e.HasComponent(components.Death) {
		components.Death.SetValue(e, death)
	} else {
		donburi.Add(e, components.Death, &death)
	}

	events.DeathEvent.Publish(w, events.Death{
		Target:    e.Entity(),
		Killer:    death.Killer,
		HasKiller: death.HasKiller,
	})
}

// Heal restores up to amount health without exceeding the maximum. Dead
// entities cannot be healed.
func Heal(e *donburi.Entry, amount int) {
	if !Alive(e) || amount <= 0 {
		return
	}
	health := components.Health.Get(e)
	health.Current += amount
	if health.Current > health.Max {
		health.Current = health.Max
	}
}

// Revive restores a dead combatant to full health and ends every active
// invincibility, publishing an end event per kind.
func Revive(w donburi.World, e *donburi.Entry) {
	if e == nil || !e.Valid() || !e.HasComponent(components.Health) {
		return
	}
	if e.HasComponent(components.Death) {
		e.RemoveComponent(components.Death)
	}
	health := components.Health.Get(e)
	health.Current = health.Max
	for _, kind := range cfg.InvincibilityKinds {
		StopInvincibility(w, e, kind)
	}
}
