package scenes

import (
	"github.com/automoto/doomerang-combat/components"
	cfg "github.com/automoto/doomerang-combat/config"
	"github.com/automoto/doomerang-combat/events"
	"github.com/automoto/doomerang-combat/persistence"
	"github.com/yohamta/donburi"
)

// RunStats tallies combat events for the run summary.
type RunStats struct {
	order      []donburi.Entity
	combatants map[donburi.Entity]*persistence.CombatantSummary

	hits      int
	criticals int
	released  int
}

func newRunStats() *RunStats {
	return &RunStats{combatants: make(map[donburi.Entity]*persistence.CombatantSummary)}
}

// track adds a combatant to the summary.
func (s *RunStats) track(e *donburi.Entry) {
	c := components.Combatant.Get(e)
	s.order = append(s.order, e.Entity())
	s.combatants[e.Entity()] = &persistence.CombatantSummary{ID: c.ID, Name: c.Name}
}

func (s *RunStats) subscribe(w donburi.World) {
	events.HitEvent.Subscribe(w, s.onHit)
	events.DeathEvent.Subscribe(w, s.onDeath)
	events.ReleasedEvent.Subscribe(w, s.onReleased)
}

func (s *RunStats) onHit(w donburi.World, ev events.Hit) {
	s.hits++
	if ev.Critical {
		s.criticals++
	}
	if target, ok := s.combatants[ev.Target]; ok {
		target.DamageTaken += ev.Amount
	}
	if attacker, ok := s.combatants[ev.Attacker]; ok && ev.Attacker != ev.Target {
		attacker.DamageDealt += ev.Amount
	}
}

func (s *RunStats) onDeath(w donburi.World, ev events.Death) {
	if target, ok := s.combatants[ev.Target]; ok {
		target.Deaths++
	}
	if !ev.HasKiller {
		return
	}
	if killer, ok := s.combatants[ev.Killer]; ok {
		killer.Kills++
	}
}

func (s *RunStats) onReleased(w donburi.World, ev events.Released) {
	if ev.Template == cfg.TemplateBullet {
		s.released++
	}
}

// Summary snapshots the tallies, combatants in creation order.
func (s *RunStats) Summary(seed int64, ticks int) persistence.RunSummary {
	out := persistence.RunSummary{
		Seed:      seed,
		Ticks:     ticks,
		Seconds:   float64(ticks) * cfg.DeltaTime(),
		Hits:      s.hits,
		Criticals: s.criticals,
		Released:  s.released,
	}
	for _, id := range s.order {
		out.Combatants = append(out.Combatants, *s.combatants[id])
	}
	return out
}
