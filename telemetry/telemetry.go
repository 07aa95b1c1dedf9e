// Package telemetry exposes combat metrics through OpenTelemetry. It uses
// whatever meter it is given; with the global provider unset every
// instrument is a no-op.
package telemetry

import (
	"context"
	"fmt"

	cfg "github.com/automoto/doomerang-combat/config"
	"github.com/automoto/doomerang-combat/pool"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "github.com/automoto/doomerang-combat/telemetry"

// Meter returns the meter from the global provider.
func Meter() metric.Meter {
	return otel.Meter(instrumentationName)
}

// StatsSource reports pool occupancy.
type StatsSource interface {
	Stats() []pool.Stat
}

// Metrics records combat counters. A nil *Metrics records nothing.
type Metrics struct {
	poolInstances  metric.Int64ObservableGauge
	damageApplied  metric.Int64Counter
	damageAbsorbed metric.Int64Counter
	actions        metric.Int64Counter
	spawned        metric.Int64Counter
	released       metric.Int64Counter
}

// New creates the instruments on m. Pool occupancy is observed from pools
// when it is non-nil.
func New(m metric.Meter, pools StatsSource) (*Metrics, error) {
	t := &Metrics{}

	var err error

	t.poolInstances, err = m.Int64ObservableGauge(
		"combat.pool.instances",
		metric.WithDescription("Pooled instances by template and state"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating pool gauge: %w", err)
	}

	if pools != nil {
		_, err = m.RegisterCallback(
			func(ctx context.Context, o metric.Observer) error {
				for _, s := range pools.Stats() {
					tmpl := attribute.String("template", s.Template)
					o.ObserveInt64(t.poolInstances, int64(s.Active),
						metric.WithAttributes(tmpl, attribute.String("state", "active")))
					o.ObserveInt64(t.poolInstances, int64(s.Inactive),
						metric.WithAttributes(tmpl, attribute.String("state", "inactive")))
				}
				return nil
			},
			t.poolInstances,
		)
		if err != nil {
			return nil, fmt.Errorf("registering pool callback: %w", err)
		}
	}

	t.damageApplied, err = m.Int64Counter(
		"combat.damage.applied",
		metric.WithDescription("Total health removed by damage"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating damage counter: %w", err)
	}

	t.damageAbsorbed, err = m.Int64Counter(
		"combat.damage.absorbed",
		metric.WithDescription("Hits blocked by invincibility"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating absorbed counter: %w", err)
	}

	t.actions, err = m.Int64Counter(
		"combat.collision.actions",
		metric.WithDescription("Collision actions executed"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating actions counter: %w", err)
	}

	t.spawned, err = m.Int64Counter(
		"combat.projectiles.spawned",
		metric.WithDescription("Projectiles launched"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating spawned counter: %w", err)
	}

	t.released, err = m.Int64Counter(
		"combat.projectiles.released",
		metric.WithDescription("Projectiles returned to the pool"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating released counter: %w", err)
	}

	return t, nil
}

func (t *Metrics) DamageApplied(amount int, critical bool) {
	if t == nil {
		return
	}
	t.damageApplied.Add(context.Background(), int64(amount),
		metric.WithAttributes(attribute.Bool("critical", critical)))
}

func (t *Metrics) DamageAbsorbed() {
	if t == nil {
		return
	}
	t.damageAbsorbed.Add(context.Background(), 1)
}

func (t *Metrics) ActionExecuted(kind cfg.ActionKind) {
	if t == nil {
		return
	}
	t.actions.Add(context.Background(), 1,
		metric.WithAttributes(attribute.String("kind", kind.String())))
}

func (t *Metrics) ProjectileSpawned(archetype string) {
	if t == nil {
		return
	}
	t.spawned.Add(context.Background(), 1,
		metric.WithAttributes(attribute.String("archetype", archetype)))
}

// ProjectileReleased counts a recycled projectile. reason is one of
// "collision", "lifetime" or "bounds".
func (t *Metrics) ProjectileReleased(reason string) {
	if t == nil {
		return
	}
	t.released.Add(context.Background(), 1,
		metric.WithAttributes(attribute.String("reason", reason)))
}
