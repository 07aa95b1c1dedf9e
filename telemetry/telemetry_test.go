package telemetry

import (
	"context"
	"testing"

	cfg "github.com/automoto/doomerang-combat/config"
	"github.com/automoto/doomerang-combat/pool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

type fakeStats []pool.Stat

func (f fakeStats) Stats() []pool.Stat { return f }

func setup(t *testing.T, pools StatsSource) (*Metrics, *sdkmetric.ManualReader) {
	t.Helper()
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = mp.Shutdown(context.Background()) })

	m, err := New(mp.Meter("test"), pools)
	require.NoError(t, err)
	return m, reader
}

func collect(t *testing.T, reader *sdkmetric.ManualReader) map[string]metricdata.Aggregation {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	out := make(map[string]metricdata.Aggregation)
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			out[m.Name] = m.Data
		}
	}
	return out
}

func sumOf(t *testing.T, data metricdata.Aggregation) int64 {
	t.Helper()
	sum, ok := data.(metricdata.Sum[int64])
	require.True(t, ok)
	var total int64
	for _, dp := range sum.DataPoints {
		total += dp.Value
	}
	return total
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.DamageApplied(10, true)
		m.DamageAbsorbed()
		m.ActionExecuted(cfg.ActionBounce)
		m.ProjectileSpawned("pistol")
		m.ProjectileReleased("lifetime")
	})
}

func TestCounters(t *testing.T) {
	m, reader := setup(t, nil)

	m.DamageApplied(30, false)
	m.DamageApplied(12, true)
	m.DamageAbsorbed()
	m.ActionExecuted(cfg.ActionBounce)
	m.ActionExecuted(cfg.ActionBounce)
	m.ActionExecuted(cfg.ActionDestroy)
	m.ProjectileSpawned("pistol")
	m.ProjectileReleased("collision")

	got := collect(t, reader)
	assert.Equal(t, int64(42), sumOf(t, got["combat.damage.applied"]))
	assert.Equal(t, int64(1), sumOf(t, got["combat.damage.absorbed"]))
	assert.Equal(t, int64(3), sumOf(t, got["combat.collision.actions"]))
	assert.Equal(t, int64(1), sumOf(t, got["combat.projectiles.spawned"]))
	assert.Equal(t, int64(1), sumOf(t, got["combat.projectiles.released"]))

	actions := got["combat.collision.actions"].(metricdata.Sum[int64])
	byKind := map[string]int64{}
	for _, dp := range actions.DataPoints {
		kind, _ := dp.Attributes.Value(attribute.Key("kind"))
		byKind[kind.AsString()] = dp.Value
	}
	assert.Equal(t, map[string]int64{"bounce": 2, "destroy": 1}, byKind)
}

func TestPoolGauge(t *testing.T) {
	_, reader := setup(t, fakeStats{{Template: "bullet", Total: 5, Inactive: 3, Active: 2}})

	got := collect(t, reader)
	gauge, ok := got["combat.pool.instances"].(metricdata.Gauge[int64])
	require.True(t, ok)

	byState := map[string]int64{}
	for _, dp := range gauge.DataPoints {
		state, _ := dp.Attributes.Value(attribute.Key("state"))
		tmpl, _ := dp.Attributes.Value(attribute.Key("template"))
		assert.Equal(t, "bullet", tmpl.AsString())
		byState[state.AsString()] = dp.Value
	}
	assert.Equal(t, map[string]int64{"active": 2, "inactive": 3}, byState)
}
