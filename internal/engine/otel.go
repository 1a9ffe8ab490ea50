package engine

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "github.com/seaward-sim/seaward/internal/engine"

func meter() metric.Meter {
	return otel.Meter(instrumentationName)
}

// initMetrics wires the tick and launch counters against the global OTel
// meter (no-op if no provider is configured). Instrument creation only fails
// on invalid names, so errors are swallowed after substituting no-op
// instruments via the global meter's defaults.
func (g *Game) initMetrics() {
	m := meter()
	g.ticks, _ = m.Int64Counter(
		"engine.ticks",
		metric.WithDescription("Total simulation ticks advanced"),
	)
	g.launches, _ = m.Int64Counter(
		"engine.weapon.launches",
		metric.WithDescription("Total manual weapon launches"),
	)
}
