package relay

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics counts what a blind relay is allowed to see: rooms, connections,
// and opaque frame volume. Payload contents never reach a label.
type Metrics struct {
	Rooms           prometheus.Gauge
	Connections     prometheus.Gauge
	ForwardedFrames prometheus.Counter
}

// NewMetrics registers the relay collectors on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Rooms: factory.NewGauge(prometheus.GaugeOpts{
			Name: "ephemera_relay_rooms",
			Help: "Rooms currently open.",
		}),
		Connections: factory.NewGauge(prometheus.GaugeOpts{
			Name: "ephemera_relay_connections",
			Help: "Websocket connections currently attached.",
		}),
		ForwardedFrames: factory.NewCounter(prometheus.CounterOpts{
			Name: "ephemera_relay_forwarded_frames_total",
			Help: "Opaque frames broadcast to room members.",
		}),
	}
}
