package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics bundles the server's prometheus collectors on a private registry,
// so tests can build as many instances as they like. A nil *Metrics is a
// valid no-op sink.
type Metrics struct {
	registry *prometheus.Registry

	connections prometheus.Gauge
	rooms       prometheus.Gauge
	ghosts      prometheus.Gauge
	rejections  *prometheus.CounterVec
}

// New creates and registers all collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		connections: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "clipparty_connections_active",
			Help: "Number of attached client sessions.",
		}),
		rooms: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "clipparty_rooms_active",
			Help: "Number of live rooms.",
		}),
		ghosts: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "clipparty_ghost_sessions",
			Help: "Number of ghost sessions awaiting reconnect or expiry.",
		}),
		rejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "clipparty_handshake_rejections_total",
			Help: "Connections refused at handshake time, by cause.",
		}, []string{"cause"}),
	}
	m.registry.MustRegister(m.connections, m.rooms, m.ghosts, m.rejections)
	return m
}

// Handler serves the /metrics endpoint for this registry.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// SetConnections records the number of attached sessions.
func (m *Metrics) SetConnections(n int) {
	if m == nil {
		return
	}
	m.connections.Set(float64(n))
}

// SetRooms records the number of live rooms.
func (m *Metrics) SetRooms(n int) {
	if m == nil {
		return
	}
	m.rooms.Set(float64(n))
}

// SetGhosts records the number of pending ghost sessions.
func (m *Metrics) SetGhosts(n int) {
	if m == nil {
		return
	}
	m.ghosts.Set(float64(n))
}

// HandshakeRejected counts a refused connection by cause.
func (m *Metrics) HandshakeRejected(cause string) {
	if m == nil {
		return
	}
	m.rejections.WithLabelValues(cause).Inc()
}
