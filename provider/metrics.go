package provider

import "github.com/prometheus/client_golang/prometheus"

// Metrics counts provider activity. All methods are nil-safe so the
// provider can run without a registry.
type Metrics struct {
	packetsSeen        prometheus.Counter
	presenceResolved   prometheus.Counter
	presenceUnresolved prometheus.Counter
	recordsEmitted     prometheus.Counter
	scanFailures       prometheus.Counter
}

// NewMetrics builds and registers the provider counters on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		packetsSeen: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "nearby_ble_packets_total",
			Help: "Raw scan results received from the radio stack.",
		}),
		presenceResolved: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "nearby_ble_presence_resolved_total",
			Help: "Presence packets a credential successfully decrypted.",
		}),
		presenceUnresolved: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "nearby_ble_presence_unresolved_total",
			Help: "Presence packets no known credential decrypted.",
		}),
		recordsEmitted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "nearby_ble_records_emitted_total",
			Help: "Device records delivered to the listener.",
		}),
		scanFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "nearby_ble_scan_failures_total",
			Help: "Asynchronous scan failures reported by the radio stack.",
		}),
	}

	reg.MustRegister(
		m.packetsSeen,
		m.presenceResolved,
		m.presenceUnresolved,
		m.recordsEmitted,
		m.scanFailures,
	)
	return m
}

func (m *Metrics) packetSeen() {
	if m != nil {
		m.packetsSeen.Inc()
	}
}

func (m *Metrics) resolved(ok bool) {
	if m == nil {
		return
	}
	if ok {
		m.presenceResolved.Inc()
	} else {
		m.presenceUnresolved.Inc()
	}
}

func (m *Metrics) recordEmitted() {
	if m != nil {
		m.recordsEmitted.Inc()
	}
}

func (m *Metrics) scanFailed() {
	if m != nil {
		m.scanFailures.Inc()
	}
}
