package delivery

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts delivery outcomes. A nil *Metrics records nothing.
type Metrics struct {
	sent      *prometheus.CounterVec
	failed    *prometheus.CounterVec
	fallbacks prometheus.Counter
}

// NewMetrics creates the delivery counters and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		sent: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "chatcomp",
			Subsystem: "delivery",
			Name:      "sent_total",
			Help:      "Messages delivered, by provider.",
		}, []string{"provider"}),
		failed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "chatcomp",
			Subsystem: "delivery",
			Name:      "failed_total",
			Help:      "Delivery attempts that returned an error, by provider.",
		}, []string{"provider"}),
		fallbacks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "chatcomp",
			Subsystem: "delivery",
			Name:      "fallbacks_total",
			Help:      "Messages resent as legacy text after the primary provider failed.",
		}),
	}
	reg.MustRegister(m.sent, m.failed, m.fallbacks)
	return m
}

func (m *Metrics) observe(provider string, err error) {
	if m == nil {
		return
	}
	if err != nil {
		m.failed.WithLabelValues(provider).Inc()
		return
	}
	m.sent.WithLabelValues(provider).Inc()
}

func (m *Metrics) fallback() {
	if m == nil {
		return
	}
	m.fallbacks.Inc()
}
