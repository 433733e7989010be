package notif

import (
	"github.com/prometheus/client_golang/prometheus"
)

type Metrics struct {
	Persisted *prometheus.CounterVec
	Delivered prometheus.Counter
	Offline   prometheus.Counter
	Failed    prometheus.Counter
}

// NewMetrics registers the notification counters and a gauge of live channels.
func NewMetrics(reg prometheus.Registerer, channels interface{ Len() int }) *Metrics {
	m := &Metrics{
		Persisted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "zentra",
			Subsystem: "notifications",
			Name:      "persisted_total",
			Help:      "Notification events durably stored, by kind.",
		}, []string{"kind"}),
		Delivered: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "zentra",
			Subsystem: "notifications",
			Name:      "delivered_total",
			Help:      "Notification events pushed to a live channel.",
		}),
		Offline: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "zentra",
			Subsystem: "notifications",
			Name:      "offline_total",
			Help:      "Notification events whose recipient had no live channel.",
		}),
		Failed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "zentra",
			Subsystem: "notifications",
			Name:      "delivery_failed_total",
			Help:      "Pushes that failed or timed out.",
		}),
	}

	reg.MustRegister(m.Persisted, m.Delivered, m.Offline, m.Failed)
	if channels != nil {
		reg.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: "zentra",
			Subsystem: "push",
			Name:      "live_channels",
			Help:      "Users with a registered push channel.",
		}, func() float64 { return float64(channels.Len()) }))
	}
	return m
}
