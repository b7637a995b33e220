package booking

import "github.com/prometheus/client_golang/prometheus"

// Metrics counts reservation and cancellation outcomes.
type Metrics struct {
	reservations  *prometheus.CounterVec
	cancellations *prometheus.CounterVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		reservations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "slotbook",
			Subsystem: "booking",
			Name:      "reservations_total",
			Help:      "Booking requests by outcome",
		}, []string{"outcome"}),
		cancellations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "slotbook",
			Subsystem: "booking",
			Name:      "cancellations_total",
			Help:      "Cancellation requests by outcome",
		}, []string{"outcome"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.reservations, m.cancellations)
	return m
}

func (m *Metrics) ObserveReservation(outcome string) {
	if m == nil {
		return
	}
	m.reservations.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ObserveCancellation(outcome string) {
	if m == nil {
		return
	}
	m.cancellations.WithLabelValues(outcome).Inc()
}
