package metrics

import "github.com/prometheus/client_golang/prometheus"

// Rejection reasons recorded by RosterMetrics.RequestRejected.
const (
	ReasonNotFound    = "not_found"
	ReasonDuplicate   = "duplicate"
	ReasonFull        = "full"
	ReasonNotSignedUp = "not_signed_up"
	ReasonBadRequest  = "bad_request"
)

// RosterMetrics holds the application metrics for roster operations.
type RosterMetrics struct {
	signups      Counter
	unregisters  Counter
	rejections   CounterVec
	participants GaugeVec
	capacity     GaugeVec
}

// NewRosterMetrics creates and registers the roster metrics.
func NewRosterMetrics(reg Registry) (*RosterMetrics, error) {
	signups, err := reg.NewCounter(prometheus.CounterOpts{
		Name: "signups_total",
		Help: "Total number of accepted signups.",
	})
	if err != nil {
		return nil, err
	}

	unregisters, err := reg.NewCounter(prometheus.CounterOpts{
		Name: "unregisters_total",
		Help: "Total number of accepted unregistrations.",
	})
	if err != nil {
		return nil, err
	}

	rejections, err := reg.NewCounterVec(prometheus.CounterOpts{
		Name: "roster_rejections_total",
		Help: "Total number of rejected roster requests by reason.",
	}, []string{"reason"})
	if err != nil {
		return nil, err
	}

	participants, err := reg.NewGaugeVec(prometheus.GaugeOpts{
		Name: "activity_participants",
		Help: "Current number of participants per activity.",
	}, []string{"activity"})
	if err != nil {
		return nil, err
	}

	capacity, err := reg.NewGaugeVec(prometheus.GaugeOpts{
		Name: "activity_capacity",
		Help: "Maximum number of participants per activity.",
	}, []string{"activity"})
	if err != nil {
		return nil, err
	}

	return &RosterMetrics{
		signups:      signups,
		unregisters:  unregisters,
		rejections:   rejections,
		participants: participants,
		capacity:     capacity,
	}, nil
}

// SignupAccepted records a successful signup.
func (m *RosterMetrics) SignupAccepted() {
	m.signups.Inc()
}

// UnregisterAccepted records a successful unregistration.
func (m *RosterMetrics) UnregisterAccepted() {
	m.unregisters.Inc()
}

// RequestRejected records a rejected roster request.
func (m *RosterMetrics) RequestRejected(reason string) {
	m.rejections.With(prometheus.Labels{"reason": reason}).Inc()
}

// SetRoster updates the occupancy gauges for one activity.
func (m *RosterMetrics) SetRoster(activity string, participants, capacity int) {
	m.participants.With(prometheus.Labels{"activity": activity}).Set(float64(participants))
	m.capacity.With(prometheus.Labels{"activity": activity}).Set(float64(capacity))
}
