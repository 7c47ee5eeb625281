package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	SessionCreations       prometheus.Counter
	SessionCreateFailures  prometheus.Counter
	GuardDenials           *prometheus.CounterVec
	IdentityProviderErrors prometheus.Counter
}

// New registers the portal metrics on the default registry.
func New() *Metrics {
	return NewWith(prometheus.DefaultRegisterer)
}

// NewWith registers on a caller-supplied registry, letting tests build
// isolated instances.
func NewWith(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		SessionCreations: factory.NewCounter(prometheus.CounterOpts{
			Name: "portal_session_creations_total",
			Help: "Total number of browser sessions created",
		}),
		SessionCreateFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "portal_session_create_failures_total",
			Help: "Total number of rejected session creation attempts",
		}),
		GuardDenials: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "portal_guard_denials_total",
			Help: "Total number of guard denials on protected routes",
		}, []string{"kind"}),
		IdentityProviderErrors: factory.NewCounter(prometheus.CounterOpts{
			Name: "portal_identity_provider_errors_total",
			Help: "Total number of transient identity provider failures",
		}),
	}
}

func (m *Metrics) IncrementSessionCreations() {
	m.SessionCreations.Inc()
}

func (m *Metrics) IncrementSessionCreateFailures() {
	m.SessionCreateFailures.Inc()
}

func (m *Metrics) IncrementGuardDenials(kind string) {
	m.GuardDenials.WithLabelValues(kind).Inc()
}

func (m *Metrics) IncrementIdentityProviderErrors() {
	m.IdentityProviderErrors.Inc()
}
