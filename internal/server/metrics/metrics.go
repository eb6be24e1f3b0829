// Package metrics exposes Prometheus counters for account activity and the
// HTTP endpoint that serves them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Result labels.
const (
	ResultSuccess      = "success"
	ResultInvalid      = "invalid_credentials"
	ResultLocked       = "locked"
	ResultLockedNow    = "locked_now"
	ResultNotFound     = "not_found"
	ResultDuplicate    = "duplicate"
	ResultInternalFail = "error"
)

// Metrics holds the account counters. A nil *Metrics is valid and records
// nothing.
type Metrics struct {
	Registrations   *prometheus.CounterVec
	Authentications *prometheus.CounterVec
	Lockouts        prometheus.Counter
	PasswordResets  *prometheus.CounterVec
}

// NewMetrics creates the counters and registers them with reg.
// Panics if registration fails (prometheus convention).
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Registrations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gophlock_registrations_total",
				Help: "Account registrations by result",
			},
			[]string{"result"},
		),
		Authentications: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gophlock_authentications_total",
				Help: "Authentication attempts by result",
			},
			[]string{"result"},
		),
		Lockouts: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "gophlock_lockouts_total",
				Help: "Accounts locked after reaching the failed-attempt threshold",
			},
		),
		PasswordResets: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gophlock_password_resets_total",
				Help: "Password resets by result",
			},
			[]string{"result"},
		),
	}

	reg.MustRegister(m.Registrations, m.Authentications, m.Lockouts, m.PasswordResets)
	return m
}

func (m *Metrics) RecordRegistration(result string) {
	if m == nil {
		return
	}
	m.Registrations.WithLabelValues(result).Inc()
}

// RecordAuthentication counts one attempt; ResultLockedNow also counts a
// lockout.
func (m *Metrics) RecordAuthentication(result string) {
	if m == nil {
		return
	}
	m.Authentications.WithLabelValues(result).Inc()
	if result == ResultLockedNow {
		m.Lockouts.Inc()
	}
}

func (m *Metrics) RecordPasswordReset(result string) {
	if m == nil {
		return
	}
	m.PasswordResets.WithLabelValues(result).Inc()
}
