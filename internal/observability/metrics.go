// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package observability

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/holomush/tokenkeeper/internal/auth"
	"github.com/holomush/tokenkeeper/internal/lifecycle"
)

const namespace = "tokenkeeper"

// Metrics contains the credential lifecycle counters. It implements
// auth.Metrics and lifecycle.Recorder.
type Metrics struct {
	SessionsIssuedTotal  *prometheus.CounterVec
	TokensRejectedTotal  *prometheus.CounterVec
	ReplaysDetectedTotal *prometheus.CounterVec
	SessionsRevokedTotal *prometheus.CounterVec
	ResetsInitiatedTotal prometheus.Counter
	ResetsCompletedTotal prometheus.Counter
	SweepDeletedTotal    *prometheus.CounterVec
	SweepFailuresTotal   *prometheus.CounterVec
}

// NewMetrics creates and registers the credential lifecycle metrics.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		SessionsIssuedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "sessions_issued_total",
				Help:      "Total number of credential pairs issued by reason",
			},
			[]string{"reason"},
		),
		TokensRejectedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "tokens_rejected_total",
				Help:      "Total number of rejected tokens by token type and reason",
			},
			[]string{"token", "reason"},
		),
		ReplaysDetectedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "replay_detected_total",
				Help:      "Total number of reuse attempts of revoked or consumed tokens",
			},
			[]string{"token"},
		),
		SessionsRevokedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "sessions_revoked_total",
				Help:      "Total number of refresh tokens revoked by reason",
			},
			[]string{"reason"},
		),
		ResetsInitiatedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reset_initiated_total",
			Help:      "Total number of reset tokens issued",
		}),
		ResetsCompletedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reset_completed_total",
			Help:      "Total number of completed credential resets",
		}),
		SweepDeletedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "sweep_deleted_total",
				Help:      "Total number of expired tokens purged by store",
			},
			[]string{"store"},
		),
		SweepFailuresTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "sweep_failures_total",
				Help:      "Total number of failed sweeps by store",
			},
			[]string{"store"},
		),
	}

	reg.MustRegister(
		m.SessionsIssuedTotal,
		m.TokensRejectedTotal,
		m.ReplaysDetectedTotal,
		m.SessionsRevokedTotal,
		m.ResetsInitiatedTotal,
		m.ResetsCompletedTotal,
		m.SweepDeletedTotal,
		m.SweepFailuresTotal,
	)
	return m
}

// SessionIssued implements auth.Metrics.
func (m *Metrics) SessionIssued(reason string) {
	m.SessionsIssuedTotal.WithLabelValues(reason).Inc()
}

// TokenRejected implements auth.Metrics.
func (m *Metrics) TokenRejected(tokenType, reason string) {
	m.TokensRejectedTotal.WithLabelValues(tokenType, reason).Inc()
}

// ReplayDetected implements auth.Metrics.
func (m *Metrics) ReplayDetected(tokenType string) {
	m.ReplaysDetectedTotal.WithLabelValues(tokenType).Inc()
}

// SessionsRevoked implements auth.Metrics.
func (m *Metrics) SessionsRevoked(reason string, n int64) {
	if n <= 0 {
		return
	}
	m.SessionsRevokedTotal.WithLabelValues(reason).Add(float64(n))
}

// ResetInitiated implements auth.Metrics.
func (m *Metrics) ResetInitiated() {
	m.ResetsInitiatedTotal.Inc()
}

// ResetCompleted implements auth.Metrics.
func (m *Metrics) ResetCompleted() {
	m.ResetsCompletedTotal.Inc()
}

// SweepCompleted implements lifecycle.Recorder.
func (m *Metrics) SweepCompleted(store string, deleted int64, err error) {
	if err != nil {
		m.SweepFailuresTotal.WithLabelValues(store).Inc()
		return
	}
	m.SweepDeletedTotal.WithLabelValues(store).Add(float64(deleted))
}

var (
	_ auth.Metrics       = (*Metrics)(nil)
	_ lifecycle.Recorder = (*Metrics)(nil)
)
