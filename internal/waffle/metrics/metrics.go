package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Resolution sources for flag evaluations.
const (
	SourceRequestCache = "request_cache"
	SourceOverride     = "override"
	SourceWaffle       = "waffle"
)

type Metrics struct {
	FlagEvaluations      *prometheus.CounterVec
	SwitchEvaluations    *prometheus.CounterVec
	OverrideAdminChanges prometheus.Counter
}

func New() *Metrics {
	return &Metrics{
		FlagEvaluations: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "campus_waffle_flag_evaluations_total",
			Help: "Total flag evaluations by resolution source",
		}, []string{"source"}),
		SwitchEvaluations: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "campus_waffle_switch_evaluations_total",
			Help: "Total switch evaluations by resolution source",
		}, []string{"source"}),
		OverrideAdminChanges: promauto.NewCounter(prometheus.CounterOpts{
			Name: "campus_waffle_override_admin_changes_total",
			Help: "Total admin mutations of course override records",
		}),
	}
}

// FlagEvaluated records one flag evaluation. Nil-safe so the engine works
// without metrics wired (tests, CLI tools).
func (m *Metrics) FlagEvaluated(source string) {
	if m == nil {
		return
	}
	m.FlagEvaluations.WithLabelValues(source).Inc()
}

// SwitchEvaluated records one switch evaluation.
func (m *Metrics) SwitchEvaluated(source string) {
	if m == nil {
		return
	}
	m.SwitchEvaluations.WithLabelValues(source).Inc()
}

// OverrideChanged records one admin mutation.
func (m *Metrics) OverrideChanged() {
	if m == nil {
		return
	}
	m.OverrideAdminChanges.Inc()
}
