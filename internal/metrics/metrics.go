// Package metrics exposes Prometheus collectors fed by lifecycle hooks.
package metrics

import (
	"context"
	"net/http"
	"strconv"

	"github.com/aretw0/alttab/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "alttab"

// Metrics owns a private registry so several daemons (or tests) never collide.
type Metrics struct {
	Registry *prometheus.Registry

	FocusEvents     *prometheus.CounterVec
	Steps           *prometheus.CounterVec
	Prunes          prometheus.Counter
	Resets          prometheus.Counter
	Sessions        *prometheus.CounterVec
	SessionDuration prometheus.Histogram
	Commands        *prometheus.CounterVec
	HistoryLength   prometheus.Gauge
}

// New creates and registers all collectors, including Go runtime and process metrics.
func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		FocusEvents: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "focus_events_total",
				Help:      "Focus changes reported by the window manager.",
			},
			[]string{"dropped"},
		),
		Steps: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "steps_total",
				Help:      "Traversal steps by direction and outcome.",
			},
			[]string{"direction", "found"},
		),
		Prunes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "prunes_total",
			Help:      "Stale history entries removed during traversal.",
		}),
		Resets: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "resets_total",
			Help:      "History rebuilds from the live set.",
		}),
		Sessions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "sessions_total",
				Help:      "Finished cycle sessions.",
			},
			[]string{"committed"},
		),
		SessionDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "session_duration_seconds",
			Help:      "Time from the first switch command to the modifier release.",
			Buckets:   []float64{.1, .25, .5, 1, 2, 5, 10},
		}),
		Commands: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "commands_total",
				Help:      "Payloads received on the control socket.",
			},
			[]string{"command"},
		),
		HistoryLength: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "history_length",
			Help:      "Entries currently held in the focus history.",
		}),
	}

	m.Registry.MustRegister(
		m.FocusEvents, m.Steps, m.Prunes, m.Resets,
		m.Sessions, m.SessionDuration, m.Commands, m.HistoryLength,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}

// Hooks records every lifecycle event.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnFocus: func(ctx context.Context, e *domain.FocusEvent) {
			m.FocusEvents.WithLabelValues(strconv.FormatBool(e.Dropped)).Inc()
			m.HistoryLength.Set(float64(e.HistoryLen))
		},
		OnStep: func(ctx context.Context, e *domain.StepEvent) {
			m.Steps.WithLabelValues(domain.DirectionLabel(e.Forward), strconv.FormatBool(e.Found)).Inc()
			m.HistoryLength.Set(float64(e.HistoryLen))
		},
		OnPrune: func(ctx context.Context, e *domain.PruneEvent) {
			m.Prunes.Inc()
		},
		OnReset: func(ctx context.Context, e *domain.ResetEvent) {
			m.Resets.Inc()
			m.HistoryLength.Set(float64(e.HistoryLen))
		},
		OnSessionEnd: func(ctx context.Context, e *domain.SessionEvent) {
			m.Sessions.WithLabelValues(strconv.FormatBool(e.Committed)).Inc()
			m.SessionDuration.Observe(e.Duration.Seconds())
		},
		OnCommand: func(ctx context.Context, e *domain.CommandEvent) {
			label := e.Command
			if !e.Recognized {
				label = "unknown"
			}
			m.Commands.WithLabelValues(label).Inc()
		},
	}
}
