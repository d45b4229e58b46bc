// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package analytics

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// DefaultNamespace prefixes the exported metric names.
const DefaultNamespace = "personality_quiz"

// Recorder receives quiz events.
type Recorder interface {
	RecordStart()
	RecordProgress(position int)
	RecordCompletion(personality string)
	RecordRetake()
}

// Nop discards every event.
type Nop struct{}

func (Nop) RecordStart()            {}
func (Nop) RecordProgress(int)      {}
func (Nop) RecordCompletion(string) {}
func (Nop) RecordRetake()           {}

// PrometheusRecorder exports quiz events as Prometheus counters.
type PrometheusRecorder struct {
	started     prometheus.Counter
	progressed  *prometheus.CounterVec
	completions *prometheus.CounterVec
	retakes     prometheus.Counter
}

// NewPrometheusRecorder registers the quiz counters with reg. Registering
// twice against the same registry reuses the existing collectors.
func NewPrometheusRecorder(namespace string, reg prometheus.Registerer) (*PrometheusRecorder, error) {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	started, err := register(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sessions_started_total",
		Help:      "Quiz sessions that left the first screen.",
	}))
	if err != nil {
		return nil, err
	}
	progressed, err := register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "progressed_total",
		Help:      "Question advances by the 1-based ending point reached.",
	}, []string{"position"}))
	if err != nil {
		return nil, err
	}
	completions, err := register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "completed_total",
		Help:      "Completed quiz runs by revealed personality.",
	}, []string{"personality"}))
	if err != nil {
		return nil, err
	}
	retakes, err := register(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "retakes_total",
		Help:      "Quiz resets requested by learners.",
	}))
	if err != nil {
		return nil, err
	}

	return &PrometheusRecorder{
		started:     started,
		progressed:  progressed,
		completions: completions,
		retakes:     retakes,
	}, nil
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		var zero C
		return zero, fmt.Errorf("register quiz metric: %w", err)
	}
	return c, nil
}

func (r *PrometheusRecorder) RecordStart() {
	if r == nil {
		return
	}
	r.started.Inc()
}

// RecordProgress counts an advance to the 0-based position.
func (r *PrometheusRecorder) RecordProgress(position int) {
	if r == nil {
		return
	}
	r.progressed.WithLabelValues(strconv.Itoa(position + 1)).Inc()
}

func (r *PrometheusRecorder) RecordCompletion(personality string) {
	if r == nil {
		return
	}
	r.completions.WithLabelValues(personality).Inc()
}

func (r *PrometheusRecorder) RecordRetake() {
	if r == nil {
		return
	}
	r.retakes.Inc()
}
