// Copyright 2021 The refetch Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package retrymetrics counts retry decisions with Prometheus counters.
//
// Counters are labelled with the outcome's cause, the status code or
// transport failure kind, which keeps their cardinality bounded.
package retrymetrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/gogama/refetch/request"
	"github.com/gogama/refetch/retry"
)

// A Sink is a retry.Sink which counts Reschedule and Discard decisions.
type Sink struct {
	scheduled *prometheus.CounterVec
	exhausted *prometheus.CounterVec
}

// New creates a Sink and registers its counters with reg. If reg is
// nil, the counters are not registered.
func New(reg prometheus.Registerer) (*Sink, error) {
	s := &Sink{
		scheduled: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "refetch",
				Name:      "retries_scheduled_total",
				Help:      "Total number of requests rescheduled for retry",
			},
			[]string{"cause"},
		),
		exhausted: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "refetch",
				Name:      "retries_exhausted_total",
				Help:      "Total number of requests discarded after exhausting retries",
			},
			[]string{"cause"},
		),
	}
	if reg != nil {
		for _, c := range []prometheus.Collector{s.scheduled, s.exhausted} {
			if err := reg.Register(c); err != nil {
				return nil, err
			}
		}
	}
	return s, nil
}

// RetryScheduled increments the scheduled counter for the outcome's
// cause.
func (s *Sink) RetryScheduled(_ *request.Request, _ int, _ string, o retry.Outcome) {
	s.scheduled.WithLabelValues(o.Cause()).Inc()
}

// RetryExhausted increments the exhausted counter for the outcome's
// cause.
func (s *Sink) RetryExhausted(_ *request.Request, _ int, _ string, o retry.Outcome) {
	s.exhausted.WithLabelValues(o.Cause()).Inc()
}

// Scheduled returns the scheduled counter for cause.
func (s *Sink) Scheduled(cause string) prometheus.Counter {
	return s.scheduled.WithLabelValues(cause)
}

// Exhausted returns the exhausted counter for cause.
func (s *Sink) Exhausted(cause string) prometheus.Counter {
	return s.exhausted.WithLabelValues(cause)
}
