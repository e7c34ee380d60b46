// Copyright 2021 The refetch Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package retry

import "github.com/gogama/refetch/request"

// A Sink is notified of the retry decisions made by an Evaluator.
// Notifications are informational (debug severity) and a Sink cannot
// influence the decision.
//
// Implementations of Sink must be safe for concurrent use by multiple
// goroutines.
//
// Parameter attempts is the 1-based count of failures of the logical
// request, including the one just evaluated. Parameter reason is the
// human-readable reason from Outcome.Reason.
type Sink interface {
	// RetryScheduled is called when r is being rescheduled.
	RetryScheduled(r *request.Request, attempts int, reason string, o Outcome)
	// RetryExhausted is called when r is discarded because the retry
	// ceiling has been reached.
	RetryExhausted(r *request.Request, attempts int, reason string, o Outcome)
}

// NopSink is a Sink which ignores every notification.
var NopSink Sink = nopSink{}

type nopSink struct{}

func (nopSink) RetryScheduled(*request.Request, int, string, Outcome) {}

func (nopSink) RetryExhausted(*request.Request, int, string, Outcome) {}

// Sinks combines several sinks into one which notifies each of them in
// order. Nil sinks are skipped.
func Sinks(sinks ...Sink) Sink {
	var m multiSink
	for _, s := range sinks {
		if s != nil {
			m = append(m, s)
		}
	}
	switch len(m) {
	case 0:
		return NopSink
	case 1:
		return m[0]
	default:
		return m
	}
}

type multiSink []Sink

func (m multiSink) RetryScheduled(r *request.Request, attempts int, reason string, o Outcome) {
	for _, s := range m {
		s.RetryScheduled(r, attempts, reason, o)
	}
}

func (m multiSink) RetryExhausted(r *request.Request, attempts int, reason string, o Outcome) {
	for _, s := range m {
		s.RetryExhausted(r, attempts, reason, o)
	}
}
