// Copyright 2021 The refetch Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package retry

import (
	"github.com/gogama/refetch/request"
)

// An Action is the decision an Evaluator makes about an outcome.
type Action int

const (
	// PassThrough means the outcome is not retryable. A response is
	// delivered downstream as-is, and a transport failure is propagated
	// to the caller unchanged.
	PassThrough Action = iota
	// Reschedule means the outcome is retryable and the request should
	// be resubmitted as Result.Request.
	Reschedule
	// Discard means the outcome is retryable but the retry ceiling has
	// been reached. No further resubmission occurs.
	Discard
)

var actionNames = []string{
	"PassThrough",
	"Reschedule",
	"Discard",
}

// String returns the name of the action.
func (a Action) String() string {
	return actionNames[int(a)]
}

// A Result is the decision made by an Evaluator.
type Result struct {
	// Action is the decision.
	Action Action
	// Request is the request to resubmit. It is non-nil only when
	// Action is Reschedule.
	Request *request.Request
	// Outcome is the evaluated outcome, unchanged.
	Outcome Outcome
	// Reason is the human-readable reason for a Reschedule or Discard.
	// It is empty for PassThrough.
	Reason string
	// Attempts is the 1-based count of failures of the logical request,
	// including this one, for a Reschedule or Discard. It is zero for
	// PassThrough.
	Attempts int
}

// An Evaluator applies a Policy to request attempt outcomes.
//
// An Evaluator holds no mutable state: every decision is a function of
// the request's attempt count, the outcome, and the policy. It is safe
// for concurrent use by multiple goroutines as long as each call
// operates on a distinct request.
type Evaluator struct {
	policy *Policy
	sink   Sink
}

// DefaultEvaluator evaluates outcomes using DefaultPolicy and sends no
// notifications.
var DefaultEvaluator = NewEvaluator(DefaultPolicy, nil)

// NewEvaluator constructs an Evaluator which applies policy p and sends
// notifications of its Reschedule and Discard decisions to s. If s is
// nil, NopSink is used.
func NewEvaluator(p *Policy, s Sink) *Evaluator {
	if p == nil {
		panic("refetch/retry: nil policy")
	}
	if s == nil {
		s = NopSink
	}
	return &Evaluator{policy: p, sink: s}
}

// Policy returns the evaluator's policy.
func (ev *Evaluator) Policy() *Policy {
	return ev.policy
}

// Retryable reports whether the outcome is retryable under the
// evaluator's policy, irrespective of the attempt count.
func (ev *Evaluator) Retryable(o Outcome) bool {
	switch {
	case o.Failure != nil:
		return ev.policy.RetryableKind(o.Failure.Kind)
	case o.Response != nil:
		return ev.policy.RetryableStatus(o.Response.StatusCode)
	default:
		return false
	}
}

// Evaluate decides what to do about outcome o of an attempt to send
// request r.
//
// If o is not retryable, the result is PassThrough. Otherwise the
// failure count is Attempts(r)+1; if it does not exceed the policy's
// retry ceiling, the result is Reschedule with a clone of r carrying
// the new count and marked to bypass duplicate filtering, and if it
// does, the result is Discard.
//
// Evaluate never modifies r.
func (ev *Evaluator) Evaluate(r *request.Request, o Outcome) Result {
	if !ev.Retryable(o) {
		return Result{Action: PassThrough, Outcome: o}
	}

	reason := o.Reason()
	attempts := Attempts(r) + 1
	if attempts <= ev.policy.maxRetries {
		r2 := WithIncrementedAttempts(r)
		r2.Retry.DontFilter = true
		ev.sink.RetryScheduled(r, attempts, reason, o)
		return Result{
			Action:   Reschedule,
			Request:  r2,
			Outcome:  o,
			Reason:   reason,
			Attempts: attempts,
		}
	}

	ev.sink.RetryExhausted(r, attempts, reason, o)
	return Result{
		Action:   Discard,
		Outcome:  o,
		Reason:   reason,
		Attempts: attempts,
	}
}
