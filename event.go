// Copyright 2021 The refetch Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package refetch

// An Event identifies the event type when installing or running a
// Handler. Install event handlers in a Client to observe or extend
// fetches.
type Event int

const (
	// BeforeExecutionStart identifies the event that occurs before the
	// fetch starts. Only the execution's Original and Current requests
	// are set.
	BeforeExecutionStart Event = iota
	// BeforeAttempt identifies the event that occurs before each
	// attempt. The execution's Request field is set to the HTTP request
	// that will be sent after all BeforeAttempt handlers have finished.
	BeforeAttempt
	// BeforeReadBody identifies the event that occurs after an attempt
	// has received an HTTP response but before its body is read.
	BeforeReadBody
	// AfterAttemptTimeout identifies the event that occurs after an
	// attempt failed because of a timeout.
	AfterAttemptTimeout
	// AfterAttempt identifies the event that occurs after every attempt,
	// before the retry evaluator is consulted.
	AfterAttempt
	// RetryScheduled identifies the event that occurs when the current
	// request is to be resubmitted. The execution's Reason is set, and
	// Current is still the request which failed.
	RetryScheduled
	// RetryExhausted identifies the event that occurs when the current
	// request is discarded because the retry ceiling has been reached.
	// The execution's Reason and Exhausted fields are set.
	RetryExhausted
	// AfterExecutionEnd identifies the event that occurs after the fetch
	// ends.
	AfterExecutionEnd
	// eventSentinel provides the total number of events typed as an
	// Event.
	eventSentinel

	// numEvents provides the total number of events types as an int.
	numEvents = int(eventSentinel)
)

var eventNames = []string{
	"BeforeExecutionStart",
	"BeforeAttempt",
	"BeforeReadBody",
	"AfterAttemptTimeout",
	"AfterAttempt",
	"RetryScheduled",
	"RetryExhausted",
	"AfterExecutionEnd",
}

// Events returns a slice containing all events which can occur in a
// fetch, in the order in which they would occur.
func Events() []Event {
	e := make([]Event, numEvents)
	for i := range e {
		e[i] = Event(i)
	}
	return e
}

// Name returns the name of the event.
func (evt Event) Name() string {
	return eventNames[int(evt)]
}

// String returns the name of the event.
func (evt Event) String() string {
	return evt.Name()
}
