// Copyright 2021 The refetch Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"net/http"
	"time"

	"github.com/gogama/refetch/transient"
)

// An Execution represents the state of fetching a single logical
// request, including any resubmissions made to retry it.
//
// An Execution is created when a client starts fetching a Request and
// is updated as the fetch progresses: when a response or transport
// failure becomes available, and when the request is resubmitted. It
// is ultimately returned as the result of the fetch.
//
// Timeout policies and event handlers should treat the exported field
// values as read-only.
type Execution struct {
	// Request is the HTTP request being sent in the current attempt,
	// or already sent in the most recent attempt.
	Request *http.Request

	// Original is the request whose fetch was started. It is never
	// modified by the client.
	Original *Request

	// Current is the request of the current attempt: Original on the
	// first attempt, and the most recent retry clone afterward, so
	// Current.Retry.Times equals Attempt.
	Current *Request

	// Start is the start time of the fetch. It is assigned a non-zero
	// value when the fetch starts, and remains constant thereafter.
	Start time.Time

	// End is the end time of the fetch. It contains the zero value
	// until the fetch ends.
	End time.Time

	// Attempt is the zero-based number of the current attempt. It is
	// zero on the initial attempt, one on the first retry, and so on.
	Attempt int

	// AttemptTimeouts is the count of attempts which timed out.
	AttemptTimeouts int

	// Response is the HTTP response received in the most recent
	// attempt. It is nil if the most recent attempt ended in a
	// transport failure, or if an attempt is underway.
	Response *http.Response

	// Body is the complete response body read after the most recent
	// attempt.
	Body []byte

	// Err is the error from the most recent attempt. Whenever it is
	// non-nil, it has the type *url.Error.
	Err error

	// Reason is the human-readable reason of the most recent retry
	// decision, for example "503 Service Unavailable". It is empty
	// until a retryable outcome is seen.
	Reason string

	// Exhausted is set when the most recent outcome was retryable but
	// the retry ceiling had been reached, so the request was discarded.
	// The caller must treat the request as permanently failed.
	Exhausted bool
}

// StatusCode returns the status code of the HTTP response from the
// most recent attempt. If there is no HTTP response, 0 is returned.
func (e *Execution) StatusCode() int {
	if e.Response == nil {
		return 0
	}
	return e.Response.StatusCode
}

// Header returns the HTTP response headers from the most recent
// attempt. If there is no HTTP response, the nil header is returned.
//
// A nil return value is always safe for read-only operations, since
// http.Header is a map type.
func (e *Execution) Header() http.Header {
	if e.Response == nil {
		var nilHeader http.Header
		return nilHeader
	}
	return e.Response.Header
}

// Duration returns the duration of the fetch.
//
// If the fetch has not yet started, the duration is zero. If it has
// ended, the duration is End minus Start. Otherwise it is the time
// elapsed since Start, measured by now.
func (e *Execution) Duration(now time.Time) time.Duration {
	if !e.Started() {
		return time.Duration(0)
	} else if !e.Ended() {
		return now.Sub(e.Start)
	}
	return e.End.Sub(e.Start)
}

// Started indicates whether the fetch has started.
func (e *Execution) Started() bool {
	return e.Start != (time.Time{})
}

// Ended indicates whether the fetch has ended.
func (e *Execution) Ended() bool {
	return e.End != (time.Time{})
}

// Timeout indicates whether Err currently contains a non-nil value
// which indicates a timeout.
func (e *Execution) Timeout() bool {
	return transient.Categorize(e.Err) == transient.Timeout
}
