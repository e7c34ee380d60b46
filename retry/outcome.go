// Copyright 2021 The refetch Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package retry

import (
	"net/http"
	"strconv"

	"github.com/gogama/refetch/transient"
)

// An Outcome is the result of one request attempt: either an HTTP
// response, or a transport failure which occurred before any response
// was received. Exactly one of Response and Failure is non-nil.
type Outcome struct {
	// Response is the HTTP response received, if any. The Evaluator
	// only reads its status code.
	Response *http.Response
	// Failure is the transport failure, if any.
	Failure *transient.Failure
}

// ResponseOutcome returns the outcome of an attempt which received the
// response resp.
func ResponseOutcome(resp *http.Response) Outcome {
	if resp == nil {
		panic("refetch/retry: nil response")
	}
	return Outcome{Response: resp}
}

// FailureOutcome returns the outcome of an attempt which failed with the
// transport error err. The error is categorized using
// transient.NewFailure.
func FailureOutcome(err error) Outcome {
	return Outcome{Failure: transient.NewFailure(err)}
}

// StatusCode returns the status code of the response, or 0 if the
// outcome is a transport failure.
func (o Outcome) StatusCode() int {
	if o.Response == nil {
		return 0
	}
	return o.Response.StatusCode
}

// Reason returns a human-readable description of the outcome. For a
// response it is the status code and its canonical text, for example
// "503 Service Unavailable". For a transport failure it is the
// failure's error message.
//
// The reason is only for observability and never affects decisions.
func (o Outcome) Reason() string {
	switch {
	case o.Failure != nil:
		return o.Failure.Error()
	case o.Response != nil:
		return StatusMessage(o.Response.StatusCode)
	default:
		return ""
	}
}

// Cause returns a low-cardinality label for the outcome, suitable for
// bucketing metrics: the decimal status code for a response, or the
// configuration tag of the failure kind for a transport failure.
func (o Outcome) Cause() string {
	switch {
	case o.Failure != nil:
		return o.Failure.Kind.String()
	case o.Response != nil:
		return strconv.Itoa(o.Response.StatusCode)
	default:
		return ""
	}
}

// StatusMessage returns the status code followed by its canonical
// text, or just the status code if the text is unknown.
func StatusMessage(code int) string {
	s := strconv.Itoa(code)
	if text := http.StatusText(code); text != "" {
		s += " " + text
	}
	return s
}
