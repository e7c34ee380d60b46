// Copyright 2021 The refetch Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package refetch

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/gogama/refetch/dupefilter"
	"github.com/gogama/refetch/request"
	"github.com/gogama/refetch/retry"
	"github.com/gogama/refetch/timeout"
	"github.com/jonboulle/clockwork"
)

// An HTTPDoer implements a Do method in the same manner as the GoLang
// standard library http.Client from the net/http package.
type HTTPDoer interface {
	// Do sends an HTTP request and returns an HTTP response following
	// policy (such as redirects, cookies, auth) configured on the
	// HTTPDoer.
	Do(r *http.Request) (*http.Response, error)
}

// ErrFiltered is the cause of the error returned by Client.Do when the
// client's duplicate filter rejects the request before any attempt is
// made. Test for it with errors.Is.
var ErrFiltered = errors.New("refetch: duplicate request filtered")

var emptyHandlers = HandlerGroup{}

// A Client fetches requests, resubmitting them when an attempt ends in
// a retryable HTTP status or transient transport failure. Its zero
// value is a valid configuration.
//
// The zero value client uses http.DefaultClient as the HTTPDoer,
// retry.DefaultEvaluator to make retry decisions, timeout.DefaultPolicy
// as the timeout policy, no duplicate filter, no event handlers, and
// the real clock.
//
// Resubmission is immediate. Each resubmitted request is a clone of the
// previous one whose retry state carries the incremented attempt count
// and bypasses the duplicate filter. When the retry ceiling is reached
// the final outcome is still returned: a response is returned with a
// nil error and Execution.Exhausted set, and a transport failure is
// returned as the error.
//
// Client is safe for concurrent use by multiple goroutines.
type Client struct {
	// HTTPDoer specifies the mechanics of sending HTTP requests and
	// receiving responses.
	//
	// If HTTPDoer is nil, http.DefaultClient is used.
	HTTPDoer HTTPDoer
	// Evaluator decides whether the outcome of each attempt passes
	// through, is resubmitted, or is discarded.
	//
	// If Evaluator is nil, retry.DefaultEvaluator is used.
	Evaluator *retry.Evaluator
	// Filter, if not nil, rejects requests already seen by the client.
	// Resubmitted requests are always admitted.
	Filter *dupefilter.Filter
	// TimeoutPolicy specifies how to set timeouts on individual request
	// attempts.
	//
	// If TimeoutPolicy is nil, timeout.DefaultPolicy is used.
	TimeoutPolicy timeout.Policy
	// Handlers allows custom handler chains to be invoked when
	// designated events occur during a fetch.
	//
	// If Handlers is nil, no custom handlers will be run.
	Handlers *HandlerGroup
	// Clock stamps the start and end times of each fetch.
	//
	// If Clock is nil, the real clock is used.
	Clock clockwork.Clock
}

// Do fetches a request and returns the results, following the retry
// and timeout policy set on Client, and low-level policy set on the
// underlying HTTPDoer.
//
// The result returned is the result of the final attempt. The
// Execution's Original field references r, which is never modified,
// and its Current field references the request whose outcome is
// returned.
//
// An error is returned if the final attempt ended in a transport
// failure, if the request context ended, or if the client's filter
// rejected r. A non-2XX status code does not result in an error, even
// when the status was retryable and the retry ceiling was reached.
// Any returned error has type *url.Error, and the Execution's Err
// field always references the same error.
//
// The returned Execution is never nil.
func (c *Client) Do(r *request.Request) (*request.Execution, error) {
	e := request.Execution{
		Original: r,
		Current:  r,
		Attempt:  retry.Attempts(r),
	}

	clock := c.clock()
	if c.Filter != nil && !c.Filter.Admit(r) {
		e.Err = urlErrorWrap(r, ErrFiltered)
		e.Start = clock.Now()
		e.End = e.Start
		return &e, e.Err
	}

	doer := c.doer()

	timeoutPolicy := c.TimeoutPolicy
	if timeoutPolicy == nil {
		timeoutPolicy = timeout.DefaultPolicy
	}

	evaluator := c.Evaluator
	if evaluator == nil {
		evaluator = retry.DefaultEvaluator
	}

	handlers := c.Handlers
	if handlers == nil {
		handlers = &emptyHandlers
	}
	handlers.run(BeforeExecutionStart, &e)
	e.Start = clock.Now()

	for {
		sendAndReceive(&e, doer, handlers, timeoutPolicy)
		if e.Timeout() {
			e.AttemptTimeouts++
			handlers.run(AfterAttemptTimeout, &e)
		}
		handlers.run(AfterAttempt, &e)
		if ctxErr := e.Current.Context().Err(); ctxErr != nil {
			if !errors.Is(e.Err, ctxErr) {
				e.Err = urlErrorWrap(e.Current, ctxErr)
			}
			break
		}

		res := evaluator.Evaluate(e.Current, outcome(&e))
		if res.Action == retry.Reschedule {
			e.Reason = res.Reason
			handlers.run(RetryScheduled, &e)
			if c.Filter != nil {
				c.Filter.Admit(res.Request)
			}
			e.Current = res.Request
			e.Attempt++
			continue
		}
		if res.Action == retry.Discard {
			e.Reason = res.Reason
			e.Exhausted = true
			handlers.run(RetryExhausted, &e)
		}
		break
	}

	e.End = clock.Now()
	handlers.run(AfterExecutionEnd, &e)
	return &e, e.Err
}

// outcome converts the most recent attempt into a retry outcome. An
// error wins over a response, since it may have occurred while the
// body was being read.
func outcome(e *request.Execution) retry.Outcome {
	if e.Err != nil {
		return retry.FailureOutcome(e.Err)
	}
	return retry.ResponseOutcome(e.Response)
}

func sendAndReceive(e *request.Execution, doer HTTPDoer, handlers *HandlerGroup, timeoutPolicy timeout.Policy) {
	r := e.Current
	d := timeoutPolicy.Timeout(e)
	e.Response = nil
	e.Body = nil
	e.Err = nil
	ctx, cancel := context.WithTimeout(r.Context(), d)
	defer cancel()
	e.Request = r.ToHTTPRequest(ctx)
	handlers.run(BeforeAttempt, e)
	var err error
	e.Response, err = doer.Do(e.Request)
	if err != nil {
		e.Err = urlErrorWrap(r, err)
	} else {
		readBody(r, e, handlers)
	}
}

func readBody(r *request.Request, e *request.Execution, handlers *HandlerGroup) {
	defer func() {
		_ = e.Response.Body.Close()
	}()
	handlers.run(BeforeReadBody, e)
	var err error
	e.Body, err = io.ReadAll(e.Response.Body)
	if err != nil {
		e.Body = nil
		e.Err = urlErrorWrap(r, err)
	}
}

// Get issues a GET to the specified URL, using the same policies
// followed by Do.
func (c *Client) Get(url string) (*request.Execution, error) {
	return Get(c, url)
}

// Post issues a POST to the specified URL, using the same policies
// followed by Do.
func (c *Client) Post(url, contentType string, body interface{}) (*request.Execution, error) {
	return Post(c, url, contentType, body)
}

// CloseIdleConnections invokes the same method on the client's
// underlying HTTPDoer. If the HTTPDoer has no CloseIdleConnections
// method, this method does nothing.
func (c *Client) CloseIdleConnections() {
	if ic, ok := c.doer().(IdleCloser); ok {
		ic.CloseIdleConnections()
	}
}

func (c *Client) doer() HTTPDoer {
	if c.HTTPDoer == nil {
		return http.DefaultClient
	}
	return c.HTTPDoer
}

func (c *Client) clock() clockwork.Clock {
	if c.Clock == nil {
		return clockwork.NewRealClock()
	}
	return c.Clock
}

func urlErrorWrap(r *request.Request, err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return err
	}

	return &url.Error{
		Op:  urlErrorOp(r.Method),
		URL: r.URL.String(),
		Err: err,
	}
}

// urlErrorOp is lifted verbatim from net/http/client.go
func urlErrorOp(method string) string {
	if method == "" {
		return "Get"
	}
	return method[:1] + strings.ToLower(method[1:])
}
