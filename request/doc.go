// Copyright 2021 The refetch Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package request contains the core types Request (a logical HTTP request
that can be re-issued unchanged) and Execution (the state of fetching a
Request, including any retries).

A Request looks like a stripped-down http.Request with server-side
fields removed and a pre-buffered []byte body, so that it can be sent
any number of times. Each Request carries its own retry State: how many
times it has already failed and been resubmitted, and whether it must
bypass duplicate-request filtering.

	r, err := request.NewRequest("GET", "https://example.com", nil)
	...
	e, err := client.Do(r)
	...

A retry never modifies the Request that failed. Instead the retry
evaluator produces a Clone, which shares no mutable state with the
original, and records the incremented attempt count on the clone:

	r2 := r.Clone()
	r2.Retry.Times++

A context set on a Request is separate from the deadlines set on
individual attempts by the client's timeout.Policy. An individual
attempt may fail either due to an attempt timeout, which is potentially
retryable, or because the request context is done, which is not.
*/
package request
