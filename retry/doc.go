// Copyright 2021 The refetch Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package retry decides whether a failed request should be resubmitted.
//
// A Policy holds the static retry configuration: the ceiling on the
// number of retries, the set of retryable HTTP status codes, and the
// set of retryable transport failure kinds. An Evaluator applies the
// policy to the outcome of one attempt, a response or a transport
// failure, and returns one of three results:
//
//   - PassThrough, if the outcome is not retryable. The response or
//     failure is delivered downstream unchanged.
//   - Reschedule, if the outcome is retryable and the ceiling has not
//     been reached. The result carries a clone of the request with its
//     attempt count incremented and duplicate filtering bypassed.
//   - Discard, if the outcome is retryable but the ceiling has been
//     reached. The request is permanently failed.
//
// Build a policy and an evaluator:
//
//	policy, err := retry.NewPolicy(3, []int{500, 502, 503, 504, 429}, transient.Kinds())
//	...
//	evaluator := retry.NewEvaluator(policy, retrylog.New(logger))
//	result := evaluator.Evaluate(r, retry.ResponseOutcome(resp))
//
// The only mutable state involved is the attempt count carried on each
// request, so an Evaluator is safe for concurrent use by multiple
// goroutines without locking.
package retry
