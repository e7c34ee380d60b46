// Copyright 2021 The refetch Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package retry

import "github.com/gogama/refetch/request"

// Attempts returns the number of times r has previously failed and been
// resubmitted. It is zero for a request on its first submission, and
// never negative.
func Attempts(r *request.Request) int {
	if r.Retry.Times < 0 {
		return 0
	}
	return r.Retry.Times
}

// WithIncrementedAttempts returns a clone of r whose attempt count is
// one more than that of r. The original request is not modified.
func WithIncrementedAttempts(r *request.Request) *request.Request {
	r2 := r.Clone()
	r2.Retry.Times = Attempts(r) + 1
	return r2
}
