// Copyright 2021 The refetch Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package timeout

import (
	"time"

	"github.com/gogama/refetch/request"
)

// A Policy decides the timeout of the next request attempt of a fetch.
//
// Implementations of Policy must be safe for concurrent use by multiple
// goroutines.
type Policy interface {
	// Timeout returns the timeout to set on the next attempt, given
	// the current state of the fetch.
	Timeout(e *request.Execution) time.Duration
}

// DefaultPolicy sets a five second timeout on every attempt.
var DefaultPolicy Policy = Fixed(5 * time.Second)

// Infinite never times attempts out. The request context may still
// end an attempt.
var Infinite Policy = Fixed(1<<63 - 1)

// Fixed returns a policy which sets the same timeout on every attempt.
func Fixed(d time.Duration) Policy {
	return steps{d}
}

// Adaptive returns a policy which sets the timeout usual on an attempt
// unless the previous attempt timed out. After the n-th attempt timeout,
// the timeout is after[n-1], or the last element of after if n exceeds
// its length. A fetch whose previous attempt did not time out goes back
// to usual.
func Adaptive(usual time.Duration, after ...time.Duration) Policy {
	s := make(steps, 1, 1+len(after))
	s[0] = usual
	return append(s, after...)
}

type steps []time.Duration

func (s steps) Timeout(e *request.Execution) time.Duration {
	if !e.Timeout() {
		return s[0]
	}
	i := e.AttemptTimeouts
	if i >= len(s) {
		i = len(s) - 1
	}
	return s[i]
}
