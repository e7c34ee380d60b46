// Copyright 2021 The refetch Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package retry

import (
	"errors"
	"fmt"
	"sort"

	"github.com/gogama/refetch/transient"
)

// DefaultTimes is the number of times DefaultPolicy will retry.
const DefaultTimes = 2

// DefaultStatusCodes are the HTTP status codes DefaultPolicy retries:
// 500 (Internal Server Error); 503 (Service Unavailable); 504 (Gateway
// Timeout); 400 (Bad Request); and 408 (Request Timeout).
//
// Strictly speaking 400 indicates a client error, and you may want to
// leave it out if the servers you talk to stick to the HTTP protocol.
// It is included because it is commonly used to indicate server
// overload, which is worth retrying.
var DefaultStatusCodes = []int{500, 503, 504, 400, 408}

// DefaultKinds are the transport failure kinds DefaultPolicy retries,
// namely every kind except transient.Not.
var DefaultKinds = transient.Kinds()

// DefaultPolicy is a general-purpose retry policy. It allows up to
// DefaultTimes retries (3 total attempts) of any outcome with a status
// code in DefaultStatusCodes or a failure kind in DefaultKinds.
var DefaultPolicy = mustPolicy(DefaultTimes, DefaultStatusCodes, DefaultKinds)

// Never is a policy that never retries. Retryable outcomes are still
// recognized, but always exhaust the zero retry ceiling.
var Never = mustPolicy(0, DefaultStatusCodes, DefaultKinds)

// A Policy is the static configuration consulted by an Evaluator. It
// is immutable after construction and safe for concurrent use by
// multiple goroutines.
//
// The zero value is not useful; construct policies with NewPolicy.
type Policy struct {
	maxRetries int
	codes      map[int]struct{}
	kinds      [int(transient.PartialDownload) + 1]bool
}

// NewPolicy constructs a Policy allowing up to maxRetries resubmissions
// of a request whose attempt ends with one of the given status codes
// or transport failure kinds. Any other outcome is not retryable.
//
// NewPolicy returns an error if maxRetries is negative, if a status code
// is outside the range 100-599, or if a kind is transient.Not or not a
// declared kind. Duplicates are ignored.
func NewPolicy(maxRetries int, statusCodes []int, kinds []transient.Kind) (*Policy, error) {
	if maxRetries < 0 {
		return nil, fmt.Errorf("refetch/retry: negative max retries %d", maxRetries)
	}
	p := &Policy{
		maxRetries: maxRetries,
		codes:      make(map[int]struct{}, len(statusCodes)),
	}
	for _, code := range statusCodes {
		if code < 100 || code > 599 {
			return nil, fmt.Errorf("refetch/retry: invalid status code %d", code)
		}
		p.codes[code] = struct{}{}
	}
	for _, k := range kinds {
		if k == transient.Not {
			return nil, errors.New("refetch/retry: kind not is never retryable")
		}
		if !k.Valid() {
			return nil, fmt.Errorf("refetch/retry: invalid kind %d", int(k))
		}
		p.kinds[k] = true
	}
	return p, nil
}

func mustPolicy(maxRetries int, statusCodes []int, kinds []transient.Kind) *Policy {
	p, err := NewPolicy(maxRetries, statusCodes, kinds)
	if err != nil {
		panic(err)
	}
	return p
}

// MaxRetries returns the ceiling on resubmissions of one logical
// request. The maximum number of attempts is one more than this.
func (p *Policy) MaxRetries() int {
	return p.maxRetries
}

// StatusCodes returns the retryable status codes in ascending order.
func (p *Policy) StatusCodes() []int {
	codes := make([]int, 0, len(p.codes))
	for code := range p.codes {
		codes = append(codes, code)
	}
	sort.Ints(codes)
	return codes
}

// Kinds returns the retryable transport failure kinds in declaration
// order.
func (p *Policy) Kinds() []transient.Kind {
	var kinds []transient.Kind
	for k, ok := range p.kinds {
		if ok {
			kinds = append(kinds, transient.Kind(k))
		}
	}
	return kinds
}

// RetryableStatus reports whether a response with the given HTTP status
// code is retryable under the policy.
func (p *Policy) RetryableStatus(code int) bool {
	_, ok := p.codes[code]
	return ok
}

// RetryableKind reports whether a transport failure of the given kind
// is retryable under the policy. Unknown kinds are never retryable.
func (p *Policy) RetryableKind(k transient.Kind) bool {
	switch k {
	case transient.Timeout, transient.DNSFailure, transient.ConnRefused,
		transient.ConnReset, transient.ConnLost, transient.ConnectError,
		transient.PartialDownload:
		return p.kinds[k]
	default:
		return false
	}
}
