// Copyright 2021 The refetch Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package dupefilter suppresses duplicate request submissions.
//
// A Filter remembers the fingerprint of every request it has seen and
// refuses to admit a second request for the same target, unless the
// request is marked to bypass filtering. Retry clones produced by
// package retry are always so marked, because their target is by
// definition one which has already been seen.
package dupefilter

import (
	"sync"

	"github.com/gogama/refetch/request"
)

// A Filter admits each request target once. Its zero value is an empty
// filter ready to use. A Filter is safe for concurrent use by multiple
// goroutines.
type Filter struct {
	lock sync.Mutex
	seen map[uint64]struct{}
}

// New returns an empty Filter.
func New() *Filter {
	return &Filter{}
}

// Admit records the target of r as seen and reports whether r should
// be submitted. A request is admitted if its target has not been seen
// before, or unconditionally if r.Retry.DontFilter is set.
func (f *Filter) Admit(r *request.Request) bool {
	fp := r.Fingerprint()
	f.lock.Lock()
	defer f.lock.Unlock()
	if f.seen == nil {
		f.seen = make(map[uint64]struct{})
	}
	_, dup := f.seen[fp]
	f.seen[fp] = struct{}{}
	return !dup || r.Retry.DontFilter
}

// Seen reports whether the target of r has been seen, without
// recording it.
func (f *Filter) Seen(r *request.Request) bool {
	fp := r.Fingerprint()
	f.lock.Lock()
	defer f.lock.Unlock()
	_, ok := f.seen[fp]
	return ok
}

// Len returns the number of distinct targets seen.
func (f *Filter) Len() int {
	f.lock.Lock()
	defer f.lock.Unlock()
	return len(f.seen)
}

// Reset forgets every target seen.
func (f *Filter) Reset() {
	f.lock.Lock()
	defer f.lock.Unlock()
	f.seen = nil
}
