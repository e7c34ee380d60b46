// Copyright 2021 The refetch Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package transient

// A Failure is a transport failure: the outcome of a request attempt
// that ended before a complete response was received. It pairs the
// underlying error with its Kind.
type Failure struct {
	// Kind is the transience category of Err.
	Kind Kind
	// Err is the underlying transport error. It is never nil in a
	// Failure constructed by NewFailure.
	Err error
}

// NewFailure wraps err in a Failure, categorizing it with Categorize.
// If err is already a *Failure, it is returned unchanged.
func NewFailure(err error) *Failure {
	if err == nil {
		panic("refetch/transient: nil error")
	}
	if f, ok := err.(*Failure); ok {
		return f
	}
	return &Failure{Kind: Categorize(err), Err: err}
}

// Error returns the message of the underlying error.
func (f *Failure) Error() string {
	return f.Err.Error()
}

// Unwrap returns the underlying error.
func (f *Failure) Unwrap() error {
	return f.Err
}
