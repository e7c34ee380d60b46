// Copyright 2021 The refetch Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package refetch

import (
	"github.com/gogama/refetch/request"
)

// Doer is the interface that wraps the basic Do method.
//
// Do fetches a request, resubmitting it as often as the retry policy
// allows, and returns the final execution state (and error, if any).
// Client implements Doer.
type Doer interface {
	Do(r *request.Request) (*request.Execution, error)
}

// IdleCloser is the interface that wraps the basic CloseIdleConnections
// method. It is implemented by http.Client and by Client.
type IdleCloser interface {
	CloseIdleConnections()
}

// Get uses d to fetch the specified URL with a GET request.
//
// To make a request with custom headers, use request.NewRequest and
// d.Do.
func Get(d Doer, url string) (*request.Execution, error) {
	r, err := request.NewRequest("GET", url, nil)
	if err != nil {
		return nil, err
	}
	return d.Do(r)
}

// Post uses d to fetch the specified URL with a POST request.
//
// The body parameter may be nil for an empty body, or any of the types
// supported by request.BodyBytes: string; []byte; io.Reader; and
// io.ReadCloser.
func Post(d Doer, url, contentType string, body interface{}) (*request.Execution, error) {
	r, err := request.NewRequest("POST", url, body)
	if err != nil {
		return nil, err
	}
	r.Header.Set("Content-Type", contentType)
	return d.Do(r)
}
