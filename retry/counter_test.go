// Copyright 2021 The refetch Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package retry

import (
	"testing"

	"github.com/gogama/refetch/request"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttempts(t *testing.T) {
	assert.Equal(t, 0, Attempts(&request.Request{}))
	assert.Equal(t, 3, Attempts(&request.Request{Retry: request.State{Times: 3}}))
	assert.Equal(t, 0, Attempts(&request.Request{Retry: request.State{Times: -2}}))
}

func TestWithIncrementedAttempts(t *testing.T) {
	r := newRequest(t)
	for c := 0; c < 5; c++ {
		r.Retry.Times = c
		r2 := WithIncrementedAttempts(r)
		require.NotSame(t, r, r2)
		assert.Equal(t, c+1, Attempts(r2))
		assert.Equal(t, c, Attempts(r))
		assert.False(t, r2.Retry.DontFilter)
	}
	t.Run("negative count", func(t *testing.T) {
		r.Retry.Times = -7
		assert.Equal(t, 1, Attempts(WithIncrementedAttempts(r)))
	})
}

func newRequest(t *testing.T) *request.Request {
	r, err := request.NewRequest("GET", "http://example.com/page", nil)
	require.NoError(t, err)
	return r
}
