// Copyright 2021 The refetch Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package dupefilter

import (
	"fmt"
	"net/http"
	"sync"
	"syscall"
	"testing"

	"github.com/gogama/refetch/request"
	"github.com/gogama/refetch/retry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilter_Admit(t *testing.T) {
	f := New()
	a := newRequest(t, "http://example.com/a")
	assert.False(t, f.Seen(a))
	assert.True(t, f.Admit(a))
	assert.True(t, f.Seen(a))
	assert.False(t, f.Admit(a))
	assert.False(t, f.Admit(newRequest(t, "http://example.com/a")))
	assert.True(t, f.Admit(newRequest(t, "http://example.com/b")))
	assert.Equal(t, 2, f.Len())

	bypass := newRequest(t, "http://example.com/a")
	bypass.Retry.DontFilter = true
	assert.True(t, f.Admit(bypass))
	assert.True(t, f.Admit(bypass))
	assert.Equal(t, 2, f.Len())
}

func TestFilter_ZeroValue(t *testing.T) {
	var f Filter
	r := newRequest(t, "http://example.com/")
	assert.False(t, f.Seen(r))
	assert.Equal(t, 0, f.Len())
	assert.True(t, f.Admit(r))
	assert.False(t, f.Admit(r))
}

func TestFilter_Reset(t *testing.T) {
	f := New()
	r := newRequest(t, "http://example.com/")
	require.True(t, f.Admit(r))
	f.Reset()
	assert.Equal(t, 0, f.Len())
	assert.True(t, f.Admit(r))
}

func TestFilter_AdmitsRetryClones(t *testing.T) {
	f := New()
	ev := retry.NewEvaluator(retry.DefaultPolicy, nil)

	t.Run("transport failure", func(t *testing.T) {
		r := newRequest(t, "http://example.com/reset")
		require.True(t, f.Admit(r))
		res := ev.Evaluate(r, retry.FailureOutcome(syscall.ECONNRESET))
		require.Equal(t, retry.Reschedule, res.Action)
		assert.Equal(t, 1, res.Request.Retry.Times)
		assert.True(t, f.Seen(res.Request))
		assert.True(t, f.Admit(res.Request))
		assert.False(t, f.Admit(newRequest(t, "http://example.com/reset")))
	})
	t.Run("status", func(t *testing.T) {
		r := newRequest(t, "http://example.com/503")
		require.True(t, f.Admit(r))
		res := ev.Evaluate(r, retry.ResponseOutcome(&http.Response{StatusCode: 503}))
		require.Equal(t, retry.Reschedule, res.Action)
		assert.True(t, f.Admit(res.Request))
	})
}

func TestFilter_Concurrent(t *testing.T) {
	f := New()
	const n = 50
	admitted := make([]bool, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			r, err := request.NewRequest("GET", fmt.Sprintf("http://example.com/%d", i%10), nil)
			if err != nil {
				panic(err)
			}
			admitted[i] = f.Admit(r)
		}(i)
	}
	wg.Wait()
	count := 0
	for _, ok := range admitted {
		if ok {
			count++
		}
	}
	assert.Equal(t, 10, count)
	assert.Equal(t, 10, f.Len())
}

func newRequest(t *testing.T, url string) *request.Request {
	r, err := request.NewRequest("GET", url, nil)
	require.NoError(t, err)
	return r
}
