// Copyright 2021 The refetch Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package refetch

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/gogama/refetch/dupefilter"
	"github.com/gogama/refetch/retry"
	"github.com/gogama/refetch/retrymetrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientWithServer(t *testing.T) {
	t.Run("status then success", testServerStatusThenSuccess)
	t.Run("status exhausted", testServerStatusExhausted)
	t.Run("partial download", testServerPartialDownload)
	t.Run("not found", testServerNotFound)
}

// statusServer answers each request with the next status in codes and
// then with 200 once codes is used up.
func statusServer(t *testing.T, codes ...int) (*httptest.Server, *int32) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		i := int(atomic.AddInt32(&hits, 1)) - 1
		code := http.StatusOK
		if i < len(codes) {
			code = codes[i]
		}
		w.WriteHeader(code)
		_, _ = fmt.Fprintf(w, "attempt %d", i)
	}))
	t.Cleanup(server.Close)
	return server, &hits
}

func newServerClient(t *testing.T, server *httptest.Server) (*Client, *retrymetrics.Sink) {
	metrics, err := retrymetrics.New(prometheus.NewRegistry())
	require.NoError(t, err)
	cl := &Client{
		HTTPDoer:  server.Client(),
		Evaluator: retry.NewEvaluator(retry.DefaultPolicy, metrics),
		Filter:    dupefilter.New(),
	}
	t.Cleanup(cl.CloseIdleConnections)
	return cl, metrics
}

func testServerStatusThenSuccess(t *testing.T) {
	server, hits := statusServer(t, 503, 500)
	cl, metrics := newServerClient(t, server)

	e, err := cl.Get(server.URL + "/item")

	require.NoError(t, err)
	assert.Equal(t, int32(3), atomic.LoadInt32(hits))
	assert.Equal(t, 200, e.StatusCode())
	assert.Equal(t, "attempt 2", string(e.Body))
	assert.Equal(t, 2, e.Current.Retry.Times)
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.Scheduled("503")))
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.Scheduled("500")))
}

func testServerStatusExhausted(t *testing.T) {
	server, hits := statusServer(t, 504, 504, 504, 504)
	cl, metrics := newServerClient(t, server)

	e, err := cl.Get(server.URL)

	require.NoError(t, err)
	assert.Equal(t, int32(3), atomic.LoadInt32(hits))
	assert.True(t, e.Exhausted)
	assert.Equal(t, 504, e.StatusCode())
	assert.Equal(t, "attempt 2", string(e.Body))
	assert.Equal(t, float64(2), testutil.ToFloat64(metrics.Scheduled("504")))
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.Exhausted("504")))

	_, err = cl.Get(server.URL)
	assert.ErrorIs(t, err, ErrFiltered)
	assert.Equal(t, int32(3), atomic.LoadInt32(hits))
}

func testServerPartialDownload(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if atomic.AddInt32(&hits, 1) > 1 {
			_, _ = w.Write([]byte("0123456789"))
			return
		}
		w.Header().Set("Content-Length", "10")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("012"))
		conn, _, err := w.(http.Hijacker).Hijack()
		if err == nil {
			_ = conn.Close()
		}
	}))
	t.Cleanup(server.Close)
	cl, metrics := newServerClient(t, server)

	e, err := cl.Get(server.URL)

	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&hits))
	assert.Equal(t, "0123456789", string(e.Body))
	assert.Equal(t, 1, e.Attempt)
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.Scheduled("partial-download")))
}

func testServerNotFound(t *testing.T) {
	server, hits := statusServer(t, 404)
	cl, metrics := newServerClient(t, server)

	e, err := cl.Get(server.URL)

	require.NoError(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(hits))
	assert.Equal(t, 404, e.StatusCode())
	assert.False(t, e.Exhausted)
	assert.Equal(t, float64(0), testutil.ToFloat64(metrics.Scheduled("404")))
}
