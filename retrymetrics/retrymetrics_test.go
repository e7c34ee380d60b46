// Copyright 2021 The refetch Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package retrymetrics

import (
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/gogama/refetch/request"
	"github.com/gogama/refetch/retry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSink(t *testing.T) {
	reg := prometheus.NewPedanticRegistry()
	s, err := New(reg)
	require.NoError(t, err)
	ev := retry.NewEvaluator(retry.DefaultPolicy, s)

	r, err := request.NewRequest("GET", "http://example.com/", nil)
	require.NoError(t, err)
	for i := 0; i <= retry.DefaultTimes; i++ {
		res := ev.Evaluate(r, retry.ResponseOutcome(&http.Response{StatusCode: 503}))
		if res.Request != nil {
			r = res.Request
		}
	}
	ev.Evaluate(r, retry.FailureOutcome(io.ErrUnexpectedEOF))
	ev.Evaluate(r, retry.ResponseOutcome(&http.Response{StatusCode: 200}))

	assert.Equal(t, float64(retry.DefaultTimes), testutil.ToFloat64(s.Scheduled("503")))
	assert.Equal(t, float64(1), testutil.ToFloat64(s.Exhausted("503")))
	assert.Equal(t, float64(1), testutil.ToFloat64(s.Exhausted("partial-download")))
	assert.Equal(t, float64(0), testutil.ToFloat64(s.Scheduled("200")))

	expected := `
# HELP refetch_retries_exhausted_total Total number of requests discarded after exhausting retries
# TYPE refetch_retries_exhausted_total counter
refetch_retries_exhausted_total{cause="503"} 1
refetch_retries_exhausted_total{cause="partial-download"} 1
`
	assert.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "refetch_retries_exhausted_total"))
}

func TestNew(t *testing.T) {
	t.Run("nil registerer", func(t *testing.T) {
		s, err := New(nil)
		require.NoError(t, err)
		s.RetryScheduled(nil, 1, "", retry.Outcome{})
		assert.Equal(t, float64(1), testutil.ToFloat64(s.Scheduled("")))
	})
	t.Run("duplicate registration", func(t *testing.T) {
		reg := prometheus.NewRegistry()
		_, err := New(reg)
		require.NoError(t, err)
		_, err = New(reg)
		assert.Error(t, err)
	})
}
