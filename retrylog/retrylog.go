// Copyright 2021 The refetch Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package retrylog reports retry decisions to a zap logger.
//
// Both kinds of decision are logged at debug level, since a retry, and
// even a discard, is part of the normal life of a fetch pipeline:
//
//	Retrying request   {"request": "<GET http://example.com/>", "attempts": 1, "reason": "503 Service Unavailable", "cause": "503"}
//	Discarding request {"request": "<GET http://example.com/>", "attempts": 3, "reason": "503 Service Unavailable", "cause": "503"}
package retrylog

import (
	"go.uber.org/zap"

	"github.com/gogama/refetch/request"
	"github.com/gogama/refetch/retry"
)

// New returns a retry.Sink which logs to logger. If logger is nil, the
// sink discards everything.
func New(logger *zap.Logger) retry.Sink {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &sink{logger: logger.Named("retry")}
}

type sink struct {
	logger *zap.Logger
}

func (s *sink) RetryScheduled(r *request.Request, attempts int, reason string, o retry.Outcome) {
	s.logger.Debug("Retrying request", fields(r, attempts, reason, o)...)
}

func (s *sink) RetryExhausted(r *request.Request, attempts int, reason string, o retry.Outcome) {
	s.logger.Debug("Discarding request", fields(r, attempts, reason, o)...)
}

func fields(r *request.Request, attempts int, reason string, o retry.Outcome) []zap.Field {
	return []zap.Field{
		zap.Stringer("request", r),
		zap.Int("attempts", attempts),
		zap.String("reason", reason),
		zap.String("cause", o.Cause()),
	}
}
