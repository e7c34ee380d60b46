// Copyright 2021 The refetch Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package transient classifies transport-level failures, those which
// occur before a complete HTTP response is received, into a closed set
// of kinds. Retry policies decide which kinds are worth resubmitting a
// request for; any error not recognized as one of the kinds is Not
// transient and is never retried.
//
// Package transient depends only on the standard library, so it can
// be imported on its own for other purposes such as bucketing error
// metrics.
package transient
