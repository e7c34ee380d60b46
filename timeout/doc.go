// Copyright 2021 The refetch Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package timeout defines policies for the timeout set on each
// individual request attempt made by the client. An attempt which times
// out ends in a transport failure of kind transient.Timeout, which the
// retry policy may then decide to retry.
package timeout
