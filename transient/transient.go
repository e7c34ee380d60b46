// Copyright 2021 The refetch Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package transient

import (
	"errors"
	"fmt"
	"io"
	"net"
	"syscall"
)

// A Kind is the transience category of a transport failure, as
// reported by Categorize.
//
// The kind Not means the failure is not transient, or in other words
// that resubmitting the request is very unlikely to succeed. Every other
// kind names a failure which a retry has some prospect of getting past.
type Kind int

const (
	// Not indicates any non-transient error, including a nil error.
	Not Kind = iota
	// Timeout indicates a client-side timeout. The error or one of its
	// wrapped causes has a Timeout() method that reports true.
	Timeout
	// DNSFailure indicates the host name could not be resolved. The
	// error or one of its wrapped causes is a *net.DNSError.
	DNSFailure
	// ConnRefused indicates the remote host refused the connection
	// (ECONNREFUSED). Refusal can happen while the remote service is
	// starting or restarting and is not yet listening on its port.
	ConnRefused
	// ConnReset indicates the remote host returned an RST packet on a
	// previously active connection (ECONNRESET).
	ConnReset
	// ConnLost indicates an established connection was closed before
	// the response started to arrive: an unexpected EOF at the start
	// of the response, a broken pipe, or an aborted or closed socket.
	ConnLost
	// ConnectError indicates any other failure to establish the
	// connection, for example an unreachable network or host.
	ConnectError
	// PartialDownload indicates the connection broke while the response
	// body was being read, so only part of it was received.
	PartialDownload
	// kindSentinel provides the total number of kinds.
	kindSentinel
)

var kindNames = [...]string{
	"not",
	"timeout",
	"dns-failure",
	"connection-refused",
	"connection-reset",
	"connection-lost",
	"connect-error",
	"partial-download",
}

// Kinds returns every transient kind, that is every kind except Not,
// in declaration order.
func Kinds() []Kind {
	k := make([]Kind, 0, int(kindSentinel)-1)
	for i := Timeout; i < kindSentinel; i++ {
		k = append(k, i)
	}
	return k
}

// Valid reports whether k is one of the declared kinds, including Not.
func (k Kind) Valid() bool {
	return k >= Not && k < kindSentinel
}

// String returns the configuration tag of the kind, for example
// "connection-reset".
func (k Kind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// ParseKind returns the kind whose configuration tag is s.
func ParseKind(s string) (Kind, error) {
	for i, name := range kindNames {
		if name == s {
			return Kind(i), nil
		}
	}
	return Not, fmt.Errorf("refetch/transient: unknown kind %q", s)
}

// MarshalText encodes the kind as its configuration tag.
func (k Kind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("refetch/transient: invalid kind %d", int(k))
	}
	return []byte(k.String()), nil
}

// UnmarshalText decodes a configuration tag into the kind.
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Categorize returns the kind of the given transport error. A nil
// error, and any error not recognized as transient, produce Not.
//
// Categorize looks at the wrapped causes contained within err, not just
// err itself. Checks are made in this order, and the first match wins:
// DNS failure, timeout, connection refused, connection reset, partial
// download, connection lost, and finally any other failure to dial.
//
// Categorize never consults a Temporary() method, as the semantics of
// Temporary() aren't entirely clear.
func Categorize(err error) Kind {
	if err == nil {
		return Not
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return DNSFailure
	}

	var hasTimeout hasTimeout
	if errors.As(err, &hasTimeout) && hasTimeout.Timeout() {
		return Timeout
	}

	var errno syscall.Errno
	if errors.As(err, &errno) {
		switch errno {
		case syscall.ECONNREFUSED:
			return ConnRefused
		case syscall.ECONNRESET:
			return ConnReset
		case syscall.EPIPE, syscall.ECONNABORTED:
			return ConnLost
		}
	}

	if errors.Is(err, io.ErrUnexpectedEOF) {
		return PartialDownload
	}

	if errors.Is(err, io.EOF) || errors.Is(err, net.ErrClosed) {
		return ConnLost
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) && opErr.Op == "dial" {
		return ConnectError
	}

	return Not
}

type hasTimeout interface {
	Timeout() bool
}
