// Copyright 2021 The refetch Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	urlpkg "net/url"
	"strings"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/net/http/httpguts"
)

var (
	template, _ = http.NewRequest("GET", "", nil)
)

const (
	nilCtxMsg = "refetch/request: nil context"
)

// A State is the retry state carried by a Request. It is the only
// mutable state involved in retry decisions, and it belongs to exactly
// one Request instance: cloning a Request copies its State.
//
// The zero value describes a request on its first submission.
type State struct {
	// Times is the number of times the logical request has previously
	// failed and been resubmitted. It is zero on first submission.
	Times int

	// DontFilter marks the request to bypass duplicate-request
	// filtering. A request resubmitted for retry always has DontFilter
	// set, since its target is identical to a request which has already
	// been seen.
	DontFilter bool
}

// A Request contains a logical HTTP request which can be issued, and
// re-issued unchanged, by a client.
//
// The field structure of Request mirrors the structure of the
// lower-level http.Request with the following differences. Server-only
// fields are removed. The body is a pre-buffered []byte so the request
// can be sent any number of times. The Retry field carries the retry
// state of the logical request across resubmissions.
//
// Like the http.Request structure, a Request has a context which
// controls its overall lifetime.
type Request struct {
	// Method specifies the HTTP method (GET, POST, PUT, etc.).
	// An empty string means GET.
	Method string

	// URL specifies the URL to access.
	URL *urlpkg.URL

	// Header contains the request header fields to be sent by the
	// client.
	Header http.Header

	// Body is the pre-buffered request body to be sent. A nil or
	// empty body indicates no request body should be sent.
	Body []byte

	// Close stipulates whether to close the connection after sending
	// the request and reading the response.
	Close bool

	// Host optionally overrides the Host header to send. If empty, the
	// value of URL.Host will be sent.
	Host string

	// Retry is the retry state of the logical request.
	Retry State

	// ctx controls the lifetime of the request. It should only be
	// modified by copying the whole Request using WithContext.
	ctx context.Context

	// data holds arbitrary values attached with SetValue. The chain is
	// never modified in place, only extended, so clones may share it.
	data context.Context
}

// NewRequest wraps NewRequestWithContext using the background context.
func NewRequest(method, url string, body interface{}) (*Request, error) {
	return NewRequestWithContext(context.Background(), method, url, body)
}

// NewRequestWithContext returns a new Request given a method, URL, and
// optional body.
//
// Parameter body may be nil (empty body), or it may be a string,
// []byte, io.Reader, or io.ReadCloser. If body is an io.Reader, it is
// read to the end and buffered into a []byte. If body is an
// io.ReadCloser, it is closed after buffering.
func NewRequestWithContext(ctx context.Context, method, url string, body interface{}) (*Request, error) {
	if ctx == nil {
		return nil, errors.New(nilCtxMsg)
	}
	if method == "" {
		method = "GET"
	}
	if !validMethod(method) {
		return nil, fmt.Errorf("refetch/request: invalid method %q", method)
	}
	u, err := urlpkg.Parse(url)
	if err != nil {
		return nil, err
	}
	u.Host = removeEmptyPort(u.Host)
	b, err := BodyBytes(body)
	if err != nil {
		return nil, err
	}
	return &Request{
		ctx:    ctx,
		Method: method,
		URL:    u,
		Header: make(http.Header),
		Body:   b,
		Host:   u.Host,
	}, nil
}

// Context returns the request's context. To change the context, use
// WithContext.
//
// The returned context is always non-nil; it defaults to the
// background context.
func (r *Request) Context() context.Context {
	if r.ctx != nil {
		return r.ctx
	}
	return context.Background()
}

// WithContext returns a shallow copy of r with its context changed to
// ctx, which must be non-nil. Use Clone for a copy which shares no
// mutable state with r.
func (r *Request) WithContext(ctx context.Context) *Request {
	if ctx == nil {
		panic(nilCtxMsg)
	}
	r2 := new(Request)
	*r2 = *r
	r2.ctx = ctx
	return r2
}

// Clone returns a deep copy of r. The URL, headers, body, and retry
// state of the clone may be modified without affecting r, and vice
// versa. The clone has the same context and values as r.
func (r *Request) Clone() *Request {
	r2 := new(Request)
	*r2 = *r
	if r.URL != nil {
		u := *r.URL
		if r.URL.User != nil {
			u.User = new(urlpkg.Userinfo)
			*u.User = *r.URL.User
		}
		r2.URL = &u
	}
	r2.Header = r.Header.Clone()
	if r.Body != nil {
		r2.Body = append([]byte(nil), r.Body...)
	}
	return r2
}

// SetValue attaches an arbitrary value to the request. Keys follow the
// same rules as the key parameter in context.WithValue: they may not
// be nil, must be comparable, and should not be of a built-in type.
//
// Values set on a request before it is cloned are visible in the
// clone. Values set afterward are visible only in the request they
// were set on.
func (r *Request) SetValue(key, value interface{}) {
	ctx := r.data
	if ctx == nil {
		ctx = context.Background()
	}
	r.data = context.WithValue(ctx, key, value)
}

// Value returns the value attached to the request for key, or nil if
// there is no value associated with key.
func (r *Request) Value(key interface{}) interface{} {
	if r.data == nil {
		return nil
	}
	return r.data.Value(key)
}

// Fingerprint returns a hash identifying the target of the request:
// its method, its URL with the query parameters sorted and the
// fragment removed, and its body. Two requests for the same target have
// the same fingerprint regardless of headers and retry state.
func (r *Request) Fingerprint() uint64 {
	d := xxhash.New()
	_, _ = d.WriteString(r.method())
	_, _ = d.WriteString("\x00")
	if r.URL != nil {
		u := *r.URL
		u.Fragment = ""
		u.RawFragment = ""
		u.RawQuery = u.Query().Encode()
		_, _ = d.WriteString(u.String())
	}
	_, _ = d.WriteString("\x00")
	_, _ = d.Write(r.Body)
	return d.Sum64()
}

// String returns a short description of the request in the form
// "<METHOD URL>".
func (r *Request) String() string {
	u := ""
	if r.URL != nil {
		u = r.URL.String()
	}
	return "<" + r.method() + " " + u + ">"
}

// AddCookie adds a cookie to the request. Per RFC 6265 section 5.4,
// AddCookie does not attach more than one Cookie header field.
func (r *Request) AddCookie(c *http.Cookie) {
	c2 := &http.Cookie{Name: c.Name, Value: c.Value}
	s := c2.String()
	if h := r.Header.Get("Cookie"); h != "" {
		r.Header.Set("Cookie", h+"; "+s)
	} else {
		r.Header.Set("Cookie", s)
	}
}

// SetBasicAuth sets the request's Authorization header to use HTTP
// Basic Authentication with the provided username and password.
func (r *Request) SetBasicAuth(username, password string) {
	r.Header.Set("Authorization", "Basic "+basicAuth(username, password))
}

// ToHTTPRequest creates an HTTP request corresponding to the given
// request. The context of the new request is set to ctx, which may not
// be nil.
func (r *Request) ToHTTPRequest(ctx context.Context) *http.Request {
	hr := template.WithContext(ctx)
	hr.Method = r.method()
	hr.URL = r.URL
	hr.Header = r.Header
	if len(r.Body) > 0 {
		body := r.Body
		hr.Body = io.NopCloser(bytes.NewReader(body))
		hr.GetBody = func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(body)), nil
		}
		hr.ContentLength = int64(len(body))
	}
	hr.Close = r.Close
	hr.Host = r.Host
	return hr
}

func (r *Request) method() string {
	if r.Method == "" {
		return "GET"
	}
	return r.Method
}

// basicAuth is lifted verbatim from net/http/client.go.
func basicAuth(username, password string) string {
	auth := username + ":" + password
	return base64.StdEncoding.EncodeToString([]byte(auth))
}

// validMethod reports whether method is an RFC 7230 token. We don't
// need to check for length because the empty string is always
// interpreted as "GET".
func validMethod(method string) bool {
	return strings.IndexFunc(method, isNotToken) == -1
}

func isNotToken(r rune) bool {
	return !httpguts.IsTokenRune(r)
}

// hasPort is lifted verbatim from net/http/http.go
func hasPort(s string) bool { return strings.LastIndex(s, ":") > strings.LastIndex(s, "]") }

// removeEmptyPort is lifted verbatim from net/http/http.go
//
// removeEmptyPort strips the empty port in ":port" to ""
// as mandated by RFC 3986 Section 6.2.3.
func removeEmptyPort(host string) string {
	if hasPort(host) {
		return strings.TrimSuffix(host, ":")
	}
	return host
}
