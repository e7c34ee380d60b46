// Copyright 2021 The refetch Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"errors"
	"io"
)

// ErrBodyType is returned by BodyBytes, and by the functions which
// construct a Request from a generic body, when the body has an
// unsupported type.
var ErrBodyType = errors.New("refetch/request: invalid type (for body use nil, " +
	"string, []byte, io.Reader or io.ReadCloser)")

// BodyBytes buffers a generic body parameter into the byte slice held
// by a Request.
//
// A nil body yields a nil slice. A string is converted and a []byte is
// returned as is. An io.Reader is read to the end; an io.ReadCloser is
// also closed, and a read or close error yields a nil slice and the
// error. Any other type yields ErrBodyType.
func BodyBytes(body interface{}) ([]byte, error) {
	var rc io.ReadCloser
	switch x := body.(type) {
	case nil:
		return nil, nil
	case string:
		return []byte(x), nil
	case []byte:
		return x, nil
	case io.ReadCloser:
		rc = x
	case io.Reader:
		rc = io.NopCloser(x)
	default:
		return nil, ErrBodyType
	}

	b, err := io.ReadAll(rc)
	if err != nil {
		return nil, err
	}
	if err = rc.Close(); err != nil {
		return nil, err
	}
	return b, nil
}
