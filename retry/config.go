// Copyright 2021 The refetch Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package retry

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gogama/refetch/transient"
)

// A Config is the operator-facing form of a Policy, suitable for
// loading from a YAML document such as:
//
//	max_retries: 3
//	http_codes: [500, 502, 503, 504, 429]
//	transport_kinds: [timeout, connection-reset, connection-refused]
//
// Fields left unset take their values from DefaultPolicy. An explicitly
// empty list means nothing of that type is retryable.
type Config struct {
	MaxRetries     *int             `yaml:"max_retries"`
	HTTPCodes      []int            `yaml:"http_codes"`
	TransportKinds []transient.Kind `yaml:"transport_kinds"`
}

// ParseConfig parses a YAML retry configuration. Environment variable
// references of the form $VAR or ${VAR} are expanded before parsing.
// Unknown fields are an error.
func ParseConfig(data []byte) (*Config, error) {
	expanded := os.ExpandEnv(string(data))
	dec := yaml.NewDecoder(bytes.NewReader([]byte(expanded)))
	dec.KnownFields(true)
	var cfg Config
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("refetch/retry: failed to parse config: %w", err)
	}
	return &cfg, nil
}

// LoadConfig reads and parses the YAML retry configuration in the file
// at path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("refetch/retry: failed to read config file: %w", err)
	}
	return ParseConfig(data)
}

// Policy builds the immutable Policy described by c, validating it with
// NewPolicy.
func (c *Config) Policy() (*Policy, error) {
	maxRetries := DefaultTimes
	if c.MaxRetries != nil {
		maxRetries = *c.MaxRetries
	}
	codes := DefaultStatusCodes
	if c.HTTPCodes != nil {
		codes = c.HTTPCodes
	}
	kinds := DefaultKinds
	if c.TransportKinds != nil {
		kinds = c.TransportKinds
	}
	return NewPolicy(maxRetries, codes, kinds)
}
