// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package dedup

import (
	"github.com/go-logr/logr"
)

type options struct {
	key     []string
	fullRow bool
	strict  bool
	seed    uint64
	logger  logr.Logger
}

type Option func(o *options)

// WithKey compares rows on the named columns instead of the first column.
// An empty list keeps the default.
func WithKey(columns ...string) Option {
	return func(o *options) {
		o.key = columns
	}
}

// WithFullRow treats rows as duplicates only when every cell is equal
func WithFullRow() Option {
	return func(o *options) {
		o.fullRow = true
	}
}

// WithStrictColumns makes Merge fail with ErrNoCommonColumns instead of
// producing a table without columns.
func WithStrictColumns() Option {
	return func(o *options) {
		o.strict = true
	}
}

func WithSeed(seed uint64) Option {
	return func(o *options) {
		o.seed = seed
	}
}

func WithLogger(logger logr.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

func newOptions(opts []Option) *options {
	o := &options{
		logger: logr.Discard(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}
