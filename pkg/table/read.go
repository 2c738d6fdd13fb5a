// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package table

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/wrgl/csvdedup/pkg/errors"
	"github.com/wrgl/csvdedup/pkg/pbar"
	"github.com/wrgl/csvdedup/pkg/slice"
)

var (
	ErrMissingHeader    = errors.New("missing header row")
	ErrDuplicatedColumn = errors.New("duplicated column name")
)

const utf8BOM = "\ufeff"

type reader struct {
	delimiter rune
	gzip      bool
	bar       pbar.Bar
}

type ReadOption func(r *reader)

func WithDelimiter(delim rune) ReadOption {
	return func(r *reader) {
		r.delimiter = delim
	}
}

// WithGzip decompresses the input before parsing
func WithGzip(gz bool) ReadOption {
	return func(r *reader) {
		r.gzip = gz
	}
}

// WithProgressBar increments bar once per data row read
func WithProgressBar(bar pbar.Bar) ReadOption {
	return func(r *reader) {
		r.bar = bar
	}
}

// IsGzipName reports whether a file name indicates gzip content
func IsGzipName(name string) bool {
	return strings.HasSuffix(strings.ToLower(name), ".gz")
}

// Read parses CSV content with a header row into a Table. Parse errors are
// returned as wrapped *csv.ParseError.
func Read(in io.Reader, opts ...ReadOption) (tbl *Table, err error) {
	r := &reader{}
	for _, opt := range opts {
		opt(r)
	}
	if r.bar != nil {
		defer func() {
			if err != nil {
				r.bar.Abort()
			} else {
				r.bar.Done()
			}
		}()
	}
	if r.gzip {
		gzr, err := gzip.NewReader(in)
		if err != nil {
			return nil, errors.Wrap("open gzip stream", err)
		}
		defer gzr.Close()
		in = gzr
	}
	cr := csv.NewReader(in)
	if r.delimiter != 0 {
		cr.Comma = r.delimiter
	}
	columns, err := cr.Read()
	if err == io.EOF {
		return nil, ErrMissingHeader
	} else if err != nil {
		return nil, errors.Wrap("read header", err)
	}
	columns[0] = strings.TrimPrefix(columns[0], utf8BOM)
	if s := slice.DuplicatedString(columns); s != "" {
		return nil, fmt.Errorf("%w: %q", ErrDuplicatedColumn, s)
	}
	tbl = New(columns, nil)
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, errors.Wrap("read row", err)
		}
		tbl.Rows = append(tbl.Rows, row)
		if r.bar != nil {
			r.bar.Incr()
		}
	}
	return tbl, nil
}

// ReadFile reads a CSV file. Gzip compression is detected from the ".gz"
// extension unless WithGzip is given explicitly.
func ReadFile(name string, opts ...ReadOption) (*Table, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Read(f, append([]ReadOption{WithGzip(IsGzipName(name))}, opts...)...)
}
