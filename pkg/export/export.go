// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package export

import (
	"bytes"
	"encoding/csv"
	"io"
	"os"

	"github.com/klauspost/compress/gzip"
	"github.com/wrgl/csvdedup/pkg/table"
)

type writer struct {
	delimiter rune
	gzip      bool
	useCRLF   bool
}

type WriteOption func(w *writer)

func WithDelimiter(delim rune) WriteOption {
	return func(w *writer) {
		w.delimiter = delim
	}
}

func WithGzip(gz bool) WriteOption {
	return func(w *writer) {
		w.gzip = gz
	}
}

// WithCRLF terminates lines with \r\n
func WithCRLF() WriteOption {
	return func(w *writer) {
		w.useCRLF = true
	}
}

// WriteCSV writes the header row followed by all rows of tbl. Fields
// containing the delimiter, a quote or a line break are quoted and inner
// quotes are doubled.
func WriteCSV(out io.Writer, tbl *table.Table, opts ...WriteOption) (err error) {
	w := &writer{}
	for _, opt := range opts {
		opt(w)
	}
	if w.gzip {
		gzw := gzip.NewWriter(out)
		defer func() {
			if cerr := gzw.Close(); err == nil {
				err = cerr
			}
		}()
		out = gzw
	}
	cw := csv.NewWriter(out)
	if w.delimiter != 0 {
		cw.Comma = w.delimiter
	}
	cw.UseCRLF = w.useCRLF
	if err = w.writeRecord(out, cw, tbl.Columns); err != nil {
		return err
	}
	for _, row := range tbl.Rows {
		if err = w.writeRecord(out, cw, row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// writeRecord writes a record holding a single empty field as `""`. csv.Writer
// would write a blank line, which readers skip.
func (w *writer) writeRecord(out io.Writer, cw *csv.Writer, record []string) error {
	if len(record) != 1 || record[0] != "" {
		return cw.Write(record)
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return err
	}
	line := "\"\"\n"
	if w.useCRLF {
		line = "\"\"\r\n"
	}
	_, err := io.WriteString(out, line)
	return err
}

// Bytes returns the CSV serialization of tbl
func Bytes(tbl *table.Table, opts ...WriteOption) ([]byte, error) {
	buf := bytes.NewBuffer(nil)
	if err := WriteCSV(buf, tbl, opts...); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteFile writes tbl to name, compressing with gzip if name ends in ".gz"
func WriteFile(name string, tbl *table.Table, opts ...WriteOption) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	err = WriteCSV(f, tbl, append([]WriteOption{WithGzip(table.IsGzipName(name))}, opts...)...)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return err
}
