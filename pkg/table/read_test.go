// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package table_test

import (
	"bytes"
	"encoding/csv"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wrgl/csvdedup/pkg/table"
	"github.com/wrgl/csvdedup/pkg/testutils"
)

type rowCounter struct {
	n       int
	done    bool
	aborted bool
}

func (b *rowCounter) Incr()                { b.n++ }
func (b *rowCounter) IncrBy(n int)         { b.n += n }
func (b *rowCounter) SetTotal(total int64) {}
func (b *rowCounter) Done()                { b.done = true }
func (b *rowCounter) Abort()               { b.aborted = true }

func TestRead(t *testing.T) {
	raw := testutils.BuildRawCSV(5, 20)
	bar := &rowCounter{}
	tbl, err := table.Read(bytes.NewReader(testutils.CSVBytes(t, raw)), table.WithProgressBar(bar))
	require.NoError(t, err)
	assert.Equal(t, raw[0], tbl.Columns)
	assert.Equal(t, raw[1:], tbl.Rows)
	assert.Equal(t, 20, bar.n)
	assert.True(t, bar.done)
}

func TestReadHeaderOnly(t *testing.T) {
	tbl, err := table.Read(strings.NewReader("url,score\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"url", "score"}, tbl.Columns)
	assert.Equal(t, 0, tbl.NumRows())
}

func TestReadDelimiterAndBOM(t *testing.T) {
	tbl, err := table.Read(strings.NewReader("\ufeffurl;score\na;1\n"), table.WithDelimiter(';'))
	require.NoError(t, err)
	assert.Equal(t, []string{"url", "score"}, tbl.Columns)
	assert.Equal(t, [][]string{{"a", "1"}}, tbl.Rows)
}

func TestReadGzip(t *testing.T) {
	raw := [][]string{{"url", "score"}, {"a", "1"}, {"b", "2"}}
	b := testutils.GzipBytes(t, testutils.CSVBytes(t, raw))
	tbl, err := table.Read(bytes.NewReader(b), table.WithGzip(true))
	require.NoError(t, err)
	assert.Equal(t, raw[1:], tbl.Rows)

	p := testutils.WriteFile(t, "data.csv.gz", b)
	tbl, err = table.ReadFile(p)
	require.NoError(t, err)
	assert.Equal(t, raw[0], tbl.Columns)

	_, err = table.Read(strings.NewReader("url\na\n"), table.WithGzip(true))
	assert.Error(t, err)
}

func TestReadErrors(t *testing.T) {
	bar := &rowCounter{}
	_, err := table.Read(strings.NewReader(""), table.WithProgressBar(bar))
	assert.ErrorIs(t, err, table.ErrMissingHeader)
	assert.True(t, bar.aborted)

	_, err = table.Read(strings.NewReader("a,b,a\n1,2,3\n"))
	assert.ErrorIs(t, err, table.ErrDuplicatedColumn)
	assert.Contains(t, err.Error(), `"a"`)

	_, err = table.Read(strings.NewReader("a,b,c\n1,q\n2,a,s\n"))
	var perr *csv.ParseError
	require.True(t, errors.As(err, &perr), "error was %v", err)
	assert.Equal(t, csv.ErrFieldCount, perr.Err)
	assert.Equal(t, 2, perr.Line)

	_, err = table.Read(strings.NewReader("a,b\n\"1,2\n"))
	require.True(t, errors.As(err, &perr), "error was %v", err)

	_, err = table.ReadFile("non-existent-file.csv")
	assert.Error(t, err)
}
