// SPDX-License-Identifier: Apache-2.0
// Copyright © 2021 Wrangle Ltd

package testutils

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/require"
	"github.com/wrgl/csvdedup/pkg/table"
)

// BuildRawCSV generates a header row followed by numRow rows. The first
// column "id" holds unique sequential values.
func BuildRawCSV(numCol, numRow int) [][]string {
	columns := []string{"id"}
	for i := 0; i < numCol-1; i++ {
		columns = append(columns, fmt.Sprintf("%s_%d", gofakeit.Word(), i))
	}
	rawCSV := [][]string{columns}
	for i := 0; i < numRow; i++ {
		row := []string{strconv.Itoa(i + 1)}
		for j := 0; j < numCol-1; j++ {
			row = append(row, randomCell(j))
		}
		rawCSV = append(rawCSV, row)
	}
	return rawCSV
}

func randomCell(j int) string {
	switch j % 4 {
	case 0:
		return gofakeit.Name()
	case 1:
		return gofakeit.Email()
	case 2:
		return strconv.Itoa(gofakeit.Number(0, 1000))
	default:
		// exercise quoting with delimiters, quotes and line breaks
		return gofakeit.RandomString([]string{"a,b", `say "hi"`, "line\nbreak", gofakeit.Word(), ""})
	}
}

// BuildTable is BuildRawCSV converted to a Table
func BuildTable(numCol, numRow int) *table.Table {
	raw := BuildRawCSV(numCol, numRow)
	return table.New(raw[0], raw[1:])
}

// CSVBytes encodes rows as CSV
func CSVBytes(t *testing.T, rows [][]string) []byte {
	t.Helper()
	buf := bytes.NewBuffer(nil)
	w := csv.NewWriter(buf)
	require.NoError(t, w.WriteAll(rows))
	return buf.Bytes()
}

// GzipBytes compresses b with gzip
func GzipBytes(t *testing.T, b []byte) []byte {
	t.Helper()
	buf := bytes.NewBuffer(nil)
	w := gzip.NewWriter(buf)
	_, err := w.Write(b)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf.Bytes()
}

// TableRecords returns the header followed by rows of tbl
func TableRecords(tbl *table.Table) [][]string {
	return append([][]string{tbl.Columns}, tbl.Rows...)
}
