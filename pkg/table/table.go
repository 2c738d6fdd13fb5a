// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package table

import (
	"fmt"

	"github.com/wrgl/csvdedup/pkg/slice"
)

// Table is an in-memory CSV table. Every row has exactly len(Columns) cells.
type Table struct {
	Columns []string
	Rows    [][]string
}

func New(columns []string, rows [][]string) *Table {
	if rows == nil {
		rows = [][]string{}
	}
	return &Table{Columns: columns, Rows: rows}
}

func (t *Table) NumRows() int {
	return len(t.Rows)
}

func (t *Table) NumColumns() int {
	return len(t.Columns)
}

// ColumnIndices returns the positions of the given columns
func (t *Table) ColumnIndices(columns []string) ([]int, error) {
	return slice.KeyIndices(t.Columns, columns)
}

// Project returns a new table containing only the given columns, in the
// given order. Row order is preserved.
func (t *Table) Project(columns []string) (*Table, error) {
	indices, err := t.ColumnIndices(columns)
	if err != nil {
		return nil, err
	}
	res := &Table{
		Columns: append([]string{}, columns...),
		Rows:    make([][]string, len(t.Rows)),
	}
	for i, row := range t.Rows {
		res.Rows[i] = slice.IndicesToValues(row, indices)
	}
	return res, nil
}

// Head returns a table with at most n leading rows. n <= 0 means all rows.
func (t *Table) Head(n int) *Table {
	if n <= 0 || n >= len(t.Rows) {
		return t
	}
	return &Table{Columns: t.Columns, Rows: t.Rows[:n]}
}

func (t *Table) String() string {
	return fmt.Sprintf("table (%d rows, %d columns)", len(t.Rows), len(t.Columns))
}

// CommonColumns returns columns present in every table, in the order they
// appear in the first table.
func CommonColumns(tables ...*Table) []string {
	if len(tables) == 0 {
		return []string{}
	}
	cols := append([]string{}, tables[0].Columns...)
	for _, t := range tables[1:] {
		cols = slice.Intersect(cols, t.Columns)
	}
	return cols
}

// Concat appends rows of every table one after another. All tables must
// have the same columns in the same order.
func Concat(tables ...*Table) (*Table, error) {
	if len(tables) == 0 {
		return New([]string{}, nil), nil
	}
	n := 0
	for i, t := range tables {
		if !slice.StringSliceEqual(t.Columns, tables[0].Columns) {
			return nil, fmt.Errorf("table %d has columns %v, expected %v", i+1, t.Columns, tables[0].Columns)
		}
		n += len(t.Rows)
	}
	res := &Table{
		Columns: append([]string{}, tables[0].Columns...),
		Rows:    make([][]string, 0, n),
	}
	for _, t := range tables {
		res.Rows = append(res.Rows, t.Rows...)
	}
	return res, nil
}
