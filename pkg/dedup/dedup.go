// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

// Package dedup removes rows sharing a key from one table, or from the
// concatenation of two tables restricted to their common columns. The first
// occurrence of each key is kept and row order is preserved.
package dedup

import (
	"fmt"

	"github.com/pckhoi/meow"
	"github.com/wrgl/csvdedup/pkg/errors"
	"github.com/wrgl/csvdedup/pkg/table"
)

var (
	ErrNoCommonColumns = errors.New("tables share no column names")
	ErrKeyNotFound     = errors.New("key column not found")
)

type Result struct {
	Table *table.Table

	// Columns compared to detect duplicates. Empty when the table has no
	// columns, in which case no row is dropped.
	KeyColumns []string

	// Rows count of each input table
	InputRows []int

	// Duplicates is the number of dropped rows
	Duplicates int
}

// KeptRows is the number of rows in the result table
func (r *Result) KeptRows() int {
	return r.Table.NumRows()
}

func resolveKey(columns []string, o *options) (names []string, indices []int, err error) {
	switch {
	case o.fullRow:
		names = columns
	case len(o.key) > 0:
		names = o.key
	case len(columns) > 0:
		names = columns[:1]
	default:
		return nil, nil, nil
	}
	indices = make([]int, len(names))
	for i, name := range names {
		found := false
		for j, col := range columns {
			if col == name {
				indices[i] = j
				found = true
				break
			}
		}
		if !found {
			return nil, nil, fmt.Errorf("%w: %q", ErrKeyNotFound, name)
		}
	}
	return append([]string{}, names...), indices, nil
}

func dropDuplicates(tbl *table.Table, o *options) (*Result, error) {
	keyCols, keyIdx, err := resolveKey(tbl.Columns, o)
	if err != nil {
		return nil, err
	}
	res := &Result{
		KeyColumns: keyCols,
		Table:      table.New(tbl.Columns, make([][]string, 0, tbl.NumRows())),
	}
	if len(keyIdx) == 0 {
		res.Table.Rows = append(res.Table.Rows, tbl.Rows...)
		return res, nil
	}
	h := NewKeyHasher(keyIdx, o.seed)
	res.Table.Rows, res.Duplicates = keepFirst(tbl.Rows, keyIdx, h.Sum)
	return res, nil
}

// keepFirst returns rows whose key cells differ from every earlier row.
// Rows are bucketed by sum, and key cells are compared within a bucket.
func keepFirst(rows [][]string, keyIdx []int, sum func(row []string) [meow.Size]byte) (kept [][]string, duplicates int) {
	kept = make([][]string, 0, len(rows))
	buckets := make(map[[meow.Size]byte][]int, len(rows))
	for _, row := range rows {
		k := sum(row)
		dup := false
		for _, i := range buckets[k] {
			if sameKey(kept[i], row, keyIdx) {
				dup = true
				break
			}
		}
		if dup {
			duplicates++
			continue
		}
		buckets[k] = append(buckets[k], len(kept))
		kept = append(kept, row)
	}
	return kept, duplicates
}

func sameKey(a, b []string, keyIdx []int) bool {
	for _, i := range keyIdx {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Single removes rows of tbl whose key was already seen in an earlier row
func Single(tbl *table.Table, opts ...Option) (*Result, error) {
	o := newOptions(opts)
	res, err := dropDuplicates(tbl, o)
	if err != nil {
		return nil, err
	}
	res.InputRows = []int{tbl.NumRows()}
	o.logger.V(1).Info("deduplicated table",
		"rows", tbl.NumRows(),
		"columns", tbl.NumColumns(),
		"key", res.KeyColumns,
		"duplicates", res.Duplicates,
	)
	return res, nil
}

// Merge projects t1 and t2 onto their common columns (ordered as in t1),
// appends rows of t2 after rows of t1, then removes duplicated keys. Without
// WithStrictColumns, tables sharing no column produce a result without
// columns where every input row survives as an empty row.
func Merge(t1, t2 *table.Table, opts ...Option) (*Result, error) {
	o := newOptions(opts)
	common := table.CommonColumns(t1, t2)
	if len(common) == 0 && o.strict {
		return nil, ErrNoCommonColumns
	}
	p1, err := t1.Project(common)
	if err != nil {
		return nil, errors.Wrap("project table 1", err)
	}
	p2, err := t2.Project(common)
	if err != nil {
		return nil, errors.Wrap("project table 2", err)
	}
	combined, err := table.Concat(p1, p2)
	if err != nil {
		return nil, err
	}
	res, err := dropDuplicates(combined, o)
	if err != nil {
		return nil, err
	}
	res.InputRows = []int{t1.NumRows(), t2.NumRows()}
	o.logger.V(1).Info("merged tables",
		"rows", res.InputRows,
		"commonColumns", common,
		"key", res.KeyColumns,
		"duplicates", res.Duplicates,
	)
	return res, nil
}
