// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package table_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wrgl/csvdedup/pkg/table"
)

func TestCommonColumns(t *testing.T) {
	t1 := table.New([]string{"url", "score", "title"}, nil)
	t2 := table.New([]string{"title", "extra", "url"}, nil)
	assert.Equal(t, []string{"url", "title"}, table.CommonColumns(t1, t2))
	assert.Equal(t, []string{"title", "url"}, table.CommonColumns(t2, t1))
	assert.Equal(t, []string{"url", "score", "title"}, table.CommonColumns(t1))
	assert.Equal(t, []string{}, table.CommonColumns())

	t3 := table.New([]string{"a", "b"}, nil)
	assert.Equal(t, []string{}, table.CommonColumns(t1, t3))
}

func TestProject(t *testing.T) {
	tbl := table.New([]string{"a", "b", "c"}, [][]string{
		{"1", "q", "w"},
		{"2", "a", "s"},
	})
	res, err := tbl.Project([]string{"c", "a"})
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "a"}, res.Columns)
	assert.Equal(t, [][]string{{"w", "1"}, {"s", "2"}}, res.Rows)

	res, err = tbl.Project([]string{})
	require.NoError(t, err)
	assert.Equal(t, []string{}, res.Columns)
	assert.Equal(t, [][]string{{}, {}}, res.Rows)

	_, err = tbl.Project([]string{"d"})
	assert.Error(t, err)

	// original is untouched
	assert.Equal(t, []string{"1", "q", "w"}, tbl.Rows[0])
}

func TestConcat(t *testing.T) {
	t1 := table.New([]string{"a", "b"}, [][]string{{"1", "2"}})
	t2 := table.New([]string{"a", "b"}, [][]string{{"3", "4"}, {"5", "6"}})
	res, err := table.Concat(t1, t2)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, res.Columns)
	assert.Equal(t, [][]string{{"1", "2"}, {"3", "4"}, {"5", "6"}}, res.Rows)

	res, err = table.Concat(t1, table.New([]string{"a", "b"}, nil))
	require.NoError(t, err)
	assert.Equal(t, 1, res.NumRows())

	_, err = table.Concat(t1, table.New([]string{"b", "a"}, nil))
	assert.Error(t, err)
}

func TestHead(t *testing.T) {
	tbl := table.New([]string{"a"}, [][]string{{"1"}, {"2"}, {"3"}})
	assert.Equal(t, [][]string{{"1"}, {"2"}}, tbl.Head(2).Rows)
	assert.Equal(t, 3, tbl.Head(0).NumRows())
	assert.Equal(t, 3, tbl.Head(10).NumRows())
	assert.Equal(t, "table (3 rows, 1 columns)", tbl.String())
}
