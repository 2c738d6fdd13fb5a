// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package csvdedup

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/mitchellh/colorstring"
	"github.com/wrgl/csvdedup/pkg/table"
)

const maxPreviewCellWidth = 32

var cellReplacer = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ", "\t", " ")

func previewCell(s string) string {
	return runewidth.Truncate(cellReplacer.Replace(s), maxPreviewCellWidth, "…")
}

// writePreview prints the first n rows of tbl as aligned columns. Column
// widths account for wide runes.
func writePreview(w io.Writer, tbl *table.Table, n int, noColor bool) error {
	head := tbl.Head(n)
	header := make([]string, len(tbl.Columns))
	widths := make([]int, len(tbl.Columns))
	for i, col := range tbl.Columns {
		header[i] = previewCell(col)
		widths[i] = runewidth.StringWidth(header[i])
	}
	rows := make([][]string, len(head.Rows))
	for i, row := range head.Rows {
		rows[i] = make([]string, len(row))
		for j, cell := range row {
			rows[i][j] = previewCell(cell)
			if cw := runewidth.StringWidth(rows[i][j]); cw > widths[j] {
				widths[j] = cw
			}
		}
	}
	c := colorstring.Colorize{
		Colors:  colorstring.DefaultColors,
		Disable: noColor,
	}
	if _, err := fmt.Fprintf(w, "%s%s%s\n", c.Color("[bold][cyan]"), alignRow(header, widths), c.Color("[reset]")); err != nil {
		return err
	}
	for _, row := range rows {
		if _, err := fmt.Fprintln(w, alignRow(row, widths)); err != nil {
			return err
		}
	}
	if len(head.Rows) < tbl.NumRows() {
		_, err := fmt.Fprintf(w, "%s(%d of %d rows)%s\n", c.Color("[dark_gray]"), len(head.Rows), tbl.NumRows(), c.Color("[reset]"))
		return err
	}
	return nil
}

func alignRow(cells []string, widths []int) string {
	sb := &strings.Builder{}
	for i, cell := range cells {
		if i > 0 {
			sb.WriteString("  ")
		}
		if i == len(cells)-1 {
			sb.WriteString(cell)
		} else {
			sb.WriteString(runewidth.FillRight(cell, widths[i]))
		}
	}
	return sb.String()
}
