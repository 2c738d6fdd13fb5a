// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package csvdedup

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/go-logr/logr"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/wrgl/csvdedup/cmd/csvdedup/utils"
	"github.com/wrgl/csvdedup/pkg/dedup"
	"github.com/wrgl/csvdedup/pkg/errors"
	"github.com/wrgl/csvdedup/pkg/export"
	"github.com/wrgl/csvdedup/pkg/pbar"
	"github.com/wrgl/csvdedup/pkg/table"
)

func addDedupFlags(cmd *cobra.Command, defaultOutput string) {
	flags := cmd.Flags()
	flags.StringSliceP("key", "k", nil, "comma-separated key columns. Defaults to the first column.")
	flags.Bool("full-row", false, "compare whole rows instead of a key")
	flags.String("delimiter", "", "CSV delimiter of inputs and output. Defaults to comma.")
	flags.StringP("output", "o", defaultOutput, `output file. "-" writes to stdout and a ".gz" suffix compresses the output.`)
	flags.Int("preview", 0, "print the first N rows of the result to stderr")
	utils.SetupProgressBarFlags(flags)
}

// newViper binds the command's flags to CSVDEDUP_* environment variables
func newViper(cmd *cobra.Command) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix("csvdedup")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return nil, err
	}
	return v, nil
}

type runOptions struct {
	key                  []string
	fullRow              bool
	delimiter            rune
	output               string
	preview              int
	allowNoCommonColumns bool
}

func getRunOptions(cmd *cobra.Command) (*runOptions, error) {
	v, err := newViper(cmd)
	if err != nil {
		return nil, err
	}
	delim, err := utils.DecodeRune("delimiter", v.GetString("delimiter"))
	if err != nil {
		return nil, err
	}
	opts := &runOptions{
		key:                  utils.SplitKey(v.GetStringSlice("key")),
		fullRow:              v.GetBool("full-row"),
		delimiter:            delim,
		output:               v.GetString("output"),
		preview:              v.GetInt("preview"),
		allowNoCommonColumns: v.GetBool("allow-no-common-columns"),
	}
	if opts.fullRow && len(opts.key) > 0 {
		return nil, fmt.Errorf("--key and --full-row are mutually exclusive")
	}
	if opts.output == "" {
		return nil, fmt.Errorf("empty output file name")
	}
	return opts, nil
}

func (o *runOptions) dedupOptions(logger logr.Logger) []dedup.Option {
	opts := []dedup.Option{dedup.WithLogger(logger)}
	if o.fullRow {
		opts = append(opts, dedup.WithFullRow())
	} else if len(o.key) > 0 {
		opts = append(opts, dedup.WithKey(o.key...))
	}
	if !o.allowNoCommonColumns {
		opts = append(opts, dedup.WithStrictColumns())
	}
	return opts
}

func runDedup(cmd *cobra.Command, inputs []string) error {
	cleanup, err := utils.SetupLogger(cmd)
	if err != nil {
		return err
	}
	defer cleanup()
	logger := *utils.GetLogger(cmd)
	opts, err := getRunOptions(cmd)
	if err != nil {
		return err
	}
	if err := checkStdin(inputs); err != nil {
		return err
	}
	pc, err := utils.GetProgressBarContainer(cmd)
	if err != nil {
		return err
	}
	tables := make([]*table.Table, len(inputs))
	for i, name := range inputs {
		tables[i], err = loadTable(cmd, pc, name, opts.delimiter)
		if err != nil {
			pc.Wait()
			return errors.Wrapf(err, "read table %d", i+1)
		}
	}
	pc.Wait()

	d := newDiagnostics(cmd)
	for i, tbl := range tables {
		d.input(i+1, inputs[i], tbl)
	}
	var res *dedup.Result
	if len(tables) == 1 {
		res, err = dedup.Single(tables[0], opts.dedupOptions(logger)...)
	} else {
		res, err = dedup.Merge(tables[0], tables[1], opts.dedupOptions(logger)...)
		if err == nil {
			d.commonColumns(res.Table.Columns)
		}
	}
	if err != nil {
		return err
	}
	d.result(res)
	if opts.preview > 0 {
		if err := writePreview(cmd.ErrOrStderr(), res.Table, opts.preview, !utils.IsTerminal(cmd)); err != nil {
			return err
		}
	}
	if err := writeOutput(cmd, res.Table, opts); err != nil {
		return errors.Wrap("write output", err)
	}
	if opts.output != "-" {
		d.output(opts.output)
	}
	return nil
}

func checkStdin(inputs []string) error {
	n := 0
	for _, name := range inputs {
		if name == "-" {
			n++
		}
	}
	if n > 1 {
		return errors.New("stdin can only be read once")
	}
	return nil
}

// loadTable reads a CSV file, showing a byte progress bar sized by the file,
// or a row counter when reading stdin
func loadTable(cmd *cobra.Command, pc pbar.Container, name string, delim rune) (*table.Table, error) {
	r, err := utils.OpenInput(cmd, name)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	readOpts := []table.ReadOption{table.WithDelimiter(delim)}
	if name == "-" {
		bar := pc.NewBar(0, "Reading stdin", 0)
		return table.Read(r, append(readOpts, table.WithProgressBar(bar))...)
	}
	var size int64
	if f, ok := r.(*os.File); ok {
		if fi, err := f.Stat(); err == nil {
			size = fi.Size()
		}
	}
	bar := pc.NewBar(size, "Reading "+filepath.Base(name), pbar.UnitKiB)
	tbl, err := table.Read(
		pbar.NewReader(bar, r),
		append(readOpts, table.WithGzip(table.IsGzipName(name)))...,
	)
	if err != nil {
		bar.Abort()
		return nil, err
	}
	bar.Done()
	return tbl, nil
}

func writeOutput(cmd *cobra.Command, tbl *table.Table, opts *runOptions) error {
	if opts.output == "-" {
		return export.WriteCSV(cmd.OutOrStdout(), tbl, export.WithDelimiter(opts.delimiter))
	}
	return export.WriteFile(opts.output, tbl, export.WithDelimiter(opts.delimiter))
}

type diagnostics struct {
	out   io.Writer
	label *color.Color
	count *color.Color
	warn  *color.Color
}

func newDiagnostics(cmd *cobra.Command) *diagnostics {
	d := &diagnostics{
		out:   cmd.ErrOrStderr(),
		label: color.New(color.FgCyan),
		count: color.New(color.Bold),
		warn:  color.New(color.FgYellow),
	}
	terminal := utils.IsTerminal(cmd)
	for _, c := range []*color.Color{d.label, d.count, d.warn} {
		if terminal {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return d
}

func (d *diagnostics) input(i int, name string, tbl *table.Table) {
	d.label.Fprintf(d.out, "Table %d", i)
	fmt.Fprintf(d.out, " (%s): ", name)
	d.count.Fprintf(d.out, "%d", tbl.NumRows())
	fmt.Fprint(d.out, " rows, ")
	d.count.Fprintf(d.out, "%d", tbl.NumColumns())
	fmt.Fprintln(d.out, " columns")
}

func (d *diagnostics) commonColumns(cols []string) {
	d.label.Fprint(d.out, "Common columns")
	if len(cols) == 0 {
		fmt.Fprint(d.out, ": ")
		d.warn.Fprintln(d.out, "none")
		return
	}
	fmt.Fprintf(d.out, ": %s\n", strings.Join(cols, ", "))
}

func (d *diagnostics) result(res *dedup.Result) {
	d.label.Fprint(d.out, "Kept")
	fmt.Fprint(d.out, " ")
	d.count.Fprintf(d.out, "%d", res.KeptRows())
	fmt.Fprint(d.out, " rows, dropped ")
	d.count.Fprintf(d.out, "%d", res.Duplicates)
	if len(res.KeyColumns) == 0 {
		fmt.Fprintln(d.out, " duplicates")
		return
	}
	fmt.Fprintf(d.out, " duplicates by %s\n", strings.Join(res.KeyColumns, ", "))
}

func (d *diagnostics) output(name string) {
	d.label.Fprint(d.out, "Wrote")
	fmt.Fprintf(d.out, " %s\n", name)
}
