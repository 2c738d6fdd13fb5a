// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package csvdedup

import (
	"github.com/spf13/cobra"
	"github.com/wrgl/csvdedup/cmd/csvdedup/utils"
	"github.com/wrgl/csvdedup/pkg/conf"
)

func newMergeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "merge FILE1 FILE2",
		Short: "Concatenate two CSV files on their common columns and drop duplicated rows",
		Long: "Concatenate two CSV files on their common columns and drop duplicated rows. " +
			"Columns are ordered as in FILE1. Rows of FILE1 come first, and only the first " +
			"row of each key is kept. The key defaults to the first common column.",
		Example: utils.CombineExamples([]utils.Example{
			{
				Comment: "merge two files, writing " + conf.TwoFileOutputName,
				Line:    "csvdedup merge january.csv february.csv",
			},
			{
				Comment: "deduplicate by a composite key and print the result",
				Line:    "csvdedup merge a.csv b.csv -k first_name,last_name -o -",
			},
			{
				Comment: "only drop rows that are identical in every common column",
				Line:    "csvdedup merge a.csv.gz b.csv --full-row -o merged.csv.gz",
			},
		}),
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDedup(cmd, args)
		},
	}
	addDedupFlags(cmd, conf.TwoFileOutputName)
	cmd.Flags().Bool("allow-no-common-columns", false,
		"don't fail when the files share no column. The output then has no column and one empty row per input row.")
	return cmd
}
