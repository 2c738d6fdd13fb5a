// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package csvdedup

import (
	"github.com/spf13/cobra"
	"github.com/wrgl/csvdedup/cmd/csvdedup/utils"
	"github.com/wrgl/csvdedup/pkg/conf"
)

func newDedupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dedup FILE",
		Short: "Drop rows of a CSV file whose key was seen in an earlier row",
		Example: utils.CombineExamples([]utils.Example{
			{
				Comment: "drop rows repeating the first column, writing " + conf.SingleFileOutputName,
				Line:    "csvdedup dedup contacts.csv",
			},
			{
				Comment: "read from stdin and write to stdout",
				Line:    "cat contacts.csv | csvdedup dedup - -k email -o - > unique.csv",
			},
		}),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDedup(cmd, args)
		},
	}
	addDedupFlags(cmd, conf.SingleFileOutputName)
	return cmd
}
