// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package csvdedup

import (
	"github.com/spf13/cobra"
	"github.com/wrgl/csvdedup/cmd/csvdedup/utils"
)

func RootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "csvdedup",
		Short:         "Merge CSV files on their common columns and drop rows with duplicated keys",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Usage()
		},
	}
	utils.AddLoggerFlags(rootCmd.PersistentFlags())
	rootCmd.AddCommand(newMergeCmd())
	rootCmd.AddCommand(newDedupCmd())
	rootCmd.AddCommand(newVersionCmd())
	return rootCmd
}
