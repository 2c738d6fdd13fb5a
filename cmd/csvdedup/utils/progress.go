// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package utils

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/wrgl/csvdedup/pkg/pbar"
	"golang.org/x/term"
)

func SetupProgressBarFlags(flags *pflag.FlagSet) {
	flags.Bool("no-progress", false, "don't display progress bar")
}

// IsTerminal reports whether the command's stderr is a terminal
func IsTerminal(cmd *cobra.Command) bool {
	f, ok := cmd.ErrOrStderr().(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// GetProgressBarContainer returns bars drawn on stderr, or no-op bars when
// --no-progress is given or stderr is not a terminal
func GetProgressBarContainer(cmd *cobra.Command) (pbar.Container, error) {
	noP, err := cmd.Flags().GetBool("no-progress")
	if err != nil {
		return nil, err
	}
	if noP || !IsTerminal(cmd) {
		return pbar.NewNoopContainer(), nil
	}
	return pbar.NewContainer(cmd.ErrOrStderr()), nil
}
