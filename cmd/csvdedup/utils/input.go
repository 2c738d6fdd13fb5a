// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package utils

import (
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"github.com/spf13/cobra"
	"github.com/wrgl/csvdedup/pkg/slice"
)

// DecodeRune returns the first rune of s, or 0 if s is empty
func DecodeRune(flag, s string) (rune, error) {
	if s != "" {
		r, size := utf8.DecodeRuneInString(s)
		if size > 0 && r != utf8.RuneError {
			return r, nil
		}
		return 0, fmt.Errorf("error reading rune from flag %q: could not decode rune in %q", flag, s)
	}
	return 0, nil
}

// SplitKey splits every comma separated element of sl into column names,
// dropping empty ones
func SplitKey(sl []string) []string {
	res := []string{}
	for _, s := range sl {
		res = append(res, slice.SplitNonEmpty(s, ",")...)
	}
	return res
}

// OpenInput opens name for reading. "-" is the command's stdin.
func OpenInput(cmd *cobra.Command, name string) (io.ReadCloser, error) {
	if name == "-" {
		return io.NopCloser(cmd.InOrStdin()), nil
	}
	return os.Open(name)
}
