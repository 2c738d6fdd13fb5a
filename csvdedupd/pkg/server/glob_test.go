// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package server

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wrgl/csvdedup/pkg/api"
)

func TestGlobCache(t *testing.T) {
	c := &globCache{}
	globs, err := c.get([]string{"*.csv", "*.csv.gz"})
	require.NoError(t, err)
	assert.True(t, matchAny(globs, "a.csv"))
	assert.True(t, matchAny(globs, "a.csv.gz"))
	assert.False(t, matchAny(globs, "a.tsv"))
	assert.False(t, matchAny(globs, "a.csv.bak"))

	globs2, err := c.get([]string{"*.csv", "*.csv.gz"})
	require.NoError(t, err)
	assert.Same(t, &globs[0], &globs2[0])

	globs, err = c.get([]string{"data_*.tsv"})
	require.NoError(t, err)
	assert.True(t, matchAny(globs, "data_2022.tsv"))
	assert.False(t, matchAny(globs, "a.csv"))

	_, err = c.get([]string{"[a"})
	assert.Error(t, err)
}

func TestRootPathPattern(t *testing.T) {
	assert.Nil(t, RootPathPattern(""))
	assert.Nil(t, RootPathPattern("/"))
	for _, s := range []string{"tools", "/tools", "/tools/"} {
		pat := RootPathPattern(s)
		require.NotNil(t, pat)
		assert.Equal(t, `^/tools/`, pat.String())
	}
	assert.True(t, RootPathPattern("/a.b").MatchString("/a.b/dedup/"))
	assert.False(t, RootPathPattern("/a.b").MatchString("/axb/dedup/"))
}

func TestFormFields(t *testing.T) {
	fields, ok := formFields("")
	assert.True(t, ok)
	assert.Equal(t, []string{api.FormFile1, api.FormFile2}, fields)
	fields, ok = formFields(api.ModeDedup)
	assert.True(t, ok)
	assert.Equal(t, []string{api.FormFile}, fields)
	_, ok = formFields("other")
	assert.False(t, ok)
}

func TestParseBoolField(t *testing.T) {
	for s, v := range map[string]bool{"on": true, "true": true, "1": true, "false": false, "0": false} {
		b, err := parseBoolField(s)
		require.NoError(t, err)
		assert.Equal(t, v, b, s)
	}
	_, err := parseBoolField("yes")
	assert.Error(t, err)
}
