// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package conf

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestConfigAccessors(t *testing.T) {
	c := &Config{}
	assert.Nil(t, c.DedupKey())
	assert.False(t, c.FullRow())
	assert.False(t, c.AllowNoCommonColumns())
	assert.Equal(t, DefaultPreviewRows, c.PreviewRows())
	assert.Equal(t, rune(0), c.Delimiter())
	assert.Equal(t, int64(DefaultMaxUploadBytes), c.MaxUploadBytes())
	assert.Equal(t, DefaultAllowedFiles, c.AllowedFiles())
	assert.Equal(t, 10*time.Minute, c.ResultTTL())
	assert.Equal(t, "", c.RootPath())

	c = &Config{
		Server: &Server{RootPath: "/tools/"},
		Dedup: &Dedup{
			Key:                  []string{"id"},
			FullRow:              boolPtr(true),
			AllowNoCommonColumns: boolPtr(true),
			PreviewRows:          intPtr(0),
			Delimiter:            ";",
		},
		Upload:  &Upload{MaxBytes: 1024, AllowedFiles: []string{"*.txt"}},
		Results: &Results{TTL: Duration(time.Minute)},
	}
	assert.Equal(t, []string{"id"}, c.DedupKey())
	assert.True(t, c.FullRow())
	assert.True(t, c.AllowNoCommonColumns())
	assert.Equal(t, 0, c.PreviewRows())
	assert.Equal(t, ';', c.Delimiter())
	assert.Equal(t, int64(1024), c.MaxUploadBytes())
	assert.Equal(t, []string{"*.txt"}, c.AllowedFiles())
	assert.Equal(t, time.Minute, c.ResultTTL())
	assert.Equal(t, "/tools/", c.RootPath())
}

func TestDefault(t *testing.T) {
	c := Default()
	assert.Equal(t, DefaultPort, c.Server.Port)
	assert.Equal(t, 30*time.Second, time.Duration(c.Server.ReadTimeout))
	assert.False(t, c.FullRow())
	assert.Equal(t, 5, c.PreviewRows())

	// defaults are not shared between calls
	c.Upload.AllowedFiles[0] = "*.tsv"
	assert.Equal(t, "*.csv", Default().Upload.AllowedFiles[0])
}

func TestValidate(t *testing.T) {
	assert.NoError(t, (&Config{}).Validate())
	assert.NoError(t, Default().Validate())
	for _, d := range []string{",", ";", "\t", "|", "§"} {
		assert.NoError(t, (&Config{Dedup: &Dedup{Delimiter: d}}).Validate(), "delimiter %q", d)
	}
	for _, d := range []string{"\"", "\n", "\r", ",,", "\xff"} {
		assert.Error(t, (&Config{Dedup: &Dedup{Delimiter: d}}).Validate(), "delimiter %q", d)
	}
}
