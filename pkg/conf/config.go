// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package conf

import (
	"fmt"
	"time"
	"unicode/utf8"
)

const (
	DefaultPort                  = 80
	DefaultReadTimeout  Duration = Duration(30 * time.Second)
	DefaultWriteTimeout Duration = Duration(30 * time.Second)
	DefaultPreviewRows           = 5
	DefaultMaxUploadBytes        = 64 << 20
	DefaultResultTTL    Duration = Duration(10 * time.Minute)

	// Names of downloaded files
	TwoFileOutputName    = "output_without_duplicates.csv"
	SingleFileOutputName = "output_without_duplicates_single.csv"
)

// DefaultAllowedFiles are glob patterns that uploaded file names must match
var DefaultAllowedFiles = []string{"*.csv", "*.CSV", "*.csv.gz"}

type Server struct {
	// Port is the port number csvdedupd listens to
	Port int `yaml:"port,omitempty" json:"port,omitempty"`

	// ReadTimeout is the maximum duration for reading an entire request,
	// including uploaded files. This is a string in the format "72h3m0.5s".
	ReadTimeout Duration `yaml:"readTimeout,omitempty" json:"readTimeout,omitempty"`

	// WriteTimeout is the maximum duration before timing out writes of the
	// response.
	WriteTimeout Duration `yaml:"writeTimeout,omitempty" json:"writeTimeout,omitempty"`

	// RootPath is a path prefix under which every route is served, e.g.
	// "/dedup-tool/".
	RootPath string `yaml:"rootPath,omitempty" json:"rootPath,omitempty"`
}

type Dedup struct {
	// Key lists the columns compared to detect duplicates. When empty, the
	// first column of the result is used.
	Key []string `yaml:"key,omitempty" json:"key,omitempty"`

	// FullRow, when set to `true`, only treats rows as duplicates when every
	// cell is equal. Key is ignored.
	FullRow *bool `yaml:"fullRow,omitempty" json:"fullRow,omitempty"`

	// AllowNoCommonColumns, when set to `true`, lets two tables sharing no
	// column produce a result without columns instead of an error.
	AllowNoCommonColumns *bool `yaml:"allowNoCommonColumns,omitempty" json:"allowNoCommonColumns,omitempty"`

	// PreviewRows is the number of result rows shown in a preview. 0 shows
	// the whole result. Defaults to 5.
	PreviewRows *int `yaml:"previewRows,omitempty" json:"previewRows,omitempty"`

	// Delimiter of both input and output CSV. Defaults to comma.
	Delimiter string `yaml:"delimiter,omitempty" json:"delimiter,omitempty"`
}

type Upload struct {
	// MaxBytes is the maximum size in bytes of an upload request
	MaxBytes int64 `yaml:"maxBytes,omitempty" json:"maxBytes,omitempty"`

	// AllowedFiles are glob patterns that uploaded file names are compared
	// against. See https://github.com/gobwas/glob for supported format
	AllowedFiles []string `yaml:"allowedFiles,omitempty" json:"allowedFiles,omitempty"`
}

type Results struct {
	// TTL is how long a result stays available for download after its
	// preview was produced. Defaults to 10 minutes.
	TTL Duration `yaml:"ttl,omitempty" json:"ttl,omitempty"`
}

type Config struct {
	Server  *Server  `yaml:"server,omitempty" json:"server,omitempty"`
	Dedup   *Dedup   `yaml:"dedup,omitempty" json:"dedup,omitempty"`
	Upload  *Upload  `yaml:"upload,omitempty" json:"upload,omitempty"`
	Results *Results `yaml:"results,omitempty" json:"results,omitempty"`
}

func boolPtr(b bool) *bool { return &b }

func intPtr(i int) *int { return &i }

// Default returns the configuration used when nothing is overridden
func Default() *Config {
	return &Config{
		Server: &Server{
			Port:         DefaultPort,
			ReadTimeout:  DefaultReadTimeout,
			WriteTimeout: DefaultWriteTimeout,
		},
		Dedup: &Dedup{
			FullRow:              boolPtr(false),
			AllowNoCommonColumns: boolPtr(false),
			PreviewRows:          intPtr(DefaultPreviewRows),
		},
		Upload: &Upload{
			MaxBytes:     DefaultMaxUploadBytes,
			AllowedFiles: append([]string{}, DefaultAllowedFiles...),
		},
		Results: &Results{
			TTL: DefaultResultTTL,
		},
	}
}

func (c *Config) DedupKey() []string {
	if c.Dedup != nil {
		return c.Dedup.Key
	}
	return nil
}

func (c *Config) FullRow() bool {
	if c.Dedup != nil && c.Dedup.FullRow != nil {
		return *c.Dedup.FullRow
	}
	return false
}

func (c *Config) AllowNoCommonColumns() bool {
	if c.Dedup != nil && c.Dedup.AllowNoCommonColumns != nil {
		return *c.Dedup.AllowNoCommonColumns
	}
	return false
}

func (c *Config) PreviewRows() int {
	if c.Dedup != nil && c.Dedup.PreviewRows != nil {
		return *c.Dedup.PreviewRows
	}
	return DefaultPreviewRows
}

func (c *Config) Delimiter() rune {
	if c.Dedup != nil && c.Dedup.Delimiter != "" {
		return []rune(c.Dedup.Delimiter)[0]
	}
	return 0
}

// Validate rejects settings that would make every request fail
func (c *Config) Validate() error {
	if c.Dedup != nil && c.Dedup.Delimiter != "" {
		d := c.Dedup.Delimiter
		r, size := utf8.DecodeRuneInString(d)
		if size != len(d) {
			return fmt.Errorf("invalid dedup.delimiter %q: must be a single character", d)
		}
		if r == utf8.RuneError || r == '"' || r == '\r' || r == '\n' {
			return fmt.Errorf("invalid dedup.delimiter %q", d)
		}
	}
	return nil
}

func (c *Config) MaxUploadBytes() int64 {
	if c.Upload != nil && c.Upload.MaxBytes > 0 {
		return c.Upload.MaxBytes
	}
	return DefaultMaxUploadBytes
}

func (c *Config) AllowedFiles() []string {
	if c.Upload != nil && len(c.Upload.AllowedFiles) > 0 {
		return c.Upload.AllowedFiles
	}
	return DefaultAllowedFiles
}

func (c *Config) ResultTTL() time.Duration {
	if c.Results != nil && c.Results.TTL > 0 {
		return time.Duration(c.Results.TTL)
	}
	return time.Duration(DefaultResultTTL)
}

func (c *Config) RootPath() string {
	if c.Server != nil {
		return c.Server.RootPath
	}
	return ""
}
