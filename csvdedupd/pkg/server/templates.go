// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package server

import (
	"embed"
	"html/template"

	"github.com/wrgl/csvdedup/pkg/api"
	"github.com/wrgl/csvdedup/pkg/api/payload"
)

//go:embed templates/*.html
var templatesFS embed.FS

var templates = template.Must(template.ParseFS(templatesFS, "templates/*.html"))

type formPage struct {
	DedupURL  string
	ExportURL string
	Key       string
	FullRow   bool

	ModeMerge string
	ModeDedup string
}

type previewPage struct {
	*payload.PreviewResponse
	HomeURL string
	Shown   int
}

type errorPage struct {
	Status  int
	Error   *payload.Error
	BackURL string
}

func newFormPage(dedupURL, exportURL, key string, fullRow bool) *formPage {
	return &formPage{
		DedupURL:  dedupURL,
		ExportURL: exportURL,
		Key:       key,
		FullRow:   fullRow,
		ModeMerge: api.ModeMerge,
		ModeDedup: api.ModeDedup,
	}
}
