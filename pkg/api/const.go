// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package api

import "github.com/google/uuid"

const (
	// CTCSV is content type for CSV payload
	CTCSV = "text/csv"
	// CTJSON is content type for Json payload
	CTJSON = "application/json"
	// CTHTML is content type for pages served to browsers
	CTHTML = "text/html; charset=utf-8"

	PathDedup   = "/dedup/"
	PathExport  = "/export/"
	PathResults = "/results/"

	// Multipart form fields accepted by PathDedup and PathExport
	FormMode    = "mode"
	FormFile1   = "file1"
	FormFile2   = "file2"
	FormFile    = "file"
	FormKey     = "key"
	FormFullRow = "fullRow"

	// ModeMerge deduplicates the concatenation of two files
	ModeMerge = "merge"
	// ModeDedup deduplicates a single file
	ModeDedup = "dedup"
)

// ResultPath returns the download path of a stored result
func ResultPath(id uuid.UUID) string {
	return PathResults + id.String() + "/"
}
