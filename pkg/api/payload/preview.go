// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package payload

import "github.com/google/uuid"

// PreviewResponse describes a stored deduplication result
type PreviewResponse struct {
	ID           uuid.UUID `json:"id"`
	Mode         string    `json:"mode"`
	FileName     string    `json:"fileName"`
	DownloadPath string    `json:"downloadPath"`

	Columns    []string `json:"columns"`
	KeyColumns []string `json:"keyColumns"`

	// Rows holds the first rows of the result
	Rows [][]string `json:"rows"`

	RowsCount       int   `json:"rowsCount"`
	InputRows       []int `json:"inputRows"`
	DuplicatesCount int   `json:"duplicatesCount"`
}
