// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package payload

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorEqual(t *testing.T) {
	var a *Error
	assert.True(t, a.Equal(nil))
	assert.False(t, a.Equal(&Error{}))
	assert.True(t, (&Error{Message: "x"}).Equal(&Error{Message: "x"}))
	assert.False(t, (&Error{Message: "x", File: "file1"}).Equal(&Error{Message: "x", File: "file2"}))
	assert.True(t, (&Error{Message: "x", CSV: &CSVLocation{1, 2, 3}}).Equal(&Error{Message: "x", CSV: &CSVLocation{1, 2, 3}}))
	assert.False(t, (&Error{Message: "x", CSV: &CSVLocation{1, 2, 3}}).Equal(&Error{Message: "x"}))
}

func TestErrorJSON(t *testing.T) {
	b, err := json.Marshal(&Error{Message: "missing file2"})
	require.NoError(t, err)
	assert.Equal(t, `{"message":"missing file2"}`, string(b))

	e := &Error{}
	require.NoError(t, json.Unmarshal([]byte(`{"message":"bare \" in non-quoted-field","file":"file1","csv":{"startLine":2,"line":2,"column":3}}`), e))
	assert.Equal(t, &Error{
		Message: `bare " in non-quoted-field`,
		File:    "file1",
		CSV:     &CSVLocation{StartLine: 2, Line: 2, Column: 3},
	}, e)
}
