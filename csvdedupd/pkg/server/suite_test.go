// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package server_test

import (
	"bytes"
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	server_testutils "github.com/wrgl/csvdedup/csvdedupd/pkg/server/testutils"
	apiclient "github.com/wrgl/csvdedup/pkg/api/client"
	"github.com/wrgl/csvdedup/pkg/api/payload"
	"github.com/wrgl/csvdedup/pkg/testutils"
)

type testSuite struct {
	s *server_testutils.Server
}

func newSuite(t *testing.T) *testSuite {
	return &testSuite{
		s: server_testutils.NewServer(t, nil),
	}
}

func assertHTTPError(t *testing.T, err error, code int, message string) {
	t.Helper()
	v, ok := err.(*apiclient.HTTPError)
	require.True(t, ok, "error was %v", err)
	assert.Equal(t, code, v.Code)
	require.NotNil(t, v.Body, "raw body: %s", v.RawBody)
	assert.Equal(t, message, v.Body.Message)
}

func assertCSVError(t *testing.T, err error, message, file string, csvLoc *payload.CSVLocation) {
	t.Helper()
	require.IsType(t, &apiclient.HTTPError{}, err, err.Error())
	v := err.(*apiclient.HTTPError)
	assert.Equal(t, 400, v.Code)
	assert.Equal(t, message, v.Body.Message)
	assert.Equal(t, file, v.Body.File)
	assert.Equal(t, csvLoc, v.Body.CSV)
}

func csvFile(t *testing.T, name string, rows [][]string) apiclient.FormFile {
	t.Helper()
	return apiclient.FormFile{
		FileName: name,
		Content:  bytes.NewReader(testutils.CSVBytes(t, rows)),
	}
}

func TestSuite(t *testing.T) {
	suite := newSuite(t)
	t.Run("", func(t *testing.T) {
		ty := reflect.TypeOf(suite)
		v := reflect.ValueOf(suite)
		for i := ty.NumMethod() - 1; i >= 0; i-- {
			m := ty.Method(i)
			if !strings.HasPrefix(m.Name, "Test") {
				continue
			}
			t.Run(m.Name[4:], func(t *testing.T) {
				t.Parallel()
				v.MethodByName(m.Name).Call([]reflect.Value{reflect.ValueOf(t)})
			})
		}
	})
}
