// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package apiclient

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/wrgl/csvdedup/pkg/api"
	"github.com/wrgl/csvdedup/pkg/api/payload"
)

type HTTPError struct {
	Code    int
	RawBody string
	Body    *payload.Error
}

// NewHTTPError reads and closes the body of a failed response
func NewHTTPError(resp *http.Response) *HTTPError {
	defer resp.Body.Close()
	err := &HTTPError{Code: resp.StatusCode}
	b, _ := io.ReadAll(resp.Body)
	if strings.Contains(resp.Header.Get("Content-Type"), api.CTJSON) {
		obj := &payload.Error{}
		if json.Unmarshal(b, obj) == nil {
			err.Body = obj
			return err
		}
	}
	err.RawBody = strings.TrimSpace(string(b))
	return err
}

func (err *HTTPError) Message() string {
	if err.Body != nil {
		return err.Body.Message
	}
	return err.RawBody
}

func (err *HTTPError) Error() string {
	if err.Body != nil && err.Body.CSV != nil {
		return fmt.Sprintf("status %d: %s (line %d, column %d)", err.Code, err.Body.Message, err.Body.CSV.Line, err.Body.CSV.Column)
	}
	return fmt.Sprintf("status %d: %s", err.Code, err.Message())
}
