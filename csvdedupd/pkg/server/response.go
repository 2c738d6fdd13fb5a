// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package server

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"mime"
	"net/http"
	"strings"

	"github.com/wrgl/csvdedup/pkg/api"
	"github.com/wrgl/csvdedup/pkg/api/payload"
)

func WriteJSON(rw http.ResponseWriter, v interface{}) {
	rw.Header().Set("Content-Type", api.CTJSON)
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	_, err = rw.Write(b)
	if err != nil {
		panic(err)
	}
}

func writeError(rw http.ResponseWriter, code int, obj *payload.Error) {
	rw.Header().Set("Content-Type", api.CTJSON)
	rw.WriteHeader(code)
	b, err := json.Marshal(obj)
	if err != nil {
		panic(err)
	}
	_, err = rw.Write(b)
	if err != nil {
		panic(err)
	}
}

func SendError(rw http.ResponseWriter, code int, message string) {
	writeError(rw, code, &payload.Error{
		Message: message,
	})
}

func SendHTTPError(rw http.ResponseWriter, code int) {
	SendError(rw, code, http.StatusText(code))
}

func csvErrorPayload(field string, obj *csv.ParseError) *payload.Error {
	return &payload.Error{
		Message: obj.Err.Error(),
		File:    field,
		CSV: &payload.CSVLocation{
			StartLine: obj.StartLine,
			Line:      obj.Line,
			Column:    obj.Column,
		},
	}
}

// wantsHTML reports whether the request comes from the upload form in a
// browser rather than from an API client
func wantsHTML(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "text/html")
}

// sendError replies with an error page to browsers and a JSON error
// otherwise
func (s *Server) sendError(rw http.ResponseWriter, r *http.Request, code int, obj *payload.Error) {
	s.logger.V(1).Info("request error", "method", r.Method, "url", r.URL.String(), "status", code, "message", obj.Message)
	if wantsHTML(r) {
		s.renderHTML(rw, code, "error.html", &errorPage{
			Status:  code,
			Error:   obj,
			BackURL: s.path(s.getConf(r), "/"),
		})
		return
	}
	writeError(rw, code, obj)
}

func (s *Server) renderHTML(rw http.ResponseWriter, code int, name string, data interface{}) {
	buf := bytes.NewBuffer(nil)
	if err := templates.ExecuteTemplate(buf, name, data); err != nil {
		panic(err)
	}
	rw.Header().Set("Content-Type", api.CTHTML)
	rw.WriteHeader(code)
	if _, err := rw.Write(buf.Bytes()); err != nil {
		panic(err)
	}
}

func setAttachment(rw http.ResponseWriter, fileName string) {
	rw.Header().Set("Content-Type", api.CTCSV)
	rw.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{
		"filename": fileName,
	}))
}
