// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package server

import (
	"errors"
	"net/http"
	"regexp"

	"github.com/google/uuid"
	"github.com/wrgl/csvdedup/pkg/api/payload"
	"github.com/wrgl/csvdedup/pkg/results"
)

var resultURIPat = regexp.MustCompile(`/results/([0-9a-f-]+)/`)

func (s *Server) handleDownload(rw http.ResponseWriter, r *http.Request) {
	m := resultURIPat.FindStringSubmatch(r.URL.Path)
	if m == nil {
		SendHTTPError(rw, http.StatusNotFound)
		return
	}
	id, err := uuid.Parse(m[1])
	if err != nil {
		s.sendError(rw, r, http.StatusBadRequest, &payload.Error{Message: "invalid result id"})
		return
	}
	e, err := s.results.Get(id)
	if err != nil {
		if errors.Is(err, results.ErrNotFound) {
			s.sendError(rw, r, http.StatusNotFound, &payload.Error{Message: "result not found"})
			return
		}
		panic(err)
	}
	setAttachment(rw, e.FileName)
	if _, err = rw.Write(e.CSV); err != nil {
		panic(err)
	}
}
