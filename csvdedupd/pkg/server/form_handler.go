// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package server

import (
	"net/http"
	"strings"

	"github.com/wrgl/csvdedup/pkg/api"
)

func (s *Server) handleForm(rw http.ResponseWriter, r *http.Request) {
	c := s.getConf(r)
	s.renderHTML(rw, http.StatusOK, "form.html", newFormPage(
		s.path(c, api.PathDedup),
		s.path(c, api.PathExport),
		strings.Join(c.DedupKey(), ","),
		c.FullRow(),
	))
}
