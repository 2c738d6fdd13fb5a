// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package server

import (
	"net/http"

	"github.com/wrgl/csvdedup/pkg/api"
	"github.com/wrgl/csvdedup/pkg/api/payload"
	"github.com/wrgl/csvdedup/pkg/export"
	"github.com/wrgl/csvdedup/pkg/results"
)

func (s *Server) handleDedup(rw http.ResponseWriter, r *http.Request) {
	c := s.getConf(r)
	req, ok := s.parseDedupRequest(rw, r, c)
	if !ok {
		return
	}
	res, ok := s.run(rw, r, req)
	if !ok {
		return
	}
	b, err := export.Bytes(res.Table, export.WithDelimiter(c.Delimiter()))
	if err != nil {
		panic(err)
	}
	fileName := outputFileName(req.mode)
	id, err := s.results.Save(&results.Entry{
		FileName: fileName,
		CSV:      b,
	})
	if err != nil {
		panic(err)
	}
	head := res.Table.Head(c.PreviewRows())
	resp := &payload.PreviewResponse{
		ID:              id,
		Mode:            req.mode,
		FileName:        fileName,
		DownloadPath:    s.path(c, api.ResultPath(id)),
		Columns:         res.Table.Columns,
		KeyColumns:      res.KeyColumns,
		Rows:            head.Rows,
		RowsCount:       res.KeptRows(),
		InputRows:       res.InputRows,
		DuplicatesCount: res.Duplicates,
	}
	s.logger.V(1).Info("result stored",
		"id", id.String(),
		"mode", req.mode,
		"rows", resp.RowsCount,
		"duplicates", resp.DuplicatesCount,
	)
	if wantsHTML(r) {
		s.renderHTML(rw, http.StatusOK, "preview.html", &previewPage{
			PreviewResponse: resp,
			HomeURL:         s.path(c, "/"),
			Shown:           head.NumRows(),
		})
		return
	}
	WriteJSON(rw, resp)
}

func (s *Server) handleExport(rw http.ResponseWriter, r *http.Request) {
	c := s.getConf(r)
	req, ok := s.parseDedupRequest(rw, r, c)
	if !ok {
		return
	}
	res, ok := s.run(rw, r, req)
	if !ok {
		return
	}
	setAttachment(rw, outputFileName(req.mode))
	if err := export.WriteCSV(rw, res.Table, export.WithDelimiter(c.Delimiter())); err != nil {
		panic(err)
	}
}
