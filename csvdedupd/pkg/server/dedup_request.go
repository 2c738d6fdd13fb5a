// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package server

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/wrgl/csvdedup/pkg/api"
	"github.com/wrgl/csvdedup/pkg/api/payload"
	"github.com/wrgl/csvdedup/pkg/conf"
	"github.com/wrgl/csvdedup/pkg/dedup"
	"github.com/wrgl/csvdedup/pkg/slice"
	"github.com/wrgl/csvdedup/pkg/table"
)

const maxFormMemory = 32 << 20

// dedupRequest is a parsed dedup or export form
type dedupRequest struct {
	mode   string
	tables []*table.Table
	opts   []dedup.Option
}

func formFields(mode string) ([]string, bool) {
	switch mode {
	case "", api.ModeMerge:
		return []string{api.FormFile1, api.FormFile2}, true
	case api.ModeDedup:
		return []string{api.FormFile}, true
	}
	return nil, false
}

func parseBoolField(v string) (bool, error) {
	if v == "on" {
		return true, nil
	}
	return strconv.ParseBool(v)
}

func isGzipError(err error) bool {
	return errors.Is(err, gzip.ErrHeader) ||
		errors.Is(err, gzip.ErrChecksum) ||
		errors.Is(err, io.ErrUnexpectedEOF)
}

// isTooLarge reports whether err comes from exceeding http.MaxBytesReader.
// multipart may flatten the error into its message.
func isTooLarge(err error) bool {
	var mbErr *http.MaxBytesError
	return errors.As(err, &mbErr) || strings.Contains(err.Error(), "http: request body too large")
}

// readUpload reads the table uploaded under field. It replies with an error
// and returns false if the upload is missing or invalid.
func (s *Server) readUpload(rw http.ResponseWriter, r *http.Request, c *conf.Config, field string) (*table.Table, bool) {
	if len(r.MultipartForm.File[field]) == 0 {
		s.sendError(rw, r, http.StatusBadRequest, &payload.Error{Message: "missing " + field, File: field})
		return nil, false
	}
	fh := r.MultipartForm.File[field][0]
	globs, err := s.globs.get(c.AllowedFiles())
	if err != nil {
		panic(fmt.Errorf("invalid upload.allowedFiles: %v", err))
	}
	name := filepath.Base(fh.Filename)
	if !matchAny(globs, name) {
		s.sendError(rw, r, http.StatusBadRequest, &payload.Error{
			Message: fmt.Sprintf("file name %q does not match any of %s", name, strings.Join(c.AllowedFiles(), ", ")),
			File:    field,
		})
		return nil, false
	}
	f, err := fh.Open()
	if err != nil {
		panic(err)
	}
	defer f.Close()
	tbl, err := table.Read(f,
		table.WithGzip(table.IsGzipName(name)),
		table.WithDelimiter(c.Delimiter()),
	)
	if err != nil {
		var perr *csv.ParseError
		switch {
		case errors.As(err, &perr):
			s.sendError(rw, r, http.StatusBadRequest, csvErrorPayload(field, perr))
		case errors.Is(err, table.ErrMissingHeader), errors.Is(err, table.ErrDuplicatedColumn), isGzipError(err):
			s.sendError(rw, r, http.StatusBadRequest, &payload.Error{Message: err.Error(), File: field})
		default:
			panic(err)
		}
		return nil, false
	}
	return tbl, true
}

// parseDedupRequest reads the multipart form shared by the dedup and export
// endpoints. It replies with an error and returns false on invalid input.
func (s *Server) parseDedupRequest(rw http.ResponseWriter, r *http.Request, c *conf.Config) (*dedupRequest, bool) {
	r.Body = http.MaxBytesReader(rw, r.Body, c.MaxUploadBytes())
	err := r.ParseMultipartForm(maxFormMemory)
	if err != nil {
		switch {
		case err == http.ErrNotMultipart || err == http.ErrMissingBoundary:
			s.sendError(rw, r, http.StatusUnsupportedMediaType, &payload.Error{Message: err.Error()})
		case isTooLarge(err):
			s.sendError(rw, r, http.StatusRequestEntityTooLarge, &payload.Error{
				Message: fmt.Sprintf("request body larger than %d bytes", c.MaxUploadBytes()),
			})
		default:
			panic(err)
		}
		return nil, false
	}
	req := &dedupRequest{mode: r.PostFormValue(api.FormMode)}
	fields, ok := formFields(req.mode)
	if !ok {
		s.sendError(rw, r, http.StatusBadRequest, &payload.Error{Message: fmt.Sprintf("invalid mode %q", req.mode)})
		return nil, false
	}
	if req.mode == "" {
		req.mode = api.ModeMerge
	}
	for _, field := range fields {
		tbl, ok := s.readUpload(rw, r, c, field)
		if !ok {
			return nil, false
		}
		req.tables = append(req.tables, tbl)
	}

	fullRow := c.FullRow()
	if v := r.PostFormValue(api.FormFullRow); v != "" {
		fullRow, err = parseBoolField(v)
		if err != nil {
			s.sendError(rw, r, http.StatusBadRequest, &payload.Error{Message: fmt.Sprintf("invalid %s value %q", api.FormFullRow, v)})
			return nil, false
		}
	}
	key := slice.SplitNonEmpty(r.PostFormValue(api.FormKey), ",")
	if len(key) == 0 {
		key = c.DedupKey()
	}
	req.opts = []dedup.Option{dedup.WithLogger(s.logger)}
	if fullRow {
		req.opts = append(req.opts, dedup.WithFullRow())
	} else if len(key) > 0 {
		req.opts = append(req.opts, dedup.WithKey(key...))
	}
	if !c.AllowNoCommonColumns() {
		req.opts = append(req.opts, dedup.WithStrictColumns())
	}
	return req, true
}

// run deduplicates the uploaded tables. It replies with an error and returns
// false when the tables cannot be deduplicated as requested.
func (s *Server) run(rw http.ResponseWriter, r *http.Request, req *dedupRequest) (*dedup.Result, bool) {
	var (
		res *dedup.Result
		err error
	)
	if req.mode == api.ModeDedup {
		res, err = dedup.Single(req.tables[0], req.opts...)
	} else {
		res, err = dedup.Merge(req.tables[0], req.tables[1], req.opts...)
	}
	if err != nil {
		if errors.Is(err, dedup.ErrNoCommonColumns) || errors.Is(err, dedup.ErrKeyNotFound) {
			s.sendError(rw, r, http.StatusBadRequest, &payload.Error{Message: err.Error()})
			return nil, false
		}
		panic(err)
	}
	return res, true
}
