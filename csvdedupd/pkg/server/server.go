// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package server

import (
	"net/http"
	"regexp"
	"strings"

	"github.com/go-logr/logr"
	"github.com/google/uuid"
	"github.com/wrgl/csvdedup/pkg/api"
	"github.com/wrgl/csvdedup/pkg/conf"
	"github.com/wrgl/csvdedup/pkg/results"
	"github.com/wrgl/csvdedup/pkg/router"
)

var (
	patRoot    = regexp.MustCompile(`^/$`)
	patDedup   = regexp.MustCompile(`^/dedup/`)
	patExport  = regexp.MustCompile(`^/export/`)
	patResults = regexp.MustCompile(`^/results/`)
	patUUID    = regexp.MustCompile(`^[0-9a-f-]{36}/`)
)

type ServerOption func(s *Server)

func WithLogger(logger logr.Logger) ServerOption {
	return func(s *Server) {
		s.logger = logger
	}
}

// ConfGetter returns the config in effect for a request
type ConfGetter func(r *http.Request) *conf.Config

type ResultStore interface {
	Save(e *results.Entry) (uuid.UUID, error)
	Get(id uuid.UUID) (*results.Entry, error)
}

type Server struct {
	RootPath *regexp.Regexp
	getConf  ConfGetter
	results  ResultStore
	router   *router.Router
	logger   logr.Logger
	globs    *globCache
}

// RootPathPattern turns a configured root path such as "/tools" into the
// pattern expected by NewServer. It returns nil for an empty or "/" path.
func RootPathPattern(rootPath string) *regexp.Regexp {
	rootPath = strings.Trim(rootPath, "/")
	if rootPath == "" {
		return nil
	}
	return regexp.MustCompile("^/" + regexp.QuoteMeta(rootPath) + "/")
}

func NewServer(rootPath *regexp.Regexp, getConf ConfGetter, results ResultStore, opts ...ServerOption) *Server {
	s := &Server{
		RootPath: rootPath,
		getConf:  getConf,
		results:  results,
		logger:   logr.Discard(),
		globs:    &globCache{},
	}
	s.router = router.NewRouter(rootPath, &router.Routes{
		Subs: []*router.Routes{
			{
				Method:      http.MethodGet,
				Pat:         patRoot,
				HandlerFunc: s.handleForm,
			},
			{
				Method:      http.MethodPost,
				Pat:         patDedup,
				HandlerFunc: s.handleDedup,
			},
			{
				Method:      http.MethodPost,
				Pat:         patExport,
				HandlerFunc: s.handleExport,
			},
			{
				Pat: patResults,
				Subs: []*router.Routes{
					{
						Method:      http.MethodGet,
						Pat:         patUUID,
						HandlerFunc: s.handleDownload,
					},
				},
			},
		},
	})
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.WithName("server")
	return s
}

func (s *Server) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(rw, r)
}

// path prefixes p with the configured root path
func (s *Server) path(c *conf.Config, p string) string {
	return strings.TrimSuffix(c.RootPath(), "/") + p
}

func outputFileName(mode string) string {
	if mode == api.ModeDedup {
		return conf.SingleFileOutputName
	}
	return conf.TwoFileOutputName
}
