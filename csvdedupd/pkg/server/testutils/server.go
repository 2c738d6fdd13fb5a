// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package server_testutils

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-logr/logr"
	"github.com/stretchr/testify/require"
	"github.com/wrgl/csvdedup/csvdedupd/pkg/server"
	apiclient "github.com/wrgl/csvdedup/pkg/api/client"
	"github.com/wrgl/csvdedup/pkg/conf"
	confmock "github.com/wrgl/csvdedup/pkg/conf/mock"
	"github.com/wrgl/csvdedup/pkg/results"
)

// Server runs a csvdedupd handler over httptest until the test ends
type Server struct {
	URL     string
	Results *results.Store
	Handler *server.Server
	confS   conf.Store
}

// NewServer starts a server using c, or conf.Default() if c is nil
func NewServer(t *testing.T, c *conf.Config, opts ...server.ServerOption) *Server {
	t.Helper()
	if c == nil {
		c = conf.Default()
	}
	rs, err := results.NewStore(c.ResultTTL(), logr.Discard())
	require.NoError(t, err)
	s := &Server{
		Results: rs,
		confS:   confmock.NewStore(c),
	}
	s.Handler = server.NewServer(
		server.RootPathPattern(c.RootPath()),
		func(r *http.Request) *conf.Config {
			c, err := s.confS.Open()
			if err != nil {
				panic(err)
			}
			return c
		},
		rs,
		opts...,
	)
	ts := httptest.NewServer(s.Handler)
	s.URL = ts.URL
	t.Cleanup(func() {
		ts.Close()
		require.NoError(t, rs.Close())
	})
	return s
}

// NewClient returns a client for the server, rooted at the configured root
// path
func (s *Server) NewClient(t *testing.T) *apiclient.Client {
	t.Helper()
	c, err := s.confS.Open()
	require.NoError(t, err)
	cli, err := apiclient.NewClient(s.URL+c.RootPath(), logr.Discard())
	require.NoError(t, err)
	return cli
}
