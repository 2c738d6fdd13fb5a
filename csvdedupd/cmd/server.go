// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package csvdedupd

import (
	"context"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/go-logr/logr"
	apiserver "github.com/wrgl/csvdedup/csvdedupd/pkg/server"
	csvdedupdutils "github.com/wrgl/csvdedup/csvdedupd/pkg/utils"
	"github.com/wrgl/csvdedup/pkg/conf"
	conffs "github.com/wrgl/csvdedup/pkg/conf/fs"
	"github.com/wrgl/csvdedup/pkg/results"
)

type Server struct {
	srv      *http.Server
	cleanups []func()
	conf     atomic.Pointer[conf.Config]
	logger   logr.Logger
}

// NewServer reads config from cs and keeps watching it. override is applied
// to the initial config and to every reloaded one. The root path, port and
// timeouts are fixed once the server is created.
func NewServer(cs *conffs.Store, override func(c *conf.Config), logger logr.Logger) (*Server, error) {
	c, err := cs.Open()
	if err != nil {
		return nil, err
	}
	if override != nil {
		override(c)
	}
	rs, err := results.NewStore(c.ResultTTL(), logger.WithName("results"))
	if err != nil {
		return nil, err
	}
	s := &Server{
		srv: &http.Server{
			ReadTimeout:  time.Duration(c.Server.ReadTimeout),
			WriteTimeout: time.Duration(c.Server.WriteTimeout),
		},
		cleanups: []func(){
			func() { rs.Close() },
		},
		logger: logger,
	}
	s.conf.Store(c)
	err = cs.Watch(func(c *conf.Config) {
		if override != nil {
			override(c)
		}
		s.conf.Store(c)
		rs.SetTTL(c.ResultTTL())
		logger.Info("config reloaded")
	})
	if err != nil {
		rs.Close()
		return nil, err
	}
	s.cleanups = append(s.cleanups, func() { cs.Close() })
	handler := apiserver.NewServer(
		apiserver.RootPathPattern(c.RootPath()),
		func(r *http.Request) *conf.Config { return s.conf.Load() },
		rs,
		apiserver.WithLogger(logger.WithName("server")),
	)
	s.srv.Handler = csvdedupdutils.ApplyMiddlewares(
		handler,
		RecoveryMiddleware(logger),
		LoggingMiddleware(logger),
	)
	return s, nil
}

// Port is the port number from the initial config
func (s *Server) Port() int {
	return s.conf.Load().Server.Port
}

func (s *Server) Handler() http.Handler {
	return s.srv.Handler
}

func (s *Server) Start(addr string) error {
	s.srv.Addr = addr
	s.logger.Info("server started", "addr", addr)
	return s.srv.ListenAndServe()
}

func (s *Server) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	err := s.srv.Shutdown(ctx)
	for i := len(s.cleanups) - 1; i >= 0; i-- {
		s.cleanups[i]()
	}
	return err
}
