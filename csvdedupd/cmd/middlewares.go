// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package csvdedupd

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/go-logr/logr"
	csvdedupdutils "github.com/wrgl/csvdedup/csvdedupd/pkg/utils"
)

type loggingMiddleware struct {
	handler http.Handler
	logger  logr.Logger
}

func (h *loggingMiddleware) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	start := time.Now()
	rec := csvdedupdutils.NewStatusRecorder(rw)
	h.handler.ServeHTTP(rec, r)
	h.logger.Info("request",
		"method", r.Method,
		"uri", r.URL.RequestURI(),
		"status", rec.Status,
		"duration", time.Since(start).String(),
	)
}

func LoggingMiddleware(logger logr.Logger) csvdedupdutils.Middleware {
	return func(handler http.Handler) http.Handler {
		return &loggingMiddleware{handler: handler, logger: logger}
	}
}

type recoveryMiddleware struct {
	handler http.Handler
	logger  logr.Logger
}

func (h *recoveryMiddleware) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	defer func() {
		if v := recover(); v != nil {
			h.logger.Error(fmt.Errorf("%v", v), "panic (recovered)", "stack", string(debug.Stack()))
			http.Error(rw, "internal server error", http.StatusInternalServerError)
		}
	}()
	h.handler.ServeHTTP(rw, r)
}

func RecoveryMiddleware(logger logr.Logger) csvdedupdutils.Middleware {
	return func(handler http.Handler) http.Handler {
		return &recoveryMiddleware{handler: handler, logger: logger}
	}
}
