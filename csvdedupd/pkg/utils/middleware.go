// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package csvdedupdutils

import "net/http"

type Middleware func(h http.Handler) http.Handler

func ApplyMiddlewares(handler http.Handler, middlewares ...Middleware) http.Handler {
	for _, m := range middlewares {
		handler = m(handler)
	}
	return handler
}

// StatusRecorder remembers the status code written through it
type StatusRecorder struct {
	http.ResponseWriter
	Status int
}

func NewStatusRecorder(rw http.ResponseWriter) *StatusRecorder {
	return &StatusRecorder{ResponseWriter: rw, Status: http.StatusOK}
}

func (r *StatusRecorder) WriteHeader(code int) {
	r.Status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *StatusRecorder) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}
