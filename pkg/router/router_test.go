// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package router

import (
	"io"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mockHandler(msg string) http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		rw.Write([]byte(msg))
	}
}

func assertResponse(t *testing.T, handler http.Handler, method, path string, status int, resp string) {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	require.Equal(t, status, rec.Result().StatusCode)
	b, err := io.ReadAll(rec.Result().Body)
	require.NoError(t, err)
	assert.Equal(t, resp, string(b))
}

func assertRedirect(t *testing.T, handler http.Handler, method, path string, status int, newPath string) {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	require.Equal(t, status, rec.Result().StatusCode)
	assert.Equal(t, newPath, rec.Result().Header.Get("Location"))
}

func TestRouter(t *testing.T) {
	for _, root := range []string{`^/my-root/`, `^/my-root`} {
		router := NewRouter(regexp.MustCompile(root), &Routes{
			Subs: []*Routes{
				{http.MethodGet, regexp.MustCompile(`^/$`), mockHandler("form"), nil},
				{http.MethodPost, regexp.MustCompile(`^/dedup/`), mockHandler("dedup"), nil},
				{http.MethodPost, regexp.MustCompile(`^/export/`), mockHandler("export"), nil},
				{"", regexp.MustCompile(`^/results/`), nil, []*Routes{
					{http.MethodGet, regexp.MustCompile(`^[0-9a-f-]{36}/`), mockHandler("download"), []*Routes{
						{http.MethodGet, regexp.MustCompile(`^preview/`), mockHandler("preview"), nil},
					}},
				}},
			},
		})

		assertResponse(t, router, http.MethodPost, "/", 404, "404 page not found\n")
		assertResponse(t, router, http.MethodGet, "/dedup/", 404, "404 page not found\n")
		assertResponse(t, router, http.MethodGet, "/my-root/", 200, "form")
		assertResponse(t, router, http.MethodPost, "/my-root/dedup/", 200, "dedup")
		assertResponse(t, router, http.MethodPost, "/my-root/export/", 200, "export")
		assertResponse(t, router, http.MethodGet, "/my-root/unknown/", 404, "404 page not found\n")
		assertResponse(t, router, http.MethodGet, "/my-root/results/"+uuid.New().String()+"/", 200, "download")
		assertResponse(t, router, http.MethodGet, "/my-root/results/"+uuid.New().String()+"/preview/", 200, "preview")
		assertResponse(t, router, http.MethodGet, "/my-root/results/abc/", 404, "404 page not found\n")

		// test redirect
		p := "/my-root/results/" + uuid.New().String()
		assertRedirect(t, router, http.MethodGet, p, 301, p+"/")
	}
}

func TestMethodNotAllowed(t *testing.T) {
	router := NewRouter(nil, &Routes{
		Subs: []*Routes{
			{http.MethodGet, regexp.MustCompile(`^/$`), mockHandler("form"), nil},
			{http.MethodPost, regexp.MustCompile(`^/dedup/`), mockHandler("dedup"), nil},
			{http.MethodPut, regexp.MustCompile(`^/dedup/`), mockHandler("put dedup"), nil},
		},
	})
	req := httptest.NewRequest(http.MethodGet, "/dedup/", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, "POST, PUT", rec.Header().Get("Allow"))

	assertResponse(t, router, http.MethodPost, "/", 405, "Method Not Allowed\n")
	assertResponse(t, router, http.MethodPut, "/dedup/", 200, "put dedup")
}

func TestRouterWithPrefix(t *testing.T) {
	router := NewRouter(nil, &Routes{
		Pat: regexp.MustCompile(`^/api/`),
		Subs: []*Routes{
			{http.MethodPost, regexp.MustCompile(`^dedup/`), mockHandler("dedup"), nil},
		},
	})
	assertResponse(t, router, http.MethodPost, "/api/dedup/", 200, "dedup")
	assertResponse(t, router, http.MethodPost, "/dedup/", 404, "404 page not found\n")
}
