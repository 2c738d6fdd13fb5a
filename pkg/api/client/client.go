// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package apiclient

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"strconv"
	"strings"

	"github.com/go-logr/logr"
	"github.com/google/uuid"
	"github.com/wrgl/csvdedup/pkg/api"
	"github.com/wrgl/csvdedup/pkg/api/payload"
	"golang.org/x/net/publicsuffix"
)

type ClientOption func(c *Client)

func WithHeader(header http.Header) ClientOption {
	return func(c *Client) {
		c.requestOptions = append(c.requestOptions, WithRequestHeader(header))
	}
}

func WithTransport(transport http.RoundTripper) ClientOption {
	return func(c *Client) {
		c.client.Transport = transport
	}
}

type RequestOption func(r *http.Request)

func WithRequestHeader(header http.Header) RequestOption {
	return func(r *http.Request) {
		for k, sl := range header {
			for _, v := range sl {
				r.Header.Add(k, v)
			}
		}
	}
}

func WithRequestCookies(cookies []*http.Cookie) RequestOption {
	return func(r *http.Request) {
		for _, c := range cookies {
			r.AddCookie(c)
		}
	}
}

type Client struct {
	client *http.Client
	// origin is the scheme + host name of remote server
	origin         string
	requestOptions []RequestOption
	logger         logr.Logger
}

func NewClient(origin string, logger logr.Logger, opts ...ClientOption) (*Client, error) {
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, err
	}
	c := &Client{
		client: &http.Client{
			Jar: jar,
		},
		origin: strings.TrimSuffix(origin, "/"),
		logger: logger.WithName("Client"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func parseJSONPayload(resp *http.Response, obj interface{}) (err error) {
	defer resp.Body.Close()
	if ct := resp.Header.Get("Content-Type"); !strings.Contains(ct, api.CTJSON) {
		return fmt.Errorf("unrecognized content type: %q", ct)
	}
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return
	}
	return json.Unmarshal(b, obj)
}

func readCSVPayload(resp *http.Response) ([]byte, error) {
	defer resp.Body.Close()
	if ct := resp.Header.Get("Content-Type"); !strings.Contains(ct, api.CTCSV) {
		return nil, fmt.Errorf("unrecognized content type: %q", ct)
	}
	return io.ReadAll(resp.Body)
}

func (c *Client) do(req *http.Request, opts []RequestOption) (*http.Response, error) {
	for _, opt := range c.requestOptions {
		opt(req)
	}
	for _, opt := range opts {
		opt(req)
	}
	c.logger.V(1).Info("request", "method", req.Method, "url", req.URL.String())
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	c.logger.V(1).Info("response", "method", req.Method, "url", req.URL.String(), "status", resp.StatusCode)
	if resp.StatusCode >= 400 {
		return nil, NewHTTPError(resp)
	}
	return resp, nil
}

func (c *Client) Request(method, path string, body io.Reader, headers map[string]string, opts ...RequestOption) (resp *http.Response, err error) {
	req, err := http.NewRequest(method, c.origin+path, body)
	if err != nil {
		return
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	return c.do(req, opts)
}

// FormFile is a file field of a multipart form
type FormFile struct {
	FileName string
	Content  io.Reader
}

func (c *Client) PostMultipartForm(path string, value map[string][]string, files map[string]FormFile, opts ...RequestOption) (*http.Response, error) {
	buf := bytes.NewBuffer(nil)
	w := multipart.NewWriter(buf)
	for k, sl := range value {
		for _, v := range sl {
			err := w.WriteField(k, v)
			if err != nil {
				return nil, err
			}
		}
	}
	for k, r := range files {
		if r.Content == nil {
			continue
		}
		fw, err := w.CreateFormFile(k, r.FileName)
		if err != nil {
			return nil, err
		}
		if _, err = io.Copy(fw, r.Content); err != nil {
			return nil, err
		}
	}
	err := w.Close()
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequest(http.MethodPost, c.origin+path, bytes.NewReader(buf.Bytes()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	return c.do(req, opts)
}

// DedupOptions are the optional fields of a dedup or export request
type DedupOptions struct {
	// Key lists key columns. Empty means the first column.
	Key []string

	// FullRow compares whole rows instead of Key
	FullRow bool
}

// dedupForm picks the mode from the number of files: one file is
// deduplicated alone, two files are merged.
func dedupForm(files []FormFile, opts *DedupOptions) (map[string][]string, map[string]FormFile, error) {
	value := map[string][]string{}
	m := map[string]FormFile{}
	switch len(files) {
	case 1:
		value[api.FormMode] = []string{api.ModeDedup}
		m[api.FormFile] = files[0]
	case 2:
		value[api.FormMode] = []string{api.ModeMerge}
		m[api.FormFile1] = files[0]
		m[api.FormFile2] = files[1]
	default:
		return nil, nil, fmt.Errorf("expected 1 or 2 files, got %d", len(files))
	}
	if opts != nil {
		if len(opts.Key) > 0 {
			value[api.FormKey] = []string{strings.Join(opts.Key, ",")}
		}
		if opts.FullRow {
			value[api.FormFullRow] = []string{strconv.FormatBool(true)}
		}
	}
	return value, m, nil
}

// Dedup uploads files, lets the server store the result and returns its
// preview
func (c *Client) Dedup(files []FormFile, opts *DedupOptions, reqOpts ...RequestOption) (*payload.PreviewResponse, error) {
	value, m, err := dedupForm(files, opts)
	if err != nil {
		return nil, err
	}
	reqOpts = append([]RequestOption{WithRequestHeader(http.Header{"Accept": []string{api.CTJSON}})}, reqOpts...)
	resp, err := c.PostMultipartForm(api.PathDedup, value, m, reqOpts...)
	if err != nil {
		return nil, err
	}
	pr := &payload.PreviewResponse{}
	if err = parseJSONPayload(resp, pr); err != nil {
		return nil, err
	}
	return pr, nil
}

// Download returns the CSV of a result stored by Dedup
func (c *Client) Download(id uuid.UUID, opts ...RequestOption) ([]byte, error) {
	resp, err := c.Request(http.MethodGet, api.ResultPath(id), nil, nil, opts...)
	if err != nil {
		return nil, err
	}
	return readCSVPayload(resp)
}

// Export uploads files and returns the deduplicated CSV directly
func (c *Client) Export(files []FormFile, opts *DedupOptions, reqOpts ...RequestOption) ([]byte, error) {
	value, m, err := dedupForm(files, opts)
	if err != nil {
		return nil, err
	}
	resp, err := c.PostMultipartForm(api.PathExport, value, m, reqOpts...)
	if err != nil {
		return nil, err
	}
	return readCSVPayload(resp)
}
