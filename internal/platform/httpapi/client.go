package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"lifeos/internal/platform/config"
	apperrors "lifeos/internal/platform/errors"
)

// Client is the single transport used by every endpoint adapter.
type Client struct {
	base    string
	headers map[string]string
	http    *http.Client
	logger  *zap.Logger
}

func New(cfg config.APIConfig, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	headers := make(map[string]string, len(cfg.Headers))
	for k, v := range cfg.Headers {
		headers[k] = v
	}
	return &Client{
		base:    normalizeBase(cfg.BaseURL),
		headers: headers,
		http:    &http.Client{Timeout: cfg.Timeout},
		logger:  logger.Named("http"),
	}
}

// WithHTTPClient swaps the underlying client, used by tests.
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	c.http = hc
	return c
}

func normalizeBase(base string) string {
	base = strings.TrimSpace(base)
	if len(base) > 1 && strings.HasSuffix(base, "/") {
		return strings.TrimRight(base, "/")
	}
	return base
}

// URL joins path and query onto the configured base.
func (c *Client) URL(path string, query url.Values) string {
	u := c.base + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

// Do sends a JSON request. body may be nil; out may be nil when the response
// is not needed.
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.URL(path, query), reader)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.send(req, out)
}

// File is a binary part of a multipart upload.
type File struct {
	Field string
	Name  string
	Data  io.Reader
}

// Upload posts multipart/form-data. The Content-Type carries the boundary, so
// it is never forced to JSON here.
func (c *Client) Upload(ctx context.Context, path string, fields map[string]string, file File, out any) error {
	buf := &bytes.Buffer{}
	mw := multipart.NewWriter(buf)
	part, err := mw.CreateFormFile(file.Field, filepath.Base(file.Name))
	if err != nil {
		return fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, file.Data); err != nil {
		return fmt.Errorf("copy upload: %w", err)
	}
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			return fmt.Errorf("write field %s: %w", k, err)
		}
	}
	if err := mw.Close(); err != nil {
		return fmt.Errorf("close multipart: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL(path, nil), buf)
	if err != nil {
		return fmt.Errorf("build upload %s: %w", path, err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return c.send(req, out)
}

func (c *Client) send(req *http.Request, out any) error {
	for k, v := range c.headers {
		if req.Header.Get(k) == "" {
			req.Header.Set(k, v)
		}
	}
	started := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Debug("request failed",
			zap.String("method", req.Method),
			zap.String("path", req.URL.Path),
			zap.Error(err))
		if ctxErr := req.Context().Err(); ctxErr != nil {
			return ctxErr
		}
		return fmt.Errorf("%w: %s %s: %v", apperrors.ErrTransport, req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	c.logger.Debug("request",
		zap.String("method", req.Method),
		zap.String("path", req.URL.Path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("took", time.Since(started)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(resp.Body)
		return &apperrors.HTTPError{Status: resp.StatusCode, Body: strings.TrimSpace(string(raw))}
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("decode %s %s: %w", req.Method, req.URL.Path, err)
	}
	return nil
}
