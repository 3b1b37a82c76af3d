// Package apiclient is the HTTP plumbing between this front-end and the
// QualifAIze backend API. Every call returns a normalized Response;
// transport-level failures are returned as a *TransportError instead so
// callers can tell "completed with a failure status" apart from "could
// not be completed".
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"qualifaize-web/internal/config"
)

// TokenSource supplies the bearer token of the session bound to the
// request context, if any. Implemented by the session store.
type TokenSource interface {
	Token(ctx context.Context) (string, bool)
}

type Client struct {
	baseURL      string
	basePath     string
	bearerPrefix string
	successMin   int
	successMax   int
	timeout      time.Duration
	httpClient   *http.Client
	tokens       TokenSource
}

func New(cfg *config.Config, tokens TokenSource) *Client {
	return &Client{
		baseURL:      strings.TrimRight(cfg.BackendBaseURL, "/"),
		basePath:     strings.Trim(cfg.BackendBasePath, "/"),
		bearerPrefix: cfg.BearerPrefix,
		successMin:   cfg.HTTPSuccessMin,
		successMax:   cfg.HTTPSuccessMax,
		timeout:      cfg.RequestTimeout,
		httpClient:   &http.Client{Timeout: cfg.RequestTimeout},
		tokens:       tokens,
	}
}

// Response is the uniform shape every backend call resolves to,
// regardless of endpoint.
type Response struct {
	Success    bool
	StatusCode int
	Data       any
	Error      string
	Headers    http.Header

	raw []byte
}

// IsSuccess reports whether the transport succeeded and the status code
// falls in the configured [min, max) success range.
func (r Response) IsSuccess() bool {
	return r.Success
}

// Decode unmarshals the raw response body into a typed DTO. This is the
// single place loose backend JSON turns into the canonical internal
// schema.
func (r Response) Decode(v any) error {
	if len(r.raw) == 0 {
		return fmt.Errorf("empty response body")
	}
	return json.Unmarshal(r.raw, v)
}

type failureKind string

const (
	failureTimeout    failureKind = "timeout"
	failureConnection failureKind = "connection"
	failureRequest    failureKind = "request"
)

// TransportError means the request never completed: the connection was
// refused, timed out, or failed outright before a status code arrived.
type TransportError struct {
	Kind    failureKind
	URL     string
	Message string
	Err     error
}

func (e *TransportError) Error() string { return e.Message }

func (e *TransportError) Unwrap() error { return e.Err }

func (e *TransportError) Timeout() bool { return e.Kind == failureTimeout }

func (c *Client) Get(ctx context.Context, endpoint string, params url.Values) (Response, error) {
	return c.do(ctx, http.MethodGet, endpoint, params, nil, "")
}

func (c *Client) Post(ctx context.Context, endpoint string, body any) (Response, error) {
	payload, err := encodeJSON(body)
	if err != nil {
		return Response{}, err
	}
	return c.do(ctx, http.MethodPost, endpoint, nil, payload, "application/json")
}

func (c *Client) Put(ctx context.Context, endpoint string, body any) (Response, error) {
	payload, err := encodeJSON(body)
	if err != nil {
		return Response{}, err
	}
	return c.do(ctx, http.MethodPut, endpoint, nil, payload, "application/json")
}

func (c *Client) Patch(ctx context.Context, endpoint string, params url.Values) (Response, error) {
	return c.do(ctx, http.MethodPatch, endpoint, params, nil, "application/json")
}

func (c *Client) Delete(ctx context.Context, endpoint string) (Response, error) {
	return c.do(ctx, http.MethodDelete, endpoint, nil, nil, "")
}

// Upload sends a multipart/form-data request with one file part plus
// plain form fields. The multipart writer owns the Content-Type header
// so the boundary survives intact.
func (c *Client) Upload(ctx context.Context, endpoint string, fields map[string]string, fileField string, filename string, file io.Reader) (Response, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile(fileField, filename)
	if err != nil {
		return Response{}, fmt.Errorf("create multipart file: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return Response{}, fmt.Errorf("copy upload data: %w", err)
	}

	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			return Response{}, fmt.Errorf("write form field %s: %w", key, err)
		}
	}

	if err := writer.Close(); err != nil {
		return Response{}, fmt.Errorf("close multipart writer: %w", err)
	}

	return c.do(ctx, http.MethodPost, endpoint, nil, body, writer.FormDataContentType())
}

func (c *Client) do(ctx context.Context, method string, endpoint string, params url.Values, body io.Reader, contentType string) (Response, error) {
	target := c.buildURL(endpoint)

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return Response{}, &TransportError{
			Kind:    failureRequest,
			URL:     target,
			Message: fmt.Sprintf("request failed: %v", err),
			Err:     err,
		}
	}

	if len(params) > 0 {
		req.URL.RawQuery = params.Encode()
	}

	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	if c.tokens != nil {
		if token, ok := c.tokens.Token(ctx); ok && token != "" {
			req.Header.Set("Authorization", c.bearerPrefix+" "+token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Response{}, c.classifyFailure(target, err)
	}
	defer resp.Body.Close()

	return c.handleResponse(resp)
}

func (c *Client) buildURL(endpoint string) string {
	endpoint = strings.TrimLeft(endpoint, "/")
	if c.basePath != "" {
		return c.baseURL + "/" + c.basePath + "/" + endpoint
	}
	return c.baseURL + "/" + endpoint
}

func (c *Client) handleResponse(resp *http.Response) (Response, error) {
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return Response{}, &TransportError{
			Kind:    failureRequest,
			URL:     resp.Request.URL.String(),
			Message: fmt.Sprintf("request failed: %v", err),
			Err:     err,
		}
	}

	var data any
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &data); err != nil {
			// Malformed JSON is never fatal; keep the body as opaque text.
			data = string(raw)
		}
	}

	success := resp.StatusCode >= c.successMin && resp.StatusCode < c.successMax

	out := Response{
		Success:    success,
		StatusCode: resp.StatusCode,
		Data:       data,
		Headers:    resp.Header,
		raw:        raw,
	}

	if !success {
		out.Error = extractError(data, resp.StatusCode)
	}

	return out, nil
}

// extractError pulls a human-readable message out of a structured error
// body, preferring "message" over "error", falling back to the bare
// status code.
func extractError(data any, statusCode int) string {
	if obj, ok := data.(map[string]any); ok {
		if msg, ok := obj["message"].(string); ok && msg != "" {
			return msg
		}
		if msg, ok := obj["error"].(string); ok && msg != "" {
			return msg
		}
		return fmt.Sprintf("HTTP %d", statusCode)
	}

	if text := http.StatusText(statusCode); text != "" {
		return fmt.Sprintf("HTTP %d: %s", statusCode, text)
	}
	return fmt.Sprintf("HTTP %d", statusCode)
}

func (c *Client) classifyFailure(target string, err error) *TransportError {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return &TransportError{
			Kind:    failureTimeout,
			URL:     target,
			Message: fmt.Sprintf("request timeout after %s", c.timeout),
			Err:     err,
		}
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return &TransportError{
			Kind:    failureConnection,
			URL:     target,
			Message: fmt.Sprintf("connection error to %s", target),
			Err:     err,
		}
	}

	return &TransportError{
		Kind:    failureRequest,
		URL:     target,
		Message: fmt.Sprintf("request failed: %v", err),
		Err:     err,
	}
}

func encodeJSON(body any) (io.Reader, error) {
	if body == nil {
		return nil, nil
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encode request body: %w", err)
	}
	return bytes.NewReader(payload), nil
}
