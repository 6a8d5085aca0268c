// Package resource is the HTTP client for the external resource server.
//
// Reads are plain GETs. Every mutating call first fetches a CSRF token from
// the server and echoes it in the X-XSRF-Token header, together with any
// cookies the token response set.
package resource

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
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

const (
	// CSRFHeaderName is the header the resource server expects on mutating calls.
	CSRFHeaderName = "X-XSRF-Token"
	// DefaultCSRFPath is the token endpoint relative to the base URL.
	DefaultCSRFPath = "/csrf"

	maxErrorBody = 4 << 10
)

// StatusError is returned for any non-2xx response.
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: unexpected status %d", e.Method, e.Path, e.StatusCode)
}

// StatusCode returns the HTTP status of a *StatusError in err's chain, or 0.
func StatusCode(err error) int {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode
	}
	return 0
}

// Client talks JSON to one resource server base URL.
type Client struct {
	baseURL  string
	csrfPath string
	http     *http.Client
	tracer   trace.Tracer
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithCSRFPath overrides the token endpoint path.
func WithCSRFPath(path string) Option {
	return func(c *Client) {
		if path != "" {
			c.csrfPath = path
		}
	}
}

func NewClient(baseURL string, timeout time.Duration, opts ...Option) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	c := &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		csrfPath: DefaultCSRFPath,
		http:     &http.Client{Timeout: timeout},
		tracer:   otel.Tracer("recruitment-console/resource"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the server root this client targets.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// GetJSON issues a GET and decodes the JSON body into out.
func (c *Client) GetJSON(ctx context.Context, path string, query url.Values, out any) error {
	if len(query) > 0 {
		path = path + "?" + query.Encode()
	}
	req, err := c.newRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	return c.do(req, out)
}

// SendJSON encodes body as JSON and sends it with method after attaching a
// fresh CSRF token. out may be nil.
func (c *Client) SendJSON(ctx context.Context, method, path string, body any, out any) error {
	var payload io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s body: %w", method, path, err)
		}
		payload = bytes.NewReader(raw)
	}

	req, err := c.newRequest(ctx, method, path, payload)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	if err := c.attachCSRF(ctx, req); err != nil {
		return err
	}
	return c.do(req, out)
}

// Delete removes the resource at path.
func (c *Client) Delete(ctx context.Context, path string) error {
	return c.SendJSON(ctx, http.MethodDelete, path, nil, nil)
}

// Upload posts a single file as multipart/form-data under field.
func (c *Client) Upload(ctx context.Context, path, field, filename string, content io.Reader, out any) error {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile(field, filename)
	if err != nil {
		return fmt.Errorf("create multipart part: %w", err)
	}
	if _, err := io.Copy(part, content); err != nil {
		return fmt.Errorf("copy upload content: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("close multipart writer: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, path, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Accept", "application/json")

	if err := c.attachCSRF(ctx, req); err != nil {
		return err
	}
	return c.do(req, out)
}

// PostForm submits a url-encoded form with a CSRF token in both the header and
// the _csrf field, the shape a browser logout form would send.
func (c *Client) PostForm(ctx context.Context, path string, form url.Values) error {
	token, err := c.FetchCSRF(ctx)
	if err != nil {
		return err
	}
	if form == nil {
		form = url.Values{}
	}
	form.Set("_csrf", token.Value)

	req, err := c.newRequest(ctx, http.MethodPost, path, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	token.apply(req)
	return c.do(req, nil)
}

func (c *Client) attachCSRF(ctx context.Context, req *http.Request) error {
	token, err := c.FetchCSRF(ctx)
	if err != nil {
		return err
	}
	token.apply(req)
	return nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("build %s %s request: %w", method, path, err)
	}
	if token := AccessTokenFromContext(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req, nil
}

func (c *Client) do(req *http.Request, out any) error {
	ctx, span := c.tracer.Start(req.Context(), req.Method+" "+req.URL.Path,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", req.Method),
			attribute.String("url.full", req.URL.Redacted()),
		),
	)
	defer span.End()

	req = req.WithContext(ctx)
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	resp, err := c.http.Do(req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "request failed")
		return fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		span.SetStatus(codes.Error, resp.Status)
		return &StatusError{
			Method:     req.Method,
			Path:       req.URL.Path,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(body)),
		}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("decode %s %s response: %w", req.Method, req.URL.Path, err)
	}
	return nil
}
