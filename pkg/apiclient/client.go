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

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/artem13815/hr/portal/pkg/logger"
)

const (
	defaultTimeout = 30 * time.Second
	maxBodyBytes   = 10 << 20
	tracerName     = "github.com/artem13815/hr/portal/pkg/apiclient"
)

// TokenSource yields the bearer token at send time. An empty token means anonymous.
type TokenSource interface {
	Token() string
}

// StaticToken is a fixed TokenSource.
type StaticToken string

func (s StaticToken) Token() string { return string(s) }

// Client is a thin JSON client for the HireSafe REST API.
type Client struct {
	BaseURL string
	httpDo  *http.Client
	tokens  TokenSource
	tracer  trace.Tracer
}

// Option configures the client.
type Option func(*Client)

// WithTimeout sets the per-call timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpDo.Timeout = d
		}
	}
}

// WithHTTPClient replaces the underlying http.Client (its Timeout is kept as set by the caller).
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.httpDo = h
		}
	}
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		httpDo:  &http.Client{Timeout: defaultTimeout},
		tracer:  otel.Tracer(tracerName),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// WithTokens returns a copy of the client that authenticates with ts.
// The transport is shared.
func (c *Client) WithTokens(ts TokenSource) *Client {
	cp := *c
	cp.tokens = ts
	return &cp
}

func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	if len(query) > 0 {
		path += "?" + query.Encode()
	}
	return c.Do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, http.MethodPost, path, body, out)
}

func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, http.MethodPut, path, body, out)
}

func (c *Client) Delete(ctx context.Context, path string, out any) error {
	return c.Do(ctx, http.MethodDelete, path, nil, out)
}

// Do sends one JSON request. body and out may be nil.
func (c *Client) Do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(data)
	}
	return c.send(ctx, method, path, reader, "application/json", out)
}

// PostMultipart uploads data as a single multipart file field.
func (c *Client) PostMultipart(ctx context.Context, path, field, filename string, data []byte, out any) error {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile(field, filename)
	if err != nil {
		return err
	}
	if _, err := part.Write(data); err != nil {
		return err
	}
	if err := mw.Close(); err != nil {
		return err
	}
	return c.send(ctx, http.MethodPost, path, &buf, mw.FormDataContentType(), out)
}

func (c *Client) endpoint(path string) string {
	return c.BaseURL + "/" + strings.TrimLeft(path, "/")
}

func (c *Client) send(ctx context.Context, method, path string, body io.Reader, contentType string, out any) (err error) {
	ctx, span := c.tracer.Start(ctx, method+" "+routeOf(path), trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()

	started := time.Now()
	status := 0
	defer func() {
		logger.APILog(method, path, status, time.Since(started), err)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
	}()

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(path), body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", contentType)
	}
	if c.tokens != nil {
		if tok := c.tokens.Token(); tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}
	requestID := logger.GetRequestID(ctx)
	if requestID == "" {
		requestID = uuid.NewString()
	}
	req.Header.Set("X-Request-ID", requestID)
	span.SetAttributes(
		attribute.String("http.request.method", method),
		attribute.String("url.path", routeOf(path)),
		attribute.String("request.id", requestID),
	)

	resp, err := c.httpDo.Do(req)
	if err != nil {
		return transportError(method, path, err)
	}
	defer resp.Body.Close()
	status = resp.StatusCode
	span.SetAttributes(attribute.Int("http.response.status_code", status))

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return transportError(method, path, err)
	}

	if status < 200 || status >= 300 {
		return &Error{
			Status:  status,
			Kind:    kindForStatus(status),
			Message: decodeMessage(status, data),
			Method:  method,
			Path:    path,
		}
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &Error{
			Status:  status,
			Kind:    KindServer,
			Message: "invalid response from server",
			Method:  method,
			Path:    path,
			Err:     err,
		}
	}
	return nil
}

func transportError(method, path string, err error) error {
	kind := KindNetwork
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		kind = KindTimeout
	}
	return &Error{
		Kind:    kind,
		Message: "request failed: " + string(kind),
		Method:  method,
		Path:    path,
		Err:     err,
	}
}

// routeOf strips the query so span names stay low-cardinality.
func routeOf(path string) string {
	if i := strings.IndexByte(path, '?'); i >= 0 {
		return path[:i]
	}
	return path
}
