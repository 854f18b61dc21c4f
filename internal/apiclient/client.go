package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	apperrors "expense-console/internal/errors"
)

// TokenProvider supplies the persisted bearer token for outbound requests.
// Implementations must be side-effect free; the client calls Token on every
// request.
type TokenProvider interface {
	Token() string
}

type contextKey struct{}

var tokenContextKey contextKey

// ContextWithToken attaches a bearer token to ctx. Requests issued with that
// context use the token unless an in-memory override is set. This is how the
// per-request session credential reaches the shared client.
func ContextWithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenContextKey, token)
}

// TokenFromContext returns the token attached by ContextWithToken, or ""
func TokenFromContext(ctx context.Context) string {
	token, _ := ctx.Value(tokenContextKey).(string)
	return token
}

// Response is the normalized envelope every verb method returns.
type Response struct {
	Data   []byte
	Status int
	Header http.Header
}

// DecodeJSON unmarshals the response body into v
func (r *Response) DecodeJSON(v interface{}) error {
	if len(r.Data) == 0 {
		return fmt.Errorf("empty response body")
	}
	return json.Unmarshal(r.Data, v)
}

// Client issues authenticated requests against the backend expense API.
// It attaches the bearer token, normalizes responses, and converts transport
// failures into tagged errors. It never retries.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenProvider
	metrics    MetricsRecorder

	mu            sync.RWMutex
	overrideToken string
}

// Option configures a Client
type Option func(*Client)

// WithTokenProvider sets the persisted-token lookup used when no override
// token has been set
func WithTokenProvider(p TokenProvider) Option {
	return func(c *Client) { c.tokens = p }
}

// WithMetrics sets the metrics recorder for outbound requests
func WithMetrics(m MetricsRecorder) Option {
	return func(c *Client) { c.metrics = m }
}

// WithTimeout overrides the default 30 second request timeout
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// New creates a Client for the given base URL
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
		metrics:    noopMetrics{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetToken sets an in-memory token that takes precedence over the persisted
// token for every subsequent request. An empty string removes the override.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.overrideToken = token
	c.mu.Unlock()
}

// resolveToken returns the bearer token for the next request: the in-memory
// override first, then the request context, then the persisted token.
// Empty means the request goes out unauthenticated.
func (c *Client) resolveToken(ctx context.Context) string {
	c.mu.RLock()
	override := c.overrideToken
	c.mu.RUnlock()

	if override != "" {
		return override
	}
	if token := TokenFromContext(ctx); token != "" {
		return token
	}
	if c.tokens != nil {
		return c.tokens.Token()
	}
	return ""
}

// Get issues a GET request. query may be nil.
func (c *Client) Get(ctx context.Context, path string, query url.Values) (*Response, error) {
	return c.do(ctx, http.MethodGet, path, query, nil, "")
}

// Post issues a POST request with a JSON body. body may be nil.
func (c *Client) Post(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.doJSON(ctx, http.MethodPost, path, body)
}

// Put issues a PUT request with a JSON body
func (c *Client) Put(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.doJSON(ctx, http.MethodPut, path, body)
}

// Patch issues a PATCH request with a JSON body
func (c *Client) Patch(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.doJSON(ctx, http.MethodPatch, path, body)
}

// Delete issues a DELETE request. query may be nil.
func (c *Client) Delete(ctx context.Context, path string, query url.Values) (*Response, error) {
	return c.do(ctx, http.MethodDelete, path, query, nil, "")
}

// Upload issues a multipart POST. extraHeaders are applied after the defaults
// and may override them.
func (c *Client) Upload(ctx context.Context, path string, form map[string]io.Reader, extraHeaders map[string]string) (*Response, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for field, reader := range form {
		part, err := writer.CreateFormField(field)
		if err != nil {
			return nil, apperrors.NewTransport(0, "", err)
		}
		if _, err := io.Copy(part, reader); err != nil {
			return nil, apperrors.NewTransport(0, "", err)
		}
	}
	if err := writer.Close(); err != nil {
		return nil, apperrors.NewTransport(0, "", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, path, nil, &buf, writer.FormDataContentType())
	if err != nil {
		return nil, err
	}
	for key, value := range extraHeaders {
		req.Header.Set(key, value)
	}
	return c.send(req)
}

func (c *Client) doJSON(ctx context.Context, method, path string, body interface{}) (*Response, error) {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, apperrors.NewTransport(0, "", err)
		}
		reader = bytes.NewReader(encoded)
	}
	return c.do(ctx, method, path, nil, reader, "application/json")
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body io.Reader, contentType string) (*Response, error) {
	req, err := c.newRequest(ctx, method, path, query, body, contentType)
	if err != nil {
		return nil, err
	}
	return c.send(req)
}

func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, body io.Reader, contentType string) (*http.Request, error) {
	target := c.baseURL + "/" + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, apperrors.NewTransport(0, "", err)
	}

	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token := c.resolveToken(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req, nil
}

func (c *Client) send(req *http.Request) (*Response, error) {
	start := time.Now()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.RecordRequest(req.Method, 0, time.Since(start))
		return nil, apperrors.NewTransport(0, "", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		c.metrics.RecordRequest(req.Method, resp.StatusCode, time.Since(start))
		return nil, apperrors.NewTransport(resp.StatusCode, "", err)
	}

	c.metrics.RecordRequest(req.Method, resp.StatusCode, time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, apperrors.NewTransport(resp.StatusCode, apperrors.MessageFromBody(data), nil)
	}

	return &Response{
		Data:   data,
		Status: resp.StatusCode,
		Header: resp.Header,
	}, nil
}
