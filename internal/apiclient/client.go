// Package apiclient is the single request helper every screen uses to talk
// to the storefront REST backend. It attaches the bearer token, encodes JSON
// and multipart bodies, decodes JSON responses and turns failures into
// errors that map onto user-facing messages.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/flicky/club-eskimo-web/internal/dto"
)

const maxErrorBody = 64 << 10

var (
	// ErrNoSession is returned before any network call when an
	// authenticated request has no token.
	ErrNoSession = errors.New("no access token")
	// ErrSessionExpired matches backend 401 responses on authenticated calls.
	ErrSessionExpired = errors.New("session expired")
)

// APIError is a non-2xx backend response.
type APIError struct {
	StatusCode int
	Message    string
	// authenticated is set when the request carried a bearer token.
	authenticated bool
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend returned %d", e.StatusCode)
	}
	return fmt.Sprintf("backend returned %d: %s", e.StatusCode, e.Message)
}

func (e *APIError) Is(target error) bool {
	return target == ErrSessionExpired && e.authenticated && e.StatusCode == http.StatusUnauthorized
}

// UserMessage maps an error from this package onto the text shown to the
// user: the local unauthorized message, the backend's message when it sent
// one, or the caller's fallback.
func UserMessage(err error, fallback string) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, ErrNoSession) {
		return "Unauthorized: No access token"
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

// Request describes one backend call.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	// Token is required when Auth is set.
	Auth  bool
	Token string
	// Body is JSON-encoded. Ignored when Multipart is set.
	Body      any
	Multipart *Multipart
}

type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	log        *slog.Logger
}

// New builds a client for the backend at baseURL. A nil httpClient gets a
// traced client with no timeout of its own.
func New(baseURL string, httpClient *http.Client, log *slog.Logger) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if httpClient == nil {
		httpClient = NewHTTPClient(0)
	}
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Client{baseURL: u, httpClient: httpClient, log: log}, nil
}

// NewHTTPClient returns an http.Client whose transport propagates trace
// context to the backend.
func NewHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout:   timeout,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}
}

// Do sends req and decodes a successful JSON body into out (when non-nil).
func (c *Client) Do(ctx context.Context, req Request, out any) error {
	if req.Auth && req.Token == "" {
		return ErrNoSession
	}

	body, contentType, err := c.encodeBody(req)
	if err != nil {
		return err
	}

	target := c.baseURL.JoinPath(req.Path)
	if len(req.Query) > 0 {
		target.RawQuery = req.Query.Encode()
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, target.String(), body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")
	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}
	if req.Auth {
		httpReq.Header.Set("Authorization", "Bearer "+req.Token)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("%s %s: %w", req.Method, req.Path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := decodeError(resp)
		apiErr.authenticated = req.Auth
		c.log.Warn("backend request failed",
			"method", req.Method, "path", req.Path, "status", resp.StatusCode, "message", apiErr.Message)
		return apiErr
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", req.Method, req.Path, err)
	}
	return nil
}

func (c *Client) encodeBody(req Request) (io.Reader, string, error) {
	if req.Multipart != nil {
		return req.Multipart.encode()
	}
	if req.Body == nil {
		return nil, "", nil
	}
	data, err := json.Marshal(req.Body)
	if err != nil {
		return nil, "", fmt.Errorf("encode body: %w", err)
	}
	return bytes.NewReader(data), "application/json", nil
}

// decodeError pulls the message out of an error body. JSON bodies use their
// "message" field; plain-text bodies are used verbatim.
func decodeError(resp *http.Response) *APIError {
	apiErr := &APIError{StatusCode: resp.StatusCode}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil || len(bytes.TrimSpace(data)) == 0 {
		return apiErr
	}

	var body dto.ErrorResponse
	if json.Valid(data) {
		if json.Unmarshal(data, &body) == nil {
			apiErr.Message = strings.TrimSpace(body.Message)
			return apiErr
		}
		// A bare JSON string is still a message.
		var s string
		if json.Unmarshal(data, &s) == nil {
			apiErr.Message = strings.TrimSpace(s)
		}
		return apiErr
	}
	if !strings.Contains(resp.Header.Get("Content-Type"), "html") {
		apiErr.Message = strings.TrimSpace(string(data))
	}
	return apiErr
}
