package connection

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/yndnr/yggauth-go/internal/infra/buildinfo"
)

// DefaultTimeout bounds a single request when the caller sets none.
const DefaultTimeout = 10 * time.Second

// APIError is a non-2xx response decoded from the server's error body.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	switch {
	case e.Code != "" && e.Message != "":
		return fmt.Sprintf("[%s] %s", e.Code, e.Message)
	case e.Message != "":
		return e.Message
	default:
		return fmt.Sprintf("request failed with status %d", e.Status)
	}
}

// IsStatus reports whether err is an APIError with the given status.
func IsStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == status
}

// HTTPClient provides HTTP communication with the server.
type HTTPClient struct {
	baseURL   string
	client    *http.Client
	userAgent string
}

// ClientOption configures an HTTPClient.
type ClientOption func(*HTTPClient)

// WithTLSConfig sets the TLS configuration used for https servers.
func WithTLSConfig(cfg *tls.Config) ClientOption {
	return func(c *HTTPClient) {
		c.client.Transport = &http.Transport{
			Proxy:           http.ProxyFromEnvironment,
			TLSClientConfig: cfg,
		}
	}
}

// NewHTTPClient creates a client for server. A bare host:port gets an
// http:// scheme.
func NewHTTPClient(server string, timeout time.Duration, opts ...ClientOption) *HTTPClient {
	baseURL := strings.TrimRight(server, "/")
	if !strings.HasPrefix(baseURL, "http://") && !strings.HasPrefix(baseURL, "https://") {
		baseURL = "http://" + baseURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	c := &HTTPClient{
		baseURL:   baseURL,
		client:    &http.Client{Timeout: timeout},
		userAgent: buildinfo.UserAgent("yggauth-cli"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the base URL of the client.
func (c *HTTPClient) BaseURL() string {
	return c.baseURL
}

// Get performs a GET request.
func (c *HTTPClient) Get(ctx context.Context, path, bearer string) (*http.Response, error) {
	return c.Do(ctx, http.MethodGet, path, nil, bearer)
}

// Post performs a POST request with a JSON body.
func (c *HTTPClient) Post(ctx context.Context, path string, body any, bearer string) (*http.Response, error) {
	return c.Do(ctx, http.MethodPost, path, body, bearer)
}

// Delete performs a DELETE request.
func (c *HTTPClient) Delete(ctx context.Context, path, bearer string) (*http.Response, error) {
	return c.Do(ctx, http.MethodDelete, path, nil, bearer)
}

// Do sends body as JSON when non-nil and adds a bearer token when set.
func (c *HTTPClient) Do(ctx context.Context, method, path string, body any, bearer string) (*http.Response, error) {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	return resp, nil
}

// ParseResponse closes resp.Body and decodes it into target. A 204, or a
// nil target, skips decoding. Status codes of 400 and above become
// *APIError.
func ParseResponse(resp *http.Response, target any) error {
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return decodeError(resp)
	}
	if target == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("parse response: %w", err)
	}
	return nil
}

func decodeError(resp *http.Response) error {
	var body struct {
		Error        string `json:"error"`
		ErrorMessage string `json:"errorMessage"`
		Message      string `json:"message"`
	}
	apiErr := &APIError{Status: resp.StatusCode}
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil {
		apiErr.Code = body.Error
		apiErr.Message = body.ErrorMessage
		if apiErr.Message == "" {
			apiErr.Message = body.Message
		}
	}
	return apiErr
}
