// Package authclient is the gateway's delegate to the auth service. It is a
// pure translation layer: remote statuses and bodies propagate verbatim,
// while transport failures surface as UpstreamUnavailable so a dead auth
// service is never mistaken for missing credentials.
package authclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"vidconv/internal/apperr"
	"vidconv/internal/token"
)

// Client is the local authorization decision surface used by the gateway.
type Client interface {
	// Login forwards the Basic Authorization header to the auth service and
	// returns the issued token string.
	Login(ctx context.Context, authorization string) (string, error)
	// Validate forwards the Bearer Authorization header and returns the
	// decoded claims.
	Validate(ctx context.Context, authorization string) (*token.Claims, error)
}

// HTTPClient implements Client over the auth service's HTTP surface.
type HTTPClient struct {
	httpClient *http.Client
	baseURL    string
}

// New creates a delegate for the auth service at address (host:port or URL).
// Every call is bounded by the given timeout.
func New(address string, timeout time.Duration) *HTTPClient {
	base := address
	if !strings.HasPrefix(base, "http://") && !strings.HasPrefix(base, "https://") {
		base = "http://" + base
	}
	return &HTTPClient{
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		baseURL: strings.TrimRight(base, "/"),
	}
}

var _ Client = (*HTTPClient)(nil)

// Login forwards credentials to POST /login. A missing header fails locally
// without a round trip.
func (c *HTTPClient) Login(ctx context.Context, authorization string) (string, error) {
	if authorization == "" {
		return "", apperr.Newf(apperr.KindMissingCredentials, "no authorization header")
	}

	status, body, err := c.post(ctx, "/login", authorization)
	if err != nil {
		return "", err
	}
	if status != http.StatusOK {
		return "", apperr.Remote(status, body)
	}
	return body, nil
}

// Validate forwards the bearer header to POST /validate and decodes the
// claims payload. A missing header fails locally without a round trip.
func (c *HTTPClient) Validate(ctx context.Context, authorization string) (*token.Claims, error) {
	if authorization == "" {
		return nil, apperr.Newf(apperr.KindMissingCredentials, "no authorization header")
	}

	status, body, err := c.post(ctx, "/validate", authorization)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, apperr.Remote(status, body)
	}

	claims := &token.Claims{}
	if err := json.Unmarshal([]byte(body), claims); err != nil {
		return nil, apperr.Newf(apperr.KindInternal, "decode claims: %v", err)
	}
	return claims, nil
}

func (c *HTTPClient) post(ctx context.Context, path, authorization string) (int, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, nil)
	if err != nil {
		return 0, "", apperr.New(apperr.KindInternal, fmt.Errorf("build request: %w", err))
	}
	req.Header.Set("Authorization", authorization)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, "", apperr.New(apperr.KindUpstreamUnavailable, fmt.Errorf("auth service unreachable: %w", err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, "", apperr.New(apperr.KindUpstreamUnavailable, fmt.Errorf("read auth response: %w", err))
	}
	return resp.StatusCode, string(body), nil
}
