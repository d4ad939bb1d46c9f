// Package gateway is the single configured transport to the remote khata
// API. Every outgoing request is decorated with the CSRF header (when the
// cookie is present) and the stored bearer credential (when one exists). A
// 401 on any request clears the credential and fires the unauthorized hook;
// one expired token logs the whole client out. The client does not retry,
// back off, deduplicate, or cache.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/khatahub/khata-dashboard/internal/api/metrics"
	"github.com/khatahub/khata-dashboard/internal/core/domain"
	"github.com/khatahub/khata-dashboard/internal/credential"
)

const (
	csrfCookieName = "csrftoken"
	csrfHeader     = "X-CSRFToken"
	requestTimeout = 30 * time.Second
)

// Client issues JSON requests against the remote khata API.
type Client struct {
	httpClient *http.Client
	baseURL    *url.URL
	creds      credential.Store
	log        zerolog.Logger

	onUnauthorized func()
}

// New builds a Client for baseURL. The cookie jar holds whatever the remote
// service sets, csrftoken included.
func New(baseURL string, creds credential.Store, log zerolog.Logger) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("gateway: parse base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("gateway: base url %q must be absolute", baseURL)
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("gateway: cookie jar: %w", err)
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: requestTimeout,
			Jar:     jar,
		},
		baseURL: u,
		creds:   creds,
		log:     log,
	}, nil
}

// SetUnauthorizedHook registers fn to run whenever any request comes back
// 401, after the stored credential has been cleared.
func (c *Client) SetUnauthorizedHook(fn func()) {
	c.onUnauthorized = fn
}

func (c *Client) getJSON(ctx context.Context, endpoint, path string, result any) error {
	return c.doJSON(ctx, endpoint, http.MethodGet, path, nil, result)
}

func (c *Client) postJSON(ctx context.Context, endpoint, path string, body, result any) error {
	return c.doJSON(ctx, endpoint, http.MethodPost, path, body, result)
}

func (c *Client) putJSON(ctx context.Context, endpoint, path string, body, result any) error {
	return c.doJSON(ctx, endpoint, http.MethodPut, path, body, result)
}

func (c *Client) doJSON(ctx context.Context, endpoint, method, path string, body, result any) error {
	var bodyReader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("gateway %s: encode request: %w", endpoint, err)
		}
		bodyReader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL.String()+path, bodyReader)
	if err != nil {
		return fmt.Errorf("gateway %s: build request: %w", endpoint, err)
	}
	c.decorate(req)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	metrics.UpstreamRequestDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues(endpoint, "error").Inc()
		c.log.Debug().Err(err).Str("endpoint", endpoint).Msg("upstream request failed")
		return fmt.Errorf("gateway %s: %w", endpoint, domain.ErrUnreachable)
	}
	defer resp.Body.Close()
	metrics.UpstreamRequestsTotal.WithLabelValues(endpoint, strconv.Itoa(resp.StatusCode)).Inc()

	if resp.StatusCode == http.StatusUnauthorized {
		return c.handleUnauthorized(endpoint)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &domain.UpstreamError{
			StatusCode: resp.StatusCode,
			Detail:     extractDetail(resp.Body),
		}
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("gateway %s: decode response: %w", endpoint, err)
		}
	}
	return nil
}

// decorate applies the CSRF header and bearer credential. Both are
// independent and idempotent; order does not matter beyond happening before
// the request leaves.
func (c *Client) decorate(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())

	for _, ck := range c.httpClient.Jar.Cookies(c.baseURL) {
		if ck.Name == csrfCookieName && ck.Value != "" {
			req.Header.Set(csrfHeader, ck.Value)
			break
		}
	}

	if token, err := c.creds.Load(); err == nil && token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

// handleUnauthorized implements the global logout: credential gone,
// hook fired, regardless of which request triggered the 401.
func (c *Client) handleUnauthorized(endpoint string) error {
	metrics.UpstreamUnauthorizedTotal.Inc()
	if err := c.creds.Clear(); err != nil {
		c.log.Error().Err(err).Msg("failed to clear credential after 401")
	}
	c.log.Info().Str("endpoint", endpoint).Msg("upstream returned 401, session invalidated")
	if c.onUnauthorized != nil {
		c.onUnauthorized()
	}
	return fmt.Errorf("gateway %s: %w", endpoint, domain.ErrUnauthorized)
}

type errorEnvelope struct {
	Detail string `json:"detail"`
	Error  string `json:"error"`
}

// extractDetail pulls the human-readable message from an error body,
// preferring the DRF-style detail field.
func extractDetail(r io.Reader) string {
	var env errorEnvelope
	if err := json.NewDecoder(r).Decode(&env); err != nil {
		return ""
	}
	if env.Detail != "" {
		return env.Detail
	}
	return env.Error
}
