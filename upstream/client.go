package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

const (
	defaultTimeout  = 20 * time.Second
	maxResponseSize = 256 * 1024
)

// TokenSource returns the current access token for a request, or "" when
// the request should go out unauthenticated (login and public agent
// registration are reachable without a token). It must observe a
// consistent session snapshot per call.
type TokenSource func(ctx context.Context) string

// AuthFailureHook is invoked once per request that the booking API rejects
// with 401. It carries the global side effect (forced sign-out); the
// original error still propagates to the caller afterwards.
type AuthFailureHook func(ctx context.Context)

// Client is the single network egress point for every resource service.
// It attaches the bearer credential, classifies responses, and escalates
// authorization failures. It never refreshes tokens on its own: refresh is
// an explicit operation that lives outside this pipeline, which keeps
// concurrent 401s from turning into retry storms.
type Client struct {
	baseURL       string
	httpClient    *http.Client
	tokens        TokenSource
	onAuthFailure AuthFailureHook
}

// Option defines a function type to modify the Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client (primarily for tests).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTokenSource sets where the bearer credential is read from.
func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) {
		c.tokens = ts
	}
}

// WithAuthFailureHook registers the forced sign-out side effect.
func WithAuthFailureHook(hook AuthFailureHook) Option {
	return func(c *Client) {
		c.onAuthFailure = hook
	}
}

// New creates a Client rooted at the booking API base URL.
func New(baseURL string, opts ...Option) *Client {
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}

	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, body, out)
}

func (c *Client) Patch(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPatch, path, body, out)
}

func (c *Client) Delete(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodDelete, path, nil, out)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, "[Client.do] encode request body")
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+strings.TrimPrefix(path, "/"), reader)
	if err != nil {
		return errors.Wrap(err, "[Client.do] build request")
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.tokens != nil {
		if token := c.tokens(ctx); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// Transport errors are local to the caller and never sign the
		// operator out.
		return errors.Wrap(err, "[Client.do] api request failed")
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		// A connection dropped mid-body is a transport failure like any
		// other and never signs the operator out.
		return errors.Wrap(err, "[Client.do] read api response")
	}

	if resp.StatusCode == http.StatusUnauthorized {
		log.Debug().Str("method", method).Str("path", path).Msg("upstream rejected bearer credential")
		if c.onAuthFailure != nil {
			c.onAuthFailure(ctx)
		}
		return &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(respBody))}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(respBody))}
	}

	if out == nil || len(respBody) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return errors.Wrap(err, "[Client.do] parse api response")
	}
	return nil
}
