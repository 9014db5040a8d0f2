// Package onet is a client for the O*NET Web Services v2 API.
package onet

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"onetexplorer/internal/httpx"
	"onetexplorer/internal/logging"

	"go.uber.org/zap"
)

var (
	ErrUnauthorized   = errors.New("authentication failed, check your O*NET API key")
	ErrNotFound       = errors.New("not found")
	ErrInvalidRequest = errors.New("invalid request")
)

// StatusError is returned for non-2xx responses. It unwraps to one of the
// sentinel errors when the status has a specific meaning.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	body := strings.TrimSpace(e.Body)
	if len(body) > 200 {
		body = body[:200] + "..."
	}
	return fmt.Sprintf("O*NET API returned %d: %s", e.StatusCode, body)
}

func (e *StatusError) Unwrap() error {
	switch e.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrUnauthorized
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusUnprocessableEntity:
		return ErrInvalidRequest
	}
	return nil
}

// Cache stores raw response bodies. Implementations decide on expiry.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Put(ctx context.Context, key string, body []byte) error
}

const (
	defaultWorkers = 4
	maxPages       = 100
)

type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	cache      Cache
	logger     *zap.Logger
	workers    int
}

type Option func(*Client)

func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) { cl.httpClient = c }
}

func WithCache(c Cache) Option {
	return func(cl *Client) { cl.cache = c }
}

func WithLogger(l *zap.Logger) Option {
	return func(cl *Client) { cl.logger = logging.OrNop(l) }
}

// WithWorkers bounds the number of concurrent requests of the industry scan.
func WithWorkers(n int) Option {
	return func(cl *Client) {
		if n > 0 {
			cl.workers = n
		}
	}
}

func New(baseURL, apiKey string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/") + "/",
		apiKey:     apiKey,
		httpClient: httpx.Client(),
		logger:     zap.NewNop(),
		workers:    defaultWorkers,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) endpointURL(endpoint string, params url.Values) string {
	u := c.baseURL + strings.TrimLeft(endpoint, "/")
	if len(params) > 0 {
		sep := "?"
		if strings.Contains(u, "?") {
			sep = "&"
		}
		u += sep + params.Encode()
	}
	return u
}

// getRaw fetches an endpoint relative to the base URL, consulting the cache
// first.
func (c *Client) getRaw(ctx context.Context, endpoint string, params url.Values) ([]byte, error) {
	apiURL := c.endpointURL(endpoint, params)
	if c.cache != nil {
		body, ok, err := c.cache.Get(ctx, apiURL)
		if err != nil {
			c.logger.Warn("onet cache read failed", zap.String("url", apiURL), zap.Error(err))
		} else if ok {
			c.logger.Debug("onet cache hit", zap.String("url", apiURL))
			return body, nil
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("X-API-Key", c.apiKey)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", httpx.UserAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", endpoint, err)
	}
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	if c.cache != nil {
		if err := c.cache.Put(ctx, apiURL, body); err != nil {
			c.logger.Warn("onet cache write failed", zap.String("url", apiURL), zap.Error(err))
		}
	}
	return body, nil
}

func (c *Client) get(ctx context.Context, endpoint string, params url.Values, out any) error {
	body, err := c.getRaw(ctx, endpoint, params)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("parsing %s: %w", endpoint, err)
	}
	return nil
}

// page is the envelope of paginated v2 endpoints; items live under a key
// that differs per endpoint.
type page struct {
	Next  string
	Items json.RawMessage
}

func decodePage(body []byte, listKey string) (page, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return page{}, err
	}
	var p page
	if next, ok := raw["next"]; ok {
		_ = json.Unmarshal(next, &p.Next)
	}
	p.Items = raw[listKey]
	return p, nil
}

// nextEndpoint turns an absolute "next" link into an endpoint relative to
// the base URL, so pagination stays on the configured host.
func (c *Client) nextEndpoint(next string) (string, error) {
	u, err := url.Parse(next)
	if err != nil {
		return "", fmt.Errorf("parsing next link %q: %w", next, err)
	}
	p := u.Path
	if base, err := url.Parse(c.baseURL); err == nil && base.Path != "/" {
		p = strings.TrimPrefix(p, strings.TrimRight(base.Path, "/"))
	}
	endpoint := strings.TrimLeft(p, "/")
	if u.RawQuery != "" {
		endpoint += "?" + u.RawQuery
	}
	return endpoint, nil
}

// fetchAllPages follows "next" links and decodes every item under listKey
// into T.
func fetchAllPages[T any](ctx context.Context, c *Client, endpoint, listKey string) ([]T, error) {
	var all []T
	seen := make(map[string]bool)
	pageNum := 1
	for endpoint != "" {
		if pageNum > maxPages {
			return nil, fmt.Errorf("fetching %s: more than %d pages", endpoint, maxPages)
		}
		if seen[endpoint] {
			break
		}
		seen[endpoint] = true
		c.logger.Debug("onet fetch page", zap.String("endpoint", endpoint), zap.Int("page", pageNum))

		body, err := c.getRaw(ctx, endpoint, nil)
		if err != nil {
			return nil, err
		}
		p, err := decodePage(body, listKey)
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", endpoint, err)
		}
		if len(p.Items) > 0 && string(p.Items) != "null" {
			var items []T
			if err := json.Unmarshal(p.Items, &items); err != nil {
				return nil, fmt.Errorf("parsing %s %s: %w", endpoint, listKey, err)
			}
			all = append(all, items...)
		}

		endpoint = ""
		if p.Next != "" {
			if endpoint, err = c.nextEndpoint(p.Next); err != nil {
				return nil, err
			}
		}
		pageNum++
	}
	return all, nil
}

func occupationPath(code string, parts ...string) string {
	p := "online/occupations/" + url.PathEscape(code)
	for _, part := range parts {
		p += "/" + part
	}
	return p
}
