package specials

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/brooklinpub/brooklin/pkg/buildinfo"
	bkerrors "github.com/brooklinpub/brooklin/pkg/errors"
	"github.com/brooklinpub/brooklin/pkg/httputil"
	"github.com/brooklinpub/brooklin/pkg/observability"
)

const httpTimeout = 10 * time.Second

var (
	// ErrNotFound is returned when the requested special doesn't exist.
	ErrNotFound = errors.New("special not found")

	// ErrNetwork is returned for HTTP failures (timeouts, connection errors, 5xx responses).
	ErrNetwork = errors.New("network error")
)

// Client reads the specials API. Responses are cached and transient
// failures retried.
type Client struct {
	http    *http.Client
	cache   *httputil.Cache
	baseURL string
	headers map[string]string
	retry   func(context.Context, func() error) error
}

// NewClient creates a Client for the API rooted at baseURL. A nil cache
// disables caching.
func NewClient(baseURL string, cache *httputil.Cache) (*Client, error) {
	if err := bkerrors.ValidateURL(baseURL); err != nil {
		return nil, err
	}
	if cache == nil {
		cache = httputil.NewCache(nil, 0)
	}
	return &Client{
		http:    &http.Client{Timeout: httpTimeout},
		cache:   cache.Namespace("specials:"),
		baseURL: strings.TrimRight(baseURL, "/"),
		headers: map[string]string{
			"Accept":     "application/json",
			"User-Agent": "brooklin/" + buildinfo.Version,
		},
		retry: httputil.RetryWithBackoff,
	}, nil
}

// BaseURL returns the API root the client talks to.
func (c *Client) BaseURL() string { return c.baseURL }

// List fetches every special.
func (c *Client) List(ctx context.Context, refresh bool) ([]Special, error) {
	var list []Special
	err := c.cached(ctx, "all", refresh, &list, func() error {
		return c.get(ctx, "/specials", &list)
	})
	return list, err
}

// Active fetches the specials running right now.
func (c *Client) Active(ctx context.Context, refresh bool) ([]Special, error) {
	var list []Special
	err := c.cached(ctx, "active", refresh, &list, func() error {
		return c.get(ctx, "/specials/active", &list)
	})
	return list, err
}

// Get fetches one special by id. The id is validated before it is placed
// in the request path.
func (c *Client) Get(ctx context.Context, id string, refresh bool) (*Special, error) {
	if err := bkerrors.ValidateSpecialID(id); err != nil {
		return nil, err
	}
	var s Special
	err := c.cached(ctx, "id:"+id, refresh, &s, func() error {
		return c.get(ctx, "/specials/"+url.PathEscape(id), &s)
	})
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// cached retrieves a value from cache or executes fetch and caches the result.
func (c *Client) cached(ctx context.Context, key string, refresh bool, v any, fetch func() error) error {
	if !refresh {
		if ok, _ := c.cache.Get(ctx, key, v); ok {
			return nil
		}
	}
	if err := c.retry(ctx, fetch); err != nil {
		return err
	}
	_ = c.cache.Set(ctx, key, v)
	return nil
}

func (c *Client) get(ctx context.Context, path string, v any) error {
	body, err := c.doRequest(ctx, path)
	if err != nil {
		return err
	}
	defer body.Close()
	if err := json.NewDecoder(body).Decode(v); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

func (c *Client) doRequest(ctx context.Context, path string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}

	hooks := observability.HTTP()
	host := req.URL.Host
	hooks.OnRequest(ctx, req.Method, host, path)
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		hooks.OnError(ctx, req.Method, host, path, err)
		return nil, httputil.Retryable(fmt.Errorf("%w: %v", ErrNetwork, err))
	}
	hooks.OnResponse(ctx, req.Method, host, path, resp.StatusCode, time.Since(start))

	if err := checkStatus(resp.StatusCode); err != nil {
		resp.Body.Close()
		return nil, err
	}
	return resp.Body, nil
}

func checkStatus(code int) error {
	switch {
	case code == http.StatusOK:
		return nil
	case code == http.StatusNotFound:
		return ErrNotFound
	case code >= 500:
		return httputil.Retryable(fmt.Errorf("%w: status %d", ErrNetwork, code))
	default:
		return fmt.Errorf("%w: status %d", ErrNetwork, code)
	}
}
