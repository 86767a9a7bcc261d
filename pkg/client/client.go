// Package client is a typed Go client for the BoxRec proxy API.
package client

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultTimeout  = 30 * time.Second
	DefaultTopLimit = 10

	sessionHeader = "X-Session-Token"
)

type Config struct {
	BaseURL string
	Timeout time.Duration
}

// APIError is a non-2xx answer from the API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("boxrec api: %d %s", e.StatusCode, e.Message)
}

type Client struct {
	http *resty.Client

	mu      sync.RWMutex
	session string
}

// New creates a client. Cookies set by the API are kept in the client's jar;
// the session token is also tracked so it can be saved and restored.
func New(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		http: resty.New().
			SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
			SetTimeout(timeout).
			SetHeader("Accept", "application/json"),
	}
}

// Session returns the token of the last successful Authenticate or SetSession.
func (c *Client) Session() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.session
}

func (c *Client) SetSession(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.session = token
}

func (c *Client) Authenticate(ctx context.Context, username, password string) (*AuthResult, error) {
	var out AuthResult
	resp, err := c.do(ctx, resty.MethodPost, "/api/auth", map[string]string{
		"username": username,
		"password": password,
	}, &out)
	if err != nil {
		return nil, err
	}
	if token := resp.Header().Get(sessionHeader); token != "" {
		c.SetSession(token)
	}
	return &out, nil
}

func (c *Client) GetBoxer(ctx context.Context, id string) (*BoxerProfile, error) {
	var out BoxerProfile
	if _, err := c.do(ctx, resty.MethodGet, "/api/boxer/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) SearchBoxers(ctx context.Context, query string) ([]SearchResult, error) {
	var out []SearchResult
	if _, err := c.do(ctx, resty.MethodGet, "/api/search?query="+url.QueryEscape(query), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetRatings(ctx context.Context, division string) (*RatingsResponse, error) {
	var out RatingsResponse
	if _, err := c.do(ctx, resty.MethodGet, "/api/ratings/"+url.PathEscape(division), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetBatchBoxers fetches all ids concurrently. Results keep the order of ids;
// the first failure cancels the rest and is returned.
func (c *Client) GetBatchBoxers(ctx context.Context, ids []string) ([]*BoxerProfile, error) {
	out := make([]*BoxerProfile, len(ids))
	g, ctx := errgroup.WithContext(ctx)
	for i, id := range ids {
		g.Go(func() error {
			p, err := c.GetBoxer(ctx, id)
			if err != nil {
				return fmt.Errorf("boxer %s: %w", id, err)
			}
			out[i] = p
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// GetTopBoxersAcrossDivisions returns the first limit entries of every
// division. limit <= 0 means DefaultTopLimit.
func (c *Client) GetTopBoxersAcrossDivisions(ctx context.Context, divisions []string, limit int) (map[string][]RatingEntry, error) {
	if limit <= 0 {
		limit = DefaultTopLimit
	}
	var mu sync.Mutex
	out := make(map[string][]RatingEntry, len(divisions))
	g, ctx := errgroup.WithContext(ctx)
	for _, division := range divisions {
		g.Go(func() error {
			r, err := c.GetRatings(ctx, division)
			if err != nil {
				return fmt.Errorf("division %s: %w", division, err)
			}
			top := r.Ratings
			if len(top) > limit {
				top = top[:limit]
			}
			mu.Lock()
			out[division] = top
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, result any) (*resty.Response, error) {
	var apiErr struct {
		Error string `json:"error"`
	}
	req := c.http.R().
		SetContext(ctx).
		SetResult(result).
		SetError(&apiErr)
	if token := c.Session(); token != "" {
		req.SetHeader(sessionHeader, token)
	}
	if body != nil {
		req.SetBody(body)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		return nil, err
	}
	if resp.IsError() || !resp.IsSuccess() {
		msg := apiErr.Error
		if msg == "" {
			msg = fmt.Sprintf("HTTP %d", resp.StatusCode())
		}
		return resp, &APIError{StatusCode: resp.StatusCode(), Message: msg}
	}
	return resp, nil
}
