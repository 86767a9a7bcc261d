package boxrec

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/user/boxrec-service/internal/entity"
	"github.com/user/boxrec-service/internal/repository"
	"github.com/user/boxrec-service/pkg/utils"
	"go.uber.org/zap"
)

// DefaultUserAgent is sent with every upstream request.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// FetcherImpl provides a concrete implementation for the UpstreamFetcher
// interface using resty.
type FetcherImpl struct {
	origin *url.URL
	client *resty.Client
	logger *zap.Logger
}

var _ repository.UpstreamFetcher = (*FetcherImpl)(nil)

// NewFetcher creates a fetcher for the upstream at origin. Redirects are
// never followed and no cookie jar is kept: the session travels only in
// the token handed to Fetch.
func NewFetcher(origin, userAgent string, timeout time.Duration, logger *zap.Logger) (*FetcherImpl, error) {
	u, err := utils.ParseOrigin(origin)
	if err != nil {
		return nil, err
	}
	return &FetcherImpl{
		origin: u,
		client: newUpstreamClient(userAgent, timeout),
		logger: logger,
	}, nil
}

func newUpstreamClient(userAgent string, timeout time.Duration) *resty.Client {
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	return resty.New().
		SetTimeout(timeout).
		SetCookieJar(nil).
		SetHeader("User-Agent", userAgent).
		SetRedirectPolicy(resty.RedirectPolicyFunc(func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		}))
}

// Fetch issues a GET for resourcePath with sessionToken as the Cookie header.
func (f *FetcherImpl) Fetch(ctx context.Context, resourcePath, sessionToken string) (string, error) {
	target, err := utils.ToAbsoluteURL(f.origin, resourcePath)
	if err != nil {
		return "", fmt.Errorf("invalid resource path %q: %w", resourcePath, err)
	}

	start := time.Now()
	resp, err := f.client.R().
		SetContext(ctx).
		SetHeader("Cookie", sessionToken).
		Get(target)
	if err != nil {
		f.logger.Warn("upstream request failed", zap.String("path", resourcePath), zap.Error(err))
		return "", fmt.Errorf("%w: %v", entity.ErrUpstreamUnavailable, err)
	}

	f.logger.Debug("upstream response",
		zap.String("path", resourcePath),
		zap.Int("status", resp.StatusCode()),
		zap.Duration("duration", time.Since(start)),
	)

	if !resp.IsSuccess() {
		location := resp.Header().Get("Location")
		return "", &entity.UpstreamRejectedError{
			StatusCode:    resp.StatusCode(),
			Location:      location,
			LoginRequired: isRedirect(resp.StatusCode()) && isLoginLocation(location),
		}
	}

	body := resp.String()
	if isLoginPage(body) {
		return "", &entity.UpstreamRejectedError{StatusCode: resp.StatusCode(), LoginRequired: true}
	}
	return body, nil
}

func isRedirect(status int) bool {
	return status >= 300 && status < 400
}

func isLoginLocation(location string) bool {
	return strings.Contains(strings.ToLower(location), "/login")
}

// isLoginPage reports whether the upstream served its login form instead of
// the requested page, which happens when the session has expired.
func isLoginPage(body string) bool {
	return strings.Contains(body, `name="_csrf_token"`) && strings.Contains(body, `name="_password"`)
}
