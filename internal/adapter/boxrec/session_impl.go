package boxrec

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"github.com/user/boxrec-service/internal/entity"
	"github.com/user/boxrec-service/internal/repository"
	"github.com/user/boxrec-service/pkg/utils"
	"go.uber.org/zap"
)

const loginPath = "/en/login"

// SessionRepoImpl logs in to the upstream site with a username and password.
type SessionRepoImpl struct {
	loginURL string
	client   *resty.Client
	logger   *zap.Logger
}

var _ repository.SessionRepository = (*SessionRepoImpl)(nil)

func NewSessionRepo(origin, userAgent string, timeout time.Duration, logger *zap.Logger) (*SessionRepoImpl, error) {
	u, err := utils.ParseOrigin(origin)
	if err != nil {
		return nil, err
	}
	loginURL, err := utils.ToAbsoluteURL(u, loginPath)
	if err != nil {
		return nil, err
	}
	return &SessionRepoImpl{
		loginURL: loginURL,
		client:   newUpstreamClient(userAgent, timeout),
		logger:   logger,
	}, nil
}

// Login reads the anti-forgery token from the login page, posts the
// credentials with it and returns the cookies of both responses. The
// upstream answers a good login with a 302; any other status means the
// credentials were refused.
func (s *SessionRepoImpl) Login(ctx context.Context, username, password string) ([]*http.Cookie, error) {
	page, err := s.client.R().SetContext(ctx).Get(s.loginURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", entity.ErrUpstreamUnavailable, err)
	}
	if !page.IsSuccess() {
		return nil, &entity.UpstreamRejectedError{StatusCode: page.StatusCode(), Location: page.Header().Get("Location")}
	}

	token, err := csrfToken(page.Body())
	if err != nil {
		return nil, err
	}
	initial := page.Cookies()

	form := url.Values{
		"_csrf_token": {token},
		"_username":   {username},
		"_password":   {password},
		"login[go]":   {""},
	}
	res, err := s.client.R().
		SetContext(ctx).
		SetCookies(initial).
		SetFormDataFromValues(form).
		Post(s.loginURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", entity.ErrUpstreamUnavailable, err)
	}
	if res.StatusCode() != http.StatusFound {
		s.logger.Info("upstream login refused", zap.String("username", username), zap.Int("status", res.StatusCode()))
		return nil, entity.ErrInvalidCredentials
	}

	return mergeCookies(initial, res.Cookies()), nil
}

func csrfToken(body []byte) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("%w: login page: %v", entity.ErrMalformedDocument, err)
	}
	token := doc.Find(`input[name="_csrf_token"]`).AttrOr("value", "")
	if token == "" {
		return "", fmt.Errorf("%w: login page has no csrf token", entity.ErrMalformedDocument)
	}
	return token, nil
}

// mergeCookies keeps one cookie per name; later sets win, first-seen order is kept.
func mergeCookies(sets ...[]*http.Cookie) []*http.Cookie {
	index := map[string]int{}
	var merged []*http.Cookie
	for _, set := range sets {
		for _, c := range set {
			if c == nil || c.Name == "" {
				continue
			}
			if i, ok := index[c.Name]; ok {
				merged[i] = c
				continue
			}
			index[c.Name] = len(merged)
			merged = append(merged, c)
		}
	}
	return merged
}
