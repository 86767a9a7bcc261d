package entity

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidRequest      = errors.New("invalid request")
	ErrUnauthenticated     = errors.New("not authenticated")
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
	ErrUpstreamRejected    = errors.New("upstream rejected request")
	ErrMalformedDocument   = errors.New("malformed document")
	ErrRateLimited         = errors.New("rate limit exceeded")
	ErrInvalidCredentials  = errors.New("invalid upstream credentials")
)

// UpstreamRejectedError reports a non-success response from the upstream
// site. It matches ErrUpstreamRejected, and ErrUnauthenticated as well when
// LoginRequired is set.
type UpstreamRejectedError struct {
	StatusCode    int
	Location      string
	LoginRequired bool
}

func (e *UpstreamRejectedError) Error() string {
	msg := fmt.Sprintf("upstream responded with status %d", e.StatusCode)
	if loc := strings.TrimSpace(e.Location); loc != "" {
		msg += " location=" + loc
	}
	if e.LoginRequired {
		msg += " (login required)"
	}
	return msg
}

func (e *UpstreamRejectedError) Is(target error) bool {
	switch target {
	case ErrUpstreamRejected:
		return true
	case ErrUnauthenticated:
		return e.LoginRequired
	}
	return false
}

// ErrorType returns a short label for err, used in metrics and the
// failure archive.
func ErrorType(err error) string {
	switch {
	case err == nil:
		return "none"
	case errors.Is(err, ErrInvalidRequest):
		return "invalid"
	case errors.Is(err, ErrUnauthenticated):
		return "unauthenticated"
	case errors.Is(err, ErrUpstreamUnavailable):
		return "unavailable"
	case errors.Is(err, ErrUpstreamRejected):
		return "rejected"
	case errors.Is(err, ErrMalformedDocument):
		return "malformed"
	case errors.Is(err, ErrRateLimited):
		return "rate_limited"
	case errors.Is(err, ErrInvalidCredentials):
		return "invalid_credentials"
	}
	return "other"
}
