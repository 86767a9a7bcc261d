package repository

import (
	"context"
	"net/http"
)

// SessionRepository exchanges upstream credentials for session cookies.
type SessionRepository interface {
	// Login returns the cookies the upstream set for an authenticated session.
	Login(ctx context.Context, username, password string) ([]*http.Cookie, error)
}
