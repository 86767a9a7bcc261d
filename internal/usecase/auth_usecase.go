package usecase

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/user/boxrec-service/internal/entity"
	"github.com/user/boxrec-service/internal/repository"
	"github.com/user/boxrec-service/internal/session"
	"go.uber.org/zap"
)

// Authenticator exchanges upstream credentials for a session.
type Authenticator interface {
	Authenticate(ctx context.Context, username, password string) (*Session, error)
}

// Session is the result of a successful upstream login.
type Session struct {
	Cookies []*http.Cookie
	Token   session.Token
}

type authUseCase struct {
	sessions repository.SessionRepository
	logger   *zap.Logger
}

func NewAuthUseCase(sessions repository.SessionRepository, logger *zap.Logger) Authenticator {
	return &authUseCase{sessions: sessions, logger: logger}
}

func (uc *authUseCase) Authenticate(ctx context.Context, username, password string) (*Session, error) {
	if strings.TrimSpace(username) == "" || password == "" {
		return nil, fmt.Errorf("%w: username and password are required", entity.ErrInvalidRequest)
	}

	cookies, err := uc.sessions.Login(ctx, username, password)
	if err != nil {
		uc.logger.Warn("upstream login failed", zap.String("username", username), zap.Error(err))
		return nil, err
	}

	uc.logger.Info("upstream login succeeded", zap.String("username", username), zap.Int("cookies", len(cookies)))
	return &Session{Cookies: cookies, Token: session.Join(cookies)}, nil
}
