package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/artem13815/hr/portal/pkg/apiclient"
	"github.com/artem13815/hr/portal/pkg/logger"
)

const defaultLoginFailure = "Invalid email or password"

// SessionUseCase owns the session lifecycle: Login creates, Logout destroys.
type SessionUseCase interface {
	Login(ctx context.Context, email, password string, portal Role) (Session, string, error)
	Logout(ctx context.Context, sessionID string) error
	Resolve(ctx context.Context, sessionID string) (Session, error)
	OnLogout(fn func(sessionID string))
}

type sessionService struct {
	authn    Authenticator
	sessions SessionRepository
	tokens   TokenInspector
	ttl      time.Duration
	now      func() time.Time

	mu       sync.RWMutex
	teardown []func(string)
}

// NewSessionService returns the default SessionUseCase. tokens may be nil.
func NewSessionService(authn Authenticator, sessions SessionRepository, tokens TokenInspector, ttl time.Duration) SessionUseCase {
	return &sessionService{
		authn:    authn,
		sessions: sessions,
		tokens:   tokens,
		ttl:      ttl,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// OnLogout registers a hook run with the session id after a session is destroyed.
func (s *sessionService) OnLogout(fn func(sessionID string)) {
	s.mu.Lock()
	s.teardown = append(s.teardown, fn)
	s.mu.Unlock()
}

// Login authenticates against the backend. Portals other than admin only accept
// accounts of their own role. Returns the new session and the landing path.
func (s *sessionService) Login(ctx context.Context, email, password string, portal Role) (Session, string, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return Session{}, "", LoginError("Email and password are required")
	}

	res, err := s.authn.Login(ctx, email, password)
	if err != nil {
		switch apiclient.KindOf(err) {
		case apiclient.KindTimeout, apiclient.KindNetwork, apiclient.KindServer, "":
			return Session{}, "", err
		}
		return Session{}, "", LoginError(apiclient.MessageOf(err, defaultLoginFailure))
	}
	if res.AccessToken == "" {
		return Session{}, "", LoginError(defaultLoginFailure)
	}

	if portal != RoleAdmin && res.User.Role != portal {
		return Session{}, "", LoginError(fmt.Sprintf(
			"This account is not registered as a %s. Please use the correct login page.", portal))
	}

	now := s.now()
	sess := Session{
		ID:          uuid.NewString(),
		AccessToken: res.AccessToken,
		User:        res.User,
		CreatedAt:   now,
		ExpiresAt:   now.Add(s.ttl),
	}
	if s.tokens != nil {
		if exp, ok := s.tokens.ExpiresAt(res.AccessToken); ok && exp.Before(sess.ExpiresAt) {
			sess.ExpiresAt = exp
		}
	}
	if sess.Expired(now) {
		return Session{}, "", LoginError("Session expired. Please log in again.")
	}

	if err := s.sessions.Save(ctx, sess); err != nil {
		return Session{}, "", fmt.Errorf("save session: %w", err)
	}
	logger.FromContext(logger.WithUserID(ctx, sess.User.ID)).Info("session created",
		"role", sess.User.Role, "expires_at", sess.ExpiresAt)

	return sess, LandingPath(sess.User.Role), nil
}

func (s *sessionService) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	if err := s.sessions.Delete(ctx, sessionID); err != nil && !errors.Is(err, ErrNotFound) {
		return err
	}
	s.mu.RLock()
	hooks := append([]func(string){}, s.teardown...)
	s.mu.RUnlock()
	for _, fn := range hooks {
		fn(sessionID)
	}
	return nil
}

// Resolve loads a live session. Unknown or expired ids yield ErrUnauthenticated.
func (s *sessionService) Resolve(ctx context.Context, sessionID string) (Session, error) {
	if sessionID == "" {
		return Session{}, ErrUnauthenticated
	}
	sess, err := s.sessions.Get(ctx, sessionID)
	if errors.Is(err, ErrNotFound) {
		return Session{}, ErrUnauthenticated
	}
	if err != nil {
		return Session{}, err
	}
	if sess.Expired(s.now()) {
		_ = s.Logout(ctx, sessionID)
		return Session{}, ErrUnauthenticated
	}
	return sess, nil
}
