package auth

import (
	"context"
	"errors"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrUnauthenticated = errors.New("not authenticated")
)

// LoginError is a failed login attempt with a message fit for the login form.
type LoginError string

func (e LoginError) Error() string { return string(e) }

// LoginResult is the payload of a successful auth/login call.
type LoginResult struct {
	AccessToken string `json:"access_token"`
	User        User   `json:"user"`
}

// Authenticator exchanges credentials for a token. It needs no session.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (LoginResult, error)
}

// IdentityRepository reads the identity of the session it is bound to.
type IdentityRepository interface {
	Me(ctx context.Context) (User, error)
}

// SessionRepository persists portal sessions.
// Get returns ErrNotFound for unknown or expired ids.
type SessionRepository interface {
	Save(ctx context.Context, s Session) error
	Get(ctx context.Context, id string) (Session, error)
	Delete(ctx context.Context, id string) error
}
