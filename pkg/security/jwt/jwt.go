package jwt

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Inspector reads the exp claim of backend-issued tokens.
// Signatures are not checked: the portal never holds the signing key,
// the backend stays the authority on token validity.
type Inspector struct {
	parser *jwt.Parser
}

func NewInspector() *Inspector {
	return &Inspector{parser: jwt.NewParser()}
}

// ExpiresAt implements auth.TokenInspector. Opaque or malformed tokens report ok=false.
func (i *Inspector) ExpiresAt(token string) (time.Time, bool) {
	if token == "" {
		return time.Time{}, false
	}
	claims := &jwt.RegisteredClaims{}
	if _, _, err := i.parser.ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.UTC(), true
}

// Expired reports whether token carries an exp claim that has passed.
func (i *Inspector) Expired(token string, now time.Time) bool {
	exp, ok := i.ExpiresAt(token)
	return ok && !now.Before(exp)
}
