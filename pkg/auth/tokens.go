package auth

import "time"

// TokenInspector reads the expiry of an access token without verifying it.
// ok is false when the token carries no readable expiry.
type TokenInspector interface {
	ExpiresAt(token string) (exp time.Time, ok bool)
}
