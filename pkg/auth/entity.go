package auth

import (
	"time"
)

// Role is fixed for the lifetime of a session.
type Role string

const (
	RoleJobseeker   Role = "jobseeker"
	RoleEmployer    Role = "employer"
	RoleInterviewer Role = "interviewer"
	RoleAdmin       Role = "admin"
)

func ParseRole(s string) (Role, bool) {
	switch r := Role(s); r {
	case RoleJobseeker, RoleEmployer, RoleInterviewer, RoleAdmin:
		return r, true
	}
	return "", false
}

// LandingPath is where a freshly logged-in user of the role lands.
func LandingPath(r Role) string {
	switch r {
	case RoleAdmin:
		return "/admin/dashboard"
	case RoleEmployer:
		return "/employer/dashboard"
	case RoleInterviewer:
		return "/interviewer/dashboard"
	default:
		return "/dashboard"
	}
}

// User is the identity reported by the backend (auth/me, auth/login).
type User struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	FullName    string `json:"full_name,omitempty"`
	Role        Role   `json:"role"`
	CreditsFree int64  `json:"credits_free"`
	CreditsPaid int64  `json:"credits_paid"`
}

func (u User) TotalCredits() int64 {
	return u.CreditsFree + u.CreditsPaid
}

// Session is the portal-side login: the bearer token plus the user it was issued for.
// It is created by Login and destroyed by Logout; nothing else writes it.
type Session struct {
	ID          string    `json:"id"`
	AccessToken string    `json:"access_token"`
	User        User      `json:"user"`
	CreatedAt   time.Time `json:"created_at"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// Token implements apiclient.TokenSource.
func (s Session) Token() string { return s.AccessToken }

func (s Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}
