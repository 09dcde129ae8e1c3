package contacts

import (
	"context"
	"errors"
	"fmt"
)

// State of a (employer, jobseeker) pair within one session.
type State string

const (
	StateHidden   State = "HIDDEN"
	StateRevealed State = "REVEALED"
)

// Contact holds the unlocked fields returned by contacts/reveal.
type Contact struct {
	JobseekerID string `json:"jobseeker_id"`
	Email       string `json:"email,omitempty"`
	Phone       string `json:"phone,omitempty"`
	ValidUntil  string `json:"valid_until,omitempty"`
}

// Access is one entry of contacts/my-access.
type Access struct {
	JobseekerID string `json:"jobseeker_id"`
	GrantedAt   string `json:"granted_at,omitempty"`
	ValidUntil  string `json:"valid_until,omitempty"`
}

type Repository interface {
	Reveal(ctx context.Context, jobseekerID string) (Contact, error)
	MyAccess(ctx context.Context) ([]Access, error)
}

// CostSource prices a reveal.
type CostSource interface {
	ContactReveal() int64
}

var (
	ErrMissingJobseeker = errors.New("jobseeker id is required")
	// ErrStale is returned when the workspace was reset while a call was in flight.
	ErrStale = errors.New("response discarded: session was reset")
)

// InsufficientCreditsError rejects a reveal before any network call.
type InsufficientCreditsError struct {
	Cost    int64
	Balance int64
}

func (e *InsufficientCreditsError) Error() string {
	return fmt.Sprintf("Insufficient credits. You need %d credits to reveal contact.", e.Cost)
}
