package interview

import (
	"context"
	"fmt"
)

// Status of an interview request. Requests only move forward.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusAssigned  Status = "ASSIGNED"
	StatusCompleted Status = "COMPLETED"
	StatusCancelled Status = "CANCELLED"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusAssigned, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Terminal statuses accept no further transition.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

var transitions = map[Status][]Status{
	StatusPending:  {StatusAssigned, StatusCancelled},
	StatusAssigned: {StatusCompleted, StatusCancelled},
}

// TransitionError is an illegal status change.
type TransitionError struct {
	From Status
	To   Status
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("interview request cannot move from %s to %s", e.From, e.To)
}

// Transition validates from -> to and returns the new status.
func Transition(from, to Status) (Status, error) {
	for _, next := range transitions[from] {
		if next == to {
			return to, nil
		}
	}
	return from, &TransitionError{From: from, To: to}
}

// Request is an interview verification request as listed by the backend.
type Request struct {
	RequestID         string   `json:"request_id"`
	JobseekerID       string   `json:"jobseeker_id,omitempty"`
	JobseekerName     string   `json:"jobseeker_name,omitempty"`
	JobseekerPosition string   `json:"jobseeker_position,omitempty"`
	Status            Status   `json:"status"`
	SkillsToVerify    []string `json:"skills_to_verify"`
	ScheduledAt       string   `json:"scheduled_at,omitempty"`
	CreatedAt         string   `json:"created_at,omitempty"`
	OverallRating     *float64 `json:"overall_rating,omitempty"`
}

type SkillRating struct {
	Skill  string  `json:"skill"`
	Rating float64 `json:"rating"`
}

// RatingSubmission is the body of interviews/ratings.
type RatingSubmission struct {
	InterviewRequestID string        `json:"interview_request_id"`
	SkillRatings       []SkillRating `json:"skill_ratings"`
	Feedback           string        `json:"feedback,omitempty"`
}

type Repository interface {
	Available(ctx context.Context) ([]Request, error)
	Mine(ctx context.Context) ([]Request, error)
	Accept(ctx context.Context, requestID string) error
	SubmitRating(ctx context.Context, sub RatingSubmission) error
}
