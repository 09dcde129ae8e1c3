package rest

import (
	"context"
	"net/url"

	"github.com/artem13815/hr/portal/pkg/apiclient"
	"github.com/artem13815/hr/portal/pkg/interview"
)

type InterviewRepository struct {
	api *apiclient.Client
}

func NewInterviewRepository(api *apiclient.Client) *InterviewRepository {
	return &InterviewRepository{api: api}
}

type requestsResponse struct {
	Requests []interview.Request `json:"requests"`
}

func (r *InterviewRepository) Available(ctx context.Context) ([]interview.Request, error) {
	return r.list(ctx, "interviews/requests/available")
}

// Mine returns every request assigned to the interviewer, completed ones included.
func (r *InterviewRepository) Mine(ctx context.Context) ([]interview.Request, error) {
	return r.list(ctx, "interviews/my-interviews")
}

func (r *InterviewRepository) Accept(ctx context.Context, requestID string) error {
	return r.api.Post(ctx, "interviews/requests/"+url.PathEscape(requestID)+"/accept", nil, nil)
}

func (r *InterviewRepository) SubmitRating(ctx context.Context, sub interview.RatingSubmission) error {
	return r.api.Post(ctx, "interviews/ratings", sub, nil)
}

func (r *InterviewRepository) list(ctx context.Context, path string) ([]interview.Request, error) {
	var out requestsResponse
	if err := r.api.Get(ctx, path, nil, &out); err != nil {
		return nil, err
	}
	return out.Requests, nil
}
