package rest

import (
	"context"

	"github.com/artem13815/hr/portal/pkg/apiclient"
	"github.com/artem13815/hr/portal/pkg/vacancy"
)

type VacancyRepository struct {
	api *apiclient.Client
}

func NewVacancyRepository(api *apiclient.Client) *VacancyRepository {
	return &VacancyRepository{api: api}
}

func (r *VacancyRepository) Create(ctx context.Context, p vacancy.Posting) (vacancy.Job, error) {
	var job vacancy.Job
	if err := r.api.Post(ctx, "jobs/jobs", p, &job); err != nil {
		return vacancy.Job{}, err
	}
	return job, nil
}
