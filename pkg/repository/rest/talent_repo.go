package rest

import (
	"context"

	"github.com/artem13815/hr/portal/pkg/apiclient"
	"github.com/artem13815/hr/portal/pkg/talent"
)

type TalentRepository struct {
	api *apiclient.Client
}

func NewTalentRepository(api *apiclient.Client) *TalentRepository {
	return &TalentRepository{api: api}
}

type searchResponse struct {
	Profiles []talent.Profile `json:"profiles"`
}

func (r *TalentRepository) Search(ctx context.Context, f talent.Filters) ([]talent.Profile, error) {
	var out searchResponse
	if err := r.api.Get(ctx, "profiles/jobseeker/search", f.Values(), &out); err != nil {
		return nil, err
	}
	if out.Profiles == nil {
		return []talent.Profile{}, nil
	}
	return out.Profiles, nil
}
