package rest

import (
	"context"

	"github.com/artem13815/hr/portal/pkg/apiclient"
	"github.com/artem13815/hr/portal/pkg/profile"
	"github.com/artem13815/hr/portal/pkg/resume"
)

const profilePath = "profiles/jobseeker/profile"

type ProfileRepository struct {
	api *apiclient.Client
}

func NewProfileRepository(api *apiclient.Client) *ProfileRepository {
	return &ProfileRepository{api: api}
}

func (r *ProfileRepository) Get(ctx context.Context) (profile.Profile, error) {
	var p profile.Profile
	if err := r.api.Get(ctx, profilePath, nil, &p); err != nil {
		return profile.Profile{}, err
	}
	return p, nil
}

func (r *ProfileRepository) Create(ctx context.Context, f profile.Form) error {
	return r.api.Post(ctx, profilePath, f, nil)
}

func (r *ProfileRepository) Update(ctx context.Context, f profile.Form) error {
	return r.api.Put(ctx, profilePath, f, nil)
}

func (r *ProfileRepository) UploadResume(ctx context.Context, file resume.File) error {
	return r.api.PostMultipart(ctx, profilePath+"/resume", "file", file.Filename, file.Data, nil)
}
