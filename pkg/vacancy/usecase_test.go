package vacancy

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artem13815/hr/portal/pkg/apiclient"
	"github.com/artem13815/hr/portal/pkg/inflight"
	"github.com/artem13815/hr/portal/pkg/validation"
)

type fakeJobs struct {
	posted []Posting
	err    error
	hook   func()
}

func (f *fakeJobs) Create(ctx context.Context, p Posting) (Job, error) {
	if f.hook != nil {
		f.hook()
	}
	if f.err != nil {
		return Job{}, f.err
	}
	f.posted = append(f.posted, p)
	return Job{JobID: "job-1", Status: p.Status}, nil
}

func validPosting() Posting {
	p := NewPosting()
	p.JobTitle = " Backend Engineer "
	p.Location = "Bengaluru"
	p.Description = "Build APIs"
	return p
}

func f64(v float64) *float64 { return &v }

func TestPost_SendsNormalizedForm(t *testing.T) {
	repo := &fakeJobs{}
	svc := NewService(repo)

	p := validPosting()
	p.RequiredSkills = []string{"Go", " go ", "", "SQL"}
	p.Responsibilities = []string{"  ", "Own services"}

	job, err := svc.Post(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, "job-1", job.JobID)
	assert.Equal(t, "Backend Engineer", job.JobTitle)

	require.Len(t, repo.posted, 1)
	sent := repo.posted[0]
	assert.Equal(t, []string{"Go", "SQL"}, sent.RequiredSkills)
	assert.Equal(t, []string{"Own services"}, sent.Responsibilities)
	assert.Equal(t, JobTypeFullTime, sent.JobType)
	assert.Equal(t, 1, sent.NumberOfOpenings)
}

func TestPost_ValidationMakesNoCall(t *testing.T) {
	repo := &fakeJobs{}
	svc := NewService(repo)

	p := validPosting()
	p.JobType = "freelance"
	p.WorkMode = "moon"
	p.Status = "archived"
	p.NumberOfOpenings = -2
	p.MinExperience = 5
	p.MaxExperience = f64(2)
	p.MinSalary = f64(900000)
	p.MaxSalary = f64(500000)

	_, err := svc.Post(context.Background(), p)
	var ve *validation.ValidationError
	require.ErrorAs(t, err, &ve)
	for _, field := range []string{"job_type", "work_mode", "status", "number_of_openings", "max_experience", "max_salary"} {
		assert.Contains(t, ve.Fields, field)
	}
	assert.Empty(t, repo.posted)

	_, err = svc.Post(context.Background(), Posting{})
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "job_title")
	assert.Contains(t, ve.Fields, "location")
	assert.Contains(t, ve.Fields, "description")
}

func TestPost_OmittedOpeningsDefaultToOne(t *testing.T) {
	repo := &fakeJobs{}
	p := Posting{JobTitle: "QA Engineer", Location: "Pune", Description: "Test things"}

	_, err := NewService(repo).Post(context.Background(), p)
	require.NoError(t, err)
	require.Len(t, repo.posted, 1)
	assert.Equal(t, 1, repo.posted[0].NumberOfOpenings)
	assert.Equal(t, JobTypeFullTime, repo.posted[0].JobType)
	assert.Equal(t, StatusActive, repo.posted[0].Status)
}

func TestPost_SingleInFlight(t *testing.T) {
	repo := &fakeJobs{}
	svc := NewService(repo)

	var nested error
	repo.hook = func() {
		repo.hook = nil
		assert.True(t, svc.Posting())
		_, nested = svc.Post(context.Background(), validPosting())
	}
	_, err := svc.Post(context.Background(), validPosting())
	require.NoError(t, err)
	assert.ErrorIs(t, nested, inflight.ErrInProgress)
	assert.Len(t, repo.posted, 1)
	assert.False(t, svc.Posting())
}

func TestPost_BackendErrorPassesThrough(t *testing.T) {
	repo := &fakeJobs{err: &apiclient.Error{Status: 403, Kind: apiclient.KindForbidden, Message: "Only employers can post jobs"}}
	_, err := NewService(repo).Post(context.Background(), validPosting())
	assert.True(t, apiclient.Is(err, apiclient.KindForbidden))
}

func TestPosting_ListHelpers(t *testing.T) {
	p := NewPosting()

	p, err := p.AddRequiredSkill("React")
	require.NoError(t, err)
	_, err = p.AddRequiredSkill(" react ")
	assert.Equal(t, ErrValidation("Skill already added"), err)
	_, err = p.AddPreferredSkill("  ")
	assert.Error(t, err)

	p, err = p.AddResponsibility("Ship features")
	require.NoError(t, err)
	p, err = p.AddRequirement("3+ years")
	require.NoError(t, err)
	_, err = p.AddRequirement(" ")
	assert.Error(t, err)

	p = p.RemoveRequiredSkill("REACT")
	assert.Empty(t, p.RequiredSkills)
	p = p.RemoveResponsibility(7)
	assert.Len(t, p.Responsibilities, 1)
	p = p.RemoveResponsibility(0)
	assert.Empty(t, p.Responsibilities)
	assert.Equal(t, []string{"3+ years"}, p.Requirements)
}

func TestPosting_Apply(t *testing.T) {
	p := NewPosting()

	p, err := p.Apply(Edit{Op: "add", List: ListRequiredSkills, Value: "Go"})
	require.NoError(t, err)
	p, err = p.Apply(Edit{Op: "add", List: ListResponsibilities, Value: "Design APIs"})
	require.NoError(t, err)
	_, err = p.Apply(Edit{Op: "add", List: ListRequiredSkills, Value: "GO"})
	assert.Equal(t, ErrValidation("Skill already added"), err)
	_, err = p.Apply(Edit{Op: "rename", List: ListRequirements})
	assert.Equal(t, ErrValidation("Unknown list operation"), err)

	p, err = p.Apply(Edit{Op: "remove", List: ListResponsibilities, Index: 0})
	require.NoError(t, err)
	assert.Empty(t, p.Responsibilities)
	assert.Equal(t, []string{"Go"}, p.RequiredSkills)
}
