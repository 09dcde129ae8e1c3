package vacancy

import (
	"context"

	"github.com/artem13815/hr/portal/pkg/inflight"
	"github.com/artem13815/hr/portal/pkg/logger"
)

// PostedMessage и DashboardPath: что показать и куда вернуть после публикации.
const (
	PostedMessage = "Job posted successfully!"
	DashboardPath = "/employer/dashboard"
)

// UseCase инкапсулирует публикацию вакансий работодателем.
type UseCase interface {
	Post(ctx context.Context, p Posting) (Job, error)
	Posting() bool
}

type service struct {
	repo Repository
	gate inflight.Gate
}

func NewService(repo Repository) UseCase { return &service{repo: repo} }

// Post валидирует форму и отправляет её; одновременно идёт не больше одной публикации.
func (s *service) Post(ctx context.Context, p Posting) (Job, error) {
	p = p.Normalize()
	if err := p.Validate(); err != nil {
		return Job{}, err
	}

	var job Job
	err := s.gate.Run(func() error {
		var err error
		job, err = s.repo.Create(ctx, p)
		return err
	})
	if err != nil {
		logger.CtxWarn(ctx, "job posting failed", "title", p.JobTitle, "error", err)
		return Job{}, err
	}
	if job.JobTitle == "" {
		job.JobTitle = p.JobTitle
	}
	logger.CtxInfo(ctx, "job posted", "job_id", job.JobID, "status", p.Status)
	return job, nil
}

func (s *service) Posting() bool { return s.gate.Busy() }
