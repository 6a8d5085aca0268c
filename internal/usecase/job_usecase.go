package usecase

import (
	"context"
	"strconv"

	"recruitment-console/internal/domain"
	"recruitment-console/pkg/security"
	"recruitment-console/pkg/validation"

	"github.com/go-playground/validator/v10"
)

type jobUsecase struct {
	repo     domain.JobRepository
	validate *validator.Validate
	audit    *security.AuditLogger
}

func NewJobUsecase(repo domain.JobRepository, validate *validator.Validate, audit *security.AuditLogger) domain.JobUsecase {
	return &jobUsecase{
		repo:     repo,
		validate: validate,
		audit:    audit,
	}
}

func (u *jobUsecase) ListJobs(ctx context.Context, q domain.ListQuery) (*domain.Page[domain.JobRow], error) {
	return u.repo.List(ctx, q.Normalize())
}

func (u *jobUsecase) GetJob(ctx context.Context, id int64) (*domain.Job, error) {
	return u.repo.GetByID(ctx, id)
}

func (u *jobUsecase) CreateJob(ctx context.Context, job *domain.Job) error {
	if err := u.check(ctx, job); err != nil {
		return err
	}
	if err := u.repo.Create(ctx, job); err != nil {
		return err
	}
	u.audit.LogMutation(ctx, security.EventJobCreated, "job", job.Title)
	return nil
}

func (u *jobUsecase) UpdateJob(ctx context.Context, job *domain.Job) error {
	if err := u.check(ctx, job); err != nil {
		return err
	}
	if err := u.repo.Update(ctx, job); err != nil {
		return err
	}
	u.audit.LogMutation(ctx, security.EventJobUpdated, "job", strconv.FormatInt(job.ID, 10))
	return nil
}

func (u *jobUsecase) DeleteJob(ctx context.Context, id int64) error {
	if err := u.repo.Delete(ctx, id); err != nil {
		return err
	}
	u.audit.LogMutation(ctx, security.EventJobDeleted, "job", strconv.FormatInt(id, 10))
	return nil
}

// check adds the salary range rule, which the tags cannot express for
// optional pointer fields.
func (u *jobUsecase) check(ctx context.Context, job *domain.Job) error {
	extra := map[string]string{}
	if job.SalaryRangeFrom != nil && job.SalaryRangeTo != nil && *job.SalaryRangeTo < *job.SalaryRangeFrom {
		extra["salaryRangeTo"] = validation.Messages["salaryRangeTo.gtefield"]
	}
	return validateForm(ctx, u.validate, u.audit, "job", job, extra)
}
