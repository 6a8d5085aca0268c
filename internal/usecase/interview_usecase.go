package usecase

import (
	"context"
	"strconv"
	"time"

	"recruitment-console/internal/domain"
	"recruitment-console/pkg/security"
	"recruitment-console/pkg/validation"

	"github.com/go-playground/validator/v10"
)

const msgEndAfterStart = "End time must be after start time"

type interviewUsecase struct {
	repo     domain.InterviewRepository
	validate *validator.Validate
	audit    *security.AuditLogger
}

func NewInterviewUsecase(repo domain.InterviewRepository, validate *validator.Validate, audit *security.AuditLogger) domain.InterviewUsecase {
	return &interviewUsecase{
		repo:     repo,
		validate: validate,
		audit:    audit,
	}
}

func (u *interviewUsecase) ListInterviews(ctx context.Context, q domain.ListQuery) (*domain.Page[domain.InterviewRow], error) {
	return u.repo.List(ctx, q.Normalize())
}

func (u *interviewUsecase) GetInterview(ctx context.Context, id int64) (*domain.Interview, error) {
	return u.repo.GetByID(ctx, id)
}

func (u *interviewUsecase) CreateInterview(ctx context.Context, interview *domain.Interview) error {
	if err := u.check(ctx, interview); err != nil {
		return err
	}
	if err := u.repo.Create(ctx, interview); err != nil {
		return err
	}
	u.audit.LogMutation(ctx, security.EventInterviewCreated, "interview", interview.Title)
	return nil
}

func (u *interviewUsecase) UpdateInterview(ctx context.Context, interview *domain.Interview) error {
	if err := u.check(ctx, interview); err != nil {
		return err
	}
	if err := u.repo.Update(ctx, interview); err != nil {
		return err
	}
	u.audit.LogMutation(ctx, security.EventInterviewUpdated, "interview", strconv.FormatInt(interview.InterviewID, 10))
	return nil
}

func (u *interviewUsecase) DeleteInterview(ctx context.Context, id int64) error {
	if err := u.repo.Delete(ctx, id); err != nil {
		return err
	}
	u.audit.LogMutation(ctx, security.EventInterviewDeleted, "interview", strconv.FormatInt(id, 10))
	return nil
}

func (u *interviewUsecase) check(ctx context.Context, interview *domain.Interview) error {
	extra := map[string]string{}
	start, startErr := time.Parse(validation.ClockLayout, interview.ScheduleStart)
	end, endErr := time.Parse(validation.ClockLayout, interview.ScheduleEnd)
	if startErr == nil && endErr == nil && !end.After(start) {
		extra["scheduleEnd"] = msgEndAfterStart
	}
	return validateForm(ctx, u.validate, u.audit, "interview", interview, extra)
}
