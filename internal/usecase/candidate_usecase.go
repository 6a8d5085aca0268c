package usecase

import (
	"bytes"
	"context"
	"strconv"

	"recruitment-console/internal/domain"
	"recruitment-console/pkg/security"

	"github.com/go-playground/validator/v10"
)

const defaultCandidateStatus = "open"

type candidateUsecase struct {
	repo     domain.CandidateRepository
	cvGuard  *CVGuard
	validate *validator.Validate
	audit    *security.AuditLogger
}

func NewCandidateUsecase(repo domain.CandidateRepository, cvGuard *CVGuard, validate *validator.Validate, audit *security.AuditLogger) domain.CandidateUsecase {
	if cvGuard == nil {
		cvGuard = NewCVGuard(nil, nil, nil, audit)
	}
	return &candidateUsecase{
		repo:     repo,
		cvGuard:  cvGuard,
		validate: validate,
		audit:    audit,
	}
}

func (u *candidateUsecase) ListCandidates(ctx context.Context, q domain.ListQuery) (*domain.Page[domain.CandidateRow], error) {
	return u.repo.List(ctx, q.Normalize())
}

func (u *candidateUsecase) GetCandidate(ctx context.Context, id int64) (*domain.Candidate, error) {
	return u.repo.GetByID(ctx, id)
}

func (u *candidateUsecase) CreateCandidate(ctx context.Context, c *domain.Candidate, cv *domain.CVUpload) error {
	if c.Status == "" {
		c.Status = defaultCandidateStatus
	}
	if err := validateForm(ctx, u.validate, u.audit, "candidate", c, nil); err != nil {
		return err
	}
	if err := u.attachCV(ctx, c, cv); err != nil {
		return err
	}
	if err := u.repo.Create(ctx, c); err != nil {
		return err
	}
	u.audit.LogMutation(ctx, security.EventCandidateCreated, "candidate", security.MaskEmail(c.Email))
	return nil
}

func (u *candidateUsecase) UpdateCandidate(ctx context.Context, c *domain.Candidate, cv *domain.CVUpload) error {
	if err := validateForm(ctx, u.validate, u.audit, "candidate", c, nil); err != nil {
		return err
	}
	if err := u.attachCV(ctx, c, cv); err != nil {
		return err
	}
	if err := u.repo.Update(ctx, c); err != nil {
		return err
	}
	u.audit.LogMutation(ctx, security.EventCandidateUpdated, "candidate", strconv.FormatInt(c.ID, 10))
	return nil
}

func (u *candidateUsecase) DeleteCandidate(ctx context.Context, id int64) error {
	if err := u.repo.Delete(ctx, id); err != nil {
		return err
	}
	u.audit.LogMutation(ctx, security.EventCandidateDeleted, "candidate", strconv.FormatInt(id, 10))
	return nil
}

func (u *candidateUsecase) ListRecruiters(ctx context.Context) ([]domain.Recruiter, error) {
	return u.repo.Recruiters(ctx)
}

// attachCV uploads cv, when present, and points the record at the stored file.
func (u *candidateUsecase) attachCV(ctx context.Context, c *domain.Candidate, cv *domain.CVUpload) error {
	if cv == nil || cv.Content == nil || cv.Filename == "" {
		return nil
	}
	data, err := u.cvGuard.Screen(ctx, cv)
	if err != nil {
		return err
	}
	uploaded, err := u.repo.UploadCV(ctx, cv.Filename, bytes.NewReader(data))
	if err != nil {
		return err
	}
	c.CVAttachment = uploaded.FileURL
	c.CVAttachmentName = uploaded.FileName

	u.audit.Log(ctx, security.AuditEvent{
		Event:      security.EventCVUploaded,
		Resource:   "candidate",
		ResourceID: strconv.FormatInt(c.ID, 10),
		Details:    map[string]any{"file": uploaded.FileName, "bytes": len(data)},
	})
	return nil
}
