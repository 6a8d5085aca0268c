package usecase

import (
	"context"
	"strings"

	"recruitment-console/internal/domain"
	"recruitment-console/pkg/apperror"
	"recruitment-console/pkg/security"

	"github.com/go-playground/validator/v10"
)

const defaultUserStatus = "active"

type userUsecase struct {
	repo     domain.UserRepository
	validate *validator.Validate
	audit    *security.AuditLogger
}

func NewUserUsecase(repo domain.UserRepository, validate *validator.Validate, audit *security.AuditLogger) domain.UserUsecase {
	return &userUsecase{
		repo:     repo,
		validate: validate,
		audit:    audit,
	}
}

func (u *userUsecase) ListUsers(ctx context.Context, q domain.ListQuery) (*domain.Page[domain.UserInfo], error) {
	return u.repo.List(ctx, q.Normalize())
}

func (u *userUsecase) GetUser(ctx context.Context, username string) (*domain.UserInfo, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, apperror.NotFound("User not found")
	}
	return u.repo.GetByUsername(ctx, username)
}

func (u *userUsecase) CreateUser(ctx context.Context, form *domain.UserForm) error {
	if form.Status == "" {
		form.Status = defaultUserStatus
	}
	if err := validateForm(ctx, u.validate, u.audit, "user", form, nil); err != nil {
		return err
	}
	if err := u.repo.Create(ctx, form); err != nil {
		return err
	}
	u.audit.LogMutation(ctx, security.EventUserCreated, "user", security.MaskEmail(form.Email))
	return nil
}

func (u *userUsecase) UpdateUser(ctx context.Context, username string, form *domain.UserForm) error {
	if err := validateForm(ctx, u.validate, u.audit, "user", form, nil); err != nil {
		return err
	}
	if err := u.repo.Update(ctx, username, form); err != nil {
		return err
	}
	u.audit.LogMutation(ctx, security.EventUserUpdated, "user", username)
	return nil
}
