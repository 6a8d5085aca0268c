package usecase

import (
	"context"
	"strconv"

	"recruitment-console/internal/domain"
	"recruitment-console/pkg/security"

	"github.com/go-playground/validator/v10"
)

type offerUsecase struct {
	repo     domain.OfferRepository
	validate *validator.Validate
	audit    *security.AuditLogger
}

func NewOfferUsecase(repo domain.OfferRepository, validate *validator.Validate, audit *security.AuditLogger) domain.OfferUsecase {
	return &offerUsecase{
		repo:     repo,
		validate: validate,
		audit:    audit,
	}
}

func (u *offerUsecase) ListOffers(ctx context.Context, q domain.ListQuery) (*domain.Page[domain.OfferRow], error) {
	return u.repo.List(ctx, q.Normalize())
}

func (u *offerUsecase) GetOffer(ctx context.Context, id int64) (*domain.Offer, error) {
	return u.repo.GetByID(ctx, id)
}

func (u *offerUsecase) CreateOffer(ctx context.Context, offer *domain.Offer) error {
	if offer.Status == "" {
		offer.Status = domain.DefaultOfferStatus
	}
	if err := validateForm(ctx, u.validate, u.audit, "offer", offer, nil); err != nil {
		return err
	}
	if err := u.repo.Create(ctx, offer); err != nil {
		return err
	}
	u.audit.LogMutation(ctx, security.EventOfferCreated, "offer", strconv.FormatInt(offer.CandidateID, 10))
	return nil
}

func (u *offerUsecase) UpdateOffer(ctx context.Context, offer *domain.Offer) error {
	if err := validateForm(ctx, u.validate, u.audit, "offer", offer, nil); err != nil {
		return err
	}
	if err := u.repo.Update(ctx, offer); err != nil {
		return err
	}
	u.audit.LogMutation(ctx, security.EventOfferUpdated, "offer", strconv.FormatInt(offer.OfferID, 10))
	return nil
}

func (u *offerUsecase) DeleteOffer(ctx context.Context, id int64) error {
	if err := u.repo.Delete(ctx, id); err != nil {
		return err
	}
	u.audit.LogMutation(ctx, security.EventOfferDeleted, "offer", strconv.FormatInt(id, 10))
	return nil
}
