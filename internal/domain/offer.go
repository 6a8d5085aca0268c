package domain

import "context"

// DefaultOfferStatus is given to offers created without a status.
const DefaultOfferStatus = "Pending"

type Offer struct {
	OfferID             int64   `json:"offerId,omitempty"`
	Status              string  `json:"status" validate:"required,oneof=Pending 'Waiting for approval' Approved Rejected 'Waiting for response' Accepted Declined Cancelled"`
	Notes               string  `json:"notes,omitempty" validate:"max=500"`
	InterviewID         int64   `json:"interviewId" validate:"gt=0"`
	CandidateID         int64   `json:"candidateId" validate:"gt=0"`
	UserID              int64   `json:"userId" validate:"gt=0"`
	Department          string  `json:"department" validate:"required"`
	Position            string  `json:"position" validate:"required"`
	ContractType        string  `json:"contractType" validate:"required"`
	Level               string  `json:"level" validate:"required"`
	ContractPeriodStart Date    `json:"contractPeriodStart" validate:"required"`
	ContractPeriodEnd   Date    `json:"contractPeriodEnd" validate:"required,gtefield=ContractPeriodStart"`
	DueDate             Date    `json:"dueDate" validate:"required"`
	BaseSalary          float64 `json:"baseSalary" validate:"gte=0"`
}

// OfferRow is one line of the offer table.
type OfferRow struct {
	OfferID        int64  `json:"offerId"`
	CandidateName  string `json:"candidateName"`
	CandidateEmail string `json:"candidateEmail"`
	ApprovedBy     string `json:"approvedBy"`
	Department     string `json:"department"`
	Notes          string `json:"notes"`
	Status         string `json:"status"`
}

type OfferRepository interface {
	List(ctx context.Context, q ListQuery) (*Page[OfferRow], error)
	GetByID(ctx context.Context, id int64) (*Offer, error)
	Create(ctx context.Context, offer *Offer) error
	Update(ctx context.Context, offer *Offer) error
	Delete(ctx context.Context, id int64) error
}

type OfferUsecase interface {
	ListOffers(ctx context.Context, q ListQuery) (*Page[OfferRow], error)
	GetOffer(ctx context.Context, id int64) (*Offer, error)
	CreateOffer(ctx context.Context, offer *Offer) error
	UpdateOffer(ctx context.Context, offer *Offer) error
	DeleteOffer(ctx context.Context, id int64) error
}
