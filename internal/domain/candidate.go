package domain

import (
	"context"
	"io"
	"sort"
	"strings"
)

// CandidateStatusOrder is the display order of candidate statuses.
var CandidateStatusOrder = []string{
	"Waiting for interview",
	"Waiting for approval",
	"Waiting for response",
	"Open",
	"Passed Interview",
	"Approved Offer",
	"Rejected Offer",
	"Accepted offer",
	"Declined offer",
	"Cancelled offer",
	"Failed interview",
	"Cancelled interview",
	"Banned",
}

type Candidate struct {
	ID                int64     `json:"id,omitempty"`
	FullName          string    `json:"fullName" validate:"required"`
	Email             string    `json:"email" validate:"required,email"`
	Gender            string    `json:"gender" validate:"required,oneof=male female other"`
	DateOfBirth       Date      `json:"dateOfBirth" validate:"required,past_date"`
	Address           string    `json:"address" validate:"required"`
	PhoneNumber       string    `json:"phoneNumber" validate:"required"`
	CVAttachment      string    `json:"cvAttachment,omitempty" validate:"omitempty,url"`
	CVAttachmentName  string    `json:"cvAttachmentName,omitempty"`
	CurrentPosition   string    `json:"currentPosition" validate:"required"`
	Skills            []string  `json:"skills" validate:"min=1"`
	YearsOfExperience *int      `json:"yearsOfExperience,omitempty" validate:"omitempty,gte=0"`
	HighestLevel      string    `json:"highestLevel" validate:"required,oneof=high_school bachelors masters phd"`
	RecruiterOwner    string    `json:"recruiterOwner" validate:"required"`
	Note              string    `json:"note,omitempty" validate:"max=500"`
	Status            string    `json:"status" validate:"required,oneof=open banned"`
	CreatedAt         Timestamp `json:"createdAt,omitempty"`
}

// CandidateRow is one line of the candidate table.
type CandidateRow struct {
	ID              int64     `json:"id"`
	FullName        string    `json:"fullName"`
	Email           string    `json:"email"`
	PhoneNumber     string    `json:"phoneNumber"`
	CurrentPosition string    `json:"currentPosition"`
	RecruiterOwner  string    `json:"recruiterOwner"`
	Status          string    `json:"status"`
	CreatedAt       Timestamp `json:"createdAt"`
}

// Recruiter is an option for a candidate's recruiter owner.
type Recruiter struct {
	Username string `json:"username"`
	FullName string `json:"fullName"`
}

// CVUpload is a file attached to the candidate form.
type CVUpload struct {
	Filename string
	Content  io.Reader
}

// UploadedFile is what the resource server returns for a stored CV.
type UploadedFile struct {
	FileURL  string `json:"fileUrl"`
	FileName string `json:"fileName"`
}

func statusIndex(status string) int {
	for i, s := range CandidateStatusOrder {
		if strings.EqualFold(s, status) {
			return i
		}
	}
	return -1
}

// SortCandidates orders rows by status position, unknown statuses first,
// then newest first.
func SortCandidates(rows []CandidateRow) {
	sort.SliceStable(rows, func(i, j int) bool {
		si, sj := statusIndex(rows[i].Status), statusIndex(rows[j].Status)
		if si != sj {
			return si < sj
		}
		return rows[i].CreatedAt.After(rows[j].CreatedAt.Time)
	})
}

type CandidateRepository interface {
	List(ctx context.Context, q ListQuery) (*Page[CandidateRow], error)
	GetByID(ctx context.Context, id int64) (*Candidate, error)
	Create(ctx context.Context, c *Candidate) error
	Update(ctx context.Context, c *Candidate) error
	Delete(ctx context.Context, id int64) error
	UploadCV(ctx context.Context, filename string, content io.Reader) (*UploadedFile, error)
	Recruiters(ctx context.Context) ([]Recruiter, error)
}

type CandidateUsecase interface {
	ListCandidates(ctx context.Context, q ListQuery) (*Page[CandidateRow], error)
	GetCandidate(ctx context.Context, id int64) (*Candidate, error)
	CreateCandidate(ctx context.Context, c *Candidate, cv *CVUpload) error
	UpdateCandidate(ctx context.Context, c *Candidate, cv *CVUpload) error
	DeleteCandidate(ctx context.Context, id int64) error
	ListRecruiters(ctx context.Context) ([]Recruiter, error)
}
