package domain

import "context"

type Job struct {
	ID              int64    `json:"id,omitempty"`
	Title           string   `json:"title" validate:"required"`
	StartDate       Date     `json:"startDate" validate:"required"`
	EndDate         Date     `json:"endDate" validate:"required,gtefield=StartDate"`
	Level           []string `json:"level" validate:"min=1,dive,oneof=entry mid senior"`
	RequiredSkills  []string `json:"requiredSkills" validate:"min=1"`
	Benefits        []string `json:"benefits" validate:"min=1"`
	Description     string   `json:"description,omitempty"`
	WorkingAddress  string   `json:"workingAddress" validate:"required"`
	SalaryRangeFrom *float64 `json:"salaryRangeFrom,omitempty" validate:"omitempty,gte=0"`
	SalaryRangeTo   *float64 `json:"salaryRangeTo,omitempty" validate:"omitempty,gte=0"`
	Status          string   `json:"status,omitempty"`
}

// JobRow is one line of the job table.
type JobRow struct {
	ID             int64    `json:"id"`
	Title          string   `json:"title"`
	RequiredSkills []string `json:"requiredSkills"`
	StartDate      Date     `json:"startDate"`
	EndDate        Date     `json:"endDate"`
	Level          []string `json:"level"`
	Status         string   `json:"status"`
}

type JobRepository interface {
	List(ctx context.Context, q ListQuery) (*Page[JobRow], error)
	GetByID(ctx context.Context, id int64) (*Job, error)
	Create(ctx context.Context, job *Job) error
	Update(ctx context.Context, job *Job) error
	Delete(ctx context.Context, id int64) error
}

type JobUsecase interface {
	ListJobs(ctx context.Context, q ListQuery) (*Page[JobRow], error)
	GetJob(ctx context.Context, id int64) (*Job, error)
	CreateJob(ctx context.Context, job *Job) error
	UpdateJob(ctx context.Context, job *Job) error
	DeleteJob(ctx context.Context, id int64) error
}
