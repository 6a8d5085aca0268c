package domain

import "context"

type Interview struct {
	InterviewID   int64  `json:"interviewId,omitempty"`
	Title         string `json:"title" validate:"required"`
	CandidateID   int64  `json:"candidateId" validate:"gt=0"`
	JobID         int64  `json:"jobId" validate:"gt=0"`
	Interviewer   string `json:"interviewer" validate:"required"`
	ScheduleDate  Date   `json:"scheduleDate" validate:"required"`
	ScheduleStart string `json:"scheduleStart" validate:"required,clock"`
	ScheduleEnd   string `json:"scheduleEnd" validate:"required,clock"`
	Location      string `json:"location,omitempty"`
	MeetingLink   string `json:"meetingLink,omitempty" validate:"omitempty,url"`
	Note          string `json:"note,omitempty" validate:"max=500"`
	Result        string `json:"result,omitempty" validate:"omitempty,oneof=pass fail pending"`
	Status        string `json:"status" validate:"required,oneof=open invited interviewed cancelled"`
}

// InterviewRow is one line of the interview table.
type InterviewRow struct {
	InterviewID   int64  `json:"interviewId"`
	Title         string `json:"title"`
	CandidateName string `json:"candidateName"`
	Interviewer   string `json:"interviewer"`
	ScheduleStart string `json:"scheduleStart"`
	Result        string `json:"result"`
	Status        string `json:"status"`
	JobTitle      string `json:"jobTitle"`
}

type InterviewRepository interface {
	List(ctx context.Context, q ListQuery) (*Page[InterviewRow], error)
	GetByID(ctx context.Context, id int64) (*Interview, error)
	Create(ctx context.Context, interview *Interview) error
	Update(ctx context.Context, interview *Interview) error
	Delete(ctx context.Context, id int64) error
}

type InterviewUsecase interface {
	ListInterviews(ctx context.Context, q ListQuery) (*Page[InterviewRow], error)
	GetInterview(ctx context.Context, id int64) (*Interview, error)
	CreateInterview(ctx context.Context, interview *Interview) error
	UpdateInterview(ctx context.Context, interview *Interview) error
	DeleteInterview(ctx context.Context, id int64) error
}
