package usecase_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"recruitment-console/internal/domain"
	"recruitment-console/internal/repository/session"
	"recruitment-console/internal/usecase"
	"recruitment-console/pkg/apperror"
	"recruitment-console/pkg/security"
	"recruitment-console/pkg/security/antivirus"
	"recruitment-console/pkg/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

// Mock Repositories
type MockCandidateRepo struct {
	mock.Mock
}

func (m *MockCandidateRepo) List(ctx context.Context, q domain.ListQuery) (*domain.Page[domain.CandidateRow], error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Page[domain.CandidateRow]), args.Error(1)
}

func (m *MockCandidateRepo) GetByID(ctx context.Context, id int64) (*domain.Candidate, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Candidate), args.Error(1)
}

func (m *MockCandidateRepo) Create(ctx context.Context, c *domain.Candidate) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockCandidateRepo) Update(ctx context.Context, c *domain.Candidate) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockCandidateRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockCandidateRepo) UploadCV(ctx context.Context, filename string, content io.Reader) (*domain.UploadedFile, error) {
	args := m.Called(ctx, filename, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UploadedFile), args.Error(1)
}

func (m *MockCandidateRepo) Recruiters(ctx context.Context) ([]domain.Recruiter, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Recruiter), args.Error(1)
}

type MockJobRepo struct {
	mock.Mock
}

func (m *MockJobRepo) List(ctx context.Context, q domain.ListQuery) (*domain.Page[domain.JobRow], error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Page[domain.JobRow]), args.Error(1)
}

func (m *MockJobRepo) GetByID(ctx context.Context, id int64) (*domain.Job, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Job), args.Error(1)
}

func (m *MockJobRepo) Create(ctx context.Context, job *domain.Job) error {
	return m.Called(ctx, job).Error(0)
}

func (m *MockJobRepo) Update(ctx context.Context, job *domain.Job) error {
	return m.Called(ctx, job).Error(0)
}

func (m *MockJobRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type MockInterviewRepo struct {
	mock.Mock
}

func (m *MockInterviewRepo) List(ctx context.Context, q domain.ListQuery) (*domain.Page[domain.InterviewRow], error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Page[domain.InterviewRow]), args.Error(1)
}

func (m *MockInterviewRepo) GetByID(ctx context.Context, id int64) (*domain.Interview, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Interview), args.Error(1)
}

func (m *MockInterviewRepo) Create(ctx context.Context, interview *domain.Interview) error {
	return m.Called(ctx, interview).Error(0)
}

func (m *MockInterviewRepo) Update(ctx context.Context, interview *domain.Interview) error {
	return m.Called(ctx, interview).Error(0)
}

func (m *MockInterviewRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type MockOfferRepo struct {
	mock.Mock
}

func (m *MockOfferRepo) List(ctx context.Context, q domain.ListQuery) (*domain.Page[domain.OfferRow], error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Page[domain.OfferRow]), args.Error(1)
}

func (m *MockOfferRepo) GetByID(ctx context.Context, id int64) (*domain.Offer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Offer), args.Error(1)
}

func (m *MockOfferRepo) Create(ctx context.Context, offer *domain.Offer) error {
	return m.Called(ctx, offer).Error(0)
}

func (m *MockOfferRepo) Update(ctx context.Context, offer *domain.Offer) error {
	return m.Called(ctx, offer).Error(0)
}

func (m *MockOfferRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) List(ctx context.Context, q domain.ListQuery) (*domain.Page[domain.UserInfo], error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Page[domain.UserInfo]), args.Error(1)
}

func (m *MockUserRepo) GetByUsername(ctx context.Context, username string) (*domain.UserInfo, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserInfo), args.Error(1)
}

func (m *MockUserRepo) Create(ctx context.Context, u *domain.UserForm) error {
	return m.Called(ctx, u).Error(0)
}

func (m *MockUserRepo) Update(ctx context.Context, username string, u *domain.UserForm) error {
	return m.Called(ctx, username, u).Error(0)
}

type MockLookupRepo struct {
	mock.Mock
}

func (m *MockLookupRepo) Fetch(ctx context.Context, kind string) ([]domain.LookupItem, error) {
	args := m.Called(ctx, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LookupItem), args.Error(1)
}

type stubScanner struct {
	result antivirus.ScanResult
}

func (s *stubScanner) Scan(ctx context.Context, filename string, data []byte) antivirus.ScanResult {
	return s.result
}

func (s *stubScanner) Name() string {
	return "stub"
}

func (s *stubScanner) Available(ctx context.Context) bool {
	return true
}

func observedAudit() (*security.AuditLogger, *observer.ObservedLogs) {
	core, logs := observer.New(zap.InfoLevel)
	return security.NewAuditLoggerWithZap(zap.New(core), "console", "test"), logs
}

func formFields(t *testing.T, err error) map[string]string {
	t.Helper()
	formErr, ok := validation.AsFormError(err)
	require.True(t, ok, "expected a form error, got %v", err)
	return formErr.Fields
}

func validCandidate() *domain.Candidate {
	return &domain.Candidate{
		FullName:        "Nguyen Van A",
		Email:           "a@example.com",
		Gender:          "male",
		DateOfBirth:     domain.NewDate(1992, time.March, 3),
		Address:         "Hanoi",
		PhoneNumber:     "0912345678",
		CurrentPosition: "Backend Developer",
		Skills:          []string{"Java"},
		HighestLevel:    "bachelors",
		RecruiterOwner:  "alice",
	}
}

func validJob() *domain.Job {
	return &domain.Job{
		Title:          "Go Engineer",
		StartDate:      domain.NewDate(2025, time.January, 1),
		EndDate:        domain.NewDate(2025, time.March, 1),
		Level:          []string{"mid"},
		RequiredSkills: []string{"go"},
		Benefits:       []string{"travel"},
		WorkingAddress: "Hanoi",
	}
}

func pdfUpload() *domain.CVUpload {
	return &domain.CVUpload{
		Filename: "cv.pdf",
		Content:  strings.NewReader("%PDF-1.4\n1 0 obj\n<< /Type /Catalog >>\nendobj\n"),
	}
}

func TestCandidateCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("Should default status to open and upload the CV first", func(t *testing.T) {
		repo := new(MockCandidateRepo)
		audit, logs := observedAudit()
		uc := usecase.NewCandidateUsecase(repo, nil, domain.NewValidator(), audit)

		repo.On("UploadCV", ctx, "cv.pdf", mock.Anything).
			Return(&domain.UploadedFile{FileURL: "https://files.local/cv-1", FileName: "cv.pdf"}, nil)
		repo.On("Create", ctx, mock.AnythingOfType("*domain.Candidate")).Return(nil).Run(func(args mock.Arguments) {
			c := args.Get(1).(*domain.Candidate)
			assert.Equal(t, "open", c.Status)
			assert.Equal(t, "https://files.local/cv-1", c.CVAttachment)
			assert.Equal(t, "cv.pdf", c.CVAttachmentName)
		})

		require.NoError(t, uc.CreateCandidate(ctx, validCandidate(), pdfUpload()))
		repo.AssertExpectations(t)
		assert.Equal(t, 1, logs.FilterMessage("cv_uploaded").Len())
		assert.Equal(t, 1, logs.FilterMessage("candidate_created").Len())
	})

	t.Run("Should reject invalid fields without calling the server", func(t *testing.T) {
		repo := new(MockCandidateRepo)
		uc := usecase.NewCandidateUsecase(repo, nil, domain.NewValidator(), nil)

		c := validCandidate()
		c.Email = "not-an-email"
		c.Skills = nil
		fields := formFields(t, uc.CreateCandidate(ctx, c, pdfUpload()))
		assert.Equal(t, "Invalid email address", fields["email"])
		assert.Equal(t, "At least one skill is required", fields["skills"])
		repo.AssertNotCalled(t, "UploadCV", mock.Anything, mock.Anything, mock.Anything)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Should reject a disallowed file type", func(t *testing.T) {
		repo := new(MockCandidateRepo)
		audit, logs := observedAudit()
		uc := usecase.NewCandidateUsecase(repo, nil, domain.NewValidator(), audit)

		upload := &domain.CVUpload{Filename: "cv.exe", Content: strings.NewReader("MZ")}
		fields := formFields(t, uc.CreateCandidate(ctx, validCandidate(), upload))
		assert.Equal(t, "Only PDF, DOC or DOCX files are allowed", fields["cvAttachment"])
		assert.Equal(t, 1, logs.FilterMessage("upload_rejected").Len())
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Should reject an infected file", func(t *testing.T) {
		repo := new(MockCandidateRepo)
		scanner := &stubScanner{result: antivirus.ScanResult{Infected: true, ThreatName: "Eicar-Test-Signature"}}
		guard := usecase.NewCVGuard(nil, scanner, nil, nil)
		uc := usecase.NewCandidateUsecase(repo, guard, domain.NewValidator(), nil)

		fields := formFields(t, uc.CreateCandidate(ctx, validCandidate(), pdfUpload()))
		assert.Equal(t, "File failed the virus scan", fields["cvAttachment"])
		repo.AssertNotCalled(t, "UploadCV", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Should fail closed when no scanner can run", func(t *testing.T) {
		repo := new(MockCandidateRepo)
		scanner := &stubScanner{result: antivirus.ScanResult{Infected: true, Error: errors.New("clamd down")}}
		guard := usecase.NewCVGuard(nil, scanner, nil, nil)
		uc := usecase.NewCandidateUsecase(repo, guard, domain.NewValidator(), nil)

		fields := formFields(t, uc.CreateCandidate(ctx, validCandidate(), pdfUpload()))
		assert.Equal(t, "File could not be scanned, please try again later", fields["cvAttachment"])
	})

	t.Run("Should skip the upload when no file is attached", func(t *testing.T) {
		repo := new(MockCandidateRepo)
		uc := usecase.NewCandidateUsecase(repo, nil, domain.NewValidator(), nil)
		repo.On("Create", ctx, mock.AnythingOfType("*domain.Candidate")).Return(nil)

		require.NoError(t, uc.CreateCandidate(ctx, validCandidate(), nil))
		repo.AssertNotCalled(t, "UploadCV", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestCandidateDeletePropagatesRemoteError(t *testing.T) {
	ctx := context.Background()
	repo := new(MockCandidateRepo)
	uc := usecase.NewCandidateUsecase(repo, nil, domain.NewValidator(), nil)

	repo.On("Delete", ctx, int64(4)).Return(apperror.NotFound("Not found"))
	err := uc.DeleteCandidate(ctx, 4)
	assert.Equal(t, http.StatusNotFound, apperror.StatusCode(err))
}

func TestListNormalizesPaging(t *testing.T) {
	ctx := context.Background()
	repo := new(MockJobRepo)
	uc := usecase.NewJobUsecase(repo, domain.NewValidator(), nil)

	want := domain.ListQuery{Page: 0, Size: 100, Search: "go"}
	repo.On("List", ctx, want).Return(&domain.Page[domain.JobRow]{}, nil)

	_, err := uc.ListJobs(ctx, domain.ListQuery{Page: -3, Size: 500, Search: "go"})
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestJobSalaryRange(t *testing.T) {
	ctx := context.Background()
	from, to := 2000.0, 1500.0

	t.Run("Should reject To below From", func(t *testing.T) {
		repo := new(MockJobRepo)
		uc := usecase.NewJobUsecase(repo, domain.NewValidator(), nil)

		job := validJob()
		job.SalaryRangeFrom, job.SalaryRangeTo = &from, &to
		fields := formFields(t, uc.CreateJob(ctx, job))
		assert.Equal(t, "Salary to must not be less than salary from", fields["salaryRangeTo"])
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Should merge the range rule with tag failures", func(t *testing.T) {
		repo := new(MockJobRepo)
		uc := usecase.NewJobUsecase(repo, domain.NewValidator(), nil)

		job := validJob()
		job.Title = ""
		job.SalaryRangeFrom, job.SalaryRangeTo = &from, &to
		fields := formFields(t, uc.UpdateJob(ctx, job))
		assert.Len(t, fields, 2)
		assert.Equal(t, "Required field", fields["title"])
	})

	t.Run("Should accept a single bound", func(t *testing.T) {
		repo := new(MockJobRepo)
		uc := usecase.NewJobUsecase(repo, domain.NewValidator(), nil)
		repo.On("Create", ctx, mock.AnythingOfType("*domain.Job")).Return(nil)

		job := validJob()
		job.SalaryRangeFrom = &from
		require.NoError(t, uc.CreateJob(ctx, job))
		repo.AssertExpectations(t)
	})
}

func TestInterviewEndAfterStart(t *testing.T) {
	ctx := context.Background()
	repo := new(MockInterviewRepo)
	uc := usecase.NewInterviewUsecase(repo, domain.NewValidator(), nil)

	interview := &domain.Interview{
		Title:         "Round 1",
		CandidateID:   1,
		JobID:         2,
		Interviewer:   "bob",
		ScheduleDate:  domain.NewDate(2025, time.May, 5),
		ScheduleStart: "10:00",
		ScheduleEnd:   "09:30",
		Status:        "open",
	}
	fields := formFields(t, uc.CreateInterview(ctx, interview))
	assert.Equal(t, "End time must be after start time", fields["scheduleEnd"])

	interview.ScheduleEnd = "11:00"
	repo.On("Create", ctx, interview).Return(nil)
	require.NoError(t, uc.CreateInterview(ctx, interview))
	repo.AssertExpectations(t)
}

func TestOfferDefaultsToPending(t *testing.T) {
	ctx := context.Background()
	repo := new(MockOfferRepo)
	uc := usecase.NewOfferUsecase(repo, domain.NewValidator(), nil)

	offer := &domain.Offer{
		InterviewID:         3,
		CandidateID:         4,
		UserID:              5,
		Department:          "IT",
		Position:            "Backend Developer",
		ContractType:        "Trial 2 months",
		Level:               "Junior",
		ContractPeriodStart: domain.NewDate(2025, time.June, 1),
		ContractPeriodEnd:   domain.NewDate(2025, time.December, 1),
		DueDate:             domain.NewDate(2025, time.May, 20),
		BaseSalary:          1500,
	}
	repo.On("Create", ctx, offer).Return(nil)

	require.NoError(t, uc.CreateOffer(ctx, offer))
	assert.Equal(t, domain.DefaultOfferStatus, offer.Status)
	repo.AssertExpectations(t)

	offer.ContractPeriodEnd = domain.NewDate(2025, time.January, 1)
	fields := formFields(t, uc.UpdateOffer(ctx, offer))
	assert.Equal(t, "Contract end must not be before contract start", fields["contractPeriodEnd"])
}

func TestUserCreateAndUpdate(t *testing.T) {
	ctx := context.Background()
	repo := new(MockUserRepo)
	audit, logs := observedAudit()
	uc := usecase.NewUserUsecase(repo, domain.NewValidator(), audit)

	form := &domain.UserForm{
		FullName:   "Mai Tran",
		Email:      "mai@example.com",
		Role:       "recruiter",
		Department: "HR",
	}
	repo.On("Create", ctx, form).Return(nil)
	require.NoError(t, uc.CreateUser(ctx, form))
	assert.Equal(t, "active", form.Status)

	invalid := &domain.UserForm{FullName: "M", Email: "mai@example.com", Role: "admin", Department: "HR", Status: "active"}
	fields := formFields(t, uc.UpdateUser(ctx, "mai", invalid))
	assert.Equal(t, "Full name must be at least 2 characters", fields["fullName"])
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	assert.Equal(t, 1, logs.FilterMessage("validation_failed").Len())

	_, err := uc.GetUser(ctx, "  ")
	assert.Equal(t, http.StatusNotFound, apperror.StatusCode(err))
}

func TestFormLookupsAreCached(t *testing.T) {
	ctx := context.Background()
	repo := new(MockLookupRepo)
	uc := usecase.NewLookupUsecase(repo, session.NewMemoryCache(), time.Minute)

	repo.On("Fetch", mock.Anything, domain.LookupUsers).Return([]domain.LookupItem{{ID: 1, Name: "alice"}}, nil).Once()
	repo.On("Fetch", mock.Anything, domain.LookupCandidates).Return([]domain.LookupItem{{ID: 2, Name: "Bao"}}, nil).Once()
	repo.On("Fetch", mock.Anything, domain.LookupInterviews).Return([]domain.LookupItem{}, nil).Once()
	repo.On("Fetch", mock.Anything, domain.LookupJobs).Return([]domain.LookupItem{{ID: 9, Name: "Go Engineer"}}, nil).Once()

	first, err := uc.FormLookups(ctx)
	require.NoError(t, err)
	second, err := uc.FormLookups(ctx)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, "alice", second.Users[0].Name)
	assert.Equal(t, int64(9), second.Jobs[0].ID)
	repo.AssertExpectations(t)
}

func TestFormLookupsFailure(t *testing.T) {
	ctx := context.Background()
	repo := new(MockLookupRepo)
	uc := usecase.NewLookupUsecase(repo, nil, time.Minute)

	repo.On("Fetch", mock.Anything, domain.LookupJobs).Return(nil, apperror.RequestFailed("Failed to fetch jobs", nil))
	repo.On("Fetch", mock.Anything, mock.Anything).Return([]domain.LookupItem{}, nil)

	_, err := uc.FormLookups(ctx)
	assert.Equal(t, http.StatusBadGateway, apperror.StatusCode(err))
}

func TestHealthCheck(t *testing.T) {
	uc := usecase.NewHealthUsecase(
		usecase.HealthCheck{Name: "redis", Check: func(ctx context.Context) error { return nil }},
		usecase.HealthCheck{Name: "postgres", Check: func(ctx context.Context) error { return errors.New("down") }},
	)

	status := uc.Check(context.Background())
	assert.Equal(t, "degraded", status["status"])
	assert.Equal(t, "ok", status["redis"])
	assert.Equal(t, "down", status["postgres"])

	assert.Equal(t, "ok", usecase.NewHealthUsecase().Check(context.Background())["status"])
}
