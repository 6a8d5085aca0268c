package web

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"recruitment-console/config"
	"recruitment-console/internal/delivery/http/middleware"
	"recruitment-console/internal/delivery/http/response"
	"recruitment-console/internal/domain"
	"recruitment-console/pkg/apperror"
	"recruitment-console/pkg/security"
	"recruitment-console/pkg/validation"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testCSRF = "csrf-test-token"

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeAuth struct {
	sessions  map[string]*domain.Session
	loggedOut []string
}

func (f *fakeAuth) BeginLogin(context.Context) (*domain.LoginStart, error) {
	return &domain.LoginStart{RedirectURL: "https://auth.example/authorize?state=s1", State: "s1"}, nil
}

func (f *fakeAuth) CompleteLogin(_ context.Context, code, state, expected string) (*domain.LoginResult, error) {
	if code == "" || state != expected {
		return nil, apperror.BadRequest("state mismatch")
	}
	return &domain.LoginResult{Session: f.sessions["admin"], Cookie: "admin"}, nil
}

func (f *fakeAuth) Authenticate(_ context.Context, cookie string) (*domain.Session, error) {
	if s, ok := f.sessions[cookie]; ok {
		return s, nil
	}
	return nil, apperror.Unauthorized("Session expired, please sign in again")
}

func (f *fakeAuth) Logout(_ context.Context, s *domain.Session) error {
	if s != nil {
		f.loggedOut = append(f.loggedOut, s.ID)
	}
	return nil
}

type fakeJobs struct {
	rows      []domain.JobRow
	created   []*domain.Job
	deleted   []int64
	createErr error
	deleteErr error
}

func (f *fakeJobs) ListJobs(_ context.Context, q domain.ListQuery) (*domain.Page[domain.JobRow], error) {
	return &domain.Page[domain.JobRow]{Items: f.rows, Page: q.Page, TotalPages: 2}, nil
}

func (f *fakeJobs) GetJob(_ context.Context, id int64) (*domain.Job, error) {
	if id != 3 {
		return nil, apperror.NotFound("Job not found")
	}
	return &domain.Job{ID: 3, Title: "Go engineer", Level: []string{"senior"}}, nil
}

func (f *fakeJobs) CreateJob(_ context.Context, job *domain.Job) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, job)
	return nil
}

func (f *fakeJobs) UpdateJob(context.Context, *domain.Job) error { return nil }

func (f *fakeJobs) DeleteJob(_ context.Context, id int64) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeCandidates struct {
	created []*domain.Candidate
	cvNames []string
}

func (f *fakeCandidates) ListCandidates(_ context.Context, q domain.ListQuery) (*domain.Page[domain.CandidateRow], error) {
	return &domain.Page[domain.CandidateRow]{Page: q.Page}, nil
}

func (f *fakeCandidates) GetCandidate(context.Context, int64) (*domain.Candidate, error) {
	return nil, apperror.NotFound("Candidate not found")
}

func (f *fakeCandidates) CreateCandidate(_ context.Context, c *domain.Candidate, cv *domain.CVUpload) error {
	f.created = append(f.created, c)
	if cv != nil {
		content, _ := io.ReadAll(cv.Content)
		f.cvNames = append(f.cvNames, cv.Filename+":"+string(content))
	}
	return nil
}

func (f *fakeCandidates) UpdateCandidate(context.Context, *domain.Candidate, *domain.CVUpload) error {
	return nil
}

func (f *fakeCandidates) DeleteCandidate(context.Context, int64) error { return nil }

func (f *fakeCandidates) ListRecruiters(context.Context) ([]domain.Recruiter, error) {
	return []domain.Recruiter{{Username: "mai.tran", FullName: "Mai Tran"}}, nil
}

type fakeUsers struct{}

func (fakeUsers) ListUsers(_ context.Context, q domain.ListQuery) (*domain.Page[domain.UserInfo], error) {
	return &domain.Page[domain.UserInfo]{
		Items: []domain.UserInfo{{Username: "thanh.le", Email: "thanh@example.com", Authority: "ROLE_USER", Enabled: true}},
		Page:  q.Page,
	}, nil
}

func (fakeUsers) GetUser(context.Context, string) (*domain.UserInfo, error) {
	return nil, apperror.NotFound("User not found")
}

func (fakeUsers) CreateUser(context.Context, *domain.UserForm) error { return nil }

func (fakeUsers) UpdateUser(context.Context, string, *domain.UserForm) error { return nil }

type fakeInterviews struct{}

func (fakeInterviews) ListInterviews(_ context.Context, q domain.ListQuery) (*domain.Page[domain.InterviewRow], error) {
	return nil, apperror.RequestFailed("upstream down", errors.New("502"))
}

func (fakeInterviews) GetInterview(context.Context, int64) (*domain.Interview, error) {
	return &domain.Interview{InterviewID: 9, Title: "Round 1", CandidateID: 1, Status: "open"}, nil
}

func (fakeInterviews) CreateInterview(context.Context, *domain.Interview) error { return nil }

func (fakeInterviews) UpdateInterview(context.Context, *domain.Interview) error { return nil }

func (fakeInterviews) DeleteInterview(context.Context, int64) error { return nil }

type fakeOffers struct{}

func (fakeOffers) ListOffers(_ context.Context, q domain.ListQuery) (*domain.Page[domain.OfferRow], error) {
	return &domain.Page[domain.OfferRow]{Page: q.Page}, nil
}

func (fakeOffers) GetOffer(context.Context, int64) (*domain.Offer, error) {
	return nil, apperror.NotFound("Offer not found")
}

func (fakeOffers) CreateOffer(context.Context, *domain.Offer) error { return nil }

func (fakeOffers) UpdateOffer(context.Context, *domain.Offer) error { return nil }

func (fakeOffers) DeleteOffer(context.Context, int64) error { return nil }

type fakeLookups struct{}

func (fakeLookups) FormLookups(context.Context) (*domain.FormLookups, error) {
	return &domain.FormLookups{Candidates: []domain.LookupItem{{ID: 1, Name: "Nguyen Van A"}}}, nil
}

type fakeAudit struct {
	listErr error
	queries []domain.ListQuery
}

func (f *fakeAudit) ListAuditEvents(_ context.Context, q domain.ListQuery) (*domain.Page[domain.AuditEntry], error) {
	f.queries = append(f.queries, q)
	if f.listErr != nil {
		return nil, f.listErr
	}
	return &domain.Page[domain.AuditEntry]{Items: []domain.AuditEntry{{
		ID:         1,
		Timestamp:  time.Date(2026, 10, 1, 9, 30, 0, 0, time.UTC),
		EventType:  "job_deleted",
		Severity:   "MEDIUM",
		Actor:      "mai.tran",
		Resource:   "job",
		ResourceID: "3",
	}}, Page: q.Page, TotalPages: 1}, nil
}

func (f *fakeAudit) Summary(context.Context) (*domain.AuditSummary, error) {
	return &domain.AuditSummary{Total: 42, FailedLogins24h: 3, BySeverity: map[string]int64{"HIGH": 2}}, nil
}

type okHealth struct{}

func (okHealth) Check(context.Context) map[string]string {
	return map[string]string{"status": "ok"}
}

type testConsole struct {
	router     *gin.Engine
	auth       *fakeAuth
	jobs       *fakeJobs
	candidates *fakeCandidates
	audit      *fakeAudit
}

func newTestConsole(t *testing.T) *testConsole {
	t.Helper()
	renderer, err := NewRenderer()
	require.NoError(t, err)

	auth := &fakeAuth{sessions: map[string]*domain.Session{
		"admin": {ID: "sid-admin", Identity: domain.Identity{Authenticated: true, Username: "admin", Role: "ROLE_ADMIN"}},
		"recruiter": {ID: "sid-rec", Identity: domain.Identity{
			Authenticated: true, Username: "mai.tran", Role: "ROLE_RECRUITER", Department: "HR",
		}},
	}}
	jobs := &fakeJobs{rows: []domain.JobRow{{ID: 3, Title: "Go engineer", Level: []string{"senior"}, RequiredSkills: []string{"java"}}}}
	candidates := &fakeCandidates{}
	audit := &fakeAudit{}

	cfg := &config.Config{
		GinMode:                  "test",
		SessionTTL:               time.Hour,
		MaxUploadMB:              1,
		RateLimitWindowSeconds:   60,
		RateLimitLoginThreshold:  100,
		RateLimitGlobalThreshold: 1000,
		RateLimitUploadThreshold: 100,
	}
	router := NewRouter(RouterDeps{
		Config:      cfg,
		Renderer:    renderer,
		Audit:       security.NewAuditLoggerWithZap(zap.NewNop(), "console", "test"),
		AuthUC:      auth,
		CandidateUC: candidates,
		UserUC:      fakeUsers{},
		JobUC:       jobs,
		InterviewUC: fakeInterviews{},
		OfferUC:     fakeOffers{},
		LookupUC:    fakeLookups{},
		AuditUC:     audit,
		Health:      okHealth{},
	})
	return &testConsole{router: router, auth: auth, jobs: jobs, candidates: candidates, audit: audit}
}

func (tc *testConsole) do(req *http.Request, identity string) *httptest.ResponseRecorder {
	if identity != "" {
		req.AddCookie(&http.Cookie{Name: middleware.IdentityCookieName, Value: identity})
	}
	req.AddCookie(&http.Cookie{Name: middleware.CSRFTokenCookieName, Value: testCSRF})
	w := httptest.NewRecorder()
	tc.router.ServeHTTP(w, req)
	return w
}

func postForm(path string, values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func flashOf(t *testing.T, w *httptest.ResponseRecorder) *response.Flash {
	t.Helper()
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == response.FlashCookieName && cookie.Value != "" {
			f, err := response.DecodeFlash(cookie.Value)
			require.NoError(t, err)
			return f
		}
	}
	return nil
}

func TestBreadcrumbs(t *testing.T) {
	assert.Nil(t, Breadcrumbs("/"))
	assert.Equal(t, []Crumb{
		{Label: "Homepage", Href: "/"},
		{Label: "Candidate", Href: "/candidate"},
		{Label: "12", Href: "/candidate/12"},
		{Label: "Edit"},
	}, Breadcrumbs("/candidate/12/edit"))
	assert.Equal(t, []Crumb{
		{Label: "Homepage", Href: "/"},
		{Label: "Job"},
	}, Breadcrumbs("/job"))
}

func TestPageURL(t *testing.T) {
	assert.Equal(t, "/job", pageURL("/job", domain.ListQuery{}, 0))
	assert.Equal(t, "/job?page=3&search=go&status=open", pageURL("/job", domain.ListQuery{Search: "go", Status: "open"}, 2))
	assert.Equal(t, "/user?role=ROLE_ADMIN", pageURL("/user", domain.ListQuery{Role: "ROLE_ADMIN"}, 0))
}

func TestRendererParsesEveryPage(t *testing.T) {
	renderer, err := NewRenderer()
	require.NoError(t, err)
	for _, name := range []string{
		"home", "login", "error",
		"candidate_list", "candidate_detail", "candidate_form",
		"user_list", "user_detail", "user_form",
		"job_list", "job_detail", "job_form",
		"interview_list", "interview_detail", "interview_form",
		"offer_list", "offer_detail", "offer_form",
		"audit_list",
	} {
		assert.Contains(t, renderer.pages, name)
	}
}

func TestRouteGuard(t *testing.T) {
	tc := newTestConsole(t)

	t.Run("anonymous page view goes to login", func(t *testing.T) {
		w := tc.do(httptest.NewRequest(http.MethodGet, "/job", nil), "")
		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, middleware.LoginPath, w.Header().Get("Location"))
	})

	t.Run("login starts the authorization redirect", func(t *testing.T) {
		w := tc.do(httptest.NewRequest(http.MethodGet, "/login", nil), "")
		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "https://auth.example/authorize?state=s1", w.Header().Get("Location"))
	})

	t.Run("signed in user skips login", func(t *testing.T) {
		w := tc.do(httptest.NewRequest(http.MethodGet, "/login", nil), "recruiter")
		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/", w.Header().Get("Location"))
	})

	t.Run("callback sets the identity cookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/postlogin?code=c1&state=s1", nil)
		req.AddCookie(&http.Cookie{Name: stateCookieName, Value: "s1"})
		w := tc.do(req, "")
		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/", w.Header().Get("Location"))
		assert.Contains(t, w.Header().Values("Set-Cookie"), "auth-storage=admin; Path=/; Max-Age=3600; HttpOnly; SameSite=Lax")
	})

	t.Run("non-admin cannot open users", func(t *testing.T) {
		w := tc.do(httptest.NewRequest(http.MethodGet, "/user", nil), "recruiter")
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Contains(t, w.Body.String(), "You do not have permission to access this page")
	})

	t.Run("admin sees users", func(t *testing.T) {
		w := tc.do(httptest.NewRequest(http.MethodGet, "/user", nil), "admin")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "thanh.le")
	})

	t.Run("logout drops the session", func(t *testing.T) {
		w := tc.do(postForm("/logout", url.Values{"_csrf": {testCSRF}}), "recruiter")
		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, middleware.LoginPath, w.Header().Get("Location"))
		assert.Contains(t, tc.auth.loggedOut, "sid-rec")
	})
}

func TestHomePage(t *testing.T) {
	tc := newTestConsole(t)
	w := tc.do(httptest.NewRequest(http.MethodGet, "/", nil), "recruiter")

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Welcome, mai.tran")
	assert.Contains(t, body, "RECRUITER")
	assert.NotContains(t, body, `href="/user"`)
	assert.NotContains(t, body, `href="/audit"`)
}

func TestJobPages(t *testing.T) {
	tc := newTestConsole(t)

	t.Run("list renders rows and pagination", func(t *testing.T) {
		w := tc.do(httptest.NewRequest(http.MethodGet, "/job?search=go", nil), "recruiter")
		require.Equal(t, http.StatusOK, w.Code)
		body := w.Body.String()
		assert.Contains(t, body, "Go engineer")
		assert.Contains(t, body, "Senior")
		assert.Contains(t, body, "Page 1 of 2")
		assert.Contains(t, body, "/job?page=2&amp;search=go")
		assert.Contains(t, body, `value="`+testCSRF+`"`)
	})

	t.Run("detail of unknown job is not found", func(t *testing.T) {
		w := tc.do(httptest.NewRequest(http.MethodGet, "/job/77", nil), "recruiter")
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "Job not found")
	})

	t.Run("rejected form re-renders with field errors", func(t *testing.T) {
		tc.jobs.createErr = validation.NewFormError("title", "Title is required")
		defer func() { tc.jobs.createErr = nil }()

		w := tc.do(postForm("/job/add", url.Values{"_csrf": {testCSRF}, "workingAddress": {"Ha Noi"}}), "recruiter")
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Contains(t, w.Body.String(), "Title is required")
		assert.Contains(t, w.Body.String(), `value="Ha Noi"`)
	})

	t.Run("unparseable date is a field error", func(t *testing.T) {
		w := tc.do(postForm("/job/add", url.Values{"_csrf": {testCSRF}, "startDate": {"tomorrow"}}), "recruiter")
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Contains(t, w.Body.String(), "Invalid date")
	})

	t.Run("create redirects with a toast", func(t *testing.T) {
		w := tc.do(postForm("/job/add", url.Values{
			"_csrf":          {testCSRF},
			"title":          {"Go engineer"},
			"startDate":      {"2026-11-01"},
			"endDate":        {"2026-12-01"},
			"level":          {"mid", "senior"},
			"requiredSkills": {"java"},
			"benefits":       {"health"},
			"workingAddress": {"Ha Noi"},
		}), "recruiter")

		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, "/job", w.Header().Get("Location"))
		f := flashOf(t, w)
		require.NotNil(t, f)
		assert.Equal(t, response.FlashSuccess, f.Kind)
		assert.Equal(t, "Job created successfully", f.Message)

		require.Len(t, tc.jobs.created, 1)
		assert.Equal(t, []string{"mid", "senior"}, tc.jobs.created[0].Level)
		assert.Equal(t, "2026-11-01", tc.jobs.created[0].StartDate.String())
	})

	t.Run("deleting the last row steps back a page", func(t *testing.T) {
		w := tc.do(postForm("/job/3/delete", url.Values{
			"_csrf": {testCSRF}, "page": {"3"}, "rows": {"1"}, "search": {"go"},
		}), "recruiter")

		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, "/job?page=2&search=go", w.Header().Get("Location"))
		assert.Equal(t, []int64{3}, tc.jobs.deleted)
		assert.Equal(t, "Job deleted successfully", flashOf(t, w).Message)
	})

	t.Run("failed delete keeps the page", func(t *testing.T) {
		tc.jobs.deleteErr = apperror.RequestFailed("boom", errors.New("500"))
		defer func() { tc.jobs.deleteErr = nil }()

		w := tc.do(postForm("/job/3/delete", url.Values{"_csrf": {testCSRF}, "page": {"1"}, "rows": {"4"}}), "recruiter")
		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, "/job", w.Header().Get("Location"))
		f := flashOf(t, w)
		require.NotNil(t, f)
		assert.Equal(t, response.FlashError, f.Kind)
	})

	t.Run("expired upstream session signs the user out", func(t *testing.T) {
		tc.jobs.createErr = apperror.Unauthorized("token rejected")
		defer func() { tc.jobs.createErr = nil }()

		w := tc.do(postForm("/job/add", url.Values{"_csrf": {testCSRF}}), "recruiter")
		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, middleware.LoginPath, w.Header().Get("Location"))
		assert.Equal(t, middleware.SessionExpiredMessage, flashOf(t, w).Message)
	})
}

func TestCSRFRejection(t *testing.T) {
	tc := newTestConsole(t)

	w := tc.do(postForm("/job/3/delete", url.Values{"_csrf": {"forged"}}), "recruiter")
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid or missing CSRF token")
	assert.Empty(t, tc.jobs.deleted)
}

func TestListFailureShowsToast(t *testing.T) {
	tc := newTestConsole(t)
	w := tc.do(httptest.NewRequest(http.MethodGet, "/interview", nil), "recruiter")

	assert.Equal(t, http.StatusBadGateway, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Failed to fetch interviews")
	assert.Contains(t, body, "No records found")
}

func TestCandidateUpload(t *testing.T) {
	tc := newTestConsole(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fields := map[string]string{
		"_csrf":           testCSRF,
		"fullName":        "Nguyen Van A",
		"email":           "a@example.com",
		"gender":          "male",
		"dateOfBirth":     "1995-04-02",
		"address":         "Ha Noi",
		"phoneNumber":     "0912345678",
		"currentPosition": "Tester",
		"highestLevel":    "bachelors",
		"recruiterOwner":  "mai.tran",
		"status":          "open",
	}
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	require.NoError(t, mw.WriteField("skills", "Java"))
	part, err := mw.CreateFormFile("cvFile", "cv.pdf")
	require.NoError(t, err)
	_, err = part.Write([]byte("%PDF-1.4"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/candidate/add", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := tc.do(req, "recruiter")

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/candidate", w.Header().Get("Location"))
	require.Len(t, tc.candidates.created, 1)
	assert.Equal(t, []string{"Java"}, tc.candidates.created[0].Skills)
	assert.Equal(t, []string{"cv.pdf:%PDF-1.4"}, tc.candidates.cvNames)
}

func TestCandidateFormListsRecruiters(t *testing.T) {
	tc := newTestConsole(t)
	w := tc.do(httptest.NewRequest(http.MethodGet, "/candidate/add", nil), "recruiter")

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `enctype="multipart/form-data"`)
	assert.Contains(t, body, "Mai Tran")
	assert.Contains(t, body, `name="cvFile"`)
}

func TestInterviewDetailResolvesLookups(t *testing.T) {
	tc := newTestConsole(t)
	w := tc.do(httptest.NewRequest(http.MethodGet, "/interview/9", nil), "recruiter")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Nguyen Van A")
}

func TestUnknownRoute(t *testing.T) {
	tc := newTestConsole(t)
	w := tc.do(httptest.NewRequest(http.MethodGet, "/nowhere", nil), "recruiter")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Page not found")
}

func TestAuditLogPage(t *testing.T) {
	t.Run("admin sees summary and events", func(t *testing.T) {
		tc := newTestConsole(t)
		w := tc.do(httptest.NewRequest(http.MethodGet, "/audit?status=MEDIUM&search=mai", nil), "admin")

		require.Equal(t, http.StatusOK, w.Code)
		body := w.Body.String()
		assert.Contains(t, body, "job_deleted")
		assert.Contains(t, body, "2026-10-01 09:30:00")
		assert.Contains(t, body, "Failed logins (24h)")
		assert.NotContains(t, body, `href="/audit/add"`)
		require.Len(t, tc.audit.queries, 1)
		assert.Equal(t, "MEDIUM", tc.audit.queries[0].Status)
		assert.Equal(t, "mai", tc.audit.queries[0].Search)
	})

	t.Run("recruiter is forbidden", func(t *testing.T) {
		tc := newTestConsole(t)
		w := tc.do(httptest.NewRequest(http.MethodGet, "/audit", nil), "recruiter")

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Empty(t, tc.audit.queries)
	})

	t.Run("unconfigured log explains itself", func(t *testing.T) {
		tc := newTestConsole(t)
		tc.audit.listErr = apperror.New(http.StatusServiceUnavailable, "The audit log is not available.", nil)
		w := tc.do(httptest.NewRequest(http.MethodGet, "/audit", nil), "admin")

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Contains(t, w.Body.String(), "The audit log is not available.")
		assert.Contains(t, w.Body.String(), "No records found")
	})
}

func TestJSONEndpoints(t *testing.T) {
	tc := newTestConsole(t)

	w := tc.do(httptest.NewRequest(http.MethodGet, "/v1/health", nil), "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)

	w = tc.do(httptest.NewRequest(http.MethodGet, "/v1/session", nil), "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "application/json")

	w = tc.do(httptest.NewRequest(http.MethodGet, "/v1/session", nil), "recruiter")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"username":"mai.tran"`)
	assert.Contains(t, w.Body.String(), `"is_admin":false`)
}
