package remote

import (
	"context"
	"io"
	"net/http"
	"net/url"

	"recruitment-console/internal/domain"
)

// api is the subset of *resource.Client the repositories use.
type api interface {
	GetJSON(ctx context.Context, path string, query url.Values, out any) error
	SendJSON(ctx context.Context, method, path string, body any, out any) error
	Delete(ctx context.Context, path string) error
	Upload(ctx context.Context, path, field, filename string, content io.Reader, out any) error
	PostForm(ctx context.Context, path string, form url.Values) error
}

const (
	candidateBase   = "/candidate-resource-server/candidate"
	recruitersPath  = "/resource-server/recruiter"
	cvUploadField   = "cvAttachment"
	candidateAddURL = candidateBase + "/add"
)

type candidateRepository struct {
	api api
}

func NewCandidateRepository(client api) domain.CandidateRepository {
	return &candidateRepository{api: client}
}

type candidateListResponse struct {
	Candidates []domain.CandidateRow `json:"candidates"`
	TotalPages int                   `json:"totalPages"`
}

func (r *candidateRepository) List(ctx context.Context, q domain.ListQuery) (*domain.Page[domain.CandidateRow], error) {
	query := pagingQuery("pageNo", q.Page, q.Size)
	setIfNotEmpty(query, "filterBy", q.Search)
	setIfNotEmpty(query, "status", q.Status)

	var resp candidateListResponse
	if err := r.api.GetJSON(ctx, candidateBase, query, &resp); err != nil {
		return nil, mapError(err, "fetch candidates")
	}
	domain.SortCandidates(resp.Candidates)
	return &domain.Page[domain.CandidateRow]{
		Items:      resp.Candidates,
		Page:       q.Page,
		TotalPages: resp.TotalPages,
	}, nil
}

func (r *candidateRepository) GetByID(ctx context.Context, id int64) (*domain.Candidate, error) {
	var candidate domain.Candidate
	if err := r.api.GetJSON(ctx, idPath(candidateBase, id), nil, &candidate); err != nil {
		return nil, mapError(err, "fetch candidate")
	}
	return &candidate, nil
}

func (r *candidateRepository) Create(ctx context.Context, c *domain.Candidate) error {
	if err := r.api.SendJSON(ctx, http.MethodPost, candidateAddURL, c, nil); err != nil {
		return mapError(err, "add candidate")
	}
	return nil
}

func (r *candidateRepository) Update(ctx context.Context, c *domain.Candidate) error {
	if err := r.api.SendJSON(ctx, http.MethodPut, idPath(candidateBase, c.ID), c, nil); err != nil {
		return mapError(err, "update candidate")
	}
	return nil
}

func (r *candidateRepository) Delete(ctx context.Context, id int64) error {
	if err := r.api.Delete(ctx, idPath(candidateBase, id)); err != nil {
		return mapError(err, "delete candidate")
	}
	return nil
}

func (r *candidateRepository) UploadCV(ctx context.Context, filename string, content io.Reader) (*domain.UploadedFile, error) {
	var uploaded domain.UploadedFile
	if err := r.api.Upload(ctx, candidateBase+"/upload", cvUploadField, filename, content, &uploaded); err != nil {
		return nil, mapError(err, "upload CV")
	}
	if uploaded.FileName == "" {
		uploaded.FileName = filename
	}
	return &uploaded, nil
}

func (r *candidateRepository) Recruiters(ctx context.Context) ([]domain.Recruiter, error) {
	var recruiters []domain.Recruiter
	if err := r.api.GetJSON(ctx, recruitersPath, nil, &recruiters); err != nil {
		return nil, mapError(err, "fetch recruiters")
	}
	return recruiters, nil
}
