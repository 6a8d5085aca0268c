package remote

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"recruitment-console/internal/domain"
)

const (
	jobsBase       = "/api/jobs"
	interviewsBase = "/api/interviews"
	offersBase     = "/api/offers"
)

// recruitmentQuery builds the ?page&filterBy&status query of the recruitment API.
func recruitmentQuery(q domain.ListQuery) url.Values {
	query := url.Values{}
	query.Set("page", strconv.Itoa(q.Page))
	if q.Size > 0 {
		query.Set("size", strconv.Itoa(q.Size))
	}
	setIfNotEmpty(query, "filterBy", q.Search)
	setIfNotEmpty(query, "status", q.Status)
	return query
}

type jobRepository struct {
	api api
}

func NewJobRepository(client api) domain.JobRepository {
	return &jobRepository{api: client}
}

func (r *jobRepository) List(ctx context.Context, q domain.ListQuery) (*domain.Page[domain.JobRow], error) {
	var resp pageResponse[domain.JobRow]
	if err := r.api.GetJSON(ctx, jobsBase, recruitmentQuery(q), &resp); err != nil {
		return nil, mapError(err, "fetch jobs")
	}
	return resp.toPage(q.Page), nil
}

func (r *jobRepository) GetByID(ctx context.Context, id int64) (*domain.Job, error) {
	var job domain.Job
	if err := r.api.GetJSON(ctx, idPath(jobsBase, id), nil, &job); err != nil {
		return nil, mapError(err, "fetch job data")
	}
	return &job, nil
}

func (r *jobRepository) Create(ctx context.Context, job *domain.Job) error {
	if err := r.api.SendJSON(ctx, http.MethodPost, jobsBase, job, nil); err != nil {
		return mapError(err, "create job")
	}
	return nil
}

func (r *jobRepository) Update(ctx context.Context, job *domain.Job) error {
	if err := r.api.SendJSON(ctx, http.MethodPut, idPath(jobsBase, job.ID), job, nil); err != nil {
		return mapError(err, "update job")
	}
	return nil
}

func (r *jobRepository) Delete(ctx context.Context, id int64) error {
	if err := r.api.Delete(ctx, idPath(jobsBase, id)); err != nil {
		return mapError(err, "delete job")
	}
	return nil
}

type interviewRepository struct {
	api api
}

func NewInterviewRepository(client api) domain.InterviewRepository {
	return &interviewRepository{api: client}
}

func (r *interviewRepository) List(ctx context.Context, q domain.ListQuery) (*domain.Page[domain.InterviewRow], error) {
	var resp pageResponse[domain.InterviewRow]
	if err := r.api.GetJSON(ctx, interviewsBase, recruitmentQuery(q), &resp); err != nil {
		return nil, mapError(err, "fetch interviews")
	}
	return resp.toPage(q.Page), nil
}

func (r *interviewRepository) GetByID(ctx context.Context, id int64) (*domain.Interview, error) {
	var interview domain.Interview
	if err := r.api.GetJSON(ctx, idPath(interviewsBase, id), nil, &interview); err != nil {
		return nil, mapError(err, "fetch interview data")
	}
	return &interview, nil
}

func (r *interviewRepository) Create(ctx context.Context, interview *domain.Interview) error {
	if err := r.api.SendJSON(ctx, http.MethodPost, interviewsBase, interview, nil); err != nil {
		return mapError(err, "create interview")
	}
	return nil
}

func (r *interviewRepository) Update(ctx context.Context, interview *domain.Interview) error {
	if err := r.api.SendJSON(ctx, http.MethodPut, idPath(interviewsBase, interview.InterviewID), interview, nil); err != nil {
		return mapError(err, "update interview")
	}
	return nil
}

func (r *interviewRepository) Delete(ctx context.Context, id int64) error {
	if err := r.api.Delete(ctx, idPath(interviewsBase, id)); err != nil {
		return mapError(err, "delete interview")
	}
	return nil
}

type offerRepository struct {
	api api
}

func NewOfferRepository(client api) domain.OfferRepository {
	return &offerRepository{api: client}
}

func (r *offerRepository) List(ctx context.Context, q domain.ListQuery) (*domain.Page[domain.OfferRow], error) {
	var resp pageResponse[domain.OfferRow]
	if err := r.api.GetJSON(ctx, offersBase, recruitmentQuery(q), &resp); err != nil {
		return nil, mapError(err, "fetch offers")
	}
	return resp.toPage(q.Page), nil
}

func (r *offerRepository) GetByID(ctx context.Context, id int64) (*domain.Offer, error) {
	var offer domain.Offer
	if err := r.api.GetJSON(ctx, idPath(offersBase, id), nil, &offer); err != nil {
		return nil, mapError(err, "fetch offer data")
	}
	return &offer, nil
}

func (r *offerRepository) Create(ctx context.Context, offer *domain.Offer) error {
	if err := r.api.SendJSON(ctx, http.MethodPost, offersBase, offer, nil); err != nil {
		return mapError(err, "create offer")
	}
	return nil
}

func (r *offerRepository) Update(ctx context.Context, offer *domain.Offer) error {
	if err := r.api.SendJSON(ctx, http.MethodPut, idPath(offersBase, offer.OfferID), offer, nil); err != nil {
		return mapError(err, "update offer")
	}
	return nil
}

func (r *offerRepository) Delete(ctx context.Context, id int64) error {
	if err := r.api.Delete(ctx, idPath(offersBase, id)); err != nil {
		return mapError(err, "delete offer")
	}
	return nil
}
