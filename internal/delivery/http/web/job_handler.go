package web

import (
	"net/http"

	"recruitment-console/internal/delivery/http/response"
	"recruitment-console/internal/domain"

	"github.com/gin-gonic/gin"
)

const jobBase = "/job"

type JobHandler struct {
	jobUC domain.JobUsecase
}

type jobFormData struct {
	Job     *domain.Job
	Action  string
	Editing bool
}

func NewJobHandler(r gin.IRouter, jobUC domain.JobUsecase) {
	h := &JobHandler{jobUC: jobUC}

	g := r.Group(jobBase)
	g.GET("", h.List)
	g.GET("/add", h.New)
	g.POST("/add", h.Create)
	g.GET("/:id", h.Show)
	g.GET("/:id/edit", h.Edit)
	g.POST("/:id/edit", h.Update)
	g.POST("/:id/delete", h.Delete)
}

func (h *JobHandler) List(c *gin.Context) {
	page := newPage(c, "Job")
	page.Query = listQuery(c)

	result, err := h.jobUC.ListJobs(c.Request.Context(), page.Query)
	if err != nil {
		page.Data = &domain.Page[domain.JobRow]{Page: page.Query.Page}
		renderListFailure(c, "job_list", page, err, "Failed to fetch jobs")
		return
	}
	page.Data = result
	renderPage(c, http.StatusOK, "job_list", page)
}

func (h *JobHandler) Show(c *gin.Context) {
	id, ok := pathID(c, "Job")
	if !ok {
		return
	}
	job, err := h.jobUC.GetJob(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	page := newPage(c, job.Title)
	page.Data = job
	renderPage(c, http.StatusOK, "job_detail", page)
}

func (h *JobHandler) New(c *gin.Context) {
	page := newPage(c, "Create job")
	page.Data = &jobFormData{Job: &domain.Job{}, Action: jobBase + "/add"}
	renderPage(c, http.StatusOK, "job_form", page)
}

func (h *JobHandler) Create(c *gin.Context) {
	f := newFormReader(c)
	job := jobFromForm(f)
	page := newPage(c, "Create job")
	page.Data = &jobFormData{Job: job, Action: jobBase + "/add"}

	err := f.err()
	if err == nil {
		err = h.jobUC.CreateJob(c.Request.Context(), job)
	}
	if err != nil {
		renderFormFailure(c, "job_form", page, err, "Failed to create job. Please try again.")
		return
	}
	response.RedirectWithFlash(c, jobBase, response.FlashSuccess, "Job created successfully")
}

func (h *JobHandler) Edit(c *gin.Context) {
	id, ok := pathID(c, "Job")
	if !ok {
		return
	}
	job, err := h.jobUC.GetJob(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	page := newPage(c, "Edit job")
	page.Data = &jobFormData{Job: job, Action: editPath(jobBase, id), Editing: true}
	renderPage(c, http.StatusOK, "job_form", page)
}

func (h *JobHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "Job")
	if !ok {
		return
	}
	f := newFormReader(c)
	job := jobFromForm(f)
	job.ID = id
	page := newPage(c, "Edit job")
	page.Data = &jobFormData{Job: job, Action: editPath(jobBase, id), Editing: true}

	err := f.err()
	if err == nil {
		err = h.jobUC.UpdateJob(c.Request.Context(), job)
	}
	if err != nil {
		renderFormFailure(c, "job_form", page, err, "Failed to update job. Please try again.")
		return
	}
	response.RedirectWithFlash(c, jobBase, response.FlashSuccess, "Job updated successfully!")
}

func (h *JobHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "Job")
	if !ok {
		return
	}
	target := afterDelete(c, jobBase)
	if err := h.jobUC.DeleteJob(c.Request.Context(), id); err != nil {
		deleteFailed(c, target, err, "Failed to delete job. Please try again.")
		return
	}
	response.RedirectWithFlash(c, target, response.FlashSuccess, "Job deleted successfully")
}
