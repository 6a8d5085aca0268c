package web

import (
	"io"
	"net/http"
	"strconv"

	"recruitment-console/internal/delivery/http/response"
	"recruitment-console/internal/domain"
	"recruitment-console/pkg/apperror"
	"recruitment-console/pkg/logger"
	"recruitment-console/pkg/security"

	"github.com/gin-gonic/gin"
)

const candidateBase = "/candidate"

type CandidateHandler struct {
	candidateUC domain.CandidateUsecase
}

type candidateFormData struct {
	Candidate  *domain.Candidate
	Recruiters []domain.Recruiter
	Action     string
	Editing    bool
	Accept     string
}

// NewCandidateHandler registers the candidate pages. uploadLimit guards the
// submissions that may carry a CV.
func NewCandidateHandler(r gin.IRouter, candidateUC domain.CandidateUsecase, uploadLimit gin.HandlerFunc) {
	h := &CandidateHandler{candidateUC: candidateUC}

	g := r.Group(candidateBase)
	g.GET("", h.List)
	g.GET("/add", h.New)
	g.POST("/add", uploadLimit, h.Create)
	g.GET("/:id", h.Show)
	g.GET("/:id/edit", h.Edit)
	g.POST("/:id/edit", uploadLimit, h.Update)
	g.POST("/:id/delete", h.Delete)
}

func (h *CandidateHandler) List(c *gin.Context) {
	page := newPage(c, "Candidate")
	page.Query = listQuery(c)

	result, err := h.candidateUC.ListCandidates(c.Request.Context(), page.Query)
	if err != nil {
		page.Data = &domain.Page[domain.CandidateRow]{Page: page.Query.Page}
		renderListFailure(c, "candidate_list", page, err, "Failed to fetch candidates")
		return
	}
	page.Data = result
	renderPage(c, http.StatusOK, "candidate_list", page)
}

func (h *CandidateHandler) Show(c *gin.Context) {
	id, ok := pathID(c, "Candidate")
	if !ok {
		return
	}
	candidate, err := h.candidateUC.GetCandidate(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	page := newPage(c, candidate.FullName)
	page.Data = h.formData(c, candidate, "", true)
	renderPage(c, http.StatusOK, "candidate_detail", page)
}

func (h *CandidateHandler) New(c *gin.Context) {
	page := newPage(c, "Add candidate")
	page.Data = h.formData(c, &domain.Candidate{Status: "open"}, candidateBase+"/add", false)
	renderPage(c, http.StatusOK, "candidate_form", page)
}

func (h *CandidateHandler) Create(c *gin.Context) {
	f := newFormReader(c)
	candidate := candidateFromForm(f)
	page := newPage(c, "Add candidate")
	page.Data = h.formData(c, candidate, candidateBase+"/add", false)

	err := f.err()
	if err == nil {
		err = h.withCV(c, func(cv *domain.CVUpload) error {
			return h.candidateUC.CreateCandidate(c.Request.Context(), candidate, cv)
		})
	}
	if err != nil {
		renderFormFailure(c, "candidate_form", page, err, "Failed to create candidate. Please try again.")
		return
	}
	response.RedirectWithFlash(c, candidateBase, response.FlashSuccess, "Candidate created successfully")
}

func (h *CandidateHandler) Edit(c *gin.Context) {
	id, ok := pathID(c, "Candidate")
	if !ok {
		return
	}
	candidate, err := h.candidateUC.GetCandidate(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	page := newPage(c, "Edit candidate")
	page.Data = h.formData(c, candidate, editPath(candidateBase, id), true)
	renderPage(c, http.StatusOK, "candidate_form", page)
}

func (h *CandidateHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "Candidate")
	if !ok {
		return
	}
	f := newFormReader(c)
	candidate := candidateFromForm(f)
	candidate.ID = id
	page := newPage(c, "Edit candidate")
	page.Data = h.formData(c, candidate, editPath(candidateBase, id), true)

	err := f.err()
	if err == nil {
		err = h.withCV(c, func(cv *domain.CVUpload) error {
			return h.candidateUC.UpdateCandidate(c.Request.Context(), candidate, cv)
		})
	}
	if err != nil {
		renderFormFailure(c, "candidate_form", page, err, "Failed to update candidate. Please try again.")
		return
	}
	response.RedirectWithFlash(c, candidateBase, response.FlashSuccess, "Candidate updated successfully")
}

func (h *CandidateHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "Candidate")
	if !ok {
		return
	}
	target := afterDelete(c, candidateBase)
	if err := h.candidateUC.DeleteCandidate(c.Request.Context(), id); err != nil {
		deleteFailed(c, target, err, "Failed to delete candidate")
		return
	}
	response.RedirectWithFlash(c, target, response.FlashSuccess, "Candidate deleted successfully")
}

// withCV runs submit with the uploaded CV open, closing it afterwards.
func (h *CandidateHandler) withCV(c *gin.Context, submit func(*domain.CVUpload) error) error {
	cv, closer, err := cvFromForm(c)
	if err != nil {
		return err
	}
	if closer != nil {
		defer closeQuietly(closer)
	}
	return submit(cv)
}

// formData loads the recruiter options. A failed lookup leaves the select
// empty rather than failing the page.
func (h *CandidateHandler) formData(c *gin.Context, candidate *domain.Candidate, action string, editing bool) *candidateFormData {
	recruiters, err := h.candidateUC.ListRecruiters(c.Request.Context())
	if err != nil {
		logger.Log.Warn("load recruiters failed", "error", err)
	}
	return &candidateFormData{
		Candidate:  candidate,
		Recruiters: recruiters,
		Action:     action,
		Editing:    editing,
		Accept:     security.AllowedCVExtensions(),
	}
}

func editPath(base string, id int64) string {
	return base + "/" + strconv.FormatInt(id, 10) + "/edit"
}

// deleteFailed returns to the list with an error toast. A 401 goes to the
// error middleware.
func deleteFailed(c *gin.Context, target string, err error, message string) {
	if apperror.IsUnauthorized(err) {
		_ = c.Error(err)
		return
	}
	logger.Log.Warn("delete failed", "path", c.Request.URL.Path, "error", err)
	response.RedirectWithFlash(c, target, response.FlashError, message)
}

func closeQuietly(c io.Closer) {
	if err := c.Close(); err != nil {
		logger.Log.Debug("close upload", "error", err)
	}
}
