package web

import (
	"net/http"

	"recruitment-console/internal/delivery/http/response"
	"recruitment-console/internal/domain"
	"recruitment-console/pkg/logger"

	"github.com/gin-gonic/gin"
)

const interviewBase = "/interview"

type InterviewHandler struct {
	interviewUC domain.InterviewUsecase
	lookupUC    domain.LookupUsecase
}

type interviewFormData struct {
	Interview *domain.Interview
	Lookups   *domain.FormLookups
	Action    string
	Editing   bool
}

func NewInterviewHandler(r gin.IRouter, interviewUC domain.InterviewUsecase, lookupUC domain.LookupUsecase) {
	h := &InterviewHandler{interviewUC: interviewUC, lookupUC: lookupUC}

	g := r.Group(interviewBase)
	g.GET("", h.List)
	g.GET("/add", h.New)
	g.POST("/add", h.Create)
	g.GET("/:id", h.Show)
	g.GET("/:id/edit", h.Edit)
	g.POST("/:id/edit", h.Update)
	g.POST("/:id/delete", h.Delete)
}

func (h *InterviewHandler) List(c *gin.Context) {
	page := newPage(c, "Interview")
	page.Query = listQuery(c)

	result, err := h.interviewUC.ListInterviews(c.Request.Context(), page.Query)
	if err != nil {
		page.Data = &domain.Page[domain.InterviewRow]{Page: page.Query.Page}
		renderListFailure(c, "interview_list", page, err, "Failed to fetch interviews")
		return
	}
	page.Data = result
	renderPage(c, http.StatusOK, "interview_list", page)
}

func (h *InterviewHandler) Show(c *gin.Context) {
	id, ok := pathID(c, "Interview")
	if !ok {
		return
	}
	interview, err := h.interviewUC.GetInterview(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	page := newPage(c, interview.Title)
	page.Data = h.formData(c, interview, "", true)
	renderPage(c, http.StatusOK, "interview_detail", page)
}

func (h *InterviewHandler) New(c *gin.Context) {
	page := newPage(c, "Schedule interview")
	page.Data = h.formData(c, &domain.Interview{Status: "open"}, interviewBase+"/add", false)
	renderPage(c, http.StatusOK, "interview_form", page)
}

func (h *InterviewHandler) Create(c *gin.Context) {
	f := newFormReader(c)
	interview := interviewFromForm(f)
	page := newPage(c, "Schedule interview")
	page.Data = h.formData(c, interview, interviewBase+"/add", false)

	err := f.err()
	if err == nil {
		err = h.interviewUC.CreateInterview(c.Request.Context(), interview)
	}
	if err != nil {
		renderFormFailure(c, "interview_form", page, err, "Failed to create interview. Please try again.")
		return
	}
	response.RedirectWithFlash(c, interviewBase, response.FlashSuccess, "Interview created successfully!")
}

func (h *InterviewHandler) Edit(c *gin.Context) {
	id, ok := pathID(c, "Interview")
	if !ok {
		return
	}
	interview, err := h.interviewUC.GetInterview(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	page := newPage(c, "Edit interview")
	page.Data = h.formData(c, interview, editPath(interviewBase, id), true)
	renderPage(c, http.StatusOK, "interview_form", page)
}

func (h *InterviewHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "Interview")
	if !ok {
		return
	}
	f := newFormReader(c)
	interview := interviewFromForm(f)
	interview.InterviewID = id
	page := newPage(c, "Edit interview")
	page.Data = h.formData(c, interview, editPath(interviewBase, id), true)

	err := f.err()
	if err == nil {
		err = h.interviewUC.UpdateInterview(c.Request.Context(), interview)
	}
	if err != nil {
		renderFormFailure(c, "interview_form", page, err, "Failed to update interview. Please try again.")
		return
	}
	response.RedirectWithFlash(c, interviewBase, response.FlashSuccess, "Interview updated successfully!")
}

func (h *InterviewHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "Interview")
	if !ok {
		return
	}
	target := afterDelete(c, interviewBase)
	if err := h.interviewUC.DeleteInterview(c.Request.Context(), id); err != nil {
		deleteFailed(c, target, err, "Failed to delete interview. Please try again.")
		return
	}
	response.RedirectWithFlash(c, target, response.FlashSuccess, "Interview deleted successfully!")
}

func (h *InterviewHandler) formData(c *gin.Context, interview *domain.Interview, action string, editing bool) *interviewFormData {
	return &interviewFormData{
		Interview: interview,
		Lookups:   loadLookups(c, h.lookupUC),
		Action:    action,
		Editing:   editing,
	}
}

// loadLookups fetches the select options shared by the interview and offer
// forms. Failures leave the selects empty.
func loadLookups(c *gin.Context, lookupUC domain.LookupUsecase) *domain.FormLookups {
	lookups, err := lookupUC.FormLookups(c.Request.Context())
	if err != nil {
		logger.Log.Warn("load form lookups failed", "error", err)
		return &domain.FormLookups{}
	}
	return lookups
}
