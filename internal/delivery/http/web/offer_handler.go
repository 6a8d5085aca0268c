package web

import (
	"net/http"

	"recruitment-console/internal/delivery/http/response"
	"recruitment-console/internal/domain"

	"github.com/gin-gonic/gin"
)

const offerBase = "/offer"

type OfferHandler struct {
	offerUC  domain.OfferUsecase
	lookupUC domain.LookupUsecase
}

type offerFormData struct {
	Offer   *domain.Offer
	Lookups *domain.FormLookups
	Action  string
	Editing bool
}

func NewOfferHandler(r gin.IRouter, offerUC domain.OfferUsecase, lookupUC domain.LookupUsecase) {
	h := &OfferHandler{offerUC: offerUC, lookupUC: lookupUC}

	g := r.Group(offerBase)
	g.GET("", h.List)
	g.GET("/add", h.New)
	g.POST("/add", h.Create)
	g.GET("/:id", h.Show)
	g.GET("/:id/edit", h.Edit)
	g.POST("/:id/edit", h.Update)
	g.POST("/:id/delete", h.Delete)
}

func (h *OfferHandler) List(c *gin.Context) {
	page := newPage(c, "Offer")
	page.Query = listQuery(c)

	result, err := h.offerUC.ListOffers(c.Request.Context(), page.Query)
	if err != nil {
		page.Data = &domain.Page[domain.OfferRow]{Page: page.Query.Page}
		renderListFailure(c, "offer_list", page, err, "Failed to fetch offers")
		return
	}
	page.Data = result
	renderPage(c, http.StatusOK, "offer_list", page)
}

func (h *OfferHandler) Show(c *gin.Context) {
	id, ok := pathID(c, "Offer")
	if !ok {
		return
	}
	offer, err := h.offerUC.GetOffer(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	page := newPage(c, "Offer")
	page.Data = h.formData(c, offer, "", true)
	renderPage(c, http.StatusOK, "offer_detail", page)
}

func (h *OfferHandler) New(c *gin.Context) {
	page := newPage(c, "Create offer")
	page.Data = h.formData(c, &domain.Offer{Status: domain.DefaultOfferStatus}, offerBase+"/add", false)
	renderPage(c, http.StatusOK, "offer_form", page)
}

func (h *OfferHandler) Create(c *gin.Context) {
	f := newFormReader(c)
	offer := offerFromForm(f)
	page := newPage(c, "Create offer")
	page.Data = h.formData(c, offer, offerBase+"/add", false)

	err := f.err()
	if err == nil {
		err = h.offerUC.CreateOffer(c.Request.Context(), offer)
	}
	if err != nil {
		renderFormFailure(c, "offer_form", page, err, "Failed to create offer. Please try again.")
		return
	}
	response.RedirectWithFlash(c, offerBase, response.FlashSuccess, "Offer created successfully!")
}

func (h *OfferHandler) Edit(c *gin.Context) {
	id, ok := pathID(c, "Offer")
	if !ok {
		return
	}
	offer, err := h.offerUC.GetOffer(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	page := newPage(c, "Edit offer")
	page.Data = h.formData(c, offer, editPath(offerBase, id), true)
	renderPage(c, http.StatusOK, "offer_form", page)
}

func (h *OfferHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "Offer")
	if !ok {
		return
	}
	f := newFormReader(c)
	offer := offerFromForm(f)
	offer.OfferID = id
	page := newPage(c, "Edit offer")
	page.Data = h.formData(c, offer, editPath(offerBase, id), true)

	err := f.err()
	if err == nil {
		err = h.offerUC.UpdateOffer(c.Request.Context(), offer)
	}
	if err != nil {
		renderFormFailure(c, "offer_form", page, err, "Failed to update offer. Please try again.")
		return
	}
	response.RedirectWithFlash(c, offerBase, response.FlashSuccess, "Offer updated successfully!")
}

func (h *OfferHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "Offer")
	if !ok {
		return
	}
	target := afterDelete(c, offerBase)
	if err := h.offerUC.DeleteOffer(c.Request.Context(), id); err != nil {
		deleteFailed(c, target, err, "Failed to delete offer.")
		return
	}
	response.RedirectWithFlash(c, target, response.FlashSuccess, "Offer deleted successfully.")
}

func (h *OfferHandler) formData(c *gin.Context, offer *domain.Offer, action string, editing bool) *offerFormData {
	return &offerFormData{
		Offer:   offer,
		Lookups: loadLookups(c, h.lookupUC),
		Action:  action,
		Editing: editing,
	}
}
