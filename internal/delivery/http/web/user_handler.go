package web

import (
	"net/http"
	"net/url"
	"strings"

	"recruitment-console/internal/delivery/http/response"
	"recruitment-console/internal/domain"

	"github.com/gin-gonic/gin"
)

const userBase = "/user"

type UserHandler struct {
	userUC domain.UserUsecase
}

type userFormData struct {
	Username string
	User     *domain.UserForm
	Action   string
	Editing  bool
}

// NewUserHandler registers the user pages on an admin-only group.
func NewUserHandler(r gin.IRouter, userUC domain.UserUsecase) {
	h := &UserHandler{userUC: userUC}

	r.GET("", h.List)
	r.GET("/add", h.New)
	r.POST("/add", h.Create)
	r.GET("/:username", h.Show)
	r.GET("/:username/edit", h.Edit)
	r.POST("/:username/edit", h.Update)
}

func (h *UserHandler) List(c *gin.Context) {
	page := newPage(c, "User")
	page.Query = listQuery(c)

	result, err := h.userUC.ListUsers(c.Request.Context(), page.Query)
	if err != nil {
		page.Data = &domain.Page[domain.UserInfo]{Page: page.Query.Page}
		renderListFailure(c, "user_list", page, err, "Failed to fetch users")
		return
	}
	page.Data = result
	renderPage(c, http.StatusOK, "user_list", page)
}

func (h *UserHandler) Show(c *gin.Context) {
	user, err := h.userUC.GetUser(c.Request.Context(), c.Param("username"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	page := newPage(c, user.FullName)
	page.Data = user
	renderPage(c, http.StatusOK, "user_detail", page)
}

func (h *UserHandler) New(c *gin.Context) {
	page := newPage(c, "Add user")
	page.Data = &userFormData{User: &domain.UserForm{Status: "active"}, Action: userBase + "/add"}
	renderPage(c, http.StatusOK, "user_form", page)
}

func (h *UserHandler) Create(c *gin.Context) {
	f := newFormReader(c)
	form := userFromForm(f)
	page := newPage(c, "Add user")
	page.Data = &userFormData{User: form, Action: userBase + "/add"}

	err := f.err()
	if err == nil {
		err = h.userUC.CreateUser(c.Request.Context(), form)
	}
	if err != nil {
		renderFormFailure(c, "user_form", page, err, "Failed to create user. Please try again.")
		return
	}
	response.RedirectWithFlash(c, userBase, response.FlashSuccess, "User created successfully")
}

func (h *UserHandler) Edit(c *gin.Context) {
	username := c.Param("username")
	user, err := h.userUC.GetUser(c.Request.Context(), username)
	if err != nil {
		_ = c.Error(err)
		return
	}
	page := newPage(c, "Edit user")
	page.Data = &userFormData{
		Username: username,
		User:     domain.FormFromUserInfo(user),
		Action:   userEditPath(username),
		Editing:  true,
	}
	renderPage(c, http.StatusOK, "user_form", page)
}

func (h *UserHandler) Update(c *gin.Context) {
	username := c.Param("username")
	f := newFormReader(c)
	form := userFromForm(f)
	page := newPage(c, "Edit user")
	page.Data = &userFormData{Username: username, User: form, Action: userEditPath(username), Editing: true}

	err := f.err()
	if err == nil {
		err = h.userUC.UpdateUser(c.Request.Context(), username, form)
	}
	if err != nil {
		renderFormFailure(c, "user_form", page, err, "Failed to update user. Please try again.")
		return
	}
	response.RedirectWithFlash(c, userBase+"/"+url.PathEscape(username), response.FlashSuccess, "User updated successfully")
}

func userEditPath(username string) string {
	return strings.Join([]string{userBase, url.PathEscape(username), "edit"}, "/")
}
