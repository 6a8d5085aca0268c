// Package web serves the console's server-rendered pages.
package web

import (
	"net/http"
	"strconv"
	"strings"

	"recruitment-console/internal/delivery/http/middleware"
	"recruitment-console/internal/delivery/http/response"
	"recruitment-console/internal/domain"
	"recruitment-console/pkg/apperror"
	"recruitment-console/pkg/logger"
	"recruitment-console/pkg/validation"

	"github.com/gin-gonic/gin"
)

const (
	pageError = "error"
	pageLogin = "login"
	pageHome  = "home"
)

// NavItem is one sidebar entry.
type NavItem struct {
	Name   string
	Href   string
	Active bool
}

// Crumb is one breadcrumb. The last one has no link.
type Crumb struct {
	Label string
	Href  string
}

// Page is the data every template receives.
type Page struct {
	Title       string
	Identity    domain.Identity
	SignedIn    bool
	CSRFToken   string
	Flash       *response.Flash
	Nav         []NavItem
	Breadcrumbs []Crumb
	Errors      map[string]string
	Query       domain.ListQuery
	Data        any
}

var navigation = []struct {
	name, href string
	adminOnly  bool
}{
	{"Homepage", "/", false},
	{"Candidate", "/candidate", false},
	{"Job", "/job", false},
	{"Interview", "/interview", false},
	{"Offer", "/offer", false},
	{"User", "/user", true},
	{"Audit log", "/audit", true},
}

var crumbLabels = map[string]string{
	"candidate": "Candidate",
	"job":       "Job",
	"interview": "Interview",
	"offer":     "Offer",
	"user":      "User",
	"audit":     "Audit log",
	"add":       "Add",
	"edit":      "Edit",
}

func newPage(c *gin.Context, title string) *Page {
	identity, signedIn := middleware.CurrentIdentity(c)
	return &Page{
		Title:       title,
		Identity:    identity,
		SignedIn:    signedIn,
		CSRFToken:   middleware.CSRFToken(c),
		Flash:       response.PopFlash(c),
		Nav:         buildNav(c.Request.URL.Path, identity),
		Breadcrumbs: Breadcrumbs(c.Request.URL.Path),
	}
}

func buildNav(path string, identity domain.Identity) []NavItem {
	section := "/" + strings.SplitN(strings.TrimPrefix(path, "/"), "/", 2)[0]
	items := make([]NavItem, 0, len(navigation))
	for _, n := range navigation {
		if n.adminOnly && !identity.IsAdmin() {
			continue
		}
		items = append(items, NavItem{Name: n.name, Href: n.href, Active: n.href == section})
	}
	return items
}

// Breadcrumbs derives the trail from the request path:
// "/candidate/12/edit" gives Homepage > Candidate > 12 > Edit.
func Breadcrumbs(path string) []Crumb {
	segments := strings.FieldsFunc(path, func(r rune) bool { return r == '/' })
	if len(segments) == 0 {
		return nil
	}
	crumbs := []Crumb{{Label: "Homepage", Href: "/"}}
	href := ""
	for i, segment := range segments {
		href += "/" + segment
		label, ok := crumbLabels[segment]
		if !ok {
			label = segment
		}
		crumb := Crumb{Label: label}
		if i < len(segments)-1 {
			crumb.Href = href
		}
		crumbs = append(crumbs, crumb)
	}
	return crumbs
}

func renderPage(c *gin.Context, status int, name string, page *Page) {
	c.HTML(status, name, page)
}

// RenderError draws the error page. The error middleware calls it for page
// requests.
func RenderError(c *gin.Context, status int, message string) {
	page := newPage(c, http.StatusText(status))
	page.Data = gin.H{"Status": status, "Message": message}
	renderPage(c, status, pageError, page)
}

// renderFormFailure re-renders a form after a rejected submission. Field
// errors come back as 422; remote failures keep their status and show
// failMessage as a toast. A 401 goes to the error middleware.
func renderFormFailure(c *gin.Context, name string, page *Page, err error, failMessage string) {
	if apperror.IsUnauthorized(err) {
		_ = c.Error(err)
		return
	}
	if formErr, ok := validation.AsFormError(err); ok {
		page.Errors = formErr.Fields
		renderPage(c, http.StatusUnprocessableEntity, name, page)
		return
	}

	status := apperror.StatusCode(err)
	message := failMessage
	if status == http.StatusTooManyRequests {
		message = err.Error()
	}
	logger.Log.Warn("form submission failed",
		"path", c.Request.URL.Path,
		"status", status,
		"request_id", c.GetString(response.RequestIDKey),
		"error", err.Error(),
	)
	page.Flash = &response.Flash{Kind: response.FlashError, Message: message}
	renderPage(c, status, name, page)
}

// renderListFailure shows an empty table with an error toast.
func renderListFailure(c *gin.Context, name string, page *Page, err error, failMessage string) {
	if apperror.IsUnauthorized(err) {
		_ = c.Error(err)
		return
	}
	logger.Log.Warn("list fetch failed",
		"path", c.Request.URL.Path,
		"request_id", c.GetString(response.RequestIDKey),
		"error", err.Error(),
	)
	page.Flash = &response.Flash{Kind: response.FlashError, Message: failMessage}
	renderPage(c, apperror.StatusCode(err), name, page)
}

// listQuery reads ?page (one-based), search, status and role.
func listQuery(c *gin.Context) domain.ListQuery {
	q := domain.ListQuery{
		Search: strings.TrimSpace(c.Query("search")),
		Status: strings.TrimSpace(c.Query("status")),
		Role:   strings.TrimSpace(c.Query("role")),
	}
	if n, err := strconv.Atoi(c.Query("page")); err == nil {
		q.Page = n - 1
	}
	return q.Normalize()
}

// pathID reads a numeric :id parameter. what names the record for the
// not-found message.
func pathID(c *gin.Context, what string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		_ = c.Error(apperror.NotFound(what + " not found"))
		return 0, false
	}
	return id, true
}

// afterDelete is the list URL to return to once a row is removed, stepping
// back a page when the last row of a page went away.
func afterDelete(c *gin.Context, base string) string {
	page, _ := strconv.Atoi(c.PostForm("page"))
	rows, _ := strconv.Atoi(c.PostForm("rows"))
	q := domain.ListQuery{
		Page:   domain.PageAfterDelete(page-1, rows),
		Search: strings.TrimSpace(c.PostForm("search")),
		Status: strings.TrimSpace(c.PostForm("status")),
	}
	if q.Page < 0 {
		q.Page = 0
	}
	return pageURL(base, q, q.Page)
}
