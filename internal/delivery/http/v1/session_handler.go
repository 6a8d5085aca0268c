package v1

import (
	"net/http"

	"recruitment-console/internal/delivery/http/middleware"
	"recruitment-console/internal/delivery/http/response"
	"recruitment-console/pkg/apperror"

	"github.com/gin-gonic/gin"
)

// SessionResponse is the signed-in user as seen by scripts on console pages.
type SessionResponse struct {
	Authenticated bool   `json:"authenticated"`
	Username      string `json:"username"`
	Role          string `json:"role"`
	Department    string `json:"department"`
	IsAdmin       bool   `json:"is_admin"`
	CSRFToken     string `json:"csrf_token,omitempty"`
}

type SessionHandler struct{}

func NewSessionHandler(protected *gin.RouterGroup) {
	handler := &SessionHandler{}
	protected.GET("/session", handler.Me)
}

// Me godoc
// @Summary      Current session
// @Description  Identity of the signed-in console user
// @Tags         auth
// @Produce      json
// @Success      200  {object}  response.Response{data=SessionResponse}
// @Failure      401  {object}  response.Response
// @Router       /session [get]
// @Security     CookieAuth
func (h *SessionHandler) Me(c *gin.Context) {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		_ = c.Error(apperror.Unauthorized("Not signed in"))
		return
	}
	response.Success(c, http.StatusOK, "Session details", SessionResponse{
		Authenticated: identity.Authenticated,
		Username:      identity.Username,
		Role:          identity.Role,
		Department:    identity.Department,
		IsAdmin:       identity.IsAdmin(),
		CSRFToken:     middleware.CSRFToken(c),
	})
}
