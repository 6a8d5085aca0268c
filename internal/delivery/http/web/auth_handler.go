package web

import (
	"net/http"
	"time"

	"recruitment-console/internal/delivery/http/middleware"
	"recruitment-console/internal/delivery/http/response"
	"recruitment-console/internal/domain"
	"recruitment-console/pkg/apperror"
	"recruitment-console/pkg/logger"

	"github.com/gin-gonic/gin"
)

const (
	stateCookieName = "oauth_state"
	stateCookieTTL  = 10 * time.Minute
	msgLoginFailed  = "Login failed, please try again"
)

type AuthHandler struct {
	authUC     domain.AuthUsecase
	sessionTTL time.Duration
	secure     bool
}

// NewAuthHandler registers the login, callback and logout routes. limit
// throttles the routes that reach the authorization server.
func NewAuthHandler(r gin.IRouter, authUC domain.AuthUsecase, sessionTTL time.Duration, secure bool, limit gin.HandlerFunc) {
	h := &AuthHandler{authUC: authUC, sessionTTL: sessionTTL, secure: secure}

	r.GET("/login", h.Login)
	r.GET("/login/start", limit, h.Start)
	r.GET("/postlogin", limit, h.Callback)
	r.POST("/logout", h.Logout)
}

// Login sends the browser straight to the authorization server, unless a
// toast is waiting to be shown or the user is already signed in.
func (h *AuthHandler) Login(c *gin.Context) {
	if cookie, err := c.Cookie(middleware.IdentityCookieName); err == nil && cookie != "" {
		if _, err := h.authUC.Authenticate(c.Request.Context(), cookie); err == nil {
			c.Redirect(http.StatusFound, "/")
			return
		}
	}
	if _, err := c.Cookie(response.FlashCookieName); err != nil {
		h.Start(c)
		return
	}
	renderPage(c, http.StatusOK, pageLogin, newPage(c, "Sign in"))
}

func (h *AuthHandler) Start(c *gin.Context) {
	start, err := h.authUC.BeginLogin(c.Request.Context())
	if err != nil {
		_ = c.Error(apperror.Internal(err))
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(stateCookieName, start.State, int(stateCookieTTL.Seconds()), "/", "", h.secure, true)
	c.Redirect(http.StatusFound, start.RedirectURL)
}

// Callback completes the authorization-code exchange.
func (h *AuthHandler) Callback(c *gin.Context) {
	expected, _ := c.Cookie(stateCookieName)
	c.SetCookie(stateCookieName, "", -1, "/", "", h.secure, true)

	if reason := c.Query("error"); reason != "" {
		logger.Log.Warn("authorization server refused login", "error", reason, "description", c.Query("error_description"))
		response.RedirectWithFlash(c, middleware.LoginPath, response.FlashError, msgLoginFailed)
		return
	}

	result, err := h.authUC.CompleteLogin(c.Request.Context(), c.Query("code"), c.Query("state"), expected)
	if err != nil {
		logger.Log.Warn("login failed", "request_id", c.GetString(response.RequestIDKey), "error", err)
		message := msgLoginFailed
		if apperror.StatusCode(err) >= http.StatusInternalServerError {
			message = middleware.GenericErrorMessage
		}
		response.RedirectWithFlash(c, middleware.LoginPath, response.FlashError, message)
		return
	}

	middleware.SetIdentityCookie(c, result.Cookie, int(h.sessionTTL.Seconds()), h.secure)
	c.Redirect(http.StatusFound, "/")
}

func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.authUC.Logout(c.Request.Context(), middleware.CurrentSession(c)); err != nil {
		logger.Log.Error("logout failed", "error", err)
	}
	middleware.ClearIdentityCookie(c, h.secure)
	response.RedirectWithFlash(c, middleware.LoginPath, response.FlashSuccess, "You have been signed out")
}
