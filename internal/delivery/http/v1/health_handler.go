package v1

import (
	"context"
	"net/http"

	"recruitment-console/internal/delivery/http/response"

	"github.com/gin-gonic/gin"
)

// HealthChecker reports the state of the console's dependencies.
type HealthChecker interface {
	Check(ctx context.Context) map[string]string
}

type HealthHandler struct {
	checker HealthChecker
}

func NewHealthHandler(public *gin.RouterGroup, checker HealthChecker) {
	handler := &HealthHandler{checker: checker}
	public.GET("/health", handler.Health)
}

// Health godoc
// @Summary      Health check
// @Description  Reports the console and its optional dependencies (redis, postgres, clamav)
// @Tags         system
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      503  {object}  response.Response
// @Router       /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	report := h.checker.Check(c.Request.Context())
	if report["status"] != "ok" {
		c.JSON(http.StatusServiceUnavailable, response.Response{
			Success:   false,
			Message:   "System degraded",
			Data:      report,
			RequestID: c.GetString(response.RequestIDKey),
		})
		return
	}
	response.Success(c, http.StatusOK, "System operational", report)
}
