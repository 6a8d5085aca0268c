package v1

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	Health HealthChecker
}

// RegisterRoutes mounts the JSON API on v1. The route guard in front of
// the group leaves /health and /swagger public.
func RegisterRoutes(v1 *gin.RouterGroup, deps RouterDeps) {
	NewHealthHandler(v1, deps.Health)
	NewSessionHandler(v1)

	v1.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
