package web

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func NewHomeHandler(r gin.IRouter) {
	r.GET("/", func(c *gin.Context) {
		renderPage(c, http.StatusOK, pageHome, newPage(c, "Homepage"))
	})
}
