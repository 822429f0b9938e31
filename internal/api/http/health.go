package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// InfoHandler serves the static liveness and info endpoints.
type InfoHandler struct {
	serviceName string
}

func NewInfoHandler(serviceName string) *InfoHandler {
	return &InfoHandler{serviceName: serviceName}
}

func (h *InfoHandler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": h.serviceName + " is running",
		"status":  "ok",
		"swagger": "/swagger",
		"api":     "/api/test",
	})
}

func (h *InfoHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": h.serviceName,
	})
}

func (h *InfoHandler) RegisterRoutes(r gin.IRouter) {
	r.GET("/", h.Root)
	r.GET("/health", h.HealthCheck)
}
