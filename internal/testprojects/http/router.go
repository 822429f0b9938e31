package http

import "github.com/gin-gonic/gin"

// Register attaches the test project routes. Both slash variants are
// registered explicitly so neither form triggers a redirect.
func (h *Handler) Register(r gin.IRouter) {
	r.GET("/api/test", h.list)
	r.GET("/api/test/", h.list)
	r.GET("/api/test/:id", h.getByID)
	r.POST("/api/test", h.create)
	r.POST("/api/test/", h.create)
	r.PUT("/api/test/:id", h.update)
	r.DELETE("/api/test/:id", h.delete)
}
