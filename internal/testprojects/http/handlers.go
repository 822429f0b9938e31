package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/board-runtime/webapi-backend/internal/testprojects/domain"
	"github.com/board-runtime/webapi-backend/internal/testprojects/repository"
)

// Handler bundles the dependencies for test project HTTP endpoints.
// Store errors are not handled here: they are forwarded to the failure
// interceptor via c.Error.
type Handler struct {
	repo *repository.TestProjectRepository
}

func New(repo *repository.TestProjectRepository) *Handler {
	return &Handler{repo: repo}
}

func (h *Handler) list(c *gin.Context) {
	items, err := h.repo.List(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handler) getByID(c *gin.Context) {
	p, err := h.repo.GetByID(c.Request.Context(), parseID(c.Param("id")))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
			return
		}
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *Handler) create(c *gin.Context) {
	in := bindTolerant(c)

	p, err := h.repo.Create(c.Request.Context(), in.Name)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (h *Handler) update(c *gin.Context) {
	in := bindTolerant(c)

	p, err := h.repo.Update(c.Request.Context(), parseID(c.Param("id")), in.Name)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
			return
		}
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *Handler) delete(c *gin.Context) {
	ok, err := h.repo.Delete(c.Request.Context(), parseID(c.Param("id")))
	if err != nil {
		h.fail(c, err)
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Deleted successfully"})
}

func (h *Handler) fail(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}
