package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lalith-99/fixit/internal/middleware"
	"github.com/lalith-99/fixit/internal/models"
	"github.com/lalith-99/fixit/internal/repository"
	"github.com/lalith-99/fixit/internal/views"
	"go.uber.org/zap"
)

type CommentHandler struct {
	requests repository.RequestRepository
	comments repository.CommentRepository
	logger   *zap.Logger
}

func NewCommentHandler(requests repository.RequestRepository, comments repository.CommentRepository, logger *zap.Logger) *CommentHandler {
	return &CommentHandler{requests: requests, comments: comments, logger: logger}
}

type createCommentRequest struct {
	Comment string `json:"comment"`
}

// List handles GET /v1/requests/:id/comments
//
// Oldest first. A failed read is logged and returns an empty thread.
func (h *CommentHandler) List(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	d := views.OpenDetail(c.Request.Context(), models.MaintenanceRequest{ID: id}, false,
		middleware.GetCaller(c), h.requests, h.comments, h.logger)
	c.JSON(http.StatusOK, d.State().Comments)
}

// Create handles POST /v1/requests/:id/comments
//
// Blank text is rejected before anything reaches the store. On success the
// response is the re-read thread.
func (h *CommentHandler) Create(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req createCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	d := views.NewDetail(models.MaintenanceRequest{ID: id}, false,
		middleware.GetCaller(c), h.requests, h.comments, h.logger)
	sent, err := d.SubmitComment(c.Request.Context(), req.Comment)
	switch {
	case !sent && err == nil:
		c.JSON(http.StatusBadRequest, gin.H{"error": "comment is required"})
		return
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "request not found", "comment_input": d.CommentInput})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to add comment", "comment_input": d.CommentInput})
		return
	}

	c.JSON(http.StatusCreated, d.State().Comments)
}
