package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/lalith-99/fixit/internal/middleware"
	"github.com/lalith-99/fixit/internal/models"
	"github.com/lalith-99/fixit/internal/repository"
	"github.com/lalith-99/fixit/internal/views"
	"go.uber.org/zap"
)

// RequestHandler serves the dashboards and the request detail screen.
//
// Every list response is a fresh read from the store. There is no cache,
// so "reload on close" is simply the client fetching the list again.
type RequestHandler struct {
	profiles repository.ProfileRepository
	requests repository.RequestRepository
	comments repository.CommentRepository
	logger   *zap.Logger
}

func NewRequestHandler(
	profiles repository.ProfileRepository,
	requests repository.RequestRepository,
	comments repository.CommentRepository,
	logger *zap.Logger,
) *RequestHandler {
	return &RequestHandler{
		profiles: profiles,
		requests: requests,
		comments: comments,
		logger:   logger,
	}
}

// screen resolves the caller's profile and runs the role router.
// It writes the error response itself and returns ok=false on failure.
func (h *RequestHandler) screen(c *gin.Context) (views.Screen, *models.Profile, bool) {
	caller := middleware.GetCaller(c)
	profile, err := h.profiles.GetByID(c.Request.Context(), caller.UserID)
	if err != nil {
		h.logger.Error("failed to load profile", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load profile"})
		return "", nil, false
	}
	screen := views.Route(&caller, profile, false)
	if screen == views.ScreenAuth {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "profile not found"})
		return "", nil, false
	}
	return screen, profile, true
}

// Dashboard handles GET /v1/requests?status=<filter>
//
// Tenants get their own list; landlords get every request with counters,
// filtered by the optional status (default "all"). A failed read is logged
// and shows as an empty list.
func (h *RequestHandler) Dashboard(c *gin.Context) {
	screen, profile, ok := h.screen(c)
	if !ok {
		return
	}
	caller := middleware.GetCaller(c)

	if screen == views.ScreenLandlord {
		filter, err := views.ParseFilter(c.Query("status"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid 'status' filter"})
			return
		}
		v := views.NewLandlordView(caller, h.requests, h.comments, h.logger)
		v.FullName = profile.FullName
		v.Load(c.Request.Context())
		v.Filter = filter
		c.JSON(http.StatusOK, gin.H{"screen": screen, "dashboard": v.State()})
		return
	}

	v := views.NewTenantView(caller, h.requests, h.comments, h.logger)
	v.FullName = profile.FullName
	v.Load(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"screen": screen, "dashboard": v.State()})
}

type createRequestBody struct {
	Title       string  `json:"title" binding:"required"`
	Description string  `json:"description" binding:"required"`
	Category    string  `json:"category" binding:"required,oneof=plumbing electrical hvac appliance other"`
	Priority    string  `json:"priority" binding:"required,oneof=low medium high urgent"`
	// Blank means no photo; the form checks the URL after trimming.
	PhotoURL    *string `json:"photo_url"`
}

// Create handles POST /v1/requests
func (h *RequestHandler) Create(c *gin.Context) {
	var body createRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	form := views.NewCreateForm(middleware.GetCaller(c), h.requests, h.logger)
	req, err := form.Submit(c.Request.Context(), models.NewRequest{
		Title:       body.Title,
		Description: body.Description,
		Category:    models.Category(body.Category),
		Priority:    models.Priority(body.Priority),
		PhotoURL:    body.PhotoURL,
	})
	switch {
	case errors.Is(err, views.ErrInvalidRequest):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	case errors.Is(err, repository.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "failed to create request"})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create request"})
		return
	}

	c.JSON(http.StatusCreated, views.NewRequestItem(*req, false))
}

// Get handles GET /v1/requests/:id and returns the detail screen with its
// comment thread.
func (h *RequestHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	screen, _, ok := h.screen(c)
	if !ok {
		return
	}
	caller := middleware.GetCaller(c)

	req, err := h.requests.Get(c.Request.Context(), caller, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "request not found"})
			return
		}
		h.logger.Error("failed to get request", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get request"})
		return
	}

	d := views.OpenDetail(c.Request.Context(), *req, screen == views.ScreenLandlord, caller, h.requests, h.comments, h.logger)
	c.JSON(http.StatusOK, d.State())
}

type updateRequestBody struct {
	Status     string `json:"status" binding:"required"`
	AssignedTo string `json:"assigned_to"`
}

// Update handles PATCH /v1/requests/:id
//
// The response carries the outcome notice and the values that were sent.
// The request is not read back; clients refresh the list to see the
// stored state.
func (h *RequestHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var body updateRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	screen, _, ok := h.screen(c)
	if !ok {
		return
	}

	d := views.NewDetail(models.MaintenanceRequest{ID: id}, screen == views.ScreenLandlord,
		middleware.GetCaller(c), h.requests, h.comments, h.logger)
	if err := d.SetStatus(models.Status(body.Status)); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	d.SetAssignedTo(body.AssignedTo)

	err := d.Update(c.Request.Context())
	switch {
	case errors.Is(err, views.ErrNotLandlord):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		return
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"notice": d.Notice})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"notice": d.Notice})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"notice":      d.Notice,
		"status":      d.Status,
		"assigned_to": d.AssignedTo,
	})
}

func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request id"})
		return uuid.Nil, false
	}
	return id, true
}
