package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lalith-99/fixit/internal/middleware"
	"github.com/lalith-99/fixit/internal/models"
	"github.com/lalith-99/fixit/internal/repository"
	"github.com/lalith-99/fixit/internal/views"
	"go.uber.org/zap"
)

// HomeHandler answers "who am I and which screen do I get".
type HomeHandler struct {
	profiles repository.ProfileRepository
	logger   *zap.Logger
}

func NewHomeHandler(profiles repository.ProfileRepository, logger *zap.Logger) *HomeHandler {
	return &HomeHandler{profiles: profiles, logger: logger}
}

type homeResponse struct {
	Screen  views.Screen    `json:"screen"`
	Profile *models.Profile `json:"profile,omitempty"`
}

// Home handles GET /v1/home. It runs behind OptionalAuth: no token means
// no identity, and the answer is the auth screen.
func (h *HomeHandler) Home(c *gin.Context) {
	var identity *models.Caller
	var profile *models.Profile

	if claims := middleware.GetClaims(c); claims != nil {
		caller := claims.Caller()
		identity = &caller

		p, err := h.profiles.GetByID(c.Request.Context(), caller.UserID)
		if err != nil {
			// Treated as "no profile": the user is sent back to sign in.
			h.logger.Error("failed to load profile", zap.Error(err))
		}
		profile = p
	}

	// The server answers after the identity lookup has finished, so this
	// is never the loading screen.
	screen := views.Route(identity, profile, false)
	c.JSON(http.StatusOK, homeResponse{Screen: screen, Profile: profile})
}

// Me handles GET /v1/profile
func (h *HomeHandler) Me(c *gin.Context) {
	profile, err := h.profiles.GetByID(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		h.logger.Error("failed to get profile", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get profile"})
		return
	}
	if profile == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
		return
	}

	c.JSON(http.StatusOK, profile)
}
