package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lalith-99/fixit/internal/middleware"
	"github.com/lalith-99/fixit/internal/observ"
	"github.com/lalith-99/fixit/internal/repository"
	"github.com/lalith-99/fixit/internal/session"
	"go.uber.org/zap"
)

// Deps is everything the HTTP layer needs from main.
type Deps struct {
	Profiles  repository.ProfileRepository
	Requests  repository.RequestRepository
	Comments  repository.CommentRepository
	Revoker   session.Revoker
	Metrics   *observ.Metrics
	Logger    *zap.Logger
	JWTSecret string
	TokenTTL  time.Duration
	// Health reports whether the store is reachable. Optional.
	Health func(*gin.Context) error
}

// NewRouter wires the routes.
//
//	GET    /v1/health                    public
//	GET    /metrics                      public
//	POST   /v1/auth/signup|login         public
//	GET    /v1/home                      token optional
//	POST   /v1/auth/logout               token required, and everything below
//	GET    /v1/profile
//	GET    /v1/requests?status=
//	POST   /v1/requests
//	GET    /v1/requests/:id
//	PATCH  /v1/requests/:id
//	GET    /v1/requests/:id/comments
//	POST   /v1/requests/:id/comments
func NewRouter(d Deps) *gin.Engine {
	srv := gin.New()
	srv.Use(observ.RequestLogger(d.Logger), gin.Recovery())
	if d.Metrics != nil {
		srv.Use(d.Metrics.Middleware())
		srv.GET("/metrics", d.Metrics.Handler())
	}

	srv.GET("/v1/health", func(c *gin.Context) {
		if d.Health != nil {
			if err := d.Health(c); err != nil {
				d.Logger.Warn("health check failed", zap.Error(err))
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	authHandler := NewAuthHandler(d.Profiles, d.Revoker, d.JWTSecret, d.TokenTTL, d.Logger)
	homeHandler := NewHomeHandler(d.Profiles, d.Logger)
	requestHandler := NewRequestHandler(d.Profiles, d.Requests, d.Comments, d.Logger)
	commentHandler := NewCommentHandler(d.Requests, d.Comments, d.Logger)

	srv.POST("/v1/auth/signup", authHandler.Signup)
	srv.POST("/v1/auth/login", authHandler.Login)
	srv.GET("/v1/home", middleware.OptionalAuth(d.JWTSecret, d.Revoker), homeHandler.Home)

	v1 := srv.Group("/v1")
	v1.Use(middleware.AuthMiddleware(d.JWTSecret, d.Revoker))

	v1.POST("/auth/logout", authHandler.Logout)
	v1.GET("/profile", homeHandler.Me)

	v1.GET("/requests", requestHandler.Dashboard)
	v1.POST("/requests", requestHandler.Create)
	v1.GET("/requests/:id", requestHandler.Get)
	v1.PATCH("/requests/:id", requestHandler.Update)
	v1.GET("/requests/:id/comments", commentHandler.List)
	v1.POST("/requests/:id/comments", commentHandler.Create)

	return srv
}
