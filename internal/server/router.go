// Package server wires middleware and routes into the gin engine.
package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	googleauth "resume-quality/internal/auth"
	"resume-quality/internal/config"
	"resume-quality/internal/reviews"
	"resume-quality/internal/services/health"
	"resume-quality/internal/shared/metrics"
	"resume-quality/internal/shared/server/middleware"
	"resume-quality/internal/submissions"
	"resume-quality/internal/users"
)

// RouterDeps carries everything NewRouter needs.
type RouterDeps struct {
	Config             config.Config
	Health             *health.Service
	UsersHandler       *users.Handler
	SubmissionsHandler *submissions.Handler
	ReviewsHandler     *reviews.Handler
	GoogleAuth         *googleauth.GoogleService
}

// NewRouter constructs the gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.Auth(),
	)

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, deps.Health.Status())
	})
	api.GET("/metrics", metrics.Handler())

	deps.UsersHandler.RegisterAuthRoutes(api)
	deps.GoogleAuth.RegisterRoutes(api)

	deps.UsersHandler.RegisterRoutes(api)
	deps.SubmissionsHandler.RegisterRoutes(api)
	deps.ReviewsHandler.RegisterRoutes(api)

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
