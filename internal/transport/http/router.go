package httptransport

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/ErlanBelekov/job-tracker/internal/auth"
	"github.com/ErlanBelekov/job-tracker/internal/transport/http/handler"
	"github.com/ErlanBelekov/job-tracker/internal/transport/http/middleware"
	"github.com/gin-gonic/gin"

	sloggin "github.com/samber/slog-gin"
)

type Options struct {
	AllowedOrigins  []string
	RateLimit       int
	RateLimitWindow time.Duration
	TrustedProxies  []string
}

func NewRouter(
	logger *slog.Logger,
	opts Options,
	authHandler *handler.AuthHandler,
	jobHandler *handler.JobHandler,
	tokens *auth.Issuer,
) (*gin.Engine, error) {
	r := gin.New()
	if err := r.SetTrustedProxies(opts.TrustedProxies); err != nil {
		return nil, fmt.Errorf("trusted proxies: %w", err)
	}

	r.Use(middleware.RequestID())
	r.Use(sloggin.NewWithConfig(logger, sloggin.Config{
		DefaultLevel:     slog.LevelInfo,
		ClientErrorLevel: slog.LevelWarn,
		ServerErrorLevel: slog.LevelError,
	}))
	r.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.ErrorContext(c.Request.Context(), "panic recovered", "panic", recovered)
		c.AbortWithStatusJSON(http.StatusInternalServerError, handler.InternalError())
	}))
	r.Use(middleware.Security())
	r.Use(middleware.CORS(opts.AllowedOrigins))
	r.Use(middleware.Metrics())
	r.Use(middleware.RateLimit(middleware.NewRateLimiter(opts.RateLimit, opts.RateLimitWindow), logger))
	r.Use(handler.ErrorHandler(logger))

	api := r.Group("/api")

	authRoutes := api.Group("/auth")
	authRoutes.POST("/register", authHandler.Register)
	authRoutes.POST("/login", authHandler.Login)

	// Protected job routes
	jobs := api.Group("/jobs", middleware.Auth(tokens))
	jobs.GET("", jobHandler.List)
	jobs.POST("", jobHandler.Create)
	jobs.GET("/:id", jobHandler.GetByID)
	jobs.PATCH("/:id", jobHandler.Update)
	jobs.DELETE("/:id", jobHandler.Delete)

	r.NoRoute(handler.NotFound)

	return r, nil
}
