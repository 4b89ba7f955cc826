package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/ErlanBelekov/job-tracker/internal/domain"
	"github.com/gin-gonic/gin"
)

const (
	errInternalServer     = "Internal server error"
	errValidationFailed   = "Validation failed"
	errBadBody            = "Invalid request body"
	errMissingCredentials = "Please provide email and password"
	errInvalidCredentials = "Invalid credentials"
	errTokenMissing       = "Access token required"
	errTokenInvalid       = "Invalid or expired token"
	errJobNotFound        = "Job not found"
	errEmailTaken         = "Email is already registered"
)

// errInvalidBody marks a request whose JSON could not be decoded.
var errInvalidBody = errors.New("invalid request body")

// ErrorHandler turns the last error recorded with c.Error into the JSON
// response. It must run before any handler that records errors.
func ErrorHandler(logger *slog.Logger) gin.HandlerFunc {
	logger = logger.With("component", "error_handler")

	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		status, body := errorResponse(err)
		if status == http.StatusInternalServerError {
			logger.ErrorContext(c.Request.Context(), "request failed",
				"method", c.Request.Method,
				"path", c.Request.URL.Path,
				"error", err,
			)
		}
		c.JSON(status, body)
	}
}

// InternalError is the body written for recovered panics.
func InternalError() gin.H {
	return gin.H{"error": errInternalServer}
}

func errorResponse(err error) (int, gin.H) {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return http.StatusBadRequest, gin.H{"error": errValidationFailed, "details": ve.Violations}
	}

	switch {
	case errors.Is(err, errInvalidBody):
		return http.StatusBadRequest, gin.H{"error": errBadBody}
	case errors.Is(err, domain.ErrMissingCredentials):
		return http.StatusBadRequest, gin.H{"error": errMissingCredentials}
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, gin.H{"error": errInvalidCredentials}
	case errors.Is(err, domain.ErrTokenMissing):
		return http.StatusUnauthorized, gin.H{"error": errTokenMissing}
	case errors.Is(err, domain.ErrTokenInvalid):
		return http.StatusForbidden, gin.H{"error": errTokenInvalid}
	case errors.Is(err, domain.ErrJobNotFound):
		return http.StatusNotFound, gin.H{"error": errJobNotFound}
	case errors.Is(err, domain.ErrEmailTaken):
		return http.StatusConflict, gin.H{"error": errEmailTaken}
	default:
		return http.StatusInternalServerError, gin.H{"error": errInternalServer}
	}
}
