package middleware

import (
	"strings"

	"github.com/ErlanBelekov/job-tracker/internal/auth"
	"github.com/ErlanBelekov/job-tracker/internal/domain"
	"github.com/ErlanBelekov/job-tracker/internal/metrics"
	"github.com/gin-gonic/gin"
)

type tokenVerifier interface {
	Verify(raw string) (*auth.Claims, error)
}

// Auth validates a Bearer token and binds the caller's identity to the
// request context. Rejections are recorded with c.Error and the chain is
// aborted; the error handler writes the response.
func Auth(tokens tokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			metrics.TokenRejectionsTotal.WithLabelValues("missing").Inc()
			_ = c.Error(domain.ErrTokenMissing)
			c.Abort()
			return
		}

		claims, err := tokens.Verify(raw)
		if err != nil {
			metrics.TokenRejectionsTotal.WithLabelValues("invalid").Inc()
			_ = c.Error(domain.ErrTokenInvalid)
			c.Abort()
			return
		}

		ctx := auth.WithIdentity(c.Request.Context(), auth.Identity{
			UserID: claims.UserID,
			Name:   claims.Name,
		})
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
