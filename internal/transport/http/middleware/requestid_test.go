package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ErlanBelekov/job-tracker/internal/requestid"
	"github.com/ErlanBelekov/job-tracker/internal/transport/http/middleware"
	"github.com/gin-gonic/gin"
)

func requestIDEngine() *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID())
	r.GET("/x", func(c *gin.Context) {
		c.String(http.StatusOK, requestid.FromContext(c.Request.Context()))
	})
	return r
}

func TestRequestID_PreservesValidIncoming(t *testing.T) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	requestIDEngine().ServeHTTP(w, req)

	if got := w.Header().Get("X-Request-ID"); got != "abc-123" {
		t.Errorf("header = %q, want abc-123", got)
	}
	if w.Body.String() != "abc-123" {
		t.Errorf("context id = %q, want abc-123", w.Body.String())
	}
}

func TestRequestID_ReplacesMalformed(t *testing.T) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("X-Request-ID", "bad id <script>")
	requestIDEngine().ServeHTTP(w, req)

	got := w.Header().Get("X-Request-ID")
	if got == "" || got == "bad id <script>" {
		t.Errorf("header = %q, want a generated id", got)
	}
	if w.Body.String() != got {
		t.Errorf("context id %q != header id %q", w.Body.String(), got)
	}
}
