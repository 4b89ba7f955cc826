// Package log carries request-scoped values from the context into slog records.
package log

import (
	"context"
	"log/slog"

	"github.com/ErlanBelekov/job-tracker/internal/auth"
	"github.com/ErlanBelekov/job-tracker/internal/requestid"
)

// ContextHandler decorates an slog.Handler. Records logged with a context
// carrying a request ID or an authenticated identity get request_id and
// user_id attributes.
type ContextHandler struct {
	inner slog.Handler
}

func NewContextHandler(inner slog.Handler) *ContextHandler {
	return &ContextHandler{inner: inner}
}

func (h *ContextHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

func (h *ContextHandler) Handle(ctx context.Context, r slog.Record) error {
	r.AddAttrs(contextAttrs(ctx)...)
	return h.inner.Handle(ctx, r)
}

func (h *ContextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return NewContextHandler(h.inner.WithAttrs(attrs))
}

func (h *ContextHandler) WithGroup(name string) slog.Handler {
	return NewContextHandler(h.inner.WithGroup(name))
}

func contextAttrs(ctx context.Context) []slog.Attr {
	var attrs []slog.Attr
	if id := requestid.FromContext(ctx); id != "" {
		attrs = append(attrs, slog.String("request_id", id))
	}
	if identity, ok := auth.IdentityFromContext(ctx); ok {
		attrs = append(attrs, slog.String("user_id", identity.UserID))
	}
	return attrs
}
