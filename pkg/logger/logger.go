package logger

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

type actionIDKey struct{}

// WithActionID returns a context carrying a fresh action ID.
// Every user action (a key press in the UI, a CLI command) gets its own.
func WithActionID(ctx context.Context) context.Context {
	return context.WithValue(ctx, actionIDKey{}, uuid.NewString())
}

// ActionID retrieves the action ID from the context.
// Returns the action ID and a boolean indicating whether it was found.
func ActionID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(actionIDKey{}).(string)
	return id, ok
}

// ContextHandler is a wrapper around slog.Handler that adds context information.
type ContextHandler struct {
	slog.Handler
}

// NewContextHandler creates a new ContextHandler.
func NewContextHandler(handler slog.Handler) *ContextHandler {
	return &ContextHandler{
		Handler: handler,
	}
}

// Enabled reports whether the handler records at the given level.
func (h *ContextHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.Handler.Enabled(ctx, level)
}

// Handle processes a log record and adds context information.
func (h *ContextHandler) Handle(ctx context.Context, r slog.Record) error {
	if id, ok := ActionID(ctx); ok && id != "" {
		r.AddAttrs(slog.String("action_id", id))
	}
	return h.Handler.Handle(ctx, r)
}

// WithAttrs returns a new ContextHandler with the given attributes added.
func (h *ContextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &ContextHandler{
		Handler: h.Handler.WithAttrs(attrs),
	}
}

// WithGroup returns a new ContextHandler with the given group added.
func (h *ContextHandler) WithGroup(group string) slog.Handler {
	return &ContextHandler{
		Handler: h.Handler.WithGroup(group),
	}
}
