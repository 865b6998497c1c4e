package app

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/heartmarshall/kubishi-relay/internal/config"
	"github.com/heartmarshall/kubishi-relay/pkg/ctxutil"
)

// NewLogger creates a *slog.Logger based on the provided LogConfig
// and sets it as the default logger via slog.SetDefault.
//
// Format "json" produces structured JSON output (production).
// Format "text" produces human-readable output with source info (development).
// Level is one of: debug, info, warn, error (case-insensitive); defaults to info.
// Records logged with a context carry its request ID, sender and message ID.
// Output is always os.Stderr.
func NewLogger(cfg config.LogConfig) *slog.Logger {
	logger := newLogger(os.Stderr, cfg)
	slog.SetDefault(logger)
	return logger
}

func newLogger(w io.Writer, cfg config.LogConfig) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level:     parseLevel(cfg.Level),
		AddSource: strings.EqualFold(cfg.Format, "text"),
	}

	var handler slog.Handler
	if strings.EqualFold(cfg.Format, "json") {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	return slog.New(contextHandler{Handler: handler})
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// contextHandler adds correlation attributes from ctxutil to every record.
type contextHandler struct {
	slog.Handler
}

func (h contextHandler) Handle(ctx context.Context, r slog.Record) error {
	if ctx != nil {
		addFromCtx(&r, "request_id", ctxutil.RequestIDFromCtx(ctx))
		addFromCtx(&r, "sender", ctxutil.SenderFromCtx(ctx))
		addFromCtx(&r, "message_id", ctxutil.MessageIDFromCtx(ctx))
	}
	return h.Handler.Handle(ctx, r)
}

// addFromCtx adds key unless the value is empty or the record already has it.
func addFromCtx(r *slog.Record, key, value string) {
	if value == "" {
		return
	}
	present := false
	r.Attrs(func(a slog.Attr) bool {
		present = a.Key == key
		return !present
	})
	if !present {
		r.AddAttrs(slog.String(key, value))
	}
}

func (h contextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return contextHandler{Handler: h.Handler.WithAttrs(attrs)}
}

func (h contextHandler) WithGroup(name string) slog.Handler {
	return contextHandler{Handler: h.Handler.WithGroup(name)}
}
