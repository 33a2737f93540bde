package app

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/heartmarshall/focloireacht-backend/internal/config"
	"github.com/heartmarshall/focloireacht-backend/pkg/ctxutil"
)

// NewLogger builds the process logger on stderr and installs it with
// slog.SetDefault.
//
// Format "json" is for production; "text" adds source locations for local
// work. Level is debug, info, warn or error (case-insensitive), default info.
// Records logged with a request context pick up request_id and user_id.
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

	return slog.New(requestHandler{handler}).With(slog.String("app", "focloireacht"))
}

// requestHandler copies caller identity from the context onto records that
// do not already carry it.
type requestHandler struct {
	slog.Handler
}

func (h requestHandler) Handle(ctx context.Context, rec slog.Record) error {
	var hasReq, hasUser bool
	rec.Attrs(func(a slog.Attr) bool {
		switch a.Key {
		case "request_id":
			hasReq = true
		case "user_id":
			hasUser = true
		}
		return true
	})
	if id := ctxutil.RequestIDFromCtx(ctx); id != "" && !hasReq {
		rec.AddAttrs(slog.String("request_id", id))
	}
	if uid, ok := ctxutil.UserIDFromCtx(ctx); ok && !hasUser {
		rec.AddAttrs(slog.String("user_id", uid.String()))
	}
	return h.Handler.Handle(ctx, rec)
}

func (h requestHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return requestHandler{h.Handler.WithAttrs(attrs)}
}

func (h requestHandler) WithGroup(name string) slog.Handler {
	return requestHandler{h.Handler.WithGroup(name)}
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
