// Package logger provides a structured, levelled logger built on log/slog.
//
// WithCtx returns the per-request logger installed by the Logger middleware,
// so every line a handler or service writes carries the request id:
//
//	log := logger.WithCtx(r.Context())
//	log.Info("rating created", "store_id", storeID)
//	// → time=... level=INFO msg="rating created" request_id=a1b2c3d4 store_id=7
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/shashiranjanraj/storerating/config"
)

var L *slog.Logger

func init() {
	L = New(os.Stdout)
	slog.SetDefault(L)
}

// New builds the application logger: JSON in production, text elsewhere.
func New(w io.Writer) *slog.Logger {
	if config.IsProduction() {
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

type ctxKey struct{}

// WithCtx returns the logger stored in ctx, or the base logger.
func WithCtx(ctx context.Context) *slog.Logger {
	if log, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok && log != nil {
		return log
	}
	return L
}

// InjectLogger stores a request-scoped logger in ctx.
func InjectLogger(ctx context.Context, log *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, log)
}

func Debug(msg string, args ...any) { L.Debug(msg, args...) }

func Info(msg string, args ...any) { L.Info(msg, args...) }

func Warn(msg string, args ...any) { L.Warn(msg, args...) }

func Error(msg string, args ...any) { L.Error(msg, args...) }
