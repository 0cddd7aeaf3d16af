package ass

import (
	"context"
	"log/slog"
)

// nopHandler is a slog.Handler that silently discards all log records.
// The Enabled method returns false so the caller skips message formatting
// entirely, making disabled logging effectively zero-cost.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

// newNopLogger creates a logger that silently discards all output.
func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// SetLogger configures the logger for the library, its renderers and the
// font selector. By default nothing is logged. Pass nil to disable
// logging again.
//
// SetLogger is safe for concurrent use: it stores the new logger
// atomically. Renderers created earlier pick it up on their next render
// call.
//
// Log levels used:
//   - [slog.LevelDebug]: per event diagnostics (missing styles, skipped glyphs)
//   - [slog.LevelInfo]: font resolution and cache resets
//   - [slog.LevelWarn]: fallbacks (guessed frame size, built-in font)
//
// Example:
//
//	lib.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func (l *Library) SetLogger(logger *slog.Logger) {
	if logger == nil {
		logger = newNopLogger()
	}
	l.logger.Store(logger)
}

// Logger returns the library logger.
//
// Logger is safe for concurrent use.
func (l *Library) Logger() *slog.Logger {
	return l.logger.Load()
}

// libraryHandler forwards records to whatever logger the library holds at
// the time, so components built once follow later SetLogger calls.
type libraryHandler struct {
	lib *Library
	// ops replays WithAttrs and WithGroup calls on the current handler.
	ops []func(slog.Handler) slog.Handler
}

func (h libraryHandler) target() slog.Handler {
	t := h.lib.Logger().Handler()
	for _, op := range h.ops {
		t = op(t)
	}
	return t
}

func (h libraryHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.lib.Logger().Enabled(ctx, level)
}

func (h libraryHandler) Handle(ctx context.Context, r slog.Record) error {
	return h.target().Handle(ctx, r)
}

func (h libraryHandler) with(op func(slog.Handler) slog.Handler) libraryHandler {
	h.ops = append(h.ops[:len(h.ops):len(h.ops)], op)
	return h
}

func (h libraryHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return h.with(func(t slog.Handler) slog.Handler { return t.WithAttrs(attrs) })
}

func (h libraryHandler) WithGroup(name string) slog.Handler {
	return h.with(func(t slog.Handler) slog.Handler { return t.WithGroup(name) })
}
