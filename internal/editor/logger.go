package editor

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler discards every record. Enabled returns false so callers skip
// formatting entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(slog.New(nopHandler{}))
}

// SetLogger configures the logger used by the editor. The editor is silent
// by default; pass nil to silence it again.
//
// Levels used:
//   - [slog.LevelDebug]: command traces (crop gestures, renders)
//   - [slog.LevelInfo]: loads, bakes and exports
//   - [slog.LevelWarn]: absorbed failures such as encoding errors
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(nopHandler{})
	}
	loggerPtr.Store(l)
}

// Logger returns the current editor logger.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
