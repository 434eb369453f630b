package draft

import (
	"log/slog"
	"sync/atomic"
)

// ComponentKey is the attribute naming the package that emitted a record.
const ComponentKey = "component"

var (
	discard = slog.New(slog.DiscardHandler)
	current atomic.Pointer[slog.Logger]
)

// SetLogger routes the log output of every draft package to l. Until it is
// called nothing is logged; passing nil restores that.
//
// Levels:
//   - [slog.LevelDebug]: dropped annotation selectors, table cell overflow, resolved extents
//   - [slog.LevelInfo]: drawings generated and written, server requests and lifecycle
//   - [slog.LevelWarn]: drawable but suspicious input, e.g. a shaft shorter than its stack
//   - [slog.LevelError]: playback failures
//
// Example:
//
//	draft.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
//
// SetLogger is safe for concurrent use.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = discard
	}
	current.Store(l)
}

// Logger returns the logger installed by SetLogger.
func Logger() *slog.Logger {
	if l := current.Load(); l != nil {
		return l
	}
	return discard
}

// ComponentLogger returns Logger with the ComponentKey attribute set to
// name, e.g. "catalog" or "server".
func ComponentLogger(name string) *slog.Logger {
	return Logger().With(ComponentKey, name)
}
