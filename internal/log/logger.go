package log

import (
	"io"
	"log/slog"
)

// Options configures New.
type Options struct {
	// Verbose lowers the level to Debug. Otherwise only warnings and
	// errors are written.
	Verbose bool

	// JSON writes JSON lines instead of logfmt-style text.
	JSON bool

	// App, when set, is attached to every record as "app".
	App string
}

// New returns a logger writing to w through a RedactHandler.
func New(w io.Writer, opts Options) *slog.Logger {
	level := slog.LevelWarn
	if opts.Verbose {
		level = slog.LevelDebug
	}
	ho := &slog.HandlerOptions{Level: level}

	var base slog.Handler
	if opts.JSON {
		base = slog.NewJSONHandler(w, ho)
	} else {
		base = slog.NewTextHandler(w, ho)
	}

	logger := slog.New(NewRedactHandler(base))
	if opts.App != "" {
		logger = logger.With("app", opts.App)
	}
	return logger
}

// Discard returns a logger that drops everything. Tests and library
// callers that pass no logger get this.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
