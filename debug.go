package thicket

import (
	"log/slog"
	"os"
)

// discardLogger is the default logger of every Window and FocusController.
var discardLogger = slog.New(slog.DiscardHandler)

// SetLogger replaces the window's logger. A nil logger silences the window
// until debug mode is enabled, which then logs to stderr.
func (w *Window) SetLogger(l *slog.Logger) {
	w.logSet = l != nil
	w.useLogger(l)
}

func (w *Window) useLogger(l *slog.Logger) {
	if l == nil {
		l = discardLogger
	}
	w.log = l.With(slog.String("scope", string(w.scope)))
	w.focus.log = w.log
}

// SetDebugMode enables or disables debug logging. When enabled and no logger
// was set, every raw event, suppressed duplicate release and capture misuse is
// written to stderr.
func (w *Window) SetDebugMode(enabled bool) {
	w.debug = enabled
	if enabled && !w.logSet {
		w.useLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}
}

// DebugMode reports whether debug logging is enabled.
func (w *Window) DebugMode() bool { return w.debug }
