/*
PURPOSE:
  Provides the structured logger for cellbench.
  Wraps slog for consistent output.

REQUIREMENTS:
  User-specified:
  - stdout carries only the final confirmation line.

  Implementation-discovered:
  - Logs go to stderr, next to the toolchain's own diagnostics.

USAGE:
  output.Logger.Info("message", "key", "value")

RELATED FILES:
  - All.
*/

package output

import (
	"io"
	"log/slog"
	"os"
)

var Logger *slog.Logger

func init() {
	Logger = slog.New(slog.NewTextHandler(os.Stderr, nil))
}

// SetLogger allows overriding the default logger (e.g. for testing).
func SetLogger(l *slog.Logger) {
	Logger = l
}

// Discard silences logging. Intended for tests.
func Discard() {
	Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
}
