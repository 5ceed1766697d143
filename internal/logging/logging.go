package logging

import (
	"log/slog"
	"os"
)

// Setup configures the process-wide slog handler. format is "text" (default)
// or "json" for structured output, matching the LOG_FORMAT setting.
func Setup(format string) {
	var h slog.Handler
	if format == "json" {
		h = slog.NewJSONHandler(os.Stderr, nil)
	} else {
		h = slog.NewTextHandler(os.Stderr, nil)
	}
	slog.SetDefault(slog.New(h))
}
