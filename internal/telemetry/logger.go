package telemetry

import (
	"io"
	"os"
	"path/filepath"

	clog "github.com/charmbracelet/log"
)

// NewLogger builds the app-wide structured logger. With a path it writes
// JSON lines to that file; without one it discards everything. The
// returned closer is a no-op for the discard case.
func NewLogger(path string, debug bool) (*clog.Logger, func() error, error) {
	level := clog.InfoLevel
	if debug {
		level = clog.DebugLevel
	}

	if path == "" {
		logger := clog.NewWithOptions(io.Discard, clog.Options{Level: level})
		return logger, func() error { return nil }, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, err
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	logger := clog.NewWithOptions(f, clog.Options{
		Level:           level,
		Formatter:       clog.JSONFormatter,
		ReportTimestamp: true,
		Prefix:          "dsadojo",
	})
	return logger, f.Close, nil
}
