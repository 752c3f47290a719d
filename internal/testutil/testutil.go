// Package testutil provides shared test helpers.
package testutil

import (
	"log/slog"

	"rdw/internal/logging"
)

// Logger returns a silent logger for use in tests.
func Logger() *slog.Logger {
	return logging.NewTestLogger()
}
