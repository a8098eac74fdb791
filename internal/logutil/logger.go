// Package logutil provides utilities for logging.
package logutil

import (
	"go.abhg.dev/io/ioutil"
	"go.abhg.dev/pwstore/internal/silog"
)

// TestLogger builds a logger that writes messages
// to the given testing.TB at debug level.
func TestLogger(t ioutil.TestLogger) *silog.Logger {
	return silog.New(ioutil.TestLogWriter(t, ""), &silog.Options{
		Level: silog.LevelDebug,
	})
}
