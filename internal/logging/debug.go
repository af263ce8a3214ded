package logging

import (
	"fmt"
	"os"
	"sync/atomic"
)

// DebugEnv is the environment variable that turns on debug output.
const DebugEnv = "TASKD_DEBUG"

var forced atomic.Bool

// SetDebug turns debug output on even when TASKD_DEBUG is unset.
func SetDebug(on bool) {
	forced.Store(on)
}

// DebugEnabled returns true if debug mode is enabled via SetDebug or TASKD_DEBUG
func DebugEnabled() bool {
	return forced.Load() || os.Getenv(DebugEnv) != ""
}

// Debugf prints a formatted debug message to stderr only if debug mode is enabled
func Debugf(format string, args ...interface{}) {
	if DebugEnabled() {
		fmt.Fprintf(os.Stderr, format, args...)
	}
}

// Debugln prints a debug message followed by a newline only if debug mode is enabled
func Debugln(args ...interface{}) {
	if DebugEnabled() {
		fmt.Fprintln(os.Stderr, args...)
	}
}
