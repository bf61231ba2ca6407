// Package logger provides verbose logging for the sercha crawler plugin.
// When verbose mode is enabled via the --verbose flag, debug messages
// are printed to stderr to show each document moving through the pipeline.
// Errors are always printed.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

var (
	mu      sync.RWMutex
	verbose bool
	output  io.Writer = os.Stderr
)

// SetVerbose enables or disables verbose logging.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
}

// IsVerbose returns true if verbose mode is enabled.
func IsVerbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return verbose
}

// SetOutput sets the output writer for logs.
// Defaults to os.Stderr. Useful for testing.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
}

// Debug prints a message if verbose mode is enabled.
func Debug(format string, args ...any) {
	logf(true, "[DEBUG] ", format, args...)
}

// Section prints a section header if verbose mode is enabled.
func Section(name string) {
	mu.RLock()
	defer mu.RUnlock()
	if verbose {
		fmt.Fprintf(output, "\n=== %s ===\n", name)
	}
}

// Info prints an informational message if verbose mode is enabled.
func Info(format string, args ...any) {
	logf(true, "[INFO] ", format, args...)
}

// Warn prints a warning message if verbose mode is enabled.
func Warn(format string, args ...any) {
	logf(true, "[WARN] ", format, args...)
}

// Error prints an error message regardless of verbose mode.
func Error(format string, args ...any) {
	logf(false, "[ERROR] ", format, args...)
}

func logf(gated bool, level, format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	if gated && !verbose {
		return
	}
	fmt.Fprintf(output, level+format+"\n", args...)
}

// Scoped prefixes every message with a name, e.g. the crawler a plugin
// instance serves. The zero value logs without a prefix.
type Scoped struct {
	prefix string
}

// Named returns a logger that prefixes messages with "[name] ".
func Named(name string) Scoped {
	if name == "" {
		return Scoped{}
	}
	// The prefix is joined into a format string.
	return Scoped{prefix: "[" + strings.ReplaceAll(name, "%", "%%") + "] "}
}

// Debug prints a prefixed message if verbose mode is enabled.
func (s Scoped) Debug(format string, args ...any) {
	Debug(s.prefix+format, args...)
}

// Info prints a prefixed message if verbose mode is enabled.
func (s Scoped) Info(format string, args ...any) {
	Info(s.prefix+format, args...)
}

// Warn prints a prefixed message if verbose mode is enabled.
func (s Scoped) Warn(format string, args ...any) {
	Warn(s.prefix+format, args...)
}

// Error prints a prefixed message regardless of verbose mode.
func (s Scoped) Error(format string, args ...any) {
	Error(s.prefix+format, args...)
}
