// File: internal/logging/log.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Component-tagged structured logging shared by all packages.

package logging

import (
	"io"
	"log/slog"
	"os"
	"sync"
)

// Component identifies a subsystem for log filtering.
type Component string

const (
	ComponentFIFO     Component = "fifo"
	ComponentSched    Component = "sched"
	ComponentHarness  Component = "harness"
	ComponentControl  Component = "control"
	ComponentAffinity Component = "affinity"
)

// Format specifies the output format for logging.
type Format int

const (
	FormatText Format = iota
	FormatJSON
)

var (
	level  = new(slog.LevelVar)
	mu     sync.RWMutex
	logger *slog.Logger
)

func init() {
	level.Set(slog.LevelWarn)
	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// SetLevel sets the minimum log level.
func SetLevel(l slog.Level) {
	level.Set(l)
}

// Level returns the current minimum log level.
func Level() slog.Level {
	return level.Level()
}

// SetLogger replaces the process-wide logger.
func SetLogger(l *slog.Logger) {
	mu.Lock()
	defer mu.Unlock()
	logger = l
}

// SetOutput switches the logger to the given writer and format, keeping the level.
func SetOutput(w io.Writer, format Format) {
	opts := &slog.HandlerOptions{Level: level}
	var h slog.Handler
	switch format {
	case FormatJSON:
		h = slog.NewJSONHandler(w, opts)
	default:
		h = slog.NewTextHandler(w, opts)
	}
	SetLogger(slog.New(h))
}

// Logger returns the logger bound to a component.
func Logger(c Component) *slog.Logger {
	return current().With("component", string(c))
}

func current() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

// Debug logs a debug message with the given component.
func Debug(c Component, msg string, args ...any) {
	current().Debug(msg, append([]any{"component", string(c)}, args...)...)
}

// Info logs an info message with the given component.
func Info(c Component, msg string, args ...any) {
	current().Info(msg, append([]any{"component", string(c)}, args...)...)
}

// Warn logs a warning message with the given component.
func Warn(c Component, msg string, args ...any) {
	current().Warn(msg, append([]any{"component", string(c)}, args...)...)
}

// Error logs an error message with the given component.
func Error(c Component, msg string, args ...any) {
	current().Error(msg, append([]any{"component", string(c)}, args...)...)
}

// Enabled reports whether messages at l would be emitted. Hot paths check it
// before building attributes.
func Enabled(l slog.Level) bool {
	return l >= level.Level()
}
