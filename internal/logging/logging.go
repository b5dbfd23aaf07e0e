// Package logging wraps log/slog behind the small Info/Warn/Error/Debug
// surface the rest of agentos calls, tagging every record with a
// "component" attribute the same way internal/supervisor tags its journal
// entries via slog.Default().With("component", "supervisor") — so log
// output stays greppable by subsystem without every caller constructing
// its own *slog.Logger.
package logging

import (
	"context"
	"fmt"
	"log/slog"
	"os"
)

var (
	disabled = false
	base     = slog.New(slog.NewTextHandler(os.Stdout, nil))
	root     = base.With("component", "agentos")
)

// Disable turns off all logging.
func Disable() {
	disabled = true
}

// Enable turns logging back on.
func Enable() {
	disabled = false
}

// Info logs an info message.
func Info(v ...any) {
	if !disabled {
		root.Info(fmt.Sprint(v...))
	}
}

// Infof logs a formatted info message.
func Infof(format string, v ...any) {
	if !disabled {
		root.Info(fmt.Sprintf(format, v...))
	}
}

// Error logs an error message.
func Error(v ...any) {
	if !disabled {
		root.Error(fmt.Sprint(v...))
	}
}

// Errorf logs a formatted error message.
func Errorf(format string, v ...any) {
	if !disabled {
		root.Error(fmt.Sprintf(format, v...))
	}
}

// Warn logs a warning message.
func Warn(v ...any) {
	if !disabled {
		root.Warn(fmt.Sprint(v...))
	}
}

// Warnf logs a formatted warning message.
func Warnf(format string, v ...any) {
	if !disabled {
		root.Warn(fmt.Sprintf(format, v...))
	}
}

// Debug logs a debug message.
func Debug(v ...any) {
	if !disabled {
		root.Debug(fmt.Sprint(v...))
	}
}

// Debugf logs a formatted debug message.
func Debugf(format string, v ...any) {
	if !disabled {
		root.Debug(fmt.Sprintf(format, v...))
	}
}

// Logger is a component-scoped logger, bound once to a "component" tag so
// the owning package doesn't pass that tag through every call site.
type Logger struct {
	component string
}

// WithContext returns a Logger tagged with component (context is accepted
// for API symmetry with slog but otherwise unused). Pass the owning
// package's name, e.g. logging.WithContext(ctx, "mission").
func WithContext(ctx context.Context, component string) Logger {
	if component == "" {
		component = "agentos"
	}
	return Logger{component: component}
}

// Info logs an info message.
func (l Logger) Info(v ...any) {
	if !disabled {
		base.With("component", l.component).Info(fmt.Sprint(v...))
	}
}

// Infof logs a formatted info message.
func (l Logger) Infof(format string, v ...any) {
	if !disabled {
		base.With("component", l.component).Info(fmt.Sprintf(format, v...))
	}
}

// Error logs an error message.
func (l Logger) Error(v ...any) {
	if !disabled {
		base.With("component", l.component).Error(fmt.Sprint(v...))
	}
}

// Errorf logs a formatted error message.
func (l Logger) Errorf(format string, v ...any) {
	if !disabled {
		base.With("component", l.component).Error(fmt.Sprintf(format, v...))
	}
}
