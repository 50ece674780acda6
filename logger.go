package pawcore

import (
	"fmt"
	"io"
	"os"
)

// LogLevel controls the severity of a log message
type LogLevel int

const (
	LevelFatal LogLevel = iota
	LevelError
	LevelWarn
	LevelInfo
	LevelDebug
)

// LogCategory tags a message with the subsystem it came from. Debug output
// can be narrowed to a set of categories.
type LogCategory string

const (
	CatNone    LogCategory = ""          // Uncategorized
	CatMemory  LogCategory = "memory"    // Refcounting and object lifetime
	CatCapsule LogCategory = "capsule"   // Capsule wrap/unwrap/destroy
	CatIter    LogCategory = "iterator"  // Iterator advance/drain
	CatError   LogCategory = "error"     // Current-error slot transitions
	CatCall    LogCategory = "call"      // Invoke/method dispatch
	CatAttr    LogCategory = "attribute" // Attribute get/set
	CatSystem  LogCategory = "system"    // Runtime setup and config
	CatUser    LogCategory = "user"      // Embedder warnings
)

var allCategories = []LogCategory{
	CatMemory, CatCapsule, CatIter, CatError, CatCall, CatAttr, CatSystem, CatUser,
}

// Logger handles diagnostics for a Runtime
type Logger struct {
	enabled           bool
	out               io.Writer
	errOut            io.Writer
	enabledCategories map[LogCategory]bool
}

// NewLogger creates a new logger. When enabled is false only warnings and
// errors are emitted.
func NewLogger(enabled bool) *Logger {
	l := &Logger{
		enabled:           enabled,
		out:               os.Stdout,
		errOut:            os.Stderr,
		enabledCategories: make(map[LogCategory]bool),
	}
	l.EnableAllCategories()
	return l
}

// SetOutput redirects both output streams, mainly for tests.
func (l *Logger) SetOutput(out, errOut io.Writer) {
	l.out = out
	l.errOut = errOut
}

// SetEnabled enables or disables debug logging
func (l *Logger) SetEnabled(enabled bool) {
	l.enabled = enabled
}

// EnableCategory enables debug output for one category
func (l *Logger) EnableCategory(cat LogCategory) {
	l.enabledCategories[cat] = true
}

// DisableCategory disables debug output for one category
func (l *Logger) DisableCategory(cat LogCategory) {
	delete(l.enabledCategories, cat)
}

// EnableAllCategories enables debug output for every category
func (l *Logger) EnableAllCategories() {
	for _, cat := range allCategories {
		l.enabledCategories[cat] = true
	}
}

// IsCategoryEnabled reports whether a category would produce debug output
func (l *Logger) IsCategoryEnabled(cat LogCategory) bool {
	return l.enabled && (cat == CatNone || l.enabledCategories[cat])
}

func (l *Logger) log(level LogLevel, cat LogCategory, format string, args ...interface{}) {
	if level >= LevelInfo && !l.IsCategoryEnabled(cat) {
		return
	}

	var prefix string
	switch level {
	case LevelFatal:
		prefix = "[PawCore FATAL]"
	case LevelError:
		prefix = "[PawCore ERROR]"
	case LevelWarn:
		prefix = "[PawCore WARN]"
	case LevelInfo:
		prefix = "[PawCore INFO]"
	default:
		prefix = "[PawCore DEBUG]"
	}
	if cat != CatNone {
		prefix += fmt.Sprintf(" (%s)", cat)
	}

	message := fmt.Sprintf(format, args...)
	if level <= LevelWarn {
		fmt.Fprintf(l.errOut, "%s %s\n", prefix, message)
	} else {
		fmt.Fprintf(l.out, "%s %s\n", prefix, message)
	}
}

// Fatal logs an unrecoverable contract violation (always visible)
func (l *Logger) Fatal(format string, args ...interface{}) {
	l.log(LevelFatal, CatNone, format, args...)
}

// FatalCat logs an unrecoverable contract violation with a category
func (l *Logger) FatalCat(cat LogCategory, format string, args ...interface{}) {
	l.log(LevelFatal, cat, format, args...)
}

// Error logs an error message (always visible)
func (l *Logger) Error(format string, args ...interface{}) {
	l.log(LevelError, CatNone, format, args...)
}

// ErrorCat logs an error message with a category
func (l *Logger) ErrorCat(cat LogCategory, format string, args ...interface{}) {
	l.log(LevelError, cat, format, args...)
}

// Warn logs a warning message (always visible)
func (l *Logger) Warn(format string, args ...interface{}) {
	l.log(LevelWarn, CatNone, format, args...)
}

// WarnCat logs a warning message with a category
func (l *Logger) WarnCat(cat LogCategory, format string, args ...interface{}) {
	l.log(LevelWarn, cat, format, args...)
}

// Info logs an informational message
func (l *Logger) Info(format string, args ...interface{}) {
	l.log(LevelInfo, CatNone, format, args...)
}

// Debug logs a debug message
func (l *Logger) Debug(format string, args ...interface{}) {
	l.log(LevelDebug, CatNone, format, args...)
}

// DebugCat logs a debug message with a category
func (l *Logger) DebugCat(cat LogCategory, format string, args ...interface{}) {
	l.log(LevelDebug, cat, format, args...)
}
