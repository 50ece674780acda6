// Package pawcore is an embeddable object runtime with explicit reference
// counting. Objects live in a per-Runtime store and are reached through two
// handle types: Handle (owned, released exactly once) and Ref (borrowed,
// never released). Failures travel as returned errors and are mirrored in a
// single current-error slot that callers can query, clear, or fetch.
//
// A Runtime is not safe for concurrent access: store bookkeeping is guarded,
// but container and iterator mutation is not, so a multi-goroutine host must
// serialize all calls into one Runtime.
package pawcore

import "sync"

// Runtime owns the object store and the current-error slot.
type Runtime struct {
	config *Config
	logger *Logger

	mu      sync.RWMutex
	objects map[int]*storedObject
	nextID  int

	errMu   sync.Mutex
	current *RaisedError
}

// New creates a runtime. A nil config means DefaultConfig.
func New(config *Config) *Runtime {
	if config == nil {
		config = DefaultConfig()
	}

	logger := NewLogger(config.Debug)
	if len(config.DebugCategories) > 0 {
		for _, cat := range allCategories {
			logger.DisableCategory(cat)
		}
		for _, name := range config.DebugCategories {
			logger.EnableCategory(LogCategory(name))
		}
	}

	rt := &Runtime{
		config:  config,
		logger:  logger,
		objects: make(map[int]*storedObject),
		nextID:  1,
	}

	logger.DebugCat(CatSystem, "Runtime ready (strict counts: %v, drain limit: %d)",
		config.StrictCounts, config.DrainLimit)
	return rt
}

// Logger returns the runtime's logger
func (rt *Runtime) Logger() *Logger {
	return rt.logger
}

// Config returns a copy of the current configuration
func (rt *Runtime) Config() *Config {
	configCopy := *rt.config
	return &configCopy
}
