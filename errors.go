package pawcore

import "fmt"

// ErrKind classifies a raised error. Kinds compare by identity; Matches does
// not consider one kind a subtype of another.
type ErrKind string

const (
	ErrConfiguration    ErrKind = "ConfigurationError"
	ErrTypeMismatch     ErrKind = "TypeMismatch"
	ErrAttributeMissing ErrKind = "AttributeMissing"
	ErrOutOfRange       ErrKind = "OutOfRange"
	ErrOutOfMemory      ErrKind = "OutOfMemory"
	ErrUserRaised       ErrKind = "UserRaised"
)

// RaisedError is the record carried both by error returns and by the
// runtime's current-error slot. Kind and Message are always sufficient to
// reconstruct the failure; Cause optionally chains an earlier record.
type RaisedError struct {
	Kind    ErrKind
	Message string
	Cause   *RaisedError
}

func (e *RaisedError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by %s)", e.Kind, e.Message, e.Cause.Error())
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap exposes the chained cause to errors.Is/errors.As.
func (e *RaisedError) Unwrap() error {
	if e.Cause == nil {
		return nil
	}
	return e.Cause
}

// Raise sets the runtime's current-error slot and returns the record as an
// error for the caller to forward. A slot that is already set is overwritten;
// use RaiseCause to chain instead. Raise does not unwind anything by itself -
// every intermediate caller forwards the returned error until someone handles
// it with Clear or Fetch.
func (rt *Runtime) Raise(kind ErrKind, format string, args ...interface{}) error {
	raised := &RaisedError{Kind: kind, Message: fmt.Sprintf(format, args...)}
	rt.setCurrent(raised)
	return raised
}

// RaiseCause is Raise with an explicit chained cause. If cause is not a
// *RaisedError it is recorded as a UserRaised link.
func (rt *Runtime) RaiseCause(kind ErrKind, cause error, format string, args ...interface{}) error {
	raised := &RaisedError{Kind: kind, Message: fmt.Sprintf(format, args...), Cause: asRaised(cause)}
	rt.setCurrent(raised)
	return raised
}

// Occurred reports whether the current-error slot is set. It does not consume
// the slot.
func (rt *Runtime) Occurred() bool {
	rt.errMu.Lock()
	defer rt.errMu.Unlock()
	return rt.current != nil
}

// Matches reports whether the current-error slot holds an error of the given
// kind. It does not consume the slot.
func (rt *Runtime) Matches(kind ErrKind) bool {
	rt.errMu.Lock()
	defer rt.errMu.Unlock()
	return rt.current != nil && rt.current.Kind == kind
}

// Clear empties the current-error slot without inspecting it.
func (rt *Runtime) Clear() {
	rt.errMu.Lock()
	rt.current = nil
	rt.errMu.Unlock()
}

// Fetch takes ownership of the current-error slot's content and empties the
// slot. Returns nil when no error is set. After Fetch, Occurred reports
// false.
func (rt *Runtime) Fetch() *RaisedError {
	rt.errMu.Lock()
	defer rt.errMu.Unlock()
	raised := rt.current
	rt.current = nil
	return raised
}

// Warn emits a non-fatal diagnostic on the logger's warning channel. It never
// touches the current-error slot and never produces a failure signal.
func (rt *Runtime) Warn(format string, args ...interface{}) {
	rt.logger.WarnCat(CatUser, format, args...)
}

func (rt *Runtime) setCurrent(raised *RaisedError) {
	rt.errMu.Lock()
	rt.current = raised
	rt.errMu.Unlock()
	rt.logger.DebugCat(CatError, "Raised %s: %s", raised.Kind, raised.Message)
}

// forward records an error produced by embedder code. A *RaisedError passes
// through untouched so the slot content the callee set is preserved; any
// other error is promoted to UserRaised and placed in the slot.
func (rt *Runtime) forward(err error) error {
	if err == nil {
		return nil
	}
	if raised, ok := err.(*RaisedError); ok {
		return raised
	}
	return rt.Raise(ErrUserRaised, "%v", err)
}

func asRaised(err error) *RaisedError {
	if err == nil {
		return nil
	}
	if raised, ok := err.(*RaisedError); ok {
		return raised
	}
	return &RaisedError{Kind: ErrUserRaised, Message: err.Error()}
}
