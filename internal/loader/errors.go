package loader

import (
	"errors"
	"fmt"
)

// Load failure kinds. A *LoadError always matches exactly one of them under
// errors.Is.
var (
	ErrUnreadableSource = errors.New("unreadable source")
	ErrDecodeFailed     = errors.New("decode failed")
	ErrRotationFailed   = errors.New("rotation failed")
)

// ErrInvalidBounds is returned when the requested maximum size is not
// positive. It is a caller error and carries no LoadError kind.
var ErrInvalidBounds = errors.New("max width and height must be positive")

// LoadError reports which step of a load failed and why.
type LoadError struct {
	// Kind is ErrUnreadableSource, ErrDecodeFailed or ErrRotationFailed.
	Kind error
	// Op is the step that failed: "open", "probe", "decode", "orientation",
	// "rotate" or "resize".
	Op string
	// Err is the underlying error.
	Err error
}

func (e *LoadError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%v: %s", e.Kind, e.Op)
	}
	return fmt.Sprintf("%v: %s: %v", e.Kind, e.Op, e.Err)
}

// Unwrap exposes both the kind and the cause to errors.Is and errors.As.
func (e *LoadError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func fail(kind error, op string, err error) *LoadError {
	return &LoadError{Kind: kind, Op: op, Err: err}
}

// Kind names the failure class of err for reporting: "unreadable_source",
// "decode_failed", "rotation_failed", "invalid_bounds", or "" for anything
// else.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrUnreadableSource):
		return "unreadable_source"
	case errors.Is(err, ErrDecodeFailed):
		return "decode_failed"
	case errors.Is(err, ErrRotationFailed):
		return "rotation_failed"
	case errors.Is(err, ErrInvalidBounds):
		return "invalid_bounds"
	}
	return ""
}
