package errors

import (
	"errors"
	"fmt"
	"os"

	"github.com/julianstephens/dailytrack/internal/logger"
)

var (
	// ErrStorage marks a failure of the underlying store. It is never used for "no rows".
	ErrStorage = errors.New("storage fault")
	// ErrNotFound is returned when an id or (task, date) pair has no row.
	ErrNotFound = errors.New("not found")
	// ErrValidation matches any *ValidationError via errors.Is.
	ErrValidation = errors.New("validation failed")
)

// ValidationError describes malformed input rejected before it reaches the store.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("invalid input: %s", e.Reason)
	}
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// Invalid builds a ValidationError
func Invalid(field, format string, args ...interface{}) error {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// Storage wraps err as a storage fault for the named operation.
// A nil err stays nil.
func Storage(op string, err error) error {
	if err == nil {
		return nil
	}
	return &storageError{op: op, err: err}
}

type storageError struct {
	op  string
	err error
}

func (e *storageError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrStorage, e.op, e.err)
}

func (e *storageError) Unwrap() []error {
	return []error{ErrStorage, e.err}
}

// NotFound wraps ErrNotFound with the kind and key that were looked up
func NotFound(kind, key string) error {
	return fmt.Errorf("%s %q: %w", kind, key, ErrNotFound)
}

// Is and As re-export the standard helpers so callers need a single import.
func Is(err, target error) bool { return errors.Is(err, target) }

func As(err error, target interface{}) bool { return errors.As(err, target) }

// Format prefixes err for display on stderr. nil formats as "".
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
}

// Fatal records err in the log, prints it to stderr and exits 1. A nil err is a no-op,
// so the result of a command can be passed straight in.
func Fatal(err error) {
	if err == nil {
		return
	}
	logger.Error("command failed", "error", err)
	fmt.Fprintln(os.Stderr, Format(err))
	_ = logger.Close()
	os.Exit(1)
}
