/*
Package shared - domain layer building blocks shared by all subdomains.

Error design:
1. Sentinel errors support type-safe errors.Is() checks
2. DomainError captures the call stack at creation time and formats it lazily
3. Domain errors carry no HTTP status codes or other transport concepts
4. Built on the standard errors package, no third-party error library
*/
package shared

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
)

// ============================================================================
// Sentinel Errors
// Used with errors.Is() to classify failures; they carry no context themselves
// ============================================================================

var (
	// ErrNotFound resource does not exist
	ErrNotFound = errors.New("not found")

	// ErrConflict resource conflict (concurrent modification, unique constraint)
	ErrConflict = errors.New("conflict")

	// ErrInvalidInput input validation failed
	ErrInvalidInput = errors.New("invalid input")
)

// DomainError structured error carrying business context and the stack of the
// point where it was created. Supports errors.Is() and errors.As() through
// Unwrap.
type DomainError struct {
	// Err underlying sentinel, used by errors.Is()
	Err error

	// Entity name of the entity the error belongs to ("order", "product", ...)
	Entity string

	// Message human readable description
	Message string

	// Field optional field name for validation errors
	Field string

	// stack frames captured at creation, formatted on demand
	stack []uintptr
}

func (e *DomainError) Error() string {
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// Stack formats the captured stack lazily (only when a log line needs it).
func (e *DomainError) Stack() []string {
	return FormatStack(e.stack)
}

// CaptureStack records the current call stack. skip is the number of frames to
// drop (typically 3: Callers, CaptureStack, the NewXxxError constructor).
func CaptureStack(skip int) []uintptr {
	var pcs [32]uintptr
	n := runtime.Callers(skip, pcs[:])
	return pcs[:n]
}

// FormatStack renders captured frames, filtering runtime internals. At most
// 10 frames are returned.
func FormatStack(stack []uintptr) []string {
	if len(stack) == 0 {
		return nil
	}

	frames := runtime.CallersFrames(stack)
	var result []string
	for {
		frame, more := frames.Next()
		if !strings.Contains(frame.File, "runtime/") {
			result = append(result, fmt.Sprintf("%s:%d %s", frame.File, frame.Line, frame.Function))
		}
		if !more || len(result) > 10 {
			break
		}
	}
	return result
}

// NewNotFoundError creates a "not found" domain error with stack.
func NewNotFoundError(entity string) error {
	return &DomainError{
		Err:     ErrNotFound,
		Entity:  entity,
		Message: entity + " not found",
		stack:   CaptureStack(3),
	}
}

// NewConflictError creates a "conflict" domain error with stack.
func NewConflictError(entity, message string) error {
	return &DomainError{
		Err:     ErrConflict,
		Entity:  entity,
		Message: message,
		stack:   CaptureStack(3),
	}
}

// NewValidationError creates a "validation failed" domain error with stack.
func NewValidationError(entity, field, reason string) error {
	return &DomainError{
		Err:     ErrInvalidInput,
		Entity:  entity,
		Field:   field,
		Message: reason,
		stack:   CaptureStack(3),
	}
}

// Stacker is implemented by errors that can expose the stack of the point
// where they occurred. The API layer uses it to enrich error logs.
type Stacker interface {
	Stack() []string
}
