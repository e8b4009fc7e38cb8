// Package errs defines the error taxonomy shared by the runtime.
//
// Every failure surfaced by the registry, the scene manager and the
// application bootstrap is an *Error carrying a Code. Callers test the
// category with errors.Is against the sentinel values or with the IsX
// helpers, both of which see through fmt.Errorf("...: %w") wrapping.
package errs

import (
	"errors"
	"fmt"
)

// Code categorizes runtime errors.
type Code string

const (
	// CodeNotFound indicates an unknown resource or scene name.
	CodeNotFound Code = "NOT_FOUND"

	// CodeDuplicateName indicates a registration under a name already in use.
	CodeDuplicateName Code = "DUPLICATE_NAME"

	// CodeInvalidArgument indicates a degenerate parameter, such as a polygon
	// resolution below 3. The offending call leaves prior state unchanged.
	CodeInvalidArgument Code = "INVALID_ARGUMENT"

	// CodeBackendInit indicates window, graphics context or audio device
	// creation failed. Fatal at startup.
	CodeBackendInit Code = "BACKEND_INIT_FAILURE"

	// CodeClosed indicates use of a registry or manager after teardown.
	CodeClosed Code = "CLOSED"
)

// Sentinels for errors.Is. Only the Code is compared.
var (
	ErrNotFound        = &Error{Code: CodeNotFound}
	ErrDuplicateName   = &Error{Code: CodeDuplicateName}
	ErrInvalidArgument = &Error{Code: CodeInvalidArgument}
	ErrBackendInit     = &Error{Code: CodeBackendInit}
	ErrClosed          = &Error{Code: CodeClosed}
)

// Error is a categorized runtime error.
type Error struct {
	// Code identifies the error category.
	Code Code

	// Op is the operation that failed (e.g. "resource.AssignTexture").
	Op string

	// Name is the resource or scene name involved, if any.
	Name string

	// Message is a human-readable description.
	Message string

	// Err is the underlying cause, typically from the backend.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := string(e.Code)
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Name != "" {
		msg += fmt.Sprintf(" %q", e.Name)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error with the same Code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

// NotFound creates a NotFound error for name.
func NotFound(op, name string) *Error {
	return &Error{Code: CodeNotFound, Op: op, Name: name}
}

// DuplicateName creates a DuplicateName error for name.
func DuplicateName(op, name string) *Error {
	return &Error{Code: CodeDuplicateName, Op: op, Name: name}
}

// InvalidArgument creates an InvalidArgument error with a formatted message.
func InvalidArgument(op, name, format string, args ...any) *Error {
	return &Error{Code: CodeInvalidArgument, Op: op, Name: name, Message: fmt.Sprintf(format, args...)}
}

// BackendInit wraps a backend initialization failure.
func BackendInit(op string, err error) *Error {
	return &Error{Code: CodeBackendInit, Op: op, Err: err}
}

// Closed creates a Closed error.
func Closed(op, name string) *Error {
	return &Error{Code: CodeClosed, Op: op, Name: name}
}

// Wrap attaches a code to a backend error, e.g. a failed shader compile.
func Wrap(code Code, op, name string, err error) *Error {
	return &Error{Code: code, Op: op, Name: name, Err: err}
}

// CodeOf returns the Code of the first *Error in err's chain, or "".
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// IsNotFound reports whether err is a NotFound error.
func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }

// IsDuplicateName reports whether err is a DuplicateName error.
func IsDuplicateName(err error) bool { return errors.Is(err, ErrDuplicateName) }

// IsInvalidArgument reports whether err is an InvalidArgument error.
func IsInvalidArgument(err error) bool { return errors.Is(err, ErrInvalidArgument) }

// IsBackendInit reports whether err is a BackendInitFailure.
func IsBackendInit(err error) bool { return errors.Is(err, ErrBackendInit) }
