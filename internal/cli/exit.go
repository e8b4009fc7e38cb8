package cli

import (
	"errors"

	"github.com/younwookim/lumen/internal/application/app"
)

// Process exit statuses. Success and failure are the statuses app.Run
// returns; ExitCommandError covers problems found before the application
// starts, such as a bad flag or an unreadable config or replay file.
const (
	ExitSuccess      = app.ExitOK
	ExitFailure      = app.ExitFailure
	ExitCommandError = 2
)

// ExitError is returned by a command that wants lumen to exit with Code.
type ExitError struct {
	Code int
	Op   string // what the command was doing, e.g. "failed to load replay"
	Err  error  // may be nil
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return e.Op
	}
	return e.Op + ": " + e.Err.Error()
}

func (e *ExitError) Unwrap() error { return e.Err }

// NewExitError reports op as the reason for exiting with code.
func NewExitError(code int, op string) *ExitError {
	return &ExitError{Code: code, Op: op}
}

// WrapExitError attaches code and op to err.
func WrapExitError(code int, op string, err error) *ExitError {
	return &ExitError{Code: code, Op: op, Err: err}
}

// GetExitCode maps the error returned by Execute to a process status:
// ExitSuccess for nil, the carried code for an ExitError anywhere in the
// chain, ExitFailure otherwise.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}
