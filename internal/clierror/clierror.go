package clierror

import (
	"errors"
	"fmt"
)

// Kind classifies a failure.
type Kind int

const (
	// Internal covers failures outside the taxonomy below, e.g. an
	// unwritable filesystem or an unreadable config file.
	Internal Kind = iota
	// InvalidName means the project name violates npm naming rules.
	InvalidName
	// DirectoryExists means the target project directory is already present.
	DirectoryExists
	// SubprocessFailure means the package manager or the delegate script
	// could not be started or exited non-zero.
	SubprocessFailure
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case InvalidName:
		return "InvalidName"
	case DirectoryExists:
		return "DirectoryExists"
	case SubprocessFailure:
		return "SubprocessFailure"
	default:
		return "Internal"
	}
}

// Error is a categorized failure.
type Error struct {
	Kind Kind
	// Message is the one-line description shown first.
	Message string
	// Details are extra lines listed under the message, e.g. every naming
	// rule a project name broke.
	Details []string
	// Subject is the value the failure is about (a name or a path). The
	// formatter highlights it.
	Subject string
	// Command is the full command line for SubprocessFailure.
	Command string
	// ExitCode is the subprocess exit status for SubprocessFailure, or -1
	// when the process never ran to completion.
	ExitCode int
	// Err is the underlying cause, if any.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := e.Message
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// NewInvalidName reports a name that failed validation. errs and warnings are
// listed in that order.
func NewInvalidName(name string, errs, warnings []string) *Error {
	details := make([]string, 0, len(errs)+len(warnings))
	details = append(details, errs...)
	details = append(details, warnings...)
	return &Error{
		Kind:    InvalidName,
		Message: fmt.Sprintf("Could not create a project called %q because of npm naming restrictions:", name),
		Details: details,
		Subject: name,
	}
}

// NewDirectoryExists reports a project root that is already present.
func NewDirectoryExists(root string) *Error {
	return &Error{
		Kind:    DirectoryExists,
		Message: fmt.Sprintf("Directory %s already exists.", root),
		Subject: root,
	}
}

// NewSubprocessFailure reports a subprocess that exited with a non-zero code.
func NewSubprocessFailure(command string, exitCode int) *Error {
	return &Error{
		Kind:     SubprocessFailure,
		Message:  fmt.Sprintf("Command failed with exit code %d", exitCode),
		Command:  command,
		ExitCode: exitCode,
	}
}

// NewSubprocessStartFailure reports a subprocess that could not be started.
func NewSubprocessStartFailure(command string, err error) *Error {
	return &Error{
		Kind:     SubprocessFailure,
		Message:  "Command could not be started",
		Command:  command,
		ExitCode: -1,
		Err:      err,
	}
}

// Wrap attaches a kind to an arbitrary error. A nil err returns nil.
func Wrap(err error, kind Kind, message string) *Error {
	if err == nil {
		return nil
	}
	return &Error{
		Kind:    kind,
		Message: message,
		Err:     err,
	}
}

// As returns the *Error in err's chain, or nil.
func As(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return nil
}

// IsKind reports whether err's chain contains an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	e := As(err)
	return e != nil && e.Kind == kind
}
