package runtime

import (
	"context"
	"strings"
)

// Runner executes a command and waits for it to exit.
type Runner interface {
	// Run starts cmd and blocks until it exits. The error return is reserved
	// for processes that could not be started; a process that ran and
	// exited non-zero is reported through Result.ExitCode.
	Run(ctx context.Context, cmd Command) (*Result, error)
}

// Command describes a process to run.
type Command struct {
	Name string   // executable name or path
	Args []string // arguments, not including Name
	Dir  string   // working directory; empty means the current directory
}

// String returns the command line as a single space-separated string.
func (c Command) String() string {
	return strings.Join(append([]string{c.Name}, c.Args...), " ")
}

// Result captures the outcome of a finished process.
type Result struct {
	ExitCode    int
	CommandLine string
}

// Success reports whether the process exited zero.
func (r *Result) Success() bool {
	return r.ExitCode == 0
}
