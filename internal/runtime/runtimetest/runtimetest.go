// Package runtimetest provides a scripted runtime.Runner for tests.
package runtimetest

import (
	"context"
	"sync"

	"github.com/miles-labs/create-miles/internal/runtime"
)

// Runner records every command it is asked to run and answers with the exit
// code registered for the command's executable name. Unregistered names
// exit zero.
type Runner struct {
	mu        sync.Mutex
	exitCodes map[string]int
	startErrs map[string]error
	hooks     map[string]func(runtime.Command)
	calls     []runtime.Command
}

// New returns an empty Runner.
func New() *Runner {
	return &Runner{
		exitCodes: make(map[string]int),
		startErrs: make(map[string]error),
		hooks:     make(map[string]func(runtime.Command)),
	}
}

// ExitWith makes commands named name exit with code.
func (r *Runner) ExitWith(name string, code int) *Runner {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.exitCodes[name] = code
	return r
}

// FailToStart makes commands named name fail to start with err.
func (r *Runner) FailToStart(name string, err error) *Runner {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.startErrs[name] = err
	return r
}

// OnRun registers fn to be called with every command named name, before
// its exit code is reported. Tests use it to fake side effects.
func (r *Runner) OnRun(name string, fn func(runtime.Command)) *Runner {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.hooks[name] = fn
	return r
}

// Run implements runtime.Runner.
func (r *Runner) Run(_ context.Context, cmd runtime.Command) (*runtime.Result, error) {
	r.mu.Lock()
	r.calls = append(r.calls, cmd)
	startErr := r.startErrs[cmd.Name]
	code := r.exitCodes[cmd.Name]
	hook := r.hooks[cmd.Name]
	r.mu.Unlock()

	if startErr != nil {
		return nil, startErr
	}
	if hook != nil {
		hook(cmd)
	}
	return &runtime.Result{ExitCode: code, CommandLine: cmd.String()}, nil
}

// Calls returns the commands run so far, in order.
func (r *Runner) Calls() []runtime.Command {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]runtime.Command, len(r.calls))
	copy(out, r.calls)
	return out
}

// CallsTo returns the commands run so far whose executable is name.
func (r *Runner) CallsTo(name string) []runtime.Command {
	var out []runtime.Command
	for _, c := range r.Calls() {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out
}
