// Package delegate hands control of a new project to the init script shipped
// inside the installed template package. Everything the script does after
// that is outside this tool's knowledge.
package delegate

import (
	"context"
	"path/filepath"

	"github.com/miles-labs/create-miles/internal/clierror"
	"github.com/miles-labs/create-miles/internal/ctxlog"
	"github.com/miles-labs/create-miles/internal/runtime"
)

// Delegate runs node_modules/<package>/scripts/init.js with a runtime.
type Delegate struct {
	runner  runtime.Runner
	runtime string
	pkg     string
}

// New returns a Delegate that runs pkg's init script with the given runtime
// executable (e.g. "node"). pkg is a bare package name without a version.
func New(runner runtime.Runner, runtimeBin, pkg string) *Delegate {
	return &Delegate{
		runner:  runner,
		runtime: runtimeBin,
		pkg:     pkg,
	}
}

// ScriptPath returns the init script location relative to the project root.
func ScriptPath(pkg string) string {
	return filepath.Join("node_modules", filepath.FromSlash(pkg), "scripts", "init.js")
}

// Run executes the init script from inside root, passing root as its only
// argument, and blocks until it exits.
func (d *Delegate) Run(ctx context.Context, root string) (*runtime.Result, error) {
	cmd := runtime.Command{
		Name: d.runtime,
		Args: []string{ScriptPath(d.pkg), root},
		Dir:  root,
	}
	ctxlog.FromContext(ctx).Debug("delegating to init script", "package", d.pkg, "root", root)

	res, err := d.runner.Run(ctx, cmd)
	if err != nil {
		return nil, clierror.NewSubprocessStartFailure(cmd.String(), err)
	}
	if !res.Success() {
		return res, clierror.NewSubprocessFailure(res.CommandLine, res.ExitCode)
	}
	return res, nil
}
