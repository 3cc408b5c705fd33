// Package pkgmanager installs packages into a project by shelling out to the
// system package manager (npm by default).
package pkgmanager

import (
	"context"
	"fmt"

	"github.com/miles-labs/create-miles/internal/clierror"
	"github.com/miles-labs/create-miles/internal/ctxlog"
	"github.com/miles-labs/create-miles/internal/runtime"
)

// DefaultLogLevel is passed to --loglevel when none is configured.
const DefaultLogLevel = "error"

// Installer runs "<executable> install" in a project directory.
type Installer struct {
	runner     runtime.Runner
	executable string
	logLevel   string
}

// New returns an Installer that invokes executable through runner.
func New(runner runtime.Runner, executable, logLevel string) *Installer {
	if logLevel == "" {
		logLevel = DefaultLogLevel
	}
	return &Installer{
		runner:     runner,
		executable: executable,
		logLevel:   logLevel,
	}
}

// Args returns the install arguments for packages: each dependency is saved
// to package.json at an exact version, and only errors are logged.
func (i *Installer) Args(packages []string) []string {
	args := []string{"install", "--save", "--save-exact", "--loglevel", i.logLevel}
	return append(args, packages...)
}

// Install installs packages into dir and blocks until the package manager
// exits. A package manager that cannot start or exits non-zero yields a
// SubprocessFailure carrying the attempted command line.
func (i *Installer) Install(ctx context.Context, dir string, packages []string) (*runtime.Result, error) {
	if len(packages) == 0 {
		return nil, fmt.Errorf("no packages to install")
	}

	cmd := runtime.Command{
		Name: i.executable,
		Args: i.Args(packages),
		Dir:  dir,
	}
	ctxlog.FromContext(ctx).Debug("installing packages", "packages", packages, "dir", dir)

	res, err := i.runner.Run(ctx, cmd)
	if err != nil {
		return nil, clierror.NewSubprocessStartFailure(cmd.String(), err)
	}
	if !res.Success() {
		return res, clierror.NewSubprocessFailure(res.CommandLine, res.ExitCode)
	}
	return res, nil
}
