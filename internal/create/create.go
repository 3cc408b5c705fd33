package create

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/miles-labs/create-miles/internal/branding"
	"github.com/miles-labs/create-miles/internal/clierror"
	"github.com/miles-labs/create-miles/internal/ctxlog"
	"github.com/miles-labs/create-miles/internal/manifest"
	"github.com/miles-labs/create-miles/internal/naming"
	"github.com/miles-labs/create-miles/internal/pkgspec"
	"github.com/miles-labs/create-miles/internal/runtime"
	"github.com/miles-labs/create-miles/internal/scaffold"
)

// Installer installs packages into a project directory.
type Installer interface {
	Install(ctx context.Context, dir string, packages []string) (*runtime.Result, error)
}

// Delegate runs the template package's init script for a project root.
type Delegate interface {
	Run(ctx context.Context, root string) (*runtime.Result, error)
}

var highlight = color.New(color.FgGreen).SprintFunc()

// Creator runs the creation pipeline for a single project. A Creator is
// used once; Run on a Creator that already ran returns an error.
type Creator struct {
	installer Installer
	delegate  Delegate
	pkg       pkgspec.Spec
	baseDir   string
	out       io.Writer

	state    State
	failedAt State
}

// Options configures a Creator.
type Options struct {
	// Package is the template package to install and delegate to.
	Package pkgspec.Spec
	// BaseDir is the directory the project name is resolved against.
	// Empty means the current working directory.
	BaseDir string
	// Out receives progress messages. Nil discards them.
	Out io.Writer
}

// New returns a Creator in the Start state.
func New(installer Installer, delegate Delegate, opts Options) *Creator {
	out := opts.Out
	if out == nil {
		out = io.Discard
	}
	return &Creator{
		installer: installer,
		delegate:  delegate,
		pkg:       opts.Package,
		baseDir:   opts.BaseDir,
		out:       out,
		state:     Start,
	}
}

// State returns the furthest state the run has reached.
func (c *Creator) State() State {
	return c.state
}

// FailedAt returns the state the run was in when it failed. It is only
// meaningful when State is Failed. DirectoryCreated means the project
// directory exists, with or without a manifest.
func (c *Creator) FailedAt() State {
	return c.failedAt
}

// Run creates the project called name. On failure the returned error is a
// *clierror.Error and anything created so far is left in place.
func (c *Creator) Run(ctx context.Context, name string) error {
	if c.state != Start {
		return fmt.Errorf("creator already ran (state %s)", c.state)
	}

	if err := c.validate(ctx, name); err != nil {
		return c.fail(ctx, err)
	}

	req, err := scaffold.NewRequest(name, c.baseDir)
	if err != nil {
		return c.fail(ctx, clierror.Wrap(err, clierror.Internal, "resolving project path"))
	}

	if err := scaffold.CreateRoot(req); err != nil {
		return c.fail(ctx, err)
	}
	c.transition(ctx, DirectoryCreated)

	fmt.Fprintf(c.out, "Creating a new %s app in %s...\n\n", branding.DisplayName(), highlight(req.Root))

	if _, err := scaffold.WriteManifest(req); err != nil {
		return c.fail(ctx, err)
	}

	if _, err := c.installer.Install(ctx, req.Root, []string{c.pkg.String()}); err != nil {
		return c.fail(ctx, err)
	}
	c.transition(ctx, PackageInstalled)
	c.logInstalledVersion(ctx, req.Root)

	if _, err := c.delegate.Run(ctx, req.Root); err != nil {
		return c.fail(ctx, err)
	}
	c.transition(ctx, Delegated)

	return nil
}

func (c *Creator) validate(ctx context.Context, name string) error {
	result := naming.ValidateProject(name, c.pkg.Name)
	if !result.ValidForNewPackages {
		return clierror.NewInvalidName(name, result.Errors, result.Warnings)
	}
	c.transition(ctx, NameValidated)
	return nil
}

// logInstalledVersion reports the version the package manager recorded for
// the template package. A missing or unreadable manifest is not fatal.
func (c *Creator) logInstalledVersion(ctx context.Context, root string) {
	logger := ctxlog.FromContext(ctx)
	m, err := manifest.Read(root)
	if err != nil {
		logger.Warn("could not read manifest after install", "error", err)
		return
	}
	if v, ok := m.Dependencies[c.pkg.Name]; ok {
		logger.Debug("template package installed", "package", c.pkg.Name, "version", v)
	}
}

func (c *Creator) transition(ctx context.Context, next State) {
	ctxlog.FromContext(ctx).Debug("state transition", "from", c.state, "to", next)
	c.state = next
}

func (c *Creator) fail(ctx context.Context, err error) error {
	ctxlog.FromContext(ctx).Debug("run failed", "state", c.state, "error", err)
	c.failedAt = c.state
	c.state = Failed
	if clierror.As(err) == nil {
		return clierror.Wrap(err, clierror.Internal, "creating project")
	}
	return err
}
