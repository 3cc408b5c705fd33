package cli

import (
	"github.com/miles-labs/create-miles/internal/clierror"
	"github.com/miles-labs/create-miles/internal/config"
	"github.com/miles-labs/create-miles/internal/create"
	"github.com/miles-labs/create-miles/internal/ctxlog"
	"github.com/miles-labs/create-miles/internal/delegate"
	"github.com/miles-labs/create-miles/internal/pkgmanager"
	"github.com/miles-labs/create-miles/internal/pkgspec"
	"github.com/miles-labs/create-miles/internal/runtime"
	"github.com/spf13/cobra"
)

func runCreate(cmd *cobra.Command, args []string) error {
	settings, err := config.Load()
	if err != nil {
		return clierror.Wrap(err, clierror.Internal, "loading configuration")
	}

	spec, err := pkgspec.Parse(settings.Package)
	if err != nil {
		return clierror.Wrap(err, clierror.Internal, "invalid template package")
	}

	logger := ctxlog.New(cmd.ErrOrStderr(), settings.Verbose)
	ctx := ctxlog.WithLogger(cmd.Context(), logger)
	logger.Debug("configuration loaded",
		"package", spec.String(),
		"pinned", spec.Pinned(),
		"package_manager", settings.PackageManager,
		"runtime", settings.Runtime,
	)

	runner := &runtime.ExecRunner{
		Stdin:  cmd.InOrStdin(),
		Stdout: cmd.OutOrStdout(),
		Stderr: cmd.ErrOrStderr(),
	}

	creator := create.New(
		pkgmanager.New(runner, settings.PackageManager, settings.LogLevel),
		delegate.New(runner, settings.Runtime, spec.Name),
		create.Options{
			Package: spec,
			Out:     cmd.OutOrStdout(),
		},
	)
	return creator.Run(ctx, args[0])
}
