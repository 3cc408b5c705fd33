package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/miles-labs/create-miles/internal/branding"
	"github.com/miles-labs/create-miles/internal/clierror"
	"github.com/spf13/cobra"
)

// Execute runs the root command with build info injected via ldflags.
// Errors are printed before being returned; the caller only sets the exit
// code.
func Execute(version, commit, date string) error {
	return run(newRootCmd(version, commit, date), os.Args[1:]...)
}

func newRootCmd(version, commit, date string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   branding.CLIName() + " <name>",
		Short: branding.Description(),
		Long: branding.Description() + `.

Creates <name>/ with a minimal package.json, installs the ` + branding.TemplatePackage() + `
package into it, and hands off to that package's init script to finish
scaffolding the project.`,
		Example:       "  " + branding.CLIName() + " my-app",
		Version:       version,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runCreate,
	}
	cmd.SetVersionTemplate(fmt.Sprintf("%s version {{.Version}} (commit: %s, built: %s)\n", branding.CLIName(), commit, date))
	return cmd
}

func run(cmd *cobra.Command, args ...string) error {
	// A nil slice would make cobra fall back to os.Args.
	if args == nil {
		args = []string{}
	}
	cmd.SetArgs(args)
	err := cmd.Execute()
	if err != nil {
		reportError(cmd.ErrOrStderr(), err)
	}
	return err
}

var usageHint = color.New(color.FgCyan).SprintFunc()

// reportError prints err. Pipeline failures carry their own formatting;
// anything else came from argument parsing, so a usage hint follows.
func reportError(w io.Writer, err error) {
	clierror.Fprint(w, err)
	if clierror.As(err) == nil {
		fmt.Fprintf(w, "Run '%s' for usage.\n", usageHint(branding.CLIName()+" --help"))
	}
}
