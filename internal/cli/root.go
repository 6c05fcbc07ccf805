// Package cli wires the reldocs commands.
package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ndcmsl/workflows/internal/cli/shared"
	"github.com/ndcmsl/workflows/internal/cli/util"
	clierrors "github.com/ndcmsl/workflows/internal/errors"
)

var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reldocs",
		Short: "Generate release documentation for AI assistants",
		Long: `reldocs turns the change data of a push into a dated release note, then folds it
into a cumulative changelog and the documentation index.

Every file reference in the generated note is checked against the set of files
that actually changed, and references outside that set are reported.`,
		Example: `  # Generate from files produced by git in CI
  reldocs generate --commits commits.txt --diff-stat stat.txt --diff full.diff --file-list files.txt

  # Generate straight from a repository range
  reldocs generate --repo . --from origin/main~1 --to HEAD

  # Check an existing note against a change set
  reldocs check docs/releases/2026-04-01_release.md --diff-stat stat.txt`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddGroup(
		&cobra.Group{ID: shared.GroupDocs, Title: "Documentation:"},
		&cobra.Group{ID: shared.GroupInspect, Title: "Inspection:"},
		&cobra.Group{ID: shared.GroupConfiguration, Title: "Configuration:"},
	)

	cmd.PersistentFlags().StringP("config", "c", "", "Path to config file (default: .reldocs/config.yml)")
	cmd.PersistentFlags().Bool("debug", false, "Print debug output")

	cmd.AddCommand(
		newGenerateCmd(),
		newCheckCmd(),
		newChangesetCmd(),
		newHistoryCmd(),
		newConfigCmd(),
		util.NewVersionCmd(),
	)
	return cmd
}

// Execute runs the root command. The returned error carries the exit code,
// see shared.ExitCode.
func Execute() error {
	return ExecuteContext(context.Background())
}

// ExecuteContext runs the root command with ctx.
func ExecuteContext(ctx context.Context) error {
	return execute(ctx, rootCmd)
}

func execute(ctx context.Context, root *cobra.Command) error {
	err := root.ExecuteContext(ctx)
	if err == nil {
		return nil
	}

	var exitErr *shared.ExitError
	if errors.As(err, &exitErr) {
		return err
	}

	// cobra flag and argument errors
	clierrors.FprintError(root.ErrOrStderr(), clierrors.NewArgumentError(err.Error(),
		fmt.Sprintf("Run '%s --help' for usage", root.CommandPath())))
	return shared.NewExitError(shared.ExitInvalidArguments)
}

// fail prints cliErr and returns an error that exits with code.
func fail(cmd *cobra.Command, code int, cliErr *clierrors.CLIError) error {
	clierrors.FprintError(cmd.ErrOrStderr(), cliErr)
	return shared.NewExitError(code)
}
