package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ndcmsl/workflows/internal/cli/shared"
	clierrors "github.com/ndcmsl/workflows/internal/errors"
)

func newChangesetCmd() *cobra.Command {
	var (
		sources   sourceFlags
		count     bool
		forPrompt bool
	)

	cmd := &cobra.Command{
		Use:   "changeset",
		Short: "Print the allowed file set of a change",
		Long: `Print the files a release note may mention: the union of the paths in
--diff-stat and the lines of --file-list, or the files changed in a --repo range.
One path per line, sorted. With --for-prompt, paths matching exclude_paths are
left out, giving the list the generator is shown.`,
		Example: `  reldocs changeset --diff-stat stat.txt --file-list files.txt
  reldocs changeset --repo . --from v1.4.0 --count
  reldocs changeset --diff-stat stat.txt --for-prompt`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := newPrinter(cmd)
			// Status lines go to stderr so stdout stays a clean path list.
			p.Out = cmd.ErrOrStderr()

			cfg, err := loadConfig(cmd)
			if err != nil {
				return fail(cmd, shared.ExitConfigError, clierrors.AsCLIError(err))
			}
			bundle, code, cliErr := sources.load(cmd.Context(), p)
			if cliErr != nil {
				return fail(cmd, code, cliErr)
			}

			allowed := allowedSet(bundle)
			if forPrompt {
				allowed = promptSet(bundle, cfg.ExcludePaths)
			}
			out := cmd.OutOrStdout()
			if count {
				fmt.Fprintln(out, allowed.Len())
				return nil
			}
			for _, path := range allowed.Sorted() {
				fmt.Fprintln(out, path)
			}
			return nil
		},
	}
	cmd.GroupID = shared.GroupInspect

	sources.register(cmd)
	cmd.Flags().BoolVar(&count, "count", false, "Print only the number of files")
	cmd.Flags().BoolVar(&forPrompt, "for-prompt", false, "Leave out paths matching exclude_paths")
	return cmd
}
