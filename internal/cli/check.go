package cli

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ndcmsl/workflows/internal/changeset"
	"github.com/ndcmsl/workflows/internal/cli/shared"
	clierrors "github.com/ndcmsl/workflows/internal/errors"
	"github.com/ndcmsl/workflows/internal/inputs"
	"github.com/ndcmsl/workflows/internal/refcheck"
)

func newCheckCmd() *cobra.Command {
	var (
		sources sourceFlags
		strict  bool
		all     bool
	)

	cmd := &cobra.Command{
		Use:   "check DOCUMENT",
		Short: "Check the file references of a document against a change set",
		Long: `Check every backtick-quoted file reference in DOCUMENT against the allowed
file set built from --diff-stat and --file-list (or from --repo).

Nothing is written. Violations are reported; with --strict they also make the
command fail.`,
		Example: `  reldocs check docs/releases/2026-04-01_release.md --diff-stat stat.txt --file-list files.txt
  reldocs check note.md --repo . --from v1.4.0 --strict`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p := newPrinter(cmd)

			if _, err := loadConfig(cmd); err != nil {
				return fail(cmd, shared.ExitConfigError, clierrors.AsCLIError(err))
			}

			if _, err := os.Stat(args[0]); err != nil {
				return fail(cmd, shared.ExitConfigError, clierrors.MissingDocument(args[0]))
			}
			doc, err := inputs.ReadFile(args[0])
			if err != nil {
				return fail(cmd, shared.ExitConfigError, clierrors.Wrap(err, clierrors.Prerequisite))
			}

			bundle, code, cliErr := sources.load(cmd.Context(), p)
			if cliErr != nil {
				return fail(cmd, code, cliErr)
			}
			allowed := allowedSet(bundle)

			report := refcheck.Validate(doc, allowed)
			printReport(cmd, report, all)

			if !report.Valid {
				p.Warn("%d reference(s) outside the change set of %d file(s)", len(report.Violations), allowed.Len())
				if strict {
					return fail(cmd, shared.ExitValidationFailed, clierrors.ValidationFailed(len(report.Violations)))
				}
				return nil
			}
			p.Success("All %d file reference(s) are in the change set", report.Count(refcheck.StatusValid))
			return nil
		},
	}
	cmd.GroupID = shared.GroupInspect

	sources.register(cmd)
	cmd.Flags().BoolVar(&strict, "strict", false, "Exit non-zero when violations are found")
	cmd.Flags().BoolVarP(&all, "all", "a", false, "List valid and ignored references too")
	return cmd
}

// allowedSet builds the allowed file set from every changed file.
func allowedSet(bundle inputs.Bundle) changeset.AllowedSet {
	return changeset.NewAllowedSet(bundle.FileList, changeset.Extract(bundle.DiffStat))
}

// promptSet is the part of the allowed set the generator is shown: the
// files not matching exclude.
func promptSet(bundle inputs.Bundle, exclude []string) changeset.AllowedSet {
	stat := changeset.FilterDiffStat(bundle.DiffStat, exclude)
	list := changeset.FilterFileList(bundle.FileList, exclude)
	return changeset.NewAllowedSet(list, changeset.Extract(stat))
}

func printReport(cmd *cobra.Command, report refcheck.Report, all bool) {
	out := cmd.OutOrStdout()
	green := color.New(color.FgGreen).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()

	for _, f := range report.Findings {
		switch f.Status {
		case refcheck.StatusViolation:
			fmt.Fprintf(out, "%s  %s\n", red(fmt.Sprintf("%-9s", f.Status)), f.Reference)
		case refcheck.StatusValid:
			if all {
				fmt.Fprintf(out, "%s  %s\n", green(fmt.Sprintf("%-9s", f.Status)), f.Reference)
			}
		default:
			if all {
				fmt.Fprintf(out, "%s  %s\n", dim(fmt.Sprintf("%-9s", f.Status)), f.Reference)
			}
		}
	}
}
