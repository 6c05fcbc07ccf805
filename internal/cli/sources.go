package cli

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/ndcmsl/workflows/internal/cli/shared"
	clierrors "github.com/ndcmsl/workflows/internal/errors"
	"github.com/ndcmsl/workflows/internal/gitsource"
	"github.com/ndcmsl/workflows/internal/inputs"
	"github.com/ndcmsl/workflows/internal/output"
)

// sourceFlags selects where a command reads its change data from: input
// files written by CI, or a git repository range.
type sourceFlags struct {
	paths inputs.Paths
	repo  string
	rng   gitsource.Range
}

func (f *sourceFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.paths.Commits, "commits", "", "File with the commit list")
	cmd.Flags().StringVar(&f.paths.DiffStat, "diff-stat", "", "File with 'git diff --stat' output")
	cmd.Flags().StringVar(&f.paths.Diff, "diff", "", "File with the full diff")
	cmd.Flags().StringVar(&f.paths.FileList, "file-list", "", "File with the exact list of modified files, one per line")
	cmd.Flags().StringVar(&f.repo, "repo", "", "Read changes from this git repository instead of files")
	cmd.Flags().StringVar(&f.rng.From, "from", "", "Base revision for --repo (default: first parent of --to)")
	cmd.Flags().StringVar(&f.rng.To, "to", "", "Target revision for --repo (default: HEAD)")
}

func (f *sourceFlags) anyFile() bool {
	p := f.paths
	return p.Commits != "" || p.DiffStat != "" || p.Diff != "" || p.FileList != ""
}

// load returns the raw bundle. On failure it returns the exit code and the
// error to print.
func (f *sourceFlags) load(ctx context.Context, p *output.Printer) (inputs.Bundle, int, *clierrors.CLIError) {
	if f.repo != "" {
		if f.anyFile() {
			return inputs.Bundle{}, shared.ExitInvalidArguments, clierrors.ConflictingSources()
		}
		p.Step("Collecting changes from %s", f.repo)
		bundle, err := gitsource.Collect(ctx, f.repo, f.rng)
		if err != nil {
			return inputs.Bundle{}, shared.ExitConfigError, clierrors.WrapWithMessage(err, clierrors.Prerequisite,
				"reading git history failed",
				"Check that --repo points at a git repository",
				"Check that --from and --to name existing revisions")
		}
		return bundle, shared.ExitSuccess, nil
	}

	if f.paths.DiffStat == "" && f.paths.FileList == "" {
		return inputs.Bundle{}, shared.ExitInvalidArguments, clierrors.NoInputSource()
	}
	for _, path := range []string{f.paths.Commits, f.paths.DiffStat, f.paths.Diff, f.paths.FileList} {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); err != nil {
			p.Warn("%s not found, reading it as empty", path)
		}
	}
	bundle, err := inputs.Load(f.paths)
	if err != nil {
		return inputs.Bundle{}, shared.ExitConfigError, clierrors.Wrap(err, clierrors.Prerequisite)
	}
	return bundle, shared.ExitSuccess, nil
}
