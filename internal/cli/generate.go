package cli

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/ndcmsl/workflows/internal/changelog"
	"github.com/ndcmsl/workflows/internal/cli/shared"
	"github.com/ndcmsl/workflows/internal/config"
	clierrors "github.com/ndcmsl/workflows/internal/errors"
	"github.com/ndcmsl/workflows/internal/generate"
	"github.com/ndcmsl/workflows/internal/gitsource"
	"github.com/ndcmsl/workflows/internal/history"
	"github.com/ndcmsl/workflows/internal/inputs"
	"github.com/ndcmsl/workflows/internal/output"
	"github.com/ndcmsl/workflows/internal/pipeline"
	"github.com/ndcmsl/workflows/internal/progress"
)

type generateOptions struct {
	sources sourceFlags
	context string
	docsDir string
	outDir  string
	dryRun  bool
}

func newGenerateCmd() *cobra.Command {
	var opts generateOptions

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a release note and update the changelog and index",
		Long: `Generate a release note from the changes of one push.

The allowed file set is built from the diff-stat and the optional file list.
The generated note is checked against it, written to out_dir, prepended to the
changelog and linked from the documentation index when the index exists.
If there are no commits, nothing is written and the command succeeds.`,
		Example: `  # From CI input files
  reldocs generate --commits commits.txt --diff-stat stat.txt --diff full.diff --file-list files.txt

  # From a repository range, without writing anything
  reldocs generate --repo . --from v1.4.0 --dry-run`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, &opts)
		},
	}
	cmd.GroupID = shared.GroupDocs

	opts.sources.register(cmd)
	cmd.Flags().StringVar(&opts.context, "context", "", "Context document (default: <docs_dir>/<context_file>)")
	cmd.Flags().StringVar(&opts.docsDir, "docs-dir", "", "Override docs_dir")
	cmd.Flags().StringVar(&opts.outDir, "out-dir", "", "Override out_dir")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "Generate and check the note, print it, write nothing")
	return cmd
}

func runGenerate(cmd *cobra.Command, opts *generateOptions) error {
	start := time.Now()
	p := newPrinter(cmd)
	if opts.dryRun {
		// stdout carries the document alone.
		p.Out = cmd.ErrOrStderr()
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return fail(cmd, shared.ExitConfigError, clierrors.AsCLIError(err))
	}
	applyLayoutOverrides(cfg, opts)

	if p.Verbose {
		gitsource.SetDebugLogger(p.Debug)
		defer gitsource.SetDebugLogger(nil)
	}

	bundle, code, cliErr := opts.sources.load(cmd.Context(), p)
	if cliErr != nil {
		return fail(cmd, code, cliErr)
	}
	if opts.context != "" {
		text, err := inputs.ReadFile(opts.context)
		if err != nil {
			return fail(cmd, shared.ExitConfigError, clierrors.Wrap(err, clierrors.Prerequisite))
		}
		bundle.Context = text
	}

	gen, err := generate.New(cfg.GeneratorOptions())
	if err != nil {
		if errors.Is(err, generate.ErrMissingAPIKey) {
			return fail(cmd, shared.ExitConfigError, clierrors.MissingAPIKey(generate.APIKeyEnv))
		}
		return fail(cmd, shared.ExitConfigError, clierrors.Wrap(err, clierrors.Configuration))
	}

	spinner := progress.NewSpinner(progress.DetectTerminal(os.Stderr), cmd.ErrOrStderr())
	res, runErr := pipeline.Run(cmd.Context(), pipelineConfig(cfg, opts.dryRun), bundle, gen, p, spinner)

	code, cliErr = classifyRunError(runErr)
	if errors.Is(runErr, pipeline.ErrNoCommits) {
		p.Warn("No commits to document, nothing written")
	}
	if !opts.dryRun {
		logRun(cmd, cfg, res, code, time.Since(start))
	}
	if cliErr != nil {
		return fail(cmd, code, cliErr)
	}

	if res != nil && res.DryRun {
		fmt.Fprintf(cmd.OutOrStdout(), "\n%s", res.Document)
		output.PrintDocumentEnd(cmd.OutOrStdout())
	}
	return nil
}

// applyLayoutOverrides applies --docs-dir and --out-dir on top of config.
// An out_dir that was derived from docs_dir follows the new docs_dir.
func applyLayoutOverrides(cfg *config.Configuration, opts *generateOptions) {
	if opts.docsDir != "" {
		if cfg.OutDir == filepath.Join(cfg.DocsDir, "releases") {
			cfg.OutDir = filepath.Join(opts.docsDir, "releases")
		}
		cfg.DocsDir = opts.docsDir
	}
	if opts.outDir != "" {
		cfg.OutDir = opts.outDir
	}
}

func pipelineConfig(cfg *config.Configuration, dryRun bool) pipeline.Config {
	return pipeline.Config{
		ProjectName:   cfg.ProjectName,
		DocsDir:       cfg.DocsDir,
		OutDir:        cfg.OutDir,
		ChangelogFile: cfg.ChangelogFile,
		IndexFile:     cfg.IndexFile,
		ContextFile:   cfg.ContextFile,
		Index:         cfg.IndexOptions(),
		Limits:        cfg.Limits,
		ExcludePaths:  cfg.ExcludePaths,
		Language:      cfg.Language,
		DryRun:        dryRun,
	}
}

// classifyRunError maps a pipeline error to an exit code and the error to print.
func classifyRunError(err error) (int, *clierrors.CLIError) {
	var mergeErr *changelog.MergeError
	switch {
	case err == nil, errors.Is(err, pipeline.ErrNoCommits):
		return shared.ExitSuccess, nil
	case isTimeout(err):
		return shared.ExitTimeout, clierrors.GenerationFailed(err)
	case errors.Is(err, pipeline.ErrEmptyGeneration):
		return shared.ExitGenerationFailed, clierrors.EmptyGeneration()
	case errors.Is(err, pipeline.ErrGeneration):
		return shared.ExitGenerationFailed, clierrors.GenerationFailed(err)
	case errors.As(err, &mergeErr):
		return shared.ExitGenerationFailed, clierrors.WrapWithMessage(err, clierrors.Runtime,
			"the release file was written but the changelog was not updated",
			"Fix the problem and add the entry to the changelog by hand")
	default:
		return shared.ExitGenerationFailed, clierrors.WrapWithMessage(err, clierrors.Runtime,
			"writing documentation failed",
			"Check permissions on docs_dir and out_dir")
	}
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

func logRun(cmd *cobra.Command, cfg *config.Configuration, res *pipeline.Result, code int, elapsed time.Duration) {
	w := history.NewWriter(cfg.StateDir, cfg.MaxHistoryEntries)
	w.Warnings = cmd.ErrOrStderr()
	run := history.Run{Command: "generate", ExitCode: code, Duration: elapsed}
	if res != nil {
		run.Artifact = res.Artifact
		run.AllowedFiles = res.Allowed.Len()
		run.Violations = len(res.Report.Violations)
	}
	w.LogRun(run)
}
