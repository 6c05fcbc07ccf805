// Package pipeline runs one release-documentation pass: it derives the
// allowed file set from the inputs, generates a document, validates its file
// references and folds the result into the release directory, the changelog
// and the documentation index.
//
// A run is not safe against concurrent runs over the same docs directory.
// Callers must make sure only one writer is active at a time.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/ndcmsl/workflows/internal/changelog"
	"github.com/ndcmsl/workflows/internal/changeset"
	"github.com/ndcmsl/workflows/internal/docindex"
	"github.com/ndcmsl/workflows/internal/docstore"
	"github.com/ndcmsl/workflows/internal/generate"
	"github.com/ndcmsl/workflows/internal/inputs"
	"github.com/ndcmsl/workflows/internal/prompt"
	"github.com/ndcmsl/workflows/internal/refcheck"
	"github.com/ndcmsl/workflows/internal/release"
)

var (
	// ErrNoCommits means there is nothing to document. It is not a failure.
	ErrNoCommits = errors.New("no commits to document")
	// ErrEmptyGeneration means the generator returned blank text.
	ErrEmptyGeneration = errors.New("generator returned an empty document")
	// ErrGeneration wraps any error returned by the generator.
	ErrGeneration = errors.New("generating documentation")
)

// AllowedPreview is how many allowed paths are listed before the run
// generates anything.
const AllowedPreview = 20

// Reporter receives progress messages. output.Printer satisfies it.
type Reporter interface {
	Step(format string, args ...any)
	Success(format string, args ...any)
	Warn(format string, args ...any)
	Debug(format string, args ...any)
	List(items []string)
}

// Progress shows activity while the generator runs.
type Progress interface {
	Start(message string)
	Stop()
}

// Config describes where documents live and how inputs are prepared.
type Config struct {
	ProjectName   string
	DocsDir       string
	OutDir        string
	ChangelogFile string
	IndexFile     string
	ContextFile   string
	Index         docindex.Options
	Limits        inputs.Limits
	ExcludePaths  []string
	Language      string
	// DryRun generates and validates but writes nothing.
	DryRun bool
	// Now defaults to time.Now.
	Now func() time.Time
}

// Result summarizes a completed run.
type Result struct {
	// Artifact is the release file name, empty on a dry run.
	Artifact      string
	ArtifactPath  string
	Document      string
	Allowed       changeset.AllowedSet
	Report        refcheck.Report
	ChangelogMode changelog.MergeMode
	IndexOutcome  docindex.Outcome
	DryRun        bool
}

// Run executes the pipeline over bundle. On ErrNoCommits, generation errors
// and ErrEmptyGeneration nothing has been written.
func Run(ctx context.Context, cfg Config, bundle inputs.Bundle, gen generate.Generator, rep Reporter, prog Progress) (*Result, error) {
	if rep == nil {
		rep = nopReporter{}
	}
	if prog == nil {
		prog = nopProgress{}
	}
	now := time.Now
	if cfg.Now != nil {
		now = cfg.Now
	}
	today := now()

	if strings.TrimSpace(bundle.Commits) == "" {
		return nil, ErrNoCommits
	}

	store := docstore.New(cfg.DocsDir)
	if bundle.Context == "" && cfg.ContextFile != "" {
		text, err := inputs.ReadFile(store.Path(cfg.ContextFile))
		if err != nil {
			return nil, fmt.Errorf("reading context: %w", err)
		}
		bundle.Context = text
	}

	// The allowed set always covers every changed file. exclude_paths only
	// narrows what the generator is shown.
	allowed := changeset.NewAllowedSet(bundle.FileList, changeset.Extract(bundle.DiffStat))
	reportAllowed(rep, allowed)

	shown, files := promptInputs(bundle, allowed, cfg.ExcludePaths)
	if len(files) < allowed.Len() {
		rep.Debug("%d excluded file(s) left out of the prompt", allowed.Len()-len(files))
	}

	trimmed := shown.ForPrompt(cfg.Limits)
	user := prompt.Build(prompt.Data{
		Project:  cfg.ProjectName,
		Date:     today.Format(release.DateLayout),
		Language: cfg.Language,
		Context:  trimmed.Context,
		Files:    files,
		Commits:  trimmed.Commits,
		DiffStat: trimmed.DiffStat,
		Diff:     trimmed.Diff,
	})
	rep.Debug("prompt is %d bytes", len(user))

	rep.Step("Generating documentation with %s", gen.Name())
	prog.Start("Generating documentation")
	doc, err := gen.Generate(ctx, prompt.SystemPrompt, user)
	prog.Stop()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrGeneration, err)
	}
	if strings.TrimSpace(doc) == "" {
		return nil, ErrEmptyGeneration
	}

	res := &Result{
		Document: doc,
		Allowed:  allowed,
		Report:   refcheck.Validate(doc, allowed),
		DryRun:   cfg.DryRun,
	}
	reportValidation(rep, res.Report)

	if cfg.DryRun {
		return res, nil
	}

	if err := write(cfg, store, res, today, rep); err != nil {
		return res, err
	}
	return res, nil
}

func write(cfg Config, store *docstore.Store, res *Result, today time.Time, rep Reporter) error {
	outDir := cfg.OutDir
	if outDir == "" {
		outDir = filepath.Join(cfg.DocsDir, "releases")
	}

	name, err := release.NewWriter(outDir).Write(res.Document, today)
	if err != nil {
		return fmt.Errorf("writing release: %w", err)
	}
	res.Artifact = name
	res.ArtifactPath = filepath.Join(outDir, name)
	rep.Success("Release written: %s", res.ArtifactPath)

	mode, err := mergeChangelog(cfg, store, res.Document)
	if err != nil {
		return err
	}
	res.ChangelogMode = mode
	if mode == changelog.ModeAppended {
		rep.Warn("%s has no header marker, entry appended at the end", cfg.ChangelogFile)
	} else {
		rep.Success("Changelog %s: %s", mode, store.Path(cfg.ChangelogFile))
	}

	outcome, err := mergeIndex(cfg, store, name, outDir)
	if err != nil {
		return err
	}
	res.IndexOutcome = outcome
	switch outcome {
	case docindex.OutcomeMissing:
		rep.Debug("%s not found, index left alone", cfg.IndexFile)
	case docindex.OutcomeNoTable:
		rep.Warn("%s has a releases section without a table, index left unchanged", cfg.IndexFile)
	default:
		rep.Success("Index %s: %s", outcome, store.Path(cfg.IndexFile))
	}
	return nil
}

func mergeChangelog(cfg Config, store *docstore.Store, doc string) (changelog.MergeMode, error) {
	existing, exists, err := store.Read(cfg.ChangelogFile)
	if err != nil {
		return 0, &changelog.MergeError{Path: store.Path(cfg.ChangelogFile), Err: err}
	}
	merged, mode := changelog.Merge(existing, exists, doc, changelog.Header(cfg.ProjectName))
	if err := store.Write(cfg.ChangelogFile, merged); err != nil {
		return 0, &changelog.MergeError{Path: store.Path(cfg.ChangelogFile), Err: err}
	}
	return mode, nil
}

func mergeIndex(cfg Config, store *docstore.Store, artifact, outDir string) (docindex.Outcome, error) {
	content, exists, err := store.Read(cfg.IndexFile)
	if err != nil {
		return 0, fmt.Errorf("reading index: %w", err)
	}
	if !exists {
		return docindex.OutcomeMissing, nil
	}

	opts := indexOptions(cfg, outDir)

	merged, outcome := docindex.Merge(content, artifact, opts)
	if !outcome.Changed() {
		return outcome, nil
	}
	if err := store.Write(cfg.IndexFile, merged); err != nil {
		return 0, fmt.Errorf("updating index: %w", err)
	}
	return outcome, nil
}

// promptInputs returns the bundle and file list shown to the generator, with
// the paths matching exclude removed.
func promptInputs(bundle inputs.Bundle, allowed changeset.AllowedSet, exclude []string) (inputs.Bundle, []string) {
	if len(exclude) == 0 {
		return bundle, allowed.Sorted()
	}
	bundle.DiffStat = changeset.FilterDiffStat(bundle.DiffStat, exclude)
	bundle.FileList = changeset.FilterFileList(bundle.FileList, exclude)
	shown := changeset.NewAllowedSet(bundle.FileList, changeset.Extract(bundle.DiffStat))
	return bundle, shown.Sorted()
}

// indexOptions fills the blanks in cfg.Index from the run layout and the
// docindex defaults.
func indexOptions(cfg Config, outDir string) docindex.Options {
	opts := cfg.Index
	def := docindex.DefaultOptions()
	if opts.ReleasesDir == "" {
		opts.ReleasesDir = releasesDir(cfg.DocsDir, outDir)
	}
	if opts.ChangelogFile == "" {
		opts.ChangelogFile = cfg.ChangelogFile
	}
	if opts.ConventionsHeading == "" {
		opts.ConventionsHeading = def.ConventionsHeading
	}
	return opts
}

// releasesDir returns outDir relative to docsDir in slash form, which is how
// the index links to release files.
func releasesDir(docsDir, outDir string) string {
	rel, err := filepath.Rel(docsDir, outDir)
	if err != nil || strings.HasPrefix(rel, "..") {
		return filepath.ToSlash(outDir)
	}
	return filepath.ToSlash(rel)
}

func reportAllowed(rep Reporter, allowed changeset.AllowedSet) {
	rep.Step("Allowed files: %d", allowed.Len())
	sorted := allowed.Sorted()
	if len(sorted) > AllowedPreview {
		rep.List(sorted[:AllowedPreview])
		rep.Step("... and %d more", len(sorted)-AllowedPreview)
		return
	}
	rep.List(sorted)
}

func reportValidation(rep Reporter, report refcheck.Report) {
	if report.Valid {
		rep.Success("File references check passed (%d valid, %d ignored)",
			report.Count(refcheck.StatusValid), report.Count(refcheck.StatusIgnored))
		return
	}
	rep.Warn("Document mentions %d file(s) outside the change set:", len(report.Violations))
	rep.List(report.Violations)
	rep.Warn("Review the generated document before publishing it")
}

type nopReporter struct{}

func (nopReporter) Step(string, ...any)    {}
func (nopReporter) Success(string, ...any) {}
func (nopReporter) Warn(string, ...any)    {}
func (nopReporter) Debug(string, ...any)   {}
func (nopReporter) List([]string)          {}

type nopProgress struct{}

func (nopProgress) Start(string) {}
func (nopProgress) Stop()        {}
