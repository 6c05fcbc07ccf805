// Package gitsource reads change data straight from a git repository using
// go-git, producing the same inputs the CI workflow would otherwise write to
// files: a one-line-per-commit log, a diff-stat, the full diff and the list of
// changed paths.
package gitsource

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"

	"github.com/ndcmsl/workflows/internal/inputs"
)

// MaxCommits bounds the commit log of one range.
const MaxCommits = 500

// debugLogger receives diagnostic messages; nil disables them.
var debugLogger func(format string, args ...any)

// SetDebugLogger configures the debug logger for collection.
func SetDebugLogger(logger func(format string, args ...any)) {
	debugLogger = logger
}

func logDebug(format string, args ...any) {
	if debugLogger != nil {
		debugLogger(format, args...)
	}
}

// Range selects the commits to describe. From is exclusive and To inclusive.
// An empty From means the first parent of To; an empty To means HEAD.
type Range struct {
	From string
	To   string
}

// Collect opens the repository containing repoPath and returns the change
// data for r. The quick-context field of the bundle is left empty.
func Collect(ctx context.Context, repoPath string, r Range) (inputs.Bundle, error) {
	if repoPath == "" {
		wd, err := os.Getwd()
		if err != nil {
			return inputs.Bundle{}, fmt.Errorf("getting current directory: %w", err)
		}
		repoPath = wd
	}

	repo, err := git.PlainOpenWithOptions(repoPath, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return inputs.Bundle{}, fmt.Errorf("opening repository at %s: %w", repoPath, err)
	}

	to, err := resolveCommit(repo, orDefault(r.To, "HEAD"))
	if err != nil {
		return inputs.Bundle{}, err
	}
	from, err := resolveFrom(repo, to, r.From)
	if err != nil {
		return inputs.Bundle{}, err
	}
	logDebug("[gitsource] collecting %s..%s", shortHash(from), to.Hash.String()[:7])

	patch, err := diff(ctx, from, to)
	if err != nil {
		return inputs.Bundle{}, err
	}

	commits, err := commitLog(repo, from, to)
	if err != nil {
		return inputs.Bundle{}, err
	}

	return inputs.Bundle{
		Commits:  commits,
		DiffStat: DiffStat(patch.Stats()),
		Diff:     patch.String(),
		FileList: strings.Join(changedPaths(patch), "\n"),
	}, nil
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

func resolveCommit(repo *git.Repository, rev string) (*object.Commit, error) {
	hash, err := repo.ResolveRevision(plumbing.Revision(rev))
	if err != nil {
		return nil, fmt.Errorf("resolving %q: %w", rev, err)
	}
	commit, err := repo.CommitObject(*hash)
	if err != nil {
		return nil, fmt.Errorf("loading commit %s: %w", hash, err)
	}
	return commit, nil
}

// resolveFrom returns the base commit, or nil when to is a root commit and no
// explicit base was given.
func resolveFrom(repo *git.Repository, to *object.Commit, rev string) (*object.Commit, error) {
	if rev != "" {
		return resolveCommit(repo, rev)
	}
	if to.NumParents() == 0 {
		return nil, nil
	}
	parent, err := to.Parent(0)
	if err != nil {
		return nil, fmt.Errorf("loading parent of %s: %w", to.Hash, err)
	}
	return parent, nil
}

func diff(ctx context.Context, from, to *object.Commit) (*object.Patch, error) {
	fromTree := &object.Tree{}
	if from != nil {
		t, err := from.Tree()
		if err != nil {
			return nil, fmt.Errorf("loading tree of %s: %w", from.Hash, err)
		}
		fromTree = t
	}
	toTree, err := to.Tree()
	if err != nil {
		return nil, fmt.Errorf("loading tree of %s: %w", to.Hash, err)
	}

	patch, err := fromTree.PatchContext(ctx, toTree)
	if err != nil {
		return nil, fmt.Errorf("diffing trees: %w", err)
	}
	return patch, nil
}

// commitLog renders "<short-hash> <subject>" lines for the commits reachable
// from to but not from from, newest first, like 'git log from..to'. Merged
// side branches are included. Without from only to itself is listed.
func commitLog(repo *git.Repository, from, to *object.Commit) (string, error) {
	if from == nil {
		return logLine(to), nil
	}
	excluded, err := ancestors(repo, from)
	if err != nil {
		return "", err
	}

	iter := object.NewCommitIterCTime(to, excluded, nil)
	defer iter.Close()

	var lines []string
	err = iter.ForEach(func(c *object.Commit) error {
		if len(lines) >= MaxCommits {
			return storer.ErrStop
		}
		lines = append(lines, logLine(c))
		return nil
	})
	if err != nil && !errors.Is(err, storer.ErrStop) {
		return "", fmt.Errorf("walking commits: %w", err)
	}
	return strings.Join(lines, "\n"), nil
}

// ancestors returns c and every commit reachable from it.
func ancestors(repo *git.Repository, c *object.Commit) (map[plumbing.Hash]bool, error) {
	iter, err := repo.Log(&git.LogOptions{From: c.Hash})
	if err != nil {
		return nil, fmt.Errorf("reading log of %s: %w", c.Hash, err)
	}
	defer iter.Close()

	seen := make(map[plumbing.Hash]bool)
	err = iter.ForEach(func(a *object.Commit) error {
		seen[a.Hash] = true
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking ancestors of %s: %w", c.Hash, err)
	}
	return seen, nil
}

func logLine(c *object.Commit) string {
	return c.Hash.String()[:7] + " " + subject(c.Message)
}

func subject(message string) string {
	first, _, _ := strings.Cut(strings.TrimSpace(message), "\n")
	return strings.TrimSpace(first)
}

func shortHash(c *object.Commit) string {
	if c == nil {
		return "(root)"
	}
	return c.Hash.String()[:7]
}

// changedPaths lists the post-change path of every file in patch, or the
// pre-change path for deletions.
func changedPaths(patch *object.Patch) []string {
	var paths []string
	for _, fp := range patch.FilePatches() {
		from, to := fp.Files()
		switch {
		case to != nil:
			paths = append(paths, to.Path())
		case from != nil:
			paths = append(paths, from.Path())
		}
	}
	return paths
}

// DiffStat renders stats in `git diff --stat` form, including the trailing
// summary line.
func DiffStat(stats object.FileStats) string {
	if len(stats) == 0 {
		return ""
	}
	var adds, dels int
	for _, s := range stats {
		adds += s.Addition
		dels += s.Deletion
	}
	return stats.String() + summaryLine(len(stats), adds, dels) + "\n"
}

func summaryLine(files, adds, dels int) string {
	var b strings.Builder
	fmt.Fprintf(&b, " %d %s changed", files, plural(files, "file", "files"))
	if adds > 0 {
		fmt.Fprintf(&b, ", %d %s(+)", adds, plural(adds, "insertion", "insertions"))
	}
	if dels > 0 {
		fmt.Fprintf(&b, ", %d %s(-)", dels, plural(dels, "deletion", "deletions"))
	}
	if adds == 0 && dels == 0 {
		b.WriteString(", 0 insertions(+), 0 deletions(-)")
	}
	return b.String()
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
