package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ndcmsl/workflows/internal/cli/shared"
	clierrors "github.com/ndcmsl/workflows/internal/errors"
	"github.com/ndcmsl/workflows/internal/history"
)

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "history",
		Short:        "View past generation runs",
		Long:         `View a log of reldocs runs with timestamp, command, release file, allowed file count, violations, exit code, and duration.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return fail(cmd, shared.ExitConfigError, clierrors.AsCLIError(err))
			}
			return runHistoryWithStateDir(cmd, cfg.StateDir)
		},
	}
	cmd.GroupID = shared.GroupConfiguration
	cmd.Flags().Bool("failed", false, "Show only runs that exited non-zero")
	cmd.Flags().IntP("limit", "n", 0, "Limit to last N entries (most recent)")
	cmd.Flags().BoolP("clear", "c", false, "Clear all history")
	return cmd
}

// runHistoryWithStateDir runs the history command with a custom state directory.
func runHistoryWithStateDir(cmd *cobra.Command, stateDir string) error {
	clearFlag, _ := cmd.Flags().GetBool("clear")
	failedOnly, _ := cmd.Flags().GetBool("failed")
	limit, _ := cmd.Flags().GetInt("limit")

	// Validate limit
	if limit < 0 {
		return fail(cmd, shared.ExitInvalidArguments,
			clierrors.NewArgumentError(fmt.Sprintf("limit must be positive, got %d", limit)))
	}

	// Handle clear flag
	if clearFlag {
		if err := history.ClearHistory(stateDir); err != nil {
			return fail(cmd, shared.ExitConfigError, clierrors.Wrap(err, clierrors.Runtime))
		}
		fmt.Fprintln(cmd.OutOrStdout(), "History cleared.")
		return nil
	}

	histFile, err := history.LoadHistory(stateDir)
	if err != nil {
		return fail(cmd, shared.ExitConfigError, clierrors.Wrap(err, clierrors.Runtime))
	}

	entries := filterEntries(histFile.Entries, failedOnly, limit)

	if len(entries) == 0 {
		if failedOnly {
			fmt.Fprintln(cmd.OutOrStdout(), "No failed runs.")
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), "No history available.")
		}
		return nil
	}

	displayEntries(cmd, entries)
	return nil
}

// filterEntries filters and limits history entries.
func filterEntries(entries []history.HistoryEntry, failedOnly bool, limit int) []history.HistoryEntry {
	var result []history.HistoryEntry

	for _, entry := range entries {
		if !failedOnly || entry.ExitCode != 0 {
			result = append(result, entry)
		}
	}

	// Apply limit (most recent entries)
	if limit > 0 && len(result) > limit {
		result = result[len(result)-limit:]
	}

	return result
}

// displayEntries formats and displays history entries.
func displayEntries(cmd *cobra.Command, entries []history.HistoryEntry) {
	out := cmd.OutOrStdout()

	green := color.New(color.FgGreen).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()
	cyan := color.New(color.FgCyan).SprintFunc()

	for _, entry := range entries {
		timestamp := entry.Timestamp.Format("2006-01-02 15:04:05")

		exitCodeStr := fmt.Sprintf("%d", entry.ExitCode)
		if entry.ExitCode == 0 {
			exitCodeStr = green(exitCodeStr)
		} else {
			exitCodeStr = red(exitCodeStr)
		}

		artifact := entry.Artifact
		if artifact == "" {
			artifact = "-"
		}

		violations := fmt.Sprintf("%d", entry.Violations)
		if entry.Violations > 0 {
			violations = yellow(violations)
		}

		fmt.Fprintf(out, "%s  %-9s  %-26s  files=%-4d  violations=%s  exit=%s  %s\n",
			cyan(timestamp),
			entry.Command,
			artifact,
			entry.AllowedFiles,
			violations,
			exitCodeStr,
			entry.Duration,
		)
	}
}
