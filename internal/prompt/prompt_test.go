package prompt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuild_IncludesKeySections(t *testing.T) {
	t.Parallel()

	out := Build(Data{
		Project:  "Shop",
		Date:     "2026-04-01",
		Language: "Spanish",
		Context:  "Three storefronts share one codebase.",
		Files:    []string{"classes/Cart.php", "themes/skl_v2/cart.tpl"},
		Commits:  "abc1234 fix cart totals",
		DiffStat: " classes/Cart.php | 2 +-",
		Diff:     "+$total = 0;",
	})

	for _, snippet := range []string{
		"release documentation for Shop",
		"EXACT LIST OF MODIFIED FILES",
		"classes/Cart.php\nthemes/skl_v2/cart.tpl",
		"abc1234 fix cart totals",
		"+$total = 0;",
		"Three storefronts share one codebase.",
		"# Release Notes - 2026-04-01",
		"Write in Spanish.",
	} {
		assert.Contains(t, out, snippet)
	}
}

func TestBuild_Defaults(t *testing.T) {
	t.Parallel()

	out := Build(Data{Date: "2026-04-01"})

	assert.Contains(t, out, "release documentation for this project")
	assert.Contains(t, out, "Write in English.")
	assert.Equal(t, 2, strings.Count(out, "(none)"), "context and file list fall back to (none)")
}

func TestSystemPrompt(t *testing.T) {
	t.Parallel()

	assert.Contains(t, SystemPrompt, "NEVER mention files that were not modified")
}
