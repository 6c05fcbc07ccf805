package refcheck

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ndcmsl/workflows/internal/changeset"
)

func allowedFromStat(stat string) changeset.AllowedSet {
	return changeset.NewAllowedSet("", changeset.Extract(stat))
}

func TestValidate_Scenario(t *testing.T) {
	t.Parallel()

	allowed := allowedFromStat("modules/foo/foo.php | 10 ++++\n 1 file changed, 10 insertions(+)")
	assert.Equal(t, []string{"modules/foo/foo.php"}, allowed.Sorted())

	clean := Validate("Updated `modules/foo/foo.php` to handle carts.", allowed)
	assert.True(t, clean.Valid)
	assert.Empty(t, clean.Violations)

	dirty := Validate("Updated `modules/foo/foo.php` and `classes/Bar.php`.", allowed)
	assert.False(t, dirty.Valid)
	assert.Equal(t, []string{"classes/Bar.php"}, dirty.Violations)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	allowed := changeset.NewAllowedSet("repo/src/app/main.go\ndocs/guide.md", []string{"web/themes/skl_v2/cart.tpl"})

	tests := map[string]struct {
		text           string
		wantValid      bool
		wantViolations []string
	}{
		"no references": {
			text:           "Nothing to see here.",
			wantValid:      true,
			wantViolations: []string{},
		},
		"exact match": {
			text:           "See `docs/guide.md`.",
			wantValid:      true,
			wantViolations: []string{},
		},
		"suffix match across roots": {
			text:           "Changed `src/app/main.go`.",
			wantValid:      true,
			wantViolations: []string{},
		},
		"substring match": {
			text:           "Touched `themes/skl_v2/cart.tpl`.",
			wantValid:      true,
			wantViolations: []string{},
		},
		"leading dot slash trimmed": {
			text:           "Changed `./docs/guide.md`.",
			wantValid:      true,
			wantViolations: []string{},
		},
		"bare filename ignored": {
			text:           "Edit `AutoLoad.json` when adding classes.",
			wantValid:      true,
			wantViolations: []string{},
		},
		"placeholder ignored": {
			text:           "Templates live in `themes/{vertical}/header.tpl`.",
			wantValid:      true,
			wantViolations: []string{},
		},
		"brace anywhere ignored": {
			text:           "Look at `modules/{name}/config.xml`.",
			wantValid:      true,
			wantViolations: []string{},
		},
		"order and duplicates preserved": {
			text:           "`b/two.php`, `a/one.php`, then `b/two.php` again.",
			wantValid:      false,
			wantViolations: []string{"b/two.php", "a/one.php", "b/two.php"},
		},
		"prose mention is not detected": {
			text:           "We also rewrote classes/Secret.php without quoting it.",
			wantValid:      true,
			wantViolations: []string{},
		},
		"token without extension ignored": {
			text:           "Run `make build/all` first.",
			wantValid:      true,
			wantViolations: []string{},
		},
		"directory reference ignored": {
			text:           "Everything under `override/classes/` changed.",
			wantValid:      true,
			wantViolations: []string{},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			report := Validate(tt.text, allowed)
			assert.Equal(t, tt.wantValid, report.Valid)
			assert.Equal(t, tt.wantViolations, report.Violations)
		})
	}
}

func TestValidate_IgnoredNeverReportedAcrossScans(t *testing.T) {
	t.Parallel()

	allowed := changeset.NewAllowedSet("", nil)
	text := "`index.php` and `themes/{v}/a.tpl` and `{root}/x.js`"

	for i := 0; i < 3; i++ {
		report := Validate(text, allowed)
		assert.True(t, report.Valid)
		assert.Equal(t, 3, report.Count(StatusIgnored))
	}
}

func TestMatches(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		ref    string
		member string
		want   bool
	}{
		"equal":                {ref: "a/b.go", member: "a/b.go", want: true},
		"suffix":               {ref: "b/c.go", member: "a/b/c.go", want: true},
		"substring":            {ref: "b/c.go", member: "a/b/c.go.orig", want: true},
		"short coincidental":   {ref: "c.go", member: "lib/abc.go", want: true},
		"unrelated":            {ref: "x/y.go", member: "a/b.go", want: false},
		"ref longer than path": {ref: "root/a/b.go", member: "a/b.go", want: false},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Matches(tt.ref, tt.member))
		})
	}
}

func TestReferences(t *testing.T) {
	t.Parallel()

	text := "Use `./a/b.go` and ` c/d.tpl`, not `e/f`, ` x/y.go ` or `g/h.toolong`."
	assert.Equal(t, []string{"a/b.go", "c/d.tpl"}, References(text))
}

func TestStatus_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "valid", StatusValid.String())
	assert.Equal(t, "ignored", StatusIgnored.String())
	assert.Equal(t, "violation", StatusViolation.String())
	assert.Equal(t, "unknown", Status(42).String())
}
