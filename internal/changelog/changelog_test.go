package changelog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Bitlatte/alfred-site/internal/model"
)

const sample = `---
title: Alfred Dev changelog
---
# Changelog

## [Unreleased]

- nothing yet

## [0.3.2] - 2026-02-23

### Added

- **Dynamic team composition** -- suggests optional agents.
- ` + "`run_flow()`" + ` entry point.

### Fixed

- Whole-word matching for
  short keywords.

## [0.3.1] – 2026-02-22

### ADDED

- Pinned items.

### Removed

- Old hook.
`

func TestParse(t *testing.T) {
	doc, err := Parse([]byte(sample))
	require.NoError(t, err)

	assert.Equal(t, "Alfred Dev changelog", doc.Meta.Title)
	want := []model.ChangelogVersion{
		{
			Version: "0.3.2",
			Date:    "2026-02-23",
			Added: []string{
				"<strong>Dynamic team composition</strong> -- suggests optional agents.",
				"<code>run_flow()</code> entry point.",
			},
			Fixed: []string{"Whole-word matching for short keywords."},
		},
		{
			Version: "0.3.1",
			Date:    "2026-02-22",
			Added:   []string{"Pinned items."},
		},
	}
	if diff := cmp.Diff(want, doc.Releases); diff != "" {
		t.Errorf("releases mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, []string{"[Unreleased]", "0.3.1 Removed"}, doc.Skipped)
}

func TestParseWithoutFrontMatter(t *testing.T) {
	doc, err := Parse([]byte("# Changes\n\n## 1.0.0 - 2025-12-01\n\n### Changed\n\n- First release.\n"))
	require.NoError(t, err)

	assert.Equal(t, "Changes", doc.Meta.Title)
	require.Len(t, doc.Releases, 1)
	assert.Equal(t, []string{"First release."}, doc.Releases[0].Changed)
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "CHANGELOG.md")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o644))

	doc, err := ParseFile(path)
	require.NoError(t, err)
	assert.Len(t, doc.Releases, 2)

	_, err = ParseFile(filepath.Join(t.TempDir(), "missing.md"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "changelog: read")
}

func TestMarkdown(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"<strong>Panel</strong> -- live view", "**Panel** -- live view"},
		{"uses <code>match_task_keywords()</code>", "uses `match_task_keywords()`"},
		{`see <a href="https://alfred-dev.com">docs</a>`, "see [docs](https://alfred-dev.com)"},
		{"<span class=\"x\">plain</span> &amp; simple", "plain & simple"},
		{"<em>new</em>", "_new_"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Markdown(tt.in), tt.in)
	}
}

func TestRenderParsesBack(t *testing.T) {
	releases := []model.ChangelogVersion{
		{
			Version: "0.3.2",
			Date:    "2026-02-23",
			Added:   []string{"<strong>Composition</strong> -- ephemeral teams", "<code>run_flow()</code> entry point"},
			Changed: []string{"326 tests"},
		},
		{
			Version: "0.3.1",
			Date:    "2026-02-22",
			Fixed:   []string{"Truncation warning"},
		},
	}

	var b strings.Builder
	require.NoError(t, Render(&b, "Changelog", releases))
	out := b.String()
	assert.True(t, strings.HasPrefix(out, "# Changelog\n\n## [0.3.2] - 2026-02-23\n\n### Added\n\n- **Composition**"))
	assert.NotContains(t, out, "### Fixed\n\n- 326")

	doc, err := Parse([]byte(out))
	require.NoError(t, err)
	if diff := cmp.Diff(releases, doc.Releases); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}
