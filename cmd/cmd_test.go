package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"io/fs"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Bitlatte/alfred-site/internal/config"
	"github.com/Bitlatte/alfred-site/internal/content"
	"github.com/Bitlatte/alfred-site/internal/i18n"
	"github.com/Bitlatte/alfred-site/internal/validate"
)

// setup points the package configuration at a scratch directory.
func setup(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	appConfig = config.Default()
	appConfig.OutputDir = filepath.Join(dir, "dist")
	appConfig.StaticDir = filepath.Join(dir, "public")
	logger = zap.NewNop()
	return dir
}

func testCommand() (*cobra.Command, *bytes.Buffer) {
	var out bytes.Buffer
	c := &cobra.Command{}
	c.SetOut(&out)
	return c, &out
}

// writeContent copies the shipped documents into dir so tests can edit them.
func writeContent(t *testing.T, dir string) {
	t.Helper()
	for _, l := range i18n.Supported() {
		data, err := fs.ReadFile(content.Embedded(), content.FileName(l))
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(filepath.Join(dir, content.FileName(l)), data, 0o644))
	}
}

func TestCheckText(t *testing.T) {
	setup(t)
	checkFormat = "text"
	c, out := testCommand()

	require.NoError(t, runCheck(c, nil))
	assert.Contains(t, out.String(), "0 error(s)")
}

func TestCheckJSONReportsDrift(t *testing.T) {
	dir := setup(t)
	writeContent(t, dir)
	path := filepath.Join(dir, "en.yaml")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, bytes.Replace(data, []byte("version: v0.3.2"), []byte("version: v0.3.1"), 1), 0o644))
	appConfig.ContentDir = dir
	checkFormat = "json"
	t.Cleanup(func() { checkFormat = "text" })
	c, out := testCommand()

	err = runCheck(c, nil)
	var re *validate.ReportError
	require.True(t, errors.As(err, &re))

	var report struct {
		Findings []struct {
			Rule     string `json:"rule"`
			Severity string `json:"severity"`
			Locale   string `json:"locale"`
			Path     string `json:"path"`
		} `json:"findings"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &report))
	require.NotEmpty(t, report.Findings)
	var rules []string
	for _, f := range report.Findings {
		assert.Equal(t, "error", f.Severity)
		assert.Equal(t, "en", f.Locale)
		rules = append(rules, f.Rule)
	}
	assert.ElementsMatch(t, []string{validate.RuleFooterVersion, validate.RuleShared}, rules)
}

func TestCheckUnknownFormat(t *testing.T) {
	setup(t)
	checkFormat = "yaml"
	t.Cleanup(func() { checkFormat = "text" })
	c, _ := testCommand()

	err := runCheck(c, nil)
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestCheckWithChangelogFile(t *testing.T) {
	dir := setup(t)
	path := filepath.Join(dir, "CHANGELOG.md")
	require.NoError(t, os.WriteFile(path, []byte("# Changelog\n\n## [0.3.2] - 2026-02-23\n\n### Added\n\n- One.\n"), 0o644))
	appConfig.ChangelogFile = path
	checkFormat = "text"
	c, out := testCommand()

	err := runCheck(c, nil)
	require.Error(t, err)
	assert.Contains(t, out.String(), validate.RuleMarkdownChangelog)
}

func TestBuild(t *testing.T) {
	setup(t)
	require.NoError(t, os.MkdirAll(appConfig.StaticDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(appConfig.StaticDir, "favicon.svg"), []byte("<svg/>"), 0o644))

	require.NoError(t, runBuildProcess())

	assert.FileExists(t, filepath.Join(appConfig.OutputDir, "_assets", "content", "es.json"))
	assert.FileExists(t, filepath.Join(appConfig.OutputDir, "_assets", "content", "manifest.json"))
	assert.FileExists(t, filepath.Join(appConfig.OutputDir, "favicon.svg"))
}

func TestBuildRefusesInvalidContent(t *testing.T) {
	dir := setup(t)
	table := filepath.Join(dir, "ui.yaml")
	require.NoError(t, os.WriteFile(table, []byte("copyHint:\n  es: clic para copiar\n"), 0o644))
	appConfig.UITable = table

	err := runBuildProcess()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "build:")
	assert.NoDirExists(t, appConfig.OutputDir)

	buildForce = true
	t.Cleanup(func() { buildForce = false })
	require.NoError(t, runBuildProcess())
	assert.FileExists(t, filepath.Join(appConfig.OutputDir, "_assets", "content", "ui.json"))
}

func TestUIGet(t *testing.T) {
	setup(t)
	c, out := testCommand()

	uiLocale = "en"
	t.Cleanup(func() { uiLocale = "" })
	require.NoError(t, uiGetCmd.RunE(c, []string{"copyHint"}))
	require.NoError(t, uiGetCmd.RunE(c, []string{"doesNotExist"}))

	assert.Equal(t, "click to copy\ndoesNotExist\n", out.String())
}

func TestUIXliffAndMerge(t *testing.T) {
	dir := setup(t)
	c, out := testCommand()
	xliffTarget, xliffNoDate = "en", true
	t.Cleanup(func() { xliffNoDate = false })

	require.NoError(t, uiXliffCmd.RunE(c, nil))
	doc := strings.Replace(out.String(), "<target>click to copy</target>", "<target>tap to copy</target>", 1)
	xlf := filepath.Join(dir, "ui.en.xlf")
	require.NoError(t, os.WriteFile(xlf, []byte(doc), 0o644))

	uiMergeOutput = filepath.Join(dir, "ui.toml")
	t.Cleanup(func() { uiMergeOutput = "" })
	require.NoError(t, uiMergeCmd.RunE(c, []string{xlf}))

	merged, err := i18n.LoadTable(uiMergeOutput)
	require.NoError(t, err)
	assert.Equal(t, "tap to copy", merged.T("copyHint", i18n.EN))
	assert.Equal(t, "clic para copiar", merged.T("copyHint", i18n.ES))
	// the embedded table is untouched
	assert.Equal(t, "click to copy", i18n.T("copyHint", i18n.EN))
}

func TestUIMissing(t *testing.T) {
	dir := setup(t)
	table := filepath.Join(dir, "ui.toml")
	require.NoError(t, os.WriteFile(table, []byte("[close]\nes = \"Cerrar\"\n"), 0o644))
	appConfig.UITable = table
	c, out := testCommand()

	err := uiMissingCmd.RunE(c, nil)
	require.Error(t, err)
	assert.Equal(t, "en\tclose\n", out.String())
}

func TestChangelogRender(t *testing.T) {
	setup(t)
	changelogLocale, changelogTitle = "en", "Changelog"
	t.Cleanup(func() { changelogLocale = "" })
	c, out := testCommand()

	require.NoError(t, changelogRenderCmd.RunE(c, nil))
	assert.True(t, strings.HasPrefix(out.String(), "# Changelog\n\n## [0.3.2] - 2026-02-23\n\n### Added\n\n- **Dynamic team composition**"))
}

func TestNoCacheHandler(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("home"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "en"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "en", "index.html"), []byte("en home"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "_assets"), 0o755))
	h := noCacheHandler(dir)

	for _, tc := range []struct {
		path string
		code int
	}{
		{"/", http.StatusOK},
		{"/en/", http.StatusOK},
		{"/_assets/", http.StatusNotFound},
	} {
		t.Run(tc.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tc.path, nil))
			assert.Equal(t, tc.code, rec.Code)
			if tc.code == http.StatusOK {
				assert.Equal(t, "no-cache, no-store, must-revalidate", rec.Header().Get("Cache-Control"))
			}
		})
	}
}

func TestWatchSetRelevant(t *testing.T) {
	setup(t)
	appConfig.OutputDir = "dist"
	appConfig.StaticDir = "public"
	appConfig.ContentDir = filepath.Join("site", "content")
	appConfig.ChangelogFile = "CHANGELOG.md"
	ws := newWatchSet()

	tests := []struct {
		path string
		want bool
	}{
		{"CHANGELOG.md", true},
		{"./CHANGELOG.md", true},
		{filepath.Join("public", "favicon.svg"), true},
		{filepath.Join("site", "content", "en.yaml"), true},
		{"README.md", false},
		{"dist", false},
		{filepath.Join("dist", "_assets", "content", "es.json"), false},
		{"distribution.md", false},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, ws.relevant(tt.path))
		})
	}
}

func TestWatchSkipsOutputDir(t *testing.T) {
	dir := setup(t)
	changelogPath := filepath.Join(dir, "CHANGELOG.md")
	require.NoError(t, os.WriteFile(changelogPath, []byte("# Changelog\n"), 0o644))
	appConfig.ChangelogFile = changelogPath
	appConfig.StaticDir = ""

	watcher, err := fsnotify.NewWatcher()
	require.NoError(t, err)
	defer watcher.Close()

	var rebuilds atomic.Int32
	rebuild := func() error {
		rebuilds.Add(1)
		// what an export does to the output directory
		if err := os.RemoveAll(appConfig.OutputDir); err != nil {
			return err
		}
		if err := os.MkdirAll(filepath.Join(appConfig.OutputDir, "_assets"), 0o755); err != nil {
			return err
		}
		return os.WriteFile(filepath.Join(appConfig.OutputDir, "_assets", "ui.json"), []byte("{}"), 0o644)
	}
	require.NoError(t, rebuild())
	rebuilds.Store(0)

	ws := newWatchSet()
	go watchAndRebuild(watcher, ws, rebuild)
	ws.add(watcher)

	require.NoError(t, os.WriteFile(changelogPath, []byte("# Changelog\n\n## [0.3.2] - 2026-02-23\n"), 0o644))
	require.Eventually(t, func() bool { return rebuilds.Load() == 1 }, 5*time.Second, 50*time.Millisecond)
	assert.Never(t, func() bool { return rebuilds.Load() > 1 }, 3*debounceDuration, 100*time.Millisecond)
}
