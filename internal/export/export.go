// Package export writes the validated content as JSON bundles for the page
// generator and copies the static directory next to them.
package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/Bitlatte/alfred-site/internal/config"
	"github.com/Bitlatte/alfred-site/internal/i18n"
	"github.com/Bitlatte/alfred-site/internal/model"
)

const (
	contentDir   = "content"
	uiFile       = "ui.json"
	manifestFile = "manifest.json"
)

// Manifest describes one export: where each locale's bundle lives and how
// it is routed.
type Manifest struct {
	Site          string        `json:"site"`
	DefaultLocale i18n.Locale   `json:"defaultLocale"`
	Locales       []LocaleEntry `json:"locales"`
	UI            string        `json:"ui"`
	Assets        string        `json:"assets"`
	Sourcemap     bool          `json:"sourcemap"`
	Version       string        `json:"version,omitempty"`
}

type LocaleEntry struct {
	Code   i18n.Locale `json:"code"`
	Prefix string      `json:"prefix"`
	URL    string      `json:"url"`
	Region string      `json:"region"`
	File   string      `json:"file"`
}

// Exporter writes bundles under cfg.OutputDir.
type Exporter struct {
	cfg config.Config
	log *zap.Logger
}

func New(cfg config.Config, log *zap.Logger) *Exporter {
	if log == nil {
		log = zap.NewNop()
	}
	return &Exporter{cfg: cfg, log: log}
}

// Export cleans the output directory, writes one JSON bundle per locale,
// the UI table and the manifest, then copies the static directory.
func (e *Exporter) Export(site *model.Site, table i18n.Table) (*Manifest, error) {
	out := e.cfg.OutputDir
	e.log.Info("cleaning output directory", zap.String("dir", out))
	if err := os.RemoveAll(out); err != nil {
		return nil, fmt.Errorf("export: clean %s: %w", out, err)
	}

	if err := e.copyStatic(); err != nil {
		return nil, err
	}

	bundleDir := filepath.Join(out, e.cfg.Build.Assets, contentDir)
	if err := os.MkdirAll(bundleDir, os.ModePerm); err != nil {
		return nil, fmt.Errorf("export: create %s: %w", bundleDir, err)
	}

	m := &Manifest{
		Site:          e.cfg.Site,
		DefaultLocale: site.Default,
		UI:            e.publicPath(uiFile),
		Assets:        e.cfg.Build.Assets,
		Sourcemap:     e.cfg.Build.Sourcemap,
	}
	for _, l := range site.Locales() {
		p, _ := site.Page(l)
		name := string(l) + ".json"
		if err := e.writeJSON(filepath.Join(bundleDir, name), p); err != nil {
			return nil, err
		}
		m.Locales = append(m.Locales, LocaleEntry{
			Code:   l,
			Prefix: e.cfg.LocalePrefix(l),
			URL:    e.cfg.LocaleURL(l),
			Region: e.cfg.SitemapRegion(l),
			File:   e.publicPath(name),
		})
		if l == site.Default {
			if latest, ok := p.LatestRelease(); ok {
				m.Version = latest.Version
			}
		}
		e.log.Debug("wrote locale bundle", zap.String("locale", string(l)), zap.String("file", name))
	}

	ui := make(map[string]map[i18n.Locale]string, len(table))
	for _, k := range table.Keys() {
		ui[k] = table[k]
	}
	if err := e.writeJSON(filepath.Join(bundleDir, uiFile), ui); err != nil {
		return nil, err
	}
	if err := e.writeJSON(filepath.Join(bundleDir, manifestFile), m); err != nil {
		return nil, err
	}

	e.log.Info("export complete", zap.String("dir", out), zap.Int("locales", len(m.Locales)))
	return m, nil
}

// publicPath is the URL path a bundle file is served from.
func (e *Exporter) publicPath(name string) string {
	return "/" + e.cfg.Build.Assets + "/" + contentDir + "/" + name
}

func (e *Exporter) writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("export: encode %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("export: write %s: %w", path, err)
	}
	return nil
}

func (e *Exporter) copyStatic() error {
	src := e.cfg.StaticDir
	if src == "" {
		return nil
	}
	if _, err := os.Stat(src); errors.Is(err, fs.ErrNotExist) {
		e.log.Warn("static directory not found, skipping copy", zap.String("dir", src))
		return nil
	}
	if err := copyDirContents(src, e.cfg.OutputDir); err != nil {
		return fmt.Errorf("export: copy static assets: %w", err)
	}
	e.log.Info("static assets copied", zap.String("from", src), zap.String("to", e.cfg.OutputDir))
	return nil
}

// copyDirContents recursively copies the contents of src into dst.
func copyDirContents(src, dst string) error {
	return filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return fmt.Errorf("relative path for %s: %w", path, err)
		}
		target := filepath.Join(dst, rel)
		if d.IsDir() {
			// umask applies; source permissions are not carried over
			if err := os.MkdirAll(target, os.ModePerm); err != nil {
				return fmt.Errorf("create directory %s: %w", target, err)
			}
			return nil
		}
		return copyFile(path, target)
	})
}

func copyFile(srcFile, dstFile string) error {
	in, err := os.Open(srcFile)
	if err != nil {
		return fmt.Errorf("open %s: %w", srcFile, err)
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return fmt.Errorf("stat %s: %w", srcFile, err)
	}
	if err := os.MkdirAll(filepath.Dir(dstFile), os.ModePerm); err != nil {
		return fmt.Errorf("create directory for %s: %w", dstFile, err)
	}
	out, err := os.OpenFile(dstFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return fmt.Errorf("create %s: %w", dstFile, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("copy %s to %s: %w", srcFile, dstFile, err)
	}
	return out.Close()
}
