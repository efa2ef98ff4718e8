// Package content loads the per-locale landing documents.
//
// Each locale lives in one YAML document named after its code (es.yaml,
// en.yaml). The shipped documents are embedded; a content directory on disk
// can replace them.
package content

import (
	"embed"
	"fmt"
	"io/fs"
	"os"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v2"

	"github.com/Bitlatte/alfred-site/internal/i18n"
	"github.com/Bitlatte/alfred-site/internal/model"
)

//go:embed data/*.yaml
var embedded embed.FS

// Embedded returns the shipped locale documents.
func Embedded() fs.FS {
	sub, err := fs.Sub(embedded, "data")
	if err != nil {
		panic(err)
	}
	return sub
}

// Source returns dir as a file system, or the embedded documents when dir
// is empty.
func Source(dir string) fs.FS {
	if dir == "" {
		return Embedded()
	}
	return os.DirFS(dir)
}

// FileName is the document name for l.
func FileName(l i18n.Locale) string {
	return string(l) + ".yaml"
}

// Load decodes the document for l. Unknown keys and values of the wrong
// type are errors.
func Load(fsys fs.FS, l i18n.Locale) (*model.PageData, error) {
	name := FileName(l)
	src, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("content: load %s: %w", name, err)
	}
	var page model.PageData
	if err := yaml.UnmarshalStrict(src, &page); err != nil {
		return nil, fmt.Errorf("content: decode %s: %w", name, err)
	}
	return &page, nil
}

// LoadAll loads every locale into a Site whose default locale is def. The
// documents are decoded concurrently; the first error wins.
func LoadAll(fsys fs.FS, def i18n.Locale, locales []i18n.Locale) (*model.Site, error) {
	pages := make([]*model.PageData, len(locales))
	var g errgroup.Group
	for i, l := range locales {
		i, l := i, l
		g.Go(func() error {
			page, err := Load(fsys, l)
			if err != nil {
				return err
			}
			pages[i] = page
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	site := model.NewSite(def)
	for i, l := range locales {
		site.Pages[l] = pages[i]
	}
	return site, nil
}
