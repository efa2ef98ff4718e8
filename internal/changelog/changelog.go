// Package changelog reads and writes Keep a Changelog markdown.
//
// Releases are level-2 headings of the form "## [0.3.2] - 2026-02-23";
// categories are level-3 headings. Only Added, Changed and Fixed are kept,
// matching the landing's changelog section. Entries are stored as HTML
// fragments, the same form the locale content uses.
package changelog

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/adrg/frontmatter"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
	"golang.org/x/net/html"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/Bitlatte/alfred-site/internal/model"
)

// Meta is the optional front matter of a changelog file.
type Meta struct {
	Title string `yaml:"title"`
}

// Document is a parsed changelog.
type Document struct {
	Meta     Meta
	Releases []model.ChangelogVersion
	// Skipped lists headings that were not understood, such as
	// "Unreleased" or a "Removed" category.
	Skipped []string
}

var releaseHeading = regexp.MustCompile(`^\[?v?(\d+\.\d+\.\d+)\]?\s*[-\x{2013}\x{2014}]\s*(\d{4}-\d{2}-\d{2})`)

var md = goldmark.New()

// ParseFile reads and parses the changelog at path.
func ParseFile(path string) (*Document, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("changelog: read %s: %w", path, err)
	}
	doc, err := Parse(src)
	if err != nil {
		return nil, fmt.Errorf("changelog: %s: %w", path, err)
	}
	return doc, nil
}

// Parse reads releases from markdown, in document order.
func Parse(src []byte) (*Document, error) {
	doc := &Document{}
	body, err := frontmatter.Parse(bytes.NewReader(src), &doc.Meta)
	if err != nil {
		return nil, fmt.Errorf("front matter: %w", err)
	}

	root := md.Parser().Parse(text.NewReader(body))
	fold := cases.Fold()

	var current *model.ChangelogVersion
	var category *[]string
	for n := root.FirstChild(); n != nil; n = n.NextSibling() {
		switch n := n.(type) {
		case *ast.Heading:
			title := strings.TrimSpace(lines(n, body))
			switch n.Level {
			case 1:
				if doc.Meta.Title == "" {
					doc.Meta.Title = title
				}
			case 2:
				current, category = nil, nil
				m := releaseHeading.FindStringSubmatch(title)
				if m == nil {
					doc.Skipped = append(doc.Skipped, title)
					continue
				}
				doc.Releases = append(doc.Releases, model.ChangelogVersion{Version: m[1], Date: m[2]})
				current = &doc.Releases[len(doc.Releases)-1]
			case 3:
				category = nil
				if current == nil {
					continue
				}
				switch fold.String(title) {
				case "added":
					category = &current.Added
				case "changed":
					category = &current.Changed
				case "fixed":
					category = &current.Fixed
				default:
					doc.Skipped = append(doc.Skipped, current.Version+" "+title)
				}
			}
		case *ast.List:
			if category == nil {
				continue
			}
			for item := n.FirstChild(); item != nil; item = item.NextSibling() {
				entry, err := itemHTML(item, body)
				if err != nil {
					return nil, err
				}
				*category = append(*category, entry)
			}
		}
	}
	return doc, nil
}

// lines returns the raw source of a block, lines joined by a space.
func lines(n ast.Node, src []byte) string {
	var parts []string
	segs := n.Lines()
	for i := 0; i < segs.Len(); i++ {
		seg := segs.At(i)
		parts = append(parts, strings.TrimSpace(string(seg.Value(src))))
	}
	return strings.Join(parts, " ")
}

// itemHTML renders the first text block of a list item as inline HTML.
func itemHTML(item ast.Node, src []byte) (string, error) {
	block := item.FirstChild()
	if block == nil {
		return "", nil
	}
	var buf bytes.Buffer
	if err := md.Convert([]byte(lines(block, src)), &buf); err != nil {
		return "", fmt.Errorf("render entry: %w", err)
	}
	out := strings.TrimSpace(buf.String())
	out = strings.TrimPrefix(out, "<p>")
	out = strings.TrimSuffix(out, "</p>")
	return out, nil
}

// Render writes releases as Keep a Changelog markdown.
func Render(w io.Writer, heading string, releases []model.ChangelogVersion) error {
	caser := cases.Title(language.English)
	var b strings.Builder
	if heading != "" {
		fmt.Fprintf(&b, "# %s\n", heading)
	}
	for _, r := range releases {
		fmt.Fprintf(&b, "\n## [%s] - %s\n", r.Version, r.Date)
		for _, c := range []struct {
			name    string
			entries []string
		}{
			{"added", r.Added},
			{"changed", r.Changed},
			{"fixed", r.Fixed},
		} {
			if len(c.entries) == 0 {
				continue
			}
			fmt.Fprintf(&b, "\n### %s\n\n", caser.String(c.name))
			for _, e := range c.entries {
				fmt.Fprintf(&b, "- %s\n", Markdown(e))
			}
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// Markdown converts an inline HTML fragment to markdown. Strong, emphasis,
// code and links are kept; other tags are dropped and their text kept.
func Markdown(fragment string) string {
	var b strings.Builder
	var hrefs []string
	z := html.NewTokenizer(strings.NewReader(fragment))
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			return strings.TrimSpace(b.String())
		}
		tok := z.Token()
		switch tt {
		case html.TextToken:
			b.WriteString(tok.Data)
		case html.StartTagToken, html.EndTagToken:
			start := tt == html.StartTagToken
			switch tok.Data {
			case "strong", "b":
				b.WriteString("**")
			case "em", "i":
				b.WriteString("_")
			case "code":
				b.WriteString("`")
			case "a":
				if start {
					href := ""
					for _, a := range tok.Attr {
						if a.Key == "href" {
							href = a.Val
						}
					}
					hrefs = append(hrefs, href)
					b.WriteString("[")
				} else if len(hrefs) > 0 {
					fmt.Fprintf(&b, "](%s)", hrefs[len(hrefs)-1])
					hrefs = hrefs[:len(hrefs)-1]
				}
			}
		}
	}
}
