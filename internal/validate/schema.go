package validate

import (
	"fmt"
	"net/url"
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/adrg/frontmatter"
	"golang.org/x/mod/semver"
	"golang.org/x/net/html"

	"github.com/Bitlatte/alfred-site/internal/i18n"
	"github.com/Bitlatte/alfred-site/internal/model"
)

const (
	RuleRequired = "schema.required"
	RuleKind     = "schema.kind"
	RuleHTML     = "html.balanced"
	RuleExample  = "config.example"
)

// fieldTag is a parsed `content` struct tag.
type fieldTag struct {
	name      string
	optional  bool
	shared    bool
	localized bool
	keyed     bool
	kind      string
}

func tagOf(f reflect.StructField) fieldTag {
	tag := fieldTag{name: f.Name}
	if name, _, _ := strings.Cut(f.Tag.Get("yaml"), ","); name != "" {
		tag.name = name
	}
	for _, opt := range strings.Split(f.Tag.Get("content"), ",") {
		switch opt {
		case "":
		case "optional":
			tag.optional = true
		case "shared":
			tag.shared = true
		case "localized":
			tag.localized = true
		case "keyed":
			tag.keyed = true
		default:
			tag.kind = opt
		}
	}
	return tag
}

func join(path, name string) string {
	if path == "" {
		return name
	}
	return path + "." + name
}

func index(path string, i int) string {
	return fmt.Sprintf("%s[%d]", path, i)
}

type schemaCheck struct {
	r      *Report
	locale i18n.Locale
}

// checkSchema reports required fields that are empty and leaves whose value
// does not match their declared kind.
func checkSchema(r *Report, l i18n.Locale, page *model.PageData) {
	c := schemaCheck{r: r, locale: l}
	c.value("", fieldTag{}, reflect.ValueOf(page).Elem())
}

func (c *schemaCheck) value(path string, tag fieldTag, v reflect.Value) {
	switch v.Kind() {
	case reflect.Struct:
		if v.IsZero() && path != "" {
			if !tag.optional {
				c.r.errorf(RuleRequired, c.locale, path, "section is missing")
			}
			return
		}
		t := v.Type()
		for i := 0; i < t.NumField(); i++ {
			fs := tagOf(t.Field(i))
			c.value(join(path, fs.name), fs, v.Field(i))
		}
	case reflect.Slice:
		if v.Len() == 0 {
			if !tag.optional {
				c.r.errorf(RuleRequired, c.locale, path, "list is empty")
			}
			return
		}
		elem := fieldTag{kind: tag.kind}
		for i := 0; i < v.Len(); i++ {
			c.value(index(path, i), elem, v.Index(i))
		}
	case reflect.String:
		s := v.String()
		if strings.TrimSpace(s) == "" {
			if !tag.optional {
				c.r.errorf(RuleRequired, c.locale, path, "is empty")
			}
			return
		}
		c.kind(path, tag.kind, s)
	}
}

var colorPattern = regexp.MustCompile(`^(var\(--[a-z0-9-]+\)|#[0-9a-fA-F]{3,8}|rgba?\(\s*\d{1,3}\s*,\s*\d{1,3}\s*,\s*\d{1,3}\s*(,\s*(0|1|0?\.\d+)\s*)?\))$`)

func (c *schemaCheck) kind(path, kind, s string) {
	var problem string
	switch kind {
	case "href":
		if !strings.HasPrefix(s, "#") && !strings.HasPrefix(s, "/") {
			problem = "must start with # or /"
		}
	case "url":
		if u, err := url.Parse(s); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			problem = "must be an absolute http(s) URL"
		}
	case "path":
		if !strings.HasPrefix(s, "/") || strings.HasPrefix(s, "//") {
			problem = "must be a root-relative path"
		}
	case "color":
		if !colorPattern.MatchString(s) {
			problem = "must be a CSS variable, hex or rgb(a) color"
		}
	case "date":
		if _, err := time.Parse(time.DateOnly, s); err != nil {
			problem = "must be a YYYY-MM-DD date"
		}
	case "semver":
		if !isRelease("v" + s) {
			problem = "must be a MAJOR.MINOR.PATCH version"
		}
	case "version":
		if !strings.HasPrefix(s, "v") || !isRelease(s) {
			problem = "must be a vMAJOR.MINOR.PATCH version"
		}
	case "html":
		if msg := unbalanced(s); msg != "" {
			c.r.warnf(RuleHTML, c.locale, path, "%s", msg)
		}
	case "yamlfm":
		var doc map[string]any
		if _, err := frontmatter.MustParse(strings.NewReader(s), &doc); err != nil {
			c.r.errorf(RuleExample, c.locale, path, "is not a YAML front matter document: %v", err)
		}
	}
	if problem != "" {
		c.r.errorf(RuleKind, c.locale, path, "%s, got %q", problem, s)
	}
}

// isRelease accepts a canonical vMAJOR.MINOR.PATCH with no pre-release or
// build suffix.
func isRelease(v string) bool {
	return semver.IsValid(v) && semver.Canonical(v) == v && semver.Prerelease(v) == "" && strings.Count(v, ".") == 2
}

var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true, "hr": true,
	"img": true, "input": true, "link": true, "meta": true, "source": true,
	"track": true, "wbr": true,
}

// unbalanced describes the first tag mismatch in an HTML fragment, or
// returns "" when every opened element is closed in order.
func unbalanced(fragment string) string {
	z := html.NewTokenizer(strings.NewReader(fragment))
	var open []string
	for {
		switch z.Next() {
		case html.ErrorToken:
			if len(open) > 0 {
				return fmt.Sprintf("<%s> is never closed", open[len(open)-1])
			}
			return ""
		case html.StartTagToken:
			name, _ := z.TagName()
			if !voidElements[string(name)] {
				open = append(open, string(name))
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			if len(open) == 0 || open[len(open)-1] != string(name) {
				return fmt.Sprintf("unexpected </%s>", name)
			}
			open = open[:len(open)-1]
		}
	}
}
