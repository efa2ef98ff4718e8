// Package i18n holds the supported locales and the short UI string table
// used by buttons, tooltips and aria-labels.
package i18n

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v2"
)

// Locale is one of the languages the landing is published in.
type Locale string

const (
	ES Locale = "es"
	EN Locale = "en"
)

// DefaultLocale is served without a URL prefix.
const DefaultLocale = ES

var (
	ErrUnsupportedLocale = errors.New("i18n: unsupported locale")
	ErrUnknownFormat     = errors.New("i18n: unknown table format")
)

// Supported returns the closed set of locales, default first.
func Supported() []Locale {
	return []Locale{ES, EN}
}

// ParseLocale validates s against the supported set.
func ParseLocale(s string) (Locale, error) {
	l := Locale(strings.ToLower(strings.TrimSpace(s)))
	for _, sup := range Supported() {
		if l == sup {
			return l, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedLocale, s)
}

// Table maps a UI key to its per-locale strings.
type Table map[string]map[Locale]string

//go:embed ui.toml
var defaultTableSrc []byte

var defaultTable = mustDecode(defaultTableSrc)

func mustDecode(src []byte) Table {
	t, err := decodeTOML(src)
	if err != nil {
		panic(fmt.Sprintf("i18n: embedded ui.toml: %v", err))
	}
	return t
}

// Default returns the embedded UI table.
func Default() Table {
	return defaultTable
}

// T looks key up in the embedded table.
func T(key string, locale Locale) string {
	return defaultTable.T(key, locale)
}

// T returns the string for key in locale. A missing key, or a key with no
// entry for locale, resolves to the key itself.
func (t Table) T(key string, locale Locale) string {
	if v, ok := t[key][locale]; ok {
		return v
	}
	return key
}

// Keys returns the table keys in sorted order.
func (t Table) Keys() []string {
	keys := make([]string, 0, len(t))
	for k := range t {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Gap is a key without an entry for Locale.
type Gap struct {
	Key    string
	Locale Locale
}

// Missing lists every (key, locale) pair without a string, sorted by key.
func (t Table) Missing(locales []Locale) []Gap {
	var gaps []Gap
	for _, k := range t.Keys() {
		for _, l := range locales {
			if _, ok := t[k][l]; !ok {
				gaps = append(gaps, Gap{Key: k, Locale: l})
			}
		}
	}
	return gaps
}

// LoadTable reads a UI table from a .toml, .yaml, .yml, .json or .jsonc
// file. JSON files may carry comments and trailing commas.
func LoadTable(path string) (Table, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("i18n: read %s: %w", path, err)
	}
	var t Table
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		t, err = decodeTOML(src)
	case ".yaml", ".yml":
		t, err = decodeYAML(src)
	case ".json", ".jsonc":
		t, err = decodeJSON(src)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}
	if err != nil {
		return nil, fmt.Errorf("i18n: decode %s: %w", path, err)
	}
	return t, nil
}

func decodeTOML(src []byte) (Table, error) {
	var raw map[string]map[string]string
	if err := toml.Unmarshal(src, &raw); err != nil {
		return nil, err
	}
	return fromRaw(raw)
}

func decodeYAML(src []byte) (Table, error) {
	var raw map[string]map[string]string
	if err := yaml.UnmarshalStrict(src, &raw); err != nil {
		return nil, err
	}
	return fromRaw(raw)
}

func decodeJSON(src []byte) (Table, error) {
	var raw map[string]map[string]string
	if err := json.Unmarshal(jsonc.ToJSON(src), &raw); err != nil {
		return nil, err
	}
	return fromRaw(raw)
}

func fromRaw(raw map[string]map[string]string) (Table, error) {
	t := make(Table, len(raw))
	for key, entries := range raw {
		t[key] = make(map[Locale]string, len(entries))
		for code, s := range entries {
			l, err := ParseLocale(code)
			if err != nil {
				return nil, fmt.Errorf("key %q: %w", key, err)
			}
			t[key][l] = s
		}
	}
	return t, nil
}

// WriteTOML encodes t in the layout of the embedded ui.toml, one table per
// key.
func (t Table) WriteTOML(w io.Writer) error {
	raw := make(map[string]map[string]string, len(t))
	for key, entries := range t {
		raw[key] = make(map[string]string, len(entries))
		for l, s := range entries {
			raw[key][string(l)] = s
		}
	}
	if err := toml.NewEncoder(w).Encode(raw); err != nil {
		return fmt.Errorf("i18n: encode toml: %w", err)
	}
	return nil
}
