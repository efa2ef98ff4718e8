package validate

import (
	"reflect"
	"regexp"
	"slices"
	"strings"

	"github.com/Bitlatte/alfred-site/internal/i18n"
	"github.com/Bitlatte/alfred-site/internal/model"
)

const (
	RuleCardinality = "parity.cardinality"
	RuleShared      = "parity.shared"
	RuleFigures     = "parity.figures"
)

var figurePattern = regexp.MustCompile(`\d+`)

type parityCheck struct {
	r         *Report
	reference i18n.Locale
	locale    i18n.Locale
}

// checkParity compares page against the reference locale's page: lists must
// have the same length and locale-independent leaves the same value at the
// same position.
func checkParity(r *Report, refLocale i18n.Locale, ref *model.PageData, l i18n.Locale, page *model.PageData) {
	c := parityCheck{r: r, reference: refLocale, locale: l}
	c.compare("", fieldTag{}, reflect.ValueOf(ref).Elem(), reflect.ValueOf(page).Elem())
}

func (c *parityCheck) compare(path string, tag fieldTag, ref, got reflect.Value) {
	switch ref.Kind() {
	case reflect.Struct:
		if path != "" && ref.IsZero() != got.IsZero() {
			if got.IsZero() {
				c.r.errorf(RuleCardinality, c.locale, path, "section is missing but present in %s", c.reference)
			} else {
				c.r.errorf(RuleCardinality, c.locale, path, "section is present but missing in %s", c.reference)
			}
			return
		}
		t := ref.Type()
		for i := 0; i < t.NumField(); i++ {
			fs := tagOf(t.Field(i))
			if fs.keyed {
				continue
			}
			c.compare(join(path, fs.name), fs, ref.Field(i), got.Field(i))
		}
	case reflect.Slice:
		if tag.localized {
			return
		}
		if ref.Len() != got.Len() {
			c.r.errorf(RuleCardinality, c.locale, path, "has %d entries, %s has %d", got.Len(), c.reference, ref.Len())
		}
		n := min(ref.Len(), got.Len())
		elem := fieldTag{shared: tag.shared}
		for i := 0; i < n; i++ {
			c.compare(index(path, i), elem, ref.Index(i), got.Index(i))
		}
	case reflect.String:
		if tag.shared {
			if ref.String() != got.String() {
				c.r.errorf(RuleShared, c.locale, path, "is %q, %s has %q", got.String(), c.reference, ref.String())
			}
			return
		}
		c.figures(path, ref.String(), got.String())
	case reflect.Int, reflect.Int64, reflect.Float64, reflect.Bool:
		if !ref.Equal(got) {
			c.r.errorf(RuleShared, c.locale, path, "is %v, %s has %v", got.Interface(), c.reference, ref.Interface())
		}
	}
}

// figures reports translated text that states different numbers than the
// reference. A translation may leave the numbers out entirely.
func (c *parityCheck) figures(path, ref, got string) {
	want, have := figuresOf(ref), figuresOf(got)
	if len(want) == 0 || len(have) == 0 || slices.Equal(want, have) {
		return
	}
	c.r.errorf(RuleFigures, c.locale, path, "states %s, %s states %s", strings.Join(have, ", "), c.reference, strings.Join(want, ", "))
}

// figuresOf returns the integers in s, sorted.
func figuresOf(s string) []string {
	out := figurePattern.FindAllString(s, -1)
	slices.Sort(out)
	return out
}
