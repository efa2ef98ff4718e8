package validate

import (
	"fmt"
	"io"
	"sort"

	"github.com/Bitlatte/alfred-site/internal/i18n"
)

type Severity int

const (
	SeverityWarning Severity = iota
	SeverityError
)

func (s Severity) String() string {
	if s == SeverityError {
		return "error"
	}
	return "warning"
}

func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Finding is one broken rule at one content path.
type Finding struct {
	Rule     string      `json:"rule"`
	Severity Severity    `json:"severity"`
	Locale   i18n.Locale `json:"locale,omitempty"`
	Path     string      `json:"path"`
	Message  string      `json:"message"`
}

func (f Finding) String() string {
	loc := string(f.Locale)
	if loc == "" {
		loc = "-"
	}
	return fmt.Sprintf("%-7s %-2s %-22s %s: %s", f.Severity, loc, f.Rule, f.Path, f.Message)
}

// Report collects the findings of one run.
type Report struct {
	Findings []Finding `json:"findings"`
}

func (r *Report) add(rule string, sev Severity, l i18n.Locale, path, format string, args ...any) {
	r.Findings = append(r.Findings, Finding{
		Rule:     rule,
		Severity: sev,
		Locale:   l,
		Path:     path,
		Message:  fmt.Sprintf(format, args...),
	})
}

func (r *Report) errorf(rule string, l i18n.Locale, path, format string, args ...any) {
	r.add(rule, SeverityError, l, path, format, args...)
}

func (r *Report) warnf(rule string, l i18n.Locale, path, format string, args ...any) {
	r.add(rule, SeverityWarning, l, path, format, args...)
}

// sort orders findings errors first, then by locale and path.
func (r *Report) sort() {
	sort.SliceStable(r.Findings, func(i, j int) bool {
		a, b := r.Findings[i], r.Findings[j]
		if a.Severity != b.Severity {
			return a.Severity > b.Severity
		}
		if a.Locale != b.Locale {
			return a.Locale < b.Locale
		}
		return a.Path < b.Path
	})
}

func (r *Report) filter(sev Severity) []Finding {
	var out []Finding
	for _, f := range r.Findings {
		if f.Severity == sev {
			out = append(out, f)
		}
	}
	return out
}

func (r *Report) Errors() []Finding   { return r.filter(SeverityError) }
func (r *Report) Warnings() []Finding { return r.filter(SeverityWarning) }

func (r *Report) HasErrors() bool {
	for _, f := range r.Findings {
		if f.Severity == SeverityError {
			return true
		}
	}
	return false
}

// ByRule returns the findings raised by rule.
func (r *Report) ByRule(rule string) []Finding {
	var out []Finding
	for _, f := range r.Findings {
		if f.Rule == rule {
			out = append(out, f)
		}
	}
	return out
}

// Err returns a *ReportError when the report holds errors, nil otherwise.
func (r *Report) Err() error {
	if !r.HasErrors() {
		return nil
	}
	return &ReportError{Errors: len(r.Errors()), Warnings: len(r.Warnings())}
}

// WriteText prints one finding per line followed by a summary.
func (r *Report) WriteText(w io.Writer) error {
	for _, f := range r.Findings {
		if _, err := fmt.Fprintln(w, f); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "%d error(s), %d warning(s)\n", len(r.Errors()), len(r.Warnings()))
	return err
}

// ReportError reports that content failed validation.
type ReportError struct {
	Errors   int
	Warnings int
}

func (e *ReportError) Error() string {
	return fmt.Sprintf("validate: content has %d error(s) and %d warning(s)", e.Errors, e.Warnings)
}
