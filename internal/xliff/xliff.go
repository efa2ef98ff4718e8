// Package xliff converts the UI string table to and from XLIFF 1.2, the
// format translation tools exchange.
package xliff

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/Bitlatte/alfred-site/internal/i18n"
)

const (
	Version  = "1.2"
	xmlns    = "urn:oasis:names:tc:xliff:document:1.2"
	toolID   = "alfred-site"
	original = "ui"
)

var ErrLanguageMismatch = errors.New("xliff: language mismatch")

type Xliff struct {
	XMLName xml.Name `xml:"xliff"`
	Version string   `xml:"version,attr"`
	Xmlns   string   `xml:"xmlns,attr"`
	File    File     `xml:"file"`
}

type File struct {
	SourceLang string `xml:"source-language,attr"`
	TargetLang string `xml:"target-language,attr"`
	DataType   string `xml:"datatype,attr"`
	Original   string `xml:"original,attr"`
	Date       string `xml:"date,attr,omitempty"`
	Header     Header `xml:"header"`
	Units      []Unit `xml:"body>trans-unit"`
}

type Header struct {
	Tool Tool `xml:"tool"`
}

type Tool struct {
	ID   string `xml:"tool-id,attr"`
	Name string `xml:"tool-name,attr"`
}

// Unit is one UI key. Target is empty when the key has no string yet.
type Unit struct {
	ID     string `xml:"id,attr"`
	Name   string `xml:"resname,attr"`
	Source string `xml:"source"`
	Target string `xml:"target"`
}

// FromTable builds a document translating source into target, one unit per
// key in sorted order. A zero date leaves the attribute out.
func FromTable(t i18n.Table, source, target i18n.Locale, date time.Time) *Xliff {
	x := &Xliff{
		Version: Version,
		Xmlns:   xmlns,
		File: File{
			SourceLang: string(source),
			TargetLang: string(target),
			DataType:   "plaintext",
			Original:   original,
			Header:     Header{Tool: Tool{ID: toolID, Name: toolID}},
		},
	}
	if !date.IsZero() {
		x.File.Date = date.UTC().Format(time.RFC3339)
	}
	for _, k := range t.Keys() {
		x.File.Units = append(x.File.Units, Unit{
			ID:     k,
			Name:   k,
			Source: t[k][source],
			Target: t[k][target],
		})
	}
	return x
}

// Encode writes the document with an XML declaration.
func (x *Xliff) Encode(w io.Writer) error {
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(x); err != nil {
		return fmt.Errorf("xliff: encode: %w", err)
	}
	_, err := io.WriteString(w, "\n")
	return err
}

// Decode reads a document and checks both languages are supported.
func Decode(r io.Reader) (*Xliff, error) {
	x := &Xliff{}
	if err := xml.NewDecoder(r).Decode(x); err != nil {
		return nil, fmt.Errorf("xliff: decode: %w", err)
	}
	source, err := i18n.ParseLocale(x.File.SourceLang)
	if err != nil {
		return nil, fmt.Errorf("xliff: source-language: %w", err)
	}
	target, err := i18n.ParseLocale(x.File.TargetLang)
	if err != nil {
		return nil, fmt.Errorf("xliff: target-language: %w", err)
	}
	x.File.SourceLang, x.File.TargetLang = string(source), string(target)
	return x, nil
}

// ReadFile decodes the document at path. When expect is set the target
// language must match it.
func ReadFile(path string, expect i18n.Locale) (*Xliff, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("xliff: %w", err)
	}
	defer f.Close()

	x, err := Decode(f)
	if err != nil {
		return nil, err
	}
	if expect != "" && i18n.Locale(x.File.TargetLang) != expect {
		return nil, fmt.Errorf("%w: %s has %s, expected %s", ErrLanguageMismatch, path, x.File.TargetLang, expect)
	}
	return x, nil
}

// Target is the locale the document translates into.
func (x *Xliff) Target() i18n.Locale {
	return i18n.Locale(x.File.TargetLang)
}

// Apply copies every non-empty target string into t and returns the number
// of entries set. Keys unknown to t are added.
func (x *Xliff) Apply(t i18n.Table) int {
	target := x.Target()
	n := 0
	for _, u := range x.File.Units {
		key := u.Name
		if key == "" {
			key = u.ID
		}
		if key == "" || u.Target == "" {
			continue
		}
		if t[key] == nil {
			t[key] = make(map[i18n.Locale]string)
		}
		t[key][target] = u.Target
		n++
	}
	return n
}
