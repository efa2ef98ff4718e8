package xliff

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Bitlatte/alfred-site/internal/i18n"
)

func TestFromTable(t *testing.T) {
	table := i18n.Table{
		"copyHint": {i18n.ES: "clic para copiar", i18n.EN: "click to copy"},
		"close":    {i18n.ES: "Cerrar"},
	}
	date := time.Date(2026, 2, 23, 10, 0, 0, 0, time.UTC)

	x := FromTable(table, i18n.ES, i18n.EN, date)

	assert.Equal(t, "2026-02-23T10:00:00Z", x.File.Date)
	assert.Equal(t, []Unit{
		{ID: "close", Name: "close", Source: "Cerrar"},
		{ID: "copyHint", Name: "copyHint", Source: "clic para copiar", Target: "click to copy"},
	}, x.File.Units)

	var b strings.Builder
	require.NoError(t, x.Encode(&b))
	out := b.String()
	assert.True(t, strings.HasPrefix(out, `<?xml version="1.0" encoding="UTF-8"?>`))
	assert.Contains(t, out, `<xliff version="1.2" xmlns="urn:oasis:names:tc:xliff:document:1.2">`)
	assert.Contains(t, out, `source-language="es" target-language="en"`)
	assert.Contains(t, out, `<trans-unit id="copyHint" resname="copyHint">`)
}

func TestRoundTrip(t *testing.T) {
	x := FromTable(i18n.Default(), i18n.ES, i18n.EN, time.Time{})
	var b strings.Builder
	require.NoError(t, x.Encode(&b))
	assert.NotContains(t, b.String(), "date=")

	got, err := Decode(strings.NewReader(b.String()))
	require.NoError(t, err)
	assert.Equal(t, i18n.EN, got.Target())
	assert.Equal(t, x.File.Units, got.File.Units)
}

func TestApply(t *testing.T) {
	doc := `<?xml version="1.0" encoding="UTF-8"?>
<xliff version="1.2" xmlns="urn:oasis:names:tc:xliff:document:1.2">
  <file source-language="es" target-language="EN" datatype="plaintext" original="ui">
    <body>
      <trans-unit id="close" resname="close"><source>Cerrar</source><target>Close</target></trans-unit>
      <trans-unit id="open"><source>Abrir</source><target>Open</target></trans-unit>
      <trans-unit id="copyHint" resname="copyHint"><source>clic para copiar</source><target></target></trans-unit>
    </body>
  </file>
</xliff>`
	x, err := Decode(strings.NewReader(doc))
	require.NoError(t, err)

	table := i18n.Table{
		"close":    {i18n.ES: "Cerrar"},
		"copyHint": {i18n.ES: "clic para copiar"},
	}
	assert.Equal(t, 2, x.Apply(table))
	assert.Equal(t, "Close", table.T("close", i18n.EN))
	assert.Equal(t, "Open", table.T("open", i18n.EN))
	assert.Equal(t, []i18n.Gap{{Key: "copyHint", Locale: i18n.EN}, {Key: "open", Locale: i18n.ES}},
		table.Missing(i18n.Supported()))
}

func TestDecodeRejectsUnsupportedLanguage(t *testing.T) {
	doc := `<xliff version="1.2"><file source-language="es" target-language="fr"><body/></file></xliff>`
	_, err := Decode(strings.NewReader(doc))
	require.Error(t, err)
	assert.True(t, errors.Is(err, i18n.ErrUnsupportedLocale))
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ui.en.xlf")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, FromTable(i18n.Default(), i18n.ES, i18n.EN, time.Time{}).Encode(f))
	require.NoError(t, f.Close())

	_, err = ReadFile(path, i18n.EN)
	require.NoError(t, err)

	_, err = ReadFile(path, i18n.ES)
	assert.True(t, errors.Is(err, ErrLanguageMismatch))
}
