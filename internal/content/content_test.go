package content

import (
	"errors"
	"io/fs"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Bitlatte/alfred-site/internal/i18n"
)

func TestLoadEmbedded(t *testing.T) {
	site, err := LoadAll(Embedded(), i18n.ES, i18n.Supported())
	require.NoError(t, err)
	require.Equal(t, []i18n.Locale{i18n.ES, i18n.EN}, site.Locales())

	es, _ := site.Page(i18n.ES)
	en, _ := site.Page(i18n.EN)

	assert.Equal(t, "https://alfred-dev.com/", es.Meta.Canonical)
	assert.Equal(t, "https://alfred-dev.com/en/", en.Meta.Canonical)
	assert.Len(t, es.Nav, 10)
	assert.Equal(t, es.Nav[0].SVGContent, en.Nav[0].SVGContent)
	assert.Len(t, en.Commands.List, len(es.Commands.List))
	assert.Equal(t, 56, en.SkillCount())
	assert.Equal(t, "v0.3.2", en.Footer.Version)
	assert.Equal(t, "Dynamic composition", en.Composition.Header.Label)
	assert.Equal(t, 0.85, es.Composition.Agents[0].Score)
	assert.Contains(t, es.Config.YAMLExample, "autonomia:")
	assert.Contains(t, en.Config.YAMLExample, "autonomy:")
}

func TestLoadRejectsSchemaViolations(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{
			name: "object where a string is expected",
			doc:  "commands:\n  optionalNote:\n    html: <strong>x</strong>\n",
		},
		{
			name: "unknown key",
			doc:  "footer:\n  version: v0.3.2\n  sponsor: nobody\n",
		},
		{
			name: "text where a number is expected",
			doc:  "stats:\n- id: agents\n  number: fifteen\n  label: Agents\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fsys := fstest.MapFS{"en.yaml": {Data: []byte(tt.doc)}}
			_, err := Load(fsys, i18n.EN)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "content: decode en.yaml")
		})
	}
}

func TestLoadMissingDocument(t *testing.T) {
	_, err := LoadAll(fstest.MapFS{"es.yaml": {Data: []byte("footer:\n  version: v1.0.0\n")}}, i18n.ES, i18n.Supported())
	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestSourceFallsBackToEmbedded(t *testing.T) {
	_, err := fs.Stat(Source(""), "es.yaml")
	assert.NoError(t, err)
}
