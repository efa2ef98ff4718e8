package model

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Bitlatte/alfred-site/internal/i18n"
)

func TestSiteLocalesDefaultFirst(t *testing.T) {
	s := NewSite(i18n.EN)
	s.Pages[i18n.ES] = &PageData{}
	s.Pages[i18n.EN] = &PageData{}

	assert.Equal(t, []i18n.Locale{i18n.EN, i18n.ES}, s.Locales())

	_, ok := s.Page(i18n.ES)
	assert.True(t, ok)
}

func TestSiteLocalesWithoutDefault(t *testing.T) {
	s := NewSite(i18n.ES)
	s.Pages[i18n.EN] = &PageData{}

	assert.Equal(t, []i18n.Locale{i18n.EN}, s.Locales())
}

func TestPageHelpers(t *testing.T) {
	p := &PageData{
		Stats: []Stat{{ID: "skills", Number: 3}},
		Skills: SkillSection{Domains: []SkillDomain{
			{Name: "a", Skills: []Skill{{Name: "x"}, {Name: "y"}}},
			{Name: "b", Skills: []Skill{{Name: "z"}}},
		}},
		Infra: InfraSection{Groups: []InfraGroup{{ID: "hooks", Items: []InfraItem{{Name: "h"}}}}},
		Changelog: []ChangelogVersion{
			{Version: "0.2.0", Date: "2026-02-20"},
			{Version: "0.1.0", Date: "2026-02-18"},
		},
	}

	assert.Equal(t, 3, p.SkillCount())

	st, ok := p.StatByID("skills")
	assert.True(t, ok)
	assert.Equal(t, 3, st.Number)

	_, ok = p.StatByID("hooks")
	assert.False(t, ok)

	g, ok := p.InfraGroupByID("hooks")
	assert.True(t, ok)
	assert.Len(t, g.Items, 1)

	latest, ok := p.LatestRelease()
	assert.True(t, ok)
	assert.Equal(t, "0.2.0", latest.Version)

	_, ok = (&PageData{}).LatestRelease()
	assert.False(t, ok)
}
