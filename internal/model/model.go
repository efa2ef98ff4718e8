package model

import (
	"sort"

	"github.com/Bitlatte/alfred-site/internal/i18n"
)

// Site holds the content of every published locale.
type Site struct {
	Default i18n.Locale
	Pages   map[i18n.Locale]*PageData
}

// NewSite returns an empty site whose default locale is def.
func NewSite(def i18n.Locale) *Site {
	return &Site{Default: def, Pages: make(map[i18n.Locale]*PageData)}
}

// Locales returns the loaded locales, default first, the rest sorted.
func (s *Site) Locales() []i18n.Locale {
	locales := make([]i18n.Locale, 0, len(s.Pages))
	for l := range s.Pages {
		if l != s.Default {
			locales = append(locales, l)
		}
	}
	sort.Slice(locales, func(i, j int) bool { return locales[i] < locales[j] })
	if _, ok := s.Pages[s.Default]; ok {
		locales = append([]i18n.Locale{s.Default}, locales...)
	}
	return locales
}

// Page returns the content for l.
func (s *Site) Page(l i18n.Locale) (*PageData, bool) {
	p, ok := s.Pages[l]
	return p, ok
}

// LatestRelease returns the first changelog entry; the changelog is kept
// newest first.
func (p *PageData) LatestRelease() (ChangelogVersion, bool) {
	if len(p.Changelog) == 0 {
		return ChangelogVersion{}, false
	}
	return p.Changelog[0], true
}

// StatByID returns the stat whose ID is id.
func (p *PageData) StatByID(id string) (Stat, bool) {
	for _, s := range p.Stats {
		if s.ID == id {
			return s, true
		}
	}
	return Stat{}, false
}

// InfraGroupByID returns the infrastructure group whose ID is id.
func (p *PageData) InfraGroupByID(id string) (InfraGroup, bool) {
	for _, g := range p.Infra.Groups {
		if g.ID == id {
			return g, true
		}
	}
	return InfraGroup{}, false
}

// SkillCount is the number of skills across every domain.
func (p *PageData) SkillCount() int {
	n := 0
	for _, d := range p.Skills.Domains {
		n += len(d.Skills)
	}
	return n
}
