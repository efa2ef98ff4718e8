package validate

import (
	"errors"
	"io/fs"
	"path"
	"strings"
	"time"

	"golang.org/x/mod/semver"
	"golang.org/x/text/cases"

	"github.com/Bitlatte/alfred-site/internal/config"
	"github.com/Bitlatte/alfred-site/internal/i18n"
	"github.com/Bitlatte/alfred-site/internal/model"
)

const (
	RuleNumber            = "schema.number"
	RuleUseCase           = "schema.usecase"
	RuleChangelogOrder    = "changelog.order"
	RuleChangelogParity   = "changelog.parity"
	RuleStats             = "stats.derived"
	RuleFooterVersion     = "footer.version"
	RuleKeywords          = "composition.keywords"
	RuleUICoverage        = "ui.coverage"
	RuleSiteURLs          = "site.urls"
	RuleMarkdownChangelog = "markdown.changelog"
	RuleAssets            = "assets.exist"
)

func checkNumbers(r *Report, l i18n.Locale, p *model.PageData) {
	for i, s := range p.Stats {
		if s.Number <= 0 {
			r.errorf(RuleNumber, l, index("stats", i)+".number", "must be positive, got %d", s.Number)
		}
	}
	if p.Meta.OG.ImageWidth <= 0 || p.Meta.OG.ImageHeight <= 0 {
		r.errorf(RuleNumber, l, "meta.og", "image dimensions must be positive, got %dx%d", p.Meta.OG.ImageWidth, p.Meta.OG.ImageHeight)
	}
	for i, a := range p.Composition.Agents {
		if a.Score < 0 || a.Score > 1 {
			r.errorf(RuleNumber, l, index("composition.agents", i)+".score", "must be within [0, 1], got %v", a.Score)
		}
	}
}

func checkUseCases(r *Report, l i18n.Locale, p *model.PageData) {
	for i, c := range p.UseCases.Cases {
		if len(c.Steps) == 0 && strings.TrimSpace(c.Description) == "" {
			r.errorf(RuleUseCase, l, index("useCases.cases", i), "needs steps or a description")
		}
	}
}

// checkChangelogOrder requires releases newest first with unique versions
// and non-increasing dates.
func checkChangelogOrder(r *Report, l i18n.Locale, p *model.PageData) {
	seen := make(map[string]bool)
	for i, v := range p.Changelog {
		at := index("changelog", i)
		if seen[v.Version] {
			r.errorf(RuleChangelogOrder, l, at, "version %s appears more than once", v.Version)
			continue
		}
		seen[v.Version] = true
		if i == 0 {
			continue
		}
		prev := p.Changelog[i-1]
		if isRelease("v"+prev.Version) && isRelease("v"+v.Version) && semver.Compare("v"+prev.Version, "v"+v.Version) <= 0 {
			r.errorf(RuleChangelogOrder, l, at, "version %s is listed after older-or-equal %s", v.Version, prev.Version)
		}
		pd, err1 := time.Parse(time.DateOnly, prev.Date)
		vd, err2 := time.Parse(time.DateOnly, v.Date)
		if err1 == nil && err2 == nil && vd.After(pd) {
			r.errorf(RuleChangelogOrder, l, at, "date %s is later than the newer release's %s", v.Date, prev.Date)
		}
	}
}

// compareChangelogs reports releases whose version set, dates or per
// category item counts differ between want and got.
func compareChangelogs(r *Report, rule string, l i18n.Locale, refName string, want, got []model.ChangelogVersion) {
	byVersion := make(map[string]model.ChangelogVersion, len(got))
	for _, v := range got {
		byVersion[v.Version] = v
	}
	wanted := make(map[string]bool, len(want))
	for _, w := range want {
		wanted[w.Version] = true
		at := "changelog[" + w.Version + "]"
		g, ok := byVersion[w.Version]
		if !ok {
			r.errorf(rule, l, at, "release is missing, %s has it", refName)
			continue
		}
		if g.Date != w.Date {
			r.errorf(rule, l, at, "dated %s, %s says %s", g.Date, refName, w.Date)
		}
		for _, cat := range []struct {
			name      string
			want, got int
		}{
			{"added", len(w.Added), len(g.Added)},
			{"changed", len(w.Changed), len(g.Changed)},
			{"fixed", len(w.Fixed), len(g.Fixed)},
		} {
			if cat.want != cat.got {
				r.errorf(rule, l, at+"."+cat.name, "has %d entries, %s has %d", cat.got, refName, cat.want)
			}
		}
	}
	for _, g := range got {
		if !wanted[g.Version] {
			r.errorf(rule, l, "changelog["+g.Version+"]", "release is not in %s", refName)
		}
	}
}

// derivedStats maps a stat ID to the count it must equal.
var derivedStats = map[string]func(*model.PageData) int{
	"agents":    func(p *model.PageData) int { return len(p.CoreAgents.Agents) + len(p.OptionalAgents.Agents) },
	"skills":    (*model.PageData).SkillCount,
	"workflows": func(p *model.PageData) int { return len(p.Workflows.Flows) },
	"commands":  func(p *model.PageData) int { return len(p.Commands.List) },
	"gates":     func(p *model.PageData) int { return len(p.Gates.Core) + len(p.Gates.Optional) },
	"hooks":     infraCount("hooks"),
	"templates": infraCount("templates"),
}

func infraCount(id string) func(*model.PageData) int {
	return func(p *model.PageData) int {
		g, ok := p.InfraGroupByID(id)
		if !ok {
			return -1
		}
		return len(g.Items)
	}
}

func checkStats(r *Report, l i18n.Locale, p *model.PageData) {
	for i, s := range p.Stats {
		at := index("stats", i)
		count, ok := derivedStats[s.ID]
		if !ok {
			r.warnf(RuleStats, l, at, "no count is derived for stat %q", s.ID)
			continue
		}
		want := count(p)
		if want < 0 {
			r.errorf(RuleStats, l, at, "stat %q has no matching section to count", s.ID)
			continue
		}
		if s.Number != want {
			r.errorf(RuleStats, l, at, "stat %q says %d, the page lists %d", s.ID, s.Number, want)
		}
	}
}

func checkFooterVersion(r *Report, l i18n.Locale, p *model.PageData) {
	latest, ok := p.LatestRelease()
	if !ok {
		return
	}
	if want := "v" + latest.Version; p.Footer.Version != want {
		r.errorf(RuleFooterVersion, l, "footer.version", "is %s, latest changelog release is %s", p.Footer.Version, want)
	}
}

// checkKeywords requires every composition keyword to occur in the demo text,
// compared case-insensitively.
func checkKeywords(r *Report, l i18n.Locale, p *model.PageData) {
	fold := cases.Fold()
	text := fold.String(p.Composition.TerminalText)
	for i, a := range p.Composition.Agents {
		for j, kw := range a.Keywords {
			if !strings.Contains(text, fold.String(kw)) {
				r.errorf(RuleKeywords, l, index(index("composition.agents", i)+".keywords", j), "%q does not occur in terminalText", kw)
			}
		}
	}
}

func checkUICoverage(r *Report, t i18n.Table, locales []i18n.Locale) {
	for _, gap := range t.Missing(locales) {
		r.errorf(RuleUICoverage, gap.Locale, "ui."+gap.Key, "has no %s string, lookups return the key", gap.Locale)
	}
}

// checkSiteURLs ties page metadata to the build configuration's routing.
func checkSiteURLs(r *Report, cfg *config.Config, t i18n.Table, l i18n.Locale, p *model.PageData) {
	want := cfg.LocaleURL(l)
	if p.Meta.Canonical != want {
		r.errorf(RuleSiteURLs, l, "meta.canonical", "is %s, configured URL is %s", p.Meta.Canonical, want)
	}
	if p.Meta.OG.URL != want {
		r.errorf(RuleSiteURLs, l, "meta.og.url", "is %s, configured URL is %s", p.Meta.OG.URL, want)
	}

	region := strings.ReplaceAll(cfg.SitemapRegion(l), "-", "_")
	if p.Meta.Locale != region {
		r.errorf(RuleSiteURLs, l, "meta.locale", "is %s, sitemap region is %s", p.Meta.Locale, region)
	}
	if p.Meta.OG.Locale != region {
		r.errorf(RuleSiteURLs, l, "meta.og.locale", "is %s, sitemap region is %s", p.Meta.OG.Locale, region)
	}

	href := t.T("langSwitcherHref", l)
	for _, other := range cfg.Locales() {
		if other != l && href == cfg.LocalePath(other) {
			return
		}
	}
	r.errorf(RuleSiteURLs, l, "ui.langSwitcherHref", "%q is not the path of another locale", href)
}

// checkAssets looks up root-relative image paths, and absolute ones on the
// configured site, in the static file system.
func checkAssets(r *Report, static fs.FS, site string, l i18n.Locale, p *model.PageData) {
	refs := map[string]string{
		"meta.og.image":       p.Meta.OG.Image,
		"meta.twitter.image":  p.Meta.Twitter.Image,
		"dashboard.heroImage": p.Dashboard.HeroImage.Src,
	}
	for i, img := range p.Dashboard.GridImages {
		refs[index("dashboard.gridImages", i)] = img.Src
	}
	site = strings.TrimSuffix(site, "/")
	for at, ref := range refs {
		if site != "" && strings.HasPrefix(ref, site+"/") {
			ref = strings.TrimPrefix(ref, site)
		}
		if !strings.HasPrefix(ref, "/") {
			continue
		}
		name := strings.TrimPrefix(path.Clean(ref), "/")
		if _, err := fs.Stat(static, name); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				r.warnf(RuleAssets, l, at, "%s is not in the static directory", ref)
			} else {
				r.warnf(RuleAssets, l, at, "stat %s: %v", ref, err)
			}
		}
	}
}
