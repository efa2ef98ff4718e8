// Package validate checks locale content against the schema and against the
// other locales.
//
// The content schema only describes shape. The rules here make the
// conventions explicit: required fields, value kinds, matching list sizes and
// locale-independent values across locales, changelog order, stats that agree
// with the lists they count, and UI strings present for every locale.
package validate

import (
	"io/fs"

	"github.com/Bitlatte/alfred-site/internal/config"
	"github.com/Bitlatte/alfred-site/internal/i18n"
	"github.com/Bitlatte/alfred-site/internal/model"
)

// Input is what one validation run looks at. Only Site is required.
type Input struct {
	Site  *model.Site
	Table i18n.Table

	// Config enables the routing and sitemap rules.
	Config *config.Config
	// Static enables the asset rule.
	Static fs.FS
	// Changelog is the parsed markdown changelog, compared with the
	// default locale's changelog when set.
	Changelog       []model.ChangelogVersion
	ChangelogSource string
}

// Run applies every rule and returns the sorted report.
func Run(in Input) *Report {
	r := &Report{}
	locales := in.Site.Locales()
	ref, hasRef := in.Site.Page(in.Site.Default)
	if !hasRef {
		r.errorf(RuleRequired, in.Site.Default, "", "default locale has no content")
	}

	for _, l := range locales {
		p, _ := in.Site.Page(l)
		checkSchema(r, l, p)
		checkNumbers(r, l, p)
		checkUseCases(r, l, p)
		checkChangelogOrder(r, l, p)
		checkStats(r, l, p)
		checkFooterVersion(r, l, p)
		checkKeywords(r, l, p)

		if hasRef && l != in.Site.Default {
			checkParity(r, in.Site.Default, ref, l, p)
			compareChangelogs(r, RuleChangelogParity, l, string(in.Site.Default), ref.Changelog, p.Changelog)
		}
		if in.Config != nil && in.Table != nil {
			checkSiteURLs(r, in.Config, in.Table, l, p)
		}
		if in.Static != nil {
			site := ""
			if in.Config != nil {
				site = in.Config.Site
			}
			checkAssets(r, in.Static, site, l, p)
		}
	}

	if in.Table != nil {
		checkUICoverage(r, in.Table, locales)
	}
	if hasRef && in.Changelog != nil {
		src := in.ChangelogSource
		if src == "" {
			src = "markdown changelog"
		}
		compareChangelogs(r, RuleMarkdownChangelog, in.Site.Default, src, in.Changelog, ref.Changelog)
	}

	r.sort()
	return r
}
