// Package config holds the site build configuration: target domain, output
// mode, locale routing policy, sitemap regions and asset settings.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"golang.org/x/text/language"

	"github.com/Bitlatte/alfred-site/internal/i18n"
)

// OutputStatic is the only output mode the landing supports.
const OutputStatic = "static"

// EnvPrefix prefixes environment overrides, e.g. ALFRED_SITE_OUTPUTDIR.
const EnvPrefix = "ALFRED_SITE"

type Config struct {
	Site          string        `mapstructure:"site"`
	Output        string        `mapstructure:"output"`
	OutputDir     string        `mapstructure:"outputDir"`
	ContentDir    string        `mapstructure:"contentDir"`
	StaticDir     string        `mapstructure:"staticDir"`
	UITable       string        `mapstructure:"uiTable"`
	ChangelogFile string        `mapstructure:"changelogFile"`
	LogLevel      string        `mapstructure:"logLevel"`
	I18n          I18nConfig    `mapstructure:"i18n"`
	Sitemap       SitemapConfig `mapstructure:"sitemap"`
	Build         BuildConfig   `mapstructure:"build"`
}

type I18nConfig struct {
	DefaultLocale string   `mapstructure:"defaultLocale"`
	Locales       []string `mapstructure:"locales"`
	// PrefixDefaultLocale serves the default locale under /<code>/ too.
	PrefixDefaultLocale bool `mapstructure:"prefixDefaultLocale"`
}

type SitemapConfig struct {
	// Locales maps a locale code to its region tag (es -> es-ES).
	Locales map[string]string `mapstructure:"locales"`
}

type BuildConfig struct {
	Assets    string `mapstructure:"assets"`
	Sourcemap bool   `mapstructure:"sourcemap"`
}

// SetDefaults registers the default build configuration on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("site", "https://alfred-dev.com")
	v.SetDefault("output", OutputStatic)
	v.SetDefault("outputDir", "dist")
	v.SetDefault("contentDir", "")
	v.SetDefault("staticDir", "public")
	v.SetDefault("uiTable", "")
	v.SetDefault("changelogFile", "")
	v.SetDefault("logLevel", "info")
	v.SetDefault("i18n.defaultLocale", string(i18n.ES))
	v.SetDefault("i18n.locales", []string{string(i18n.ES), string(i18n.EN)})
	v.SetDefault("i18n.prefixDefaultLocale", false)
	v.SetDefault("sitemap.locales", map[string]string{"es": "es-ES", "en": "en-US"})
	v.SetDefault("build.assets", "_assets")
	v.SetDefault("build.sourcemap", false)
}

// Default returns the configuration with no file and no environment.
func Default() Config {
	v := viper.New()
	SetDefaults(v)
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		panic(err)
	}
	return c
}

// Load reads file (or ./site.yaml when file is empty and one exists),
// applies ALFRED_SITE_* environment overrides and validates the result.
func Load(file string) (Config, string, error) {
	v := viper.New()
	SetDefaults(v)

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("site")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	used := ""
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, "", fmt.Errorf("config: read: %w", err)
		}
	} else {
		used = v.ConfigFileUsed()
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, used, fmt.Errorf("config: decode: %w", err)
	}
	if err := c.Validate(); err != nil {
		return c, used, err
	}
	return c, used, nil
}

// Validate checks the configuration is internally consistent.
func (c *Config) Validate() error {
	u, err := url.Parse(c.Site)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("config: site must be an absolute http(s) URL, got %q", c.Site)
	}
	if c.Output != OutputStatic {
		return fmt.Errorf("config: output must be %q, got %q", OutputStatic, c.Output)
	}
	if c.OutputDir == "" {
		return errors.New("config: missing outputDir")
	}
	if err := c.checkOutputDir(); err != nil {
		return err
	}
	if c.Build.Assets == "" || strings.ContainsAny(c.Build.Assets, `/\`) {
		return fmt.Errorf("config: build.assets must be a plain directory name, got %q", c.Build.Assets)
	}
	if len(c.I18n.Locales) == 0 {
		return errors.New("config: i18n.locales is empty")
	}

	seen := make(map[i18n.Locale]bool)
	for _, code := range c.I18n.Locales {
		l, err := i18n.ParseLocale(code)
		if err != nil {
			return fmt.Errorf("config: i18n.locales: %w", err)
		}
		if seen[l] {
			return fmt.Errorf("config: i18n.locales lists %q twice", code)
		}
		seen[l] = true

		region, ok := c.Sitemap.Locales[string(l)]
		if !ok {
			return fmt.Errorf("config: sitemap.locales has no region for %q", l)
		}
		if err := checkRegion(l, region); err != nil {
			return err
		}
	}

	def, err := i18n.ParseLocale(c.I18n.DefaultLocale)
	if err != nil {
		return fmt.Errorf("config: i18n.defaultLocale: %w", err)
	}
	if !seen[def] {
		return fmt.Errorf("config: i18n.defaultLocale %q is not in i18n.locales", def)
	}
	return nil
}

// checkOutputDir rejects output directories whose removal on build would
// take sources with it.
func (c *Config) checkOutputDir() error {
	out, err := filepath.Abs(c.OutputDir)
	if err != nil {
		return fmt.Errorf("config: outputDir: %w", err)
	}
	if cwd, err := filepath.Abs("."); err == nil && within(cwd, out) {
		return fmt.Errorf("config: outputDir %q contains the working directory", c.OutputDir)
	}
	for _, src := range []struct{ key, path string }{
		{"staticDir", c.StaticDir},
		{"contentDir", c.ContentDir},
		{"uiTable", c.UITable},
		{"changelogFile", c.ChangelogFile},
	} {
		if src.path == "" {
			continue
		}
		abs, err := filepath.Abs(src.path)
		if err != nil {
			return fmt.Errorf("config: %s: %w", src.key, err)
		}
		if within(abs, out) {
			return fmt.Errorf("config: outputDir %q contains %s %q", c.OutputDir, src.key, src.path)
		}
		if src.key == "staticDir" && within(out, abs) {
			return fmt.Errorf("config: outputDir %q is inside staticDir %q", c.OutputDir, src.path)
		}
	}
	return nil
}

// within reports whether path is dir or below it. Both are absolute.
func within(path, dir string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

func checkRegion(l i18n.Locale, region string) error {
	tag, err := language.Parse(region)
	if err != nil {
		return fmt.Errorf("config: sitemap.locales.%s: %w", l, err)
	}
	base, _ := tag.Base()
	want, _ := language.Make(string(l)).Base()
	if base != want {
		return fmt.Errorf("config: sitemap.locales.%s: region %q is not a %s variant", l, region, l)
	}
	if _, conf := tag.Region(); conf != language.Exact {
		return fmt.Errorf("config: sitemap.locales.%s: %q has no explicit region", l, region)
	}
	return nil
}

// Locales returns the configured locales. Call after Validate.
func (c *Config) Locales() []i18n.Locale {
	out := make([]i18n.Locale, 0, len(c.I18n.Locales))
	for _, code := range c.I18n.Locales {
		if l, err := i18n.ParseLocale(code); err == nil {
			out = append(out, l)
		}
	}
	return out
}

// DefaultLocale returns the configured default locale. Call after Validate.
func (c *Config) DefaultLocale() i18n.Locale {
	l, err := i18n.ParseLocale(c.I18n.DefaultLocale)
	if err != nil {
		return i18n.DefaultLocale
	}
	return l
}

// LocalePrefix is the URL path prefix for l: empty for the default locale
// unless prefixDefaultLocale is set, "/<code>" otherwise.
func (c *Config) LocalePrefix(l i18n.Locale) string {
	if l == c.DefaultLocale() && !c.I18n.PrefixDefaultLocale {
		return ""
	}
	return "/" + string(l)
}

// LocalePath is the root path of l's pages, always with a trailing slash.
func (c *Config) LocalePath(l i18n.Locale) string {
	return c.LocalePrefix(l) + "/"
}

// LocaleURL is the absolute home URL of l.
func (c *Config) LocaleURL(l i18n.Locale) string {
	return strings.TrimSuffix(c.Site, "/") + c.LocalePath(l)
}

// SitemapRegion returns the region tag for l, e.g. "en-US".
func (c *Config) SitemapRegion(l i18n.Locale) string {
	return c.Sitemap.Locales[string(l)]
}
