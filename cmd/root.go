package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Bitlatte/alfred-site/internal/changelog"
	"github.com/Bitlatte/alfred-site/internal/config"
	"github.com/Bitlatte/alfred-site/internal/content"
	"github.com/Bitlatte/alfred-site/internal/i18n"
	"github.com/Bitlatte/alfred-site/internal/logging"
	"github.com/Bitlatte/alfred-site/internal/model"
	"github.com/Bitlatte/alfred-site/internal/validate"
)

var cfgFile string
var appConfig config.Config
var logger = zap.NewNop()

var rootCmd = &cobra.Command{
	Use:   "alfred-site",
	Short: "Content toolkit for the Alfred Dev landing page",
	Long: `alfred-site owns the landing page content: the per-locale documents,
the UI string table and the build configuration. It checks that the locales
agree with each other and exports JSON bundles for the page generator.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initializeConfig(cmd)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./site.yaml)")
}

func initializeConfig(_ *cobra.Command) error {
	c, used, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	appConfig = c

	log, err := logging.New(appConfig.LogLevel)
	if err != nil {
		return err
	}
	logger = log

	if used != "" {
		logger.Debug("using config file", zap.String("file", used))
	} else {
		logger.Debug("no config file found, using defaults and environment")
	}
	return nil
}

// loadContent loads every configured locale and the UI table.
func loadContent() (*model.Site, i18n.Table, error) {
	fsys := content.Source(appConfig.ContentDir)
	site, err := content.LoadAll(fsys, appConfig.DefaultLocale(), appConfig.Locales())
	if err != nil {
		return nil, nil, err
	}

	table := i18n.Default()
	if appConfig.UITable != "" {
		if table, err = i18n.LoadTable(appConfig.UITable); err != nil {
			return nil, nil, err
		}
	}
	logger.Debug("content loaded",
		zap.Int("locales", len(site.Pages)),
		zap.Int("uiKeys", len(table)),
		zap.Bool("embedded", appConfig.ContentDir == ""))
	return site, table, nil
}

// runValidation loads the content and applies every rule the configuration
// enables.
func runValidation() (*validate.Report, *model.Site, i18n.Table, error) {
	site, table, err := loadContent()
	if err != nil {
		return nil, nil, nil, err
	}

	in := validate.Input{Site: site, Table: table, Config: &appConfig}
	if dir := appConfig.StaticDir; dir != "" {
		if _, err := os.Stat(dir); err == nil {
			in.Static = os.DirFS(dir)
		} else if errors.Is(err, fs.ErrNotExist) {
			logger.Debug("static directory not found, skipping asset checks", zap.String("dir", dir))
		} else {
			return nil, nil, nil, fmt.Errorf("stat static directory: %w", err)
		}
	}
	if appConfig.ChangelogFile != "" {
		doc, err := changelog.ParseFile(appConfig.ChangelogFile)
		if err != nil {
			return nil, nil, nil, err
		}
		for _, s := range doc.Skipped {
			logger.Debug("changelog heading skipped", zap.String("heading", s))
		}
		in.Changelog = doc.Releases
		in.ChangelogSource = appConfig.ChangelogFile
		if in.Changelog == nil {
			in.Changelog = []model.ChangelogVersion{}
		}
	}

	report := validate.Run(in)
	logger.Debug("validation finished",
		zap.Int("errors", len(report.Errors())),
		zap.Int("warnings", len(report.Warnings())))
	return report, site, table, nil
}
