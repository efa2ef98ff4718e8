package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Bitlatte/alfred-site/internal/export"
)

var buildForce bool

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Checks the content and exports it for the page generator",
	Long: `The build command runs the same checks as 'check', then writes one JSON
bundle per locale, the UI string table and a manifest to
'<outputDir>/<build.assets>/content/', and copies the static directory into
the output directory. Content with errors is not exported unless --force is
given.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBuildProcess()
	},
}

func runBuildProcess() error {
	logger.Info("starting build", zap.String("outputDir", appConfig.OutputDir), zap.String("site", appConfig.Site))

	report, site, table, err := runValidation()
	if err != nil {
		return err
	}
	for _, f := range report.Warnings() {
		logger.Warn(f.Message, zap.String("rule", f.Rule), zap.String("locale", string(f.Locale)), zap.String("path", f.Path))
	}
	for _, f := range report.Errors() {
		logger.Error(f.Message, zap.String("rule", f.Rule), zap.String("locale", string(f.Locale)), zap.String("path", f.Path))
	}
	if err := report.Err(); err != nil {
		if !buildForce {
			return fmt.Errorf("build: %w", err)
		}
		logger.Warn("exporting despite errors", zap.Int("errors", len(report.Errors())))
	}

	m, err := export.New(appConfig, logger).Export(site, table)
	if err != nil {
		return err
	}
	logger.Info("build completed", zap.String("version", m.Version), zap.Int("locales", len(m.Locales)))
	return nil
}

func init() {
	buildCmd.Flags().BoolVar(&buildForce, "force", false, "export even when the content has errors")
	rootCmd.AddCommand(buildCmd)
}
