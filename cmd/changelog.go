package cmd

import (
	"github.com/spf13/cobra"

	"github.com/Bitlatte/alfred-site/internal/changelog"
	"github.com/Bitlatte/alfred-site/internal/content"
)

var (
	changelogLocale string
	changelogTitle  string
)

var changelogCmd = &cobra.Command{
	Use:   "changelog",
	Short: "Works with the landing's changelog section",
}

var changelogRenderCmd = &cobra.Command{
	Use:   "render",
	Short: "Prints a locale's changelog as Keep a Changelog markdown",
	RunE: func(cmd *cobra.Command, args []string) error {
		l, err := localeFlag(changelogLocale)
		if err != nil {
			return err
		}
		page, err := content.Load(content.Source(appConfig.ContentDir), l)
		if err != nil {
			return err
		}
		return changelog.Render(cmd.OutOrStdout(), changelogTitle, page.Changelog)
	},
}

func init() {
	changelogRenderCmd.Flags().StringVarP(&changelogLocale, "locale", "l", "", "locale to render (default is the default locale)")
	changelogRenderCmd.Flags().StringVar(&changelogTitle, "title", "Changelog", "top-level heading, empty for none")

	changelogCmd.AddCommand(changelogRenderCmd)
	rootCmd.AddCommand(changelogCmd)
}
