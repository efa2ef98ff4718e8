package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Bitlatte/alfred-site/internal/i18n"
	"github.com/Bitlatte/alfred-site/internal/xliff"
)

var (
	uiLocale      string
	xliffSource   string
	xliffTarget   string
	xliffNoDate   bool
	uiMergeOutput string
)

var uiCmd = &cobra.Command{
	Use:   "ui",
	Short: "Looks up and exchanges the UI string table",
}

var uiGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Prints the string for key; unknown keys print the key itself",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		table, err := uiTable()
		if err != nil {
			return err
		}
		l, err := localeFlag(uiLocale)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), table.T(args[0], l))
		return nil
	},
}

var uiMissingCmd = &cobra.Command{
	Use:   "missing",
	Short: "Lists keys without a string for a configured locale",
	RunE: func(cmd *cobra.Command, args []string) error {
		table, err := uiTable()
		if err != nil {
			return err
		}
		gaps := table.Missing(appConfig.Locales())
		for _, g := range gaps {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", g.Locale, g.Key)
		}
		if len(gaps) > 0 {
			return fmt.Errorf("%d UI string(s) missing", len(gaps))
		}
		return nil
	},
}

var uiXliffCmd = &cobra.Command{
	Use:   "xliff",
	Short: "Writes the UI table as an XLIFF 1.2 document to stdout",
	RunE: func(cmd *cobra.Command, args []string) error {
		table, err := uiTable()
		if err != nil {
			return err
		}
		source, err := localeFlag(xliffSource)
		if err != nil {
			return err
		}
		target, err := i18n.ParseLocale(xliffTarget)
		if err != nil {
			return err
		}
		date := time.Now()
		if xliffNoDate {
			date = time.Time{}
		}
		return xliff.FromTable(table, source, target, date).Encode(cmd.OutOrStdout())
	},
}

var uiMergeCmd = &cobra.Command{
	Use:   "merge <file.xlf>",
	Short: "Merges translated XLIFF targets into the UI table and writes TOML",
	Long: `The merge command reads a translated XLIFF document, copies every
non-empty target string into the UI table and writes the result as TOML to
--out, or to stdout when --out is not given.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		table, err := uiTable()
		if err != nil {
			return err
		}
		doc, err := xliff.ReadFile(args[0], "")
		if err != nil {
			return err
		}
		n := doc.Apply(table)
		logger.Info("merged translations", zap.String("file", args[0]), zap.String("locale", string(doc.Target())), zap.Int("strings", n))

		if uiMergeOutput == "" {
			return table.WriteTOML(cmd.OutOrStdout())
		}
		f, err := os.Create(uiMergeOutput)
		if err != nil {
			return fmt.Errorf("create %s: %w", uiMergeOutput, err)
		}
		if err := table.WriteTOML(f); err != nil {
			f.Close()
			return err
		}
		return f.Close()
	},
}

// uiTable returns a private copy of the configured UI table.
func uiTable() (i18n.Table, error) {
	src := i18n.Default()
	if appConfig.UITable != "" {
		t, err := i18n.LoadTable(appConfig.UITable)
		if err != nil {
			return nil, err
		}
		src = t
	}
	out := make(i18n.Table, len(src))
	for k, entries := range src {
		out[k] = make(map[i18n.Locale]string, len(entries))
		for l, s := range entries {
			out[k][l] = s
		}
	}
	return out, nil
}

// localeFlag parses a --locale style flag; empty means the default locale.
func localeFlag(s string) (i18n.Locale, error) {
	if s == "" {
		return appConfig.DefaultLocale(), nil
	}
	return i18n.ParseLocale(s)
}

func init() {
	uiGetCmd.Flags().StringVarP(&uiLocale, "locale", "l", "", "locale to look up (default is the default locale)")
	uiXliffCmd.Flags().StringVar(&xliffSource, "source", "", "source locale (default is the default locale)")
	uiXliffCmd.Flags().StringVar(&xliffTarget, "target", string(i18n.EN), "target locale")
	uiXliffCmd.Flags().BoolVar(&xliffNoDate, "no-date", false, "leave the date attribute out")
	uiMergeCmd.Flags().StringVarP(&uiMergeOutput, "out", "o", "", "write the merged table to this file")

	uiCmd.AddCommand(uiGetCmd, uiMissingCmd, uiXliffCmd, uiMergeCmd)
	rootCmd.AddCommand(uiCmd)
}
