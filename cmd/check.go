package cmd

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var checkFormat string

// ErrUnknownFormat is returned for a --format other than text or json.
var ErrUnknownFormat = errors.New("unknown format")

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validates the locale content, UI strings and configuration",
	Long: `The check command loads every configured locale and reports content that
breaks the schema or disagrees between locales: missing sections, list sizes,
locale-independent values, changelog order, stats, footer version, UI string
coverage and page URLs. Warnings are reported but only errors fail the check.`,
	RunE: runCheck,
}

func runCheck(cmd *cobra.Command, _ []string) error {
	report, _, _, err := runValidation()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch checkFormat {
	case "text":
		if err := report.WriteText(out); err != nil {
			return err
		}
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return fmt.Errorf("encode report: %w", err)
		}
	default:
		return fmt.Errorf("%w %q, want text or json", ErrUnknownFormat, checkFormat)
	}

	for _, f := range report.Warnings() {
		logger.Debug("warning", zap.String("rule", f.Rule), zap.String("path", f.Path))
	}
	return report.Err()
}

func init() {
	checkCmd.Flags().StringVar(&checkFormat, "format", "text", "report format: text or json")
	rootCmd.AddCommand(checkCmd)
}
