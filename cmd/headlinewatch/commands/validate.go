package commands

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"headlinewatch/lib/reportstore"
	"headlinewatch/lib/serviceutil"
	"headlinewatch/lib/validate"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var validateDir *string

func init() {
	validateDir = validateCmd.Flags().String("dir", "", "Run directory to validate, defaults to <output>/local.")
	rootCmd.AddCommand(validateCmd)
}

var validateCmd = &cobra.Command{
	Use:   "validate [--dir <dir>]",
	Short: "Checks the artifacts of a finished run for completeness.",
	Run: func(cmd *cobra.Command, args []string) {
		config := loadConfig()

		dir := *validateDir
		if dir == "" {
			dir = filepath.Join(config.Output, "local")
		}
		store, err := reportstore.NewStore(dir)
		if err != nil {
			serviceutil.Fatal("failed to open run directory", err)
		}

		summary := validate.Output(cmd.Context(), store, validate.Options{
			ExpectedArticles: config.Scraper.Count,
		})

		t := newTable()
		t.AppendHeader(table.Row{"Check", "Status", "Detail"})
		for _, check := range summary.Checks {
			status := "ok"
			if !check.Passed {
				status = "FAIL"
			}
			t.AppendRow(table.Row{check.Name, status, check.Detail})
		}
		t.Render()

		if !summary.Ok() {
			serviceutil.Fatal(
				"validation failed",
				fmt.Errorf("%d of %d checks failed", summary.Failed, len(summary.Checks)),
			)
		}
		slog.Info("all checks passed", "count", summary.Passed)
	},
}
