package commands

import (
	"fmt"
	"time"

	"headlinewatch/lib/runstore"
	"headlinewatch/lib/serviceutil"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var historyLimit *int

func init() {
	historyLimit = historyCmd.Flags().Int("limit", 20, "How many runs to show.")
	rootCmd.AddCommand(historyCmd)
}

var historyCmd = &cobra.Command{
	Use:   "history [--limit <n>]",
	Short: "Shows past runs recorded in the archive database.",
	Run: func(cmd *cobra.Command, args []string) {
		config := loadConfig()
		if config.Archive.File == "" && config.Archive.Url == "" {
			serviceutil.Fatal(
				"no archive database configured",
				fmt.Errorf("set archive.file or archive.url in config.json5"),
			)
		}

		database, err := config.Archive.OpenDB()
		if err != nil {
			serviceutil.Fatal("failed to open archive database", err)
		}
		defer database.Close()

		store, err := runstore.NewStore(database)
		if err != nil {
			serviceutil.Fatal("failed to prepare archive database", err)
		}
		runs, err := store.History(cmd.Context(), *historyLimit)
		if err != nil {
			serviceutil.Fatal("failed to read run history", err)
		}

		t := newTable()
		t.AppendHeader(table.Row{"ID", "Build", "Mode", "Browser", "Status", "Articles", "Repeated", "Started", "Took"})
		for _, run := range runs {
			took := ""
			if !run.FinishedAt.IsZero() && !run.StartedAt.IsZero() {
				took = run.FinishedAt.Sub(run.StartedAt).Round(time.Second).String()
			}
			t.AppendRow(table.Row{
				run.ID,
				run.Build,
				run.Mode,
				run.Browser,
				run.Status,
				run.Articles,
				run.RepeatedWords,
				run.StartedAt.Format(time.DateTime),
				took,
			})
		}
		t.Render()
	},
}
