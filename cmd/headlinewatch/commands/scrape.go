package commands

import (
	"log/slog"
	"path/filepath"
	"time"

	"headlinewatch/lib/browser"
	"headlinewatch/lib/pipeline"
	"headlinewatch/lib/reportstore"
	"headlinewatch/lib/runstore"
	"headlinewatch/lib/serviceutil"

	"github.com/spf13/cobra"
)

var (
	scrapeOut      *string
	scrapeCount    *int
	scrapeHeadless *bool
)

func init() {
	scrapeOut = scrapeCmd.Flags().String("out", "", "Output directory, defaults to <output>/local.")
	scrapeCount = scrapeCmd.Flags().Int("count", 0, "How many articles to scrape, overriding the config.")
	scrapeHeadless = scrapeCmd.Flags().Bool("headless", false, "Run the browser headless, overriding the config.")
	rootCmd.AddCommand(scrapeCmd)
}

var scrapeCmd = &cobra.Command{
	Use:   "scrape [--out <dir>] [--count <n>] [--headless]",
	Short: "Scrapes opinion articles with a local chromium, translates and analyzes them.",
	Run: func(cmd *cobra.Command, args []string) {
		config := loadConfig()
		if *scrapeCount > 0 {
			config.Scraper.Count = *scrapeCount
		}
		if cmd.Flags().Changed("headless") {
			config.Scraper.Headless = *scrapeHeadless
		}

		dir := *scrapeOut
		if dir == "" {
			dir = filepath.Join(config.Output, "local")
		}
		store, err := reportstore.NewStore(dir)
		if err != nil {
			serviceutil.Fatal("failed to create output directory", err)
		}

		t1 := time.Now()
		result, err := config.pipeline().RunLocal(cmd.Context(), browser.Options{
			Headless: config.Scraper.Headless,
			Locale:   config.Scraper.Locale,
		}, store)
		if err != nil {
			serviceutil.Fatal("scrape failed", err)
		}
		slog.Info("scraping time", "seconds", time.Since(t1).Seconds())

		printHeaders(store)
		printRepeated(result.Repeated)

		results := []pipeline.Result{result}
		archiveResults(cmd.Context(), config, "local", runstore.ModeLocal, results)
		mailReport(cmd.Context(), config, "local", results)
	},
}
