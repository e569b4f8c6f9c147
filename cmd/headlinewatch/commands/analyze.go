package commands

import (
	"log/slog"
	"path/filepath"

	"headlinewatch/lib/reportstore"
	"headlinewatch/lib/serviceutil"
	"headlinewatch/lib/translate"
	"headlinewatch/lib/wordfreq"

	"github.com/spf13/cobra"
)

var (
	analyzeDir  *string
	analyzeSave *bool
)

func init() {
	analyzeDir = analyzeCmd.Flags().String("dir", "", "Run directory to analyze, defaults to <output>/local.")
	analyzeSave = analyzeCmd.Flags().Bool("save", false, "Write word_analysis.json back to the run directory.")
	rootCmd.AddCommand(analyzeCmd)
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze [--dir <dir>] [--save]",
	Short: "Recomputes the repeated word analysis from saved translated headers.",
	Run: func(cmd *cobra.Command, args []string) {
		config := loadConfig()

		dir := *analyzeDir
		if dir == "" {
			dir = filepath.Join(config.Output, "local")
		}
		store, err := reportstore.NewStore(dir)
		if err != nil {
			serviceutil.Fatal("failed to open run directory", err)
		}

		translations, err := store.LoadTranslations()
		if err != nil {
			serviceutil.Fatal("failed to read translated headers, run a scrape first", err)
		}

		analyzer := wordfreq.New(wordfreq.DefaultOptions())
		repeated := analyzer.Repeated(translate.TranslatedTexts(translations))
		printRepeated(repeated)

		if *analyzeSave {
			if err := store.SaveAnalysis(repeated); err != nil {
				serviceutil.Fatal("failed to save analysis", err)
			}
			slog.Info("saved analysis", "path", filepath.Join(store.Dir(), reportstore.AnalysisFile))
		}
	},
}
