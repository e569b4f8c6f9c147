package commands

import (
	"log/slog"
	"os"
	"time"

	"headlinewatch/lib/pipeline"
	"headlinewatch/lib/reportstore"
	"headlinewatch/lib/wordfreq"

	"github.com/jedib0t/go-pretty/v6/table"
)

func newTable() table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(os.Stdout)
	return t
}

// printHeaders shows the scraped headers next to their translations.
func printHeaders(store reportstore.Store) {
	translations, err := store.LoadTranslations()
	if err != nil {
		slog.Warn("could not read translated headers", "err", err)
		return
	}

	t := newTable()
	t.AppendHeader(table.Row{"#", "Header", "Translated"})
	for i, tr := range translations {
		t.AppendRow(table.Row{i + 1, tr.Original, tr.Translated})
	}
	t.Render()
}

func printRepeated(repeated map[string]int) {
	if len(repeated) == 0 {
		slog.Info("no words repeated more than twice across headers")
		return
	}

	t := newTable()
	t.AppendHeader(table.Row{"Word", "Count"})
	for _, wc := range wordfreq.Ranked(repeated) {
		t.AppendRow(table.Row{wc.Word, wc.Count})
	}
	t.Render()
}

// printResults summarizes a matrix run, one row per browser combo.
func printResults(results []pipeline.Result) {
	t := newTable()
	t.AppendHeader(table.Row{"Combo", "Status", "Articles", "Took", "Reason"})
	for _, result := range results {
		took := ""
		if !result.StartedAt.IsZero() && !result.FinishedAt.IsZero() {
			took = result.FinishedAt.Sub(result.StartedAt).Round(time.Second).String()
		}
		t.AppendRow(table.Row{
			result.Label,
			string(result.Status),
			result.Articles,
			took,
			result.Reason,
		})
	}
	t.Render()
}
