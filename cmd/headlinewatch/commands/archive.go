package commands

import (
	"context"
	"log/slog"

	"headlinewatch/lib/pipeline"
	"headlinewatch/lib/report"
	"headlinewatch/lib/runstore"
)

// archiveResults records run outcomes in the archive database. Archiving
// is best effort, a broken archive never fails the run that produced
// the artifacts.
func archiveResults(ctx context.Context, config Config, build, mode string, results []pipeline.Result) {
	if config.Archive.File == "" && config.Archive.Url == "" {
		slog.Debug("no archive database configured, skipping")
		return
	}

	database, err := config.Archive.OpenDB()
	if err != nil {
		slog.Warn("could not open archive database", "err", err)
		return
	}
	defer database.Close()

	store, err := runstore.NewStore(database)
	if err != nil {
		slog.Warn("could not prepare archive database", "err", err)
		return
	}

	for _, result := range results {
		_, err := store.Record(ctx, runstore.Run{
			Build:      build,
			Mode:       mode,
			Browser:    result.Label,
			Status:     string(result.Status),
			Reason:     result.Reason,
			Articles:   result.Articles,
			Repeated:   result.Repeated,
			StartedAt:  result.StartedAt,
			FinishedAt: result.FinishedAt,
		})
		if err != nil {
			slog.Warn("could not archive run", "combo", result.Label, "err", err)
		}
	}
}

// mailReport emails the run summary when a mailer is configured.
func mailReport(ctx context.Context, config Config, build string, results []pipeline.Result) {
	mailer := report.NewMailer(config.Report)
	if !mailer.Enabled() {
		slog.Debug("report mailer not configured, skipping")
		return
	}
	if err := mailer.SendRunReport(ctx, build, results); err != nil {
		slog.Warn("could not send run report", "err", err)
	}
}
