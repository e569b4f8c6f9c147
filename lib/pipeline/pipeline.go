// Package pipeline chains the full run together, scraping the opinion
// section, translating the headers, analyzing word repetition and
// persisting every artifact. The same pipeline runs against a local
// chromium or a remote cloud session, only the page differs.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"headlinewatch/lib/browser"
	"headlinewatch/lib/browserstack"
	"headlinewatch/lib/reportstore"
	"headlinewatch/lib/scrapers/elpais"
	"headlinewatch/lib/translate"
	"headlinewatch/lib/wordfreq"

	"github.com/playwright-community/playwright-go"
	"go.opentelemetry.io/otel/codes"
)

type Options struct {
	Scraper elpais.Options
	// Translator may be nil, headers then pass through untranslated so
	// the rest of the run still produces artifacts.
	Translator *translate.Client
	// Analyzer defaults to wordfreq.New(wordfreq.DefaultOptions()).
	Analyzer *wordfreq.Analyzer
}

type Pipeline struct {
	scraper    elpais.Options
	translator *translate.Client
	analyzer   wordfreq.Analyzer
}

func New(opts Options) Pipeline {
	analyzer := wordfreq.New(wordfreq.DefaultOptions())
	if opts.Analyzer != nil {
		analyzer = *opts.Analyzer
	}
	return Pipeline{
		scraper:    opts.Scraper,
		translator: opts.Translator,
		analyzer:   analyzer,
	}
}

// Result is the outcome of one pipeline run on one browser.
type Result struct {
	// Label names the browser combo this ran on.
	Label      string
	Status     browserstack.SessionStatus
	Reason     string
	Articles   int
	Repeated   map[string]int
	OutputDir  string
	StartedAt  time.Time
	FinishedAt time.Time
}

func failedResult(started time.Time, err error) Result {
	return Result{
		Status:     browserstack.StatusFailed,
		Reason:     err.Error(),
		StartedAt:  started,
		FinishedAt: time.Now(),
	}
}

// Run scrapes through the given page and writes all artifacts to out.
func (p Pipeline) Run(ctx context.Context, page playwright.Page, out reportstore.Store) (Result, error) {
	ctx, span := tracer.Start(ctx, "Run")
	defer span.End()

	started := time.Now()

	scraperOpts := p.scraper
	scraperOpts.ImageDir = out.ImagesDir()
	articles, err := elpais.New(page, scraperOpts).Scrape(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "scrape failed")
		return failedResult(started, err), err
	}

	result, err := p.process(ctx, articles, out)
	result.StartedAt = started
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "processing failed")
		return result, err
	}
	return result, nil
}

// process handles everything after scraping, translation, analysis and
// persistence.
func (p Pipeline) process(ctx context.Context, articles []elpais.Article, out reportstore.Store) (Result, error) {
	started := time.Now()

	if err := out.SaveArticles(articles); err != nil {
		return failedResult(started, err), err
	}

	titles := make([]string, 0, len(articles))
	for _, article := range articles {
		titles = append(titles, article.Title)
	}

	var translations []translate.Translation
	if p.translator != nil {
		translations = p.translator.TranslateAll(ctx, titles)
	} else {
		slog.WarnContext(ctx, "no translator configured, keeping spanish headers")
		translations = translate.Identity(titles)
	}
	if err := out.SaveTranslations(translations); err != nil {
		return failedResult(started, err), err
	}

	repeated := p.analyzer.Repeated(translate.TranslatedTexts(translations))
	if err := out.SaveAnalysis(repeated); err != nil {
		return failedResult(started, err), err
	}

	slog.InfoContext(
		ctx, "pipeline finished",
		"articles", len(articles),
		"repeated_words", len(repeated),
		"output", out.Dir(),
	)
	return Result{
		Status:     browserstack.StatusPassed,
		Reason:     fmt.Sprintf("Scraped %d articles successfully", len(articles)),
		Articles:   len(articles),
		Repeated:   repeated,
		OutputDir:  out.Dir(),
		FinishedAt: time.Now(),
	}, nil
}

// RunLocal launches a local chromium, runs the pipeline on it and tears
// it down again.
func (p Pipeline) RunLocal(ctx context.Context, opts browser.Options, out reportstore.Store) (Result, error) {
	ctx, span := tracer.Start(ctx, "RunLocal")
	defer span.End()

	started := time.Now()
	session, err := browser.Launch(ctx, opts)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to launch browser")
		result := failedResult(started, err)
		result.Label = LocalLabel
		return result, err
	}
	defer func() {
		if err := session.Close(); err != nil {
			slog.WarnContext(ctx, "failed to close local browser", "err", err)
		}
	}()

	result, err := p.Run(ctx, session.Page(), out)
	result.Label = LocalLabel
	return result, err
}

const LocalLabel = "Local Chromium"

// Passed counts how many results in a batch succeeded.
func Passed(results []Result) int {
	passed := 0
	for _, result := range results {
		if result.Status == browserstack.StatusPassed {
			passed++
		}
	}
	return passed
}
