package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"headlinewatch/lib/browser"
	"headlinewatch/lib/browserstack"
	"headlinewatch/lib/reportstore"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// CloudRunner fans one pipeline out over a matrix of BrowserStack
// combos, each in its own session with its own output directory.
type CloudRunner struct {
	Pipeline    Pipeline
	Credentials browserstack.Credentials
	Matrix      []browserstack.Capabilities
	// Endpoint defaults to browserstack.DefaultEndpoint.
	Endpoint string
	// OutputRoot gets one subdirectory per combo.
	OutputRoot string
	// Locale for the remote browser context, defaulting to es-ES.
	Locale string
}

// Run executes every combo concurrently and waits for all of them. A
// failed combo never cancels the others, its error lands in the joined
// error and its Result reads failed.
func (r CloudRunner) Run(ctx context.Context) ([]Result, error) {
	ctx, span := tracer.Start(ctx, "CloudRunner.Run", trace.WithAttributes(
		attribute.Int("combos", len(r.Matrix)),
	))
	defer span.End()

	var results []Result
	var errList []error
	resultLock := sync.Mutex{}
	wg := sync.WaitGroup{}

	for _, caps := range r.Matrix {
		caps := caps
		wg.Add(1)
		go func() {
			defer wg.Done()

			result, err := r.runCombo(ctx, caps)

			resultLock.Lock()
			defer resultLock.Unlock()
			results = append(results, result)
			if err != nil {
				errList = append(errList, fmt.Errorf("%s: %w", caps.Label, err))
			}
		}()
	}
	wg.Wait()

	slices.SortFunc(results, func(a, b Result) int {
		return strings.Compare(a.Label, b.Label)
	})

	var err error
	if len(errList) > 0 {
		err = errors.Join(errList...)
		span.SetStatus(codes.Error, "some combos failed")
	}
	return results, err
}

func (r CloudRunner) runCombo(ctx context.Context, caps browserstack.Capabilities) (Result, error) {
	ctx, span := tracer.Start(ctx, "runCombo", trace.WithAttributes(
		attribute.String("combo", caps.Label),
	))
	defer span.End()

	started := time.Now()
	fail := func(err error) (Result, error) {
		span.RecordError(err)
		span.SetStatus(codes.Error, "combo failed before scraping")
		result := failedResult(started, err)
		result.Label = caps.Label
		return result, err
	}

	out, err := reportstore.NewStore(filepath.Join(r.OutputRoot, slugify(caps.Label)))
	if err != nil {
		return fail(err)
	}
	wsURL, err := browserstack.ConnectURL(r.Endpoint, r.Credentials, caps)
	if err != nil {
		return fail(err)
	}

	locale := r.Locale
	if locale == "" {
		locale = "es-ES"
	}
	session, err := browser.Connect(ctx, wsURL, browser.Options{
		Locale: locale,
		Engine: caps.Engine,
		Device: caps.Device,
	})
	if err != nil {
		return fail(fmt.Errorf("connect session: %w", err))
	}
	defer func() {
		if err := session.Close(); err != nil {
			slog.WarnContext(ctx, "failed to close remote session", "combo", caps.Label, "err", err)
		}
	}()

	slog.InfoContext(ctx, "remote session started", "combo", caps.Label, "output", out.Dir())

	result, runErr := r.Pipeline.Run(ctx, session.Page(), out)
	result.Label = caps.Label
	result.OutputDir = out.Dir()

	// report the verdict before the session closes, unmarked sessions
	// clutter the dashboard
	if err := browserstack.MarkSessionStatus(ctx, session.Page(), result.Status, result.Reason); err != nil {
		slog.WarnContext(ctx, "could not report session status", "combo", caps.Label, "err", err)
	}

	if runErr != nil {
		span.RecordError(runErr)
		span.SetStatus(codes.Error, "pipeline failed")
		return result, runErr
	}
	slog.InfoContext(
		ctx, "combo finished",
		"combo", caps.Label,
		"articles", result.Articles,
		"duration", result.FinishedAt.Sub(result.StartedAt),
	)
	return result, nil
}

// slugify turns a combo label into a directory name.
func slugify(label string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(label) {
		if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' {
			b.WriteRune(r)
			lastDash = false
			continue
		}
		if !lastDash {
			b.WriteRune('-')
			lastDash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
