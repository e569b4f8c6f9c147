// Package validate self-checks the artifacts of a finished run, the
// same checks a reviewer would do by hand before trusting the output.
package validate

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"headlinewatch/lib/reportstore"
	"headlinewatch/lib/telemetry"

	"github.com/antzucaro/matchr"
)

var tracer = telemetry.Tracer("headlinewatch.lib.validate")

type Check struct {
	Name   string
	Passed bool
	Detail string
}

type Summary struct {
	Checks []Check
	Passed int
	Failed int
}

func (s *Summary) add(name string, passed bool, detail string) {
	s.Checks = append(s.Checks, Check{Name: name, Passed: passed, Detail: detail})
	if passed {
		s.Passed++
	} else {
		s.Failed++
	}
}

func (s *Summary) Ok() bool {
	return s.Failed == 0
}

type Options struct {
	// ExpectedArticles defaults to 5.
	ExpectedArticles int
	// MinImageBytes flags suspiciously small downloads, defaulting to
	// 1000 bytes.
	MinImageBytes int64
	// SimilarityCeiling flags translations that came back nearly
	// identical to their original, which usually means the api key is
	// dead and the fallback kicked in. Defaults to 0.98.
	SimilarityCeiling float64
}

func (o Options) withDefaults() Options {
	if o.ExpectedArticles <= 0 {
		o.ExpectedArticles = 5
	}
	if o.MinImageBytes <= 0 {
		o.MinImageBytes = 1000
	}
	if o.SimilarityCeiling <= 0 {
		o.SimilarityCeiling = 0.98
	}
	return o
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}

// Output runs every check against the artifacts in store.
func Output(ctx context.Context, store reportstore.Store, opts Options) Summary {
	_, span := tracer.Start(ctx, "Output")
	defer span.End()

	opts = opts.withDefaults()
	var summary Summary

	summary.checkArticles(store, opts)
	summary.checkTranslations(store, opts)
	summary.checkAnalysis(store)
	summary.checkImages(store, opts)

	return summary
}

func (s *Summary) checkArticles(store reportstore.Store, opts Options) {
	articles, err := store.LoadArticles()
	if err != nil {
		s.add("articles file readable", false, err.Error())
		return
	}
	s.add("articles file readable", true, fmt.Sprintf("%d items", len(articles)))
	s.add(
		fmt.Sprintf("%d articles scraped", opts.ExpectedArticles),
		len(articles) == opts.ExpectedArticles,
		fmt.Sprintf("found %d", len(articles)),
	)

	for i, article := range articles {
		s.add(
			fmt.Sprintf("article %d has title", i+1),
			article.Title != "",
			truncate(article.Title, 60),
		)
		s.add(
			fmt.Sprintf("article %d has content", i+1),
			article.Content != "",
			"",
		)
	}
}

func (s *Summary) checkTranslations(store reportstore.Store, opts Options) {
	translations, err := store.LoadTranslations()
	if err != nil {
		s.add("translations file readable", false, err.Error())
		return
	}
	s.add("translations file readable", true, fmt.Sprintf("%d items", len(translations)))
	s.add(
		fmt.Sprintf("%d translations completed", opts.ExpectedArticles),
		len(translations) == opts.ExpectedArticles,
		fmt.Sprintf("found %d", len(translations)),
	)

	for i, tr := range translations {
		name := fmt.Sprintf("translation %d looks translated", i+1)
		if tr.Original == "" || tr.Translated == "" {
			s.add(name, false, "empty original or translation")
			continue
		}
		similarity := matchr.JaroWinkler(tr.Original, tr.Translated, false)
		s.add(
			name,
			similarity < opts.SimilarityCeiling,
			fmt.Sprintf("similarity %.2f: %s", similarity, truncate(tr.Translated, 60)),
		)
	}
}

func (s *Summary) checkAnalysis(store reportstore.Store) {
	repeated, err := store.LoadAnalysis()
	if err != nil {
		s.add("analysis file readable", false, err.Error())
		return
	}
	// an empty result is legitimate, headlines just had no repeats
	s.add("analysis file readable", true, fmt.Sprintf("%d repeated words", len(repeated)))
}

func (s *Summary) checkImages(store reportstore.Store, opts Options) {
	images, err := store.CoverImages()
	if err != nil {
		s.add("images directory readable", false, err.Error())
		return
	}
	s.add("cover images downloaded", len(images) > 0, fmt.Sprintf("found %d", len(images)))

	for _, image := range images {
		name := fmt.Sprintf("image %s large enough", filepath.Base(image))
		info, err := os.Stat(image)
		if err != nil {
			s.add(name, false, err.Error())
			continue
		}
		s.add(
			name,
			info.Size() > opts.MinImageBytes,
			fmt.Sprintf("%d bytes", info.Size()),
		)
	}
}
