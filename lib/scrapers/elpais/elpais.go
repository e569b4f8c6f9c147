// Package elpais scrapes the El País Opinión section, collecting the
// first few articles with their title, body and cover image.
//
// Navigation runs through a playwright page so the same scraper works
// against a local chromium or a remote cloud session. Extraction is
// done on html snapshots with goquery, which keeps it testable against
// fixture pages.
package elpais

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/playwright-community/playwright-go"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const DefaultSectionURL = "https://elpais.com/opinion/"

var ErrNoArticles = errors.New("no opinion articles found")

type Article struct {
	URL       string `json:"url"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	ImagePath string `json:"image_path"`
}

type Options struct {
	// SectionURL defaults to DefaultSectionURL.
	SectionURL string
	// Count is how many articles to scrape, defaulting to 5.
	Count int
	// ImageDir is where cover images are written. Empty disables
	// downloads.
	ImageDir string
	// NavTimeout bounds each page navigation, defaulting to 30s.
	NavTimeout time.Duration
}

type Scraper struct {
	page   playwright.Page
	images *ImageFetcher
	opts   Options
}

func New(page playwright.Page, opts Options) *Scraper {
	if opts.SectionURL == "" {
		opts.SectionURL = DefaultSectionURL
	}
	if opts.Count <= 0 {
		opts.Count = 5
	}
	if opts.NavTimeout <= 0 {
		opts.NavTimeout = time.Second * 30
	}

	var images *ImageFetcher
	if opts.ImageDir != "" {
		images = NewImageFetcher(opts.ImageDir)
	}
	return &Scraper{page: page, images: images, opts: opts}
}

func (s *Scraper) openPage(ctx context.Context, pageURL string) (*goquery.Document, error) {
	_, err := s.page.Goto(pageURL, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateLoad,
		Timeout:   playwright.Float(float64(s.opts.NavTimeout.Milliseconds())),
	})
	if err != nil {
		return nil, fmt.Errorf("goto %s: %w", pageURL, err)
	}
	return s.document()
}

// document snapshots the live dom for goquery extraction.
func (s *Scraper) document() (*goquery.Document, error) {
	content, err := s.page.Content()
	if err != nil {
		return nil, fmt.Errorf("read page content: %w", err)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("parse page content: %w", err)
	}
	return doc, nil
}

// El País shows a Didomi consent banner on first visit. It gets
// clicked away if it turns up within a few seconds, scraping continues
// either way.
func (s *Scraper) acceptCookies(ctx context.Context) {
	err := s.page.Locator("#didomi-notice-agree-button").Click(playwright.LocatorClickOptions{
		Timeout: playwright.Float(5000),
	})
	if err != nil {
		slog.DebugContext(ctx, "no cookie banner to dismiss", "err", err)
		return
	}
	slog.InfoContext(ctx, "accepted cookie banner")
	time.Sleep(time.Second)
}

func (s *Scraper) checkLanguage(ctx context.Context, doc *goquery.Document) {
	lang := pageLanguage(doc)
	if strings.HasPrefix(lang, "es") {
		slog.InfoContext(ctx, "section page is in spanish", "lang", lang)
		return
	}
	slog.WarnContext(ctx, "unexpected page language, continuing anyway", "lang", lang)
}

func (s *Scraper) collectLinks(ctx context.Context) ([]string, error) {
	ctx, span := tracer.Start(ctx, "collectLinks")
	defer span.End()

	if _, err := s.openPage(ctx, s.opts.SectionURL); err != nil {
		return nil, err
	}
	s.acceptCookies(ctx)

	// snapshot again, dismissing the banner reflows the section list
	doc, err := s.document()
	if err != nil {
		return nil, err
	}
	s.checkLanguage(ctx, doc)

	base, err := url.Parse(s.opts.SectionURL)
	if err != nil {
		return nil, fmt.Errorf("parse section url: %w", err)
	}

	links := extractArticleLinks(doc, base, s.opts.Count)
	if len(links) == 0 {
		return nil, ErrNoArticles
	}
	slog.InfoContext(ctx, "found article links", "count", len(links))
	return links, nil
}

func (s *Scraper) scrapeArticle(ctx context.Context, articleURL string, idx int) (Article, error) {
	ctx, span := tracer.Start(ctx, "scrapeArticle", trace.WithAttributes(
		attribute.String("url", articleURL),
	))
	defer span.End()

	doc, err := s.openPage(ctx, articleURL)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "navigation failed")
		return Article{}, err
	}

	article := Article{
		URL:     articleURL,
		Title:   extractTitle(doc),
		Content: extractBody(doc),
	}
	if article.Title == "" {
		slog.WarnContext(ctx, "could not extract title", "url", articleURL)
	}
	if article.Content == "" {
		slog.WarnContext(ctx, "could not extract content", "url", articleURL)
	}

	base, err := url.Parse(articleURL)
	if err != nil {
		base = nil
	}
	coverURL := findCoverImage(doc, base)
	if coverURL == "" || s.images == nil {
		// plenty of opinion pieces are text-only
		return article, nil
	}

	path, err := s.images.Download(ctx, coverURL, idx)
	if err != nil {
		slog.WarnContext(ctx, "could not download cover image", "url", coverURL, "err", err)
		return article, nil
	}
	article.ImagePath = path
	return article, nil
}

// Scrape collects up to Count articles from the section front page. A
// single broken article page is skipped, only a run yielding nothing
// at all is an error.
func (s *Scraper) Scrape(ctx context.Context) ([]Article, error) {
	ctx, span := tracer.Start(ctx, "Scrape")
	defer span.End()

	links, err := s.collectLinks(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to collect article links")
		return nil, err
	}

	articles := make([]Article, 0, len(links))
	for idx, link := range links {
		slog.InfoContext(
			ctx, "scraping article",
			"index", idx+1,
			"total", len(links),
			"url", link,
		)
		article, err := s.scrapeArticle(ctx, link, idx)
		if err != nil {
			slog.WarnContext(ctx, "skipping article", "url", link, "err", err)
			span.RecordError(err)
			continue
		}
		articles = append(articles, article)
	}

	if len(articles) == 0 {
		span.SetStatus(codes.Error, "every article page failed")
		return nil, ErrNoArticles
	}
	return articles, nil
}
