// Package reportstore persists run artifacts, three json files plus a
// directory of downloaded cover images per output directory.
package reportstore

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"headlinewatch/lib/scrapers/elpais"
	"headlinewatch/lib/translate"
)

const (
	ArticlesFile     = "articles_data.json"
	TranslationsFile = "translated_headers.json"
	AnalysisFile     = "word_analysis.json"
	ImagesDir        = "images"
)

type Store struct {
	dir string
}

func NewStore(dir string) (Store, error) {
	if dir == "" {
		return Store{}, fmt.Errorf("output directory was not specified")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return Store{}, fmt.Errorf("create output directory: %w", err)
	}
	return Store{dir: dir}, nil
}

func (s Store) Dir() string {
	return s.dir
}

// ImagesDir is where the scraper drops cover images for this run.
func (s Store) ImagesDir() string {
	return filepath.Join(s.dir, ImagesDir)
}

func (s Store) writeJson(name string, value any) error {
	contents, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return err
	}
	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, contents, 0644); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	slog.Info("wrote report file", "path", path)
	return nil
}

func (s Store) readJson(name string, out any) error {
	contents, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		return err
	}
	if err := json.Unmarshal(contents, out); err != nil {
		return fmt.Errorf("parse %s: %w", name, err)
	}
	return nil
}

func (s Store) SaveArticles(articles []elpais.Article) error {
	return s.writeJson(ArticlesFile, articles)
}

func (s Store) LoadArticles() ([]elpais.Article, error) {
	var articles []elpais.Article
	err := s.readJson(ArticlesFile, &articles)
	return articles, err
}

func (s Store) SaveTranslations(translations []translate.Translation) error {
	return s.writeJson(TranslationsFile, translations)
}

func (s Store) LoadTranslations() ([]translate.Translation, error) {
	var translations []translate.Translation
	err := s.readJson(TranslationsFile, &translations)
	return translations, err
}

func (s Store) SaveAnalysis(repeated map[string]int) error {
	return s.writeJson(AnalysisFile, repeated)
}

func (s Store) LoadAnalysis() (map[string]int, error) {
	var repeated map[string]int
	err := s.readJson(AnalysisFile, &repeated)
	return repeated, err
}

// CoverImages lists downloaded image files for this run.
func (s Store) CoverImages() ([]string, error) {
	entries, err := os.ReadDir(s.ImagesDir())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var images []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch filepath.Ext(entry.Name()) {
		case ".jpg", ".png", ".webp":
			images = append(images, filepath.Join(s.ImagesDir(), entry.Name()))
		}
	}
	return images, nil
}
