package reportstore

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"headlinewatch/lib/scrapers/elpais"
	"headlinewatch/lib/translate"

	"github.com/stretchr/testify/require"
)

func TestSaveAndLoadRoundTrip(t *testing.T) {
	store, err := NewStore(filepath.Join(t.TempDir(), "output"))
	require.NoError(t, err)

	articles := []elpais.Article{
		{
			URL:       "https://elpais.com/opinion/2026-08-24/el-agua-que-no-llega.html",
			Title:     "El agua que no llega",
			Content:   "España encara otro verano seco.",
			ImagePath: "images/article_1_cover.jpg",
		},
		{
			URL:     "https://elpais.com/opinion/2026-08-24/europa-mira-al-sur.html",
			Title:   "Europa mira al sur",
			Content: "La frontera vuelve al debate.",
		},
	}
	require.NoError(t, store.SaveArticles(articles))

	translations := []translate.Translation{
		{Original: "El agua que no llega", Translated: "The water that never arrives"},
		{Original: "Europa mira al sur", Translated: "Europe looks south"},
	}
	require.NoError(t, store.SaveTranslations(translations))
	require.NoError(t, store.SaveAnalysis(map[string]int{"water": 3}))

	gotArticles, err := store.LoadArticles()
	require.NoError(t, err)
	require.Equal(t, articles, gotArticles)

	gotTranslations, err := store.LoadTranslations()
	require.NoError(t, err)
	require.Equal(t, translations, gotTranslations)

	gotAnalysis, err := store.LoadAnalysis()
	require.NoError(t, err)
	require.Equal(t, map[string]int{"water": 3}, gotAnalysis)
}

func TestArtifactFieldNames(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.SaveTranslations([]translate.Translation{
		{Original: "Hola", Translated: "Hello"},
	}))

	contents, err := os.ReadFile(filepath.Join(store.Dir(), TranslationsFile))
	require.NoError(t, err)

	var raw []map[string]string
	require.NoError(t, json.Unmarshal(contents, &raw))
	require.Len(t, raw, 1)
	require.Equal(t, "Hola", raw[0]["original"])
	require.Equal(t, "Hello", raw[0]["translated"])
}

func TestLoadMissingFile(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.LoadArticles()
	require.True(t, os.IsNotExist(err))
}

func TestNewStoreRequiresDir(t *testing.T) {
	_, err := NewStore("")
	require.Error(t, err)
}

func TestCoverImages(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	images, err := store.CoverImages()
	require.NoError(t, err)
	require.Empty(t, images)

	require.NoError(t, os.MkdirAll(store.ImagesDir(), 0755))
	require.NoError(t, os.WriteFile(
		filepath.Join(store.ImagesDir(), "article_1_cover.jpg"), []byte("fake"), 0644,
	))
	require.NoError(t, os.WriteFile(
		filepath.Join(store.ImagesDir(), "notes.txt"), []byte("skip me"), 0644,
	))

	images, err = store.CoverImages()
	require.NoError(t, err)
	require.Len(t, images, 1)
	require.Equal(t, filepath.Join(store.ImagesDir(), "article_1_cover.jpg"), images[0])
}
