package pipeline

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"headlinewatch/lib/browserstack"
	"headlinewatch/lib/reportstore"
	"headlinewatch/lib/scrapers/elpais"
	"headlinewatch/lib/telemetry"
	"headlinewatch/lib/translate"
	"headlinewatch/lib/wordfreq"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) reportstore.Store {
	t.Helper()
	cleanup := telemetry.SetupForTesting("test:pipeline")
	t.Cleanup(cleanup)

	store, err := reportstore.NewStore(t.TempDir())
	require.NoError(t, err)
	return store
}

var scrapedArticles = []elpais.Article{
	{URL: "https://elpais.com/opinion/a1.html", Title: "El agua que no llega", Content: "La sequía."},
	{URL: "https://elpais.com/opinion/a2.html", Title: "Agua para los campos", Content: "El regadío."},
	{URL: "https://elpais.com/opinion/a3.html", Title: "El precio del agua", Content: "Los embalses."},
	{URL: "https://elpais.com/opinion/a4.html", Title: "Cartas al director", Content: "Los lectores."},
	{URL: "https://elpais.com/opinion/a5.html", Title: "La hora de los jueces", Content: "Los tribunales."},
}

var fakeTranslations = map[string]string{
	"El agua que no llega":  "The water that does not arrive",
	"Agua para los campos":  "Water for the fields",
	"El precio del agua":    "The price of water",
	"Cartas al director":    "Letters to the editor",
	"La hora de los jueces": "The judges' hour",
}

func newTranslator(t *testing.T) *translate.Client {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Text string `json:"text"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))

		translated, ok := fakeTranslations[body.Text]
		if !ok {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"trans": translated})
	}))
	t.Cleanup(server.Close)

	client, err := translate.NewClient(translate.ClientOptions{
		BaseUrl: server.URL,
		Key:     "test-key",
	})
	require.NoError(t, err)
	return client
}

func TestProcessTranslatesAndAnalyzes(t *testing.T) {
	store := setup(t)
	p := New(Options{Translator: newTranslator(t)})

	result, err := p.process(context.Background(), scrapedArticles, store)
	require.NoError(t, err)

	require.Equal(t, browserstack.StatusPassed, result.Status)
	require.Equal(t, "Scraped 5 articles successfully", result.Reason)
	require.Equal(t, 5, result.Articles)
	require.Equal(t, store.Dir(), result.OutputDir)
	require.False(t, result.FinishedAt.IsZero())

	diff := cmp.Diff(map[string]int{"water": 3}, result.Repeated)
	require.Empty(t, diff)

	articles, err := store.LoadArticles()
	require.NoError(t, err)
	require.Empty(t, cmp.Diff(scrapedArticles, articles))

	translations, err := store.LoadTranslations()
	require.NoError(t, err)
	require.Len(t, translations, 5)
	require.Equal(t, "The water that does not arrive", translations[0].Translated)

	analysis, err := store.LoadAnalysis()
	require.NoError(t, err)
	require.Empty(t, cmp.Diff(result.Repeated, analysis))
}

func TestProcessWithoutTranslator(t *testing.T) {
	store := setup(t)
	p := New(Options{})

	result, err := p.process(context.Background(), scrapedArticles, store)
	require.NoError(t, err)
	require.Equal(t, browserstack.StatusPassed, result.Status)

	translations, err := store.LoadTranslations()
	require.NoError(t, err)
	require.Len(t, translations, 5)
	for _, tr := range translations {
		require.Equal(t, tr.Original, tr.Translated)
	}
}

func TestProcessUsesCustomAnalyzer(t *testing.T) {
	store := setup(t)
	analyzer := wordfreq.New(wordfreq.Options{
		StopWords: map[string]struct{}{},
		Threshold: 1,
		MinLength: 2,
	})
	p := New(Options{Analyzer: &analyzer})

	articles := []elpais.Article{
		{URL: "https://elpais.com/opinion/a1.html", Title: "agua agua", Content: "x"},
	}
	result, err := p.process(context.Background(), articles, store)
	require.NoError(t, err)
	require.Empty(t, cmp.Diff(map[string]int{"agua": 2}, result.Repeated))
}

func TestPassed(t *testing.T) {
	results := []Result{
		{Label: "a", Status: browserstack.StatusPassed},
		{Label: "b", Status: browserstack.StatusFailed},
		{Label: "c", Status: browserstack.StatusPassed},
	}
	require.Equal(t, 2, Passed(results))
	require.Equal(t, 0, Passed(nil))
}

func TestFailedResult(t *testing.T) {
	started := time.Now().Add(-time.Minute)
	result := failedResult(started, context.DeadlineExceeded)
	require.Equal(t, browserstack.StatusFailed, result.Status)
	require.Equal(t, context.DeadlineExceeded.Error(), result.Reason)
	require.Equal(t, started, result.StartedAt)
	require.False(t, result.FinishedAt.IsZero())
}
