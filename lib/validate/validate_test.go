package validate

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"headlinewatch/lib/reportstore"
	"headlinewatch/lib/scrapers/elpais"
	"headlinewatch/lib/telemetry"
	"headlinewatch/lib/translate"

	"github.com/stretchr/testify/require"
)

var completeArticles = []elpais.Article{
	{URL: "https://elpais.com/opinion/a1.html", Title: "El agua que no llega", Content: "La sequía aprieta."},
	{URL: "https://elpais.com/opinion/a2.html", Title: "Europa y sus fronteras", Content: "El debate migratorio."},
	{URL: "https://elpais.com/opinion/a3.html", Title: "La hora de los jueces", Content: "El poder judicial."},
	{URL: "https://elpais.com/opinion/a4.html", Title: "Cartas al director", Content: "Nuestros lectores escriben."},
	{URL: "https://elpais.com/opinion/a5.html", Title: "Presupuestos bajo presión", Content: "Las cuentas públicas."},
}

var completeTranslations = []translate.Translation{
	{Original: "El agua que no llega", Translated: "The water that does not arrive"},
	{Original: "Europa y sus fronteras", Translated: "Europe and its borders"},
	{Original: "La hora de los jueces", Translated: "The judges' hour"},
	{Original: "Cartas al director", Translated: "Letters to the editor"},
	{Original: "Presupuestos bajo presión", Translated: "Budgets under pressure"},
}

func setup(t *testing.T) reportstore.Store {
	t.Helper()
	cleanup := telemetry.SetupForTesting("test:validate")
	t.Cleanup(cleanup)

	store, err := reportstore.NewStore(t.TempDir())
	require.NoError(t, err)
	return store
}

func writeImage(t *testing.T, store reportstore.Store, name string, size int) {
	t.Helper()
	require.NoError(t, os.MkdirAll(store.ImagesDir(), 0755))
	contents := bytes.Repeat([]byte{0xff}, size)
	require.NoError(t, os.WriteFile(filepath.Join(store.ImagesDir(), name), contents, 0644))
}

func fillComplete(t *testing.T, store reportstore.Store) {
	t.Helper()
	require.NoError(t, store.SaveArticles(completeArticles))
	require.NoError(t, store.SaveTranslations(completeTranslations))
	require.NoError(t, store.SaveAnalysis(map[string]int{"water": 3}))
	writeImage(t, store, "article_1_cover.jpg", 4096)
	writeImage(t, store, "article_2_cover.png", 2048)
}

func findCheck(t *testing.T, summary Summary, name string) Check {
	t.Helper()
	for _, check := range summary.Checks {
		if check.Name == name {
			return check
		}
	}
	t.Fatalf("no check named %q in %+v", name, summary.Checks)
	return Check{}
}

func TestOutputCompleteRun(t *testing.T) {
	store := setup(t)
	fillComplete(t, store)

	summary := Output(context.Background(), store, Options{})
	require.True(t, summary.Ok(), "checks: %+v", summary.Checks)
	require.Equal(t, 0, summary.Failed)
	require.Equal(t, len(summary.Checks), summary.Passed)
}

func TestOutputMissingArtifacts(t *testing.T) {
	store := setup(t)

	summary := Output(context.Background(), store, Options{})
	require.False(t, summary.Ok())
	require.False(t, findCheck(t, summary, "articles file readable").Passed)
	require.False(t, findCheck(t, summary, "translations file readable").Passed)
	require.False(t, findCheck(t, summary, "analysis file readable").Passed)
	require.False(t, findCheck(t, summary, "cover images downloaded").Passed)
}

func TestOutputArticleCountMismatch(t *testing.T) {
	store := setup(t)
	fillComplete(t, store)
	require.NoError(t, store.SaveArticles(completeArticles[:3]))

	summary := Output(context.Background(), store, Options{})
	require.False(t, findCheck(t, summary, "5 articles scraped").Passed)
}

func TestOutputEmptyTitleFails(t *testing.T) {
	store := setup(t)
	fillComplete(t, store)
	broken := append([]elpais.Article{}, completeArticles...)
	broken[2].Title = ""
	require.NoError(t, store.SaveArticles(broken))

	summary := Output(context.Background(), store, Options{})
	require.False(t, findCheck(t, summary, "article 3 has title").Passed)
	require.True(t, findCheck(t, summary, "article 2 has title").Passed)
}

func TestOutputDetectsUntranslatedHeaders(t *testing.T) {
	store := setup(t)
	fillComplete(t, store)
	untranslated := []translate.Translation{
		{Original: "El agua que no llega", Translated: "El agua que no llega"},
		{Original: "Europa y sus fronteras", Translated: "Europe and its borders"},
	}
	require.NoError(t, store.SaveTranslations(untranslated))

	summary := Output(context.Background(), store, Options{})
	require.False(t, findCheck(t, summary, "translation 1 looks translated").Passed)
	require.True(t, findCheck(t, summary, "translation 2 looks translated").Passed)
}

func TestOutputEmptyTranslationFails(t *testing.T) {
	store := setup(t)
	fillComplete(t, store)
	require.NoError(t, store.SaveTranslations([]translate.Translation{
		{Original: "El agua que no llega", Translated: ""},
	}))

	summary := Output(context.Background(), store, Options{})
	require.False(t, findCheck(t, summary, "translation 1 looks translated").Passed)
}

func TestOutputSmallImageFails(t *testing.T) {
	store := setup(t)
	fillComplete(t, store)
	writeImage(t, store, "article_3_cover.webp", 10)

	summary := Output(context.Background(), store, Options{})
	require.False(t, findCheck(t, summary, "image article_3_cover.webp large enough").Passed)
	require.True(t, findCheck(t, summary, "image article_1_cover.jpg large enough").Passed)
}

func TestTruncate(t *testing.T) {
	require.Equal(t, "corto", truncate("corto", 60))
	long := "una frase bastante más larga de lo que cabe en la columna de detalle de la tabla"
	truncated := truncate(long, 20)
	require.Len(t, []rune(truncated), 23)
	require.Equal(t, "una frase bastante m...", truncated)
}
