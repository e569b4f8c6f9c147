package translate

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	devenv "headlinewatch/dev/env"
	"headlinewatch/lib/telemetry"

	"github.com/stretchr/testify/require"
)

func newFakeApi(t *testing.T, translations map[string]string) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/v1/translator/text", r.URL.Path)
		require.NotEmpty(t, r.Header.Get("x-rapidapi-key"))
		require.NotEmpty(t, r.Header.Get("x-rapidapi-host"))

		var req struct {
			From string `json:"from"`
			To   string `json:"to"`
			Text string `json:"text"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "es", req.From)
		require.Equal(t, "en", req.To)

		translated, ok := translations[req.Text]
		if !ok {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"trans": translated})
	}))
}

func TestTranslate(t *testing.T) {
	defer telemetry.SetupForTesting("test:translate")()

	server := newFakeApi(t, map[string]string{
		"La crisis del agua": "The water crisis",
	})
	defer server.Close()

	client, err := NewClient(ClientOptions{BaseUrl: server.URL, Key: "test-key"})
	require.NoError(t, err)

	out, err := client.Translate(context.Background(), "La crisis del agua")
	require.NoError(t, err)
	require.Equal(t, "The water crisis", out)
}

func TestTranslateEmptyText(t *testing.T) {
	client, err := NewClient(ClientOptions{BaseUrl: "http://127.0.0.1:1", Key: "test-key"})
	require.NoError(t, err)

	// must not hit the network at all
	out, err := client.Translate(context.Background(), "   ")
	require.NoError(t, err)
	require.Equal(t, "   ", out)
}

func TestTranslateAllFallsBackOnError(t *testing.T) {
	defer telemetry.SetupForTesting("test:translate")()

	server := newFakeApi(t, map[string]string{
		"Primera": "First",
		"Tercera": "Third",
	})
	defer server.Close()

	client, err := NewClient(ClientOptions{BaseUrl: server.URL, Key: "test-key"})
	require.NoError(t, err)

	out := client.TranslateAll(context.Background(), []string{"Primera", "Segunda", "Tercera"})
	require.Equal(t, []Translation{
		{Original: "Primera", Translated: "First"},
		{Original: "Segunda", Translated: "Segunda"},
		{Original: "Tercera", Translated: "Third"},
	}, out)
}

func TestNewClientRequiresKey(t *testing.T) {
	_, err := NewClient(ClientOptions{})
	require.ErrorIs(t, err, ErrMissingKey)
}

func TestIdentity(t *testing.T) {
	out := Identity([]string{"uno", "dos"})
	require.Equal(t, []Translation{
		{Original: "uno", Translated: "uno"},
		{Original: "dos", Translated: "dos"},
	}, out)
	require.Empty(t, Identity(nil))
}

func TestTranslatedTexts(t *testing.T) {
	out := TranslatedTexts([]Translation{
		{Original: "uno", Translated: "one"},
		{Original: "dos", Translated: "two"},
	})
	require.Equal(t, []string{"one", "two"}, out)
}

func TestLiveTranslate(t *testing.T) {
	defer telemetry.SetupForTesting("test:translate")()

	config, err := devenv.GetStateConfig[devenv.TranslatorTestConfig]("translator.json5")
	if err != nil {
		t.Skip("skipping test because no valid test config was found at dev/.state/translator.json5")
	}

	client, err := NewClient(ClientOptions{Key: config.ApiKey})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*30)
	defer cancel()

	out, err := client.Translate(ctx, "El agua que no llega")
	require.NoError(t, err)
	require.NotEmpty(t, out)
	t.Log("live translation:", out)
}
