package pipeline

import (
	"context"
	"testing"

	"headlinewatch/lib/browserstack"
	"headlinewatch/lib/telemetry"

	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Chrome on Windows 11":                 "chrome-on-windows-11",
		"Samsung Galaxy S23 (emulated Chrome)": "samsung-galaxy-s23-emulated-chrome",
		"iPhone 15 (emulated WebKit)":          "iphone-15-emulated-webkit",
		"(weird)":                              "weird",
		"":                                     "",
	}
	for label, want := range cases {
		require.Equal(t, want, slugify(label), "label: %q", label)
	}
}

func TestCloudRunnerFailsWithoutCredentials(t *testing.T) {
	cleanup := telemetry.SetupForTesting("test:pipeline")
	t.Cleanup(cleanup)

	runner := CloudRunner{
		Pipeline:   New(Options{}),
		Matrix:     browserstack.DefaultMatrix("local-test-build"),
		OutputRoot: t.TempDir(),
	}
	results, err := runner.Run(context.Background())
	require.Error(t, err)
	require.ErrorIs(t, err, browserstack.ErrMissingCredentials)

	require.Len(t, results, len(runner.Matrix))
	for _, result := range results {
		require.Equal(t, browserstack.StatusFailed, result.Status)
		require.NotEmpty(t, result.Label)
		require.NotEmpty(t, result.Reason)
	}
	require.Equal(t, 0, Passed(results))

	// results come back in a stable order no matter which goroutine
	// finished first
	require.Equal(t, "Chrome on Windows 11", results[0].Label)
	require.Equal(t, "iPhone 15 (emulated WebKit)", results[len(results)-1].Label)
}
