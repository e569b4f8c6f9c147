package wordfreq

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestRepeatedAcrossHeaders(t *testing.T) {
	analyzer := New(DefaultOptions())

	headers := []string{
		"the cat sat",
		"the cat ran",
		"the cat slept",
		"the dog slept",
	}
	got := analyzer.Repeated(headers)

	// "cat" appears 3 times, "slept" only twice, "the" is a stop word
	want := map[string]int{"cat": 3}
	require.Empty(t, cmp.Diff(want, got))
}

func TestThresholdIsExclusive(t *testing.T) {
	analyzer := New(DefaultOptions())

	got := analyzer.Repeated([]string{
		"government announces budget",
		"government defends budget",
		"government resigns",
	})
	require.Empty(t, cmp.Diff(map[string]int{"government": 3}, got))
}

func TestStopWordsNeverReported(t *testing.T) {
	analyzer := New(DefaultOptions())

	got := analyzer.Repeated([]string{"a a a"})
	require.Empty(t, got)
	require.NotNil(t, got)

	got = analyzer.Repeated([]string{"the the the the", "they they they"})
	require.Empty(t, got)
}

func TestEmptyInput(t *testing.T) {
	analyzer := New(DefaultOptions())

	got := analyzer.Repeated(nil)
	require.NotNil(t, got)
	require.Empty(t, got)

	got = analyzer.Repeated([]string{})
	require.NotNil(t, got)
	require.Empty(t, got)

	got = analyzer.Repeated([]string{"", "   ", "\t\n"})
	require.Empty(t, got)
}

func TestCaseInsensitive(t *testing.T) {
	analyzer := New(DefaultOptions())

	got := analyzer.Repeated([]string{"Europe looks ahead", "EUROPE votes", "europe divided"})
	require.Empty(t, cmp.Diff(map[string]int{"europe": 3}, got))
}

func TestPunctuationStripped(t *testing.T) {
	analyzer := New(DefaultOptions())

	got := analyzer.Repeated([]string{"Budget, budget; budget!"})
	require.Empty(t, cmp.Diff(map[string]int{"budget": 3}, got))
}

func TestShortTokensFiltered(t *testing.T) {
	// empty stop set isolates the length filter
	analyzer := New(Options{StopWords: map[string]struct{}{}, Threshold: 2, MinLength: 2})

	got := analyzer.Repeated([]string{"x x x x"})
	require.Empty(t, got)
}

func TestCustomStopWords(t *testing.T) {
	stop := DefaultStopWords()
	stop["europe"] = struct{}{}
	analyzer := New(Options{StopWords: stop, Threshold: 2, MinLength: 2})

	got := analyzer.Repeated([]string{"europe crisis", "europe crisis", "europe crisis"})
	require.Empty(t, cmp.Diff(map[string]int{"crisis": 3}, got))
}

func TestStopWordsCopiedAtConstruction(t *testing.T) {
	stop := map[string]struct{}{}
	analyzer := New(Options{StopWords: stop, Threshold: 2, MinLength: 2})

	// mutating the caller's map after New must not change results
	stop["crisis"] = struct{}{}
	got := analyzer.Repeated([]string{"crisis crisis crisis"})
	require.Empty(t, cmp.Diff(map[string]int{"crisis": 3}, got))
}

func TestRepeatedIsDeterministic(t *testing.T) {
	analyzer := New(DefaultOptions())

	headers := []string{
		"inflation hits europe again",
		"europe fears inflation",
		"inflation, inflation everywhere",
		"europe endures",
	}
	first := analyzer.Repeated(headers)
	second := analyzer.Repeated(headers)
	require.Empty(t, cmp.Diff(first, second))
}

func TestRanked(t *testing.T) {
	got := Ranked(map[string]int{"cat": 3, "ant": 5, "bee": 3})
	want := []WordCount{
		{Word: "ant", Count: 5},
		{Word: "bee", Count: 3},
		{Word: "cat", Count: 3},
	}
	require.Equal(t, want, got)
	require.Empty(t, Ranked(map[string]int{}))
}
