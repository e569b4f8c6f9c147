// Package wordfreq finds words repeated across a batch of headlines.
// The analysis is pure, an Analyzer only depends on the options it was
// built with and never on hidden global state.
package wordfreq

import (
	"sort"
	"strings"
	"unicode"
)

// Options bind an Analyzer. The stop word set is copied by New, so the
// caller's map can be reused or modified freely afterwards.
type Options struct {
	// StopWords are dropped from the count entirely.
	StopWords map[string]struct{}
	// Threshold is exclusive, a word must appear strictly more than
	// this many times to be reported.
	Threshold int
	// MinLength is the minimum token length in runes.
	MinLength int
}

func DefaultOptions() Options {
	return Options{
		StopWords: DefaultStopWords(),
		Threshold: 2,
		MinLength: 2,
	}
}

type Analyzer struct {
	stopWords map[string]struct{}
	threshold int
	minLength int
}

func New(opts Options) Analyzer {
	stop := make(map[string]struct{}, len(opts.StopWords))
	for w := range opts.StopWords {
		stop[w] = struct{}{}
	}
	return Analyzer{
		stopWords: stop,
		threshold: opts.Threshold,
		minLength: opts.MinLength,
	}
}

func tokenRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

func (a Analyzer) tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !tokenRune(r)
	})
}

// Repeated counts how often each meaningful word appears across all
// headers combined and returns the ones above the threshold. The
// result is never nil, empty input yields an empty map.
func (a Analyzer) Repeated(headers []string) map[string]int {
	counts := map[string]int{}
	for _, header := range headers {
		for _, word := range a.tokenize(header) {
			if len([]rune(word)) < a.minLength {
				continue
			}
			if _, stop := a.stopWords[word]; stop {
				continue
			}
			counts[word]++
		}
	}

	repeated := map[string]int{}
	for word, count := range counts {
		if count > a.threshold {
			repeated[word] = count
		}
	}
	return repeated
}

type WordCount struct {
	Word  string
	Count int
}

// Ranked flattens a count map into a slice sorted by count descending,
// ties broken alphabetically.
func Ranked(counts map[string]int) []WordCount {
	out := make([]WordCount, 0, len(counts))
	for word, count := range counts {
		out = append(out, WordCount{Word: word, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Word < out[j].Word
	})
	return out
}
