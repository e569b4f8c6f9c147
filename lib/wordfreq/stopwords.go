package wordfreq

// common english words we want to ignore in the analysis
// (articles, prepositions, pronouns, etc)
var defaultStopWords = []string{
	"the", "a", "an", "and", "or", "but", "in", "on", "at", "to", "for",
	"of", "with", "by", "from", "is", "it", "its", "as", "are", "was",
	"were", "be", "been", "has", "have", "had", "do", "does", "did",
	"will", "would", "could", "should", "may", "might", "shall", "can",
	"this", "that", "these", "those", "not", "no", "nor", "so", "if",
	"than", "too", "very", "just", "about", "up", "out", "into", "over",
	"after", "before", "between", "under", "above", "such", "each",
	"which", "who", "whom", "what", "when", "where", "why", "how",
	"all", "both", "few", "more", "most", "other", "some", "any",
	"he", "she", "they", "we", "you", "i", "me", "him", "her", "us",
	"them", "my", "your", "his", "our", "their",
}

// DefaultStopWords returns a fresh copy of the built-in english stop
// word set, safe for the caller to extend.
func DefaultStopWords() map[string]struct{} {
	set := make(map[string]struct{}, len(defaultStopWords))
	for _, w := range defaultStopWords {
		set[w] = struct{}{}
	}
	return set
}
