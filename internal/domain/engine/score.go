package engine

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Scorer assigns a 0-100 similarity score to two normalized strings. The
// comparison must be insensitive to token order; the algorithm behind it is
// not otherwise fixed.
type Scorer interface {
	Score(a, b string) int
}

// TokenSortScorer scores strings by sorting their underscore-separated
// tokens and taking a Levenshtein ratio of the sorted forms, so
// "numero_de_documento" and "documento_de_numero" score 100.
type TokenSortScorer struct{}

func (TokenSortScorer) Score(a, b string) int {
	a, b = sortTokens(a), sortTokens(b)
	if a == b {
		return 100
	}
	if a == "" || b == "" {
		return 0
	}
	dist := fuzzy.LevenshteinDistance(a, b)
	maxLen := len(a)
	if len(b) > maxLen {
		maxLen = len(b)
	}
	return 100 * (maxLen - dist) / maxLen
}

func sortTokens(s string) string {
	if s == "" {
		return s
	}
	tokens := strings.Split(s, "_")
	sort.Strings(tokens)
	return strings.Join(tokens, "_")
}
