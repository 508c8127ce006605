// Package normalize provides text normalization and pt-BR locale parsing
// for ledger spreadsheet cells. Header matching, synonym lookup and value
// parsing all build on the Normalize function defined here.
package normalize

import (
	"strings"
)

// accentFold maps Portuguese accented runes to their ASCII base form.
var accentFold = map[rune]rune{
	'á': 'a', 'à': 'a', 'â': 'a', 'ã': 'a', 'ä': 'a',
	'é': 'e', 'ê': 'e', 'ë': 'e', 'è': 'e',
	'í': 'i', 'ì': 'i', 'ï': 'i', 'î': 'i',
	'ó': 'o', 'ô': 'o', 'õ': 'o', 'ö': 'o', 'ò': 'o',
	'ú': 'u', 'ù': 'u', 'ü': 'u', 'û': 'u',
	'ç': 'c',
}

// Normalize lowercases a header or alias string, folds Portuguese accents,
// and collapses every run of non-alphanumeric characters to a single
// underscore, trimmed at both ends. It is idempotent and defined for any
// input.
func Normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))

	var b strings.Builder
	b.Grow(len(s))
	pendingSep := false
	for _, r := range s {
		if folded, ok := accentFold[r]; ok {
			r = folded
		}
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingSep && b.Len() > 0 {
				b.WriteByte('_')
			}
			pendingSep = false
			b.WriteRune(r)
			continue
		}
		pendingSep = true
	}
	return b.String()
}

// Vocabulary holds the synonym sets used for header detection and column
// mapping, keyed by canonical field name. All stored aliases are normalized.
type Vocabulary struct {
	aliases map[string][]string
	known   map[string]struct{}
}

// NewVocabulary builds a vocabulary from canonical field names and their
// configured alias spellings. The normalized canonical names themselves are
// always part of the known token set.
func NewVocabulary(fields []string, synonyms map[string][]string) *Vocabulary {
	v := &Vocabulary{
		aliases: make(map[string][]string, len(synonyms)),
		known:   make(map[string]struct{}),
	}
	for _, field := range fields {
		v.known[Normalize(field)] = struct{}{}
	}
	for field, raw := range synonyms {
		v.known[Normalize(field)] = struct{}{}
		normed := make([]string, 0, len(raw))
		for _, alias := range raw {
			n := Normalize(alias)
			if n == "" {
				continue
			}
			normed = append(normed, n)
			v.known[n] = struct{}{}
		}
		v.aliases[Normalize(field)] = normed
	}
	return v
}

// Contains reports whether the normalized token is a known canonical name
// or alias.
func (v *Vocabulary) Contains(token string) bool {
	_, ok := v.known[token]
	return ok
}

// AliasSet returns the normalized aliases accepted for a canonical field,
// including the normalized field name itself.
func (v *Vocabulary) AliasSet(field string) map[string]struct{} {
	n := Normalize(field)
	set := make(map[string]struct{}, len(v.aliases[n])+1)
	set[n] = struct{}{}
	for _, alias := range v.aliases[n] {
		set[alias] = struct{}{}
	}
	return set
}
