package engine

import (
	"github.com/caixalabs/caixa2alterdata/internal/domain/normalize"
)

// mapColumns assigns each canonical field to at most one source column.
// The exact pass matches normalized labels against the field's alias set,
// first column in order winning. The fuzzy pass runs only when the exact
// pass found nothing: the field's normalized canonical name is scored
// against every remaining label and the best match is taken iff it reaches
// FuzzyThreshold.
//
// Two fields may share a column through exact alias coincidence, but the
// fuzzy pass skips columns already claimed by an earlier field
// (first-claimed-wins), so fuzzy resolution never silently duplicates a
// column across fields.
func (e *Engine) mapColumns(columns []string) map[string]string {
	normed := make([]string, len(columns))
	for i, c := range columns {
		normed[i] = normalize.Normalize(c)
	}

	mapping := make(map[string]string, len(e.fields))
	claimed := make(map[string]struct{})

	for _, field := range e.fields {
		aliases := e.vocab.AliasSet(field)

		chosen := ""
		for i, n := range normed {
			if _, ok := aliases[n]; ok {
				chosen = columns[i]
				break
			}
		}

		if chosen == "" && len(columns) > 0 {
			target := normalize.Normalize(field)
			bestScore := e.opts.FuzzyThreshold - 1
			for i, n := range normed {
				if _, taken := claimed[columns[i]]; taken {
					continue
				}
				if score := e.scorer.Score(target, n); score > bestScore {
					bestScore = score
					chosen = columns[i]
				}
			}
		}

		mapping[field] = chosen
		if chosen != "" {
			claimed[chosen] = struct{}{}
		}
	}
	return mapping
}
