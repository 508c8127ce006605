package engine

import (
	"strings"

	"github.com/caixalabs/caixa2alterdata/internal/domain/normalize"
)

// paymentTokens mark payment/settlement semantics in a column label:
// pagamento, baixa, liquidação, quitação and their habitual abbreviations.
var paymentTokens = []string{"pag", "pagto", "pagamento", "baixa", "liquid", "quit"}

// detectPaymentDateColumn re-resolves the date mapping when several
// date-like columns compete. Issuance and reference dates often outscore
// the payment date under generic fuzzy matching, but ledger correctness
// wants the payment date. Each label scores 3 per distinct payment token it
// contains; scoring columns are then ranked by (token score, fraction of
// the first DateSampleSize cells that parse as dates) and the top candidate
// overrides the generic mapping.
func (e *Engine) detectPaymentDateColumn(sheet Sheet) (string, bool) {
	type candidate struct {
		label string
		score int
		rate  float64
	}

	var candidates []candidate
	for _, label := range sheet.Columns {
		n := normalize.Normalize(label)
		score := 0
		for _, token := range paymentTokens {
			if strings.Contains(n, token) {
				score += 3
			}
		}
		if score == 0 {
			continue
		}

		values, ok := sheet.Column(label)
		if !ok {
			continue
		}
		if len(values) > e.opts.DateSampleSize {
			values = values[:e.opts.DateSampleSize]
		}
		parsed := 0
		for _, v := range values {
			if _, ok := normalize.ParseDate(v, e.opts.DayFirst); ok {
				parsed++
			}
		}
		rate := 0.0
		if len(values) > 0 {
			rate = float64(parsed) / float64(len(values))
		}
		candidates = append(candidates, candidate{label: label, score: score, rate: rate})
	}

	if len(candidates) == 0 {
		return "", false
	}

	best := candidates[0]
	for _, c := range candidates[1:] {
		if c.score > best.score || (c.score == best.score && c.rate > best.rate) {
			best = c
		}
	}
	return best.label, true
}
