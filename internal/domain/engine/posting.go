package engine

import (
	"github.com/caixalabs/caixa2alterdata/internal/domain/normalize"
)

// applyPostingRules derives debit and credit accounts for sheets that carry
// a single account column. The rule fires only when it is enabled, a source
// account column is found by alias, and neither the debit nor the credit
// field holds a value anywhere in the sheet; explicit data is never
// overridden. A positive amount posts the source account as debit against
// the configured default credit account; a negative amount the other way
// around; zero or missing amounts leave both sides unset. Amounts end up as
// absolute values: the sign is encoded by account placement.
func (e *Engine) applyPostingRules(records []Record, sheet Sheet) {
	if !e.rules.Enabled {
		return
	}

	aliases := make(map[string]struct{}, len(e.rules.SourceAccountAliases))
	for _, a := range e.rules.SourceAccountAliases {
		aliases[normalize.Normalize(a)] = struct{}{}
	}

	sourceCol := ""
	for _, label := range sheet.Columns {
		if _, ok := aliases[normalize.Normalize(label)]; ok {
			sourceCol = label
			break
		}
	}
	if sourceCol == "" {
		return
	}

	for i := range records {
		if records[i].DebitAccount != "" || records[i].CreditAccount != "" {
			return
		}
	}

	accounts, ok := sheet.Column(sourceCol)
	if !ok {
		return
	}

	for i := range records {
		account := ""
		if i < len(accounts) {
			account = accounts[i]
		}

		amount := records[i].Amount
		switch {
		case amount == nil || amount.IsZero():
			continue
		case amount.Sign() > 0:
			records[i].DebitAccount = account
			records[i].CreditAccount = e.rules.DefaultCreditAccount
		default:
			records[i].DebitAccount = e.rules.DefaultDebitAccount
			records[i].CreditAccount = account
		}

		abs := amount.Abs()
		records[i].Amount = &abs
	}
}
