package engine

import (
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/caixalabs/caixa2alterdata/internal/domain/normalize"
)

// processSheet runs one worksheet through header promotion, column mapping,
// payment-date disambiguation, parsing and posting-rule derivation. It
// returns the standardized records, the provenance row, and an issue when
// the sheet had to be skipped. A completely empty sheet yields nothing at
// all. The provenance row is recorded whenever mapping ran, even for sheets
// skipped afterwards.
func (e *Engine) processSheet(file string, raw RawSheet) ([]Record, *MappingRow, *Issue) {
	if len(raw.Cells) == 0 {
		return nil, nil, nil
	}

	sheet, headerRow := e.promoteHeader(raw)
	e.logger.Debug("header promotion",
		slog.String("file", file),
		slog.String("sheet", raw.Name),
		slog.Int("row", headerRow),
	)

	mapping := e.mapColumns(sheet.Columns)
	if label, ok := e.detectPaymentDateColumn(sheet); ok {
		mapping[FieldDate] = label
	}

	provenance := &MappingRow{
		File:    file,
		Sheet:   raw.Name,
		Sources: make(map[string]string, len(e.fields)),
	}
	resolved := 0
	for _, field := range e.fields {
		if mapping[field] != "" {
			provenance.Sources[field] = mapping[field]
			resolved++
		} else {
			provenance.Sources[field] = NotFound
		}
	}

	if resolved == 0 {
		return nil, provenance, &Issue{File: file, Sheet: raw.Name, Message: "Nenhuma coluna reconhecida."}
	}

	records := e.buildRecords(sheet, mapping)

	hasValid := false
	for i := range records {
		if records[i].Date != nil || records[i].Amount != nil {
			hasValid = true
			break
		}
	}
	if !hasValid {
		return nil, provenance, &Issue{File: file, Sheet: raw.Name, Message: "Aba sem linhas válidas (Data e Valor vazios)."}
	}

	e.applyPostingRules(records, sheet)

	for i := range records {
		records[i].SourceFile = file
		records[i].SourceSheet = raw.Name
	}
	return records, provenance, nil
}

// buildRecords extracts the mapped columns and parses them into typed
// records, one per data row. Individual cell parse failures produce empty
// fields, never errors.
func (e *Engine) buildRecords(sheet Sheet, mapping map[string]string) []Record {
	records := make([]Record, len(sheet.Rows))

	for _, field := range e.fields {
		source := mapping[field]
		if source == "" || field == FieldAmount {
			continue
		}
		values, ok := sheet.Column(source)
		if !ok {
			continue
		}
		for i, value := range values {
			switch field {
			case FieldDate:
				if t, ok := normalize.ParseDate(value, e.opts.DayFirst); ok {
					records[i].Date = &t
				}
			case FieldTaxID:
				if digits, ok := normalize.OnlyDigits(value); ok {
					records[i].TaxID = digits
				}
			default:
				records[i].setTextField(field, value)
			}
		}
	}

	for i, amount := range e.resolveAmounts(sheet, mapping) {
		records[i].Amount = amount
	}
	return records
}

// resolveAmounts applies the amount resolution policy: the mapped Valor
// column when it is present and not entirely empty, otherwise a derived
// debit minus credit from the best-guess debit/credit-style columns, with
// missing sides treated as zero.
func (e *Engine) resolveAmounts(sheet Sheet, mapping map[string]string) []*decimal.Decimal {
	amounts := make([]*decimal.Decimal, len(sheet.Rows))

	if source := mapping[FieldAmount]; source != "" {
		if values, ok := sheet.Column(source); ok {
			populated := false
			for i, v := range values {
				if d, ok := normalize.ParseAmount(v); ok {
					amounts[i] = &d
					populated = true
				}
			}
			if populated {
				return amounts
			}
		}
	}

	debitCol, creditCol := "", ""
	for _, label := range sheet.Columns {
		n := normalize.Normalize(label)
		if debitCol == "" && strings.Contains(n, "deb") {
			debitCol = label
		}
		if creditCol == "" && strings.Contains(n, "cred") {
			creditCol = label
		}
	}
	if debitCol == "" && creditCol == "" {
		return amounts
	}

	var debits, credits []string
	if debitCol != "" {
		debits, _ = sheet.Column(debitCol)
	}
	if creditCol != "" {
		credits, _ = sheet.Column(creditCol)
	}
	for i := range sheet.Rows {
		debit := decimal.Zero
		credit := decimal.Zero
		any := false
		if i < len(debits) {
			if d, ok := normalize.ParseAmount(debits[i]); ok {
				debit = d
				any = true
			}
		}
		if i < len(credits) {
			if d, ok := normalize.ParseAmount(credits[i]); ok {
				credit = d
				any = true
			}
		}
		if !any {
			continue
		}
		diff := debit.Sub(credit)
		amounts[i] = &diff
	}
	return amounts
}
