// Package engine implements the tabular schema normalization engine:
// header-row promotion, synonym and fuzzy column mapping, payment-date
// disambiguation, posting-rule derivation and per-run aggregation of
// standardized ledger records.
package engine

import (
	"time"

	"github.com/shopspring/decimal"
)

// Canonical field names of the Alterdata ten-column layout. The names are
// also the column headers of the exported artifacts, so they stay in pt-BR.
const (
	FieldAutoPosting = "CodLancAutom"
	FieldDebit       = "Conta Débito"
	FieldCredit      = "Conta Crédito"
	FieldDate        = "Data"
	FieldAmount      = "Valor"
	FieldHistory     = "CodHistórico"
	FieldDocNumber   = "Número de Documento"
	FieldProperty    = "Imóvel"
	FieldDocType     = "Tipo de documento"
	FieldTaxID       = "CPF/CNPJ"
)

// NotFound marks an unresolved canonical field in the provenance log.
const NotFound = "(não encontrado)"

// DefaultFields returns the canonical schema in Alterdata column order.
func DefaultFields() []string {
	return []string{
		FieldAutoPosting,
		FieldDebit,
		FieldCredit,
		FieldDate,
		FieldAmount,
		FieldHistory,
		FieldDocNumber,
		FieldProperty,
		FieldDocType,
		FieldTaxID,
	}
}

// Record is one standardized ledger row after mapping and parsing. Date and
// Amount are typed; a nil pointer means the source cell was empty or failed
// locale parsing. The two Source fields carry provenance.
type Record struct {
	AutoPostingCode string
	DebitAccount    string
	CreditAccount   string
	Date            *time.Time
	Amount          *decimal.Decimal
	HistoryCode     string
	DocumentNumber  string
	Property        string
	DocumentType    string
	TaxID           string

	SourceFile  string
	SourceSheet string
}

// TextField returns the record's value for one of the plain-text canonical
// fields. ok is false for Data and Valor, which are typed.
func (r *Record) TextField(field string) (string, bool) {
	switch field {
	case FieldAutoPosting:
		return r.AutoPostingCode, true
	case FieldDebit:
		return r.DebitAccount, true
	case FieldCredit:
		return r.CreditAccount, true
	case FieldHistory:
		return r.HistoryCode, true
	case FieldDocNumber:
		return r.DocumentNumber, true
	case FieldProperty:
		return r.Property, true
	case FieldDocType:
		return r.DocumentType, true
	case FieldTaxID:
		return r.TaxID, true
	}
	return "", false
}

func (r *Record) setTextField(field, value string) {
	switch field {
	case FieldAutoPosting:
		r.AutoPostingCode = value
	case FieldDebit:
		r.DebitAccount = value
	case FieldCredit:
		r.CreditAccount = value
	case FieldHistory:
		r.HistoryCode = value
	case FieldDocNumber:
		r.DocumentNumber = value
	case FieldProperty:
		r.Property = value
	case FieldDocType:
		r.DocumentType = value
	case FieldTaxID:
		r.TaxID = value
	}
}

// Issue is a non-fatal, recorded failure to process a file or sheet.
type Issue struct {
	File    string `json:"arquivo"`
	Sheet   string `json:"aba"`
	Message string `json:"erro"`
}

// MappingRow records which source column fed each canonical field for one
// sheet, independent of whether the sheet was ultimately kept.
type MappingRow struct {
	File    string
	Sheet   string
	Sources map[string]string
}

// Summary describes one completed run. Outputs is filled in by the caller
// once artifacts have been written.
type Summary struct {
	FilesFound   int               `json:"files_found"`
	RowsExported int               `json:"rows_exported"`
	HasIssues    bool              `json:"has_issues"`
	Outputs      map[string]string `json:"outputs,omitempty"`
}

// PostingRules configures debit/credit derivation for sheets that carry a
// single account column instead of explicit debit and credit accounts.
type PostingRules struct {
	Enabled              bool
	SourceAccountAliases []string
	DefaultDebitAccount  string
	DefaultCreditAccount string
}

// Options are the heuristic knobs of the engine. The defaults encode pt-BR
// locale policy (day-first dates) and the thresholds the detection
// heuristics were tuned with.
type Options struct {
	HeaderScanRows int  // rows inspected for a header candidate
	MinHeaderCells int  // non-empty cells required of a candidate row
	MinHeaderScore int  // vocabulary hits required to promote
	FuzzyThreshold int  // minimum 0-100 similarity for a fuzzy column match
	DateSampleSize int  // cells sampled when ranking payment-date columns
	DayFirst       bool // try day-before-month date parsing first
}

// DefaultOptions returns the tuned heuristic defaults.
func DefaultOptions() Options {
	return Options{
		HeaderScanRows: 20,
		MinHeaderCells: 3,
		MinHeaderScore: 2,
		FuzzyThreshold: 86,
		DateSampleSize: 200,
		DayFirst:       true,
	}
}
