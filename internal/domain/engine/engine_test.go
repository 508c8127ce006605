package engine

import (
	"io"
	"log/slog"
)

// testSynonyms mirrors a trimmed-down mapping.yaml.
var testSynonyms = map[string][]string{
	FieldDate:    {"data", "data pagamento", "vencimento"},
	FieldAmount:  {"valor", "vlr", "movimento"},
	FieldHistory: {"historico", "descricao"},
	FieldDebit:   {"conta debito"},
	FieldCredit:  {"conta credito"},
	FieldTaxID:   {"cpf", "cnpj", "cpf cnpj"},
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestEngine(rules PostingRules) *Engine {
	return New(Params{
		Synonyms: testSynonyms,
		Rules:    rules,
		Logger:   discardLogger(),
	})
}
