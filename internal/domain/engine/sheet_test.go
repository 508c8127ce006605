package engine

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcessSheet(t *testing.T) {
	e := newTestEngine(PostingRules{})

	t.Run("maps and parses a plain ledger sheet", func(t *testing.T) {
		raw := RawSheet{
			Name: "Janeiro",
			Cells: [][]string{
				{"Data", "Valor", "Histórico"},
				{"01/02/2024", "1.234,56", "Venda"},
				{"02/02/2024", "-12,30", "Estorno"},
			},
		}
		records, mapping, issue := e.processSheet("caixa.xlsx", raw)
		require.Nil(t, issue)
		require.NotNil(t, mapping)
		require.Len(t, records, 2)

		assert.Equal(t, "Data", mapping.Sources[FieldDate])
		assert.Equal(t, "Valor", mapping.Sources[FieldAmount])
		assert.Equal(t, NotFound, mapping.Sources[FieldTaxID])

		require.NotNil(t, records[0].Date)
		assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), *records[0].Date)
		require.NotNil(t, records[0].Amount)
		assert.True(t, records[0].Amount.Equal(decimal.RequireFromString("1234.56")))
		assert.Equal(t, "Venda", records[0].HistoryCode)
		assert.Equal(t, "caixa.xlsx", records[0].SourceFile)
		assert.Equal(t, "Janeiro", records[0].SourceSheet)

		require.NotNil(t, records[1].Amount)
		assert.True(t, records[1].Amount.Equal(decimal.RequireFromString("-12.30")))
	})

	t.Run("skips a preamble before the header row", func(t *testing.T) {
		raw := RawSheet{
			Name: "Caixa",
			Cells: [][]string{
				{"Imobiliária Central", "", ""},
				{"Movimento de caixa", "", ""},
				{"Data", "Valor", "Histórico"},
				{"15/03/2024", "200,00", "Aluguel"},
			},
		}
		records, _, issue := e.processSheet("caixa.xlsx", raw)
		require.Nil(t, issue)
		require.Len(t, records, 1)
		require.NotNil(t, records[0].Date)
		assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), *records[0].Date)
	})

	t.Run("empty grid yields nothing", func(t *testing.T) {
		records, mapping, issue := e.processSheet("caixa.xlsx", RawSheet{Name: "Vazia"})
		assert.Nil(t, records)
		assert.Nil(t, mapping)
		assert.Nil(t, issue)
	})

	t.Run("unrecognizable columns raise an issue and keep provenance", func(t *testing.T) {
		raw := RawSheet{
			Name: "Notas",
			Cells: [][]string{
				{"aaa", "bbb", "ccc"},
				{"1", "2", "3"},
			},
		}
		records, mapping, issue := e.processSheet("caixa.xlsx", raw)
		assert.Nil(t, records)
		require.NotNil(t, issue)
		assert.Equal(t, "Nenhuma coluna reconhecida.", issue.Message)
		assert.Equal(t, "Notas", issue.Sheet)
		require.NotNil(t, mapping)
		for _, field := range e.Fields() {
			assert.Equal(t, NotFound, mapping.Sources[field])
		}
	})

	t.Run("rows without date or amount raise an issue", func(t *testing.T) {
		raw := RawSheet{
			Name: "Rascunho",
			Cells: [][]string{
				{"Data", "Valor", "Histórico"},
				{"texto", "abc", "anotação"},
			},
		}
		records, mapping, issue := e.processSheet("caixa.xlsx", raw)
		assert.Nil(t, records)
		assert.NotNil(t, mapping)
		require.NotNil(t, issue)
		assert.Equal(t, "Aba sem linhas válidas (Data e Valor vazios).", issue.Message)
	})

	t.Run("derives the amount from debit minus credit", func(t *testing.T) {
		raw := RawSheet{
			Name: "Razão",
			Cells: [][]string{
				{"Data", "Débito", "Crédito", "Histórico"},
				{"01/02/2024", "100,00", "30,00", "Venda"},
				{"02/02/2024", "", "50,00", "Tarifa"},
			},
		}
		records, _, issue := e.processSheet("caixa.xlsx", raw)
		require.Nil(t, issue)
		require.Len(t, records, 2)
		require.NotNil(t, records[0].Amount)
		assert.True(t, records[0].Amount.Equal(decimal.RequireFromString("70.00")))
		require.NotNil(t, records[1].Amount)
		assert.True(t, records[1].Amount.Equal(decimal.RequireFromString("-50.00")))
	})

	t.Run("payment date overrides the generic date column", func(t *testing.T) {
		raw := RawSheet{
			Name: "Contas",
			Cells: [][]string{
				{"Data", "Data Pagamento", "Valor", "Histórico"},
				{"01/01/2024", "05/01/2024", "10,00", "Boleto"},
			},
		}
		records, mapping, issue := e.processSheet("caixa.xlsx", raw)
		require.Nil(t, issue)
		assert.Equal(t, "Data Pagamento", mapping.Sources[FieldDate])
		require.Len(t, records, 1)
		require.NotNil(t, records[0].Date)
		assert.Equal(t, time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), *records[0].Date)
	})

	t.Run("strips tax id formatting", func(t *testing.T) {
		raw := RawSheet{
			Name: "Clientes",
			Cells: [][]string{
				{"Data", "Valor", "CPF"},
				{"01/02/2024", "10,00", "123.456.789-09"},
			},
		}
		records, _, issue := e.processSheet("caixa.xlsx", raw)
		require.Nil(t, issue)
		require.Len(t, records, 1)
		assert.Equal(t, "12345678909", records[0].TaxID)
	})
}
