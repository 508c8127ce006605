// Package export persists a run's datasets as the Alterdata artifacts: the
// primary workbook with locale-formatted cells, the semicolon CSV with
// comma decimals and BOM, the issue and provenance workbooks, and the
// machine-readable run summary.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/xuri/excelize/v2"

	"github.com/caixalabs/caixa2alterdata/internal/domain/engine"
)

const (
	recordsSheet = "Lançamentos"

	workbookName = "alterdata_output.xlsx"
	csvName      = "alterdata_output.csv"
	issuesName   = "inconsistencias.xlsx"
	mappingName  = "mapeamento_colunas.xlsx"
	summaryName  = "resumo.json"

	dateLayout = "02/01/2006"
)

// Provenance tag columns appended to the primary workbook.
const (
	originFileColumn  = "__arquivo__"
	originSheetColumn = "__aba__"
)

// Writer persists run results under an output directory.
type Writer struct {
	fields []string
	logger *slog.Logger
}

// NewWriter returns a writer emitting the given canonical columns, in
// order, plus the two provenance tags.
func NewWriter(fields []string, logger *slog.Logger) *Writer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Writer{fields: fields, logger: logger}
}

// Write persists every artifact the run produced and fills in
// result.Summary.Outputs. The workbook and CSV are only written when the
// run exported rows; the issue and provenance workbooks only when
// non-empty. The summary is always written, last, so it can list the other
// artifact locations.
func (w *Writer) Write(result *engine.Result, outDir string) error {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	outputs := make(map[string]string)

	if len(result.Records) > 0 {
		xlsxPath := filepath.Join(outDir, workbookName)
		if err := w.writeWorkbook(result.Records, xlsxPath); err != nil {
			return err
		}
		outputs["xlsx"] = xlsxPath

		csvPath := filepath.Join(outDir, csvName)
		if err := w.writeCSV(result.Records, csvPath); err != nil {
			return err
		}
		outputs["csv"] = csvPath
	}

	if len(result.Issues) > 0 {
		path := filepath.Join(outDir, issuesName)
		if err := w.writeIssues(result.Issues, path); err != nil {
			return err
		}
		outputs["inconsistencias"] = path
	}

	if len(result.Mappings) > 0 {
		path := filepath.Join(outDir, mappingName)
		if err := w.writeMappings(result.Mappings, path); err != nil {
			return err
		}
		outputs["mapeamento"] = path
	}

	summaryPath := filepath.Join(outDir, summaryName)
	outputs["resumo"] = summaryPath
	result.Summary.Outputs = outputs
	if err := w.writeSummary(result.Summary, summaryPath); err != nil {
		return err
	}

	w.logger.Info("artifacts written",
		slog.String("dir", outDir),
		slog.Int("artifacts", len(outputs)),
	)
	return nil
}

// writeWorkbook emits the primary spreadsheet: canonical columns plus
// provenance tags, dates as dd/mm/yyyy and amounts as #,##0.00.
func (w *Writer) writeWorkbook(records []engine.Record, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", recordsSheet); err != nil {
		return fmt.Errorf("naming records sheet: %w", err)
	}

	headers := append(append([]string{}, w.fields...), originFileColumn, originSheetColumn)
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(recordsSheet, cell, h); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}

	dateFmt := "dd/mm/yyyy"
	dateStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: &dateFmt})
	if err != nil {
		return fmt.Errorf("creating date style: %w", err)
	}
	moneyFmt := "#,##0.00"
	moneyStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: &moneyFmt})
	if err != nil {
		return fmt.Errorf("creating amount style: %w", err)
	}

	for r, record := range records {
		for c, field := range w.fields {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			switch field {
			case engine.FieldDate:
				if record.Date != nil {
					if err := f.SetCellValue(recordsSheet, cell, *record.Date); err != nil {
						return fmt.Errorf("writing date cell: %w", err)
					}
				}
			case engine.FieldAmount:
				if record.Amount != nil {
					if err := f.SetCellValue(recordsSheet, cell, record.Amount.InexactFloat64()); err != nil {
						return fmt.Errorf("writing amount cell: %w", err)
					}
				}
			default:
				if value, ok := record.TextField(field); ok && value != "" {
					if err := f.SetCellValue(recordsSheet, cell, value); err != nil {
						return fmt.Errorf("writing cell: %w", err)
					}
				}
			}
		}
		fileCell, _ := excelize.CoordinatesToCellName(len(w.fields)+1, r+2)
		sheetCell, _ := excelize.CoordinatesToCellName(len(w.fields)+2, r+2)
		if err := f.SetCellValue(recordsSheet, fileCell, record.SourceFile); err != nil {
			return fmt.Errorf("writing provenance cell: %w", err)
		}
		if err := f.SetCellValue(recordsSheet, sheetCell, record.SourceSheet); err != nil {
			return fmt.Errorf("writing provenance cell: %w", err)
		}
	}

	for i, field := range w.fields {
		col, _ := excelize.ColumnNumberToName(i + 1)
		switch field {
		case engine.FieldDate:
			if err := f.SetColStyle(recordsSheet, col, dateStyle); err != nil {
				return fmt.Errorf("styling date column: %w", err)
			}
		case engine.FieldAmount:
			if err := f.SetColStyle(recordsSheet, col, moneyStyle); err != nil {
				return fmt.Errorf("styling amount column: %w", err)
			}
			if err := f.SetColWidth(recordsSheet, col, col, 15); err != nil {
				return fmt.Errorf("sizing amount column: %w", err)
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving workbook: %w", err)
	}
	return nil
}

// csvRecord is the delimited artifact's row shape: canonical columns only,
// all locale-formatted text.
type csvRecord struct {
	AutoPostingCode string `csv:"CodLancAutom"`
	DebitAccount    string `csv:"Conta Débito"`
	CreditAccount   string `csv:"Conta Crédito"`
	Date            string `csv:"Data"`
	Amount          string `csv:"Valor"`
	HistoryCode     string `csv:"CodHistórico"`
	DocumentNumber  string `csv:"Número de Documento"`
	Property        string `csv:"Imóvel"`
	DocumentType    string `csv:"Tipo de documento"`
	TaxID           string `csv:"CPF/CNPJ"`
}

// writeCSV emits the delimited artifact: semicolon-separated, comma
// decimals, UTF-8 with byte-order mark.
func (w *Writer) writeCSV(records []engine.Record, path string) error {
	rows := make([]csvRecord, len(records))
	for i, r := range records {
		row := csvRecord{
			AutoPostingCode: r.AutoPostingCode,
			DebitAccount:    r.DebitAccount,
			CreditAccount:   r.CreditAccount,
			HistoryCode:     r.HistoryCode,
			DocumentNumber:  r.DocumentNumber,
			Property:        r.Property,
			DocumentType:    r.DocumentType,
			TaxID:           r.TaxID,
		}
		if r.Date != nil {
			row.Date = r.Date.Format(dateLayout)
		}
		if r.Amount != nil {
			row.Amount = strings.Replace(r.Amount.StringFixed(2), ".", ",", 1)
		}
		rows[i] = row
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating csv: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString("\ufeff"); err != nil {
		return fmt.Errorf("writing byte-order mark: %w", err)
	}

	writer := csv.NewWriter(f)
	writer.Comma = ';'
	if err := gocsv.MarshalCSV(&rows, gocsv.NewSafeCSVWriter(writer)); err != nil {
		return fmt.Errorf("marshaling csv: %w", err)
	}
	return nil
}

func (w *Writer) writeIssues(issues []engine.Issue, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	rows := make([][]string, 0, len(issues)+1)
	rows = append(rows, []string{"arquivo", "aba", "erro"})
	for _, issue := range issues {
		rows = append(rows, []string{issue.File, issue.Sheet, issue.Message})
	}
	if err := writeGrid(f, rows); err != nil {
		return err
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving issue workbook: %w", err)
	}
	return nil
}

func (w *Writer) writeMappings(mappings []engine.MappingRow, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	header := []string{"arquivo", "aba"}
	for _, field := range w.fields {
		header = append(header, field+" <-")
	}

	rows := make([][]string, 0, len(mappings)+1)
	rows = append(rows, header)
	for _, m := range mappings {
		row := []string{m.File, m.Sheet}
		for _, field := range w.fields {
			row = append(row, m.Sources[field])
		}
		rows = append(rows, row)
	}
	if err := writeGrid(f, rows); err != nil {
		return err
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving provenance workbook: %w", err)
	}
	return nil
}

func (w *Writer) writeSummary(summary engine.Summary, path string) error {
	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding summary: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing summary: %w", err)
	}
	return nil
}

func writeGrid(f *excelize.File, rows [][]string) error {
	for r, row := range rows {
		for c, value := range row {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+1)
			if err := f.SetCellValue("Sheet1", cell, value); err != nil {
				return fmt.Errorf("writing cell: %w", err)
			}
		}
	}
	return nil
}
