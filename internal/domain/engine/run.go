package engine

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// supportedExts are the container types a run will pick up from the input
// directory. Anything else is silently ignored.
var supportedExts = map[string]struct{}{
	".xlsx": {},
	".xlsm": {},
	".xls":  {},
	".csv":  {},
}

// Result aggregates everything a run produced: the standardized records in
// (file, sheet, row) order, the issue log, the provenance log and the run
// summary.
type Result struct {
	Records  []Record
	Issues   []Issue
	Mappings []MappingRow
	Summary  Summary
}

// Run processes every supported file in dir through reader and the
// per-sheet pipeline. Failures are local: an unreadable file or sheet
// contributes an issue and its siblings continue. The only error returned
// is an unreadable input directory.
func (e *Engine) Run(dir string, reader Reader) (*Result, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading input directory: %w", err)
	}

	result := &Result{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if _, ok := supportedExts[ext]; !ok {
			continue
		}
		result.Summary.FilesFound++
		e.processFile(filepath.Join(dir, entry.Name()), entry.Name(), reader, result)
	}

	result.Summary.RowsExported = len(result.Records)
	result.Summary.HasIssues = len(result.Issues) > 0

	e.logger.Info("run completed",
		slog.Int("files", result.Summary.FilesFound),
		slog.Int("rows", result.Summary.RowsExported),
		slog.Int("issues", len(result.Issues)),
	)
	return result, nil
}

// processFile reads one container and feeds its sheets through the sheet
// processor, appending to the run accumulators.
func (e *Engine) processFile(path, name string, reader Reader, result *Result) {
	sheets, err := reader.Read(path)
	if err != nil {
		e.logger.Warn("container unreadable",
			slog.String("file", name),
			slog.Any("error", err),
		)
		result.Issues = append(result.Issues, Issue{
			File:    name,
			Sheet:   "-",
			Message: fmt.Sprintf("Falha na leitura: %v", err),
		})
		return
	}

	for _, sheet := range sheets {
		if sheet.Err != nil {
			result.Issues = append(result.Issues, Issue{
				File:    name,
				Sheet:   sheet.Name,
				Message: fmt.Sprintf("Falha ao ler ou processar aba: %v", sheet.Err),
			})
			continue
		}
		records, mapping, issue := e.processSheet(name, sheet)
		if mapping != nil {
			result.Mappings = append(result.Mappings, *mapping)
		}
		if issue != nil {
			result.Issues = append(result.Issues, *issue)
			continue
		}
		result.Records = append(result.Records, records...)
	}
}
