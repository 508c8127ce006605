// Package ingest reads spreadsheet containers into raw text grids. It
// handles .xlsx/.xlsm through excelize, legacy .xls through extrame/xls,
// and .csv with delimiter sniffing. Cells are always text; typing happens
// later, in the engine.
package ingest

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"

	"github.com/caixalabs/caixa2alterdata/internal/domain/engine"
)

// ErrUnsupportedFormat is returned for container extensions the reader
// does not handle.
var ErrUnsupportedFormat = errors.New("unsupported container format")

// ContainerReader implements engine.Reader over the four supported
// container types. It is stateless and safe for concurrent use.
type ContainerReader struct{}

// New returns a ContainerReader.
func New() ContainerReader {
	return ContainerReader{}
}

// Read opens one container file and returns its sheets as raw grids. A CSV
// file yields exactly one pseudo-sheet named "CSV". Individual sheets that
// fail to parse carry their error in RawSheet.Err so siblings continue.
func (ContainerReader) Read(path string) ([]engine.RawSheet, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return readExcel(path)
	case ".xls":
		return readLegacyExcel(path)
	case ".csv":
		return readCSV(path)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
}

func readExcel(path string) ([]engine.RawSheet, error) {
	f, err := excelize.OpenFile(path, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer f.Close()

	names := f.GetSheetList()
	sheets := make([]engine.RawSheet, 0, len(names))
	for _, name := range names {
		rows, err := f.GetRows(name, excelize.Options{RawCellValue: true})
		if err != nil {
			sheets = append(sheets, engine.RawSheet{Name: name, Err: err})
			continue
		}
		sheets = append(sheets, engine.RawSheet{Name: name, Cells: rows})
	}
	return sheets, nil
}

func readLegacyExcel(path string) ([]engine.RawSheet, error) {
	wb, err := xls.Open(path, "utf-8")
	if err != nil {
		return nil, fmt.Errorf("opening legacy workbook: %w", err)
	}

	sheets := make([]engine.RawSheet, 0, wb.NumSheets())
	for i := 0; i < wb.NumSheets(); i++ {
		sheet := wb.GetSheet(i)
		if sheet == nil {
			continue
		}
		cells := make([][]string, 0, int(sheet.MaxRow)+1)
		for r := 0; r <= int(sheet.MaxRow); r++ {
			row := sheet.Row(r)
			if row == nil {
				cells = append(cells, nil)
				continue
			}
			line := make([]string, row.LastCol()+1)
			for c := row.FirstCol(); c <= row.LastCol(); c++ {
				line[c] = row.Col(c)
			}
			cells = append(cells, line)
		}
		sheets = append(sheets, engine.RawSheet{Name: sheet.Name, Cells: cells})
	}
	return sheets, nil
}

func readCSV(path string) ([]engine.RawSheet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading csv: %w", err)
	}
	data = bytes.TrimPrefix(data, []byte("\ufeff"))

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = detectDelimiter(data)
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	var cells [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parsing csv: %w", err)
		}
		cells = append(cells, record)
	}
	return []engine.RawSheet{{Name: "CSV", Cells: cells}}, nil
}

// detectDelimiter picks the delimiter with the highest count on the first
// non-empty line, defaulting to comma.
func detectDelimiter(data []byte) rune {
	line := ""
	for _, l := range strings.Split(string(data), "\n") {
		if strings.TrimSpace(l) != "" {
			line = l
			break
		}
	}

	best := ','
	bestCount := 0
	for _, d := range []rune{';', '\t', ',', '|'} {
		if count := strings.Count(line, string(d)); count > bestCount {
			bestCount = count
			best = d
		}
	}
	return best
}
