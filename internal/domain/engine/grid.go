package engine

import (
	"fmt"
	"strings"
)

// RawSheet is one worksheet (or CSV pseudo-sheet) as read from a container:
// an ordered grid of untyped text cells, before header promotion. Err is
// set when this sheet could not be parsed into rows; its siblings are
// unaffected.
type RawSheet struct {
	Name  string
	Cells [][]string
	Err   error
}

// Reader yields the raw sheets of one container file. Implementations live
// in the ingest package; the engine only requires "sheet name to grid".
type Reader interface {
	Read(path string) ([]RawSheet, error)
}

// Sheet is a promoted sheet: column labels plus data rows. Rows may be
// ragged; Column pads short rows with empty cells.
type Sheet struct {
	Columns []string
	Rows    [][]string
}

// Column returns the values under the first column with the given label,
// padded to the row count.
func (s *Sheet) Column(label string) ([]string, bool) {
	for i, c := range s.Columns {
		if c != label {
			continue
		}
		values := make([]string, len(s.Rows))
		for r, row := range s.Rows {
			if i < len(row) {
				values[r] = strings.TrimSpace(row[i])
			}
		}
		return values, true
	}
	return nil, false
}

// positionalLabels labels an unpromoted sheet's columns by index, the way a
// headerless grid is addressed. These labels never match the vocabulary, so
// downstream mapping yields an explicit issue instead of a wrong guess.
func positionalLabels(width int) []string {
	labels := make([]string, width)
	for i := range labels {
		labels[i] = fmt.Sprintf("col_%d", i)
	}
	return labels
}

// gridWidth is the widest row of a ragged grid.
func gridWidth(cells [][]string) int {
	width := 0
	for _, row := range cells {
		if len(row) > width {
			width = len(row)
		}
	}
	return width
}
