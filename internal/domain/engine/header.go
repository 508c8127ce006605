package engine

import (
	"strings"

	"github.com/caixalabs/caixa2alterdata/internal/domain/normalize"
)

// promoteHeader scans the top of a raw grid for the row most likely to be
// the true header. A candidate needs at least MinHeaderCells non-empty
// cells; its score is the count of cells whose normalized text is a known
// vocabulary token. Only strict improvements replace the running best, so
// ties keep the earliest row. The winner is promoted iff it scores at
// least MinHeaderScore; otherwise the grid passes through unchanged under
// positional labels and mapping downstream reports every field unresolved.
//
// The returned index is the promoted row's position in the raw grid, -1
// when nothing was promoted.
func (e *Engine) promoteHeader(raw RawSheet) (Sheet, int) {
	scan := e.opts.HeaderScanRows
	if scan > len(raw.Cells) {
		scan = len(raw.Cells)
	}

	bestIdx := -1
	bestScore := -1
	for i := 0; i < scan; i++ {
		row := raw.Cells[i]
		nonEmpty := 0
		score := 0
		for _, cell := range row {
			cell = strings.TrimSpace(cell)
			if cell == "" {
				continue
			}
			switch strings.ToLower(cell) {
			case "nan", "none":
				continue
			}
			nonEmpty++
			if e.vocab.Contains(normalize.Normalize(cell)) {
				score++
			}
		}
		if nonEmpty < e.opts.MinHeaderCells {
			continue
		}
		if score > bestScore {
			bestScore = score
			bestIdx = i
		}
	}

	if bestIdx == -1 || bestScore < e.opts.MinHeaderScore {
		width := gridWidth(raw.Cells)
		return Sheet{Columns: positionalLabels(width), Rows: raw.Cells}, -1
	}

	width := gridWidth(raw.Cells)
	labels := make([]string, width)
	for i := range labels {
		if i < len(raw.Cells[bestIdx]) {
			labels[i] = strings.TrimSpace(raw.Cells[bestIdx][i])
		}
	}

	rows := raw.Cells[bestIdx+1:]
	return dropEmpty(Sheet{Columns: labels, Rows: rows}), bestIdx
}

// dropEmpty removes fully empty rows, then columns whose data cells are all
// empty, mirroring how a promoted sheet sheds the padding that surrounded
// the original preamble.
func dropEmpty(s Sheet) Sheet {
	rows := make([][]string, 0, len(s.Rows))
	for _, row := range s.Rows {
		empty := true
		for _, cell := range row {
			if strings.TrimSpace(cell) != "" {
				empty = false
				break
			}
		}
		if !empty {
			rows = append(rows, row)
		}
	}

	keep := make([]bool, len(s.Columns))
	for _, row := range rows {
		for i := range s.Columns {
			if i < len(row) && strings.TrimSpace(row[i]) != "" {
				keep[i] = true
			}
		}
	}

	columns := make([]string, 0, len(s.Columns))
	for i, col := range s.Columns {
		if keep[i] {
			columns = append(columns, col)
		}
	}
	out := make([][]string, len(rows))
	for r, row := range rows {
		compact := make([]string, 0, len(columns))
		for i := range s.Columns {
			if !keep[i] {
				continue
			}
			if i < len(row) {
				compact = append(compact, row[i])
			} else {
				compact = append(compact, "")
			}
		}
		out[r] = compact
	}
	return Sheet{Columns: columns, Rows: out}
}
