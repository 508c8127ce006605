package engine

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeReader serves canned sheets keyed by base filename.
type fakeReader struct {
	sheets map[string][]RawSheet
	errs   map[string]error
}

func (f *fakeReader) Read(path string) ([]RawSheet, error) {
	name := filepath.Base(path)
	if err, ok := f.errs[name]; ok {
		return nil, err
	}
	return f.sheets[name], nil
}

func touch(t *testing.T, dir, name string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
}

func TestRun(t *testing.T) {
	e := newTestEngine(PostingRules{})

	ledger := func(history string) []RawSheet {
		return []RawSheet{{
			Name: "Plan1",
			Cells: [][]string{
				{"Data", "Valor", "Histórico"},
				{"01/02/2024", "10,00", history},
			},
		}}
	}

	t.Run("records keep file then sheet then row order", func(t *testing.T) {
		dir := t.TempDir()
		touch(t, dir, "b.xlsx")
		touch(t, dir, "a.xlsx")

		reader := &fakeReader{sheets: map[string][]RawSheet{
			"a.xlsx": ledger("primeiro"),
			"b.xlsx": ledger("segundo"),
		}}
		result, err := e.Run(dir, reader)
		require.NoError(t, err)
		require.Len(t, result.Records, 2)
		assert.Equal(t, "a.xlsx", result.Records[0].SourceFile)
		assert.Equal(t, "b.xlsx", result.Records[1].SourceFile)
		assert.Equal(t, 2, result.Summary.FilesFound)
		assert.Equal(t, 2, result.Summary.RowsExported)
		assert.False(t, result.Summary.HasIssues)
	})

	t.Run("unsupported extensions are ignored", func(t *testing.T) {
		dir := t.TempDir()
		touch(t, dir, "a.xlsx")
		touch(t, dir, "notas.txt")
		touch(t, dir, "planilha.pdf")

		reader := &fakeReader{sheets: map[string][]RawSheet{"a.xlsx": ledger("ok")}}
		result, err := e.Run(dir, reader)
		require.NoError(t, err)
		assert.Equal(t, 1, result.Summary.FilesFound)
	})

	t.Run("unreadable file logs an issue and siblings continue", func(t *testing.T) {
		dir := t.TempDir()
		touch(t, dir, "corrompido.xlsx")
		touch(t, dir, "sano.xlsx")

		reader := &fakeReader{
			sheets: map[string][]RawSheet{"sano.xlsx": ledger("ok")},
			errs:   map[string]error{"corrompido.xlsx": errors.New("zip: not a valid zip file")},
		}
		result, err := e.Run(dir, reader)
		require.NoError(t, err)
		require.Len(t, result.Issues, 1)
		assert.Equal(t, "corrompido.xlsx", result.Issues[0].File)
		assert.Equal(t, "-", result.Issues[0].Sheet)
		assert.Contains(t, result.Issues[0].Message, "Falha na leitura")
		require.Len(t, result.Records, 1)
		assert.True(t, result.Summary.HasIssues)
		assert.Equal(t, 2, result.Summary.FilesFound)
	})

	t.Run("broken sheet does not sink its siblings", func(t *testing.T) {
		dir := t.TempDir()
		touch(t, dir, "misto.xlsx")

		sheets := []RawSheet{
			{Name: "Quebrada", Err: errors.New("shared strings out of range")},
		}
		sheets = append(sheets, ledger("ok")...)
		reader := &fakeReader{sheets: map[string][]RawSheet{"misto.xlsx": sheets}}

		result, err := e.Run(dir, reader)
		require.NoError(t, err)
		require.Len(t, result.Issues, 1)
		assert.Equal(t, "Quebrada", result.Issues[0].Sheet)
		assert.Contains(t, result.Issues[0].Message, "Falha ao ler ou processar aba")
		require.Len(t, result.Records, 1)
	})

	t.Run("missing input directory is the only hard error", func(t *testing.T) {
		_, err := e.Run(filepath.Join(t.TempDir(), "nao_existe"), &fakeReader{})
		assert.Error(t, err)
	})
}
