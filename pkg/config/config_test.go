package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMapping(t *testing.T) {
	t.Run("full document", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "mapping.yaml")
		doc := `
required_columns:
  - Data
  - Valor
synonyms:
  Data: [data pagamento, vencimento]
  Valor: [vlr, movimento]
posting_rules:
  enabled: true
  source_single_account_synonyms: [conta, conta contabil]
  default_debit_account: "11101"
  default_credit_account: "41101"
`
		require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

		m, err := LoadMapping(path)
		require.NoError(t, err)
		assert.Equal(t, []string{"Data", "Valor"}, m.RequiredColumns)
		assert.Equal(t, []string{"vlr", "movimento"}, m.Synonyms["Valor"])
		assert.True(t, m.PostingRules.Enabled)
		assert.Equal(t, "11101", m.PostingRules.DefaultDebitAccount)
		assert.Equal(t, []string{"conta", "conta contabil"}, m.PostingRules.SourceSingleAccountSynonyms)
	})

	t.Run("missing keys default to empty and disabled", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "mapping.yaml")
		require.NoError(t, os.WriteFile(path, []byte("synonyms:\n  Valor: [vlr]\n"), 0o644))

		m, err := LoadMapping(path)
		require.NoError(t, err)
		assert.Empty(t, m.RequiredColumns)
		assert.False(t, m.PostingRules.Enabled)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadMapping(filepath.Join(t.TempDir(), "nao_existe.yaml"))
		assert.Error(t, err)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "mapping.yaml")
		require.NoError(t, os.WriteFile(path, []byte("synonyms: [\n"), 0o644))
		_, err := LoadMapping(path)
		assert.Error(t, err)
	})
}

func TestLoadServer(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg := LoadServer()
		assert.Equal(t, ":8080", cfg.Addr)
		assert.Equal(t, "temp_uploads", cfg.UploadDir)
		assert.Equal(t, "temp_outputs", cfg.OutputDir)
		assert.Equal(t, 10*time.Minute, cfg.SessionTTL)
		assert.True(t, cfg.MetricsEnabled)
	})

	t.Run("environment overrides", func(t *testing.T) {
		t.Setenv("SERVER_ADDR", ":9999")
		t.Setenv("SESSION_TTL_SECONDS", "60")
		t.Setenv("METRICS_ENABLED", "false")

		cfg := LoadServer()
		assert.Equal(t, ":9999", cfg.Addr)
		assert.Equal(t, time.Minute, cfg.SessionTTL)
		assert.False(t, cfg.MetricsEnabled)
	})
}
