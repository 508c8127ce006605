// Package service composes the run pipeline: container reading, the
// normalization engine and artifact writing behind one entry point shared
// by the CLI and the upload server.
package service

import (
	"fmt"
	"log/slog"

	"github.com/caixalabs/caixa2alterdata/internal/domain/engine"
	"github.com/caixalabs/caixa2alterdata/internal/domain/export"
	"github.com/caixalabs/caixa2alterdata/internal/domain/ingest"
	"github.com/caixalabs/caixa2alterdata/pkg/config"
)

// Runner executes complete normalization runs for a fixed mapping
// configuration. It holds no per-run state and is safe to reuse across
// concurrent runs.
type Runner struct {
	engine *engine.Engine
	writer *export.Writer
	logger *slog.Logger
}

// New builds a Runner from a mapping document. A nil mapping behaves like
// an empty one: canonical-name matching only, posting rules disabled.
func New(mapping *config.Mapping, logger *slog.Logger) *Runner {
	if mapping == nil {
		mapping = &config.Mapping{}
	}
	if logger == nil {
		logger = slog.Default()
	}

	eng := engine.New(engine.Params{
		Fields:   mapping.RequiredColumns,
		Synonyms: mapping.Synonyms,
		Rules: engine.PostingRules{
			Enabled:              mapping.PostingRules.Enabled,
			SourceAccountAliases: mapping.PostingRules.SourceSingleAccountSynonyms,
			DefaultDebitAccount:  mapping.PostingRules.DefaultDebitAccount,
			DefaultCreditAccount: mapping.PostingRules.DefaultCreditAccount,
		},
		Logger: logger,
	})

	return &Runner{
		engine: eng,
		writer: export.NewWriter(eng.Fields(), logger),
		logger: logger,
	}
}

// Run normalizes every supported file under inDir and writes the artifacts
// under outDir. The returned result always carries whatever could be
// produced; issues never abort a run.
func (r *Runner) Run(inDir, outDir string) (*engine.Result, error) {
	result, err := r.engine.Run(inDir, ingest.New())
	if err != nil {
		return nil, fmt.Errorf("running engine: %w", err)
	}
	if err := r.writer.Write(result, outDir); err != nil {
		return nil, fmt.Errorf("writing artifacts: %w", err)
	}
	return result, nil
}
