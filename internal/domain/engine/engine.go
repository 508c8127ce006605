package engine

import (
	"log/slog"

	"github.com/caixalabs/caixa2alterdata/internal/domain/normalize"
)

// Engine normalizes raw sheets into standardized ledger records. It holds
// no mutable state across runs and is safe to reuse with different inputs.
type Engine struct {
	fields []string
	vocab  *normalize.Vocabulary
	rules  PostingRules
	scorer Scorer
	opts   Options
	logger *slog.Logger
}

// Params configures a new Engine. Zero values fall back to the canonical
// Alterdata schema, the token-sort scorer and the tuned default options.
type Params struct {
	Fields   []string            // target schema; nil means DefaultFields
	Synonyms map[string][]string // canonical field -> alias spellings
	Rules    PostingRules
	Scorer   Scorer   // nil means TokenSortScorer
	Options  *Options // nil means DefaultOptions
	Logger   *slog.Logger
}

// New builds an engine from explicit configuration. Field names outside the
// known canonical set are dropped with a warning: the standardized record
// is typed and cannot grow columns at runtime.
func New(p Params) *Engine {
	logger := p.Logger
	if logger == nil {
		logger = slog.Default()
	}

	known := make(map[string]struct{}, 10)
	for _, f := range DefaultFields() {
		known[f] = struct{}{}
	}

	fields := p.Fields
	if len(fields) == 0 {
		fields = DefaultFields()
	}
	kept := make([]string, 0, len(fields))
	for _, f := range fields {
		if _, ok := known[f]; !ok {
			logger.Warn("ignoring unknown canonical field", slog.String("field", f))
			continue
		}
		kept = append(kept, f)
	}

	scorer := p.Scorer
	if scorer == nil {
		scorer = TokenSortScorer{}
	}
	opts := DefaultOptions()
	if p.Options != nil {
		opts = *p.Options
	}

	return &Engine{
		fields: kept,
		vocab:  normalize.NewVocabulary(kept, p.Synonyms),
		rules:  p.Rules,
		scorer: scorer,
		opts:   opts,
		logger: logger,
	}
}

// Fields returns the target schema in output column order.
func (e *Engine) Fields() []string {
	out := make([]string, len(e.fields))
	copy(out, e.fields)
	return out
}
