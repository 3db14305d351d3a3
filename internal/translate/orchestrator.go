package translate

import (
	"context"
	"strings"
	"sync/atomic"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"traductor/internal/corpus"
	"traductor/internal/domain"
	"traductor/internal/scoring"
)

// Orchestrator runs the translation pipeline: embed the input, rank the
// corpus against it, pack the ranking into the context budget, and send the
// assembled prompt to the translation backend. It never mutates the corpus
// store.
type Orchestrator struct {
	embedder   domain.Embedder
	translator domain.Translator
	ranker     *scoring.Ranker
	store      *corpus.Store
	maxContext int
	log        *zap.Logger

	generation atomic.Uint64
}

// New wires the pipeline components together.
func New(embedder domain.Embedder, translator domain.Translator, ranker *scoring.Ranker, store *corpus.Store, maxContextLength int, log *zap.Logger) *Orchestrator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Orchestrator{
		embedder:   embedder,
		translator: translator,
		ranker:     ranker,
		store:      store,
		maxContext: maxContextLength,
		log:        log,
	}
}

// Begin registers a new pipeline run and returns its generation token. A
// caller that allows overlapping requests checks Stale before applying a
// completed result, so a late response from an earlier run never overwrites
// a newer one.
func (o *Orchestrator) Begin() uint64 {
	return o.generation.Add(1)
}

// Stale reports whether the given generation has been superseded by a newer
// Begin.
func (o *Orchestrator) Stale(gen uint64) bool {
	return gen != o.generation.Load()
}

// Translate runs one full pipeline pass. Failures are tagged with the stage
// they occurred in. An empty context selection is not a failure: the
// translation proceeds unassisted with ContextUsed empty.
func (o *Orchestrator) Translate(ctx context.Context, sourceText string, direction domain.Direction) (domain.TranslationResult, error) {
	requestID := uuid.NewString()
	if strings.TrimSpace(sourceText) == "" {
		return domain.TranslationResult{}, &domain.StageError{Stage: domain.StageEmbedding, Err: domain.ErrEmptyInput}
	}

	query, err := o.embedder.Embed(ctx, sourceText)
	if err != nil {
		return domain.TranslationResult{}, &domain.StageError{Stage: domain.StageEmbedding, Err: err}
	}

	ranked, err := o.ranker.Rank(query.Embedding, o.store)
	if err != nil {
		return domain.TranslationResult{}, &domain.StageError{Stage: domain.StageRanking, Err: err}
	}

	selection := scoring.Budget(ranked, o.maxContext)
	if selection.TotalResults == 0 {
		o.log.Info("no context fit the budget, translating unassisted",
			zap.String("request_id", requestID),
			zap.Int("ranked", len(ranked.Matches)))
	}

	prompt := NewPromptBuilder(sourceText, selection, direction).Build()
	translated, err := o.translator.Translate(ctx, prompt)
	if err != nil {
		return domain.TranslationResult{}, &domain.StageError{Stage: domain.StageTranslation, Err: err}
	}

	o.log.Info("translation completed",
		zap.String("request_id", requestID),
		zap.String("direction", direction.String()),
		zap.Int("context_items", selection.TotalResults),
		zap.Int("context_chars", selection.ContextLength))

	contextUsed := selection.Items
	if contextUsed == nil {
		contextUsed = []domain.ScoredMatch{}
	}
	return domain.TranslationResult{
		TranslatedText: translated,
		ContextUsed:    contextUsed,
		Metadata: domain.ResultMetadata{
			RequestID:     requestID,
			Direction:     direction,
			TotalResults:  selection.TotalResults,
			ContextLength: selection.ContextLength,
			Model:         o.translator.Model(),
		},
	}, nil
}
