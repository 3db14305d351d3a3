package domain

import "context"

// Level identifies the granularity of a corpus item.
type Level string

const (
	LevelDocument  Level = "document"
	LevelSection   Level = "section"
	LevelParagraph Level = "paragraph"
)

// Levels lists all corpus levels in coarse-to-fine order.
var Levels = []Level{LevelDocument, LevelSection, LevelParagraph}

// CorpusItem is a single pre-embedded passage of reference material.
// Items are immutable after corpus load.
type CorpusItem struct {
	ID         string
	Level      Level
	Embedding  []float64
	Text       string
	Title      string
	DocumentID string
}

// ScoredMatch pairs a corpus item with its similarity score for one query.
type ScoredMatch struct {
	Item  CorpusItem
	Score float64
}

// RankedContext is the full merged ranking across all levels, descending by
// effective score. Produced fresh per query, never persisted.
type RankedContext struct {
	Matches []ScoredMatch
}

// ContextSelection is the budget-filtered prefix of a ranking that will be
// sent along with a translation request.
type ContextSelection struct {
	Items         []ScoredMatch
	TotalResults  int
	ContextLength int
}

// QueryEmbedding is the embedded form of the user's input text.
type QueryEmbedding struct {
	Embedding        []float64
	OriginalText     string
	PreprocessedText string
}

// Direction describes the requested translation languages.
type Direction struct {
	Source string
	Target string
}

// EnglishToSpanish and SpanishToEnglish are the two supported directions.
var (
	EnglishToSpanish = Direction{Source: "English", Target: "Spanish"}
	SpanishToEnglish = Direction{Source: "Spanish", Target: "English"}
)

// Reverse returns the opposite direction.
func (d Direction) Reverse() Direction {
	return Direction{Source: d.Target, Target: d.Source}
}

func (d Direction) String() string {
	return d.Source + " → " + d.Target
}

// TranslationResult is what the orchestrator hands back to the presentation
// layer after a completed pipeline run.
type TranslationResult struct {
	TranslatedText string
	ContextUsed    []ScoredMatch
	Metadata       ResultMetadata
}

// ResultMetadata carries bookkeeping about a single pipeline run.
type ResultMetadata struct {
	RequestID     string
	Direction     Direction
	TotalResults  int
	ContextLength int
	Model         string
}

// Embedder converts free text into a numeric vector representation.
type Embedder interface {
	Embed(ctx context.Context, text string) (QueryEmbedding, error)
	Dimension() int
}

// Translator sends an assembled prompt to the translation backend and
// returns the translated text.
type Translator interface {
	Translate(ctx context.Context, prompt string) (string, error)
	Model() string
}

// CredentialStore persists the provider API key across runs.
type CredentialStore interface {
	Get() (string, error)
	Set(key string) error
}
