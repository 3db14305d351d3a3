package scoring

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"traductor/internal/domain"
)

func match(id string, level domain.Level, text string, score float64) domain.ScoredMatch {
	return domain.ScoredMatch{
		Item:  domain.CorpusItem{ID: id, Level: level, Text: text},
		Score: score,
	}
}

func TestBudgetBestEffortPacking(t *testing.T) {
	// A large top-ranked item must not starve smaller lower-ranked items:
	// the walk skips what does not fit and keeps going.
	ranked := domain.RankedContext{Matches: []domain.ScoredMatch{
		match("1", domain.LevelDocument, strings.Repeat("x", 50), 0.9),
		match("2", domain.LevelParagraph, strings.Repeat("y", 10), 0.5),
	}}
	sel := Budget(ranked, 20)
	assert.Equal(t, 1, sel.TotalResults)
	assert.Equal(t, 10, sel.ContextLength)
	assert.Len(t, sel.Items, 1)
	assert.Equal(t, "2", sel.Items[0].Item.ID)
}

func TestBudgetKeepsRankedOrder(t *testing.T) {
	ranked := domain.RankedContext{Matches: []domain.ScoredMatch{
		match("a", domain.LevelParagraph, strings.Repeat("a", 5), 0.9),
		match("b", domain.LevelSection, strings.Repeat("b", 100), 0.8),
		match("c", domain.LevelParagraph, strings.Repeat("c", 5), 0.7),
		match("d", domain.LevelParagraph, strings.Repeat("d", 5), 0.6),
	}}
	sel := Budget(ranked, 12)
	assert.Equal(t, 2, sel.TotalResults)
	assert.Equal(t, 10, sel.ContextLength)
	assert.Equal(t, "a", sel.Items[0].Item.ID)
	assert.Equal(t, "c", sel.Items[1].Item.ID)
}

func TestBudgetExactFit(t *testing.T) {
	ranked := domain.RankedContext{Matches: []domain.ScoredMatch{
		match("a", domain.LevelParagraph, strings.Repeat("a", 20), 0.9),
	}}
	sel := Budget(ranked, 20)
	assert.Equal(t, 1, sel.TotalResults)
	assert.Equal(t, 20, sel.ContextLength)
}

func TestBudgetEmptyRanking(t *testing.T) {
	sel := Budget(domain.RankedContext{}, 100)
	assert.Zero(t, sel.TotalResults)
	assert.Zero(t, sel.ContextLength)
	assert.Empty(t, sel.Items)
}

func TestBudgetNothingFits(t *testing.T) {
	ranked := domain.RankedContext{Matches: []domain.ScoredMatch{
		match("a", domain.LevelDocument, strings.Repeat("a", 30), 0.9),
		match("b", domain.LevelSection, strings.Repeat("b", 25), 0.8),
	}}
	sel := Budget(ranked, 10)
	assert.Zero(t, sel.TotalResults)
	assert.Empty(t, sel.Items)
}

func TestBudgetCountsRunesNotBytes(t *testing.T) {
	// "cántaros y más" is 14 characters but longer in UTF-8 bytes; a
	// character budget of exactly 14 must still admit it.
	text := "cántaros y más"
	ranked := domain.RankedContext{Matches: []domain.ScoredMatch{
		match("a", domain.LevelParagraph, text, 0.9),
	}}
	sel := Budget(ranked, 14)
	assert.Equal(t, 1, sel.TotalResults)
	assert.Equal(t, 14, sel.ContextLength)

	// One character short and the item no longer fits.
	assert.Empty(t, Budget(ranked, 13).Items)
}

func TestBudgetNonPositiveBudget(t *testing.T) {
	ranked := domain.RankedContext{Matches: []domain.ScoredMatch{
		match("a", domain.LevelParagraph, "short", 0.9),
	}}
	assert.Empty(t, Budget(ranked, 0).Items)
	assert.Empty(t, Budget(ranked, -5).Items)
}
