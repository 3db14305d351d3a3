package scoring

import (
	"sort"

	"traductor/internal/corpus"
	"traductor/internal/domain"
)

// PriorityStrategy biases which corpus level is favored when merging ranked
// results across levels.
type PriorityStrategy string

const (
	Balanced        PriorityStrategy = "balanced"
	DocumentsFirst  PriorityStrategy = "documents_first"
	ParagraphsFirst PriorityStrategy = "paragraphs_first"
)

// defaultLevelBonus is the additive boost applied to the favored level's
// effective score. Applied uniformly per level, so the relative order of two
// items of the same level never changes.
const defaultLevelBonus = 0.15

// Ranker scores every corpus item against a query and merges all three
// levels into one descending ranking.
type Ranker struct {
	scorer   *Scorer
	strategy PriorityStrategy
	bonus    float64
}

// NewRanker builds a ranker around a scorer. A non-positive bonus falls back
// to the default.
func NewRanker(scorer *Scorer, strategy PriorityStrategy, bonus float64) *Ranker {
	if strategy == "" {
		strategy = Balanced
	}
	if bonus <= 0 {
		bonus = defaultLevelBonus
	}
	return &Ranker{scorer: scorer, strategy: strategy, bonus: bonus}
}

// Rank scores all items across all levels and returns the merged ranking,
// descending by effective score. Ties keep corpus insertion order, so
// repeated queries against an unchanged corpus are byte-identical. No top-k
// cutoff is applied here; truncation is the budgeter's job.
func (r *Ranker) Rank(query []float64, store *corpus.Store) (domain.RankedContext, error) {
	if len(query) == 0 {
		return domain.RankedContext{}, domain.ErrEmptyInput
	}
	matches := make([]domain.ScoredMatch, 0, store.Len())
	effective := make([]float64, 0, store.Len())
	for _, level := range domain.Levels {
		boost := r.levelBonus(level)
		for _, item := range store.Items(level) {
			score, err := r.scorer.Score(query, item.Embedding, level)
			if err != nil {
				return domain.RankedContext{}, err
			}
			matches = append(matches, domain.ScoredMatch{Item: item, Score: score})
			effective = append(effective, score+boost)
		}
	}
	order := make([]int, len(matches))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return effective[order[i]] > effective[order[j]]
	})
	ranked := make([]domain.ScoredMatch, len(matches))
	for i, idx := range order {
		ranked[i] = matches[idx]
	}
	return domain.RankedContext{Matches: ranked}, nil
}

func (r *Ranker) levelBonus(level domain.Level) float64 {
	switch {
	case r.strategy == DocumentsFirst && level == domain.LevelDocument:
		return r.bonus
	case r.strategy == ParagraphsFirst && level == domain.LevelParagraph:
		return r.bonus
	}
	return 0
}
