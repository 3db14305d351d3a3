package scoring

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"traductor/internal/domain"
)

func TestScoreCosineIdentity(t *testing.T) {
	s := NewScorer(false, nil)
	vecs := [][]float64{
		{1, 0, 0},
		{0.3, -0.7, 2.1},
		{-1, -1, -1, -1},
	}
	for _, v := range vecs {
		got, err := s.Score(v, v, domain.LevelParagraph)
		require.NoError(t, err)
		assert.InDelta(t, 1.0, got, 1e-9)
	}
}

func TestScoreZeroVector(t *testing.T) {
	s := NewScorer(false, nil)
	got, err := s.Score([]float64{1, 2, 3}, []float64{0, 0, 0}, domain.LevelDocument)
	require.NoError(t, err)
	assert.Equal(t, 0.0, got)

	got, err = s.Score([]float64{0, 0, 0}, []float64{1, 2, 3}, domain.LevelDocument)
	require.NoError(t, err)
	assert.Equal(t, 0.0, got)
}

func TestScoreDimensionMismatch(t *testing.T) {
	for _, advanced := range []bool{false, true} {
		s := NewScorer(advanced, nil)
		_, err := s.Score([]float64{1, 2}, []float64{1, 2, 3}, domain.LevelSection)
		var dm *domain.DimensionMismatchError
		require.ErrorAs(t, err, &dm)
		assert.Equal(t, 2, dm.Want)
		assert.Equal(t, 3, dm.Got)
	}
}

func TestScoreOppositeVectors(t *testing.T) {
	s := NewScorer(false, nil)
	got, err := s.Score([]float64{1, 1, 1}, []float64{-1, -1, -1}, domain.LevelParagraph)
	require.NoError(t, err)
	assert.InDelta(t, -1.0, got, 1e-9)
}

func TestAdvancedScoreDiffersFromCosine(t *testing.T) {
	basic := NewScorer(false, nil)
	advanced := NewScorer(true, nil)
	// A vector pair where the bands disagree, so weighting must shift the
	// score away from the plain cosine.
	query := []float64{1, 0, 0, 1, 0, 0, 1, 0, 0}
	cand := []float64{1, 0, 0, 0, 1, 0, 0, 0, 1}

	plain, err := basic.Score(query, cand, domain.LevelDocument)
	require.NoError(t, err)
	weighted, err := advanced.Score(query, cand, domain.LevelDocument)
	require.NoError(t, err)
	assert.Greater(t, math.Abs(plain-weighted), 1e-6)
}

func TestAdvancedScoreVariesByLevel(t *testing.T) {
	s := NewScorer(true, nil)
	query := []float64{1, 1, 0, 0.5, 0.5, 0, 0, 0, 1}
	cand := []float64{1, 0.9, 0, 0, 0.1, 0, 0, 0, -1}

	doc, err := s.Score(query, cand, domain.LevelDocument)
	require.NoError(t, err)
	para, err := s.Score(query, cand, domain.LevelParagraph)
	require.NoError(t, err)
	assert.Greater(t, math.Abs(doc-para), 1e-6)
}

func TestAdvancedScoreDeterministic(t *testing.T) {
	s := NewScorer(true, nil)
	query := []float64{0.1, 0.2, 0.3, 0.4, 0.5, 0.6}
	cand := []float64{0.6, 0.5, 0.4, 0.3, 0.2, 0.1}
	first, err := s.Score(query, cand, domain.LevelSection)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := s.Score(query, cand, domain.LevelSection)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestAdvancedScoreShortVectorFallsBack(t *testing.T) {
	basic := NewScorer(false, nil)
	advanced := NewScorer(true, nil)
	query := []float64{1, 2}
	cand := []float64{2, 1}
	plain, err := basic.Score(query, cand, domain.LevelDocument)
	require.NoError(t, err)
	weighted, err := advanced.Score(query, cand, domain.LevelDocument)
	require.NoError(t, err)
	assert.Equal(t, plain, weighted)
}

func TestCustomBandWeights(t *testing.T) {
	weights := BandWeights{
		domain.LevelParagraph: {1, 0, 0},
	}
	s := NewScorer(true, weights)
	// Only the first band counts: identical first thirds score 1 even
	// though the rest disagree.
	query := []float64{1, 0, 0, 1, 0, 0}
	cand := []float64{1, 0, 0, -1, 0, 0}
	got, err := s.Score(query, cand, domain.LevelParagraph)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, got, 1e-9)
}
