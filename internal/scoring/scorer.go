package scoring

import (
	"math"

	"traductor/internal/domain"
)

// BandWeights holds the per-level weighting applied in advanced mode. The
// query and candidate vectors are split into three contiguous bands and the
// per-band cosines are combined with these weights, so coarse levels can
// favor different regions of the embedding space than fine ones.
type BandWeights map[domain.Level][3]float64

// DefaultBandWeights biases document scoring toward the leading bands and
// paragraph scoring toward the trailing ones, with sections in between.
func DefaultBandWeights() BandWeights {
	return BandWeights{
		domain.LevelDocument:  {0.5, 0.3, 0.2},
		domain.LevelSection:   {0.34, 0.33, 0.33},
		domain.LevelParagraph: {0.2, 0.3, 0.5},
	}
}

// Scorer computes similarity between a query embedding and corpus
// embeddings. It is a pure function of (query, candidate, level): the same
// inputs always produce the same score.
type Scorer struct {
	advanced bool
	weights  BandWeights
}

// NewScorer builds a scorer. With advanced=false it computes plain cosine
// similarity; with advanced=true it applies per-level band weighting. Nil
// weights fall back to the defaults.
func NewScorer(advanced bool, weights BandWeights) *Scorer {
	if weights == nil {
		weights = DefaultBandWeights()
	}
	return &Scorer{advanced: advanced, weights: weights}
}

// Score computes the similarity of query and candidate at the given level.
// Vectors of different length are a hard error. A zero-magnitude vector on
// either side yields 0, since it carries no directional information.
func (s *Scorer) Score(query, candidate []float64, level domain.Level) (float64, error) {
	if len(query) != len(candidate) {
		return 0, &domain.DimensionMismatchError{Want: len(query), Got: len(candidate)}
	}
	if !s.advanced {
		return cosine(query, candidate), nil
	}
	return s.bandScore(query, candidate, level), nil
}

// bandScore splits both vectors into three contiguous bands, computes the
// cosine of each band pair and combines them with the level's weights.
func (s *Scorer) bandScore(query, candidate []float64, level domain.Level) float64 {
	w, ok := s.weights[level]
	if !ok {
		return cosine(query, candidate)
	}
	n := len(query)
	if n < 3 {
		return cosine(query, candidate)
	}
	third := n / 3
	bounds := [4]int{0, third, 2 * third, n}
	var sum, wsum float64
	for b := 0; b < 3; b++ {
		lo, hi := bounds[b], bounds[b+1]
		sum += w[b] * cosine(query[lo:hi], candidate[lo:hi])
		wsum += w[b]
	}
	if wsum == 0 {
		return 0
	}
	return sum / wsum
}

// cosine returns the cosine similarity of two equal-length vectors, or 0 if
// either has zero magnitude.
func cosine(a, b []float64) float64 {
	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
