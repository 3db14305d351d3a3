package corpus

import (
	"errors"

	"traductor/internal/domain"
)

// Store holds the three pre-embedded corpus collections in memory. It is
// populated once at startup and read-only afterwards, so queries need no
// locking.
type Store struct {
	dimension  int
	documents  []domain.CorpusItem
	sections   []domain.CorpusItem
	paragraphs []domain.CorpusItem
}

// NewStore validates the loaded collections and builds a store. Every
// embedding must match the declared dimension; insertion order is preserved
// per level because ranking uses it for stable tie-breaking.
func NewStore(dimension int, documents, sections, paragraphs []domain.CorpusItem) (*Store, error) {
	if dimension <= 0 {
		return nil, errors.New("invalid corpus dimension")
	}
	s := &Store{
		dimension:  dimension,
		documents:  documents,
		sections:   sections,
		paragraphs: paragraphs,
	}
	for _, items := range [][]domain.CorpusItem{documents, sections, paragraphs} {
		for _, it := range items {
			if len(it.Embedding) != dimension {
				return nil, &domain.DimensionMismatchError{Want: dimension, Got: len(it.Embedding)}
			}
		}
	}
	return s, nil
}

// Dimension returns the embedding dimension shared by all corpus items.
func (s *Store) Dimension() int { return s.dimension }

// Items returns the collection for one level in corpus file order.
func (s *Store) Items(level domain.Level) []domain.CorpusItem {
	switch level {
	case domain.LevelDocument:
		return s.documents
	case domain.LevelSection:
		return s.sections
	case domain.LevelParagraph:
		return s.paragraphs
	}
	return nil
}

// Len reports the total number of items across all levels.
func (s *Store) Len() int {
	return len(s.documents) + len(s.sections) + len(s.paragraphs)
}
