package corpus

import (
	"encoding/json"
	"fmt"
	"os"

	"traductor/internal/domain"
)

// File is the on-disk corpus format produced by the index command: one JSON
// document holding all three levels of pre-computed embeddings.
type File struct {
	Model      string `json:"model"`
	Dimension  int    `json:"dimension"`
	Documents  []Item `json:"documents"`
	Sections   []Item `json:"sections"`
	Paragraphs []Item `json:"paragraphs"`
}

// Item is a single corpus entry as serialized in the corpus file.
type Item struct {
	ID         string    `json:"id"`
	Title      string    `json:"title,omitempty"`
	DocumentID string    `json:"document_id,omitempty"`
	Text       string    `json:"text"`
	Embedding  []float64 `json:"embedding"`
}

// Load reads and validates a corpus file and returns a ready Store.
func Load(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading corpus: %w", err)
	}
	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing corpus: %w", err)
	}
	return f.Store()
}

// Store converts the parsed file into a validated Store.
func (f *File) Store() (*Store, error) {
	if f.Dimension <= 0 {
		return nil, fmt.Errorf("corpus declares no dimension")
	}
	return NewStore(f.Dimension,
		toItems(f.Documents, domain.LevelDocument),
		toItems(f.Sections, domain.LevelSection),
		toItems(f.Paragraphs, domain.LevelParagraph))
}

// Save writes the corpus file to disk.
func Save(path string, f *File) error {
	data, err := json.Marshal(f)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func toItems(entries []Item, level domain.Level) []domain.CorpusItem {
	items := make([]domain.CorpusItem, len(entries))
	for i, e := range entries {
		items[i] = domain.CorpusItem{
			ID:         e.ID,
			Level:      level,
			Embedding:  e.Embedding,
			Text:       e.Text,
			Title:      e.Title,
			DocumentID: e.DocumentID,
		}
	}
	return items
}
