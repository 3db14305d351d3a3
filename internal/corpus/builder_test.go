package corpus

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"traductor/internal/domain"
)

// stubEmbedder hashes texts into tiny deterministic vectors so the builder
// can run without a network.
type stubEmbedder struct {
	mu    sync.Mutex
	calls int
}

func (s *stubEmbedder) Embed(ctx context.Context, text string) (domain.QueryEmbedding, error) {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()
	vec := make([]float64, 4)
	for i, r := range text {
		vec[i%4] += float64(r)
	}
	return domain.QueryEmbedding{Embedding: vec, OriginalText: text, PreprocessedText: text}, nil
}

func (s *stubEmbedder) Dimension() int { return 4 }

func TestBuilderBuild(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "guide.md"), []byte(`# Greetings
Hola means hello.

## Farewells
Adiós means goodbye.
`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("Plain note."), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "empty.md"), []byte("  \n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ignored.json"), []byte("{}"), 0o644))

	emb := &stubEmbedder{}
	b := NewBuilder(emb, 4, nil)
	f, err := b.Build(context.Background(), dir, "stub-model")
	require.NoError(t, err)

	assert.Equal(t, "stub-model", f.Model)
	assert.Equal(t, 4, f.Dimension)
	assert.Len(t, f.Documents, 2)
	assert.Len(t, f.Sections, 3)
	assert.Len(t, f.Paragraphs, 3)
	assert.Equal(t, len(f.Documents)+len(f.Sections)+len(f.Paragraphs), emb.calls)

	// The result loads straight into a store.
	store, err := f.Store()
	require.NoError(t, err)
	assert.Equal(t, emb.calls, store.Len())
}

func TestBuilderEmptyDir(t *testing.T) {
	b := NewBuilder(&stubEmbedder{}, 2, nil)
	_, err := b.Build(context.Background(), t.TempDir(), "stub")
	assert.Error(t, err)
}

func TestBuilderProgress(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.md"), []byte("one paragraph only"), 0o644))

	var last int
	b := NewBuilder(&stubEmbedder{}, 1, func(done, total int) { last = done })
	f, err := b.Build(context.Background(), dir, "stub")
	require.NoError(t, err)
	total := len(f.Documents) + len(f.Sections) + len(f.Paragraphs)
	assert.Equal(t, total, last)
}
