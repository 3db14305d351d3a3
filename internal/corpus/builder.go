package corpus

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"traductor/internal/domain"
)

// Builder turns a directory of markdown files into the pre-embedded corpus
// artifact consumed at startup.
type Builder struct {
	embedder    domain.Embedder
	concurrency int
	progress    func(done, total int)
}

// NewBuilder creates a corpus builder. progress may be nil.
func NewBuilder(embedder domain.Embedder, concurrency int, progress func(done, total int)) *Builder {
	if concurrency <= 0 {
		concurrency = 8
	}
	return &Builder{embedder: embedder, concurrency: concurrency, progress: progress}
}

// Build reads every .md and .txt file under dir, splits each into the three
// corpus levels, embeds all passages and returns the assembled corpus file.
func (b *Builder) Build(ctx context.Context, dir, model string) (*File, error) {
	paths, err := collectFiles(dir)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no .md or .txt files under %s", dir)
	}

	var docs, secs, paras []Source
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		if strings.TrimSpace(string(data)) == "" {
			continue
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			rel = path
		}
		docID := strings.TrimSuffix(rel, filepath.Ext(rel))
		title := filepath.Base(docID)
		d, s, p := Split(docID, title, string(data))
		docs = append(docs, d)
		secs = append(secs, s...)
		paras = append(paras, p...)
	}

	all := make([]Source, 0, len(docs)+len(secs)+len(paras))
	all = append(all, docs...)
	all = append(all, secs...)
	all = append(all, paras...)

	if len(all) == 0 {
		return nil, fmt.Errorf("no non-empty documents under %s", dir)
	}
	vectors, err := b.embedAll(ctx, all)
	if err != nil {
		return nil, err
	}

	f := &File{Model: model, Dimension: len(vectors[0])}
	i := 0
	for range docs {
		f.Documents = append(f.Documents, toEntry(all[i], vectors[i]))
		i++
	}
	for range secs {
		f.Sections = append(f.Sections, toEntry(all[i], vectors[i]))
		i++
	}
	for range paras {
		f.Paragraphs = append(f.Paragraphs, toEntry(all[i], vectors[i]))
		i++
	}
	for _, v := range vectors {
		if len(v) != f.Dimension {
			return nil, &domain.DimensionMismatchError{Want: f.Dimension, Got: len(v)}
		}
	}
	return f, nil
}

// embedAll embeds every passage with bounded concurrency, preserving order.
func (b *Builder) embedAll(ctx context.Context, sources []Source) ([][]float64, error) {
	vectors := make([][]float64, len(sources))
	errs := make([]error, len(sources))
	sem := make(chan struct{}, b.concurrency)
	var wg sync.WaitGroup
	var mu sync.Mutex
	done := 0

	for i := range sources {
		sem <- struct{}{}
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			defer func() { <-sem }()
			q, err := b.embedder.Embed(ctx, sources[idx].Text)
			if err != nil {
				errs[idx] = fmt.Errorf("embedding %s: %w", sources[idx].ID, err)
				return
			}
			vectors[idx] = q.Embedding
			mu.Lock()
			done++
			if b.progress != nil {
				b.progress(done, len(sources))
			}
			mu.Unlock()
		}(i)
	}
	wg.Wait()
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return vectors, nil
}

func collectFiles(dir string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		switch strings.ToLower(filepath.Ext(path)) {
		case ".md", ".txt":
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)
	return paths, nil
}

func toEntry(s Source, vec []float64) Item {
	return Item{
		ID:         s.ID,
		Title:      s.Title,
		DocumentID: s.DocumentID,
		Text:       s.Text,
		Embedding:  vec,
	}
}
