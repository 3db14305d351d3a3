package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"traductor/internal/corpus"
)

var (
	indexOutput      string
	indexConcurrency int
)

var indexCmd = &cobra.Command{
	Use:   "index <docs-dir>",
	Short: "Build the pre-embedded corpus from a directory of markdown files",
	Long: `Index reads every .md and .txt file under the given directory, splits each
into document, section and paragraph passages, embeds all of them through the
configured embeddings provider and writes the corpus JSON artifact the
translator loads at startup.`,
	Args: cobra.ExactArgs(1),
	RunE: runIndex,
}

func init() {
	indexCmd.Flags().StringVarP(&indexOutput, "output", "o", "", "Output path (defaults to the configured corpus path)")
	indexCmd.Flags().IntVar(&indexConcurrency, "concurrency", 8, "Concurrent embedding requests")
	rootCmd.AddCommand(indexCmd)
}

func runIndex(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	out := indexOutput
	if out == "" {
		out = cfg.Corpus.Path
	}

	embedder, err := buildEmbedder(cfg)
	if err != nil {
		return err
	}

	builder := corpus.NewBuilder(embedder, indexConcurrency, func(done, total int) {
		fmt.Printf("\rEmbedding passages %d/%d", done, total)
	})
	file, err := builder.Build(context.Background(), args[0], cfg.Embedding.Model)
	if err != nil {
		fmt.Println()
		return err
	}
	fmt.Println()

	if err := corpus.Save(out, file); err != nil {
		return err
	}
	fmt.Printf("Corpus written to %s: %d documents, %d sections, %d paragraphs (dim=%d)\n",
		out, len(file.Documents), len(file.Sections), len(file.Paragraphs), file.Dimension)
	return nil
}
