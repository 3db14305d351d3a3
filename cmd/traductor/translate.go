package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"traductor/internal/domain"
	"traductor/internal/logger"
)

var (
	toSpanish   bool
	toEnglish   bool
	showContext bool
	minScore    float64
)

var translateCmd = &cobra.Command{
	Use:   "translate [text...]",
	Short: "Translate text once and print the result",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runTranslate,
}

func init() {
	translateCmd.Flags().BoolVar(&toSpanish, "es", false, "Translate English to Spanish (default)")
	translateCmd.Flags().BoolVar(&toEnglish, "en", false, "Translate Spanish to English")
	translateCmd.Flags().BoolVar(&showContext, "show-context", false, "Print the corpus passages used as context")
	translateCmd.Flags().Float64Var(&minScore, "min-score", 0, "Only print context passages at or above this score")
	rootCmd.AddCommand(translateCmd)
}

func runTranslate(cmd *cobra.Command, args []string) error {
	if toSpanish && toEnglish {
		return fmt.Errorf("--es and --en are mutually exclusive")
	}
	direction := domain.EnglishToSpanish
	if toEnglish {
		direction = domain.SpanishToEnglish
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := logger.New(cfg.Logging.File, cfg.Logging.Prod)
	defer log.Sync()

	orch, err := buildPipeline(cfg, log)
	if err != nil {
		return err
	}

	text := strings.Join(args, " ")
	result, err := orch.Translate(context.Background(), text, direction)
	if err != nil {
		return err
	}

	fmt.Println(result.TranslatedText)
	if showContext {
		fmt.Println()
		if len(result.ContextUsed) == 0 {
			fmt.Println("(no corpus context was used)")
			return nil
		}
		for i, c := range result.ContextUsed {
			if c.Score < minScore {
				continue
			}
			label := string(c.Item.Level)
			if c.Item.Title != "" {
				label += ": " + c.Item.Title
			}
			fmt.Printf("%d. [%s] score=%.3f id=%s\n", i+1, label, c.Score, c.Item.ID)
		}
	}
	return nil
}
