package main

import (
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"traductor/internal/config"
	"traductor/internal/corpus"
	"traductor/internal/credential"
	"traductor/internal/domain"
	"traductor/internal/logger"
	"traductor/internal/provider"
	"traductor/internal/scoring"
	"traductor/internal/translate"
	"traductor/internal/tui"
)

var cfgPath string

var rootCmd = &cobra.Command{
	Use:   "traductor",
	Short: "Context-assisted English/Spanish translator",
	Long: `Traductor translates text between English and Spanish with help from a
pre-embedded reference corpus: the input is embedded, the most similar corpus
passages are retrieved and packed into a character budget, and the result is
sent as context to a chat-completion translation model.

Running without a subcommand opens the interactive TUI.`,
	RunE: runTUI,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "Path to YAML config file (uses ~/.config/traductor/config.yaml if not provided)")
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := logger.NewFileOnly(cfg.Logging.File)
	defer log.Sync()

	orch, err := buildPipeline(cfg, log)
	if err != nil {
		return err
	}
	m := tui.New(orch)
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		return err
	}
	return nil
}

func loadConfig() (*config.AppConfig, error) {
	if cfgPath == "" {
		cfg, _, err := config.LoadDefault()
		return cfg, err
	}
	return config.Load(cfgPath)
}

// credentialStore builds the file-backed credential store from config.
func credentialStore(cfg *config.AppConfig) (domain.CredentialStore, error) {
	path := cfg.Credential.Path
	if path == "" {
		var err error
		path, err = credential.DefaultPath()
		if err != nil {
			return nil, err
		}
	}
	return credential.NewFileStore(path, cfg.Credential.APIKeyEnv), nil
}

// buildEmbedder wires the embeddings client from config.
func buildEmbedder(cfg *config.AppConfig) (domain.Embedder, error) {
	creds, err := credentialStore(cfg)
	if err != nil {
		return nil, err
	}
	return provider.NewEmbeddingClient(creds, provider.EmbeddingConfig{
		BaseURL: cfg.Embedding.BaseURL,
		Model:   cfg.Embedding.Model,
		Timeout: time.Duration(cfg.Embedding.TimeoutSecs) * time.Second,
	}), nil
}

// buildPipeline assembles the full translation pipeline: corpus store,
// scorer, ranker and the two provider clients.
func buildPipeline(cfg *config.AppConfig, log *zap.Logger) (*translate.Orchestrator, error) {
	store, err := corpus.Load(cfg.Corpus.Path)
	if err != nil {
		return nil, fmt.Errorf("loading corpus %s: %w (run: traductor index <docs-dir>)", cfg.Corpus.Path, err)
	}
	log.Info("corpus loaded",
		zap.String("path", cfg.Corpus.Path),
		zap.Int("items", store.Len()),
		zap.Int("dimension", store.Dimension()))

	creds, err := credentialStore(cfg)
	if err != nil {
		return nil, err
	}
	embedder := provider.NewEmbeddingClient(creds, provider.EmbeddingConfig{
		BaseURL: cfg.Embedding.BaseURL,
		Model:   cfg.Embedding.Model,
		Timeout: time.Duration(cfg.Embedding.TimeoutSecs) * time.Second,
	})
	translator := provider.NewChatTranslator(creds, provider.TranslatorConfig{
		BaseURL:     cfg.Translation.BaseURL,
		Model:       cfg.Translation.Model,
		Timeout:     time.Duration(cfg.Translation.TimeoutSecs) * time.Second,
		Temperature: *cfg.Translation.Temperature,
	})

	scorer := scoring.NewScorer(cfg.Retrieval.Advanced, bandWeights(cfg))
	ranker := scoring.NewRanker(scorer, scoring.PriorityStrategy(cfg.Retrieval.PriorityStrategy), cfg.Retrieval.LevelBonus)
	return translate.New(embedder, translator, ranker, store, cfg.Retrieval.MaxContextLength, log), nil
}

func bandWeights(cfg *config.AppConfig) scoring.BandWeights {
	if len(cfg.Retrieval.BandWeights) == 0 {
		return nil
	}
	w := make(scoring.BandWeights, len(cfg.Retrieval.BandWeights))
	for level, bands := range cfg.Retrieval.BandWeights {
		w[domain.Level(level)] = bands
	}
	return w
}
