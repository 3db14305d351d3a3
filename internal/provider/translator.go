package provider

import (
	"context"
	"errors"
	"os"
	"sync"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"traductor/internal/domain"
)

// ChatTranslator sends assembled translation prompts to an
// OpenAI-compatible chat completions endpoint. Like the embeddings client,
// it resolves the API key from the credential store on every call.
type ChatTranslator struct {
	creds domain.CredentialStore
	cfg   TranslatorConfig

	mu        sync.Mutex
	client    *openai.Client
	clientKey string
}

// TranslatorConfig configures the chat translation client.
type TranslatorConfig struct {
	BaseURL     string
	Model       string
	Timeout     time.Duration
	Temperature float32
}

// NewChatTranslator builds a translation client.
func NewChatTranslator(creds domain.CredentialStore, cfg TranslatorConfig) *ChatTranslator {
	if cfg.Model == "" {
		cfg.Model = openai.GPT4oMini
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 60 * time.Second
	}
	return &ChatTranslator{creds: creds, cfg: cfg}
}

// Translate sends the prompt and returns the model's reply. No retries at
// this layer.
func (t *ChatTranslator) Translate(ctx context.Context, prompt string) (string, error) {
	client, err := t.resolve()
	if err != nil {
		return "", err
	}
	ctx, cancel := context.WithTimeout(ctx, t.cfg.Timeout)
	defer cancel()
	resp, err := client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       t.cfg.Model,
		Temperature: t.cfg.Temperature,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", classify("translation", err)
	}
	if len(resp.Choices) == 0 {
		return "", &domain.ProviderError{Provider: "translation", Detail: "no completion returned"}
	}
	return resp.Choices[0].Message.Content, nil
}

// Model returns the configured chat model name.
func (t *ChatTranslator) Model() string { return t.cfg.Model }

func (t *ChatTranslator) resolve() (*openai.Client, error) {
	key, err := t.creds.Get()
	if err != nil {
		return nil, err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.client == nil || key != t.clientKey {
		cc := openai.DefaultConfig(key)
		if t.cfg.BaseURL != "" {
			cc.BaseURL = t.cfg.BaseURL
		}
		t.client = openai.NewClientWithConfig(cc)
		t.clientKey = key
	}
	return t.client, nil
}

// classify maps transport and API failures onto the shared error taxonomy,
// keeping timeouts distinguishable from non-2xx responses.
func classify(provider string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, os.ErrDeadlineExceeded) {
		return &domain.ProviderError{Provider: provider, Detail: "request timed out", Err: err}
	}
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return &domain.ProviderError{Provider: provider, Detail: apiErr.Message, Err: err}
	}
	return &domain.ProviderError{Provider: provider, Detail: "request failed", Err: err}
}
