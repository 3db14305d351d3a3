package provider

import (
	"context"
	"strings"
	"sync"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"traductor/internal/domain"
)

// EmbeddingClient produces query embeddings via an OpenAI-compatible
// embeddings endpoint. The API key is resolved from the credential store on
// every call, so a key set mid-session takes effect without a restart and a
// missing key fails fast before any network traffic.
//
// The client is safe for concurrent use: the corpus builder embeds passages
// from multiple goroutines.
type EmbeddingClient struct {
	creds domain.CredentialStore
	cfg   EmbeddingConfig

	mu        sync.Mutex
	client    *openai.Client
	clientKey string
	dimension int
}

// EmbeddingConfig configures the embeddings client.
type EmbeddingConfig struct {
	BaseURL string
	Model   string
	Timeout time.Duration
}

// NewEmbeddingClient builds an embeddings client.
func NewEmbeddingClient(creds domain.CredentialStore, cfg EmbeddingConfig) *EmbeddingClient {
	if cfg.Model == "" {
		cfg.Model = string(openai.SmallEmbedding3)
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &EmbeddingClient{creds: creds, cfg: cfg}
}

// Embed returns the embedding vector for the given text. The input is
// whitespace-normalized before being sent; both forms are kept on the
// result. Embeddings are not cached: the same text submitted twice is
// embedded twice.
func (c *EmbeddingClient) Embed(ctx context.Context, text string) (domain.QueryEmbedding, error) {
	pre := preprocess(text)
	if pre == "" {
		return domain.QueryEmbedding{}, domain.ErrEmptyInput
	}
	client, err := c.resolve()
	if err != nil {
		return domain.QueryEmbedding{}, err
	}
	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()
	resp, err := client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Model: openai.EmbeddingModel(c.cfg.Model),
		Input: []string{pre},
	})
	if err != nil {
		return domain.QueryEmbedding{}, classify("embedding", err)
	}
	if len(resp.Data) == 0 || len(resp.Data[0].Embedding) == 0 {
		return domain.QueryEmbedding{}, &domain.ProviderError{Provider: "embedding", Detail: "no embedding returned"}
	}
	v32 := resp.Data[0].Embedding
	vec := make([]float64, len(v32))
	for i, f := range v32 {
		vec[i] = float64(f)
	}
	c.mu.Lock()
	if c.dimension == 0 {
		c.dimension = len(vec)
	}
	c.mu.Unlock()
	return domain.QueryEmbedding{
		Embedding:        vec,
		OriginalText:     text,
		PreprocessedText: pre,
	}, nil
}

// Dimension returns the dimensionality seen on the first embed, or 0 before
// any call.
func (c *EmbeddingClient) Dimension() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dimension
}

// resolve fetches the API key and rebuilds the underlying client if the key
// changed since the last call.
func (c *EmbeddingClient) resolve() (*openai.Client, error) {
	key, err := c.creds.Get()
	if err != nil {
		return nil, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.client == nil || key != c.clientKey {
		cc := openai.DefaultConfig(key)
		if c.cfg.BaseURL != "" {
			cc.BaseURL = c.cfg.BaseURL
		}
		c.client = openai.NewClientWithConfig(cc)
		c.clientKey = key
	}
	return c.client, nil
}

// preprocess collapses runs of whitespace into single spaces and trims the
// ends.
func preprocess(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
