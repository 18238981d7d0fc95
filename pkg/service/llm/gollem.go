package llm

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"

	"github.com/edu-lab/mentor/pkg/domain/interfaces"
	"github.com/edu-lab/mentor/pkg/domain/model"
	"github.com/edu-lab/mentor/pkg/domain/types"
)

// Default bounds on the two external suspension points
const (
	DefaultEmbedTimeout    = 15 * time.Second
	DefaultGenerateTimeout = 60 * time.Second
)

// Client adapts a gollem LLM client to the EmbeddingProvider and Generator
// interfaces. Both calls are bounded by a timeout; expiry surfaces as the
// corresponding typed error with nothing persisted by callers.
type Client struct {
	llm             gollem.LLMClient
	embedTimeout    time.Duration
	generateTimeout time.Duration
}

var (
	_ interfaces.EmbeddingProvider = &Client{}
	_ interfaces.Generator         = &Client{}
)

type Option func(*Client)

func WithEmbedTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.embedTimeout = d
	}
}

func WithGenerateTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.generateTimeout = d
	}
}

func New(llmClient gollem.LLMClient, opts ...Option) (*Client, error) {
	if llmClient == nil {
		return nil, goerr.New("LLM client is required")
	}

	c := &Client{
		llm:             llmClient,
		embedTimeout:    DefaultEmbedTimeout,
		generateTimeout: DefaultGenerateTimeout,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

func (c *Client) Embed(ctx context.Context, text string) ([]float32, error) {
	ctx, cancel := context.WithTimeout(ctx, c.embedTimeout)
	defer cancel()

	embeddings, err := c.llm.GenerateEmbedding(ctx, model.EmbeddingDimension, []string{text})
	if err != nil {
		return nil, goerr.Wrap(types.ErrEmbedding, "embedding call failed",
			goerr.V("error", err.Error()))
	}
	if len(embeddings) == 0 || len(embeddings[0]) == 0 {
		return nil, goerr.Wrap(types.ErrEmbedding, "embedding call returned empty result")
	}

	embedding64 := embeddings[0]
	embedding32 := make([]float32, len(embedding64))
	for i, v := range embedding64 {
		embedding32[i] = float32(v)
	}
	return embedding32, nil
}

func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.generateTimeout)
	defer cancel()

	session, err := c.llm.NewSession(ctx)
	if err != nil {
		return "", goerr.Wrap(types.ErrGeneration, "failed to create LLM session",
			goerr.V("error", err.Error()))
	}

	resp, err := session.GenerateContent(ctx, gollem.Text(prompt))
	if err != nil {
		return "", goerr.Wrap(types.ErrGeneration, "generation call failed",
			goerr.V("error", err.Error()))
	}
	if len(resp.Texts) == 0 || resp.Texts[0] == "" {
		return "", goerr.Wrap(types.ErrGeneration, "generation call returned empty result")
	}

	return resp.Texts[0], nil
}
