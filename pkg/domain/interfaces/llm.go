package interfaces

import "context"

// EmbeddingProvider maps text to a fixed-dimension vector. Failures
// (including deadline expiry) surface as types.ErrEmbedding.
type EmbeddingProvider interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Generator is the opaque text-completion capability. Failures and
// timeouts surface as types.ErrGeneration.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
