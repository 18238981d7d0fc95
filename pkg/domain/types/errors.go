package types

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors shared across layers. Callers match with errors.Is;
// each layer wraps these with goerr.Wrap to attach context values.
var (
	// ErrValidation indicates malformed input (empty text, unset owner,
	// or a query that alone exceeds the prompt budget). Nothing is persisted.
	ErrValidation = goerr.New("validation failed")

	// ErrEmbedding indicates the embedding provider failed or timed out.
	// The surrounding append/search is aborted with no partial Record.
	ErrEmbedding = goerr.New("embedding generation failed")

	// ErrGeneration indicates the text generator failed or timed out.
	// The exchange is not persisted.
	ErrGeneration = goerr.New("text generation failed")

	// ErrCapacityExceeded indicates prompt assembly could not fit within
	// the configured maximum even after truncation. Recoverable by dropping
	// snippets; only surfaced once even the bare query does not fit.
	ErrCapacityExceeded = goerr.New("prompt capacity exceeded")

	// ErrNotFound indicates a requested entity does not exist
	ErrNotFound = goerr.New("not found")
)
