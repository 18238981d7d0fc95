package usecase

import (
	"github.com/edu-lab/mentor/pkg/domain/interfaces"
	"github.com/edu-lab/mentor/pkg/service/window"
)

// Defaults for context assembly
const (
	// DefaultRetrieveLimit is K: how many long-term records are retrieved
	// per exchange
	DefaultRetrieveLimit = 5

	// DefaultMaxContextLen bounds the rendered context block, in bytes.
	// Characters rather than tokens: deterministic and tokenizer-free.
	DefaultMaxContextLen = 8000
)

// UseCases wires the tutoring pipeline: retrieval over the interaction
// store, the per-session conversation windows, and the external embedding
// and generation capabilities.
type UseCases struct {
	repo      interfaces.Repository
	embedder  interfaces.EmbeddingProvider
	generator interfaces.Generator
	windows   *window.Manager

	retrieveLimit int
	maxContextLen int
}

type Option func(*UseCases)

// WithRetrieveLimit overrides K, the number of retrieved snippets
func WithRetrieveLimit(k int) Option {
	return func(uc *UseCases) {
		if k > 0 {
			uc.retrieveLimit = k
		}
	}
}

// WithMaxContextLen overrides the rendered context budget in bytes
func WithMaxContextLen(n int) Option {
	return func(uc *UseCases) {
		if n > 0 {
			uc.maxContextLen = n
		}
	}
}

// WithWindowCapacity overrides W, the turn capacity per (user, session)
func WithWindowCapacity(w int) Option {
	return func(uc *UseCases) {
		uc.windows = window.New(w)
	}
}

func New(repo interfaces.Repository, embedder interfaces.EmbeddingProvider, generator interfaces.Generator, opts ...Option) *UseCases {
	uc := &UseCases{
		repo:          repo,
		embedder:      embedder,
		generator:     generator,
		windows:       window.New(window.DefaultCapacity),
		retrieveLimit: DefaultRetrieveLimit,
		maxContextLen: DefaultMaxContextLen,
	}

	for _, opt := range opts {
		opt(uc)
	}

	return uc
}
