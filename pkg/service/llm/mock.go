package llm

import (
	"context"
	"hash/fnv"
	"sync"

	"github.com/edu-lab/mentor/pkg/domain/interfaces"
)

// Mock implements EmbeddingProvider and Generator for tests. Without
// custom funcs it embeds deterministically (token-hash buckets, so texts
// sharing words land near each other) and answers with a fixed string.
type Mock struct {
	EmbedFunc    func(ctx context.Context, text string) ([]float32, error)
	GenerateFunc func(ctx context.Context, prompt string) (string, error)

	mu            sync.Mutex
	embedCalls    []string
	generateCalls []string
}

var (
	_ interfaces.EmbeddingProvider = &Mock{}
	_ interfaces.Generator         = &Mock{}
)

func (m *Mock) Embed(ctx context.Context, text string) ([]float32, error) {
	m.mu.Lock()
	m.embedCalls = append(m.embedCalls, text)
	m.mu.Unlock()

	if m.EmbedFunc != nil {
		return m.EmbedFunc(ctx, text)
	}
	return HashEmbedding(text, 8), nil
}

func (m *Mock) Generate(ctx context.Context, prompt string) (string, error) {
	m.mu.Lock()
	m.generateCalls = append(m.generateCalls, prompt)
	m.mu.Unlock()

	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, prompt)
	}
	return "mock answer", nil
}

// EmbedCalls returns the texts passed to Embed, in call order
func (m *Mock) EmbedCalls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string{}, m.embedCalls...)
}

// GenerateCalls returns the prompts passed to Generate, in call order
func (m *Mock) GenerateCalls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string{}, m.generateCalls...)
}

// HashEmbedding maps each whitespace-separated token to a bucket of a
// dim-length vector. Deterministic, and texts sharing tokens score higher
// cosine similarity than disjoint ones.
func HashEmbedding(text string, dim int) []float32 {
	vec := make([]float32, dim)
	start := -1
	for i := 0; i <= len(text); i++ {
		if i < len(text) && text[i] != ' ' && text[i] != '\n' && text[i] != '\t' {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			h := fnv.New32a()
			_, _ = h.Write([]byte(text[start:i]))
			vec[int(h.Sum32())%dim]++
			start = -1
		}
	}
	return vec
}
