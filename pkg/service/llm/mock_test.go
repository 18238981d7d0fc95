package llm_test

import (
	"context"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/edu-lab/mentor/pkg/service/llm"
)

func cosine(a, b []float32) float64 {
	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (na * nb)
}

func TestHashEmbeddingIsDeterministic(t *testing.T) {
	a := llm.HashEmbedding("pointers and arrays", 8)
	b := llm.HashEmbedding("pointers and arrays", 8)

	gt.Array(t, a).Length(8)
	gt.Value(t, a).Equal(b)
}

func TestHashEmbeddingSharedTokensScoreHigher(t *testing.T) {
	query := llm.HashEmbedding("pointer arithmetic in C", 8)
	related := llm.HashEmbedding("pointer arithmetic basics", 8)
	unrelated := llm.HashEmbedding("sorting networks overview", 8)

	gt.Bool(t, cosine(query, related) > cosine(query, unrelated)).True()
}

func TestMockRecordsCalls(t *testing.T) {
	m := &llm.Mock{}
	ctx := context.Background()

	_, err := m.Embed(ctx, "first text")
	gt.NoError(t, err).Required()
	_, err = m.Embed(ctx, "second text")
	gt.NoError(t, err).Required()

	answer, err := m.Generate(ctx, "a prompt")
	gt.NoError(t, err).Required()
	gt.Value(t, answer).Equal("mock answer")

	gt.Array(t, m.EmbedCalls()).Length(2)
	gt.Value(t, m.EmbedCalls()[0]).Equal("first text")
	gt.Array(t, m.GenerateCalls()).Length(1)
}

func TestNewRequiresClient(t *testing.T) {
	_, err := llm.New(nil)
	gt.Value(t, err).NotNil()
}
