package model

import (
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/edu-lab/mentor/pkg/domain/types"
)

// EmbeddingDimension is the dimension of the embedding vector.
// Gemini text-embedding-004 uses 768 dimensions.
const EmbeddingDimension = 768

// Record is one unit of long-term memory: a stored utterance or lesson
// fragment with its embedding and owner scope. Records are append-only;
// the owner is immutable after creation.
type Record struct {
	ID        types.RecordID
	Text      string
	Embedding []float32
	Owner     types.Owner
	Tags      types.Tags
	CreatedAt time.Time // tie-breaking in search ranking only, never expiry
}

// Validate checks the invariants required before a Record may be appended
func (r *Record) Validate() error {
	if r.Text == "" {
		return goerr.Wrap(types.ErrValidation, "record text is empty")
	}
	if r.Owner == "" {
		return goerr.Wrap(types.ErrValidation, "record owner is unset")
	}
	return nil
}

// Clone returns a deep copy so that repository internals never share
// mutable state with callers
func (r *Record) Clone() *Record {
	c := &Record{
		ID:        r.ID,
		Text:      r.Text,
		Owner:     r.Owner,
		Tags:      r.Tags.Clone(),
		CreatedAt: r.CreatedAt,
	}
	if r.Embedding != nil {
		c.Embedding = make([]float32, len(r.Embedding))
		copy(c.Embedding, r.Embedding)
	}
	return c
}
