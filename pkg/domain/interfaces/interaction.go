package interfaces

import (
	"context"

	"github.com/edu-lab/mentor/pkg/domain/model"
	"github.com/edu-lab/mentor/pkg/domain/types"
)

// SearchQuery describes one similarity search over the interaction store.
// Owners and Tags are hard pre-filters: candidates failing them are excluded
// before ranking, never ranked and dropped. This is what makes the user
// isolation invariant independently testable instead of incidental to
// filter syntax.
type SearchQuery struct {
	Embedding []float32
	Owners    []types.Owner
	Tags      types.Tags
	Limit     int
}

// InteractionRepository is the append-only long-term memory store
type InteractionRepository interface {
	// Append validates and stores a new Record, assigning its ID and
	// CreatedAt. The stored Record becomes visible to readers atomically.
	Append(ctx context.Context, record *model.Record) (*model.Record, error)

	// Search returns up to Limit Records matching the hard filters, ordered
	// by cosine similarity to the query embedding (most similar first),
	// ties broken by newer CreatedAt. Returns an empty slice when nothing
	// matches; ranking is deterministic for identical inputs and contents.
	Search(ctx context.Context, q SearchQuery) ([]*model.Record, error)

	// Get retrieves a Record by ID
	Get(ctx context.Context, id types.RecordID) (*model.Record, error)
}

// UserRepository stores student profiles
type UserRepository interface {
	Create(ctx context.Context, user *model.UserProfile) (*model.UserProfile, error)
	Get(ctx context.Context, id types.UserID) (*model.UserProfile, error)
	Update(ctx context.Context, user *model.UserProfile) error
}
