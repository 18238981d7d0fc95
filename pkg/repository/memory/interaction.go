package memory

import (
	"context"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/edu-lab/mentor/pkg/domain/interfaces"
	"github.com/edu-lab/mentor/pkg/domain/model"
	"github.com/edu-lab/mentor/pkg/domain/types"
)

type interactionRepository struct {
	mu      sync.RWMutex
	records map[types.RecordID]*model.Record
	order   []types.RecordID // append order, for deterministic iteration
}

func newInteractionRepository() *interactionRepository {
	return &interactionRepository{
		records: make(map[types.RecordID]*model.Record),
	}
}

func (r *interactionRepository) Append(ctx context.Context, record *model.Record) (*model.Record, error) {
	if err := record.Validate(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	created := record.Clone()
	if created.ID == "" {
		created.ID = types.NewRecordID()
	}
	created.CreatedAt = time.Now().UTC()

	r.records[created.ID] = created
	r.order = append(r.order, created.ID)

	return created.Clone(), nil
}

func (r *interactionRepository) Get(ctx context.Context, id types.RecordID) (*model.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, exists := r.records[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "record not found", goerr.V("recordID", id))
	}

	return rec.Clone(), nil
}

func (r *interactionRepository) Search(ctx context.Context, q interfaces.SearchQuery) ([]*model.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	type scored struct {
		record *model.Record
		score  float64
	}

	// Hard pre-filter: candidates failing the owner or tag filters are
	// excluded before any ranking happens.
	var candidates []scored
	for _, id := range r.order {
		rec := r.records[id]
		if !ownerMatches(rec.Owner, q.Owners) {
			continue
		}
		if !rec.Tags.Matches(q.Tags) {
			continue
		}
		if len(rec.Embedding) == 0 {
			continue
		}
		candidates = append(candidates, scored{
			record: rec.Clone(),
			score:  cosineSimilarity(q.Embedding, rec.Embedding),
		})
	}

	// Most similar first; equal scores ranked by newer CreatedAt
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].score != candidates[j].score {
			return candidates[i].score > candidates[j].score
		}
		return candidates[i].record.CreatedAt.After(candidates[j].record.CreatedAt)
	})

	limit := q.Limit
	if limit > len(candidates) {
		limit = len(candidates)
	}

	result := make([]*model.Record, limit)
	for i := 0; i < limit; i++ {
		result[i] = candidates[i].record
	}

	return result, nil
}

func ownerMatches(owner types.Owner, allowed []types.Owner) bool {
	if len(allowed) == 0 {
		return false
	}
	for _, a := range allowed {
		if owner == a {
			return true
		}
	}
	return false
}

func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	denom := math.Sqrt(normA) * math.Sqrt(normB)
	if denom == 0 {
		return 0
	}

	return dot / denom
}
