package firestore

import (
	"context"
	"sort"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/edu-lab/mentor/pkg/domain/interfaces"
	"github.com/edu-lab/mentor/pkg/domain/model"
	"github.com/edu-lab/mentor/pkg/domain/types"
)

const interactionsCollection = "interactions"

// distanceField receives the cosine distance of each vector search hit,
// used for deterministic tie-breaking by CreatedAt.
const distanceField = "vector_distance"

// recordDoc is the Firestore document representation of model.Record.
// Embedding is stored as firestore.Vector32 for FindNearest vector search.
type recordDoc struct {
	ID        types.RecordID    `firestore:"id"`
	Text      string            `firestore:"text"`
	Embedding firestore.Vector32 `firestore:"embedding,omitempty"`
	Owner     string            `firestore:"owner"`
	Tags      map[string]string `firestore:"tags,omitempty"`
	CreatedAt time.Time         `firestore:"created_at"`

	Distance float64 `firestore:"vector_distance,omitempty"`
}

func toRecordDoc(r *model.Record) *recordDoc {
	doc := &recordDoc{
		ID:        r.ID,
		Text:      r.Text,
		Owner:     string(r.Owner),
		CreatedAt: r.CreatedAt,
	}
	if len(r.Embedding) > 0 {
		doc.Embedding = firestore.Vector32(r.Embedding)
	}
	if len(r.Tags) > 0 {
		doc.Tags = make(map[string]string, len(r.Tags))
		for k, v := range r.Tags {
			doc.Tags[string(k)] = v
		}
	}
	return doc
}

func fromRecordDoc(d *recordDoc) *model.Record {
	r := &model.Record{
		ID:        d.ID,
		Text:      d.Text,
		Owner:     types.Owner(d.Owner),
		CreatedAt: d.CreatedAt,
	}
	if len(d.Embedding) > 0 {
		r.Embedding = []float32(d.Embedding)
	}
	if len(d.Tags) > 0 {
		r.Tags = make(types.Tags, len(d.Tags))
		for k, v := range d.Tags {
			r.Tags[types.TagKey(k)] = v
		}
	}
	return r
}

type interactionRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newInteractionRepository(client *firestore.Client) *interactionRepository {
	return &interactionRepository{client: client}
}

func (r *interactionRepository) collection() *firestore.CollectionRef {
	return r.client.Collection(r.collectionPrefix + interactionsCollection)
}

func (r *interactionRepository) Append(ctx context.Context, record *model.Record) (*model.Record, error) {
	if err := record.Validate(); err != nil {
		return nil, err
	}

	created := record.Clone()
	if created.ID == "" {
		created.ID = types.NewRecordID()
	}
	created.CreatedAt = time.Now().UTC()

	docRef := r.collection().Doc(string(created.ID))
	if _, err := docRef.Create(ctx, toRecordDoc(created)); err != nil {
		return nil, goerr.Wrap(err, "failed to append record", goerr.V("recordID", created.ID))
	}

	return created, nil
}

func (r *interactionRepository) Get(ctx context.Context, id types.RecordID) (*model.Record, error) {
	doc, err := r.collection().Doc(string(id)).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "record not found", goerr.V("recordID", id))
		}
		return nil, goerr.Wrap(err, "failed to get record", goerr.V("recordID", id))
	}

	var d recordDoc
	if err := doc.DataTo(&d); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal record", goerr.V("recordID", id))
	}

	return fromRecordDoc(&d), nil
}

// Search applies the owner and tag filters as Firestore query predicates so
// that excluded Records never enter the candidate set, then runs FindNearest
// over the filtered query. Equal distances are re-sorted client-side by
// newer CreatedAt to keep ranking deterministic.
func (r *interactionRepository) Search(ctx context.Context, q interfaces.SearchQuery) ([]*model.Record, error) {
	if len(q.Owners) == 0 {
		return []*model.Record{}, nil
	}

	owners := make([]string, len(q.Owners))
	for i, o := range q.Owners {
		owners[i] = string(o)
	}

	query := r.collection().Query.Where("owner", "in", owners)
	for k, v := range q.Tags {
		query = query.Where("tags."+string(k), "==", v)
	}

	vq := query.FindNearest("embedding", firestore.Vector32(q.Embedding), q.Limit,
		firestore.DistanceMeasureCosine,
		&firestore.FindNearestOptions{DistanceResultField: distanceField},
	)

	iter := vq.Documents(ctx)
	defer iter.Stop()

	type scored struct {
		record   *model.Record
		distance float64
	}

	var hits []scored
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate vector search results")
		}

		var d recordDoc
		if err := doc.DataTo(&d); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal record from vector search")
		}

		hits = append(hits, scored{record: fromRecordDoc(&d), distance: d.Distance})
	}

	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].distance != hits[j].distance {
			return hits[i].distance < hits[j].distance
		}
		return hits[i].record.CreatedAt.After(hits[j].record.CreatedAt)
	})

	records := make([]*model.Record, len(hits))
	for i, h := range hits {
		records[i] = h.record
	}

	return records, nil
}
