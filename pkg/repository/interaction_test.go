package repository_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/m-mizutani/gt"

	"github.com/edu-lab/mentor/pkg/domain/interfaces"
	"github.com/edu-lab/mentor/pkg/domain/model"
	"github.com/edu-lab/mentor/pkg/domain/types"
	"github.com/edu-lab/mentor/pkg/repository/firestore"
	"github.com/edu-lab/mentor/pkg/repository/memory"
)

func runInteractionRepositoryTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	t.Run("Append assigns ID and CreatedAt", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.Interaction().Append(ctx, &model.Record{
			Text:      "Q: what is a pointer?\nA: a variable holding an address",
			Embedding: []float32{0.1, 0.2, 0.3},
			Owner:     types.OwnerOf("alice"),
			Tags:      types.Tags{types.TagType: types.TypeQA},
		})
		gt.NoError(t, err).Required()

		gt.String(t, string(created.ID)).NotEqual("")
		gt.Bool(t, created.CreatedAt.IsZero()).False()
		gt.Value(t, created.Owner).Equal(types.OwnerOf("alice"))
		gt.Array(t, created.Embedding).Length(3)
	})

	t.Run("Append rejects empty text", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		_, err := repo.Interaction().Append(ctx, &model.Record{
			Embedding: []float32{0.1, 0.2, 0.3},
			Owner:     types.OwnerShared,
		})
		gt.Value(t, err).NotNil()
		gt.Bool(t, errors.Is(err, types.ErrValidation)).True()
	})

	t.Run("Append does not alias the caller's record", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		input := &model.Record{
			Text:      "original text",
			Embedding: []float32{1, 0, 0},
			Owner:     types.OwnerOf("alice"),
		}
		created, err := repo.Interaction().Append(ctx, input)
		gt.NoError(t, err).Required()

		input.Text = "mutated after append"
		input.Embedding[0] = 99

		stored, err := repo.Interaction().Get(ctx, created.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, stored.Text).Equal("original text")
		gt.Value(t, stored.Embedding[0]).Equal(float32(1))
	})

	t.Run("Get returns error for missing record", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		_, err := repo.Interaction().Get(ctx, types.NewRecordID())
		gt.Value(t, err).NotNil()
		gt.Bool(t, errors.Is(err, types.ErrNotFound)).True()
	})

	t.Run("Search never returns another user's records", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		// Identical embeddings: if isolation leaked, bob's record would
		// rank as high as any other candidate.
		vec := []float32{1, 0, 0}
		for _, owner := range []types.Owner{
			types.OwnerOf("alice"),
			types.OwnerShared,
			types.OwnerOf("bob"),
		} {
			_, err := repo.Interaction().Append(ctx, &model.Record{
				Text:      "owned by " + string(owner),
				Embedding: vec,
				Owner:     owner,
			})
			gt.NoError(t, err).Required()
		}

		results, err := repo.Interaction().Search(ctx, interfaces.SearchQuery{
			Embedding: vec,
			Owners:    []types.Owner{types.OwnerOf("alice"), types.OwnerShared},
			Limit:     10,
		})
		gt.NoError(t, err).Required()

		gt.Array(t, results).Length(2)
		for _, r := range results {
			gt.Bool(t, r.Owner == types.OwnerOf("bob")).False()
		}
	})

	t.Run("Search with empty owner list matches nothing", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		_, err := repo.Interaction().Append(ctx, &model.Record{
			Text:      "shared content",
			Embedding: []float32{1, 0, 0},
			Owner:     types.OwnerShared,
		})
		gt.NoError(t, err).Required()

		results, err := repo.Interaction().Search(ctx, interfaces.SearchQuery{
			Embedding: []float32{1, 0, 0},
			Limit:     10,
		})
		gt.NoError(t, err).Required()
		gt.Array(t, results).Length(0)
	})

	t.Run("Search ranks by cosine similarity", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		far, err := repo.Interaction().Append(ctx, &model.Record{
			Text:      "orthogonal",
			Embedding: []float32{0, 1, 0},
			Owner:     types.OwnerShared,
		})
		gt.NoError(t, err).Required()

		near, err := repo.Interaction().Append(ctx, &model.Record{
			Text:      "diagonal",
			Embedding: []float32{1, 1, 0},
			Owner:     types.OwnerShared,
		})
		gt.NoError(t, err).Required()

		exact, err := repo.Interaction().Append(ctx, &model.Record{
			Text:      "aligned",
			Embedding: []float32{1, 0, 0},
			Owner:     types.OwnerShared,
		})
		gt.NoError(t, err).Required()

		results, err := repo.Interaction().Search(ctx, interfaces.SearchQuery{
			Embedding: []float32{1, 0, 0},
			Owners:    []types.Owner{types.OwnerShared},
			Limit:     3,
		})
		gt.NoError(t, err).Required()

		gt.Array(t, results).Length(3)
		gt.Value(t, results[0].ID).Equal(exact.ID)
		gt.Value(t, results[1].ID).Equal(near.ID)
		gt.Value(t, results[2].ID).Equal(far.ID)
	})

	t.Run("Search breaks score ties by newer CreatedAt", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		vec := []float32{1, 0, 0}
		older, err := repo.Interaction().Append(ctx, &model.Record{
			Text:      "first",
			Embedding: vec,
			Owner:     types.OwnerShared,
		})
		gt.NoError(t, err).Required()

		time.Sleep(10 * time.Millisecond)

		newer, err := repo.Interaction().Append(ctx, &model.Record{
			Text:      "second",
			Embedding: vec,
			Owner:     types.OwnerShared,
		})
		gt.NoError(t, err).Required()

		results, err := repo.Interaction().Search(ctx, interfaces.SearchQuery{
			Embedding: vec,
			Owners:    []types.Owner{types.OwnerShared},
			Limit:     2,
		})
		gt.NoError(t, err).Required()

		gt.Array(t, results).Length(2)
		gt.Value(t, results[0].ID).Equal(newer.ID)
		gt.Value(t, results[1].ID).Equal(older.ID)
	})

	t.Run("Search applies tag filter before ranking", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		_, err := repo.Interaction().Append(ctx, &model.Record{
			Text:      "qa record, exact match",
			Embedding: []float32{1, 0, 0},
			Owner:     types.OwnerShared,
			Tags:      types.Tags{types.TagType: types.TypeQA},
		})
		gt.NoError(t, err).Required()

		lessonRec, err := repo.Interaction().Append(ctx, &model.Record{
			Text:      "lesson record, weaker match",
			Embedding: []float32{1, 1, 1},
			Owner:     types.OwnerShared,
			Tags:      types.Tags{types.TagType: types.TypeLesson},
		})
		gt.NoError(t, err).Required()

		results, err := repo.Interaction().Search(ctx, interfaces.SearchQuery{
			Embedding: []float32{1, 0, 0},
			Owners:    []types.Owner{types.OwnerShared},
			Tags:      types.Tags{types.TagType: types.TypeLesson},
			Limit:     10,
		})
		gt.NoError(t, err).Required()

		gt.Array(t, results).Length(1)
		gt.Value(t, results[0].ID).Equal(lessonRec.ID)
	})

	t.Run("Search honors the limit", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		for i := 0; i < 5; i++ {
			_, err := repo.Interaction().Append(ctx, &model.Record{
				Text:      "shared",
				Embedding: []float32{1, float32(i), 0},
				Owner:     types.OwnerShared,
			})
			gt.NoError(t, err).Required()
		}

		results, err := repo.Interaction().Search(ctx, interfaces.SearchQuery{
			Embedding: []float32{1, 0, 0},
			Owners:    []types.Owner{types.OwnerShared},
			Limit:     2,
		})
		gt.NoError(t, err).Required()
		gt.Array(t, results).Length(2)
	})
}

func newFirestoreRepository(t *testing.T) interfaces.Repository {
	t.Helper()

	projectID := os.Getenv("TEST_FIRESTORE_PROJECT_ID")
	if projectID == "" {
		t.Skip("TEST_FIRESTORE_PROJECT_ID not set")
	}

	databaseID := os.Getenv("TEST_FIRESTORE_DATABASE_ID")
	if databaseID == "" {
		t.Skip("TEST_FIRESTORE_DATABASE_ID not set")
	}

	ctx := context.Background()
	repo, err := firestore.New(ctx, projectID, databaseID)
	if err != nil {
		t.Fatalf("failed to create firestore repository: %v", err)
	}
	t.Cleanup(func() {
		if err := repo.Close(); err != nil {
			t.Errorf("failed to close firestore repository: %v", err)
		}
	})
	return repo
}

func TestMemoryInteractionRepository(t *testing.T) {
	runInteractionRepositoryTest(t, func(t *testing.T) interfaces.Repository {
		return memory.New()
	})
}

func TestFirestoreInteractionRepository(t *testing.T) {
	runInteractionRepositoryTest(t, newFirestoreRepository)
}
