package usecase

import (
	"context"
	"strconv"

	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/sync/errgroup"

	"github.com/edu-lab/mentor/pkg/domain/model"
	"github.com/edu-lab/mentor/pkg/domain/types"
	"github.com/edu-lab/mentor/pkg/utils/logging"
)

// DefaultIngestConcurrency bounds parallel lesson ingestion; each fragment
// costs one embedding call
const DefaultIngestConcurrency = 4

// IngestSharedContent embeds and stores one text as a shared Record,
// visible to every user's retrieval. This is the boundary the content
// loading layer calls to seed lesson material.
func (uc *UseCases) IngestSharedContent(ctx context.Context, text string, tags types.Tags) (types.RecordID, error) {
	embedding, err := uc.embedder.Embed(ctx, text)
	if err != nil {
		return "", err
	}

	created, err := uc.repo.Interaction().Append(ctx, &model.Record{
		Text:      text,
		Embedding: embedding,
		Owner:     types.OwnerShared,
		Tags:      tags.Clone(),
	})
	if err != nil {
		return "", goerr.Wrap(err, "failed to ingest shared content")
	}

	return created.ID, nil
}

// IngestLesson stores each fragment of a lesson as a shared Record tagged
// with the lesson identity and level
func (uc *UseCases) IngestLesson(ctx context.Context, l *model.Lesson) ([]types.RecordID, error) {
	if err := l.Validate(); err != nil {
		return nil, err
	}

	tags := types.Tags{
		types.TagType:   types.TypeLesson,
		types.TagLesson: string(l.ID),
		types.TagLevel:  strconv.Itoa(l.Level),
		types.TagTopic:  l.Title,
	}

	fragments := l.Fragments()
	ids := make([]types.RecordID, 0, len(fragments))
	for _, fragment := range fragments {
		id, err := uc.IngestSharedContent(ctx, fragment, tags)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to ingest lesson fragment",
				goerr.V("lessonID", l.ID))
		}
		ids = append(ids, id)
	}

	return ids, nil
}

// IngestLessons ingests lessons concurrently with a bounded worker count
func (uc *UseCases) IngestLessons(ctx context.Context, lessons []*model.Lesson, concurrency int) error {
	if concurrency <= 0 {
		concurrency = DefaultIngestConcurrency
	}

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(concurrency)

	for _, l := range lessons {
		eg.Go(func() error {
			ids, err := uc.IngestLesson(ctx, l)
			if err != nil {
				return err
			}
			logging.From(ctx).Info("ingested lesson",
				"lessonID", l.ID,
				"fragments", len(ids),
			)
			return nil
		})
	}

	return eg.Wait()
}
