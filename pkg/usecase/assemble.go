package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"

	"github.com/edu-lab/mentor/pkg/domain/interfaces"
	"github.com/edu-lab/mentor/pkg/domain/model"
	"github.com/edu-lab/mentor/pkg/domain/types"
)

// assemble builds the PromptContext for one exchange: top-K relevant
// long-term records for the user (own plus shared), the recent turn window,
// and the query itself. The owner filter here is the user isolation
// boundary: nothing outside {user, shared} ever reaches the prompt.
func (uc *UseCases) assemble(ctx context.Context, userID types.UserID, sessionID types.SessionID, query string) (*model.PromptContext, error) {
	if query == "" {
		return nil, goerr.Wrap(types.ErrValidation, "query text is empty")
	}

	queryVec, err := uc.embedder.Embed(ctx, query)
	if err != nil {
		return nil, err
	}

	records, err := uc.repo.Interaction().Search(ctx, interfaces.SearchQuery{
		Embedding: queryVec,
		Owners:    []types.Owner{types.OwnerOf(userID), types.OwnerShared},
		Limit:     uc.retrieveLimit,
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to search interactions",
			goerr.V("userID", userID))
	}

	snippets := make([]model.Snippet, len(records))
	for i, r := range records {
		snippets[i] = model.Snippet{RecordID: r.ID, Text: r.Text}
	}

	return &model.PromptContext{
		Snippets: snippets,
		Recent:   uc.windows.Snapshot(userID, sessionID),
		Query:    query,
	}, nil
}
