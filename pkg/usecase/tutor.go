package usecase

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"strconv"
	"text/template"

	"github.com/m-mizutani/goerr/v2"

	"github.com/edu-lab/mentor/pkg/domain/model"
	"github.com/edu-lab/mentor/pkg/domain/types"
	"github.com/edu-lab/mentor/pkg/utils/async"
	"github.com/edu-lab/mentor/pkg/utils/logging"
)

//go:embed prompt/tutor_system.md
var tutorPromptTmpl string

var tutorPrompt = template.Must(template.New("tutor_system").Parse(tutorPromptTmpl))

type tutorPromptData struct {
	Level   int
	Context string
}

// Ask runs one tutoring exchange. It assembles the bounded context, invokes
// the generator, and on success persists the exchange: the user and tutor
// turns into the conversation window and one Q/A record into the store.
// The exchange is atomic — if embedding or generation fails, times out, or
// the caller cancels, nothing is persisted.
//
// userLevel is passed through to the rendered instructions unmodified and
// never influences retrieval. Level 0 means "use the stored profile level".
func (uc *UseCases) Ask(ctx context.Context, userID types.UserID, sessionID types.SessionID, query string, userLevel int) (string, error) {
	if userID == "" || sessionID == "" {
		return "", goerr.Wrap(types.ErrValidation, "user and session are required",
			goerr.V("userID", userID),
			goerr.V("sessionID", sessionID),
		)
	}
	if query == "" {
		return "", goerr.Wrap(types.ErrValidation, "query text is empty")
	}

	// Single writer per session: concurrent asks for one session queue up
	// here so turn ordering stays consistent.
	lock := uc.windows.SessionLock(userID, sessionID)
	lock.Lock()
	defer lock.Unlock()

	level := userLevel
	if level == 0 {
		level = uc.resolveUserLevel(ctx, userID)
	}

	pctx, err := uc.assemble(ctx, userID, sessionID, query)
	if err != nil {
		return "", err
	}

	contextBlock, err := pctx.Render(uc.maxContextLen)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tutorPrompt.Execute(&buf, tutorPromptData{Level: level, Context: contextBlock}); err != nil {
		return "", goerr.Wrap(err, "failed to render tutor prompt")
	}

	answer, err := uc.generator.Generate(ctx, buf.String())
	if err != nil {
		return "", err
	}
	if ctx.Err() != nil {
		// Caller cancelled while the answer was in flight; persist nothing
		return "", goerr.Wrap(types.ErrGeneration, "request cancelled",
			goerr.V("error", ctx.Err().Error()))
	}

	qaText := "Q: " + query + "\nA: " + answer
	qaVec, err := uc.embedder.Embed(ctx, qaText)
	if err != nil {
		return "", err
	}

	// The record is appended before the turns become visible so that a
	// storage failure leaves the window untouched.
	if _, err := uc.repo.Interaction().Append(ctx, &model.Record{
		Text:      qaText,
		Embedding: qaVec,
		Owner:     types.OwnerOf(userID),
		Tags: types.Tags{
			types.TagType:  types.TypeQA,
			types.TagLevel: strconv.Itoa(level),
		},
	}); err != nil {
		return "", goerr.Wrap(err, "failed to persist exchange",
			goerr.V("userID", userID),
			goerr.V("sessionID", sessionID),
		)
	}

	uc.windows.Push(userID, sessionID, model.Turn{Role: types.RoleUser, Text: query})
	uc.windows.Push(userID, sessionID, model.Turn{Role: types.RoleTutor, Text: answer})

	async.Dispatch(ctx, func(ctx context.Context) error {
		return uc.touchUser(ctx, userID)
	})

	return answer, nil
}

// resolveUserLevel reads the stored profile level, falling back to the
// default for unknown users (callers are not required to register first)
func (uc *UseCases) resolveUserLevel(ctx context.Context, userID types.UserID) int {
	profile, err := uc.repo.User().Get(ctx, userID)
	if err != nil {
		if !errors.Is(err, types.ErrNotFound) {
			logging.From(ctx).Warn("failed to resolve user level, using default",
				"userID", userID, "error", err.Error())
		}
		return model.DefaultUserLevel
	}
	return profile.CurrentLevel
}
