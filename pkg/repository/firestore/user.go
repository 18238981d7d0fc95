package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/edu-lab/mentor/pkg/domain/model"
	"github.com/edu-lab/mentor/pkg/domain/types"
)

const usersCollection = "users"

type userDoc struct {
	ID               types.UserID       `firestore:"id"`
	Name             string             `firestore:"name"`
	CurrentLevel     int                `firestore:"current_level"`
	CompletedLessons []string           `firestore:"completed_lessons,omitempty"`
	QuizScores       map[string]float64 `firestore:"quiz_scores,omitempty"`
	CreatedAt        time.Time          `firestore:"created_at"`
	LastActiveAt     time.Time          `firestore:"last_active_at"`
}

func toUserDoc(u *model.UserProfile) *userDoc {
	doc := &userDoc{
		ID:           u.ID,
		Name:         u.Name,
		CurrentLevel: u.CurrentLevel,
		QuizScores:   u.QuizScores,
		CreatedAt:    u.CreatedAt,
		LastActiveAt: u.LastActiveAt,
	}
	for _, l := range u.CompletedLessons {
		doc.CompletedLessons = append(doc.CompletedLessons, string(l))
	}
	return doc
}

func fromUserDoc(d *userDoc) *model.UserProfile {
	u := &model.UserProfile{
		ID:           d.ID,
		Name:         d.Name,
		CurrentLevel: d.CurrentLevel,
		QuizScores:   d.QuizScores,
		CreatedAt:    d.CreatedAt,
		LastActiveAt: d.LastActiveAt,
	}
	for _, l := range d.CompletedLessons {
		u.CompletedLessons = append(u.CompletedLessons, types.LessonID(l))
	}
	return u
}

type userRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newUserRepository(client *firestore.Client) *userRepository {
	return &userRepository{client: client}
}

func (r *userRepository) collection() *firestore.CollectionRef {
	return r.client.Collection(r.collectionPrefix + usersCollection)
}

func (r *userRepository) Create(ctx context.Context, user *model.UserProfile) (*model.UserProfile, error) {
	if err := user.Validate(); err != nil {
		return nil, err
	}

	created := user.Clone()
	if created.ID == "" {
		created.ID = types.NewUserID()
	}
	if created.CurrentLevel == 0 {
		created.CurrentLevel = model.DefaultUserLevel
	}
	now := time.Now().UTC()
	created.CreatedAt = now
	created.LastActiveAt = now

	docRef := r.collection().Doc(string(created.ID))
	if _, err := docRef.Create(ctx, toUserDoc(created)); err != nil {
		return nil, goerr.Wrap(err, "failed to create user", goerr.V("userID", created.ID))
	}

	return created, nil
}

func (r *userRepository) Get(ctx context.Context, id types.UserID) (*model.UserProfile, error) {
	doc, err := r.collection().Doc(string(id)).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "user not found", goerr.V("userID", id))
		}
		return nil, goerr.Wrap(err, "failed to get user", goerr.V("userID", id))
	}

	var d userDoc
	if err := doc.DataTo(&d); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal user", goerr.V("userID", id))
	}

	return fromUserDoc(&d), nil
}

func (r *userRepository) Update(ctx context.Context, user *model.UserProfile) error {
	if err := user.Validate(); err != nil {
		return err
	}

	docRef := r.collection().Doc(string(user.ID))
	if _, err := docRef.Get(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return goerr.Wrap(ErrNotFound, "user not found", goerr.V("userID", user.ID))
		}
		return goerr.Wrap(err, "failed to get user", goerr.V("userID", user.ID))
	}

	if _, err := docRef.Set(ctx, toUserDoc(user)); err != nil {
		return goerr.Wrap(err, "failed to update user", goerr.V("userID", user.ID))
	}

	return nil
}
