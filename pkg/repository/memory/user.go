package memory

import (
	"context"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/edu-lab/mentor/pkg/domain/model"
	"github.com/edu-lab/mentor/pkg/domain/types"
)

type userRepository struct {
	mu    sync.RWMutex
	users map[types.UserID]*model.UserProfile
}

func newUserRepository() *userRepository {
	return &userRepository{
		users: make(map[types.UserID]*model.UserProfile),
	}
}

func (r *userRepository) Create(ctx context.Context, user *model.UserProfile) (*model.UserProfile, error) {
	if err := user.Validate(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

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

	r.users[created.ID] = created
	return created.Clone(), nil
}

func (r *userRepository) Get(ctx context.Context, id types.UserID) (*model.UserProfile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, exists := r.users[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "user not found", goerr.V("userID", id))
	}

	return user.Clone(), nil
}

func (r *userRepository) Update(ctx context.Context, user *model.UserProfile) error {
	if err := user.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.users[user.ID]; !exists {
		return goerr.Wrap(ErrNotFound, "user not found", goerr.V("userID", user.ID))
	}

	r.users[user.ID] = user.Clone()
	return nil
}
