package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/edu-lab/mentor/pkg/domain/model"
	"github.com/edu-lab/mentor/pkg/domain/types"
)

// CreateUser registers a new student profile at the default level
func (uc *UseCases) CreateUser(ctx context.Context, name string) (*model.UserProfile, error) {
	created, err := uc.repo.User().Create(ctx, &model.UserProfile{Name: name})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create user", goerr.V("name", name))
	}
	return created, nil
}

// GetUser retrieves a student profile
func (uc *UseCases) GetUser(ctx context.Context, id types.UserID) (*model.UserProfile, error) {
	profile, err := uc.repo.User().Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return profile, nil
}

// touchUser refreshes the profile's last-active timestamp. Unregistered
// users are fine; the tutor does not require a profile.
func (uc *UseCases) touchUser(ctx context.Context, id types.UserID) error {
	profile, err := uc.repo.User().Get(ctx, id)
	if err != nil {
		if errors.Is(err, types.ErrNotFound) {
			return nil
		}
		return goerr.Wrap(err, "failed to load user for touch", goerr.V("userID", id))
	}

	profile.LastActiveAt = time.Now().UTC()
	if err := uc.repo.User().Update(ctx, profile); err != nil {
		return goerr.Wrap(err, "failed to touch user", goerr.V("userID", id))
	}
	return nil
}
