package model

import (
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/edu-lab/mentor/pkg/domain/types"
)

// DefaultUserLevel is assigned to newly created users
const DefaultUserLevel = 1

// UserProfile holds per-student state. The profile is read by the tutor
// use case to resolve the student's level when the caller does not pass
// one explicitly; it owns no retrieval or window state.
type UserProfile struct {
	ID               types.UserID
	Name             string
	CurrentLevel     int
	CompletedLessons []types.LessonID
	QuizScores       map[string]float64
	CreatedAt        time.Time
	LastActiveAt     time.Time
}

// Validate checks the profile invariants
func (u *UserProfile) Validate() error {
	if u.Name == "" {
		return goerr.Wrap(types.ErrValidation, "user name is required")
	}
	if u.CurrentLevel < 0 {
		return goerr.Wrap(types.ErrValidation, "user level must not be negative",
			goerr.V("level", u.CurrentLevel))
	}
	return nil
}

// Clone returns a deep copy of the profile
func (u *UserProfile) Clone() *UserProfile {
	c := *u
	if u.CompletedLessons != nil {
		c.CompletedLessons = make([]types.LessonID, len(u.CompletedLessons))
		copy(c.CompletedLessons, u.CompletedLessons)
	}
	if u.QuizScores != nil {
		c.QuizScores = make(map[string]float64, len(u.QuizScores))
		for k, v := range u.QuizScores {
			c.QuizScores[k] = v
		}
	}
	return &c
}
