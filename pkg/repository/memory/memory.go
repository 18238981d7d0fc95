package memory

import (
	"github.com/edu-lab/mentor/pkg/domain/interfaces"
)

// Repository is an alias for Memory to match the pattern
type Repository = Memory

// Memory is the in-memory repository backend, used for development and
// tests. Data does not survive process restart.
type Memory struct {
	interaction *interactionRepository
	user        *userRepository
}

var _ interfaces.Repository = &Memory{}

func New() *Memory {
	return &Memory{
		interaction: newInteractionRepository(),
		user:        newUserRepository(),
	}
}

func (m *Memory) Interaction() interfaces.InteractionRepository {
	return m.interaction
}

func (m *Memory) User() interfaces.UserRepository {
	return m.user
}

func (m *Memory) Close() error {
	return nil
}
