package model

import "github.com/edu-lab/mentor/pkg/domain/types"

// Turn is one utterance within the bounded recent-conversation window.
// Turns live only in the window; the Q/A pair is separately logged as a
// Record by the tutor use case.
type Turn struct {
	Role types.Role
	Text string
}
