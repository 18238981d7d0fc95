package firestore

import "github.com/edu-lab/mentor/pkg/domain/types"

// ErrNotFound is returned when a requested entity does not exist
var ErrNotFound = types.ErrNotFound
