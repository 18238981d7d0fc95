package types

import "github.com/google/uuid"

// RecordID is a UUID-based identifier for a long-term memory Record
type RecordID string

// NewRecordID generates a new UUID v4 RecordID
func NewRecordID() RecordID {
	return RecordID(uuid.New().String())
}

// UserID identifies a student. It doubles as the owner scope of Records
// created from that student's exchanges.
type UserID string

// NewUserID generates a new UUID v4 UserID
func NewUserID() UserID {
	return UserID(uuid.New().String())
}

// SessionID identifies one conversation within a user's activity.
// Windows are keyed by (UserID, SessionID).
type SessionID string

// NewSessionID generates a new UUID v4 SessionID
func NewSessionID() SessionID {
	return SessionID(uuid.New().String())
}

// LessonID identifies a lesson file ingested as shared content
type LessonID string

// Owner is the access-partitioning key of a Record: either a specific
// UserID, or OwnerShared for lesson material visible to every user.
type Owner string

// OwnerShared marks Records retrievable by all users
const OwnerShared Owner = "shared"

// OwnerOf returns the Owner scope for a specific user
func OwnerOf(userID UserID) Owner {
	return Owner(userID)
}

// IsShared reports whether the owner is the shared sentinel
func (o Owner) IsShared() bool {
	return o == OwnerShared
}

// Role is the speaker of a conversation Turn
type Role string

const (
	RoleUser  Role = "user"
	RoleTutor Role = "tutor"
)
