package interfaces

// Repository aggregates the persistence interfaces. Implementations live in
// pkg/repository: an in-memory backend for development and tests, and a
// Firestore backend for deployment.
type Repository interface {
	Interaction() InteractionRepository
	User() UserRepository

	// Close releases backend resources. No-op for the in-memory backend.
	Close() error
}
