package repository

import (
	"alcyxob/exercise-screen/internal/domain" // Import our defined domain models
)

// Error constants for repository layer
var (
	ErrNotFound    = RepositoryError("not found")
	ErrDuplicateID = RepositoryError("duplicate id")
	ErrNilEntity   = RepositoryError("nil entity")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// ExerciseRepository is the single source of truth for the exercise collection.
// Append is the only mutator; there is no update or delete.
type ExerciseRepository interface {
	// All returns the collection in insertion order. The slice is a fresh copy;
	// the entities it points to must be treated as read-only.
	All() []*domain.Exercise
	// Append adds the exercise to the end of the collection and returns the new length.
	// Content is not validated here; only ID uniqueness is enforced.
	Append(exercise *domain.Exercise) (int, error)
	// GetByID returns the stored entity (the same pointer that was appended).
	GetByID(id string) (*domain.Exercise, error)
	// Len returns the current collection length.
	Len() int
	// Subscribe registers fn to receive the new snapshot after every append.
	// The returned func removes the subscription.
	Subscribe(fn func(snapshot []*domain.Exercise)) (unsubscribe func())
}
