// internal/domain/exercise.go
package domain

import (
	"time"
)

// Exercise represents a single entry in the personal exercise list.
// Entries are never modified after creation; the list only grows.
type Exercise struct {
	ID        string    `json:"id"`   // Opaque, unique for the lifetime of the process
	Name      string    `json:"name"` // Non-empty display name
	Desc      string    `json:"desc"` // Free-form, may be empty
	Image     ImageRef  `json:"image"`
	CreatedAt time.Time `json:"createdAt"`
}

// HasImage reports whether the exercise carries any image reference.
func (e *Exercise) HasImage() bool {
	return e != nil && e.Image.Kind != ImageNone
}
