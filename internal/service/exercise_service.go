package service

import (
	"alcyxob/exercise-screen/internal/domain"
	"alcyxob/exercise-screen/internal/repository" // Import repository package
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// --- Error Definitions ---
var (
	ErrExerciseNotFound = errors.New("exercise not found")
	ErrValidationFailed = errors.New("exercise validation failed: name is required")
	ErrIDGeneration     = errors.New("failed to generate a unique exercise id")
)

// IDGenerator produces exercise identifiers.
type IDGenerator func() (string, error)

// NewUUIDv7Generator returns time-ordered UUIDs: a millisecond timestamp followed by
// random bits, so ids sort by creation and collide only with negligible probability.
func NewUUIDv7Generator() IDGenerator {
	return func() (string, error) {
		id, err := uuid.NewV7()
		if err != nil {
			return "", err
		}
		return id.String(), nil
	}
}

// --- Service Interface ---
type ExerciseService interface {
	ListExercises() []*domain.Exercise
	GetExerciseByID(id string) (*domain.Exercise, error)
	CreateExercise(name, desc string, image domain.ImageRef) (*domain.Exercise, error)
}

// --- Service Implementation ---

// exerciseService implements the ExerciseService interface.
type exerciseService struct {
	exerciseRepo repository.ExerciseRepository
	newID        IDGenerator
	now          func() time.Time
}

// ExerciseServiceOption customises an ExerciseService.
type ExerciseServiceOption func(*exerciseService)

// WithIDGenerator overrides the id source (tests use a deterministic counter).
func WithIDGenerator(gen IDGenerator) ExerciseServiceOption {
	return func(s *exerciseService) {
		if gen != nil {
			s.newID = gen
		}
	}
}

// WithClock overrides the creation timestamp source.
func WithClock(now func() time.Time) ExerciseServiceOption {
	return func(s *exerciseService) {
		if now != nil {
			s.now = now
		}
	}
}

// NewExerciseService creates a new instance of exerciseService.
func NewExerciseService(exerciseRepo repository.ExerciseRepository, opts ...ExerciseServiceOption) ExerciseService {
	s := &exerciseService{
		exerciseRepo: exerciseRepo,
		newID:        NewUUIDv7Generator(),
		now:          func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ListExercises returns the collection in insertion order.
func (s *exerciseService) ListExercises() []*domain.Exercise {
	return s.exerciseRepo.All()
}

// GetExerciseByID retrieves a single exercise.
func (s *exerciseService) GetExerciseByID(id string) (*domain.Exercise, error) {
	exercise, err := s.exerciseRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrExerciseNotFound
		}
		return nil, err // Propagate other repository errors
	}
	return exercise, nil
}

// CreateExercise validates the input, builds a new exercise and appends it.
// Name and description are trimmed; an empty trimmed name is rejected.
func (s *exerciseService) CreateExercise(name, desc string, image domain.ImageRef) (*domain.Exercise, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrValidationFailed
	}

	id, err := s.newID()
	if err != nil || id == "" {
		return nil, ErrIDGeneration
	}

	exercise := &domain.Exercise{
		ID:        id,
		Name:      name,
		Desc:      strings.TrimSpace(desc),
		Image:     image,
		CreatedAt: s.now(),
	}

	if _, err := s.exerciseRepo.Append(exercise); err != nil {
		if errors.Is(err, repository.ErrDuplicateID) {
			return nil, ErrIDGeneration
		}
		return nil, err
	}
	return exercise, nil
}
