package memory

import (
	"alcyxob/exercise-screen/internal/domain"
	"alcyxob/exercise-screen/internal/repository"
	"log"
	"sync"
)

// memoryExerciseRepository implements repository.ExerciseRepository in process memory.
type memoryExerciseRepository struct {
	mu    sync.RWMutex
	items []*domain.Exercise
	byID  map[string]*domain.Exercise

	subMu     sync.Mutex
	nextSubID int
	subs      map[int]func([]*domain.Exercise)
}

// NewMemoryExerciseRepository creates a store seeded with the given exercises, in order.
// Seeds with a nil entry or a repeated ID are skipped with a warning.
func NewMemoryExerciseRepository(seed []*domain.Exercise) repository.ExerciseRepository {
	r := &memoryExerciseRepository{
		items: make([]*domain.Exercise, 0, len(seed)),
		byID:  make(map[string]*domain.Exercise, len(seed)),
		subs:  make(map[int]func([]*domain.Exercise)),
	}
	for _, ex := range seed {
		if ex == nil {
			continue
		}
		if _, dup := r.byID[ex.ID]; dup {
			log.Printf("WARN: Skipping seed exercise with duplicate id %q", ex.ID)
			continue
		}
		r.items = append(r.items, ex)
		r.byID[ex.ID] = ex
	}
	return r
}

// NewDefaultExerciseRepository creates a store holding the built-in exercises.
func NewDefaultExerciseRepository() repository.ExerciseRepository {
	return NewMemoryExerciseRepository(domain.DefaultExercises())
}

// All returns a snapshot of the collection.
func (r *memoryExerciseRepository) All() []*domain.Exercise {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.snapshotLocked()
}

// Append adds an exercise at the end of the collection and notifies subscribers.
func (r *memoryExerciseRepository) Append(exercise *domain.Exercise) (int, error) {
	if exercise == nil {
		return 0, repository.ErrNilEntity
	}

	r.mu.Lock()
	if _, dup := r.byID[exercise.ID]; dup {
		r.mu.Unlock()
		return 0, repository.ErrDuplicateID
	}
	r.items = append(r.items, exercise)
	r.byID[exercise.ID] = exercise
	n := len(r.items)
	snapshot := r.snapshotLocked()
	r.mu.Unlock()

	// Subscribers run outside the store lock so they may read the store again.
	r.notify(snapshot)
	return n, nil
}

// GetByID retrieves an exercise by its ID.
func (r *memoryExerciseRepository) GetByID(id string) (*domain.Exercise, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ex, ok := r.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return ex, nil
}

func (r *memoryExerciseRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.items)
}

// Subscribe registers a re-render callback.
func (r *memoryExerciseRepository) Subscribe(fn func([]*domain.Exercise)) func() {
	if fn == nil {
		return func() {}
	}
	r.subMu.Lock()
	id := r.nextSubID
	r.nextSubID++
	r.subs[id] = fn
	r.subMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			r.subMu.Lock()
			delete(r.subs, id)
			r.subMu.Unlock()
		})
	}
}

func (r *memoryExerciseRepository) notify(snapshot []*domain.Exercise) {
	r.subMu.Lock()
	fns := make([]func([]*domain.Exercise), 0, len(r.subs))
	for _, fn := range r.subs {
		fns = append(fns, fn)
	}
	r.subMu.Unlock()

	for _, fn := range fns {
		fn(snapshot)
	}
}

func (r *memoryExerciseRepository) snapshotLocked() []*domain.Exercise {
	out := make([]*domain.Exercise, len(r.items))
	copy(out, r.items)
	return out
}
