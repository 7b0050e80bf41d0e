// Package screen holds the exercise screen's interaction state: the overlay
// coordinator, the add-exercise draft and the asynchronous image selection.
// Every exported method is one UI event; events are serialized per Screen.
package screen

import (
	"alcyxob/exercise-screen/internal/domain"
	"alcyxob/exercise-screen/internal/picker"
	"alcyxob/exercise-screen/internal/service"
	"errors"
	"log"
	"sync"
)

// UIState is the read model handed to renderers.
type UIState struct {
	Overlay     Overlay `json:"overlay"`
	DetailID    string  `json:"detailId,omitempty"`
	Draft       *Draft  `json:"draft,omitempty"`
	PickPending bool    `json:"pickPending"`
}

// Screen is one instance of the exercise screen bound to a shared exercise service.
type Screen struct {
	mu sync.Mutex

	exercises service.ExerciseService
	picker    picker.ImagePicker

	coord  *Coordinator
	detail *domain.Exercise // entity captured when the detail overlay opened

	draft    *Draft
	draftGen uint64      // bumped whenever a draft is created or discarded
	pending  *PickTicket // outstanding image selection for the live draft
}

// NewScreen creates a screen in the Closed state. A nil picker means image
// selection always resolves to "no image".
func NewScreen(exercises service.ExerciseService, imagePicker picker.ImagePicker) *Screen {
	if imagePicker == nil {
		imagePicker = picker.Unavailable
	}
	return &Screen{
		exercises: exercises,
		picker:    imagePicker,
		coord:     NewCoordinator(),
	}
}

// Exercises returns the list to render, in insertion order.
func (s *Screen) Exercises() []*domain.Exercise {
	return s.exercises.ListExercises()
}

// State returns a copy of the current UI state.
func (s *Screen) State() UIState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stateLocked()
}

func (s *Screen) stateLocked() UIState {
	st := UIState{
		Overlay:     s.coord.Overlay(),
		DetailID:    s.coord.DetailID(),
		PickPending: s.pending != nil,
	}
	if s.draft != nil {
		d := *s.draft
		st.Draft = &d
	}
	return st
}

// OpenAdd opens the add form with an empty draft.
func (s *Screen) OpenAdd() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.coord.OpenAdd(); err != nil {
		return err
	}
	s.draft = &Draft{}
	s.draftGen++
	return nil
}

// OpenDetail opens the detail overlay for id, capturing the entity current at this moment.
func (s *Screen) OpenDetail(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.coord.OpenDetail(id); err != nil {
		return err
	}
	ex, err := s.exercises.GetExerciseByID(id)
	if err != nil {
		log.Printf("WARN: Opening detail for unknown exercise %q: %v", id, err)
		ex = nil
	}
	s.detail = ex
	return nil
}

// Detail returns the exercise shown in the detail overlay. ok is false when no
// detail overlay is open or its exercise is no longer in the store; in the
// latter case the overlay stays open and renders nothing.
func (s *Screen) Detail() (*domain.Exercise, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.coord.Overlay() != OverlayDetail || s.detail == nil {
		return nil, false
	}
	if _, err := s.exercises.GetExerciseByID(s.detail.ID); err != nil {
		return nil, false
	}
	return s.detail, true
}

// CloseOverlay closes whatever is open. Closing the add form discards its draft,
// the same as Cancel.
func (s *Screen) CloseOverlay() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closeLocked()
}

// Cancel discards the draft without confirmation and returns to Closed.
func (s *Screen) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closeLocked()
}

func (s *Screen) closeLocked() {
	s.coord.Close()
	s.detail = nil
	s.discardDraftLocked()
}

func (s *Screen) discardDraftLocked() {
	if s.draft == nil && s.pending == nil {
		return
	}
	s.draft = nil
	s.pending = nil
	s.draftGen++
}

// UpdateDraftField stores value as typed. No validation happens here.
func (s *Screen) UpdateDraftField(field DraftField, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.draft == nil {
		return ErrNoDraft
	}
	return s.draft.set(field, value)
}

// Submit validates the draft and commits it. On service.ErrValidationFailed the
// form stays open with its draft intact; on success the draft is cleared and the
// overlay closes.
func (s *Screen) Submit() (*domain.Exercise, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.draft == nil || s.coord.Overlay() != OverlayAdd {
		return nil, ErrNoDraft
	}

	ex, err := s.exercises.CreateExercise(s.draft.Name, s.draft.Desc, s.draft.Image)
	if err != nil {
		if !errors.Is(err, service.ErrValidationFailed) {
			log.Printf("ERROR: Failed to add exercise %q: %v", s.draft.Name, err)
		}
		return nil, err
	}

	s.closeLocked()
	return ex, nil
}
