package screen

import (
	"alcyxob/exercise-screen/internal/domain"
	"alcyxob/exercise-screen/internal/picker"
	"context"
	"log"

	"github.com/google/uuid"
)

// PickTicket identifies one outstanding image selection. A resolution is only
// applied while its ticket is still the pending one for a live draft.
type PickTicket struct {
	ID      string         `json:"id"`
	Options picker.Options `json:"options"`

	draftGen uint64
}

// BeginImageSelection registers a pick for the live draft. Only one pick may be
// outstanding per draft; a second request gets ErrPickInProgress.
func (s *Screen) BeginImageSelection() (PickTicket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.draft == nil {
		return PickTicket{}, ErrNoDraft
	}
	if s.pending != nil {
		return PickTicket{}, ErrPickInProgress
	}
	t := &PickTicket{
		ID:       uuid.NewString(),
		Options:  picker.DefaultOptions(),
		draftGen: s.draftGen,
	}
	s.pending = t
	return *t, nil
}

// PendingPick returns the outstanding ticket, if any.
func (s *Screen) PendingPick() (PickTicket, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending == nil {
		return PickTicket{}, false
	}
	return *s.pending, true
}

// ResolveImageSelection applies the picker's answer for ticketID.
//
// A picked URI replaces the draft image and is returned with ok=true. A
// cancellation or a picker failure returns "no image" and keeps whatever the
// draft already had; failures are logged, never returned. A resolution whose
// draft has been cancelled, submitted or replaced is discarded.
func (s *Screen) ResolveImageSelection(ticketID string, res picker.Result, pickErr error) (domain.ImageRef, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pending == nil || s.pending.ID != ticketID || s.draft == nil || s.pending.draftGen != s.draftGen {
		log.Printf("INFO: Discarding stale image selection %s", ticketID)
		return domain.NoImage(), false
	}
	s.pending = nil

	if pickErr != nil {
		log.Printf("ERROR: Error picking image: %v", pickErr)
		return domain.NoImage(), false
	}
	uri, ok := res.FirstURI()
	if !ok {
		return domain.NoImage(), false
	}
	ref := domain.RemoteImage(uri)
	s.draft.Image = ref
	return ref, true
}

// RequestImageSelection runs the configured picker for the live draft and applies
// its result. The screen is not locked while the picker is open, so the form stays
// interactive; if the draft goes away meanwhile, the result is dropped.
func (s *Screen) RequestImageSelection(ctx context.Context) (domain.ImageRef, bool) {
	ticket, err := s.BeginImageSelection()
	if err != nil {
		log.Printf("INFO: Image selection not started: %v", err)
		return domain.NoImage(), false
	}
	res, pickErr := s.picker.Pick(ctx, ticket.Options)
	return s.ResolveImageSelection(ticket.ID, res, pickErr)
}

// Picker exposes the configured capability for hosts that run picks themselves.
func (s *Screen) Picker() picker.ImagePicker { return s.picker }
