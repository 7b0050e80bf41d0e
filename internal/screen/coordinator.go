package screen

import "errors"

// Overlay names which modal, if any, covers the exercise list.
type Overlay string

const (
	OverlayClosed Overlay = "closed"
	OverlayAdd    Overlay = "add"
	OverlayDetail Overlay = "detail"
)

// --- Error Definitions ---
var (
	ErrOverlayOpen    = errors.New("another overlay is already open")
	ErrNoDraft        = errors.New("add form is not open")
	ErrUnknownField   = errors.New("unknown draft field")
	ErrPickInProgress = errors.New("an image selection is already pending")
)

// Coordinator is the overlay state machine:
//
//	Closed --openAdd--> AddOpen --cancel|submit--> Closed
//	Closed --openDetail(id)--> DetailOpen(id) --close--> Closed
//
// At most one overlay is open at any time; opening a second one is refused.
type Coordinator struct {
	overlay  Overlay
	detailID string
}

// NewCoordinator starts Closed.
func NewCoordinator() *Coordinator {
	return &Coordinator{overlay: OverlayClosed}
}

func (c *Coordinator) Overlay() Overlay { return c.overlay }

// DetailID is the selected exercise id while DetailOpen, empty otherwise.
func (c *Coordinator) DetailID() string { return c.detailID }

func (c *Coordinator) OpenAdd() error {
	if c.overlay != OverlayClosed {
		return ErrOverlayOpen
	}
	c.overlay = OverlayAdd
	return nil
}

func (c *Coordinator) OpenDetail(id string) error {
	if c.overlay != OverlayClosed {
		return ErrOverlayOpen
	}
	c.overlay = OverlayDetail
	c.detailID = id
	return nil
}

// Close returns to Closed and reports which overlay was open before.
func (c *Coordinator) Close() Overlay {
	prev := c.overlay
	c.overlay = OverlayClosed
	c.detailID = ""
	return prev
}
