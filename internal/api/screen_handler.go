package api

import (
	"alcyxob/exercise-screen/internal/domain"
	"alcyxob/exercise-screen/internal/picker"
	"alcyxob/exercise-screen/internal/screen"
	"alcyxob/exercise-screen/internal/service"
	"alcyxob/exercise-screen/internal/storage"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ScreenHandler exposes the screen's action entry points to a remote renderer.
// The caller's screen is put in the context by SessionMiddleware.
type ScreenHandler struct {
	images storage.ImageURLResolver
}

// NewScreenHandler creates a new ScreenHandler.
func NewScreenHandler(images storage.ImageURLResolver) *ScreenHandler {
	return &ScreenHandler{images: images}
}

// --- Request/Response Structs ---

// ScreenResponse is everything a renderer needs for one frame.
type ScreenResponse struct {
	State            screen.UIState     `json:"state"`
	Exercises        []ExerciseResponse `json:"exercises"`
	Detail           *ExerciseResponse  `json:"detail,omitempty"` // Absent when no detail overlay or its exercise is gone
	ImageButtonLabel string             `json:"imageButtonLabel,omitempty"`
	PendingPick      *screen.PickTicket `json:"pendingPick,omitempty"` // Lets a reconnecting device finish an outstanding pick
}

type UpdateDraftRequest struct {
	Field screen.DraftField `json:"field" binding:"required,oneof=name desc"`
	Value string            `json:"value"`
}

type ImageSelectionResponse struct {
	Ticket screen.PickTicket `json:"ticket"`
}

// ImageSelectionResult is the device picker's answer; Error is set when the picker failed.
type ImageSelectionResult struct {
	Cancelled bool           `json:"cancelled"`
	Assets    []picker.Asset `json:"assets"`
	Error     string         `json:"error"`
}

type ImageResolvedResponse struct {
	Applied bool            `json:"applied"`
	Image   domain.ImageRef `json:"image"`
	Screen  ScreenResponse  `json:"screen"`
}

type SubmitResponse struct {
	Exercise ExerciseResponse `json:"exercise"`
	Screen   ScreenResponse   `json:"screen"`
}

func (h *ScreenHandler) render(c *gin.Context, scr *screen.Screen) ScreenResponse {
	ctx := c.Request.Context()
	state := scr.State()
	resp := ScreenResponse{
		State:     state,
		Exercises: MapExercisesToResponse(ctx, h.images, scr.Exercises()),
	}
	if ex, ok := scr.Detail(); ok {
		d := MapExerciseToResponse(ctx, h.images, ex)
		resp.Detail = &d
	}
	if state.Draft != nil {
		resp.ImageButtonLabel = state.Draft.ImageButtonLabel()
	}
	if ticket, ok := scr.PendingPick(); ok {
		resp.PendingPick = &ticket
	}
	return resp
}

// withScreen wraps a handler that needs the caller's screen.
func withScreen(fn func(c *gin.Context, scr *screen.Screen)) gin.HandlerFunc {
	return func(c *gin.Context) {
		scr, err := getScreenFromContext(c)
		if err != nil {
			abortWithError(c, http.StatusInternalServerError, "Failed to get screen from session")
			return
		}
		fn(c, scr)
	}
}

// respondScreenError maps screen and service sentinels to HTTP statuses.
func respondScreenError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, screen.ErrOverlayOpen), errors.Is(err, screen.ErrPickInProgress):
		abortWithError(c, http.StatusConflict, err.Error())
	case errors.Is(err, screen.ErrNoDraft):
		abortWithError(c, http.StatusConflict, err.Error())
	case errors.Is(err, screen.ErrUnknownField):
		abortWithError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrValidationFailed):
		abortWithError(c, http.StatusUnprocessableEntity, err.Error())
	default:
		abortWithError(c, http.StatusInternalServerError, "Failed to update screen.")
	}
}

// --- Handler Methods ---

// GetScreen godoc
// @Summary Current screen frame
// @Tags Screen
// @Produce json
// @Security BearerAuth
// @Success 200 {object} ScreenResponse
// @Router /screen [get]
func (h *ScreenHandler) GetScreen(c *gin.Context, scr *screen.Screen) {
	c.JSON(http.StatusOK, h.render(c, scr))
}

// OpenAdd godoc
// @Summary Open the add-exercise form
// @Tags Screen
// @Security BearerAuth
// @Success 200 {object} ScreenResponse
// @Failure 409 {object} gin.H "Another overlay is open"
// @Router /screen/add [post]
func (h *ScreenHandler) OpenAdd(c *gin.Context, scr *screen.Screen) {
	if err := scr.OpenAdd(); err != nil {
		respondScreenError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.render(c, scr))
}

// OpenDetail godoc
// @Summary Open the detail overlay for an exercise
// @Tags Screen
// @Security BearerAuth
// @Param id path string true "Exercise ID"
// @Success 200 {object} ScreenResponse
// @Failure 409 {object} gin.H "Another overlay is open"
// @Router /screen/detail/{id} [post]
func (h *ScreenHandler) OpenDetail(c *gin.Context, scr *screen.Screen) {
	if err := scr.OpenDetail(c.Param("id")); err != nil {
		respondScreenError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.render(c, scr))
}

// CloseOverlay godoc
// @Summary Close the open overlay (discarding an add draft)
// @Tags Screen
// @Security BearerAuth
// @Success 200 {object} ScreenResponse
// @Router /screen/close [post]
func (h *ScreenHandler) CloseOverlay(c *gin.Context, scr *screen.Screen) {
	scr.CloseOverlay()
	c.JSON(http.StatusOK, h.render(c, scr))
}

// UpdateDraft godoc
// @Summary Set a draft text field
// @Tags Screen
// @Accept json
// @Security BearerAuth
// @Param field body UpdateDraftRequest true "Field and value"
// @Success 200 {object} ScreenResponse
// @Failure 400 {object} gin.H "Unknown field"
// @Failure 409 {object} gin.H "Add form not open"
// @Router /screen/draft [patch]
func (h *ScreenHandler) UpdateDraft(c *gin.Context, scr *screen.Screen) {
	var req UpdateDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	if err := scr.UpdateDraftField(req.Field, req.Value); err != nil {
		respondScreenError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.render(c, scr))
}

// Submit godoc
// @Summary Commit the draft as a new exercise
// @Tags Screen
// @Security BearerAuth
// @Success 201 {object} SubmitResponse
// @Failure 409 {object} gin.H "Add form not open"
// @Failure 422 {object} gin.H "Name is empty; the form stays open"
// @Router /screen/draft/submit [post]
func (h *ScreenHandler) Submit(c *gin.Context, scr *screen.Screen) {
	ex, err := scr.Submit()
	if err != nil {
		respondScreenError(c, err)
		return
	}
	c.JSON(http.StatusCreated, SubmitResponse{
		Exercise: MapExerciseToResponse(c.Request.Context(), h.images, ex),
		Screen:   h.render(c, scr),
	})
}

// Cancel godoc
// @Summary Discard the draft and close the add form
// @Tags Screen
// @Security BearerAuth
// @Success 200 {object} ScreenResponse
// @Router /screen/draft/cancel [post]
func (h *ScreenHandler) Cancel(c *gin.Context, scr *screen.Screen) {
	scr.Cancel()
	c.JSON(http.StatusOK, h.render(c, scr))
}

// RequestImage godoc
// @Summary Start an image selection on the device
// @Description Returns a ticket and the picker options; the device opens its picker and reports back with the ticket.
// @Tags Screen
// @Security BearerAuth
// @Success 202 {object} ImageSelectionResponse
// @Failure 409 {object} gin.H "Form not open or a pick is already pending"
// @Router /screen/draft/image [post]
func (h *ScreenHandler) RequestImage(c *gin.Context, scr *screen.Screen) {
	ticket, err := scr.BeginImageSelection()
	if err != nil {
		respondScreenError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, ImageSelectionResponse{Ticket: ticket})
}

// ResolveImage godoc
// @Summary Report the device picker's result
// @Description Always 200: a stale ticket, a cancellation or a picker error simply applies nothing.
// @Tags Screen
// @Accept json
// @Security BearerAuth
// @Param ticket path string true "Pick ticket ID"
// @Param result body ImageSelectionResult true "Picker result"
// @Success 200 {object} ImageResolvedResponse
// @Router /screen/draft/image/{ticket} [post]
func (h *ScreenHandler) ResolveImage(c *gin.Context, scr *screen.Screen) {
	var req ImageSelectionResult
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	var pickErr error
	if req.Error != "" {
		pickErr = errors.New(req.Error)
	}
	ref, applied := scr.ResolveImageSelection(c.Param("ticket"), picker.Result{Cancelled: req.Cancelled, Assets: req.Assets}, pickErr)
	c.JSON(http.StatusOK, ImageResolvedResponse{Applied: applied, Image: ref, Screen: h.render(c, scr)})
}
