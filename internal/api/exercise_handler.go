package api

import (
	"alcyxob/exercise-screen/internal/domain"
	"alcyxob/exercise-screen/internal/service"
	"alcyxob/exercise-screen/internal/storage"
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// ExerciseHandler serves the read-only exercise list.
type ExerciseHandler struct {
	exerciseService service.ExerciseService
	images          storage.ImageURLResolver
}

// NewExerciseHandler creates a new ExerciseHandler.
func NewExerciseHandler(exerciseService service.ExerciseService, images storage.ImageURLResolver) *ExerciseHandler {
	return &ExerciseHandler{exerciseService: exerciseService, images: images}
}

// --- DTOs for API (Data Transfer Objects) ---

// ExerciseResponse is the DTO for returning exercise details.
type ExerciseResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Desc      string          `json:"desc"`
	Image     domain.ImageRef `json:"image"`
	ImageURL  string          `json:"imageUrl,omitempty"` // Loadable location of Image, empty when there is none
	CreatedAt time.Time       `json:"createdAt"`
}

// MapExerciseToResponse converts a domain.Exercise to ExerciseResponse DTO.
// An image that cannot be resolved is logged and left without a URL.
func MapExerciseToResponse(ctx context.Context, images storage.ImageURLResolver, ex *domain.Exercise) ExerciseResponse {
	if ex == nil {
		return ExerciseResponse{}
	}
	resp := ExerciseResponse{
		ID:        ex.ID,
		Name:      ex.Name,
		Desc:      ex.Desc,
		Image:     ex.Image,
		CreatedAt: ex.CreatedAt,
	}
	if images != nil && ex.HasImage() {
		url, err := images.ResolveURL(ctx, ex.Image)
		if err != nil {
			log.Printf("ERROR: Failed to resolve image %s for exercise %s: %v", ex.Image, ex.ID, err)
		} else {
			resp.ImageURL = url
		}
	}
	return resp
}

// MapExercisesToResponse converts a slice of exercises, keeping their order.
func MapExercisesToResponse(ctx context.Context, images storage.ImageURLResolver, exercises []*domain.Exercise) []ExerciseResponse {
	responses := make([]ExerciseResponse, len(exercises))
	for i, ex := range exercises {
		responses[i] = MapExerciseToResponse(ctx, images, ex)
	}
	return responses
}

// --- Handler Methods ---

// ListExercises godoc
// @Summary List exercises
// @Description Returns every exercise in insertion order (built-in entries first).
// @Tags Exercises
// @Produce json
// @Success 200 {array} ExerciseResponse "List of exercises"
// @Router /exercises [get]
func (h *ExerciseHandler) ListExercises(c *gin.Context) {
	exercises := h.exerciseService.ListExercises()
	c.JSON(http.StatusOK, MapExercisesToResponse(c.Request.Context(), h.images, exercises))
}

// GetExercise godoc
// @Summary Get one exercise
// @Tags Exercises
// @Produce json
// @Param id path string true "Exercise ID"
// @Success 200 {object} ExerciseResponse
// @Failure 404 {object} gin.H "Exercise not found"
// @Router /exercises/{id} [get]
func (h *ExerciseHandler) GetExercise(c *gin.Context) {
	exercise, err := h.exerciseService.GetExerciseByID(c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrExerciseNotFound) {
			abortWithError(c, http.StatusNotFound, "Exercise not found.")
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to retrieve exercise.")
		}
		return
	}
	c.JSON(http.StatusOK, MapExerciseToResponse(c.Request.Context(), h.images, exercise))
}
