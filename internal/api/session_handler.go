package api

import (
	"alcyxob/exercise-screen/internal/screen"
	"alcyxob/exercise-screen/internal/service"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// SessionHandler opens per-client screen sessions.
type SessionHandler struct {
	sessions service.SessionService[*screen.Screen]
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(sessions service.SessionService[*screen.Screen]) *SessionHandler {
	return &SessionHandler{sessions: sessions}
}

// --- Request/Response Structs ---

type SessionResponse struct {
	Token     string         `json:"token"`
	SessionID string         `json:"sessionId"`
	State     screen.UIState `json:"state"`
}

// OpenSession godoc
// @Summary Open a screen session
// @Description Creates a new screen (overlay Closed) and returns a Bearer token for it.
// @Tags Sessions
// @Produce json
// @Success 201 {object} SessionResponse
// @Failure 503 {object} gin.H "Session limit reached"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /sessions [post]
func (h *SessionHandler) OpenSession(c *gin.Context) {
	token, sid, err := h.sessions.Open()
	if errors.Is(err, service.ErrSessionLimit) {
		log.Printf("WARN: Refusing screen session: %v", err)
		abortWithError(c, http.StatusServiceUnavailable, "Too many open sessions, try again later.")
		return
	}
	if err != nil {
		log.Printf("ERROR: Failed to open screen session: %v", err)
		abortWithError(c, http.StatusInternalServerError, "Failed to open session.")
		return
	}
	scr, err := h.sessions.Get(sid)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to open session.")
		return
	}
	c.JSON(http.StatusCreated, SessionResponse{Token: token, SessionID: sid, State: scr.State()})
}
