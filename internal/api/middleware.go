package api

import (
	"alcyxob/exercise-screen/internal/screen"
	"alcyxob/exercise-screen/internal/service"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// Constants for context keys
const (
	ContextSessionIDKey = "sessionID"
	ContextScreenKey    = "screen"
)

// SessionMiddleware creates a Gin middleware that resolves the Bearer session
// token to the caller's screen.
func SessionMiddleware(sessions service.SessionService[*screen.Screen]) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortWithError(c, http.StatusUnauthorized, "Authorization header is missing")
			return
		}

		// Expecting "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			abortWithError(c, http.StatusUnauthorized, "Authorization header format must be Bearer {token}")
			return
		}

		sid, scr, err := sessions.Resolve(parts[1])
		if err != nil {
			switch {
			case errors.Is(err, service.ErrTokenExpired):
				abortWithError(c, http.StatusUnauthorized, "Session has expired")
			case errors.Is(err, service.ErrSessionNotFound):
				abortWithError(c, http.StatusUnauthorized, "Session not found")
			default:
				abortWithError(c, http.StatusUnauthorized, "Invalid session token")
			}
			return
		}

		c.Set(ContextSessionIDKey, sid)
		c.Set(ContextScreenKey, scr)
		c.Next()
	}
}

// Helper to return JSON error response and abort request
func abortWithError(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, gin.H{"error": message})
}

// Helper function to get the caller's screen from context (used by handlers)
func getScreenFromContext(c *gin.Context) (*screen.Screen, error) {
	raw, exists := c.Get(ContextScreenKey)
	if !exists {
		return nil, errors.New("screen not found in context")
	}
	scr, ok := raw.(*screen.Screen)
	if !ok || scr == nil {
		return nil, errors.New("invalid screen type in context")
	}
	return scr, nil
}
