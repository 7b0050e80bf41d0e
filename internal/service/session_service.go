package service

import (
	"container/list"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v4" // Import JWT library
	"github.com/google/uuid"
)

// --- Error Definitions ---
var (
	ErrSessionNotFound = errors.New("screen session not found")
	ErrInvalidToken    = errors.New("invalid session token")
	ErrTokenExpired    = errors.New("session token has expired")
	ErrTokenGeneration = errors.New("failed to generate session token")
	ErrSessionLimit    = errors.New("too many open screen sessions")
)

// SessionService hands out signed tokens, one per client screen, and maps them
// back to per-session state of type T. Every session shares the same exercise
// store; only the UI state is per session.
type SessionService[T any] interface {
	Open() (token string, sessionID string, err error)
	Resolve(token string) (sessionID string, state T, err error)
	Get(sessionID string) (T, error)
	Count() int
}

// sessionService implements SessionService.
type sessionService[T any] struct {
	jwtSecret     []byte
	jwtExpiration time.Duration
	maxSessions   int
	newState      func() T
	now           func() time.Time

	mu       sync.Mutex
	sessions map[string]*list.Element // Values are *sessionEntry[T]
	byExpiry *list.List               // Oldest expiry at the front
}

type sessionEntry[T any] struct {
	id        string
	state     T
	expiresAt time.Time
}

// NewSessionService creates a session registry holding at most maxSessions live
// sessions (0 means no limit). newState builds the state for a freshly opened session.
func NewSessionService[T any](jwtSecret string, jwtExpiration time.Duration, maxSessions int, newState func() T) SessionService[T] {
	if jwtSecret == "" {
		panic("JWT secret cannot be empty") // Critical configuration
	}
	if jwtExpiration <= 0 {
		jwtExpiration = 24 * time.Hour
	}
	return &sessionService[T]{
		jwtSecret:     []byte(jwtSecret),
		jwtExpiration: jwtExpiration,
		maxSessions:   maxSessions,
		newState:      newState,
		now:           time.Now,
		sessions:      make(map[string]*list.Element),
		byExpiry:      list.New(),
	}
}

// --- JWT Helper ---

// sessionClaims defines the structure of the JWT payload.
type sessionClaims struct {
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

// Open starts a new session and returns its signed token. Once maxSessions
// unexpired sessions are held it fails with ErrSessionLimit.
func (s *sessionService[T]) Open() (string, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.pruneLocked(now)
	if s.maxSessions > 0 && len(s.sessions) >= s.maxSessions {
		return "", "", ErrSessionLimit
	}

	sid := uuid.NewString()
	claims := &sessionClaims{
		SessionID: sid,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sid,
			ExpiresAt: jwt.NewNumericDate(now.Add(s.jwtExpiration)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    "exercise-screen",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", "", ErrTokenGeneration
	}

	s.insertLocked(&sessionEntry[T]{id: sid, state: s.newState(), expiresAt: now.Add(s.jwtExpiration)})
	return signedToken, sid, nil
}

// Resolve validates a token and returns its session state.
func (s *sessionService[T]) Resolve(tokenString string) (string, T, error) {
	var zero T
	claims := &sessionClaims{}
	parser := jwt.Parser{}
	token, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", zero, ErrTokenExpired
		}
		return "", zero, ErrInvalidToken
	}
	if !token.Valid || claims.SessionID == "" {
		return "", zero, ErrInvalidToken
	}
	if claims.ExpiresAt == nil || claims.ExpiresAt.Time.Before(s.now()) {
		return "", zero, ErrTokenExpired
	}

	state, err := s.Get(claims.SessionID)
	if err != nil {
		return "", zero, err
	}
	return claims.SessionID, state, nil
}

// Get looks up a live session by id.
func (s *sessionService[T]) Get(sessionID string) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	elem, ok := s.sessions[sessionID]
	if !ok {
		var zero T
		return zero, ErrSessionNotFound
	}
	entry := elem.Value.(*sessionEntry[T])
	if !entry.expiresAt.After(s.now()) {
		var zero T
		return zero, ErrSessionNotFound
	}
	return entry.state, nil
}

// Count returns the number of sessions currently held, expired ones included
// until the next Open prunes them.
func (s *sessionService[T]) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// insertLocked keeps byExpiry sorted. Every session lives for the same duration,
// so the new entry normally goes straight to the back.
func (s *sessionService[T]) insertLocked(entry *sessionEntry[T]) {
	mark := s.byExpiry.Back()
	for mark != nil && mark.Value.(*sessionEntry[T]).expiresAt.After(entry.expiresAt) {
		mark = mark.Prev()
	}
	if mark == nil {
		s.sessions[entry.id] = s.byExpiry.PushFront(entry)
		return
	}
	s.sessions[entry.id] = s.byExpiry.InsertAfter(entry, mark)
}

// pruneLocked drops expired sessions from the front of byExpiry.
func (s *sessionService[T]) pruneLocked(now time.Time) {
	for front := s.byExpiry.Front(); front != nil; front = s.byExpiry.Front() {
		entry := front.Value.(*sessionEntry[T])
		if entry.expiresAt.After(now) {
			return
		}
		s.byExpiry.Remove(front)
		delete(s.sessions, entry.id)
	}
}
