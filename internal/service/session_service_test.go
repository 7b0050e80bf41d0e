package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeScreenState struct{ n int }

func newTestSessions(t *testing.T) *sessionService[*fakeScreenState] {
	t.Helper()
	return newLimitedTestSessions(t, 0)
}

func newLimitedTestSessions(t *testing.T, maxSessions int) *sessionService[*fakeScreenState] {
	t.Helper()
	n := 0
	svc := NewSessionService("test-secret", time.Hour, maxSessions, func() *fakeScreenState {
		n++
		return &fakeScreenState{n: n}
	})
	return svc.(*sessionService[*fakeScreenState])
}

func TestSessionOpenAndResolve(t *testing.T) {
	svc := newTestSessions(t)

	token, sid, err := svc.Open()
	require.NoError(t, err)
	require.NotEmpty(t, token)

	gotID, state, err := svc.Resolve(token)
	require.NoError(t, err)
	assert.Equal(t, sid, gotID)
	assert.Equal(t, 1, state.n)

	// Each session gets its own state.
	token2, _, err := svc.Open()
	require.NoError(t, err)
	_, state2, err := svc.Resolve(token2)
	require.NoError(t, err)
	assert.NotSame(t, state, state2)
	assert.Equal(t, 2, svc.Count())
}

func TestSessionResolveRejectsForeignTokens(t *testing.T) {
	svc := newTestSessions(t)

	other := NewSessionService("other-secret", time.Hour, 0, func() *fakeScreenState { return &fakeScreenState{} })
	foreign, _, err := other.Open()
	require.NoError(t, err)

	_, _, err = svc.Resolve(foreign)
	assert.ErrorIs(t, err, ErrInvalidToken)
	_, _, err = svc.Resolve("not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)

	none := jwt.NewWithClaims(jwt.SigningMethodNone, &sessionClaims{SessionID: "x"})
	unsigned, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, _, err = svc.Resolve(unsigned)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestSessionExpiry(t *testing.T) {
	svc := newTestSessions(t)
	svc.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	token, sid, err := svc.Open()
	require.NoError(t, err)

	svc.now = time.Now
	_, _, err = svc.Resolve(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
	_, err = svc.Get(sid)
	assert.ErrorIs(t, err, ErrSessionNotFound)

	// The expired session is pruned on the next Open.
	_, _, err = svc.Open()
	require.NoError(t, err)
	assert.Equal(t, 1, svc.Count())
}

func TestSessionUnknownID(t *testing.T) {
	svc := newTestSessions(t)
	_, err := svc.Get("missing")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestNewSessionServicePanicsWithoutSecret(t *testing.T) {
	assert.Panics(t, func() {
		NewSessionService("", time.Hour, 0, func() int { return 0 })
	})
}

func TestSessionLimit(t *testing.T) {
	svc := newLimitedTestSessions(t, 3)
	start := time.Now()
	svc.now = func() time.Time { return start }

	var tokens []string
	for i := 0; i < 3; i++ {
		token, _, err := svc.Open()
		require.NoError(t, err)
		tokens = append(tokens, token)
	}

	_, _, err := svc.Open()
	assert.ErrorIs(t, err, ErrSessionLimit)
	assert.Equal(t, 3, svc.Count())

	// Refusing a new session leaves the existing ones usable.
	for _, token := range tokens {
		_, _, err := svc.Resolve(token)
		assert.NoError(t, err)
	}

	// Once the held sessions expire there is room again.
	svc.now = func() time.Time { return start.Add(2 * time.Hour) }
	_, _, err = svc.Open()
	require.NoError(t, err)
	assert.Equal(t, 1, svc.Count())
}

func TestSessionPruneKeepsOnlyLiveSessions(t *testing.T) {
	svc := newTestSessions(t)
	clock := time.Now()
	svc.now = func() time.Time { return clock }

	// One open per minute with a one hour lifetime: never more than an hour's worth is held.
	for i := 0; i < 5000; i++ {
		_, _, err := svc.Open()
		require.NoError(t, err)
		assert.LessOrEqual(t, svc.Count(), 61)
		clock = clock.Add(time.Minute)
	}
	assert.Equal(t, svc.Count(), svc.byExpiry.Len())
}

func TestSessionPruneWithClockStepBack(t *testing.T) {
	svc := newTestSessions(t)
	start := time.Now()

	svc.now = func() time.Time { return start }
	_, late, err := svc.Open()
	require.NoError(t, err)
	svc.now = func() time.Time { return start.Add(-30 * time.Minute) }
	_, early, err := svc.Open()
	require.NoError(t, err)

	// The earlier expiry is pruned first even though it was opened second.
	svc.now = func() time.Time { return start.Add(45 * time.Minute) }
	_, _, err = svc.Open()
	require.NoError(t, err)

	_, err = svc.Get(early)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	_, err = svc.Get(late)
	assert.NoError(t, err)
	assert.Equal(t, 2, svc.Count())
}
