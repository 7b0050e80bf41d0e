package api

import (
	"alcyxob/exercise-screen/internal/repository/memory"
	"alcyxob/exercise-screen/internal/screen"
	"alcyxob/exercise-screen/internal/service"
	"alcyxob/exercise-screen/internal/storage"
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testServer struct {
	router *gin.Engine
}

func newTestServer(t *testing.T, assets StaticAssets) *testServer {
	t.Helper()
	return newLimitedTestServer(t, assets, 0)
}

func newLimitedTestServer(t *testing.T, assets StaticAssets, maxSessions int) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	exerciseService := service.NewExerciseService(memory.NewDefaultExerciseRepository())
	sessions := service.NewSessionService("test-secret", time.Hour, maxSessions, func() *screen.Screen {
		return screen.NewScreen(exerciseService, nil)
	})
	router := gin.New()
	SetupRoutes(router, exerciseService, sessions, storage.NewStaticResolver("/assets"), assets)
	return &testServer{router: router}
}

func (s *testServer) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *testServer) openSession(t *testing.T) string {
	t.Helper()
	w := s.do(t, http.MethodPost, "/api/v1/sessions", "", nil)
	require.Equal(t, http.StatusCreated, w.Code)
	var resp SessionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, screen.OverlayClosed, resp.State.Overlay)
	return resp.Token
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func TestPing(t *testing.T) {
	s := newTestServer(t, StaticAssets{})
	w := s.do(t, http.MethodGet, "/ping", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestListAndGetExercises(t *testing.T) {
	s := newTestServer(t, StaticAssets{})

	w := s.do(t, http.MethodGet, "/api/v1/exercises", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := decode[[]ExerciseResponse](t, w)
	require.Len(t, list, 4)
	assert.Equal(t, "Bench Press", list[0].Name)
	assert.Equal(t, "/assets/bench_press.jpeg", list[0].ImageURL)

	w = s.do(t, http.MethodGet, "/api/v1/exercises/2", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Deadlift", decode[ExerciseResponse](t, w).Name)

	w = s.do(t, http.MethodGet, "/api/v1/exercises/zzz", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestScreenRequiresSession(t *testing.T) {
	s := newTestServer(t, StaticAssets{})

	assert.Equal(t, http.StatusUnauthorized, s.do(t, http.MethodGet, "/api/v1/screen", "", nil).Code)
	assert.Equal(t, http.StatusUnauthorized, s.do(t, http.MethodGet, "/api/v1/screen", "garbage", nil).Code)
}

func TestAddExerciseOverHTTP(t *testing.T) {
	s := newTestServer(t, StaticAssets{})
	token := s.openSession(t)

	w := s.do(t, http.MethodPost, "/api/v1/screen/add", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	frame := decode[ScreenResponse](t, w)
	assert.Equal(t, screen.OverlayAdd, frame.State.Overlay)
	assert.Equal(t, "Pick Image", frame.ImageButtonLabel)

	// Opening detail on top of the add form is refused.
	w = s.do(t, http.MethodPost, "/api/v1/screen/detail/1", token, nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = s.do(t, http.MethodPatch, "/api/v1/screen/draft", token, UpdateDraftRequest{Field: screen.FieldName, Value: "   "})
	require.Equal(t, http.StatusOK, w.Code)
	w = s.do(t, http.MethodPost, "/api/v1/screen/draft/submit", token, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = s.do(t, http.MethodGet, "/api/v1/screen", token, nil)
	assert.Equal(t, screen.OverlayAdd, decode[ScreenResponse](t, w).State.Overlay)

	w = s.do(t, http.MethodPatch, "/api/v1/screen/draft", token, UpdateDraftRequest{Field: screen.FieldName, Value: "  Squat  "})
	require.Equal(t, http.StatusOK, w.Code)
	w = s.do(t, http.MethodPatch, "/api/v1/screen/draft", token, map[string]string{"field": "weight", "value": "1"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodPost, "/api/v1/screen/draft/submit", token, nil)
	require.Equal(t, http.StatusCreated, w.Code)
	submitted := decode[SubmitResponse](t, w)
	assert.Equal(t, "Squat", submitted.Exercise.Name)
	assert.Equal(t, screen.OverlayClosed, submitted.Screen.State.Overlay)
	require.Len(t, submitted.Screen.Exercises, 5)
	assert.Equal(t, "Squat", submitted.Screen.Exercises[4].Name)

	// The shared list reflects the new entry.
	w = s.do(t, http.MethodGet, "/api/v1/exercises", "", nil)
	assert.Len(t, decode[[]ExerciseResponse](t, w), 5)
}

func TestDetailOverHTTP(t *testing.T) {
	s := newTestServer(t, StaticAssets{})
	token := s.openSession(t)

	w := s.do(t, http.MethodPost, "/api/v1/screen/detail/1", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	frame := decode[ScreenResponse](t, w)
	assert.Equal(t, screen.OverlayDetail, frame.State.Overlay)
	assert.Equal(t, "1", frame.State.DetailID)
	require.NotNil(t, frame.Detail)
	assert.Equal(t, "Bench Press", frame.Detail.Name)

	w = s.do(t, http.MethodPost, "/api/v1/screen/add", token, nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = s.do(t, http.MethodPost, "/api/v1/screen/close", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	frame = decode[ScreenResponse](t, w)
	assert.Equal(t, screen.OverlayClosed, frame.State.Overlay)
	assert.Nil(t, frame.Detail)
}

func TestSessionLimitAnswers503(t *testing.T) {
	s := newLimitedTestServer(t, StaticAssets{}, 2)
	first := s.openSession(t)
	s.openSession(t)

	w := s.do(t, http.MethodPost, "/api/v1/sessions", "", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	// Sessions already handed out keep working.
	assert.Equal(t, http.StatusOK, s.do(t, http.MethodGet, "/api/v1/screen", first, nil).Code)
}

func TestSessionsHaveSeparateOverlays(t *testing.T) {
	s := newTestServer(t, StaticAssets{})
	phone := s.openSession(t)
	tablet := s.openSession(t)

	require.Equal(t, http.StatusOK, s.do(t, http.MethodPost, "/api/v1/screen/add", phone, nil).Code)

	w := s.do(t, http.MethodGet, "/api/v1/screen", tablet, nil)
	assert.Equal(t, screen.OverlayClosed, decode[ScreenResponse](t, w).State.Overlay)
}

func TestImageSelectionOverHTTP(t *testing.T) {
	s := newTestServer(t, StaticAssets{})
	token := s.openSession(t)

	// No form open yet.
	assert.Equal(t, http.StatusConflict, s.do(t, http.MethodPost, "/api/v1/screen/draft/image", token, nil).Code)

	require.Equal(t, http.StatusOK, s.do(t, http.MethodPost, "/api/v1/screen/add", token, nil).Code)
	w := s.do(t, http.MethodPost, "/api/v1/screen/draft/image", token, nil)
	require.Equal(t, http.StatusAccepted, w.Code)
	ticket := decode[ImageSelectionResponse](t, w).Ticket
	assert.Equal(t, "images", string(ticket.Options.Mode))

	assert.Equal(t, http.StatusConflict, s.do(t, http.MethodPost, "/api/v1/screen/draft/image", token, nil).Code)

	// A device that lost the 202 can pick the ticket up from the frame.
	w = s.do(t, http.MethodGet, "/api/v1/screen", token, nil)
	frame := decode[ScreenResponse](t, w)
	assert.True(t, frame.State.PickPending)
	require.NotNil(t, frame.PendingPick)
	assert.Equal(t, ticket.ID, frame.PendingPick.ID)

	w = s.do(t, http.MethodPost, "/api/v1/screen/draft/image/"+ticket.ID, token, map[string]any{
		"cancelled": false,
		"assets":    []map[string]string{{"uri": "file:///DCIM/squat.jpg"}},
	})
	require.Equal(t, http.StatusOK, w.Code)
	resolved := decode[ImageResolvedResponse](t, w)
	assert.True(t, resolved.Applied)
	assert.Equal(t, "file:///DCIM/squat.jpg", resolved.Image.URI)
	assert.Equal(t, "Change Image", resolved.Screen.ImageButtonLabel)
	assert.Nil(t, resolved.Screen.PendingPick)

	// A picker error keeps the previous image.
	w = s.do(t, http.MethodPost, "/api/v1/screen/draft/image", token, nil)
	require.Equal(t, http.StatusAccepted, w.Code)
	second := decode[ImageSelectionResponse](t, w).Ticket
	w = s.do(t, http.MethodPost, "/api/v1/screen/draft/image/"+second.ID, token, map[string]any{"error": "permission denied"})
	require.Equal(t, http.StatusOK, w.Code)
	resolved = decode[ImageResolvedResponse](t, w)
	assert.False(t, resolved.Applied)
	assert.Equal(t, "file:///DCIM/squat.jpg", resolved.Screen.State.Draft.Image.URI)
}

func TestStaleImageResultAfterCancel(t *testing.T) {
	s := newTestServer(t, StaticAssets{})
	token := s.openSession(t)

	require.Equal(t, http.StatusOK, s.do(t, http.MethodPost, "/api/v1/screen/add", token, nil).Code)
	w := s.do(t, http.MethodPost, "/api/v1/screen/draft/image", token, nil)
	require.Equal(t, http.StatusAccepted, w.Code)
	ticket := decode[ImageSelectionResponse](t, w).Ticket

	require.Equal(t, http.StatusOK, s.do(t, http.MethodPost, "/api/v1/screen/draft/cancel", token, nil).Code)

	w = s.do(t, http.MethodPost, "/api/v1/screen/draft/image/"+ticket.ID, token, map[string]any{
		"assets": []map[string]string{{"uri": "file:///late.jpg"}},
	})
	require.Equal(t, http.StatusOK, w.Code)
	resolved := decode[ImageResolvedResponse](t, w)
	assert.False(t, resolved.Applied)
	assert.Nil(t, resolved.Screen.State.Draft)
	assert.Equal(t, screen.OverlayClosed, resolved.Screen.State.Overlay)
}

func TestStaticAssetsAreServed(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "deadlift.jpeg"), []byte("jpeg-bytes"), 0o644))
	s := newTestServer(t, StaticAssets{URLPrefix: "/assets", Dir: dir})

	w := s.do(t, http.MethodGet, "/assets/deadlift.jpeg", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "jpeg-bytes", w.Body.String())
}
