package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	adapterHTTP "github.com/comitanigiacomo/habitly/internal/adapters/handler/http"
	"github.com/comitanigiacomo/habitly/internal/adapters/repository"
	"github.com/comitanigiacomo/habitly/internal/core/domain"
	"github.com/comitanigiacomo/habitly/internal/core/services"
)

var fixedNow = time.Date(2025, 7, 10, 15, 30, 0, 0, time.UTC)

type recordingEnqueuer struct {
	mu  sync.Mutex
	ids []string
}

func (r *recordingEnqueuer) Enqueue(habitID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ids = append(r.ids, habitID)
}

func (r *recordingEnqueuer) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.ids)
}

type okPinger struct{}

func (okPinger) PingContext(ctx context.Context) error { return nil }

type testServer struct {
	router   *gin.Engine
	tokens   *services.TokenService
	users    *repository.InMemoryUserRepository
	habits   *repository.InMemoryHabitRepository
	events   *repository.InMemoryEventRepository
	enqueued *recordingEnqueuer
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	users := repository.NewInMemoryUserRepository()
	events := repository.NewInMemoryEventRepository()
	habits := repository.NewInMemoryHabitRepository(events)
	enqueued := &recordingEnqueuer{}

	tokens := services.NewTokenService("handler-test-secret", "habitly-test", time.Hour, users)
	clock := func() time.Time { return fixedNow }

	router := adapterHTTP.NewRouter(adapterHTTP.RouterDependencies{
		AuthHandler:      adapterHTTP.NewAuthHandler(services.NewAuthService(users), tokens),
		HabitHandler:     adapterHTTP.NewHabitHandler(services.NewHabitService(habits)),
		EventHandler:     adapterHTTP.NewEventHandler(services.NewEventService(events, habits, enqueued).WithClock(clock)),
		AnalyticsHandler: adapterHTTP.NewAnalyticsHandler(services.NewAnalyticsService(habits, events, users).WithClock(clock)),
		Tokens:           tokens,
		DB:               okPinger{},
		StartTime:        time.Now(),
	})

	return &testServer{
		router:   router,
		tokens:   tokens,
		users:    users,
		habits:   habits,
		events:   events,
		enqueued: enqueued,
	}
}

// newUser stores a user directly and returns a bearer token for it.
func (s *testServer) newUser(t *testing.T, name string) (string, string) {
	t.Helper()

	user, err := domain.NewUser(uuid.NewString(), name)
	require.NoError(t, err)
	require.NoError(t, s.users.Create(context.Background(), user))

	token, err := s.tokens.GenerateToken(user.ID)
	require.NoError(t, err)
	return user.ID, token
}

func (s *testServer) newHabit(t *testing.T, userID, name string, period domain.Periodicity) *domain.Habit {
	t.Helper()

	h, err := domain.NewHabit(userID, name, "", period)
	require.NoError(t, err)
	require.NoError(t, s.habits.Create(context.Background(), h))
	return h
}

func (s *testServer) addEvent(t *testing.T, h *domain.Habit, date string, before, after domain.Mood) *domain.HabitEvent {
	t.Helper()

	d, err := domain.ParseDate(date)
	require.NoError(t, err)
	e := domain.NewHabitEvent(h.ID, h.UserID, d, before, after)
	require.NoError(t, s.events.Create(context.Background(), e))
	return e
}

func (s *testServer) do(method, path, token, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()

	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}
