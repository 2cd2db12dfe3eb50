package http_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/habitly/internal/core/domain"
)

func TestRecordEvent(t *testing.T) {
	t.Run("Success: 201 with explicit date and mood aliases", func(t *testing.T) {
		srv := newTestServer(t)
		userID, token := srv.newUser(t, "alice")
		h := srv.newHabit(t, userID, "Meditation", domain.Daily)

		w := srv.do(http.MethodPost, "/api/v1/habits/"+h.ID+"/events", token,
			`{"date": "2025-07-08", "mood_before": "neutral", "mood_after": "😄"}`)

		require.Equal(t, http.StatusCreated, w.Code)
		e := decode[domain.HabitEvent](t, w)
		assert.Equal(t, "2025-07-08", domain.FormatDate(e.Date))
		assert.Equal(t, domain.MoodNeutral, e.MoodBefore)
		assert.Equal(t, domain.MoodPositive, e.MoodAfter)
		assert.Equal(t, 1, srv.enqueued.Count())
	})

	t.Run("Success: 201 date defaults to today, moods optional", func(t *testing.T) {
		srv := newTestServer(t)
		userID, token := srv.newUser(t, "alice")
		h := srv.newHabit(t, userID, "Meditation", domain.Daily)

		w := srv.do(http.MethodPost, "/api/v1/habits/"+h.ID+"/events", token, "")

		require.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), `"date":"2025-07-10"`)
		assert.NotContains(t, w.Body.String(), "mood_before")
	})

	t.Run("Fail: 400 Bad Request (Invalid Input)", func(t *testing.T) {
		srv := newTestServer(t)
		userID, token := srv.newUser(t, "alice")
		h := srv.newHabit(t, userID, "Meditation", domain.Daily)

		bodies := []string{
			`{"mood_before": "ecstatic"}`,
			`{"mood_after": ":)"}`,
			`{"date": "07/10/2025"}`,
			`{"date": "2025-02-30"}`,
		}

		for _, body := range bodies {
			w := srv.do(http.MethodPost, "/api/v1/habits/"+h.ID+"/events", token, body)
			assert.Equal(t, http.StatusBadRequest, w.Code, "body: "+body)
		}
		assert.Zero(t, srv.enqueued.Count())
	})

	t.Run("Fail: 403 Forbidden (Habit of another user)", func(t *testing.T) {
		srv := newTestServer(t)
		aliceID, _ := srv.newUser(t, "alice")
		_, bobToken := srv.newUser(t, "bob")
		h := srv.newHabit(t, aliceID, "Meditation", domain.Daily)

		w := srv.do(http.MethodPost, "/api/v1/habits/"+h.ID+"/events", bobToken, "")

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("Fail: 404 Not Found (Unknown Habit)", func(t *testing.T) {
		srv := newTestServer(t)
		_, token := srv.newUser(t, "alice")

		w := srv.do(http.MethodPost, "/api/v1/habits/missing/events", token, "")

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestListEvents(t *testing.T) {
	srv := newTestServer(t)
	userID, token := srv.newUser(t, "alice")
	h := srv.newHabit(t, userID, "Reading", domain.Daily)

	srv.addEvent(t, h, "2025-07-09", domain.MoodNone, domain.MoodNone)
	srv.addEvent(t, h, "2025-07-01", domain.MoodNegative, domain.MoodPositive)
	srv.addEvent(t, h, "2025-07-05", domain.MoodNone, domain.MoodNone)

	w := srv.do(http.MethodGet, "/api/v1/habits/"+h.ID+"/events", token, "")

	require.Equal(t, http.StatusOK, w.Code)
	events := decode[[]domain.HabitEvent](t, w)
	require.Len(t, events, 3)

	got := []string{
		domain.FormatDate(events[0].Date),
		domain.FormatDate(events[1].Date),
		domain.FormatDate(events[2].Date),
	}
	assert.Equal(t, []string{"2025-07-09", "2025-07-01", "2025-07-05"}, got, "insertion order is kept")
	assert.Equal(t, domain.MoodNegative, events[1].MoodBefore)
}

func TestDeleteEventsByDate(t *testing.T) {
	t.Run("Success: every event of the day is removed", func(t *testing.T) {
		srv := newTestServer(t)
		userID, token := srv.newUser(t, "alice")
		h := srv.newHabit(t, userID, "Meditation", domain.Daily)

		srv.addEvent(t, h, "2025-07-02", domain.MoodNone, domain.MoodNone)
		srv.addEvent(t, h, "2025-07-02", domain.MoodNeutral, domain.MoodNone)
		srv.addEvent(t, h, "2025-07-03", domain.MoodNone, domain.MoodNone)

		w := srv.do(http.MethodDelete, "/api/v1/habits/"+h.ID+"/events?date=2025-07-02", token, "")

		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"deleted": 2}`, w.Body.String())
		assert.Equal(t, 1, srv.enqueued.Count())

		w = srv.do(http.MethodGet, "/api/v1/habits/"+h.ID+"/events", token, "")
		assert.Len(t, decode[[]domain.HabitEvent](t, w), 1)
	})

	t.Run("Success: nothing on that day", func(t *testing.T) {
		srv := newTestServer(t)
		userID, token := srv.newUser(t, "alice")
		h := srv.newHabit(t, userID, "Meditation", domain.Daily)

		w := srv.do(http.MethodDelete, "/api/v1/habits/"+h.ID+"/events?date=2025-07-02", token, "")

		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"deleted": 0}`, w.Body.String())
		assert.Zero(t, srv.enqueued.Count())
	})

	t.Run("Fail: 400 missing or malformed date", func(t *testing.T) {
		srv := newTestServer(t)
		userID, token := srv.newUser(t, "alice")
		h := srv.newHabit(t, userID, "Meditation", domain.Daily)

		for _, q := range []string{"", "?date=yesterday", "?date=2025-13-01"} {
			w := srv.do(http.MethodDelete, "/api/v1/habits/"+h.ID+"/events"+q, token, "")
			assert.Equal(t, http.StatusBadRequest, w.Code, "query: "+q)
		}
	})
}

func TestDeleteEvent(t *testing.T) {
	t.Run("Success: 204 No Content", func(t *testing.T) {
		srv := newTestServer(t)
		userID, token := srv.newUser(t, "alice")
		h := srv.newHabit(t, userID, "Meditation", domain.Daily)
		e := srv.addEvent(t, h, "2025-07-02", domain.MoodNone, domain.MoodNone)

		w := srv.do(http.MethodDelete, "/api/v1/events/"+e.ID, token, "")

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, 1, srv.enqueued.Count())

		w = srv.do(http.MethodDelete, "/api/v1/events/"+e.ID, token, "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Fail: 403 Forbidden (Event of another user)", func(t *testing.T) {
		srv := newTestServer(t)
		aliceID, _ := srv.newUser(t, "alice")
		_, bobToken := srv.newUser(t, "bob")
		h := srv.newHabit(t, aliceID, "Meditation", domain.Daily)
		e := srv.addEvent(t, h, "2025-07-02", domain.MoodNone, domain.MoodNone)

		w := srv.do(http.MethodDelete, "/api/v1/events/"+e.ID, bobToken, "")

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}
