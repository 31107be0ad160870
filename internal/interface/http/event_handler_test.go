package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateEventRequiresToken(t *testing.T) {
	t.Parallel()
	e := newTestEnv()

	w := e.do(t, http.MethodPost, "/api/events", "", gin.H{
		"title": "X", "date": "2026-10-01", "time": "19:00", "location": "Jakarta", "format": "offline",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCreateEventValidation(t *testing.T) {
	t.Parallel()
	e := newTestEnv()
	_, token := e.register(t, "Alice", "alice@example.com", "secret123")

	for name, body := range map[string]gin.H{
		"bad format": {"title": "X", "date": "2026-10-01", "time": "19:00", "location": "J", "format": "vr"},
		"bad date":   {"title": "X", "date": "01-10-2026", "time": "19:00", "location": "J", "format": "offline"},
		"bad time":   {"title": "X", "date": "2026-10-01", "time": "7pm", "location": "J", "format": "offline"},
		"no title":   {"date": "2026-10-01", "time": "19:00", "location": "J", "format": "offline"},
		"neg price":  {"title": "X", "date": "2026-10-01", "time": "19:00", "location": "J", "format": "offline", "price": -1},
	} {
		w := e.do(t, http.MethodPost, "/api/events", token, body)
		assert.Equal(t, http.StatusBadRequest, w.Code, name)
	}
}

func TestEventCreateAndGet(t *testing.T) {
	t.Parallel()
	e := newTestEnv()
	id, token := e.register(t, "Alice", "alice@example.com", "secret123")
	eventID := e.createEvent(t, token, "Go Meetup")

	w := e.do(t, http.MethodGet, "/api/events/"+eventID, "", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	env := decode(t, w)
	assert.Equal(t, "Go Meetup", env.Data["title"])
	assert.Equal(t, id, env.Data["created_by"])
}

func TestEventGetMissing(t *testing.T) {
	t.Parallel()
	e := newTestEnv()

	w := e.do(t, http.MethodGet, "/api/events/00000000-0000-0000-0000-000000000000", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestEventList(t *testing.T) {
	t.Parallel()
	e := newTestEnv()
	_, token := e.register(t, "Alice", "alice@example.com", "secret123")
	e.createEvent(t, token, "First")
	e.createEvent(t, token, "Second")

	w := e.do(t, http.MethodGet, "/api/events", "", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var env listEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.Len(t, env.Data, 2)
}

func TestEventUpdateByNonCreator(t *testing.T) {
	t.Parallel()
	e := newTestEnv()
	_, ownerToken := e.register(t, "Alice", "alice@example.com", "secret123")
	_, otherToken := e.register(t, "Bob", "bob@example.com", "secret123")
	eventID := e.createEvent(t, ownerToken, "Go Meetup")

	w := e.do(t, http.MethodPut, "/api/events/"+eventID, otherToken, gin.H{
		"title": "Hijacked", "date": "2026-10-01", "time": "19:00", "location": "Jakarta", "format": "offline",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestEventUpdateByCreator(t *testing.T) {
	t.Parallel()
	e := newTestEnv()
	_, token := e.register(t, "Alice", "alice@example.com", "secret123")
	eventID := e.createEvent(t, token, "Go Meetup")

	w := e.do(t, http.MethodPut, "/api/events/"+eventID, token, gin.H{
		"title": "Go Meetup v2", "date": "2026-10-02", "time": "18:00", "location": "Bandung", "format": "hybrid",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	env := decode(t, w)
	assert.Equal(t, "Go Meetup v2", env.Data["title"])
	assert.Equal(t, "hybrid", env.Data["format"])
}

func TestEventUpdateMissing(t *testing.T) {
	t.Parallel()
	e := newTestEnv()
	_, token := e.register(t, "Alice", "alice@example.com", "secret123")

	w := e.do(t, http.MethodPut, "/api/events/00000000-0000-0000-0000-000000000000", token, gin.H{
		"title": "X", "date": "2026-10-01", "time": "19:00", "location": "J", "format": "offline",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestEventDelete(t *testing.T) {
	t.Parallel()
	e := newTestEnv()
	_, ownerToken := e.register(t, "Alice", "alice@example.com", "secret123")
	_, otherToken := e.register(t, "Bob", "bob@example.com", "secret123")
	eventID := e.createEvent(t, ownerToken, "Go Meetup")

	w := e.do(t, http.MethodDelete, "/api/events/"+eventID, otherToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = e.do(t, http.MethodDelete, "/api/events/"+eventID, ownerToken, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = e.do(t, http.MethodGet, "/api/events/"+eventID, "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestEventSearchRequiresQuery(t *testing.T) {
	t.Parallel()
	e := newTestEnv()

	w := e.do(t, http.MethodGet, "/api/events/search", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
