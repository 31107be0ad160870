package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventapp/server/internal/domain/entity"
	"github.com/eventapp/server/internal/infrastructure/memory"
)

func ownershipRouter(events *memory.EventRepository, uid string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.PUT("/events/:id",
		func(c *gin.Context) { c.Set(CtxUserIDKey, uid) },
		RequireOwner(ResourceEvent, events),
		func(c *gin.Context) { c.Status(http.StatusOK) },
	)
	return r
}

func TestRequireOwnerEvent(t *testing.T) {
	events := memory.NewEventRepository()
	e := &entity.Event{Title: "x", CreatedBy: "owner-1"}
	require.NoError(t, events.Create(context.Background(), e))

	// Owner passes.
	w := httptest.NewRecorder()
	ownershipRouter(events, "owner-1").ServeHTTP(w,
		httptest.NewRequest(http.MethodPut, "/events/"+e.ID, nil))
	assert.Equal(t, http.StatusOK, w.Code)

	// Non-owner is forbidden.
	w = httptest.NewRecorder()
	ownershipRouter(events, "intruder").ServeHTTP(w,
		httptest.NewRequest(http.MethodPut, "/events/"+e.ID, nil))
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Missing resource is a 404 before any ownership question.
	w = httptest.NewRecorder()
	ownershipRouter(events, "owner-1").ServeHTTP(w,
		httptest.NewRequest(http.MethodPut, "/events/missing", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRequireOwnerUser(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.PUT("/users/:id",
		func(c *gin.Context) { c.Set(CtxUserIDKey, "u-1") },
		RequireOwner(ResourceUser, nil),
		func(c *gin.Context) { c.Status(http.StatusOK) },
	)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPut, "/users/u-1", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPut, "/users/u-2", nil))
	assert.Equal(t, http.StatusForbidden, w.Code)
}
