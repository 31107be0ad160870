package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eventapp/server/internal/domain/repository"
	"github.com/eventapp/server/pkg/response"
)

// Resource kinds accepted by RequireOwner.
const (
	ResourceEvent = "event"
	ResourceUser  = "user"
)

// RequireOwner loads the owning identifier of the :id resource and compares
// it to the authenticated user. Absent resource is 404, foreign owner is 403.
// Runs after Auth; expects userID in the context.
func RequireOwner(kind string, events repository.EventRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := c.GetString(CtxUserIDKey)
		id := c.Param("id")

		var owner string
		switch kind {
		case ResourceEvent:
			var err error
			owner, err = events.OwnerOf(c.Request.Context(), id)
			if err != nil {
				if errors.Is(err, repository.ErrNotFound) {
					response.Abort(c, http.StatusNotFound, "resource not found", nil)
					return
				}
				response.Abort(c, http.StatusInternalServerError, "internal server error", nil)
				return
			}
		case ResourceUser:
			// Users own themselves; the path id is the owner.
			owner = id
		default:
			response.Abort(c, http.StatusBadRequest, "invalid resource type", nil)
			return
		}

		if owner != uid {
			response.Abort(c, http.StatusForbidden, "not authorized to modify this resource", nil)
			return
		}
		c.Next()
	}
}
