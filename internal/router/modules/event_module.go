package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/eventapp/server/internal/container"
	"github.com/eventapp/server/internal/domain/repository"
	handlers "github.com/eventapp/server/internal/interface/http"
	"github.com/eventapp/server/internal/interface/middleware"
	"github.com/eventapp/server/pkg/helpers"
)

// EventModule wires the event endpoints. Listing, search and detail are
// public; mutations require a valid token and pass through the ownership
// guard before the handler's own WHERE created_by clause.

type EventModule struct {
	Handler *handlers.EventHandler
	Events  repository.EventRepository
	JWT     *helpers.JWTManager
}

func NewEventModule(h *handlers.EventHandler, events repository.EventRepository, jwt *helpers.JWTManager) *EventModule {
	return &EventModule{Handler: h, Events: events, JWT: jwt}
}

func (m *EventModule) Register(rg *gin.RouterGroup) {
	publicLimiter := middleware.RateLimit(container.GetRedis(), 300, time.Minute, middleware.KeyByIP(), nil)

	rg.GET("/events", publicLimiter, m.Handler.List)
	rg.GET("/events/search", publicLimiter, m.Handler.Search)
	rg.GET("/events/:id", publicLimiter, m.Handler.Get)

	auth := rg.Group("/events")
	auth.Use(middleware.Auth(m.JWT))
	auth.Use(middleware.RateLimit(container.GetRedis(), 60, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.POST("", m.Handler.Create)

		owner := middleware.RequireOwner(middleware.ResourceEvent, m.Events)
		auth.PUT("/:id", owner, m.Handler.Update)
		auth.DELETE("/:id", owner, m.Handler.Delete)
	}
}
