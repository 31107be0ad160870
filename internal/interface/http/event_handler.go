package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	eventapp "github.com/eventapp/server/internal/application"
	"github.com/eventapp/server/internal/domain/entity"
	"github.com/eventapp/server/internal/domain/repository"
	"github.com/eventapp/server/internal/interface/middleware"
	"github.com/eventapp/server/pkg/response"
	"github.com/eventapp/server/pkg/validation"
)

type EventHandler struct {
	Svc    *eventapp.EventService
	Logger *logrus.Logger
}

func NewEventHandler(svc *eventapp.EventService, logger *logrus.Logger) *EventHandler {
	return &EventHandler{Svc: svc, Logger: logger}
}

type eventRequest struct {
	Title           string  `json:"title" binding:"required"`
	Description     string  `json:"description"`
	Date            string  `json:"date" binding:"required,datetime=2006-01-02"`
	Time            string  `json:"time" binding:"required,datetime=15:04"`
	Location        string  `json:"location" binding:"required"`
	MaxParticipants int     `json:"max_participants" binding:"gte=0"`
	Price           float64 `json:"price" binding:"gte=0"`
	Category        string  `json:"category"`
	Format          string  `json:"format" binding:"required,oneof=offline online hybrid"`
}

func (r eventRequest) toInput() eventapp.EventInput {
	return eventapp.EventInput{
		Title:           r.Title,
		Description:     r.Description,
		Date:            r.Date,
		Time:            r.Time,
		Location:        r.Location,
		MaxParticipants: r.MaxParticipants,
		Price:           r.Price,
		Category:        r.Category,
		Format:          r.Format,
	}
}

func eventPayload(e *entity.Event) gin.H {
	return gin.H{
		"id":               e.ID,
		"title":            e.Title,
		"description":      e.Description,
		"date":             e.Date,
		"time":             e.Time,
		"location":         e.Location,
		"max_participants": e.MaxParticipants,
		"price":            e.Price,
		"category":         e.Category,
		"format":           e.Format,
		"created_by":       e.CreatedBy,
		"creator_name":     e.CreatorName,
		"created_at":       e.CreatedAt,
		"updated_at":       e.UpdatedAt,
	}
}

// List GET /api/events
func (h *EventHandler) List(c *gin.Context) {
	events, err := h.Svc.List(c.Request.Context())
	if err != nil {
		h.Logger.WithError(err).Error("list events failed")
		response.Fail(c, http.StatusInternalServerError, "internal server error", nil)
		return
	}
	out := make([]gin.H, 0, len(events))
	for _, e := range events {
		out = append(out, eventPayload(e))
	}
	response.Success(c, http.StatusOK, out, "events")
}

// Get GET /api/events/:id
func (h *EventHandler) Get(c *gin.Context) {
	e, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.Fail(c, http.StatusNotFound, "Event not found", nil)
			return
		}
		h.Logger.WithError(err).Error("get event failed")
		response.Fail(c, http.StatusInternalServerError, "internal server error", nil)
		return
	}
	response.Success(c, http.StatusOK, eventPayload(e), "event")
}

// Search GET /api/events/search?q=...&size=...
func (h *EventHandler) Search(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		response.Fail(c, http.StatusBadRequest, "query parameter q is required", nil)
		return
	}
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))

	hits, err := h.Svc.Search(c.Request.Context(), q, size)
	if err != nil {
		h.Logger.WithError(err).Error("event search failed")
		response.Fail(c, http.StatusInternalServerError, "internal server error", nil)
		return
	}
	response.Success(c, http.StatusOK, hits, "search results")
}

// Create POST /api/events
func (h *EventHandler) Create(c *gin.Context) {
	var req eventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	uid := c.GetString(middleware.CtxUserIDKey)
	e, err := h.Svc.Create(c.Request.Context(), uid, req.toInput())
	if err != nil {
		h.Logger.WithError(err).Error("create event failed")
		response.Fail(c, http.StatusInternalServerError, "internal server error", nil)
		return
	}
	response.Success(c, http.StatusCreated, eventPayload(e), "Event created successfully")
}

// Update PUT /api/events/:id
func (h *EventHandler) Update(c *gin.Context) {
	var req eventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	uid := c.GetString(middleware.CtxUserIDKey)
	e, err := h.Svc.Update(c.Request.Context(), c.Param("id"), uid, req.toInput())
	if err != nil {
		h.failMutation(c, err, "update event failed")
		return
	}
	response.Success(c, http.StatusOK, eventPayload(e), "Event updated successfully")
}

// Delete DELETE /api/events/:id
func (h *EventHandler) Delete(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	if err := h.Svc.Delete(c.Request.Context(), c.Param("id"), uid); err != nil {
		h.failMutation(c, err, "delete event failed")
		return
	}
	response.Success[any](c, http.StatusOK, nil, "Event deleted successfully")
}

func (h *EventHandler) failMutation(c *gin.Context, err error, logMsg string) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		response.Fail(c, http.StatusNotFound, "Event not found", nil)
	case errors.Is(err, repository.ErrForbidden):
		response.Fail(c, http.StatusForbidden, "Not authorized to modify this resource", nil)
	default:
		h.Logger.WithError(err).Error(logMsg)
		response.Fail(c, http.StatusInternalServerError, "internal server error", nil)
	}
}
