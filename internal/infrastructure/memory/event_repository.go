package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/eventapp/server/internal/domain/entity"
	"github.com/eventapp/server/internal/domain/repository"
)

type EventRepository struct {
	mu     sync.RWMutex
	events map[string]*entity.Event
}

func NewEventRepository() *EventRepository {
	return &EventRepository{events: make(map[string]*entity.Event)}
}

func cloneEvent(e *entity.Event) *entity.Event {
	c := *e
	return &c
}

func (r *EventRepository) Create(_ context.Context, e *entity.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	e.ID = uuid.NewString()
	e.CreatedAt = time.Now()
	e.UpdatedAt = e.CreatedAt
	r.events[e.ID] = cloneEvent(e)
	return nil
}

func (r *EventRepository) GetByID(_ context.Context, id string) (*entity.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.events[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return cloneEvent(e), nil
}

func (r *EventRepository) List(_ context.Context) ([]*entity.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*entity.Event, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, cloneEvent(e))
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *EventRepository) Update(_ context.Context, e *entity.Event, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.events[e.ID]
	if !ok {
		return repository.ErrNotFound
	}
	if cur.CreatedBy != userID {
		return repository.ErrForbidden
	}
	cur.Title = e.Title
	cur.Description = e.Description
	cur.Date = e.Date
	cur.Time = e.Time
	cur.Location = e.Location
	cur.MaxParticipants = e.MaxParticipants
	cur.Price = e.Price
	cur.Category = e.Category
	cur.Format = e.Format
	cur.UpdatedAt = time.Now()
	return nil
}

func (r *EventRepository) Delete(_ context.Context, id, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.events[id]
	if !ok {
		return repository.ErrNotFound
	}
	if cur.CreatedBy != userID {
		return repository.ErrForbidden
	}
	delete(r.events, id)
	return nil
}

func (r *EventRepository) OwnerOf(_ context.Context, id string) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.events[id]
	if !ok {
		return "", repository.ErrNotFound
	}
	return e.CreatedBy, nil
}

var _ repository.EventRepository = (*EventRepository)(nil)
