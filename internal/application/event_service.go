package application

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/sirupsen/logrus"

	"github.com/eventapp/server/internal/domain/entity"
	"github.com/eventapp/server/internal/domain/repository"
)

// EventService wraps event CRUD and keeps the search index in step with the
// store. Indexing is best effort; the relational row is the source of truth.
type EventService struct {
	Repo          repository.EventRepository
	ES            *elasticsearch.Client
	ESEventsIndex string
	Logger        *logrus.Logger
}

func NewEventService(repo repository.EventRepository, es *elasticsearch.Client, esEventsIndex string, logger *logrus.Logger) *EventService {
	return &EventService{Repo: repo, ES: es, ESEventsIndex: esEventsIndex, Logger: logger}
}

type EventInput struct {
	Title           string
	Description     string
	Date            string
	Time            string
	Location        string
	MaxParticipants int
	Price           float64
	Category        string
	Format          string
}

func (in EventInput) apply(e *entity.Event) {
	e.Title = in.Title
	e.Description = in.Description
	e.Date = in.Date
	e.Time = in.Time
	e.Location = in.Location
	e.MaxParticipants = in.MaxParticipants
	e.Price = in.Price
	e.Category = in.Category
	e.Format = in.Format
}

func (s *EventService) Create(ctx context.Context, userID string, in EventInput) (*entity.Event, error) {
	e := &entity.Event{CreatedBy: userID}
	in.apply(e)
	if err := s.Repo.Create(ctx, e); err != nil {
		return nil, err
	}
	s.indexEvent(ctx, e)
	return e, nil
}

func (s *EventService) Get(ctx context.Context, id string) (*entity.Event, error) {
	return s.Repo.GetByID(ctx, id)
}

func (s *EventService) List(ctx context.Context) ([]*entity.Event, error) {
	return s.Repo.List(ctx)
}

func (s *EventService) Update(ctx context.Context, id, userID string, in EventInput) (*entity.Event, error) {
	e := &entity.Event{ID: id}
	in.apply(e)
	if err := s.Repo.Update(ctx, e, userID); err != nil {
		return nil, err
	}
	updated, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.indexEvent(ctx, updated)
	return updated, nil
}

func (s *EventService) Delete(ctx context.Context, id, userID string) error {
	if err := s.Repo.Delete(ctx, id, userID); err != nil {
		return err
	}
	s.removeFromIndex(ctx, id)
	return nil
}

func (s *EventService) indexEvent(ctx context.Context, e *entity.Event) {
	if s.ES == nil || s.ESEventsIndex == "" {
		return
	}
	doc := map[string]any{
		"id":          e.ID,
		"title":       e.Title,
		"description": e.Description,
		"date":        e.Date,
		"time":        e.Time,
		"location":    e.Location,
		"category":    e.Category,
		"format":      e.Format,
		"price":       e.Price,
		"created_by":  e.CreatedBy,
		"created_at":  e.CreatedAt.Format(time.RFC3339Nano),
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{Index: s.ESEventsIndex, DocumentID: e.ID, Body: strings.NewReader(string(b)), Refresh: "false"}

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("event_id", e.ID).Warn("es index failed")
		}
		return
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && s.Logger != nil {
		s.Logger.WithField("status", res.Status()).WithField("event_id", e.ID).Warn("es index response error")
	}
}

func (s *EventService) removeFromIndex(ctx context.Context, id string) {
	if s.ES == nil || s.ESEventsIndex == "" {
		return
	}
	req := esapi.DeleteRequest{Index: s.ESEventsIndex, DocumentID: id}

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("event_id", id).Warn("es delete failed")
		}
		return
	}
	_ = res.Body.Close()
}

// Search performs a multi_match query over the indexed event fields.
func (s *EventService) Search(ctx context.Context, q string, size int) ([]map[string]any, error) {
	if s.ES == nil || s.ESEventsIndex == "" {
		return []map[string]any{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"title^2", "description", "location", "category"},
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := s.ES.Search(
		s.ES.Search.WithContext(c),
		s.ES.Search.WithIndex(s.ESEventsIndex),
		s.ES.Search.WithBody(strings.NewReader(string(b))),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	var parsed struct {
		Hits struct {
			Hits []struct {
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]map[string]any, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}
