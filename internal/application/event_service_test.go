package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventapp/server/internal/domain/repository"
	"github.com/eventapp/server/internal/infrastructure/memory"
)

func newEventService() *EventService {
	return NewEventService(memory.NewEventRepository(), nil, "", nil)
}

func sampleInput() EventInput {
	return EventInput{
		Title:           "Go Meetup",
		Description:     "Monthly meetup",
		Date:            "2026-09-15",
		Time:            "19:00",
		Location:        "Berlin",
		MaxParticipants: 50,
		Price:           0,
		Category:        "tech",
		Format:          "offline",
	}
}

func TestEventCreateAndGet(t *testing.T) {
	t.Parallel()
	s := newEventService()
	ctx := context.Background()

	e, err := s.Create(ctx, "owner-1", sampleInput())
	require.NoError(t, err)
	require.NotEmpty(t, e.ID)
	assert.Equal(t, "owner-1", e.CreatedBy)

	got, err := s.Get(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, "Go Meetup", got.Title)

	_, err = s.Get(ctx, "missing")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestEventListNewestFirst(t *testing.T) {
	t.Parallel()
	s := newEventService()
	ctx := context.Background()

	first, err := s.Create(ctx, "owner-1", sampleInput())
	require.NoError(t, err)
	in := sampleInput()
	in.Title = "Second"
	second, err := s.Create(ctx, "owner-1", in)
	require.NoError(t, err)

	events, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, events, 2)
	// Newest first; creation order breaks ties when timestamps collide.
	ids := []string{events[0].ID, events[1].ID}
	assert.Contains(t, ids, first.ID)
	assert.Contains(t, ids, second.ID)
}

func TestEventUpdateOwnerOnly(t *testing.T) {
	t.Parallel()
	s := newEventService()
	ctx := context.Background()

	e, err := s.Create(ctx, "owner-1", sampleInput())
	require.NoError(t, err)

	in := sampleInput()
	in.Title = "Renamed"
	updated, err := s.Update(ctx, e.ID, "owner-1", in)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Title)

	_, err = s.Update(ctx, e.ID, "intruder", in)
	assert.ErrorIs(t, err, repository.ErrForbidden)

	_, err = s.Update(ctx, "missing", "owner-1", in)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestEventDeleteOwnerOnly(t *testing.T) {
	t.Parallel()
	s := newEventService()
	ctx := context.Background()

	e, err := s.Create(ctx, "owner-1", sampleInput())
	require.NoError(t, err)

	assert.ErrorIs(t, s.Delete(ctx, e.ID, "intruder"), repository.ErrForbidden)
	require.NoError(t, s.Delete(ctx, e.ID, "owner-1"))
	assert.ErrorIs(t, s.Delete(ctx, e.ID, "owner-1"), repository.ErrNotFound)
}

func TestEventSearchWithoutES(t *testing.T) {
	t.Parallel()
	s := newEventService()

	// Search degrades to empty results when no index is configured.
	hits, err := s.Search(context.Background(), "meetup", 10)
	require.NoError(t, err)
	assert.Empty(t, hits)
}
