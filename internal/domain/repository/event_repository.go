package repository

import (
	"context"

	"github.com/eventapp/server/internal/domain/entity"
)

// EventRepository defines the interface for event storage operations.
// Update and Delete constrain the mutation to the owning user in the same
// statement, so a concurrent owner change can never commit a foreign write.
type EventRepository interface {
	Create(ctx context.Context, e *entity.Event) error
	GetByID(ctx context.Context, id string) (*entity.Event, error)
	List(ctx context.Context) ([]*entity.Event, error)
	// Update mutates the event only when userID matches created_by.
	// Returns ErrNotFound if the event is absent, ErrForbidden on an
	// ownership mismatch.
	Update(ctx context.Context, e *entity.Event, userID string) error
	Delete(ctx context.Context, id, userID string) error
	// OwnerOf returns the created_by column for the ownership guard.
	OwnerOf(ctx context.Context, id string) (string, error)
}
