package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/eventapp/server/internal/domain/entity"
	"github.com/eventapp/server/internal/domain/repository"
)

type EventRepository struct {
	pool *pgxpool.Pool
}

func NewEventRepository(pool *pgxpool.Pool) *EventRepository {
	return &EventRepository{pool: pool}
}

const eventColumns = `
	e.id, e.title, e.description, e.date, e.time, e.location,
	e.max_participants, e.price, e.category, e.format,
	e.created_by, COALESCE(u.name, ''), e.created_at, e.updated_at`

func scanEvent(row pgx.Row) (*entity.Event, error) {
	e := &entity.Event{}
	err := row.Scan(
		&e.ID, &e.Title, &e.Description, &e.Date, &e.Time, &e.Location,
		&e.MaxParticipants, &e.Price, &e.Category, &e.Format,
		&e.CreatedBy, &e.CreatorName, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isBadUUID(err) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

// isBadUUID maps a malformed uuid path parameter to a plain miss instead of
// surfacing a 500.
func isBadUUID(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "22P02"
}

func (r *EventRepository) Create(ctx context.Context, e *entity.Event) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO events (
			title, description, date, time, location,
			max_participants, price, category, format, created_by
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at, updated_at
	`, e.Title, e.Description, e.Date, e.Time, e.Location,
		e.MaxParticipants, e.Price, e.Category, e.Format, e.CreatedBy)

	return row.Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
}

func (r *EventRepository) GetByID(ctx context.Context, id string) (*entity.Event, error) {
	return scanEvent(r.pool.QueryRow(ctx, `
		SELECT `+eventColumns+`
		FROM events e
		LEFT JOIN users u ON e.created_by = u.id
		WHERE e.id = $1
	`, id))
}

func (r *EventRepository) List(ctx context.Context) ([]*entity.Event, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+eventColumns+`
		FROM events e
		LEFT JOIN users u ON e.created_by = u.id
		ORDER BY e.created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]*entity.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// Update keeps the ownership predicate inside the statement so the check and
// the write commit together.
func (r *EventRepository) Update(ctx context.Context, e *entity.Event, userID string) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE events SET
			title = $1, description = $2, date = $3, time = $4,
			location = $5, max_participants = $6, price = $7,
			category = $8, format = $9, updated_at = NOW()
		WHERE id = $10 AND created_by = $11
	`, e.Title, e.Description, e.Date, e.Time,
		e.Location, e.MaxParticipants, e.Price,
		e.Category, e.Format, e.ID, userID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return r.missReason(ctx, e.ID)
	}
	return nil
}

func (r *EventRepository) Delete(ctx context.Context, id, userID string) error {
	res, err := r.pool.Exec(ctx,
		`DELETE FROM events WHERE id = $1 AND created_by = $2`, id, userID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return r.missReason(ctx, id)
	}
	return nil
}

func (r *EventRepository) OwnerOf(ctx context.Context, id string) (string, error) {
	var owner string
	err := r.pool.QueryRow(ctx,
		`SELECT created_by FROM events WHERE id = $1`, id).Scan(&owner)
	if errors.Is(err, pgx.ErrNoRows) || isBadUUID(err) {
		return "", repository.ErrNotFound
	}
	return owner, err
}

// missReason decides between 404 and 403 after a guarded mutation touched
// zero rows.
func (r *EventRepository) missReason(ctx context.Context, id string) error {
	if _, err := r.OwnerOf(ctx, id); err != nil {
		return err
	}
	return repository.ErrForbidden
}

var _ repository.EventRepository = (*EventRepository)(nil)
