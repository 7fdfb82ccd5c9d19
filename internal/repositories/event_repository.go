package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/supabase-community/supabase-go"

	"recallo-backend/internal/models"
)

type EventRepository interface {
	Create(ctx context.Context, in models.EventCreate) (*models.Event, error)
	List(ctx context.Context, skip, limit int) ([]models.Event, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Event, error)
	// ListByIDs returns the named events ordered by event_date descending,
	// undated events last.
	ListByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Event, error)
	// LatestEventDate returns the most recent event_date among the named
	// events, or nil when none of them carries a date.
	LatestEventDate(ctx context.Context, ids []uuid.UUID) (*models.Date, error)
	Update(ctx context.Context, id uuid.UUID, fields map[string]any) (*models.Event, error)
	Delete(ctx context.Context, id uuid.UUID) (*models.Event, error)
}

type eventRepository struct {
	client *supabase.Client
}

func NewEventRepository(client *supabase.Client) EventRepository {
	return &eventRepository{client: client}
}

func (r *eventRepository) Create(ctx context.Context, in models.EventCreate) (*models.Event, error) {
	var rows []models.Event
	err := execInto(ctx, r.client.From(tableEvents).Insert(in, false, "", "representation", ""), &rows)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrRejected
	}
	return &rows[0], nil
}

func (r *eventRepository) List(ctx context.Context, skip, limit int) ([]models.Event, error) {
	var rows []models.Event
	err := execInto(ctx, r.client.From(tableEvents).
		Select("*", "", false).
		Range(skip, skip+limit-1, ""), &rows)
	return rows, err
}

func (r *eventRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Event, error) {
	var rows []models.Event
	err := execInto(ctx, r.client.From(tableEvents).
		Select("*", "", false).
		Eq("id", id.String()), &rows)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}
	return &rows[0], nil
}

func (r *eventRepository) ListByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Event, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var rows []models.Event
	err := execInto(ctx, r.client.From(tableEvents).
		Select("*", "", false).
		In("id", uuidStrings(ids)).
		Order("event_date", orderDateDesc), &rows)
	return rows, err
}

func (r *eventRepository) LatestEventDate(ctx context.Context, ids []uuid.UUID) (*models.Date, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var rows []struct {
		EventDate *models.Date `json:"event_date"`
	}
	err := execInto(ctx, r.client.From(tableEvents).
		Select("event_date", "", false).
		In("id", uuidStrings(ids)).
		Order("event_date", orderDateDesc).
		Limit(1, ""), &rows)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0].EventDate, nil
}

func (r *eventRepository) Update(ctx context.Context, id uuid.UUID, fields map[string]any) (*models.Event, error) {
	var rows []models.Event
	err := execInto(ctx, r.client.From(tableEvents).
		Update(fields, "representation", "").
		Eq("id", id.String()), &rows)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}
	return &rows[0], nil
}

func (r *eventRepository) Delete(ctx context.Context, id uuid.UUID) (*models.Event, error) {
	var rows []models.Event
	err := execInto(ctx, r.client.From(tableEvents).
		Delete("representation", "").
		Eq("id", id.String()), &rows)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}
	return &rows[0], nil
}
