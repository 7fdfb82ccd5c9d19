package repositories

import (
	"context"
	"strconv"

	"github.com/supabase-community/supabase-go"

	"recallo-backend/internal/models"
)

type ContentRepository interface {
	Create(ctx context.Context, in models.ContentCreate) (*models.Content, error)
	// CreateBulk inserts all entries in a single batched call. The batch
	// either lands whole or not at all.
	CreateBulk(ctx context.Context, entries []models.ContentCreate) ([]models.Content, error)
	List(ctx context.Context, skip, limit int) ([]models.Content, error)
	GetByID(ctx context.Context, id int64) (*models.Content, error)
	Update(ctx context.Context, id int64, fields map[string]any) (*models.Content, error)
	Delete(ctx context.Context, id int64) (*models.Content, error)
	ListByRelation(ctx context.Context, relationID int64) ([]models.Content, error)
	ListByRelations(ctx context.Context, relationIDs []int64) ([]models.Content, error)
}

type contentRepository struct {
	client *supabase.Client
}

func NewContentRepository(client *supabase.Client) ContentRepository {
	return &contentRepository{client: client}
}

func (r *contentRepository) Create(ctx context.Context, in models.ContentCreate) (*models.Content, error) {
	var rows []models.Content
	err := execInto(ctx, r.client.From(tableContent).Insert(in, false, "", "representation", ""), &rows)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrRejected
	}
	return &rows[0], nil
}

func (r *contentRepository) CreateBulk(ctx context.Context, entries []models.ContentCreate) ([]models.Content, error) {
	var rows []models.Content
	err := execInto(ctx, r.client.From(tableContent).Insert(entries, false, "", "representation", ""), &rows)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrRejected
	}
	return rows, nil
}

func (r *contentRepository) List(ctx context.Context, skip, limit int) ([]models.Content, error) {
	var rows []models.Content
	err := execInto(ctx, r.client.From(tableContent).
		Select("*", "", false).
		Range(skip, skip+limit-1, ""), &rows)
	return rows, err
}

func (r *contentRepository) GetByID(ctx context.Context, id int64) (*models.Content, error) {
	var rows []models.Content
	err := execInto(ctx, r.client.From(tableContent).
		Select("*", "", false).
		Eq("id", strconv.FormatInt(id, 10)), &rows)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}
	return &rows[0], nil
}

func (r *contentRepository) Update(ctx context.Context, id int64, fields map[string]any) (*models.Content, error) {
	var rows []models.Content
	err := execInto(ctx, r.client.From(tableContent).
		Update(fields, "representation", "").
		Eq("id", strconv.FormatInt(id, 10)), &rows)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}
	return &rows[0], nil
}

func (r *contentRepository) Delete(ctx context.Context, id int64) (*models.Content, error) {
	var rows []models.Content
	err := execInto(ctx, r.client.From(tableContent).
		Delete("representation", "").
		Eq("id", strconv.FormatInt(id, 10)), &rows)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}
	return &rows[0], nil
}

func (r *contentRepository) ListByRelation(ctx context.Context, relationID int64) ([]models.Content, error) {
	var rows []models.Content
	err := execInto(ctx, r.client.From(tableContent).
		Select("*", "", false).
		Eq("user_friend_event_id", strconv.FormatInt(relationID, 10)), &rows)
	return rows, err
}

func (r *contentRepository) ListByRelations(ctx context.Context, relationIDs []int64) ([]models.Content, error) {
	if len(relationIDs) == 0 {
		return nil, nil
	}
	ids := make([]string, 0, len(relationIDs))
	for _, id := range relationIDs {
		ids = append(ids, strconv.FormatInt(id, 10))
	}
	var rows []models.Content
	err := execInto(ctx, r.client.From(tableContent).
		Select("*", "", false).
		In("user_friend_event_id", ids), &rows)
	return rows, err
}
