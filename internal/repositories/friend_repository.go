package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/supabase-community/postgrest-go"
	"github.com/supabase-community/supabase-go"

	"recallo-backend/internal/models"
)

type FriendRepository interface {
	Create(ctx context.Context, in models.FriendCreate) (*models.Friend, error)
	List(ctx context.Context, skip, limit int) ([]models.Friend, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Friend, error)
	ListByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Friend, error)
	Update(ctx context.Context, id uuid.UUID, fields map[string]any) (*models.Friend, error)
	Delete(ctx context.Context, id uuid.UUID) (*models.Friend, error)
}

type friendRepository struct {
	client *supabase.Client
}

func NewFriendRepository(client *supabase.Client) FriendRepository {
	return &friendRepository{client: client}
}

func (r *friendRepository) Create(ctx context.Context, in models.FriendCreate) (*models.Friend, error) {
	var rows []models.Friend
	err := execInto(ctx, r.client.From(tableFriends).Insert(in, false, "", "representation", ""), &rows)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrRejected
	}
	return &rows[0], nil
}

func (r *friendRepository) List(ctx context.Context, skip, limit int) ([]models.Friend, error) {
	var rows []models.Friend
	err := execInto(ctx, r.client.From(tableFriends).
		Select("*", "", false).
		Order("created_at", &postgrest.OrderOpts{Ascending: false}).
		Range(skip, skip+limit-1, ""), &rows)
	return rows, err
}

func (r *friendRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Friend, error) {
	var rows []models.Friend
	err := execInto(ctx, r.client.From(tableFriends).
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

func (r *friendRepository) ListByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Friend, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var rows []models.Friend
	err := execInto(ctx, r.client.From(tableFriends).
		Select("*", "", false).
		In("id", uuidStrings(ids)).
		Order("created_at", &postgrest.OrderOpts{Ascending: false}), &rows)
	return rows, err
}

func (r *friendRepository) Update(ctx context.Context, id uuid.UUID, fields map[string]any) (*models.Friend, error) {
	var rows []models.Friend
	err := execInto(ctx, r.client.From(tableFriends).
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

func (r *friendRepository) Delete(ctx context.Context, id uuid.UUID) (*models.Friend, error) {
	var rows []models.Friend
	err := execInto(ctx, r.client.From(tableFriends).
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
