package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/supabase-community/supabase-go"

	"recallo-backend/internal/models"
)

type UserRepository interface {
	Create(ctx context.Context, in models.UserCreate) (*models.User, error)
	List(ctx context.Context, skip, limit int) ([]models.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	Update(ctx context.Context, id uuid.UUID, fields map[string]any) (*models.User, error)
	Delete(ctx context.Context, id uuid.UUID) (*models.User, error)
}

type userRepository struct {
	client *supabase.Client
}

func NewUserRepository(client *supabase.Client) UserRepository {
	return &userRepository{client: client}
}

func (r *userRepository) Create(ctx context.Context, in models.UserCreate) (*models.User, error) {
	var rows []models.User
	err := execInto(ctx, r.client.From(tableUsers).Insert(in, false, "", "representation", ""), &rows)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrRejected
	}
	return &rows[0], nil
}

func (r *userRepository) List(ctx context.Context, skip, limit int) ([]models.User, error) {
	var rows []models.User
	err := execInto(ctx, r.client.From(tableUsers).
		Select("*", "", false).
		Range(skip, skip+limit-1, ""), &rows)
	return rows, err
}

func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var rows []models.User
	err := execInto(ctx, r.client.From(tableUsers).
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

func (r *userRepository) Update(ctx context.Context, id uuid.UUID, fields map[string]any) (*models.User, error) {
	var rows []models.User
	err := execInto(ctx, r.client.From(tableUsers).
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

func (r *userRepository) Delete(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var rows []models.User
	err := execInto(ctx, r.client.From(tableUsers).
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
