package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/supabase-community/supabase-go"

	"recallo-backend/internal/models"
)

// RelationRepository covers the three join tables: user_friends,
// user_events, and user_friends_events.
type RelationRepository interface {
	CreateUserFriend(ctx context.Context, in models.UserFriendCreate) (*models.UserFriend, error)
	ListUserFriends(ctx context.Context, skip, limit int) ([]models.UserFriend, error)

	CreateUserEvent(ctx context.Context, in models.UserEventCreate) (*models.UserEvent, error)
	ListUserEvents(ctx context.Context, skip, limit int) ([]models.UserEvent, error)

	CreateUserFriendsEvent(ctx context.Context, in models.UserFriendsEventCreate) (*models.UserFriendsEvent, error)
	ListUserFriendsEvents(ctx context.Context, skip, limit int) ([]models.UserFriendsEvent, error)
	GetUserFriendsEvent(ctx context.Context, userID, friendID, eventID uuid.UUID) (*models.UserFriendsEvent, error)

	// Aggregation lookups.
	FriendIDsForUser(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
	EventIDsForUser(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
	LinksForFriend(ctx context.Context, friendID uuid.UUID) ([]models.UserFriendsEvent, error)
	LinksForUserFriend(ctx context.Context, userID, friendID uuid.UUID) ([]models.UserFriendsEvent, error)
	LinksForUserEvent(ctx context.Context, userID, eventID uuid.UUID) ([]models.UserFriendsEvent, error)
}

type relationRepository struct {
	client *supabase.Client
}

func NewRelationRepository(client *supabase.Client) RelationRepository {
	return &relationRepository{client: client}
}

func (r *relationRepository) CreateUserFriend(ctx context.Context, in models.UserFriendCreate) (*models.UserFriend, error) {
	var rows []models.UserFriend
	err := execInto(ctx, r.client.From(tableUserFriends).Insert(in, false, "", "representation", ""), &rows)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrRejected
	}
	return &rows[0], nil
}

func (r *relationRepository) ListUserFriends(ctx context.Context, skip, limit int) ([]models.UserFriend, error) {
	var rows []models.UserFriend
	err := execInto(ctx, r.client.From(tableUserFriends).
		Select("*", "", false).
		Range(skip, skip+limit-1, ""), &rows)
	return rows, err
}

func (r *relationRepository) CreateUserEvent(ctx context.Context, in models.UserEventCreate) (*models.UserEvent, error) {
	var rows []models.UserEvent
	err := execInto(ctx, r.client.From(tableUserEvents).Insert(in, false, "", "representation", ""), &rows)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrRejected
	}
	return &rows[0], nil
}

func (r *relationRepository) ListUserEvents(ctx context.Context, skip, limit int) ([]models.UserEvent, error) {
	var rows []models.UserEvent
	err := execInto(ctx, r.client.From(tableUserEvents).
		Select("*", "", false).
		Range(skip, skip+limit-1, ""), &rows)
	return rows, err
}

func (r *relationRepository) CreateUserFriendsEvent(ctx context.Context, in models.UserFriendsEventCreate) (*models.UserFriendsEvent, error) {
	var rows []models.UserFriendsEvent
	err := execInto(ctx, r.client.From(tableUserFriendsEvents).Insert(in, false, "", "representation", ""), &rows)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrRejected
	}
	return &rows[0], nil
}

func (r *relationRepository) ListUserFriendsEvents(ctx context.Context, skip, limit int) ([]models.UserFriendsEvent, error) {
	var rows []models.UserFriendsEvent
	err := execInto(ctx, r.client.From(tableUserFriendsEvents).
		Select("*", "", false).
		Range(skip, skip+limit-1, ""), &rows)
	return rows, err
}

func (r *relationRepository) GetUserFriendsEvent(ctx context.Context, userID, friendID, eventID uuid.UUID) (*models.UserFriendsEvent, error) {
	var rows []models.UserFriendsEvent
	err := execInto(ctx, r.client.From(tableUserFriendsEvents).
		Select("*", "", false).
		Eq("user_id", userID.String()).
		Eq("friend_id", friendID.String()).
		Eq("event_id", eventID.String()), &rows)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}
	return &rows[0], nil
}

func (r *relationRepository) FriendIDsForUser(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	var rows []struct {
		FriendID uuid.UUID `json:"friend_id"`
	}
	err := execInto(ctx, r.client.From(tableUserFriends).
		Select("friend_id", "", false).
		Eq("user_id", userID.String()), &rows)
	if err != nil {
		return nil, err
	}
	ids := make([]uuid.UUID, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.FriendID)
	}
	return ids, nil
}

func (r *relationRepository) EventIDsForUser(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	var rows []struct {
		EventID uuid.UUID `json:"event_id"`
	}
	err := execInto(ctx, r.client.From(tableUserEvents).
		Select("event_id", "", false).
		Eq("user_id", userID.String()), &rows)
	if err != nil {
		return nil, err
	}
	ids := make([]uuid.UUID, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.EventID)
	}
	return ids, nil
}

func (r *relationRepository) LinksForFriend(ctx context.Context, friendID uuid.UUID) ([]models.UserFriendsEvent, error) {
	var rows []models.UserFriendsEvent
	err := execInto(ctx, r.client.From(tableUserFriendsEvents).
		Select("*", "", false).
		Eq("friend_id", friendID.String()), &rows)
	return rows, err
}

func (r *relationRepository) LinksForUserFriend(ctx context.Context, userID, friendID uuid.UUID) ([]models.UserFriendsEvent, error) {
	var rows []models.UserFriendsEvent
	err := execInto(ctx, r.client.From(tableUserFriendsEvents).
		Select("*", "", false).
		Eq("user_id", userID.String()).
		Eq("friend_id", friendID.String()), &rows)
	return rows, err
}

func (r *relationRepository) LinksForUserEvent(ctx context.Context, userID, eventID uuid.UUID) ([]models.UserFriendsEvent, error) {
	var rows []models.UserFriendsEvent
	err := execInto(ctx, r.client.From(tableUserFriendsEvents).
		Select("*", "", false).
		Eq("user_id", userID.String()).
		Eq("event_id", eventID.String()), &rows)
	return rows, err
}
