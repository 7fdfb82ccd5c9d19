package models

import (
	"time"

	"github.com/google/uuid"
)

// UserFriend links a user to one of their friends.
type UserFriend struct {
	ID         int64     `json:"id"`
	UserID     uuid.UUID `json:"user_id"`
	FriendID   uuid.UUID `json:"friend_id"`
	Username   *string   `json:"username"`
	FriendName *string   `json:"friendname"`
	CreatedAt  time.Time `json:"created_at"`
}

type UserFriendCreate struct {
	UserID     uuid.UUID `json:"user_id"`
	FriendID   uuid.UUID `json:"friend_id"`
	Username   *string   `json:"username,omitempty"`
	FriendName *string   `json:"friendname,omitempty"`
}

// UserEvent links a user to one of their events.
type UserEvent struct {
	ID        int64     `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	EventID   uuid.UUID `json:"event_id"`
	CreatedAt time.Time `json:"created_at"`
}

type UserEventCreate struct {
	UserID  uuid.UUID `json:"user_id"`
	EventID uuid.UUID `json:"event_id"`
}

// UserFriendsEvent records that a user discussed an event with a friend.
// Its id is the foreign key content rows attach to.
type UserFriendsEvent struct {
	ID        int64     `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	FriendID  uuid.UUID `json:"friend_id"`
	EventID   uuid.UUID `json:"event_id"`
	CreatedAt time.Time `json:"created_at"`
}

type UserFriendsEventCreate struct {
	UserID   uuid.UUID `json:"user_id"`
	FriendID uuid.UUID `json:"friend_id"`
	EventID  uuid.UUID `json:"event_id"`
}
