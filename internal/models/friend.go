package models

import (
	"time"

	"github.com/google/uuid"
)

// Friend is a person the user records conversations about. EventCount and
// LastEventDate are derived from user_friends_events at read time and are
// never persisted.
type Friend struct {
	ID            uuid.UUID `json:"id"`
	FriendName    string    `json:"friend_name"`
	CreatedAt     time.Time `json:"created_at"`
	EventCount    int       `json:"event_count"`
	LastEventDate *Date     `json:"last_event_date"`
}

type FriendCreate struct {
	FriendName string `json:"friend_name"`
}
