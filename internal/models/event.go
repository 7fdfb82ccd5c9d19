package models

import (
	"time"

	"github.com/google/uuid"
)

// Event is something that happened and was talked about. FriendNames is
// derived at read time from the join tables.
type Event struct {
	ID          uuid.UUID `json:"id"`
	EventName   string    `json:"event_name"`
	EventDate   *Date     `json:"event_date"`
	CreatedAt   time.Time `json:"created_at"`
	FriendNames []string  `json:"friend_names"`
}

type EventCreate struct {
	EventName string `json:"event_name"`
	EventDate *Date  `json:"event_date,omitempty"`
}
