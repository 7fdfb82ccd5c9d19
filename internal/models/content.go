package models

import "time"

// Content is one topic extracted from a conversation, attached to a
// user_friends_events relationship.
type Content struct {
	ID                int64     `json:"id"`
	UserFriendEventID int64     `json:"user_friend_event_id"`
	Topic             string    `json:"topic"`
	Content           string    `json:"content"`
	CreatedAt         time.Time `json:"created_at"`
}

type ContentCreate struct {
	UserFriendEventID int64  `json:"user_friend_event_id"`
	Topic             string `json:"topic"`
	Content           string `json:"content"`
}

// TopicItem is a topic/content pair as returned by the summarization
// pipeline, before it is persisted as Content.
type TopicItem struct {
	Topic   string `json:"topic"`
	Content string `json:"content"`
}

type TopicList struct {
	Topics []TopicItem `json:"topics"`
}
