package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/supabase-community/postgrest-go"
)

// ErrNotFound is returned when a point lookup, update, or delete matches
// zero rows. Handlers map it to 404 at the HTTP boundary.
var ErrNotFound = errors.New("row not found")

// ErrRejected is returned when the datastore accepts the request but
// reports zero affected rows on a write. Handlers map it to 400.
var ErrRejected = errors.New("write rejected by datastore")

const (
	tableUsers             = "users"
	tableFriends           = "friends"
	tableEvents            = "events"
	tableUserFriends       = "user_friends"
	tableUserEvents        = "user_events"
	tableUserFriendsEvents = "user_friends_events"
	tableContent           = "event_person_topics_content"
)

// orderDateDesc sorts newest first with null dates at the end, so rows
// without a date never shadow dated ones.
var orderDateDesc = &postgrest.OrderOpts{Ascending: false, NullsFirst: false}

// execInto runs a built PostgREST query and decodes the returned
// representation into dest. dest may be nil when the caller only cares
// about the error.
func execInto(ctx context.Context, fb *postgrest.FilterBuilder, dest any) error {
	data, _, err := fb.ExecuteWithContext(ctx)
	if err != nil {
		return fmt.Errorf("datastore request failed: %w", err)
	}
	if dest == nil {
		return nil
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("failed to decode datastore response: %w", err)
	}
	return nil
}

func uuidStrings(ids []uuid.UUID) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.String())
	}
	return out
}
