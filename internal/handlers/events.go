package handlers

import (
	"errors"
	nethttp "net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"recallo-backend/internal/models"
	"recallo-backend/internal/repositories"
)

type EventHandler struct {
	events    repositories.EventRepository
	friends   repositories.FriendRepository
	relations repositories.RelationRepository
}

func NewEventHandler(events repositories.EventRepository, friends repositories.FriendRepository, relations repositories.RelationRepository) *EventHandler {
	return &EventHandler{events: events, friends: friends, relations: relations}
}

type createEventBody struct {
	EventName string       `json:"event_name" binding:"required"`
	EventDate *models.Date `json:"event_date"`
}

func (h *EventHandler) Create(c *gin.Context) {
	var body createEventBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(nethttp.StatusBadRequest, gin.H{"detail": "invalid request body"})
		return
	}

	event, err := h.events.Create(c.Request.Context(), models.EventCreate{
		EventName: body.EventName,
		EventDate: body.EventDate,
	})
	if err != nil {
		c.JSON(nethttp.StatusBadRequest, gin.H{"detail": "Event could not be created"})
		return
	}

	c.JSON(nethttp.StatusCreated, event)
}

func (h *EventHandler) List(c *gin.Context) {
	skip, limit := paginationParams(c)

	events, err := h.events.List(c.Request.Context(), skip, limit)
	if err != nil {
		c.JSON(nethttp.StatusInternalServerError, gin.H{"detail": "failed to fetch events"})
		return
	}
	if events == nil {
		events = []models.Event{}
	}

	c.JSON(nethttp.StatusOK, events)
}

func (h *EventHandler) GetByID(c *gin.Context) {
	id, ok := uuidParam(c, "event_id")
	if !ok {
		c.JSON(nethttp.StatusBadRequest, gin.H{"detail": "invalid event id"})
		return
	}

	event, err := h.events.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			c.JSON(nethttp.StatusNotFound, gin.H{"detail": "Event not found"})
			return
		}
		c.JSON(nethttp.StatusInternalServerError, gin.H{"detail": "failed to fetch event"})
		return
	}

	c.JSON(nethttp.StatusOK, event)
}

type updateEventBody struct {
	EventName *string      `json:"event_name"`
	EventDate *models.Date `json:"event_date"`
}

func (h *EventHandler) Update(c *gin.Context) {
	id, ok := uuidParam(c, "event_id")
	if !ok {
		c.JSON(nethttp.StatusBadRequest, gin.H{"detail": "invalid event id"})
		return
	}

	var body updateEventBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(nethttp.StatusBadRequest, gin.H{"detail": "invalid request body"})
		return
	}
	fields := map[string]any{}
	if body.EventName != nil {
		fields["event_name"] = *body.EventName
	}
	if body.EventDate != nil {
		fields["event_date"] = body.EventDate.String()
	}
	if len(fields) == 0 {
		c.JSON(nethttp.StatusBadRequest, gin.H{"detail": "No data provided to update"})
		return
	}

	event, err := h.events.Update(c.Request.Context(), id, fields)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			c.JSON(nethttp.StatusNotFound, gin.H{"detail": "Event not found"})
			return
		}
		c.JSON(nethttp.StatusInternalServerError, gin.H{"detail": "failed to update event"})
		return
	}

	c.JSON(nethttp.StatusOK, event)
}

func (h *EventHandler) Delete(c *gin.Context) {
	id, ok := uuidParam(c, "event_id")
	if !ok {
		c.JSON(nethttp.StatusBadRequest, gin.H{"detail": "invalid event id"})
		return
	}

	event, err := h.events.Delete(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			c.JSON(nethttp.StatusNotFound, gin.H{"detail": "Event not found"})
			return
		}
		c.JSON(nethttp.StatusInternalServerError, gin.H{"detail": "failed to delete event"})
		return
	}

	c.JSON(nethttp.StatusOK, event)
}

// ListForUser returns a user's events, newest first, each carrying the
// names of the friends the user discussed it with.
func (h *EventHandler) ListForUser(c *gin.Context) {
	userID, ok := uuidParam(c, "user_id")
	if !ok {
		c.JSON(nethttp.StatusBadRequest, gin.H{"detail": "invalid user id"})
		return
	}
	ctx := c.Request.Context()

	eventIDs, err := h.relations.EventIDsForUser(ctx, userID)
	if err != nil {
		c.JSON(nethttp.StatusInternalServerError, gin.H{"detail": "failed to fetch user events"})
		return
	}
	if len(eventIDs) == 0 {
		c.JSON(nethttp.StatusOK, []models.Event{})
		return
	}

	events, err := h.events.ListByIDs(ctx, eventIDs)
	if err != nil {
		c.JSON(nethttp.StatusInternalServerError, gin.H{"detail": "failed to fetch events"})
		return
	}

	for i := range events {
		links, err := h.relations.LinksForUserEvent(ctx, userID, events[i].ID)
		if err != nil {
			c.JSON(nethttp.StatusInternalServerError, gin.H{"detail": "failed to fetch event friends"})
			return
		}
		names, err := h.friendNames(c, links)
		if err != nil {
			c.JSON(nethttp.StatusInternalServerError, gin.H{"detail": "failed to fetch friend names"})
			return
		}
		events[i].FriendNames = names
	}

	c.JSON(nethttp.StatusOK, events)
}

// ListForUserFriend returns the events a user discussed with one friend,
// newest first.
func (h *EventHandler) ListForUserFriend(c *gin.Context) {
	userID, ok := uuidParam(c, "user_id")
	if !ok {
		c.JSON(nethttp.StatusBadRequest, gin.H{"detail": "invalid user id"})
		return
	}
	friendID, ok := uuidParam(c, "friend_id")
	if !ok {
		c.JSON(nethttp.StatusBadRequest, gin.H{"detail": "invalid friend id"})
		return
	}
	ctx := c.Request.Context()

	links, err := h.relations.LinksForUserFriend(ctx, userID, friendID)
	if err != nil {
		c.JSON(nethttp.StatusInternalServerError, gin.H{"detail": "failed to fetch relations"})
		return
	}
	if len(links) == 0 {
		c.JSON(nethttp.StatusOK, []models.Event{})
		return
	}

	eventIDs := make([]uuid.UUID, 0, len(links))
	seen := map[uuid.UUID]bool{}
	for _, link := range links {
		if !seen[link.EventID] {
			seen[link.EventID] = true
			eventIDs = append(eventIDs, link.EventID)
		}
	}

	events, err := h.events.ListByIDs(ctx, eventIDs)
	if err != nil {
		c.JSON(nethttp.StatusInternalServerError, gin.H{"detail": "failed to fetch events"})
		return
	}

	friend, err := h.friends.GetByID(ctx, friendID)
	if err != nil {
		c.JSON(nethttp.StatusInternalServerError, gin.H{"detail": "failed to fetch friend"})
		return
	}
	for i := range events {
		events[i].FriendNames = []string{friend.FriendName}
	}

	c.JSON(nethttp.StatusOK, events)
}

func (h *EventHandler) friendNames(c *gin.Context, links []models.UserFriendsEvent) ([]string, error) {
	if len(links) == 0 {
		return []string{}, nil
	}
	friendIDs := make([]uuid.UUID, 0, len(links))
	seen := map[uuid.UUID]bool{}
	for _, link := range links {
		if !seen[link.FriendID] {
			seen[link.FriendID] = true
			friendIDs = append(friendIDs, link.FriendID)
		}
	}
	friends, err := h.friends.ListByIDs(c.Request.Context(), friendIDs)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(friends))
	for _, friend := range friends {
		names = append(names, friend.FriendName)
	}
	return names, nil
}
