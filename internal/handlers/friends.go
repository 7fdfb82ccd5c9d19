package handlers

import (
	"context"
	"errors"
	nethttp "net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"recallo-backend/internal/models"
	"recallo-backend/internal/repositories"
)

type FriendHandler struct {
	friends   repositories.FriendRepository
	events    repositories.EventRepository
	relations repositories.RelationRepository
}

func NewFriendHandler(friends repositories.FriendRepository, events repositories.EventRepository, relations repositories.RelationRepository) *FriendHandler {
	return &FriendHandler{friends: friends, events: events, relations: relations}
}

type createFriendBody struct {
	FriendName string `json:"friend_name" binding:"required"`
}

func (h *FriendHandler) Create(c *gin.Context) {
	var body createFriendBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(nethttp.StatusBadRequest, gin.H{"detail": "invalid request body"})
		return
	}

	friend, err := h.friends.Create(c.Request.Context(), models.FriendCreate{FriendName: body.FriendName})
	if err != nil {
		c.JSON(nethttp.StatusBadRequest, gin.H{"detail": "Friend could not be created"})
		return
	}

	c.JSON(nethttp.StatusCreated, friend)
}

// enrichStats fills the derived event_count and last_event_date fields
// from the user_friends_events rows. They are recomputed on every read
// and never persisted.
func (h *FriendHandler) enrichStats(ctx context.Context, friend *models.Friend) error {
	links, err := h.relations.LinksForFriend(ctx, friend.ID)
	if err != nil {
		return err
	}

	friend.EventCount = len(links)
	friend.LastEventDate = nil
	if len(links) == 0 {
		return nil
	}

	eventIDs := make([]uuid.UUID, 0, len(links))
	for _, link := range links {
		eventIDs = append(eventIDs, link.EventID)
	}
	latest, err := h.events.LatestEventDate(ctx, eventIDs)
	if err != nil {
		return err
	}
	friend.LastEventDate = latest
	return nil
}

func (h *FriendHandler) List(c *gin.Context) {
	skip, limit := paginationParams(c)
	ctx := c.Request.Context()

	friends, err := h.friends.List(ctx, skip, limit)
	if err != nil {
		c.JSON(nethttp.StatusInternalServerError, gin.H{"detail": "failed to fetch friends"})
		return
	}

	for i := range friends {
		if err := h.enrichStats(ctx, &friends[i]); err != nil {
			c.JSON(nethttp.StatusInternalServerError, gin.H{"detail": "failed to compute friend stats"})
			return
		}
	}
	if friends == nil {
		friends = []models.Friend{}
	}

	c.JSON(nethttp.StatusOK, friends)
}

func (h *FriendHandler) GetByID(c *gin.Context) {
	id, ok := uuidParam(c, "friend_id")
	if !ok {
		c.JSON(nethttp.StatusBadRequest, gin.H{"detail": "invalid friend id"})
		return
	}

	friend, err := h.friends.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			c.JSON(nethttp.StatusNotFound, gin.H{"detail": "Friend not found"})
			return
		}
		c.JSON(nethttp.StatusInternalServerError, gin.H{"detail": "failed to fetch friend"})
		return
	}

	c.JSON(nethttp.StatusOK, friend)
}

type updateFriendBody struct {
	FriendName *string `json:"friend_name"`
}

func (h *FriendHandler) Update(c *gin.Context) {
	id, ok := uuidParam(c, "friend_id")
	if !ok {
		c.JSON(nethttp.StatusBadRequest, gin.H{"detail": "invalid friend id"})
		return
	}

	var body updateFriendBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(nethttp.StatusBadRequest, gin.H{"detail": "invalid request body"})
		return
	}
	fields := map[string]any{}
	if body.FriendName != nil {
		fields["friend_name"] = *body.FriendName
	}
	if len(fields) == 0 {
		c.JSON(nethttp.StatusBadRequest, gin.H{"detail": "No data provided to update"})
		return
	}

	friend, err := h.friends.Update(c.Request.Context(), id, fields)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			c.JSON(nethttp.StatusNotFound, gin.H{"detail": "Friend not found"})
			return
		}
		c.JSON(nethttp.StatusInternalServerError, gin.H{"detail": "failed to update friend"})
		return
	}

	c.JSON(nethttp.StatusOK, friend)
}

func (h *FriendHandler) Delete(c *gin.Context) {
	id, ok := uuidParam(c, "friend_id")
	if !ok {
		c.JSON(nethttp.StatusBadRequest, gin.H{"detail": "invalid friend id"})
		return
	}

	friend, err := h.friends.Delete(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			c.JSON(nethttp.StatusNotFound, gin.H{"detail": "Friend not found"})
			return
		}
		c.JSON(nethttp.StatusInternalServerError, gin.H{"detail": "failed to delete friend"})
		return
	}

	c.JSON(nethttp.StatusOK, friend)
}

// ListForUser returns the friends linked to a user, with derived stats.
func (h *FriendHandler) ListForUser(c *gin.Context) {
	userID, ok := uuidParam(c, "user_id")
	if !ok {
		c.JSON(nethttp.StatusBadRequest, gin.H{"detail": "invalid user id"})
		return
	}
	ctx := c.Request.Context()

	friendIDs, err := h.relations.FriendIDsForUser(ctx, userID)
	if err != nil {
		c.JSON(nethttp.StatusInternalServerError, gin.H{"detail": "failed to fetch user friends"})
		return
	}
	if len(friendIDs) == 0 {
		c.JSON(nethttp.StatusOK, []models.Friend{})
		return
	}

	friends, err := h.friends.ListByIDs(ctx, friendIDs)
	if err != nil {
		c.JSON(nethttp.StatusInternalServerError, gin.H{"detail": "failed to fetch friends"})
		return
	}
	for i := range friends {
		if err := h.enrichStats(ctx, &friends[i]); err != nil {
			c.JSON(nethttp.StatusInternalServerError, gin.H{"detail": "failed to compute friend stats"})
			return
		}
	}

	c.JSON(nethttp.StatusOK, friends)
}

// ListForUserEvent returns the friends a user discussed a given event with.
func (h *FriendHandler) ListForUserEvent(c *gin.Context) {
	userID, ok := uuidParam(c, "user_id")
	if !ok {
		c.JSON(nethttp.StatusBadRequest, gin.H{"detail": "invalid user id"})
		return
	}
	eventID, ok := uuidParam(c, "event_id")
	if !ok {
		c.JSON(nethttp.StatusBadRequest, gin.H{"detail": "invalid event id"})
		return
	}
	ctx := c.Request.Context()

	links, err := h.relations.LinksForUserEvent(ctx, userID, eventID)
	if err != nil {
		c.JSON(nethttp.StatusInternalServerError, gin.H{"detail": "failed to fetch relations"})
		return
	}
	if len(links) == 0 {
		c.JSON(nethttp.StatusOK, []models.Friend{})
		return
	}

	friendIDs := make([]uuid.UUID, 0, len(links))
	for _, link := range links {
		friendIDs = append(friendIDs, link.FriendID)
	}
	friends, err := h.friends.ListByIDs(ctx, friendIDs)
	if err != nil {
		c.JSON(nethttp.StatusInternalServerError, gin.H{"detail": "failed to fetch friends"})
		return
	}
	for i := range friends {
		if err := h.enrichStats(ctx, &friends[i]); err != nil {
			c.JSON(nethttp.StatusInternalServerError, gin.H{"detail": "failed to compute friend stats"})
			return
		}
	}

	c.JSON(nethttp.StatusOK, friends)
}
