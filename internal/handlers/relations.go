package handlers

import (
	"errors"
	nethttp "net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"recallo-backend/internal/models"
	"recallo-backend/internal/repositories"
)

type RelationHandler struct {
	relations repositories.RelationRepository
}

func NewRelationHandler(relations repositories.RelationRepository) *RelationHandler {
	return &RelationHandler{relations: relations}
}

type createUserFriendBody struct {
	UserID     uuid.UUID `json:"user_id" binding:"required"`
	FriendID   uuid.UUID `json:"friend_id" binding:"required"`
	Username   *string   `json:"username"`
	FriendName *string   `json:"friendname"`
}

func (h *RelationHandler) CreateUserFriend(c *gin.Context) {
	var body createUserFriendBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(nethttp.StatusBadRequest, gin.H{"detail": "invalid request body"})
		return
	}

	relation, err := h.relations.CreateUserFriend(c.Request.Context(), models.UserFriendCreate{
		UserID:     body.UserID,
		FriendID:   body.FriendID,
		Username:   body.Username,
		FriendName: body.FriendName,
	})
	if err != nil {
		c.JSON(nethttp.StatusBadRequest, gin.H{"detail": "Relation could not be created"})
		return
	}

	c.JSON(nethttp.StatusCreated, relation)
}

func (h *RelationHandler) ListUserFriends(c *gin.Context) {
	skip, limit := paginationParams(c)

	relations, err := h.relations.ListUserFriends(c.Request.Context(), skip, limit)
	if err != nil {
		c.JSON(nethttp.StatusInternalServerError, gin.H{"detail": "failed to fetch relations"})
		return
	}
	if relations == nil {
		relations = []models.UserFriend{}
	}

	c.JSON(nethttp.StatusOK, relations)
}

type createUserEventBody struct {
	UserID  uuid.UUID `json:"user_id" binding:"required"`
	EventID uuid.UUID `json:"event_id" binding:"required"`
}

func (h *RelationHandler) CreateUserEvent(c *gin.Context) {
	var body createUserEventBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(nethttp.StatusBadRequest, gin.H{"detail": "invalid request body"})
		return
	}

	relation, err := h.relations.CreateUserEvent(c.Request.Context(), models.UserEventCreate{
		UserID:  body.UserID,
		EventID: body.EventID,
	})
	if err != nil {
		c.JSON(nethttp.StatusBadRequest, gin.H{"detail": "Relation could not be created"})
		return
	}

	c.JSON(nethttp.StatusCreated, relation)
}

func (h *RelationHandler) ListUserEvents(c *gin.Context) {
	skip, limit := paginationParams(c)

	relations, err := h.relations.ListUserEvents(c.Request.Context(), skip, limit)
	if err != nil {
		c.JSON(nethttp.StatusInternalServerError, gin.H{"detail": "failed to fetch relations"})
		return
	}
	if relations == nil {
		relations = []models.UserEvent{}
	}

	c.JSON(nethttp.StatusOK, relations)
}

type createUserFriendsEventBody struct {
	UserID   uuid.UUID `json:"user_id" binding:"required"`
	FriendID uuid.UUID `json:"friend_id" binding:"required"`
	EventID  uuid.UUID `json:"event_id" binding:"required"`
}

func (h *RelationHandler) CreateUserFriendsEvent(c *gin.Context) {
	var body createUserFriendsEventBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(nethttp.StatusBadRequest, gin.H{"detail": "invalid request body"})
		return
	}

	relation, err := h.relations.CreateUserFriendsEvent(c.Request.Context(), models.UserFriendsEventCreate{
		UserID:   body.UserID,
		FriendID: body.FriendID,
		EventID:  body.EventID,
	})
	if err != nil {
		c.JSON(nethttp.StatusBadRequest, gin.H{"detail": "Relation could not be created"})
		return
	}

	c.JSON(nethttp.StatusCreated, relation)
}

func (h *RelationHandler) ListUserFriendsEvents(c *gin.Context) {
	skip, limit := paginationParams(c)

	relations, err := h.relations.ListUserFriendsEvents(c.Request.Context(), skip, limit)
	if err != nil {
		c.JSON(nethttp.StatusInternalServerError, gin.H{"detail": "failed to fetch relations"})
		return
	}
	if relations == nil {
		relations = []models.UserFriendsEvent{}
	}

	c.JSON(nethttp.StatusOK, relations)
}

// GetUserFriendsEvent is the point lookup used to resolve the
// relationship id for a (user, friend, event) triple.
func (h *RelationHandler) GetUserFriendsEvent(c *gin.Context) {
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
	eventID, ok := uuidParam(c, "event_id")
	if !ok {
		c.JSON(nethttp.StatusBadRequest, gin.H{"detail": "invalid event id"})
		return
	}

	relation, err := h.relations.GetUserFriendsEvent(c.Request.Context(), userID, friendID, eventID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			c.JSON(nethttp.StatusNotFound, gin.H{"detail": "Relation not found"})
			return
		}
		c.JSON(nethttp.StatusInternalServerError, gin.H{"detail": "failed to fetch relation"})
		return
	}

	c.JSON(nethttp.StatusOK, relation)
}
