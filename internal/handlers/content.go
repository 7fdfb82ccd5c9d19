package handlers

import (
	"errors"
	"fmt"
	nethttp "net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"recallo-backend/internal/models"
	"recallo-backend/internal/repositories"
	"recallo-backend/internal/telemetry"
)

type ContentHandler struct {
	contents repositories.ContentRepository
	audit    *telemetry.AuditEmitter
}

func NewContentHandler(contents repositories.ContentRepository, audit *telemetry.AuditEmitter) *ContentHandler {
	return &ContentHandler{contents: contents, audit: audit}
}

type createContentBody struct {
	UserFriendEventID int64  `json:"user_friend_event_id" binding:"required"`
	Topic             string `json:"topic" binding:"required"`
	Content           string `json:"content" binding:"required"`
}

func (h *ContentHandler) Create(c *gin.Context) {
	var body createContentBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(nethttp.StatusBadRequest, gin.H{"detail": "invalid request body"})
		return
	}

	content, err := h.contents.Create(c.Request.Context(), models.ContentCreate{
		UserFriendEventID: body.UserFriendEventID,
		Topic:             body.Topic,
		Content:           body.Content,
	})
	if err != nil {
		c.JSON(nethttp.StatusBadRequest, gin.H{"detail": "Content could not be created"})
		return
	}

	c.JSON(nethttp.StatusCreated, content)
}

type bulkTopicItem struct {
	Topic   string `json:"topic" binding:"required"`
	Content string `json:"content" binding:"required"`
}

type bulkContentBody struct {
	UserFriendEventID int64           `json:"user_friend_event_id" binding:"required"`
	Topics            []bulkTopicItem `json:"topics" binding:"required,min=1,dive"`
}

// CreateBulk inserts one content row per topic in a single batched call.
// The whole batch fails if the datastore rejects it.
func (h *ContentHandler) CreateBulk(c *gin.Context) {
	var body bulkContentBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(nethttp.StatusBadRequest, gin.H{"detail": "invalid request body"})
		return
	}

	entries := make([]models.ContentCreate, 0, len(body.Topics))
	for _, item := range body.Topics {
		entries = append(entries, models.ContentCreate{
			UserFriendEventID: body.UserFriendEventID,
			Topic:             item.Topic,
			Content:           item.Content,
		})
	}

	ctx := c.Request.Context()
	rows, err := h.contents.CreateBulk(ctx, entries)
	if err != nil {
		c.JSON(nethttp.StatusBadRequest, gin.H{"detail": "Content could not be created"})
		return
	}

	h.audit.EmitAudit(ctx, "INFO",
		fmt.Sprintf("Stored %d content rows for relation %d", len(rows), body.UserFriendEventID),
		requestIDFromHeader(c), nil)
	c.JSON(nethttp.StatusCreated, rows)
}

func (h *ContentHandler) List(c *gin.Context) {
	skip, limit := paginationParams(c)

	contents, err := h.contents.List(c.Request.Context(), skip, limit)
	if err != nil {
		c.JSON(nethttp.StatusInternalServerError, gin.H{"detail": "failed to fetch content"})
		return
	}
	if contents == nil {
		contents = []models.Content{}
	}

	c.JSON(nethttp.StatusOK, contents)
}

// ListByRelation returns all content rows attached to one relationship.
func (h *ContentHandler) ListByRelation(c *gin.Context) {
	relationID, err := strconv.ParseInt(c.Param("user_friend_event_id"), 10, 64)
	if err != nil {
		c.JSON(nethttp.StatusBadRequest, gin.H{"detail": "invalid relation id"})
		return
	}

	contents, err := h.contents.ListByRelation(c.Request.Context(), relationID)
	if err != nil {
		c.JSON(nethttp.StatusInternalServerError, gin.H{"detail": "failed to fetch content"})
		return
	}
	if contents == nil {
		contents = []models.Content{}
	}

	c.JSON(nethttp.StatusOK, contents)
}

func (h *ContentHandler) GetByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("content_id"), 10, 64)
	if err != nil {
		c.JSON(nethttp.StatusBadRequest, gin.H{"detail": "invalid content id"})
		return
	}

	content, err := h.contents.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			c.JSON(nethttp.StatusNotFound, gin.H{"detail": "Content not found"})
			return
		}
		c.JSON(nethttp.StatusInternalServerError, gin.H{"detail": "failed to fetch content"})
		return
	}

	c.JSON(nethttp.StatusOK, content)
}

type updateContentBody struct {
	Topic             *string `json:"topic"`
	Content           *string `json:"content"`
	UserFriendEventID *int64  `json:"user_friend_event_id"`
}

func (h *ContentHandler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("content_id"), 10, 64)
	if err != nil {
		c.JSON(nethttp.StatusBadRequest, gin.H{"detail": "invalid content id"})
		return
	}

	var body updateContentBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(nethttp.StatusBadRequest, gin.H{"detail": "invalid request body"})
		return
	}
	fields := map[string]any{}
	if body.Topic != nil {
		fields["topic"] = *body.Topic
	}
	if body.Content != nil {
		fields["content"] = *body.Content
	}
	if body.UserFriendEventID != nil {
		fields["user_friend_event_id"] = *body.UserFriendEventID
	}
	if len(fields) == 0 {
		c.JSON(nethttp.StatusBadRequest, gin.H{"detail": "No data provided to update"})
		return
	}

	content, err := h.contents.Update(c.Request.Context(), id, fields)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			c.JSON(nethttp.StatusNotFound, gin.H{"detail": "Content not found"})
			return
		}
		c.JSON(nethttp.StatusInternalServerError, gin.H{"detail": "failed to update content"})
		return
	}

	c.JSON(nethttp.StatusOK, content)
}

func (h *ContentHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("content_id"), 10, 64)
	if err != nil {
		c.JSON(nethttp.StatusBadRequest, gin.H{"detail": "invalid content id"})
		return
	}

	content, err := h.contents.Delete(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			c.JSON(nethttp.StatusNotFound, gin.H{"detail": "Content not found"})
			return
		}
		c.JSON(nethttp.StatusInternalServerError, gin.H{"detail": "failed to delete content"})
		return
	}

	c.JSON(nethttp.StatusOK, content)
}
