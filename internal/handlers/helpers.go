package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	defaultSkip  = 0
	defaultLimit = 100
)

func requestIDFromHeader(c *gin.Context) string {
	requestID := c.GetHeader("X-Request-ID")
	if requestID == "" {
		requestID = uuid.NewString()
	}
	return requestID
}

func paginationParams(c *gin.Context) (skip, limit int) {
	skip = defaultSkip
	if parsed, err := strconv.Atoi(c.DefaultQuery("skip", "0")); err == nil && parsed >= 0 {
		skip = parsed
	}
	limit = defaultLimit
	if parsed, err := strconv.Atoi(c.DefaultQuery("limit", "100")); err == nil && parsed > 0 {
		limit = parsed
	}
	return skip, limit
}

func uuidParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	return id, err == nil
}
