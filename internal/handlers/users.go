package handlers

import (
	"errors"
	nethttp "net/http"

	"github.com/gin-gonic/gin"

	"recallo-backend/internal/models"
	"recallo-backend/internal/repositories"
)

type UserHandler struct {
	users repositories.UserRepository
}

func NewUserHandler(users repositories.UserRepository) *UserHandler {
	return &UserHandler{users: users}
}

type createUserBody struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Age      *int   `json:"age"`
}

func (h *UserHandler) Create(c *gin.Context) {
	var body createUserBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(nethttp.StatusBadRequest, gin.H{"detail": "invalid request body"})
		return
	}

	user, err := h.users.Create(c.Request.Context(), models.UserCreate{
		Username: body.Username,
		Email:    body.Email,
		Age:      body.Age,
	})
	if err != nil {
		c.JSON(nethttp.StatusBadRequest, gin.H{"detail": "User could not be created"})
		return
	}

	c.JSON(nethttp.StatusCreated, user)
}

func (h *UserHandler) List(c *gin.Context) {
	skip, limit := paginationParams(c)

	users, err := h.users.List(c.Request.Context(), skip, limit)
	if err != nil {
		c.JSON(nethttp.StatusInternalServerError, gin.H{"detail": "failed to fetch users"})
		return
	}
	if users == nil {
		users = []models.User{}
	}

	c.JSON(nethttp.StatusOK, users)
}

func (h *UserHandler) GetByID(c *gin.Context) {
	id, ok := uuidParam(c, "user_id")
	if !ok {
		c.JSON(nethttp.StatusBadRequest, gin.H{"detail": "invalid user id"})
		return
	}

	user, err := h.users.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			c.JSON(nethttp.StatusNotFound, gin.H{"detail": "User not found"})
			return
		}
		c.JSON(nethttp.StatusInternalServerError, gin.H{"detail": "failed to fetch user"})
		return
	}

	c.JSON(nethttp.StatusOK, user)
}

type updateUserBody struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
	Age      *int    `json:"age"`
}

func (b updateUserBody) fields() map[string]any {
	fields := map[string]any{}
	if b.Username != nil {
		fields["username"] = *b.Username
	}
	if b.Email != nil {
		fields["email"] = *b.Email
	}
	if b.Age != nil {
		fields["age"] = *b.Age
	}
	return fields
}

func (h *UserHandler) Update(c *gin.Context) {
	id, ok := uuidParam(c, "user_id")
	if !ok {
		c.JSON(nethttp.StatusBadRequest, gin.H{"detail": "invalid user id"})
		return
	}

	var body updateUserBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(nethttp.StatusBadRequest, gin.H{"detail": "invalid request body"})
		return
	}
	fields := body.fields()
	if len(fields) == 0 {
		c.JSON(nethttp.StatusBadRequest, gin.H{"detail": "No data provided to update"})
		return
	}

	user, err := h.users.Update(c.Request.Context(), id, fields)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			c.JSON(nethttp.StatusNotFound, gin.H{"detail": "User not found"})
			return
		}
		c.JSON(nethttp.StatusInternalServerError, gin.H{"detail": "failed to update user"})
		return
	}

	c.JSON(nethttp.StatusOK, user)
}

func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := uuidParam(c, "user_id")
	if !ok {
		c.JSON(nethttp.StatusBadRequest, gin.H{"detail": "invalid user id"})
		return
	}

	user, err := h.users.Delete(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			c.JSON(nethttp.StatusNotFound, gin.H{"detail": "User not found"})
			return
		}
		c.JSON(nethttp.StatusInternalServerError, gin.H{"detail": "failed to delete user"})
		return
	}

	c.JSON(nethttp.StatusOK, user)
}
