package models

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID        uuid.UUID `json:"id"`
	Username  *string   `json:"username"`
	Email     *string   `json:"email"`
	Age       *int      `json:"age"`
	CreatedAt time.Time `json:"created_at"`
}

type UserCreate struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Age      *int   `json:"age,omitempty"`
}
