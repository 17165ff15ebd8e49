package models

import (
	"time"

	"github.com/google/uuid"
)

// User is a registered account. The password hash is never serialized;
// accounts are immutable after registration.
type User struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
