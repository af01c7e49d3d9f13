package auth

import (
	"time"

	"github.com/google/uuid"
)

// User is a candidate account. The email seeds the résumé draft.
type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	IsAdmin      bool
	CreatedAt    time.Time
}
