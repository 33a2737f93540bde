package domain

import (
	"time"

	"github.com/google/uuid"
)

// User represents an authenticated application user.
type User struct {
	ID        uuid.UUID
	Email     string
	Name      string
	Role      UserRole
	CreatedAt time.Time
	UpdatedAt time.Time
}
