package models

import (
	"time"

	"github.com/google/uuid"
)

// UserRole is the role directory row: exactly one per user, created at
// sign-up, never updated by the portal. A user without a row is authenticated
// but unauthorized everywhere role-gated.
type UserRole struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	Role      string    `gorm:"size:20;not null" json:"role"`
	CreatedAt time.Time `json:"created_at"`
}
