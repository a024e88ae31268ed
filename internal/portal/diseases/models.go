package diseases

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Disease is a public library entry. The library is read-only through the
// API; entries come from the seed set.
type Disease struct {
	ID          uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name        string         `gorm:"size:255;not null;uniqueIndex" json:"name"`
	Category    string         `gorm:"size:100;not null;index" json:"category"`
	Description string         `gorm:"type:text;not null" json:"description"`
	Symptoms    datatypes.JSON `gorm:"type:jsonb;default:'[]'" json:"symptoms"`
	Treatments  datatypes.JSON `gorm:"type:jsonb;default:'[]'" json:"treatments"`
	Prevention  string         `gorm:"type:text" json:"prevention,omitempty"`
	ImageURL    string         `gorm:"type:text" json:"image_url,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
}
