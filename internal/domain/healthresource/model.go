package healthresource

import (
	"time"

	"github.com/google/uuid"
)

// HealthResource is an educational article published by administrators and
// readable by anyone authenticated.
type HealthResource struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	PublishedAt time.Time `json:"published_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
