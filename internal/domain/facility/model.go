package facility

import (
	"time"

	"github.com/google/uuid"
)

type Facility struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Location   string    `json:"location"`
	Department string    `json:"department,omitempty"`
	Resources  string    `json:"resources,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
