package availability

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, a *Availability) error
	GetByID(ctx context.Context, id uuid.UUID) (*Availability, error)
	// ListByDoctor returns all windows for a doctor ordered by (day_of_week, start_time).
	ListByDoctor(ctx context.Context, doctorID uuid.UUID) ([]*Availability, error)
	// ListByDoctorDay returns the windows for one weekday ordered by start_time.
	ListByDoctorDay(ctx context.Context, doctorID uuid.UUID, dayOfWeek int) ([]*Availability, error)
	// Delete removes a window only when it belongs to doctorID. It returns
	// ErrNotFound when no owned row matched.
	Delete(ctx context.Context, id, doctorID uuid.UUID) error
}
