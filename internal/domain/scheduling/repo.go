package scheduling

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// SearchParams narrows an appointment listing. Zero values mean "no filter".
type SearchParams struct {
	Status    string
	DoctorID  uuid.UUID
	PatientID uuid.UUID
	DateFrom  time.Time
	DateTo    time.Time
}

type Repository interface {
	// Create inserts the appointment. A unique-index violation on
	// (doctor_id, date, time) is reported as ErrSlotTaken.
	Create(ctx context.Context, a *Appointment) error
	GetByID(ctx context.Context, id uuid.UUID) (*Appointment, error)
	// TimesByDoctorDate returns the booked "HH:MM" times for the doctor on
	// that date across ALL statuses. Cancelled appointments keep their slot.
	TimesByDoctorDate(ctx context.Context, doctorID uuid.UUID, date time.Time) ([]string, error)
	// Search lists appointments ordered by (date, time) ascending.
	Search(ctx context.Context, p SearchParams, limit, offset int) ([]*Appointment, int, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	// Update rewrites date, time, status and reason. Moving onto an occupied
	// slot is reported as ErrSlotTaken.
	Update(ctx context.Context, a *Appointment) error
	Delete(ctx context.Context, id uuid.UUID) error
}
