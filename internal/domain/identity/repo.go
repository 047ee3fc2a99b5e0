package identity

import (
	"context"

	"github.com/google/uuid"
)

type DoctorRepository interface {
	Create(ctx context.Context, d *DoctorProfile) error
	GetByID(ctx context.Context, id uuid.UUID) (*DoctorProfile, error)
	GetByUserID(ctx context.Context, userID string) (*DoctorProfile, error)
	Update(ctx context.Context, d *DoctorProfile) error
	Delete(ctx context.Context, id uuid.UUID) error
	// List returns the doctor directory ordered by full_name, optionally
	// narrowed to one department.
	List(ctx context.Context, department string, limit, offset int) ([]*DoctorProfile, int, error)
}

type PatientRepository interface {
	Create(ctx context.Context, p *PatientProfile) error
	GetByID(ctx context.Context, id uuid.UUID) (*PatientProfile, error)
	GetByUserID(ctx context.Context, userID string) (*PatientProfile, error)
	Update(ctx context.Context, p *PatientProfile) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*PatientProfile, int, error)
}
