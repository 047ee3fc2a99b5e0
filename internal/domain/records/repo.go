package records

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, m *MedicalHistory) error
	GetByID(ctx context.Context, id uuid.UUID) (*MedicalHistory, error)
	ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*MedicalHistory, int, error)
	// Update and Delete act only on rows owned by patientID.
	Update(ctx context.Context, m *MedicalHistory) error
	Delete(ctx context.Context, id, patientID uuid.UUID) error
}
