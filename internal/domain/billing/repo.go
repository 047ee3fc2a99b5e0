package billing

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, b *Bill) error
	GetByID(ctx context.Context, id uuid.UUID) (*Bill, error)
	ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Bill, int, error)
	ListAll(ctx context.Context, status string, limit, offset int) ([]*Bill, int, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
}
