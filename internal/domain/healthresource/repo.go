package healthresource

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, hr *HealthResource) error
	GetByID(ctx context.Context, id uuid.UUID) (*HealthResource, error)
	// List returns resources newest first.
	List(ctx context.Context, limit, offset int) ([]*HealthResource, int, error)
	Update(ctx context.Context, hr *HealthResource) error
	Delete(ctx context.Context, id uuid.UUID) error
}
