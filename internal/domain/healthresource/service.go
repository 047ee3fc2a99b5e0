package healthresource

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Publish(ctx context.Context, hr *HealthResource) error {
	if hr.Title == "" {
		return fmt.Errorf("title is required")
	}
	if hr.Content == "" {
		return fmt.Errorf("content is required")
	}
	return s.repo.Create(ctx, hr)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*HealthResource, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]*HealthResource, int, error) {
	return s.repo.List(ctx, limit, offset)
}

func (s *Service) Update(ctx context.Context, hr *HealthResource) error {
	if hr.Title == "" {
		return fmt.Errorf("title is required")
	}
	return s.repo.Update(ctx, hr)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}
