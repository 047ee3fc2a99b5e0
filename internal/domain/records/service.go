package records

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

func (s *Service) Add(ctx context.Context, m *MedicalHistory) error {
	if m.PatientID == uuid.Nil {
		return fmt.Errorf("patient_id is required")
	}
	if m.Diagnosis == "" {
		return fmt.Errorf("diagnosis is required")
	}
	if m.Date.IsZero() {
		return fmt.Errorf("date is required")
	}
	return s.repo.Create(ctx, m)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*MedicalHistory, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*MedicalHistory, int, error) {
	return s.repo.ListByPatient(ctx, patientID, limit, offset)
}

func (s *Service) Update(ctx context.Context, m *MedicalHistory) error {
	if m.Diagnosis == "" {
		return fmt.Errorf("diagnosis is required")
	}
	return s.repo.Update(ctx, m)
}

func (s *Service) Delete(ctx context.Context, id, patientID uuid.UUID) error {
	return s.repo.Delete(ctx, id, patientID)
}
