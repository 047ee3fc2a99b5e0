package prescription

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// BillCreator raises the consultation charge that accompanies every issued
// prescription. Implemented by the billing service; wired in main.
type BillCreator interface {
	CreateConsultationBill(ctx context.Context, patientID, prescriptionID uuid.UUID) error
}

type Service struct {
	repo  Repository
	bills BillCreator
}

func NewService(repo Repository, bills BillCreator) *Service {
	return &Service{repo: repo, bills: bills}
}

// Issue stores a prescription written by the doctor and raises the unpaid
// consultation bill for the patient. A billing failure does not unwind the
// prescription; it is logged and the charge can be raised manually.
func (s *Service) Issue(ctx context.Context, p *Prescription) error {
	if p.DoctorID == uuid.Nil {
		return fmt.Errorf("doctor_id is required")
	}
	if p.PatientID == uuid.Nil {
		return fmt.Errorf("patient_id is required")
	}
	if len(p.Items) == 0 {
		return fmt.Errorf("at least one item is required")
	}
	for i, item := range p.Items {
		if item.DrugName == "" {
			return fmt.Errorf("item %d: drug_name is required", i)
		}
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return err
	}

	if err := s.bills.CreateConsultationBill(ctx, p.PatientID, p.ID); err != nil {
		log.Error().Err(err).
			Str("prescription_id", p.ID.String()).
			Str("patient_id", p.PatientID.String()).
			Msg("failed to create consultation bill")
	}
	return nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Prescription, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Prescription, int, error) {
	return s.repo.ListByPatient(ctx, patientID, limit, offset)
}

func (s *Service) ListByDoctor(ctx context.Context, doctorID uuid.UUID, limit, offset int) ([]*Prescription, int, error) {
	return s.repo.ListByDoctor(ctx, doctorID, limit, offset)
}
