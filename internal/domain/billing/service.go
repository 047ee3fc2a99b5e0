package billing

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

// CreateConsultationBill records the standard unpaid consultation charge for
// a prescription. Called by the prescription service when one is issued.
func (s *Service) CreateConsultationBill(ctx context.Context, patientID, prescriptionID uuid.UUID) (*Bill, error) {
	b := &Bill{
		PatientID:      patientID,
		PrescriptionID: &prescriptionID,
		Amount:         ConsultationFee,
		Status:         StatusUnpaid,
		Description:    "Consultation fee",
	}
	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *Service) Create(ctx context.Context, b *Bill) error {
	if b.PatientID == uuid.Nil {
		return fmt.Errorf("patient_id is required")
	}
	if b.Amount == "" {
		return fmt.Errorf("amount is required")
	}
	if b.Status == "" {
		b.Status = StatusUnpaid
	}
	if b.Status != StatusUnpaid && b.Status != StatusPaid {
		return fmt.Errorf("invalid bill status: %s", b.Status)
	}
	return s.repo.Create(ctx, b)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Bill, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Bill, int, error) {
	return s.repo.ListByPatient(ctx, patientID, limit, offset)
}

func (s *Service) ListAll(ctx context.Context, status string, limit, offset int) ([]*Bill, int, error) {
	return s.repo.ListAll(ctx, status, limit, offset)
}

// MarkPaid settles a bill after a successful payment.
func (s *Service) MarkPaid(ctx context.Context, id uuid.UUID) (*Bill, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.Status == StatusPaid {
		return nil, ErrAlreadyPaid
	}
	if err := s.repo.UpdateStatus(ctx, id, StatusPaid); err != nil {
		return nil, err
	}
	b.Status = StatusPaid
	return b, nil
}
