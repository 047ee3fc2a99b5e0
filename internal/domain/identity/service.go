package identity

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

type Service struct {
	doctors  DoctorRepository
	patients PatientRepository
}

func NewService(doctors DoctorRepository, patients PatientRepository) *Service {
	return &Service{doctors: doctors, patients: patients}
}

// -- Doctor --

func (s *Service) ProvisionDoctor(ctx context.Context, d *DoctorProfile) error {
	if d.UserID == "" {
		return fmt.Errorf("user_id is required")
	}
	if d.FullName == "" {
		return fmt.Errorf("full_name is required")
	}
	return s.doctors.Create(ctx, d)
}

func (s *Service) GetDoctor(ctx context.Context, id uuid.UUID) (*DoctorProfile, error) {
	return s.doctors.GetByID(ctx, id)
}

func (s *Service) DoctorByUserID(ctx context.Context, userID string) (*DoctorProfile, error) {
	return s.doctors.GetByUserID(ctx, userID)
}

func (s *Service) UpdateDoctor(ctx context.Context, d *DoctorProfile) error {
	if d.FullName == "" {
		return fmt.Errorf("full_name is required")
	}
	return s.doctors.Update(ctx, d)
}

func (s *Service) DeleteDoctor(ctx context.Context, id uuid.UUID) error {
	return s.doctors.Delete(ctx, id)
}

func (s *Service) ListDoctors(ctx context.Context, department string, limit, offset int) ([]*DoctorProfile, int, error) {
	return s.doctors.List(ctx, department, limit, offset)
}

// -- Patient --

func (s *Service) ProvisionPatient(ctx context.Context, p *PatientProfile) error {
	if p.UserID == "" {
		return fmt.Errorf("user_id is required")
	}
	if p.FullName == "" {
		return fmt.Errorf("full_name is required")
	}
	return s.patients.Create(ctx, p)
}

func (s *Service) GetPatient(ctx context.Context, id uuid.UUID) (*PatientProfile, error) {
	return s.patients.GetByID(ctx, id)
}

func (s *Service) PatientByUserID(ctx context.Context, userID string) (*PatientProfile, error) {
	return s.patients.GetByUserID(ctx, userID)
}

func (s *Service) UpdatePatient(ctx context.Context, p *PatientProfile) error {
	if p.FullName == "" {
		return fmt.Errorf("full_name is required")
	}
	return s.patients.Update(ctx, p)
}

func (s *Service) DeletePatient(ctx context.Context, id uuid.UUID) error {
	return s.patients.Delete(ctx, id)
}

func (s *Service) ListPatients(ctx context.Context, limit, offset int) ([]*PatientProfile, int, error) {
	return s.patients.List(ctx, limit, offset)
}
