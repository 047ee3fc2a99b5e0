package identity

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

type mockDoctorRepo struct {
	items map[uuid.UUID]*DoctorProfile
}

func newMockDoctorRepo() *mockDoctorRepo {
	return &mockDoctorRepo{items: make(map[uuid.UUID]*DoctorProfile)}
}

func (m *mockDoctorRepo) Create(ctx context.Context, d *DoctorProfile) error {
	for _, e := range m.items {
		if e.UserID == d.UserID {
			return ErrDuplicate
		}
	}
	d.ID = uuid.New()
	d.CreatedAt = time.Now()
	d.UpdatedAt = d.CreatedAt
	cp := *d
	m.items[d.ID] = &cp
	return nil
}

func (m *mockDoctorRepo) GetByID(ctx context.Context, id uuid.UUID) (*DoctorProfile, error) {
	d, ok := m.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	return d, nil
}

func (m *mockDoctorRepo) GetByUserID(ctx context.Context, userID string) (*DoctorProfile, error) {
	for _, d := range m.items {
		if d.UserID == userID {
			return d, nil
		}
	}
	return nil, ErrNotFound
}

func (m *mockDoctorRepo) Update(ctx context.Context, d *DoctorProfile) error {
	cur, ok := m.items[d.ID]
	if !ok {
		return ErrNotFound
	}
	*cur = *d
	return nil
}

func (m *mockDoctorRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := m.items[id]; !ok {
		return ErrNotFound
	}
	delete(m.items, id)
	return nil
}

func (m *mockDoctorRepo) List(ctx context.Context, department string, limit, offset int) ([]*DoctorProfile, int, error) {
	var out []*DoctorProfile
	for _, d := range m.items {
		if department == "" || d.Department == department {
			out = append(out, d)
		}
	}
	return out, len(out), nil
}

type mockPatientRepo struct {
	items map[uuid.UUID]*PatientProfile
}

func newMockPatientRepo() *mockPatientRepo {
	return &mockPatientRepo{items: make(map[uuid.UUID]*PatientProfile)}
}

func (m *mockPatientRepo) Create(ctx context.Context, p *PatientProfile) error {
	for _, e := range m.items {
		if e.UserID == p.UserID {
			return ErrDuplicate
		}
	}
	p.ID = uuid.New()
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	cp := *p
	m.items[p.ID] = &cp
	return nil
}

func (m *mockPatientRepo) GetByID(ctx context.Context, id uuid.UUID) (*PatientProfile, error) {
	p, ok := m.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	return p, nil
}

func (m *mockPatientRepo) GetByUserID(ctx context.Context, userID string) (*PatientProfile, error) {
	for _, p := range m.items {
		if p.UserID == userID {
			return p, nil
		}
	}
	return nil, ErrNotFound
}

func (m *mockPatientRepo) Update(ctx context.Context, p *PatientProfile) error {
	cur, ok := m.items[p.ID]
	if !ok {
		return ErrNotFound
	}
	*cur = *p
	return nil
}

func (m *mockPatientRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := m.items[id]; !ok {
		return ErrNotFound
	}
	delete(m.items, id)
	return nil
}

func (m *mockPatientRepo) List(ctx context.Context, limit, offset int) ([]*PatientProfile, int, error) {
	var out []*PatientProfile
	for _, p := range m.items {
		out = append(out, p)
	}
	return out, len(out), nil
}

func newTestService() *Service {
	return NewService(newMockDoctorRepo(), newMockPatientRepo())
}

func TestProvisionDoctor(t *testing.T) {
	svc := newTestService()

	d := &DoctorProfile{UserID: "user-1", FullName: "Dr. Ada", Specialization: "Cardiology"}
	if err := svc.ProvisionDoctor(context.Background(), d); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.ID == uuid.Nil {
		t.Error("expected id to be assigned")
	}

	got, err := svc.DoctorByUserID(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if got.FullName != "Dr. Ada" {
		t.Errorf("full_name = %s", got.FullName)
	}
}

func TestProvisionDoctor_Validation(t *testing.T) {
	svc := newTestService()

	if err := svc.ProvisionDoctor(context.Background(), &DoctorProfile{FullName: "x"}); err == nil {
		t.Error("expected error for missing user_id")
	}
	if err := svc.ProvisionDoctor(context.Background(), &DoctorProfile{UserID: "u"}); err == nil {
		t.Error("expected error for missing full_name")
	}
}

func TestProvisionDoctor_Duplicate(t *testing.T) {
	svc := newTestService()

	if err := svc.ProvisionDoctor(context.Background(), &DoctorProfile{UserID: "u1", FullName: "A"}); err != nil {
		t.Fatalf("first provision: %v", err)
	}
	err := svc.ProvisionDoctor(context.Background(), &DoctorProfile{UserID: "u1", FullName: "B"})
	if !errors.Is(err, ErrDuplicate) {
		t.Errorf("expected ErrDuplicate, got %v", err)
	}
}

func TestProvisionPatient_NoLazyCreate(t *testing.T) {
	svc := newTestService()

	// reads never create profiles
	if _, err := svc.PatientByUserID(context.Background(), "ghost"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if _, err := svc.PatientByUserID(context.Background(), "ghost"); !errors.Is(err, ErrNotFound) {
		t.Errorf("repeated read should still not create, got %v", err)
	}
}

func TestListDoctors_DepartmentFilter(t *testing.T) {
	svc := newTestService()

	seed := []*DoctorProfile{
		{UserID: "u1", FullName: "A", Department: "cardio"},
		{UserID: "u2", FullName: "B", Department: "derm"},
		{UserID: "u3", FullName: "C", Department: "cardio"},
	}
	for _, d := range seed {
		if err := svc.ProvisionDoctor(context.Background(), d); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	items, total, err := svc.ListDoctors(context.Background(), "cardio", 20, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 2 || len(items) != 2 {
		t.Errorf("expected 2 cardio doctors, got %d", total)
	}
}
