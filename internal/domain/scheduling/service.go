package scheduling

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// AvailableSlots returns the clinic slot template for the doctor and date with
// every already-booked time removed, preserving template order. Appointments
// in any status occupy their slot, cancelled ones included, so a cancelled
// time never silently reopens.
func (s *Service) AvailableSlots(ctx context.Context, doctorID uuid.UUID, date time.Time) ([]string, error) {
	booked, err := s.repo.TimesByDoctorDate(ctx, doctorID, date)
	if err != nil {
		return nil, err
	}
	taken := make(map[string]bool, len(booked))
	for _, t := range booked {
		taken[t] = true
	}
	open := make([]string, 0, 16)
	for _, slot := range DefaultSlots() {
		if !taken[slot] {
			open = append(open, slot)
		}
	}
	return open, nil
}

// Book creates a pending appointment for the patient on the doctor's slot.
// The slot check here is optimistic: the unique index on (doctor, date, time)
// is the real arbiter, and losing that race yields ErrSlotTaken.
func (s *Service) Book(ctx context.Context, patientID, doctorID uuid.UUID, date time.Time, slot, reason string) (*Appointment, error) {
	if beforeDay(date, s.now()) {
		return nil, ErrPastDate
	}

	open, err := s.AvailableSlots(ctx, doctorID, date)
	if err != nil {
		return nil, err
	}
	if !contains(open, slot) {
		return nil, ErrSlotUnavailable
	}

	a := &Appointment{
		PatientID: patientID,
		DoctorID:  doctorID,
		Date:      date,
		Time:      slot,
		Status:    StatusPending,
		Reason:    reason,
	}
	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// Confirm, Cancel and Complete move an appointment through its lifecycle on
// behalf of the owning doctor. Terminal states (cancelled, completed) admit
// no further transitions; re-confirming a confirmed appointment is a no-op
// that succeeds.

func (s *Service) Confirm(ctx context.Context, id, doctorID uuid.UUID) (*Appointment, error) {
	return s.transition(ctx, id, doctorID, StatusConfirmed)
}

func (s *Service) Cancel(ctx context.Context, id, doctorID uuid.UUID) (*Appointment, error) {
	return s.transition(ctx, id, doctorID, StatusCancelled)
}

func (s *Service) Complete(ctx context.Context, id, doctorID uuid.UUID) (*Appointment, error) {
	return s.transition(ctx, id, doctorID, StatusCompleted)
}

func (s *Service) transition(ctx context.Context, id, doctorID uuid.UUID, target string) (*Appointment, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a.DoctorID != doctorID {
		return nil, ErrNotOwner
	}
	if a.Terminal() {
		return nil, ErrInvalidTransition
	}
	if err := s.repo.UpdateStatus(ctx, id, target); err != nil {
		return nil, err
	}
	a.Status = target
	return a, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Query(ctx context.Context, p SearchParams, limit, offset int) ([]*Appointment, int, error) {
	if p.Status != "" && !validStatuses[p.Status] {
		return nil, 0, fmt.Errorf("invalid status filter: %s", p.Status)
	}
	return s.repo.Search(ctx, p, limit, offset)
}

// AdminUpdate rewrites an appointment row. Administrative edits bypass the
// lifecycle guards but still respect the slot uniqueness index.
func (s *Service) AdminUpdate(ctx context.Context, a *Appointment) error {
	if !validStatuses[a.Status] {
		return fmt.Errorf("invalid status: %s", a.Status)
	}
	if !contains(DefaultSlots(), a.Time) {
		return ErrSlotUnavailable
	}
	return s.repo.Update(ctx, a)
}

func (s *Service) AdminDelete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

// beforeDay reports whether date falls on an earlier calendar day than ref.
// Same-day bookings are allowed whatever the clock says.
func beforeDay(date, ref time.Time) bool {
	return date.Format("2006-01-02") < ref.Format("2006-01-02")
}

func contains(slots []string, t string) bool {
	for _, s := range slots {
		if s == t {
			return true
		}
	}
	return false
}
