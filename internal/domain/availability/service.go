package availability

import (
	"context"
	"regexp"

	"github.com/google/uuid"
)

var hhmmRe = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Add validates and stores a new weekly window for the doctor. The interval
// must be well ordered (start strictly before end) and must not intersect any
// existing window on the same weekday; windows that merely touch are allowed.
func (s *Service) Add(ctx context.Context, doctorID uuid.UUID, dayOfWeek int, startTime, endTime string) (*Availability, error) {
	if dayOfWeek < 0 || dayOfWeek > 6 {
		return nil, ErrInvalidDay
	}
	if !hhmmRe.MatchString(startTime) || !hhmmRe.MatchString(endTime) {
		return nil, ErrInvalidTime
	}
	if startTime >= endTime {
		return nil, ErrInvalidInterval
	}

	a := &Availability{
		DoctorID:  doctorID,
		DayOfWeek: dayOfWeek,
		StartTime: startTime,
		EndTime:   endTime,
	}

	existing, err := s.repo.ListByDoctorDay(ctx, doctorID, dayOfWeek)
	if err != nil {
		return nil, err
	}
	for _, w := range existing {
		if w.Overlaps(a) {
			return nil, ErrOverlap
		}
	}

	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// Remove deletes a window belonging to the doctor. Windows owned by another
// doctor are indistinguishable from missing ones.
func (s *Service) Remove(ctx context.Context, id, doctorID uuid.UUID) error {
	return s.repo.Delete(ctx, id, doctorID)
}

func (s *Service) List(ctx context.Context, doctorID uuid.UUID) ([]*Availability, error) {
	return s.repo.ListByDoctor(ctx, doctorID)
}

// Covers reports whether the doctor has declared any window containing the
// given weekday and time of day.
func (s *Service) Covers(ctx context.Context, doctorID uuid.UUID, dayOfWeek int, t string) (bool, error) {
	windows, err := s.repo.ListByDoctorDay(ctx, doctorID, dayOfWeek)
	if err != nil {
		return false, err
	}
	for _, w := range windows {
		if w.Covers(t) {
			return true, nil
		}
	}
	return false, nil
}
