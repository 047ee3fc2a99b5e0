package scheduling

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
)

// mockRepo is an in-memory Repository that enforces the
// (doctor, date, time) uniqueness the real table guarantees.
type mockRepo struct {
	mu    sync.Mutex
	items map[uuid.UUID]*Appointment
}

func newMockRepo() *mockRepo {
	return &mockRepo{items: make(map[uuid.UUID]*Appointment)}
}

func slotKey(a *Appointment) string {
	return a.DoctorID.String() + "|" + a.Date.Format("2006-01-02") + "|" + a.Time
}

func (m *mockRepo) Create(ctx context.Context, a *Appointment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := slotKey(a)
	for _, other := range m.items {
		if slotKey(other) == key {
			return ErrSlotTaken
		}
	}
	a.ID = uuid.New()
	a.CreatedAt = time.Now()
	a.UpdatedAt = a.CreatedAt
	cp := *a
	m.items[a.ID] = &cp
	return nil
}

func (m *mockRepo) GetByID(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (m *mockRepo) TimesByDoctorDate(ctx context.Context, doctorID uuid.UUID, date time.Time) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	day := date.Format("2006-01-02")
	var times []string
	for _, a := range m.items {
		if a.DoctorID == doctorID && a.Date.Format("2006-01-02") == day {
			times = append(times, a.Time)
		}
	}
	sort.Strings(times)
	return times, nil
}

func (m *mockRepo) Search(ctx context.Context, p SearchParams, limit, offset int) ([]*Appointment, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*Appointment
	for _, a := range m.items {
		if p.Status != "" && a.Status != p.Status {
			continue
		}
		if p.DoctorID != uuid.Nil && a.DoctorID != p.DoctorID {
			continue
		}
		if p.PatientID != uuid.Nil && a.PatientID != p.PatientID {
			continue
		}
		if !p.DateFrom.IsZero() && a.Date.Before(p.DateFrom) {
			continue
		}
		if !p.DateTo.IsZero() && a.Date.After(p.DateTo) {
			continue
		}
		cp := *a
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].Time < out[j].Time
	})
	total := len(out)
	if offset > len(out) {
		offset = len(out)
	}
	out = out[offset:]
	if limit < len(out) {
		out = out[:limit]
	}
	return out, total, nil
}

func (m *mockRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.items[id]
	if !ok {
		return ErrNotFound
	}
	a.Status = status
	a.UpdatedAt = time.Now()
	return nil
}

func (m *mockRepo) Update(ctx context.Context, a *Appointment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cur, ok := m.items[a.ID]
	if !ok {
		return ErrNotFound
	}
	key := slotKey(a)
	for id, other := range m.items {
		if id != a.ID && slotKey(other) == key {
			return ErrSlotTaken
		}
	}
	*cur = *a
	cur.UpdatedAt = time.Now()
	return nil
}

func (m *mockRepo) Delete(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.items[id]; !ok {
		return ErrNotFound
	}
	delete(m.items, id)
	return nil
}

func newTestService(repo *mockRepo) *Service {
	svc := NewService(repo)
	svc.now = func() time.Time {
		return time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	}
	return svc
}

func day(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestAvailableSlots_FullTemplateWhenEmpty(t *testing.T) {
	svc := newTestService(newMockRepo())
	slots, err := svc.AvailableSlots(context.Background(), uuid.New(), day("2026-03-10"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(slots) != 16 {
		t.Fatalf("expected full 16-slot template, got %d", len(slots))
	}
}

func TestAvailableSlots_BookedTimesRemoved(t *testing.T) {
	repo := newMockRepo()
	svc := newTestService(repo)
	doctor := uuid.New()
	date := day("2026-03-10")

	if _, err := svc.Book(context.Background(), uuid.New(), doctor, date, "09:30", ""); err != nil {
		t.Fatalf("book: %v", err)
	}
	if _, err := svc.Book(context.Background(), uuid.New(), doctor, date, "14:00", ""); err != nil {
		t.Fatalf("book: %v", err)
	}

	slots, err := svc.AvailableSlots(context.Background(), doctor, date)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(slots) != 14 {
		t.Errorf("expected 14 open slots, got %d", len(slots))
	}
	for _, s := range slots {
		if s == "09:30" || s == "14:00" {
			t.Errorf("booked slot %s still listed", s)
		}
	}
	// template order preserved
	for i := 1; i < len(slots); i++ {
		if slots[i] <= slots[i-1] {
			t.Errorf("slots out of order: %s after %s", slots[i], slots[i-1])
		}
	}
}

func TestAvailableSlots_CancelledStillBlocks(t *testing.T) {
	repo := newMockRepo()
	svc := newTestService(repo)
	doctor := uuid.New()
	date := day("2026-03-10")

	a, err := svc.Book(context.Background(), uuid.New(), doctor, date, "10:00", "")
	if err != nil {
		t.Fatalf("book: %v", err)
	}
	if _, err := svc.Cancel(context.Background(), a.ID, doctor); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	slots, err := svc.AvailableSlots(context.Background(), doctor, date)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, s := range slots {
		if s == "10:00" {
			t.Error("cancelled appointment should still occupy its slot")
		}
	}
}

func TestAvailableSlots_IndependentPerDoctorAndDate(t *testing.T) {
	repo := newMockRepo()
	svc := newTestService(repo)
	doctorA := uuid.New()
	doctorB := uuid.New()
	date := day("2026-03-10")

	if _, err := svc.Book(context.Background(), uuid.New(), doctorA, date, "11:00", ""); err != nil {
		t.Fatalf("book: %v", err)
	}

	slotsB, _ := svc.AvailableSlots(context.Background(), doctorB, date)
	if len(slotsB) != 16 {
		t.Errorf("other doctor's calendar affected: %d slots", len(slotsB))
	}
	slotsNext, _ := svc.AvailableSlots(context.Background(), doctorA, day("2026-03-11"))
	if len(slotsNext) != 16 {
		t.Errorf("other date affected: %d slots", len(slotsNext))
	}
}

func TestBook_Success(t *testing.T) {
	svc := newTestService(newMockRepo())
	patient := uuid.New()
	doctor := uuid.New()

	a, err := svc.Book(context.Background(), patient, doctor, day("2026-03-10"), "09:00", "checkup")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.Status != StatusPending {
		t.Errorf("new appointment status = %s, want pending", a.Status)
	}
	if a.ID == uuid.Nil {
		t.Error("expected id to be assigned")
	}
}

func TestBook_PastDateRejected(t *testing.T) {
	svc := newTestService(newMockRepo())

	_, err := svc.Book(context.Background(), uuid.New(), uuid.New(), day("2026-03-01"), "09:00", "")
	if !errors.Is(err, ErrPastDate) {
		t.Errorf("expected ErrPastDate, got %v", err)
	}
}

func TestBook_TodayAllowed(t *testing.T) {
	svc := newTestService(newMockRepo())

	// service clock is fixed at 2026-03-02 10:00
	if _, err := svc.Book(context.Background(), uuid.New(), uuid.New(), day("2026-03-02"), "09:00", ""); err != nil {
		t.Errorf("same-day booking should be allowed: %v", err)
	}
}

func TestBook_SlotOutsideTemplate(t *testing.T) {
	svc := newTestService(newMockRepo())

	_, err := svc.Book(context.Background(), uuid.New(), uuid.New(), day("2026-03-10"), "08:30", "")
	if !errors.Is(err, ErrSlotUnavailable) {
		t.Errorf("expected ErrSlotUnavailable for 08:30, got %v", err)
	}
	_, err = svc.Book(context.Background(), uuid.New(), uuid.New(), day("2026-03-10"), "17:00", "")
	if !errors.Is(err, ErrSlotUnavailable) {
		t.Errorf("expected ErrSlotUnavailable for close time, got %v", err)
	}
}

func TestBook_DoubleBookingRejected(t *testing.T) {
	svc := newTestService(newMockRepo())
	doctor := uuid.New()
	date := day("2026-03-10")

	if _, err := svc.Book(context.Background(), uuid.New(), doctor, date, "09:00", ""); err != nil {
		t.Fatalf("first booking: %v", err)
	}
	_, err := svc.Book(context.Background(), uuid.New(), doctor, date, "09:00", "")
	if !errors.Is(err, ErrSlotUnavailable) {
		t.Errorf("expected ErrSlotUnavailable, got %v", err)
	}
}

// Two racing bookings for the same slot: exactly one appointment row is
// created and the loser sees ErrSlotTaken from the uniqueness arbiter.
func TestBook_RaceLoserGetsSlotTaken(t *testing.T) {
	repo := newMockRepo()
	svc := newTestService(repo)
	doctor := uuid.New()
	date := day("2026-03-10")

	const racers = 8
	var wg sync.WaitGroup
	errs := make([]error, racers)
	start := make(chan struct{})
	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			_, errs[i] = svc.Book(context.Background(), uuid.New(), doctor, date, "09:00", "")
		}(i)
	}
	close(start)
	wg.Wait()

	var won, lost int
	for _, err := range errs {
		switch {
		case err == nil:
			won++
		case errors.Is(err, ErrSlotTaken), errors.Is(err, ErrSlotUnavailable):
			lost++
		default:
			t.Errorf("unexpected error: %v", err)
		}
	}
	if won != 1 {
		t.Errorf("expected exactly one winner, got %d", won)
	}
	if lost != racers-1 {
		t.Errorf("expected %d losers, got %d", racers-1, lost)
	}
	if n := len(repo.items); n != 1 {
		t.Errorf("expected exactly one stored appointment, got %d", n)
	}
}

func TestLifecycle_Transitions(t *testing.T) {
	svc := newTestService(newMockRepo())
	doctor := uuid.New()

	book := func(t *testing.T, slot string) *Appointment {
		t.Helper()
		a, err := svc.Book(context.Background(), uuid.New(), doctor, day("2026-03-10"), slot, "")
		if err != nil {
			t.Fatalf("book: %v", err)
		}
		return a
	}

	t.Run("confirm pending", func(t *testing.T) {
		a := book(t, "09:00")
		got, err := svc.Confirm(context.Background(), a.ID, doctor)
		if err != nil {
			t.Fatalf("confirm: %v", err)
		}
		if got.Status != StatusConfirmed {
			t.Errorf("status = %s, want confirmed", got.Status)
		}
	})

	t.Run("re-confirm confirmed is accepted", func(t *testing.T) {
		a := book(t, "09:30")
		if _, err := svc.Confirm(context.Background(), a.ID, doctor); err != nil {
			t.Fatalf("confirm: %v", err)
		}
		if _, err := svc.Confirm(context.Background(), a.ID, doctor); err != nil {
			t.Errorf("re-confirm should succeed, got %v", err)
		}
	})

	t.Run("cancel confirmed", func(t *testing.T) {
		a := book(t, "10:00")
		if _, err := svc.Confirm(context.Background(), a.ID, doctor); err != nil {
			t.Fatalf("confirm: %v", err)
		}
		got, err := svc.Cancel(context.Background(), a.ID, doctor)
		if err != nil {
			t.Fatalf("cancel: %v", err)
		}
		if got.Status != StatusCancelled {
			t.Errorf("status = %s, want cancelled", got.Status)
		}
	})

	t.Run("terminal states refuse transitions", func(t *testing.T) {
		cancelled := book(t, "10:30")
		if _, err := svc.Cancel(context.Background(), cancelled.ID, doctor); err != nil {
			t.Fatalf("cancel: %v", err)
		}
		completed := book(t, "11:00")
		if _, err := svc.Complete(context.Background(), completed.ID, doctor); err != nil {
			t.Fatalf("complete: %v", err)
		}

		for _, a := range []*Appointment{cancelled, completed} {
			if _, err := svc.Confirm(context.Background(), a.ID, doctor); !errors.Is(err, ErrInvalidTransition) {
				t.Errorf("confirm on terminal: expected ErrInvalidTransition, got %v", err)
			}
			if _, err := svc.Cancel(context.Background(), a.ID, doctor); !errors.Is(err, ErrInvalidTransition) {
				t.Errorf("cancel on terminal: expected ErrInvalidTransition, got %v", err)
			}
			if _, err := svc.Complete(context.Background(), a.ID, doctor); !errors.Is(err, ErrInvalidTransition) {
				t.Errorf("complete on terminal: expected ErrInvalidTransition, got %v", err)
			}
		}
	})

	t.Run("terminal guard leaves status unchanged", func(t *testing.T) {
		a := book(t, "11:30")
		if _, err := svc.Cancel(context.Background(), a.ID, doctor); err != nil {
			t.Fatalf("cancel: %v", err)
		}
		_, _ = svc.Complete(context.Background(), a.ID, doctor)
		got, err := svc.Get(context.Background(), a.ID)
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if got.Status != StatusCancelled {
			t.Errorf("status mutated to %s after rejected transition", got.Status)
		}
	})
}

func TestLifecycle_OwnerOnly(t *testing.T) {
	svc := newTestService(newMockRepo())
	owner := uuid.New()
	other := uuid.New()

	a, err := svc.Book(context.Background(), uuid.New(), owner, day("2026-03-10"), "09:00", "")
	if err != nil {
		t.Fatalf("book: %v", err)
	}

	if _, err := svc.Confirm(context.Background(), a.ID, other); !errors.Is(err, ErrNotOwner) {
		t.Errorf("expected ErrNotOwner, got %v", err)
	}
	got, _ := svc.Get(context.Background(), a.ID)
	if got.Status != StatusPending {
		t.Errorf("status mutated to %s by non-owner", got.Status)
	}
}

func TestLifecycle_MissingAppointment(t *testing.T) {
	svc := newTestService(newMockRepo())
	if _, err := svc.Confirm(context.Background(), uuid.New(), uuid.New()); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestQuery_Filters(t *testing.T) {
	svc := newTestService(newMockRepo())
	doctor := uuid.New()
	patient := uuid.New()

	a1, _ := svc.Book(context.Background(), patient, doctor, day("2026-03-10"), "09:00", "")
	if _, err := svc.Book(context.Background(), uuid.New(), doctor, day("2026-03-11"), "09:00", ""); err != nil {
		t.Fatalf("book: %v", err)
	}
	if _, err := svc.Confirm(context.Background(), a1.ID, doctor); err != nil {
		t.Fatalf("confirm: %v", err)
	}

	items, total, err := svc.Query(context.Background(), SearchParams{Status: StatusConfirmed}, 20, 0)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if total != 1 || len(items) != 1 || items[0].ID != a1.ID {
		t.Errorf("status filter returned %d items (total %d)", len(items), total)
	}

	items, _, err = svc.Query(context.Background(), SearchParams{PatientID: patient}, 20, 0)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(items) != 1 {
		t.Errorf("patient filter returned %d items", len(items))
	}

	items, _, err = svc.Query(context.Background(), SearchParams{DoctorID: doctor}, 20, 0)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(items) != 2 {
		t.Errorf("doctor filter returned %d items", len(items))
	}
	// ordered by (date, time)
	if len(items) == 2 && items[0].Date.After(items[1].Date) {
		t.Error("results not ordered by date")
	}

	if _, _, err := svc.Query(context.Background(), SearchParams{Status: "bogus"}, 20, 0); err == nil {
		t.Error("expected error for invalid status filter")
	}
}

func TestAdminUpdate(t *testing.T) {
	svc := newTestService(newMockRepo())
	doctor := uuid.New()

	a, err := svc.Book(context.Background(), uuid.New(), doctor, day("2026-03-10"), "09:00", "")
	if err != nil {
		t.Fatalf("book: %v", err)
	}
	b, err := svc.Book(context.Background(), uuid.New(), doctor, day("2026-03-10"), "09:30", "")
	if err != nil {
		t.Fatalf("book: %v", err)
	}

	// moving onto an occupied slot loses to the uniqueness arbiter
	moved := *b
	moved.Time = "09:00"
	if err := svc.AdminUpdate(context.Background(), &moved); !errors.Is(err, ErrSlotTaken) {
		t.Errorf("expected ErrSlotTaken, got %v", err)
	}

	// moving to a free template slot works
	moved = *b
	moved.Time = "10:00"
	if err := svc.AdminUpdate(context.Background(), &moved); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	// times outside the template are refused
	moved = *a
	moved.Time = "08:15"
	if err := svc.AdminUpdate(context.Background(), &moved); !errors.Is(err, ErrSlotUnavailable) {
		t.Errorf("expected ErrSlotUnavailable, got %v", err)
	}

	moved = *a
	moved.Status = "bogus"
	if err := svc.AdminUpdate(context.Background(), &moved); err == nil {
		t.Error("expected error for invalid status")
	}
}
