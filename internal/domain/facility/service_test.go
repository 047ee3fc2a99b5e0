package facility

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
)

type mockRepo struct {
	items map[uuid.UUID]*Facility
}

func newMockRepo() *mockRepo {
	return &mockRepo{items: make(map[uuid.UUID]*Facility)}
}

func (m *mockRepo) Create(ctx context.Context, f *Facility) error {
	f.ID = uuid.New()
	f.CreatedAt = time.Now()
	f.UpdatedAt = f.CreatedAt
	cp := *f
	m.items[f.ID] = &cp
	return nil
}

func (m *mockRepo) GetByID(ctx context.Context, id uuid.UUID) (*Facility, error) {
	f, ok := m.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	return f, nil
}

func (m *mockRepo) List(ctx context.Context, department string, limit, offset int) ([]*Facility, int, error) {
	var out []*Facility
	for _, f := range m.items {
		if department == "" || f.Department == department {
			out = append(out, f)
		}
	}
	return out, len(out), nil
}

func (m *mockRepo) Update(ctx context.Context, f *Facility) error {
	cur, ok := m.items[f.ID]
	if !ok {
		return ErrNotFound
	}
	*cur = *f
	return nil
}

func (m *mockRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := m.items[id]; !ok {
		return ErrNotFound
	}
	delete(m.items, id)
	return nil
}

func TestCreate(t *testing.T) {
	svc := NewService(newMockRepo())

	f := &Facility{Name: "West Wing Lab", Location: "Building B", Department: "diagnostics"}
	if err := svc.Create(context.Background(), f); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.ID == uuid.Nil {
		t.Error("expected id to be assigned")
	}

	if err := svc.Create(context.Background(), &Facility{Location: "x"}); err == nil {
		t.Error("expected error for missing name")
	}
	if err := svc.Create(context.Background(), &Facility{Name: "x"}); err == nil {
		t.Error("expected error for missing location")
	}
}

func TestList_DepartmentFilter(t *testing.T) {
	svc := NewService(newMockRepo())

	for _, f := range []*Facility{
		{Name: "Lab A", Location: "B1", Department: "diagnostics"},
		{Name: "Ward 3", Location: "B2", Department: "surgery"},
	} {
		if err := svc.Create(context.Background(), f); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	items, total, err := svc.List(context.Background(), "surgery", 20, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 1 || len(items) != 1 || items[0].Name != "Ward 3" {
		t.Errorf("department filter returned %d items", total)
	}
}
