package availability

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository { return &repoPG{pool: pool} }

const availCols = `id, doctor_id, day_of_week, start_time, end_time, created_at`

func (r *repoPG) scanAvailability(row pgx.Row) (*Availability, error) {
	var a Availability
	err := row.Scan(&a.ID, &a.DoctorID, &a.DayOfWeek, &a.StartTime, &a.EndTime, &a.CreatedAt)
	return &a, err
}

func (r *repoPG) Create(ctx context.Context, a *Availability) error {
	a.ID = uuid.New()
	return r.pool.QueryRow(ctx, `
		INSERT INTO doctor_availability (id, doctor_id, day_of_week, start_time, end_time)
		VALUES ($1,$2,$3,$4,$5)
		RETURNING created_at`,
		a.ID, a.DoctorID, a.DayOfWeek, a.StartTime, a.EndTime).Scan(&a.CreatedAt)
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Availability, error) {
	a, err := r.scanAvailability(r.pool.QueryRow(ctx,
		`SELECT `+availCols+` FROM doctor_availability WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return a, err
}

func (r *repoPG) ListByDoctor(ctx context.Context, doctorID uuid.UUID) ([]*Availability, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+availCols+` FROM doctor_availability
		WHERE doctor_id = $1
		ORDER BY day_of_week ASC, start_time ASC`, doctorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*Availability
	for rows.Next() {
		a, err := r.scanAvailability(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, a)
	}
	return items, rows.Err()
}

func (r *repoPG) ListByDoctorDay(ctx context.Context, doctorID uuid.UUID, dayOfWeek int) ([]*Availability, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+availCols+` FROM doctor_availability
		WHERE doctor_id = $1 AND day_of_week = $2
		ORDER BY start_time ASC`, doctorID, dayOfWeek)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*Availability
	for rows.Next() {
		a, err := r.scanAvailability(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, a)
	}
	return items, rows.Err()
}

func (r *repoPG) Delete(ctx context.Context, id, doctorID uuid.UUID) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM doctor_availability WHERE id = $1 AND doctor_id = $2`, id, doctorID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
