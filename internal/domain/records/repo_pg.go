package records

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository { return &repoPG{pool: pool} }

const historyCols = `id, patient_id, diagnosis, medications, allergies, treatment, date, created_at, updated_at`

func (r *repoPG) scanHistory(row pgx.Row) (*MedicalHistory, error) {
	var m MedicalHistory
	err := row.Scan(&m.ID, &m.PatientID, &m.Diagnosis, &m.Medications, &m.Allergies,
		&m.Treatment, &m.Date, &m.CreatedAt, &m.UpdatedAt)
	return &m, err
}

func (r *repoPG) Create(ctx context.Context, m *MedicalHistory) error {
	m.ID = uuid.New()
	return r.pool.QueryRow(ctx, `
		INSERT INTO medical_history (id, patient_id, diagnosis, medications, allergies, treatment, date)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		RETURNING created_at, updated_at`,
		m.ID, m.PatientID, m.Diagnosis, m.Medications, m.Allergies, m.Treatment, m.Date).
		Scan(&m.CreatedAt, &m.UpdatedAt)
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*MedicalHistory, error) {
	m, err := r.scanHistory(r.pool.QueryRow(ctx,
		`SELECT `+historyCols+` FROM medical_history WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return m, err
}

func (r *repoPG) ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*MedicalHistory, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM medical_history WHERE patient_id = $1`, patientID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.pool.Query(ctx,
		`SELECT `+historyCols+` FROM medical_history WHERE patient_id = $1 ORDER BY date DESC LIMIT $2 OFFSET $3`,
		patientID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*MedicalHistory
	for rows.Next() {
		m, err := r.scanHistory(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, m)
	}
	return items, total, rows.Err()
}

func (r *repoPG) Update(ctx context.Context, m *MedicalHistory) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE medical_history SET diagnosis=$3, medications=$4, allergies=$5, treatment=$6, date=$7, updated_at=NOW()
		WHERE id = $1 AND patient_id = $2`,
		m.ID, m.PatientID, m.Diagnosis, m.Medications, m.Allergies, m.Treatment, m.Date)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repoPG) Delete(ctx context.Context, id, patientID uuid.UUID) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM medical_history WHERE id = $1 AND patient_id = $2`, id, patientID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
