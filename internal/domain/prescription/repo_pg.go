package prescription

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository { return &repoPG{pool: pool} }

const rxCols = `id, doctor_id, patient_id, notes, created_at`

func (r *repoPG) Create(ctx context.Context, p *Prescription) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	p.ID = uuid.New()
	if err := tx.QueryRow(ctx, `
		INSERT INTO prescription (id, doctor_id, patient_id, notes)
		VALUES ($1,$2,$3,$4)
		RETURNING created_at`,
		p.ID, p.DoctorID, p.PatientID, p.Notes).Scan(&p.CreatedAt); err != nil {
		return err
	}

	for i, item := range p.Items {
		item.ID = uuid.New()
		item.PrescriptionID = p.ID
		item.Position = i
		if _, err := tx.Exec(ctx, `
			INSERT INTO prescription_item (id, prescription_id, position, drug_name, dosage, frequency, duration)
			VALUES ($1,$2,$3,$4,$5,$6,$7)`,
			item.ID, item.PrescriptionID, item.Position,
			item.DrugName, item.Dosage, item.Frequency, item.Duration); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Prescription, error) {
	var p Prescription
	err := r.pool.QueryRow(ctx,
		`SELECT `+rxCols+` FROM prescription WHERE id = $1`, id).
		Scan(&p.ID, &p.DoctorID, &p.PatientID, &p.Notes, &p.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if p.Items, err = r.itemsFor(ctx, p.ID); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repoPG) itemsFor(ctx context.Context, prescriptionID uuid.UUID) ([]*Item, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, prescription_id, position, drug_name, dosage, frequency, duration
		FROM prescription_item WHERE prescription_id = $1
		ORDER BY position ASC`, prescriptionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*Item
	for rows.Next() {
		var it Item
		if err := rows.Scan(&it.ID, &it.PrescriptionID, &it.Position,
			&it.DrugName, &it.Dosage, &it.Frequency, &it.Duration); err != nil {
			return nil, err
		}
		items = append(items, &it)
	}
	return items, rows.Err()
}

func (r *repoPG) ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Prescription, int, error) {
	return r.list(ctx, `patient_id`, patientID, limit, offset)
}

func (r *repoPG) ListByDoctor(ctx context.Context, doctorID uuid.UUID, limit, offset int) ([]*Prescription, int, error) {
	return r.list(ctx, `doctor_id`, doctorID, limit, offset)
}

func (r *repoPG) list(ctx context.Context, col string, id uuid.UUID, limit, offset int) ([]*Prescription, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM prescription WHERE `+col+` = $1`, id).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.pool.Query(ctx,
		`SELECT `+rxCols+` FROM prescription WHERE `+col+` = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		id, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Prescription
	for rows.Next() {
		var p Prescription
		if err := rows.Scan(&p.ID, &p.DoctorID, &p.PatientID, &p.Notes, &p.CreatedAt); err != nil {
			return nil, 0, err
		}
		items = append(items, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	for _, p := range items {
		if p.Items, err = r.itemsFor(ctx, p.ID); err != nil {
			return nil, 0, err
		}
	}
	return items, total, nil
}
