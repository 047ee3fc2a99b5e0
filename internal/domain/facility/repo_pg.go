package facility

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository { return &repoPG{pool: pool} }

const facilityCols = `id, name, location, department, resources, created_at, updated_at`

func (r *repoPG) scanFacility(row pgx.Row) (*Facility, error) {
	var f Facility
	err := row.Scan(&f.ID, &f.Name, &f.Location, &f.Department, &f.Resources,
		&f.CreatedAt, &f.UpdatedAt)
	return &f, err
}

func (r *repoPG) Create(ctx context.Context, f *Facility) error {
	f.ID = uuid.New()
	return r.pool.QueryRow(ctx, `
		INSERT INTO facility (id, name, location, department, resources)
		VALUES ($1,$2,$3,$4,$5)
		RETURNING created_at, updated_at`,
		f.ID, f.Name, f.Location, f.Department, f.Resources).
		Scan(&f.CreatedAt, &f.UpdatedAt)
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Facility, error) {
	f, err := r.scanFacility(r.pool.QueryRow(ctx,
		`SELECT `+facilityCols+` FROM facility WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return f, err
}

func (r *repoPG) List(ctx context.Context, department string, limit, offset int) ([]*Facility, int, error) {
	query := `SELECT ` + facilityCols + ` FROM facility WHERE 1=1`
	countQuery := `SELECT COUNT(*) FROM facility WHERE 1=1`
	var args []interface{}
	idx := 1

	if department != "" {
		query += fmt.Sprintf(` AND department = $%d`, idx)
		countQuery += fmt.Sprintf(` AND department = $%d`, idx)
		args = append(args, department)
		idx++
	}

	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query += fmt.Sprintf(` ORDER BY name ASC LIMIT $%d OFFSET $%d`, idx, idx+1)
	args = append(args, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Facility
	for rows.Next() {
		f, err := r.scanFacility(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, f)
	}
	return items, total, rows.Err()
}

func (r *repoPG) Update(ctx context.Context, f *Facility) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE facility SET name=$2, location=$3, department=$4, resources=$5, updated_at=NOW()
		WHERE id = $1`,
		f.ID, f.Name, f.Location, f.Department, f.Resources)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM facility WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
