package healthresource

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository { return &repoPG{pool: pool} }

const resourceCols = `id, title, content, published_at, updated_at`

func (r *repoPG) scanResource(row pgx.Row) (*HealthResource, error) {
	var hr HealthResource
	err := row.Scan(&hr.ID, &hr.Title, &hr.Content, &hr.PublishedAt, &hr.UpdatedAt)
	return &hr, err
}

func (r *repoPG) Create(ctx context.Context, hr *HealthResource) error {
	hr.ID = uuid.New()
	return r.pool.QueryRow(ctx, `
		INSERT INTO health_resource (id, title, content)
		VALUES ($1,$2,$3)
		RETURNING published_at, updated_at`,
		hr.ID, hr.Title, hr.Content).Scan(&hr.PublishedAt, &hr.UpdatedAt)
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*HealthResource, error) {
	hr, err := r.scanResource(r.pool.QueryRow(ctx,
		`SELECT `+resourceCols+` FROM health_resource WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return hr, err
}

func (r *repoPG) List(ctx context.Context, limit, offset int) ([]*HealthResource, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM health_resource`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.pool.Query(ctx,
		`SELECT `+resourceCols+` FROM health_resource ORDER BY published_at DESC LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*HealthResource
	for rows.Next() {
		hr, err := r.scanResource(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, hr)
	}
	return items, total, rows.Err()
}

func (r *repoPG) Update(ctx context.Context, hr *HealthResource) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE health_resource SET title=$2, content=$3, updated_at=NOW()
		WHERE id = $1`,
		hr.ID, hr.Title, hr.Content)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM health_resource WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
