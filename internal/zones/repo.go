package zones

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotFound      = errors.New("delivery zone not found")
	ErrDuplicateName = errors.New("delivery zone name already exists")
)

type Repo struct{ DB *pgxpool.Pool }

func (r *Repo) List(ctx context.Context) ([]Zone, error) {
	rows, err := r.DB.Query(ctx, `SELECT id, name, price, created_at FROM delivery_zones ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Zone{}
	for rows.Next() {
		var z Zone
		if err := rows.Scan(&z.ID, &z.Name, &z.Price, &z.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, z)
	}
	return out, rows.Err()
}

func (r *Repo) ByName(ctx context.Context, name string) (*Zone, error) {
	var z Zone
	err := r.DB.QueryRow(ctx, `SELECT id, name, price, created_at FROM delivery_zones WHERE name=$1`, name).
		Scan(&z.ID, &z.Name, &z.Price, &z.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &z, nil
}

func (r *Repo) Create(ctx context.Context, name string, price float64) (*Zone, error) {
	var z Zone
	err := r.DB.QueryRow(ctx, `INSERT INTO delivery_zones(name, price) VALUES ($1,$2)
	                           RETURNING id, name, price, created_at`, name, price).
		Scan(&z.ID, &z.Name, &z.Price, &z.CreatedAt)
	if isUniqueViolation(err) {
		return nil, ErrDuplicateName
	}
	if err != nil {
		return nil, err
	}
	return &z, nil
}

func (r *Repo) Update(ctx context.Context, id int64, name string, price float64) (*Zone, error) {
	var z Zone
	err := r.DB.QueryRow(ctx, `UPDATE delivery_zones SET name=$2, price=$3 WHERE id=$1
	                           RETURNING id, name, price, created_at`, id, name, price).
		Scan(&z.ID, &z.Name, &z.Price, &z.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if isUniqueViolation(err) {
		return nil, ErrDuplicateName
	}
	if err != nil {
		return nil, err
	}
	return &z, nil
}

// Delete removes a zone. Historical orders carry their own snapshot of the
// zone name and fee, so this is safe for them.
func (r *Repo) Delete(ctx context.Context, id int64) error {
	tag, err := r.DB.Exec(ctx, `DELETE FROM delivery_zones WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
