package maillog

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct{ DB *pgxpool.Pool }

func (r *Repo) Insert(ctx context.Context, e Entry) error {
	_, err := r.DB.Exec(ctx, `INSERT INTO email_logs(email_type, recipient, status, error_message)
	                          VALUES ($1,$2,$3,NULLIF($4,''))`,
		string(e.EmailType), e.Recipient, e.Status, e.ErrorMessage)
	return err
}

func (r *Repo) List(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.DB.Query(ctx, `SELECT id, email_type, recipient, status, COALESCE(error_message,''), created_at
	                              FROM email_logs ORDER BY created_at DESC, id DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Entry{}
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.EmailType, &e.Recipient, &e.Status, &e.ErrorMessage, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
