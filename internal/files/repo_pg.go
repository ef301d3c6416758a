package files

import (
	"context"
	"database/sql"
	"errors"
)

// PGRepo implements FilesRepo using Postgres. Payloads live in a bytea column.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a file and returns it with its generated ID.
func (r *PGRepo) Create(ctx context.Context, f File) (File, error) {
	const query = `
INSERT INTO files (owner, filename, content_type, data, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id`

	err := r.DB.QueryRowContext(
		ctx,
		query,
		f.Owner,
		f.Filename,
		f.ContentType,
		f.Data,
		f.CreatedAt,
		f.UpdatedAt,
	).Scan(&f.ID)
	if err != nil {
		return File{}, err
	}
	f.Size = int64(len(f.Data))
	return f, nil
}

// GetByID fetches a file with its payload.
func (r *PGRepo) GetByID(ctx context.Context, id int64) (File, error) {
	const query = `
SELECT id, owner, filename, content_type, data, created_at, updated_at
FROM files
WHERE id = $1`
	var f File
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&f.ID,
		&f.Owner,
		&f.Filename,
		&f.ContentType,
		&f.Data,
		&f.CreatedAt,
		&f.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return File{}, ErrNotFound
		}
		return File{}, err
	}
	f.Size = int64(len(f.Data))
	return f, nil
}

// ListByOwner lists an owner's files newest first without loading payloads.
func (r *PGRepo) ListByOwner(ctx context.Context, owner string) ([]File, error) {
	const query = `
SELECT id, owner, filename, content_type, octet_length(data), created_at, updated_at
FROM files
WHERE owner = $1
ORDER BY created_at DESC, id DESC`

	rows, err := r.DB.QueryContext(ctx, query, owner)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]File, 0)
	for rows.Next() {
		var f File
		if err := rows.Scan(
			&f.ID,
			&f.Owner,
			&f.Filename,
			&f.ContentType,
			&f.Size,
			&f.CreatedAt,
			&f.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

// Delete removes a file, returning ErrNotFound when no row matched.
func (r *PGRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM files WHERE id = $1`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

var _ FilesRepo = (*PGRepo)(nil)
