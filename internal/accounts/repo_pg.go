package accounts

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolation = "23505"

type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Create(ctx context.Context, a Account) error {
	const query = `
INSERT INTO users (email, password_hash, full_name, avatar_url, role, verified, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $7)`
	_, err := r.DB.ExecContext(ctx, query,
		a.Email,
		a.PasswordHash,
		a.FullName,
		nullableString(a.AvatarURL),
		string(a.Role),
		a.Verified,
		a.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return ErrDuplicateAccount
		}
		return err
	}
	return nil
}

func (r *PGRepo) GetByEmail(ctx context.Context, email string) (Account, error) {
	const query = `
SELECT email, password_hash, full_name, avatar_url, role, verified, created_at
FROM users
WHERE email = $1
LIMIT 1`
	a, err := scanAccount(r.DB.QueryRowContext(ctx, query, email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Account{}, ErrNotFound
		}
		return Account{}, err
	}
	return a, nil
}

func (r *PGRepo) Update(ctx context.Context, a Account) error {
	const query = `
UPDATE users
SET password_hash = $2,
  full_name = $3,
  avatar_url = $4,
  role = $5,
  verified = $6,
  updated_at = now()
WHERE email = $1`
	res, err := r.DB.ExecContext(ctx, query,
		a.Email,
		a.PasswordHash,
		a.FullName,
		nullableString(a.AvatarURL),
		string(a.Role),
		a.Verified,
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PGRepo) List(ctx context.Context) ([]Account, error) {
	const query = `
SELECT email, password_hash, full_name, avatar_url, role, verified, created_at
FROM users
ORDER BY created_at DESC, email ASC`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Account{}
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAccount(row rowScanner) (Account, error) {
	var a Account
	var role string
	var avatarURL sql.NullString
	if err := row.Scan(
		&a.Email,
		&a.PasswordHash,
		&a.FullName,
		&avatarURL,
		&role,
		&a.Verified,
		&a.CreatedAt,
	); err != nil {
		return Account{}, err
	}
	if avatarURL.Valid {
		a.AvatarURL = avatarURL.String
	}
	a.Role = NormalizeRole(role)
	return a, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

var _ Repo = (*PGRepo)(nil)
