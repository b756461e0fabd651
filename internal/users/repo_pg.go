package users

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a new user; a duplicate email returns ErrEmailTaken.
func (r *PGRepo) Create(ctx context.Context, user User) error {
	const query = `
INSERT INTO users (id, email, full_name, password_hash, picture_url, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $6)`
	_, err := r.DB.ExecContext(
		ctx,
		query,
		user.ID,
		user.Email,
		nullString(user.FullName),
		nullString(user.PasswordHash),
		nullString(user.PictureURL),
		user.CreatedAt,
	)
	if isUniqueViolation(err) {
		return ErrEmailTaken
	}
	return err
}

// Upsert inserts or refreshes a user by email. Used by the OAuth callback;
// the password hash is left untouched on conflict.
func (r *PGRepo) Upsert(ctx context.Context, user User) error {
	const query = `
INSERT INTO users (id, email, full_name, password_hash, picture_url, created_at, updated_at)
VALUES ($1, $2, $3, NULL, $4, $5, $5)
ON CONFLICT (email) DO UPDATE
SET full_name = COALESCE(EXCLUDED.full_name, users.full_name),
    picture_url = COALESCE(EXCLUDED.picture_url, users.picture_url),
    updated_at = EXCLUDED.updated_at`
	_, err := r.DB.ExecContext(
		ctx,
		query,
		user.ID,
		user.Email,
		nullString(user.FullName),
		nullString(user.PictureURL),
		user.CreatedAt,
	)
	return err
}

// GetByID fetches a user by ID.
func (r *PGRepo) GetByID(ctx context.Context, userID string) (User, error) {
	const query = `
SELECT id, email, full_name, password_hash, picture_url, created_at, updated_at
FROM users
WHERE id = $1
LIMIT 1`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, userID))
}

// GetByEmail fetches a user by email.
func (r *PGRepo) GetByEmail(ctx context.Context, email string) (User, error) {
	const query = `
SELECT id, email, full_name, password_hash, picture_url, created_at, updated_at
FROM users
WHERE email = $1
LIMIT 1`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, email))
}

func (r *PGRepo) scanOne(row *sql.Row) (User, error) {
	var user User
	var fullName, passwordHash, pictureURL sql.NullString
	err := row.Scan(
		&user.ID,
		&user.Email,
		&fullName,
		&passwordHash,
		&pictureURL,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, ErrNotFound
		}
		return User{}, err
	}
	if fullName.Valid {
		user.FullName = fullName.String
	}
	if passwordHash.Valid {
		user.PasswordHash = passwordHash.String
	}
	if pictureURL.Valid {
		user.PictureURL = pictureURL.String
	}
	return user, nil
}

// isUniqueViolation reports SQLSTATE 23505 (unique_violation).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

var _ Repo = (*PGRepo)(nil)
