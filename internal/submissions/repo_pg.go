package submissions

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
)

// PGRepo implements SubmissionsRepo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a new submission. Skills and recommendations are stored as
// JSONB arrays.
func (r *PGRepo) Create(ctx context.Context, sub Submission) error {
	const query = `
INSERT INTO submissions (
    id,
    user_id,
    resume_key,
    resume_text,
    target_role,
    score,
    skills,
    recommendations,
    created_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	skills, err := json.Marshal(orEmpty(sub.Skills))
	if err != nil {
		return err
	}
	recommendations, err := json.Marshal(orEmpty(sub.Recommendations))
	if err != nil {
		return err
	}

	_, err = r.DB.ExecContext(
		ctx,
		query,
		sub.ID,
		nullString(sub.UserID),
		nullString(sub.ResumeKey),
		nullString(sub.ResumeText),
		sub.TargetRole,
		sub.Score,
		skills,
		recommendations,
		sub.CreatedAt,
	)
	return err
}

// GetByID fetches one submission owned by the user.
func (r *PGRepo) GetByID(ctx context.Context, userID, id string) (Submission, error) {
	const query = `
SELECT id, user_id, resume_key, resume_text, target_role, score, skills, recommendations, created_at
FROM submissions
WHERE id = $1 AND user_id = $2
LIMIT 1`
	row := r.DB.QueryRowContext(ctx, query, id, userID)
	sub, err := scanSubmission(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Submission{}, ErrNotFound
		}
		return Submission{}, err
	}
	return sub, nil
}

// ListByUser lists a user's submissions newest-first.
func (r *PGRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Submission, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	const query = `
SELECT id, user_id, resume_key, resume_text, target_role, score, skills, recommendations, created_at
FROM submissions
WHERE user_id = $1
ORDER BY created_at DESC
LIMIT $2 OFFSET $3`

	rows, err := r.DB.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Submission{}
	for rows.Next() {
		sub, err := scanSubmission(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, sub)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSubmission(row rowScanner) (Submission, error) {
	var sub Submission
	var userID, resumeKey, resumeText sql.NullString
	var score sql.NullInt64
	var skills, recommendations []byte
	if err := row.Scan(
		&sub.ID,
		&userID,
		&resumeKey,
		&resumeText,
		&sub.TargetRole,
		&score,
		&skills,
		&recommendations,
		&sub.CreatedAt,
	); err != nil {
		return Submission{}, err
	}
	if userID.Valid {
		sub.UserID = userID.String
	}
	if resumeKey.Valid {
		sub.ResumeKey = resumeKey.String
	}
	if resumeText.Valid {
		sub.ResumeText = resumeText.String
	}
	if score.Valid {
		sub.Score = int(score.Int64)
	}
	if len(skills) > 0 {
		_ = json.Unmarshal(skills, &sub.Skills)
	}
	if len(recommendations) > 0 {
		_ = json.Unmarshal(recommendations, &sub.Recommendations)
	}
	return sub, nil
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func orEmpty(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}

var _ SubmissionsRepo = (*PGRepo)(nil)
