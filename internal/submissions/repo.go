package submissions

import (
	"context"
	"errors"
)

var (
	// ErrNotFound indicates the submission does not exist.
	ErrNotFound = errors.New("not found")
	// ErrInvalidInput indicates the caller supplied unusable input.
	ErrInvalidInput = errors.New("invalid input")
)

// SubmissionsRepo defines persistence operations for submissions.
type SubmissionsRepo interface {
	Create(ctx context.Context, sub Submission) error
	GetByID(ctx context.Context, userID, id string) (Submission, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]Submission, error)
}
