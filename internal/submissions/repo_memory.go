package submissions

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo is an in-memory implementation of SubmissionsRepo, used when no
// database is configured.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string][]Submission // userID -> submissions
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{data: make(map[string][]Submission)}
}

// Create stores a submission.
func (r *MemoryRepo) Create(ctx context.Context, sub Submission) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[sub.UserID] = append(r.data[sub.UserID], sub)
	return nil
}

// GetByID returns one submission owned by the user.
func (r *MemoryRepo) GetByID(ctx context.Context, userID, id string) (Submission, error) {
	if err := ctx.Err(); err != nil {
		return Submission{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, sub := range r.data[userID] {
		if sub.ID == id {
			return sub, nil
		}
	}
	return Submission{}, ErrNotFound
}

// ListByUser returns submissions newest-first, honoring limit/offset.
func (r *MemoryRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Submission, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if offset < 0 {
		offset = 0
	}
	if limit < 0 {
		limit = 0
	}

	r.mu.RLock()
	userSubs := r.data[userID]
	r.mu.RUnlock()

	if len(userSubs) == 0 || offset >= len(userSubs) {
		return []Submission{}, nil
	}

	subs := make([]Submission, len(userSubs))
	copy(subs, userSubs)
	sort.Slice(subs, func(i, j int) bool {
		return subs[i].CreatedAt.After(subs[j].CreatedAt)
	})

	end := len(subs)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return subs[offset:end], nil
}

var _ SubmissionsRepo = (*MemoryRepo)(nil)
