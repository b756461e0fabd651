package users

import (
	"context"
	"errors"
	"strings"
	"sync"
)

// ErrEmailTaken indicates a signup against an existing email.
var ErrEmailTaken = errors.New("email already registered")

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu      sync.RWMutex
	byID    map[string]User
	byEmail map[string]string // email -> id
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		byID:    make(map[string]User),
		byEmail: make(map[string]string),
	}
}

// Create stores a new user; the email must be unused.
func (r *MemoryRepo) Create(ctx context.Context, user User) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	email := normalizeEmail(user.Email)
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byEmail[email]; exists {
		return ErrEmailTaken
	}
	r.byID[user.ID] = user
	r.byEmail[email] = user.ID
	return nil
}

// Upsert inserts or refreshes a user by email, keeping an existing password
// hash.
func (r *MemoryRepo) Upsert(ctx context.Context, user User) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	email := normalizeEmail(user.Email)
	r.mu.Lock()
	defer r.mu.Unlock()
	if existingID, ok := r.byEmail[email]; ok {
		existing := r.byID[existingID]
		if user.FullName != "" {
			existing.FullName = user.FullName
		}
		if user.PictureURL != "" {
			existing.PictureURL = user.PictureURL
		}
		existing.UpdatedAt = user.UpdatedAt
		r.byID[existingID] = existing
		return nil
	}
	r.byID[user.ID] = user
	r.byEmail[email] = user.ID
	return nil
}

// GetByID returns a user by ID.
func (r *MemoryRepo) GetByID(ctx context.Context, userID string) (User, error) {
	if err := ctx.Err(); err != nil {
		return User{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.byID[userID]
	if !ok {
		return User{}, ErrNotFound
	}
	return user, nil
}

// GetByEmail returns a user by email.
func (r *MemoryRepo) GetByEmail(ctx context.Context, email string) (User, error) {
	if err := ctx.Err(); err != nil {
		return User{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byEmail[normalizeEmail(email)]
	if !ok {
		return User{}, ErrNotFound
	}
	return r.byID[id], nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

var _ Repo = (*MemoryRepo)(nil)
