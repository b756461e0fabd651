package users

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"resume-quality/internal/shared/auth"
)

var (
	// ErrInvalidCredentials covers both unknown email and wrong password so
	// login failures are indistinguishable to callers.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrInvalidInput indicates missing or malformed signup fields.
	ErrInvalidInput = errors.New("invalid input")
)

type Service struct {
	Repo Repo
}

func NewService(repo Repo) *Service {
	return &Service{Repo: repo}
}

// Signup registers a new email/password account and returns the user with a
// signed session token.
func (s *Service) Signup(ctx context.Context, email, password, fullName string) (User, string, error) {
	email = normalizeEmail(email)
	if email == "" || !strings.Contains(email, "@") || len(password) < 8 {
		return User{}, "", ErrInvalidInput
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, "", err
	}

	now := time.Now().UTC()
	user := User{
		ID:           uuid.NewString(),
		Email:        email,
		FullName:     strings.TrimSpace(fullName),
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.Repo.Create(ctx, user); err != nil {
		return User{}, "", err
	}

	token, err := s.signToken(user)
	if err != nil {
		return User{}, "", err
	}
	return user, token, nil
}

// Login verifies credentials and returns the user with a signed session
// token.
func (s *Service) Login(ctx context.Context, email, password string) (User, string, error) {
	user, err := s.Repo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return User{}, "", ErrInvalidCredentials
		}
		return User{}, "", err
	}
	if user.PasswordHash == "" {
		// OAuth-only account.
		return User{}, "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return User{}, "", ErrInvalidCredentials
	}

	token, err := s.signToken(user)
	if err != nil {
		return User{}, "", err
	}
	return user, token, nil
}

// UpsertFromAuth persists the identity delivered by an OAuth callback and
// returns the stored user with a signed session token.
func (s *Service) UpsertFromAuth(ctx context.Context, email, fullName, pictureURL string) (User, string, error) {
	email = normalizeEmail(email)
	if email == "" {
		return User{}, "", ErrInvalidInput
	}

	now := time.Now().UTC()
	user := User{
		ID:         uuid.NewString(),
		Email:      email,
		FullName:   strings.TrimSpace(fullName),
		PictureURL: strings.TrimSpace(pictureURL),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.Repo.Upsert(ctx, user); err != nil {
		return User{}, "", err
	}

	// Re-read so an existing account keeps its original ID.
	stored, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		return User{}, "", err
	}

	token, err := s.signToken(stored)
	if err != nil {
		return User{}, "", err
	}
	return stored, token, nil
}

func (s *Service) GetByID(ctx context.Context, userID string) (User, error) {
	if strings.TrimSpace(userID) == "" {
		return User{}, errors.New("user id is required")
	}
	return s.Repo.GetByID(ctx, userID)
}

func (s *Service) signToken(user User) (string, error) {
	return auth.SignJWT(auth.Claims{
		Sub:   user.ID,
		Email: user.Email,
		Name:  user.FullName,
	})
}
