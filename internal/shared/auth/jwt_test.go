package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestSignAndVerifyRoundTrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	token, err := SignJWT(Claims{Sub: "user-1", Email: "a@b.co", Name: "A B"})
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	claims, err := VerifyJWT(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.Sub != "user-1" || claims.Email != "a@b.co" || claims.Name != "A B" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestVerifyRejectsExpired(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	past := jwt.NewNumericDate(time.Now().UTC().Add(-time.Hour))
	token, err := SignJWT(Claims{
		Sub:              "user-1",
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: past},
	})
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := VerifyJWT(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestSignRequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	if _, err := SignJWT(Claims{Sub: "user-1"}); err == nil {
		t.Fatal("expected error without secret")
	}
}

func TestVerifyRejectsTampered(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	token, err := SignJWT(Claims{Sub: "user-1"})
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := VerifyJWT(token + "x"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}
