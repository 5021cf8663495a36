package tokens

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/MichelCriadorFelix/Andamento-Processual-Felix-e-Castro-Advocacia/internal/models"
)

func testUser() *models.User {
	return &models.User{
		ID:   "0191a7d2-0000-7000-8000-000000000001",
		Name: "Maria Silva",
		Role: models.RoleClient,
	}
}

func TestGenerateAndValidateAccessToken(t *testing.T) {
	tg := NewTokenGenerator("test-secret-key-that-is-long-enough")

	token, err := tg.GenerateAccessToken(testUser())
	if err != nil {
		t.Fatalf("Failed to generate token: %v", err)
	}

	claims, err := tg.ValidateAccessToken(token)
	if err != nil {
		t.Fatalf("Failed to validate token: %v", err)
	}

	if claims.UserID != testUser().ID {
		t.Errorf("Expected UserID %s, got %s", testUser().ID, claims.UserID)
	}
	if claims.Role != models.RoleClient {
		t.Errorf("Expected role CLIENT, got %s", claims.Role)
	}
	if claims.Issuer != "fc-portal" {
		t.Errorf("Expected issuer 'fc-portal', got %s", claims.Issuer)
	}

	if claims.ExpiresAt == nil {
		t.Fatal("Expected ExpiresAt to be set")
	}
	expectedExpiry := time.Now().Add(15 * time.Minute)
	if claims.ExpiresAt.Time.Before(expectedExpiry.Add(-5*time.Second)) ||
		claims.ExpiresAt.Time.After(expectedExpiry.Add(5*time.Second)) {
		t.Errorf("Expected expiry around %v, got %v", expectedExpiry, claims.ExpiresAt.Time)
	}
}

func TestValidateAccessTokenErrors(t *testing.T) {
	tg := NewTokenGenerator("test-secret-key-that-is-long-enough")
	other := NewTokenGenerator("a-completely-different-secret-key")

	foreignToken, _ := other.GenerateAccessToken(testUser())

	tests := []struct {
		name        string
		tokenString string
	}{
		{name: "empty token", tokenString: ""},
		{name: "garbage token", tokenString: "this-is-not-a-jwt"},
		{name: "malformed token", tokenString: "header.payload"},
		{name: "wrong secret", tokenString: foreignToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tg.ValidateAccessToken(tt.tokenString); err == nil {
				t.Fatal("Expected error but got none")
			}
		})
	}
}

func TestValidateExpiredToken(t *testing.T) {
	tg := NewTokenGenerator("test-secret-key-that-is-long-enough")

	claims := Claims{
		UserID: "user-expired",
		Role:   models.RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-1 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
			NotBefore: jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
			Issuer:    "fc-portal",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	expiredToken, err := token.SignedString(tg.accessSecret)
	if err != nil {
		t.Fatalf("Failed to create expired token: %v", err)
	}

	_, err = tg.ValidateAccessToken(expiredToken)
	if !errors.Is(err, ErrExpiredToken) {
		t.Fatalf("Expected ErrExpiredToken, got %v", err)
	}
}

func TestGenerateRefreshTokenUniqueness(t *testing.T) {
	tg := NewTokenGenerator("access-secret")

	tokens := make(map[string]bool)
	iterations := 100

	for i := 0; i < iterations; i++ {
		token, err := tg.GenerateRefreshToken()
		if err != nil {
			t.Fatalf("Failed to generate token: %v", err)
		}
		if tokens[token] {
			t.Fatalf("Generated duplicate refresh token: %s", token)
		}
		tokens[token] = true
	}
}
