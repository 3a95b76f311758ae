package auth

import (
	"strings"
	"testing"
	"time"
)

func TestNewService(t *testing.T) {
	secret := "test-secret-key"
	service := NewService(secret, 0)

	if service == nil {
		t.Fatal("expected non-nil Service")
	}
	if string(service.jwtSecret) != secret {
		t.Errorf("expected secret %q, got %q", secret, string(service.jwtSecret))
	}
	if service.tokenDuration != 24*time.Hour {
		t.Errorf("expected default token duration 24h, got %v", service.tokenDuration)
	}
}

func TestHashPassword(t *testing.T) {
	service := NewService("test-secret", 0)

	tests := []struct {
		name     string
		password string
	}{
		{name: "valid password", password: "securePassword123!"},
		{name: "empty password", password: ""},
		{name: "long password", password: strings.Repeat("a", 72)},
		{name: "password with special characters", password: "p@$$w0rd!#%&*()[]{}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := service.HashPassword(tt.password)
			if err != nil {
				t.Fatalf("HashPassword() error = %v", err)
			}
			if hash == "" {
				t.Error("expected non-empty hash")
			}
			if hash == tt.password {
				t.Error("hash should not equal plaintext password")
			}
		})
	}
}

func TestHashPassword_ProducesDifferentHashes(t *testing.T) {
	service := NewService("test-secret", 0)
	password := "samePassword123"

	hash1, err := service.HashPassword(password)
	if err != nil {
		t.Fatalf("first hash failed: %v", err)
	}

	hash2, err := service.HashPassword(password)
	if err != nil {
		t.Fatalf("second hash failed: %v", err)
	}

	if hash1 == hash2 {
		t.Error("same password should produce different hashes (bcrypt uses random salt)")
	}
}

func TestCheckPassword(t *testing.T) {
	service := NewService("test-secret", 0)

	password := "correctPassword123"
	hash, err := service.HashPassword(password)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	tests := []struct {
		name     string
		password string
		hash     string
		want     bool
	}{
		{name: "correct password", password: password, hash: hash, want: true},
		{name: "incorrect password", password: "wrongPassword", hash: hash, want: false},
		{name: "empty password against valid hash", password: "", hash: hash, want: false},
		{name: "password against empty hash", password: password, hash: "", want: false},
		{name: "password against malformed hash", password: password, hash: "not-a-valid-bcrypt-hash", want: false},
		{name: "case sensitive check", password: "CorrectPassword123", hash: hash, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := service.CheckPassword(tt.password, tt.hash)
			if result != tt.want {
				t.Errorf("CheckPassword() = %v, want %v", result, tt.want)
			}
		})
	}
}

func TestGenerateAndValidateToken(t *testing.T) {
	service := NewService("test-secret-key", 0)

	token, err := service.GenerateToken("admin")
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}
	if token == "" {
		t.Fatal("expected non-empty token")
	}

	claims, err := service.ValidateToken(token)
	if err != nil {
		t.Fatalf("failed to validate generated token: %v", err)
	}

	if claims.Subject != "admin" {
		t.Errorf("Subject = %q, want %q", claims.Subject, "admin")
	}
	if claims.Issuer != "crossgen" {
		t.Errorf("Issuer = %q, want %q", claims.Issuer, "crossgen")
	}
}

func TestGenerateToken_Expiration(t *testing.T) {
	service := NewService("test-secret-key", time.Hour)

	before := time.Now().Truncate(time.Second)
	token, err := service.GenerateToken("admin")
	after := time.Now().Add(time.Second).Truncate(time.Second)

	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	claims, err := service.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken() error = %v", err)
	}

	actualExpiry := claims.ExpiresAt.Time
	minExpiry := before.Add(time.Hour)
	maxExpiry := after.Add(time.Hour)

	if actualExpiry.Before(minExpiry) || actualExpiry.After(maxExpiry) {
		t.Errorf("token expiry = %v, expected between %v and %v", actualExpiry, minExpiry, maxExpiry)
	}
}

func TestValidateToken(t *testing.T) {
	service := NewService("test-secret-key", 0)

	validToken, _ := service.GenerateToken("admin")

	tests := []struct {
		name    string
		token   string
		wantErr error
	}{
		{name: "valid token", token: validToken, wantErr: nil},
		{name: "empty token", token: "", wantErr: ErrInvalidToken},
		{name: "malformed token", token: "not.a.valid.jwt.token", wantErr: ErrInvalidToken},
		{name: "random string", token: "randomgarbage123", wantErr: ErrInvalidToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := service.ValidateToken(tt.token)

			if tt.wantErr != nil {
				if err != tt.wantErr {
					t.Errorf("ValidateToken() error = %v, wantErr %v", err, tt.wantErr)
				}
				return
			}

			if err != nil {
				t.Fatalf("ValidateToken() unexpected error = %v", err)
			}
			if claims.Subject != "admin" {
				t.Errorf("Subject = %q, want %q", claims.Subject, "admin")
			}
		})
	}
}

func TestValidateToken_WrongSecret(t *testing.T) {
	service1 := NewService("secret-one", 0)
	service2 := NewService("secret-two", 0)

	token, err := service1.GenerateToken("admin")
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	_, err = service2.ValidateToken(token)
	if err != ErrInvalidToken {
		t.Errorf("expected ErrInvalidToken when validating with wrong secret, got %v", err)
	}
}

func TestValidateToken_ExpiredToken(t *testing.T) {
	service := NewService("test-secret", -1*time.Hour)

	token, err := service.GenerateToken("admin")
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	_, err = service.ValidateToken(token)
	if err != ErrTokenExpired {
		t.Errorf("expected ErrTokenExpired for expired token, got %v", err)
	}
}
