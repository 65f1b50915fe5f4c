package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "unit-test-secret"

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func TestVerify(t *testing.T) {
	v := NewVerifier(testSecret)
	token := signToken(t, testSecret, jwt.MapClaims{
		"sub":   "user-42",
		"email": "owner@example.com",
		"exp":   time.Now().Add(time.Hour).Unix(),
	})

	session, err := v.Verify(token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if session.UserID != "user-42" {
		t.Errorf("user id = %q, want user-42", session.UserID)
	}
	if session.Email != "owner@example.com" {
		t.Errorf("email = %q, want owner@example.com", session.Email)
	}
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	v := NewVerifier(testSecret)
	token := signToken(t, "some-other-secret", jwt.MapClaims{"sub": "user-42"})

	if _, err := v.Verify(token); err == nil {
		t.Fatal("expected verification to fail for a foreign signature")
	}
}

func TestVerifyRejectsMissingSubject(t *testing.T) {
	v := NewVerifier(testSecret)
	token := signToken(t, testSecret, jwt.MapClaims{"email": "owner@example.com"})

	if _, err := v.Verify(token); err == nil {
		t.Fatal("expected verification to fail without a subject")
	}
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	v := NewVerifier(testSecret)
	token := signToken(t, testSecret, jwt.MapClaims{
		"sub": "user-42",
		"exp": time.Now().Add(-time.Hour).Unix(),
	})

	if _, err := v.Verify(token); err == nil {
		t.Fatal("expected verification to fail for an expired token")
	}
}

func TestVerifyRejectsGarbage(t *testing.T) {
	v := NewVerifier(testSecret)

	if _, err := v.Verify("not-a-jwt"); err == nil {
		t.Fatal("expected verification to fail for a malformed token")
	}
}
