package crypto

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var testSubject = TokenSubject{UserID: "3f6c1a52-8e0b-4c1e-9d7a-2b5f0e4c9a11", Name: "ana", Email: "ana@x.com"}

func TestGenerateToken(t *testing.T) {
	token, err := GenerateToken(testSubject, "test-secret", time.Now(), time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken() unexpected error: %v", err)
	}
	if token == "" {
		t.Fatal("GenerateToken() returned empty string")
	}
}

func TestGenerateTokenUnique(t *testing.T) {
	now := time.Now()

	first, err := GenerateToken(testSubject, "test-secret", now, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken() unexpected error: %v", err)
	}
	second, err := GenerateToken(testSubject, "test-secret", now, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken() unexpected error: %v", err)
	}

	if first == second {
		t.Error("GenerateToken() produced identical tokens for the same instant")
	}
}

func TestParseTokenValid(t *testing.T) {
	secret := "test-secret"

	token, err := GenerateToken(testSubject, secret, time.Now(), time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken() unexpected error: %v", err)
	}

	claims, err := ParseToken(token, secret)
	if err != nil {
		t.Fatalf("ParseToken() unexpected error: %v", err)
	}
	if claims.UserID != testSubject.UserID {
		t.Errorf("ParseToken() UserID = %q, want %q", claims.UserID, testSubject.UserID)
	}
	if claims.Name != "ana" || claims.Email != "ana@x.com" {
		t.Errorf("ParseToken() name/email = %q/%q, want ana/ana@x.com", claims.Name, claims.Email)
	}
}

func TestParseTokenMalformed(t *testing.T) {
	_, err := ParseToken("not-a-valid-token", "test-secret")
	if err != ErrTokenMalformed {
		t.Errorf("ParseToken() error = %v, want %v", err, ErrTokenMalformed)
	}
}

func TestParseTokenWrongSecret(t *testing.T) {
	token, err := GenerateToken(testSubject, "correct-secret", time.Now(), time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken() unexpected error: %v", err)
	}

	_, err = ParseToken(token, "wrong-secret")
	if err != ErrTokenMalformed {
		t.Errorf("ParseToken() error = %v, want %v", err, ErrTokenMalformed)
	}
}

func TestParseTokenExpired(t *testing.T) {
	token, err := GenerateToken(testSubject, "test-secret", time.Now().Add(-2*time.Hour), time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken() unexpected error: %v", err)
	}

	_, err = ParseToken(token, "test-secret")
	if err != ErrTokenExpired {
		t.Errorf("ParseToken() error = %v, want %v", err, ErrTokenExpired)
	}
}

func TestParseTokenWrongIssuer(t *testing.T) {
	secret := "test-secret"

	claims := SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "wrong-issuer",
			Audience:  jwt.ClaimStrings{tokenAudience},
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
		UserID: testSubject.UserID,
	}
	tokenString, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("SignedString() unexpected error: %v", err)
	}

	_, err = ParseToken(tokenString, secret)
	if err != ErrTokenMalformed {
		t.Errorf("ParseToken() error = %v, want %v", err, ErrTokenMalformed)
	}
}

func TestParseTokenMissingExpiry(t *testing.T) {
	secret := "test-secret"

	claims := SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:   tokenIssuer,
			Audience: jwt.ClaimStrings{tokenAudience},
		},
		UserID: testSubject.UserID,
	}
	tokenString, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("SignedString() unexpected error: %v", err)
	}

	_, err = ParseToken(tokenString, secret)
	if err != ErrTokenMalformed {
		t.Errorf("ParseToken() error = %v, want %v", err, ErrTokenMalformed)
	}
}
