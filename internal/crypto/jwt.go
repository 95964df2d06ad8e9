package crypto

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	tokenIssuer   = "weatherlog"
	tokenAudience = "weatherlog-api"
)

var (
	ErrTokenMalformed = errors.New("token invalid")
	ErrTokenExpired   = errors.New("token expired")
)

// SessionClaims identifies the user a session token was issued to.
type SessionClaims struct {
	jwt.RegisteredClaims
	UserID string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
}

// TokenSubject is the user data embedded in a session token.
type TokenSubject struct {
	UserID string
	Name   string
	Email  string
}

// GenerateToken signs a session token for subject, valid from issuedAt for expiry.
// Every token carries a fresh jti, so two tokens issued in the same second still differ.
func GenerateToken(subject TokenSubject, secret string, issuedAt time.Time, expiry time.Duration) (string, error) {
	claims := SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    tokenIssuer,
			Audience:  jwt.ClaimStrings{tokenAudience},
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(expiry)),
		},
		UserID: subject.UserID,
		Name:   subject.Name,
		Email:  subject.Email,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseToken validates signature, issuer, audience and expiry.
// It returns ErrTokenExpired for a well-signed token past its exp and ErrTokenMalformed otherwise.
func ParseToken(tokenString, secret string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenMalformed
		}
		return []byte(secret), nil
	},
		jwt.WithIssuer(tokenIssuer),
		jwt.WithAudience(tokenAudience),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenMalformed
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid || claims.UserID == "" {
		return nil, ErrTokenMalformed
	}

	return claims, nil
}
