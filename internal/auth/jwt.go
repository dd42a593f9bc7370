package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const issuer = "bizdash-backend"

// contextKey is a custom type used for context keys to avoid collisions.
type contextKey string

const SubjectKey contextKey = "subject"

// ErrMissingSubject is returned for otherwise valid tokens without a subject.
var ErrMissingSubject = errors.New("token has no subject")

// CustomClaims are the claims carried by dashboard access tokens.
type CustomClaims struct {
	jwt.RegisteredClaims
}

// NewAccessToken generates a new HS256 access token for subject.
func NewAccessToken(subject, secret string, expiration time.Duration) (string, error) {
	now := time.Now()
	claims := CustomClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(expiration)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    issuer,
			Subject:   subject,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// ParseAccessToken validates tokenString and returns its claims. Errors wrap
// the jwt package sentinels (jwt.ErrTokenExpired, jwt.ErrTokenMalformed, ...).
func ParseAccessToken(tokenString, secret string) (*CustomClaims, error) {
	claims := &CustomClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	}, jwt.WithIssuer(issuer))
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenSignatureInvalid
	}
	if claims.Subject == "" {
		return nil, ErrMissingSubject
	}
	return claims, nil
}
