// Package auth issues and verifies the admin bearer tokens that gate card
// creation and deletion, and hashes the admin password.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/unbox-app/unbox/internal/common"
)

// Claims carries the registered claims plus the authenticated subject.
type Claims struct {
	jwt.RegisteredClaims
	Subject string
}

// GenerateToken signs an HS256 token for subject, valid for validityDuration.
func GenerateToken(subject string, secretKey []byte, validityDuration time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(validityDuration)),
		},
		Subject: subject,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// GetSubjectFromToken parses and validates tokenString and returns its
// subject. Expired or tampered tokens return common.ErrInvalidToken.
func GetSubjectFromToken(tokenString string, secretKey []byte) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", common.ErrInvalidToken
	}

	if !token.Valid {
		return "", common.ErrInvalidToken
	}

	return claims.Subject, nil
}
