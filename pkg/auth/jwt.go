// Package auth issues and verifies bearer tokens and hashes passwords.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/shashiranjanraj/storerating/config"
)

// ErrInvalidToken covers every reason a bearer token is rejected.
var ErrInvalidToken = errors.New("auth: invalid token")

// Claims holds the typed JWT payload. The jti lives in RegisteredClaims.ID.
type Claims struct {
	UserID uint   `json:"id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// Subject is the identity a token is issued for.
type Subject struct {
	ID    uint
	Email string
	Role  string
}

func secret() []byte {
	return []byte(config.JWTSecret())
}

// GenerateToken signs an HS256 token for s that expires after JWT_EXPIRES_IN.
func GenerateToken(s Subject) (string, *Claims, error) {
	now := time.Now()
	claims := &Claims{
		UserID: s.ID,
		Email:  s.Email,
		Role:   s.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(config.JWTExpiresIn())),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret())
	if err != nil {
		return "", nil, err
	}
	return signed, claims, nil
}

// ValidateToken parses t, rejecting anything not signed with HS256 and the
// configured secret, and anything expired.
func ValidateToken(t string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(t, &Claims{}, func(tok *jwt.Token) (interface{}, error) {
		return secret(), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return nil, errors.Join(ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.UserID == 0 {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
