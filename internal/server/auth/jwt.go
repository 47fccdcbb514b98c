// Package auth issues and verifies the HS256 access tokens of the
// invoice backend.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/scanfact/scanfact/internal/common"
)

// Claims carries the registered claims plus the identity fields the
// client rebuilds its session from.
type Claims struct {
	jwt.RegisteredClaims
	UserID      string `json:"uid"`
	Email       string `json:"email"`
	Role        string `json:"role"`
	DisplayName string `json:"name"`
}

func GenerateToken(user Identity, secretKey []byte, validityDuration time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(validityDuration)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
		UserID:      user.ID,
		Email:       user.Email,
		Role:        string(user.Role),
		DisplayName: user.DisplayName,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// Identity is the authenticated principal a verified token resolves to.
type Identity struct {
	ID          string
	Email       string
	DisplayName string
	Role        common.Role
}

// ParseToken verifies the signature and expiry and returns the embedded
// identity. The role claim must parse into the closed Role set.
func ParseToken(tokenString string, secretKey []byte) (*Identity, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	})
	if err != nil {
		return nil, common.ErrInvalidToken
	}

	if !token.Valid {
		return nil, common.ErrInvalidToken
	}

	role, err := common.ParseRole(claims.Role)
	if err != nil {
		return nil, common.ErrInvalidToken
	}

	return &Identity{
		ID:          claims.UserID,
		Email:       claims.Email,
		DisplayName: claims.DisplayName,
		Role:        role,
	}, nil
}
