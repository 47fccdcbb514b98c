package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/scanfact/scanfact/internal/common"
)

// ValidateToken checks that a persisted token is structurally a JWT and not
// expired at the given instant. The signature is deliberately not verified:
// the client does not hold the signing secret, and the server re-checks the
// token on every request anyway. This only decides whether a cached
// credential is worth presenting at all.
func ValidateToken(token string, now time.Time) error {
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return common.ErrInvalidToken
	}
	if claims.ExpiresAt == nil {
		return common.ErrInvalidToken
	}
	if !now.Before(claims.ExpiresAt.Time) {
		return common.ErrTokenExpired
	}
	return nil
}
