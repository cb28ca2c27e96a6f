package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DecodeUnverified reads the claims of tokenString WITHOUT checking its
// signature. Clients use it to skip restoring a session whose token has
// already expired. Never use the result to authorize anything: protected
// server routes must go through JWTManager.ValidateToken.
func DecodeUnverified(tokenString string) (*Claims, error) {
	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, claims); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	return claims, nil
}

// ExpiresInFuture reports whether the token's exp claim is strictly after now.
// A token that cannot be decoded or carries no exp is treated as expired.
func ExpiresInFuture(tokenString string, now time.Time) bool {
	claims, err := DecodeUnverified(tokenString)
	if err != nil {
		return false
	}
	exp := claims.Expiry()
	if exp.IsZero() {
		return false
	}
	return exp.After(now)
}
