package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/Varun5711/taskflow/internal/auth"
	"github.com/Varun5711/taskflow/internal/logger"
)

type contextKey string

const claimsKey contextKey = "claims"

const (
	msgAuthRequired = "Authorization header required"
	msgInvalidToken = "Invalid or expired token"
)

type AuthMiddleware struct {
	jwtManager *auth.JWTManager
	log        *logger.Logger
}

func NewAuthMiddleware(jwtManager *auth.JWTManager, log *logger.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		jwtManager: jwtManager,
		log:        log,
	}
}

// RequireAuth verifies the bearer token and stores its claims in the request
// context.
func (m *AuthMiddleware) RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			writeError(w, http.StatusUnauthorized, msgAuthRequired)
			return
		}

		token, ok := strings.CutPrefix(authHeader, "Bearer ")
		if !ok {
			writeError(w, http.StatusUnauthorized, msgInvalidToken)
			return
		}

		claims, err := m.jwtManager.ValidateToken(strings.TrimSpace(token))
		if err != nil {
			if !errors.Is(err, auth.ErrTokenExpired) {
				m.log.Warn("Rejected token from %s: %v", ClientIP(r), err)
			}
			writeError(w, http.StatusUnauthorized, msgInvalidToken)
			return
		}

		ctx := context.WithValue(r.Context(), claimsKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	}
}

func ClaimsFromContext(ctx context.Context) (*auth.Claims, bool) {
	claims, ok := ctx.Value(claimsKey).(*auth.Claims)
	return claims, ok
}

func GetUserID(ctx context.Context) (int64, bool) {
	claims, ok := ClaimsFromContext(ctx)
	if !ok {
		return 0, false
	}
	return claims.UserID, true
}
