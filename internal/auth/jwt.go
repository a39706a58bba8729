package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/campuswatch/campuswatch-be/internal/models"
)

// Claims defines the JWT claims structure. The role is trusted only because
// it arrives inside a verified signature.
type Claims struct {
	UserID string      `json:"userId"`
	Role   models.Role `json:"role"`
	jwt.RegisteredClaims
}

// UserClaimsKey is the context key for user claims.
type contextKey string

const UserClaimsKey = contextKey("userClaims")

// CookieName is the cookie carrying the identity token.
const CookieName = "token"

// Service issues and verifies identity tokens. The signing secret and token
// lifetime are injected at construction, not read from process globals.
type Service struct {
	secret []byte
	ttl    time.Duration
}

// NewService creates a token Service.
func NewService(secret string, ttl time.Duration) *Service {
	return &Service{secret: []byte(secret), ttl: ttl}
}

// TTL returns the configured token lifetime.
func (s *Service) TTL() time.Duration { return s.ttl }

// Issue creates a signed token embedding the user's id and role.
func (s *Service) Issue(userID string, role models.Role) (string, error) {
	claims := &Claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify parses a token string and validates its signature and expiry.
func (s *Service) Verify(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

// Authenticate creates the middleware protecting every route past login.
// An absent token is a 401; a token that fails verification is a 403.
func (s *Service) Authenticate() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var tokenStr string

			// 1. Try to get the token from the Authorization header
			authHeader := r.Header.Get("Authorization")
			if authHeader != "" {
				parts := strings.SplitN(authHeader, " ", 2)
				if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
					tokenStr = parts[1]
				}
			}

			// 2. If not in the header, fall back to the cookie
			if tokenStr == "" {
				if cookie, err := r.Cookie(CookieName); err == nil {
					tokenStr = cookie.Value
				}
			}

			if tokenStr == "" {
				writeError(w, http.StatusUnauthorized, "access token is missing")
				return
			}

			claims, err := s.Verify(tokenStr)
			if err != nil {
				writeError(w, http.StatusForbidden, "invalid token")
				return
			}

			ctx := context.WithValue(r.Context(), UserClaimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ClaimsFromContext extracts the authenticated claims, if any.
func ClaimsFromContext(ctx context.Context) *Claims {
	claims, ok := ctx.Value(UserClaimsKey).(*Claims)
	if !ok {
		return nil
	}
	return claims
}

// RequireRoles creates a middleware that rejects any request whose
// authenticated role is not in the given set.
func RequireRoles(roles ...models.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := ClaimsFromContext(r.Context())
			if claims == nil || !hasRole(claims.Role, roles) {
				writeError(w, http.StatusForbidden, "access denied")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func hasRole(role models.Role, allowed []models.Role) bool {
	for _, a := range allowed {
		if role == a {
			return true
		}
	}
	return false
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"message": message})
}
