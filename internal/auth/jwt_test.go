package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/campuswatch/campuswatch-be/internal/models"
)

func TestIssueAndVerify_Success(t *testing.T) {
	t.Parallel()

	svc := NewService("super-secret", time.Hour)

	tok, err := svc.Issue("user-123", models.RolePolice)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	claims, err := svc.Verify(tok)
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if claims.UserID != "user-123" {
		t.Fatalf("userID mismatch: got %q want %q", claims.UserID, "user-123")
	}
	if claims.Role != models.RolePolice {
		t.Fatalf("role mismatch: got %q want %q", claims.Role, models.RolePolice)
	}
}

func TestVerify_Expired(t *testing.T) {
	t.Parallel()

	svc := NewService("secret", -time.Second)
	tok, err := svc.Issue("u1", models.RoleCitizen)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	if _, err := svc.Verify(tok); err == nil {
		t.Fatalf("expected error for expired token, got nil")
	}
}

func TestVerify_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := NewService("right-secret", time.Hour).Issue("u2", models.RoleAdmin)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	if _, err := NewService("wrong-secret", time.Hour).Verify(tok); err == nil {
		t.Fatalf("expected error for invalid signature, got nil")
	}
}

func TestVerify_MalformedString(t *testing.T) {
	t.Parallel()

	if _, err := NewService("k", time.Hour).Verify("not.a.jwt"); err == nil {
		t.Fatalf("expected error for malformed token, got nil")
	}
}

func authedHandler(t *testing.T, wantUserID string) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims := ClaimsFromContext(r.Context())
		if claims == nil {
			t.Errorf("no claims in context")
		} else if claims.UserID != wantUserID {
			t.Errorf("userID in context = %q, want %q", claims.UserID, wantUserID)
		}
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthenticate_MissingToken(t *testing.T) {
	t.Parallel()

	svc := NewService("secret", time.Hour)
	handler := svc.Authenticate()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("handler should not be reached")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestAuthenticate_InvalidToken(t *testing.T) {
	t.Parallel()

	svc := NewService("secret", time.Hour)
	handler := svc.Authenticate()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("handler should not be reached")
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	// Invalid is distinguished from absent: 403, not 401.
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusForbidden)
	}
}

func TestAuthenticate_BearerHeader(t *testing.T) {
	t.Parallel()

	svc := NewService("secret", time.Hour)
	tok, err := svc.Issue("u-header", models.RoleCitizen)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	handler := svc.Authenticate()(authedHandler(t, "u-header"))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
}

func TestAuthenticate_Cookie(t *testing.T) {
	t.Parallel()

	svc := NewService("secret", time.Hour)
	tok, err := svc.Issue("u-cookie", models.RoleCitizen)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	handler := svc.Authenticate()(authedHandler(t, "u-cookie"))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: tok})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
}

func TestRequireRoles(t *testing.T) {
	t.Parallel()

	svc := NewService("secret", time.Hour)

	tests := []struct {
		name    string
		role    models.Role
		allowed []models.Role
		want    int
	}{
		{"citizen allowed on read", models.RoleCitizen, []models.Role{models.RoleCitizen, models.RolePolice, models.RoleAdmin}, http.StatusOK},
		{"citizen denied on verify", models.RoleCitizen, []models.Role{models.RolePolice, models.RoleAdmin}, http.StatusForbidden},
		{"police allowed on verify", models.RolePolice, []models.Role{models.RolePolice, models.RoleAdmin}, http.StatusOK},
		{"admin allowed on verify", models.RoleAdmin, []models.Role{models.RolePolice, models.RoleAdmin}, http.StatusOK},
		{"police denied on create", models.RolePolice, []models.Role{models.RoleCitizen}, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tok, err := svc.Issue("u", tt.role)
			if err != nil {
				t.Fatalf("Issue error: %v", err)
			}

			handler := svc.Authenticate()(RequireRoles(tt.allowed...)(http.HandlerFunc(
				func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set("Authorization", "Bearer "+tok)
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}
}

func TestRequireRoles_NoIdentity(t *testing.T) {
	t.Parallel()

	handler := RequireRoles(models.RoleAdmin)(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			t.Errorf("handler should not be reached")
		}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusForbidden)
	}
}
