package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bozor/daftar/internal/domain"
	"github.com/bozor/daftar/internal/infrastructure/auth"
)

func issueToken(t *testing.T, jwtManager *auth.JWTManager, role domain.Role) string {
	t.Helper()
	token, err := jwtManager.Generate(&domain.User{ID: "user-1", Email: "user@example.com"}, role)
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}
	return token
}

func TestAuthMiddleware(t *testing.T) {
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)

	t.Run("valid token", func(t *testing.T) {
		var got *AuthUser
		handler := AuthMiddleware(jwtManager)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got, _ = GetUserFromContext(r.Context())
		}))

		req := httptest.NewRequest(http.MethodGet, "/entries", nil)
		req.Header.Set("Authorization", "Bearer "+issueToken(t, jwtManager, domain.RoleSeller))
		rr := httptest.NewRecorder()

		handler.ServeHTTP(rr, req)

		if rr.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rr.Code)
		}
		if got == nil || got.ID != "user-1" || got.Role != domain.RoleSeller {
			t.Fatalf("unexpected user in context: %+v", got)
		}
	})

	t.Run("missing header", func(t *testing.T) {
		handler := AuthMiddleware(jwtManager)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("handler should not be reached")
		}))

		req := httptest.NewRequest(http.MethodGet, "/entries", nil)
		rr := httptest.NewRecorder()

		handler.ServeHTTP(rr, req)

		if rr.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rr.Code)
		}
	})

	t.Run("malformed header", func(t *testing.T) {
		handler := AuthMiddleware(jwtManager)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("handler should not be reached")
		}))

		req := httptest.NewRequest(http.MethodGet, "/entries", nil)
		req.Header.Set("Authorization", "Token abc")
		rr := httptest.NewRecorder()

		handler.ServeHTTP(rr, req)

		if rr.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rr.Code)
		}
	})

	t.Run("token from a different secret", func(t *testing.T) {
		other := auth.NewJWTManager("other-secret", time.Hour)
		handler := AuthMiddleware(jwtManager)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("handler should not be reached")
		}))

		req := httptest.NewRequest(http.MethodGet, "/entries", nil)
		req.Header.Set("Authorization", "Bearer "+issueToken(t, other, domain.RoleSeller))
		rr := httptest.NewRecorder()

		handler.ServeHTTP(rr, req)

		if rr.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rr.Code)
		}
	})
}

func TestRoleGates(t *testing.T) {
	testCases := []struct {
		name     string
		gate     func(http.Handler) http.Handler
		role     domain.Role
		expected int
	}{
		{"seller can record", RequireRecorder, domain.RoleSeller, http.StatusOK},
		{"market cannot record", RequireRecorder, domain.RoleMarket, http.StatusForbidden},
		{"admin can record", RequireRecorder, domain.RoleAdmin, http.StatusOK},
		{"market can review", RequireReviewer, domain.RoleMarket, http.StatusOK},
		{"seller cannot review", RequireReviewer, domain.RoleSeller, http.StatusForbidden},
		{"admin can review", RequireReviewer, domain.RoleAdmin, http.StatusOK},
		{"only admin passes admin gate", RequireAdmin, domain.RoleMarket, http.StatusForbidden},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			handler := tc.gate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

			req := httptest.NewRequest(http.MethodPost, "/entries", nil)
			req = req.WithContext(context.WithValue(req.Context(), UserContextKey, &AuthUser{
				ID:   "user-1",
				Role: tc.role,
			}))
			rr := httptest.NewRecorder()

			handler.ServeHTTP(rr, req)

			if rr.Code != tc.expected {
				t.Fatalf("expected %d, got %d", tc.expected, rr.Code)
			}
		})
	}

	t.Run("no user in context", func(t *testing.T) {
		handler := RequireRecorder(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("handler should not be reached")
		}))

		req := httptest.NewRequest(http.MethodPost, "/entries", nil)
		rr := httptest.NewRecorder()

		handler.ServeHTTP(rr, req)

		if rr.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rr.Code)
		}
	})
}
