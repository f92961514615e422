package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func newService(t *testing.T) *Service {
	t.Helper()
	return NewService(nil, "test_secret")
}

func TestMiddleware(t *testing.T) {
	svc := newService(t)

	var seenCashier string
	handler := svc.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenCashier = CashierID(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	t.Run("missing header -> 401", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("status = %d, want 401", rec.Code)
		}
	})

	t.Run("garbage token -> 401", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer nope")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("status = %d, want 401", rec.Code)
		}
	})

	t.Run("token signed with another secret -> 401", func(t *testing.T) {
		other := NewService(nil, "other_secret")
		token, err := other.issue("cashier-1")
		if err != nil {
			t.Fatalf("issue failed: %v", err)
		}
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("status = %d, want 401", rec.Code)
		}
	})

	t.Run("valid token passes and carries the cashier id", func(t *testing.T) {
		token, err := svc.issue("cashier-1")
		if err != nil {
			t.Fatalf("issue failed: %v", err)
		}
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusNoContent {
			t.Fatalf("status = %d, want 204", rec.Code)
		}
		if seenCashier != "cashier-1" {
			t.Fatalf("cashier id = %q, want cashier-1", seenCashier)
		}
	})
}
