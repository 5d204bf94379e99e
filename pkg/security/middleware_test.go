package security

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestAdminTokenValid(t *testing.T) {
	mk := func(token string) *http.Request {
		r := httptest.NewRequest(http.MethodPost, "/admin/migrate", nil)
		if token != "" {
			r.Header.Set("X-Admin-Token", token)
		}
		return r
	}

	if AdminTokenValid(mk("secret"), "") {
		t.Fatalf("empty secret must reject every request")
	}
	if AdminTokenValid(mk(""), "secret") {
		t.Fatalf("missing header must be rejected")
	}
	if AdminTokenValid(mk("wrong"), "secret") {
		t.Fatalf("mismatched token must be rejected")
	}
	if !AdminTokenValid(mk("secret"), "secret") {
		t.Fatalf("matching token must be accepted")
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	// Disabled limiter is a pass-through.
	h := RateLimitMiddleware(0, 0)(ok)
	for i := 0; i < 50; i++ {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/gallery", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		h.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("disabled limiter returned %d", rec.Code)
		}
	}

	// Tiny burst: the burst passes, then requests are refused.
	h = RateLimitMiddleware(0.0001, 2)(ok)
	codes := []int{}
	for i := 0; i < 4; i++ {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/gallery", nil)
		req.RemoteAddr = "10.0.0.2:1234"
		h.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}
	if codes[0] != http.StatusOK || codes[1] != http.StatusOK {
		t.Fatalf("burst requests refused: %v", codes)
	}
	if codes[2] != http.StatusTooManyRequests || codes[3] != http.StatusTooManyRequests {
		t.Fatalf("over-burst requests not limited: %v", codes)
	}

	// A different client IP keeps its own allowance.
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/gallery", nil)
	req.RemoteAddr = "10.0.0.3:1234"
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("fresh client was limited: %d", rec.Code)
	}
}
