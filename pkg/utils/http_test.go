package utils

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestJSONError(t *testing.T) {
	rec := httptest.NewRecorder()
	JSONError(rec, http.StatusUnauthorized, "unauthorized")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("content type = %q", ct)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["error"] != "unauthorized" {
		t.Fatalf("body = %v", body)
	}
}

func TestJSONWrite(t *testing.T) {
	rec := httptest.NewRecorder()
	if err := JSONWrite(rec, http.StatusOK, map[string]int{"threads": 3}); err != nil {
		t.Fatalf("JSONWrite: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != `{"threads":3}` {
		t.Fatalf("body = %q", got)
	}
}

func TestGenThreadID(t *testing.T) {
	a := GenThreadID()
	b := GenThreadID()
	if !strings.HasPrefix(a, "thread-") {
		t.Fatalf("id = %q, want thread- prefix", a)
	}
	if a == b {
		t.Fatalf("consecutive ids collided: %q", a)
	}
}
