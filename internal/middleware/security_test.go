package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestSecurityHeaders(t *testing.T) {
	m := NewSecurityHeaders(false)
	handler := m.Apply(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	headers := rr.Result().Header
	if headers.Get("X-Frame-Options") != "DENY" {
		t.Error("missing X-Frame-Options")
	}
	if headers.Get("X-Content-Type-Options") != "nosniff" {
		t.Error("missing X-Content-Type-Options")
	}
	if !strings.Contains(headers.Get("Content-Security-Policy"), "frame-ancestors 'none'") {
		t.Error("missing frame-ancestors in CSP")
	}
	if headers.Get("Strict-Transport-Security") != "" {
		t.Error("HSTS must be off in insecure mode")
	}
}

func TestSecurityHeaders_HSTSInSecureMode(t *testing.T) {
	m := NewSecurityHeaders(true)
	handler := m.Apply(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	if rr.Result().Header.Get("Strict-Transport-Security") == "" {
		t.Error("expected HSTS header in secure mode")
	}
}
