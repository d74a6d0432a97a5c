package auth

import (
	"encoding/base64"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestIssueAndParse(t *testing.T) {
	m, err := New("secret", 24*time.Hour)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if m.MaxAge() != 24*time.Hour {
		t.Fatalf("max age = %v", m.MaxAge())
	}
	now := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
	token, err := m.Issue(" desktop ", now)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	client, err := m.Parse(token, now.Add(time.Hour))
	if err != nil || client != "desktop" {
		t.Fatalf("parse = %q, %v", client, err)
	}
	if _, err := m.Parse(token, now.Add(25*time.Hour)); !errors.Is(err, ErrExpiredToken) {
		t.Fatalf("expected ErrExpiredToken, got %v", err)
	}

	other, _ := New("another secret", 24*time.Hour)
	if _, err := other.Parse(token, now); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}

	tampered := base64.RawURLEncoding.EncodeToString([]byte("laptop|" + "1717228800|bogus"))
	if _, err := m.Parse(tampered, now); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
	if _, err := m.Parse("", now); !errors.Is(err, ErrMissingToken) {
		t.Fatalf("expected ErrMissingToken, got %v", err)
	}
}

func TestIssueRejectsBadNames(t *testing.T) {
	m, _ := New("secret", time.Hour)
	for _, name := range []string{"", "  ", "a|b"} {
		if _, err := m.Issue(name, time.Now()); err == nil {
			t.Fatalf("expected an error for %q", name)
		}
	}
}

func TestGeneratedSecretsDiffer(t *testing.T) {
	a, _ := New("", time.Hour)
	b, _ := New("", time.Hour)
	now := time.Now()
	token, _ := a.Issue("cli", now)
	if _, err := b.Parse(token, now); err == nil {
		t.Fatal("expected tokens to be bound to their secret")
	}
}

func TestRequire(t *testing.T) {
	m, _ := New("secret", time.Hour)
	token, _ := m.Issue("cli", time.Now())
	handler := m.Require(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"valid", "Bearer " + token, http.StatusNoContent},
		{"missing", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic " + token, http.StatusUnauthorized},
		{"garbage", "Bearer nope", http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/mcp", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			if rec.Code != tt.status {
				t.Fatalf("status = %d, want %d", rec.Code, tt.status)
			}
		})
	}
}
