// Package auth issues and checks bearer tokens for the HTTP transport.
// Tokens are HMAC-signed client names with an issue time.
package auth

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
)

var (
	ErrMissingToken = errors.New("missing bearer token")
	ErrInvalidToken = errors.New("invalid bearer token")
	ErrExpiredToken = errors.New("bearer token expired")
)

type Manager struct {
	secret []byte
	maxAge time.Duration
	now    func() time.Time
}

// New returns a Manager signing with secret. An empty secret is replaced by
// a random one, so tokens do not survive a restart.
func New(secret string, maxAge time.Duration) (*Manager, error) {
	if strings.TrimSpace(secret) == "" {
		generated := make([]byte, 32)
		if _, err := rand.Read(generated); err != nil {
			return nil, fmt.Errorf("generate auth secret: %w", err)
		}
		secret = base64.RawURLEncoding.EncodeToString(generated)
	}
	return &Manager{secret: []byte(secret), maxAge: maxAge, now: time.Now}, nil
}

func (m *Manager) MaxAge() time.Duration {
	return m.maxAge
}

// Issue returns a token naming client.
func (m *Manager) Issue(client string, now time.Time) (string, error) {
	client = strings.TrimSpace(client)
	if client == "" {
		return "", errors.New("client name is required")
	}
	if strings.Contains(client, "|") {
		return "", errors.New("client name must not contain '|'")
	}
	timestamp := strconv.FormatInt(now.Unix(), 10)
	payload := client + "|" + timestamp
	token := payload + "|" + m.sign(payload)
	return base64.RawURLEncoding.EncodeToString([]byte(token)), nil
}

// Parse verifies token and returns the client it names.
func (m *Manager) Parse(token string, now time.Time) (string, error) {
	if token == "" {
		return "", ErrMissingToken
	}
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return "", ErrInvalidToken
	}
	parts := strings.Split(string(raw), "|")
	if len(parts) != 3 {
		return "", ErrInvalidToken
	}
	payload := parts[0] + "|" + parts[1]
	if !m.verify(payload, parts[2]) {
		return "", ErrInvalidToken
	}
	timestamp, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return "", ErrInvalidToken
	}
	issuedAt := time.Unix(timestamp, 0)
	if m.maxAge > 0 && now.Sub(issuedAt) > m.maxAge {
		return "", ErrExpiredToken
	}
	return parts[0], nil
}

// Require rejects requests without a valid bearer token.
func (m *Manager) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok {
			token = ""
		}
		if _, err := m.Parse(strings.TrimSpace(token), m.now()); err != nil {
			w.Header().Set("WWW-Authenticate", `Bearer realm="mailbridge"`)
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (m *Manager) sign(payload string) string {
	mac := hmac.New(sha256.New, m.secret)
	mac.Write([]byte(payload))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

func (m *Manager) verify(payload, signature string) bool {
	expected := m.sign(payload)
	return hmac.Equal([]byte(expected), []byte(signature))
}
