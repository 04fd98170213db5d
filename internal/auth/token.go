// Package auth implements bearer-token management for the SIPNAV API:
// static API keys and password-based sessions obtained through /api/login.
package auth

import (
	"sync"
	"time"

	"github.com/bluedragon-network/sipnav-go/internal/constants"
	"github.com/bluedragon-network/sipnav-go/pkg/sipnav"
)

// Token is a bearer token together with the session metadata the platform
// issued it with. ExpiresAt is zero when the platform did not report one.
type Token struct {
	AccessToken string
	Username    string
	IssuedVia   sipnav.SessionSource
	ExpiresAt   time.Time
}

// Valid reports whether the token can still be attached to requests. Tokens
// within the expiry buffer count as invalid so in-flight requests do not race
// the expiry.
func (t *Token) Valid() bool {
	if t == nil || t.AccessToken == "" {
		return false
	}

	if t.ExpiresAt.IsZero() {
		return true
	}

	return time.Now().Add(constants.TokenExpiryBuffer).Before(t.ExpiresAt)
}

// Session converts the token into the public session value.
func (t *Token) Session() *sipnav.Session {
	if t == nil {
		return nil
	}

	return &sipnav.Session{
		Token:     t.AccessToken,
		Username:  t.Username,
		IssuedVia: t.IssuedVia,
	}
}

// TokenStore holds the current token behind a mutex so resource clients can
// share one session across goroutines.
type TokenStore struct {
	mutex sync.RWMutex
	token *Token
}

// NewTokenStore creates an empty token store.
func NewTokenStore() *TokenStore {
	return &TokenStore{}
}

// Get returns the current token, or nil when none is stored.
func (s *TokenStore) Get() *Token {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	return s.token
}

// Set replaces the current token wholesale.
func (s *TokenStore) Set(token *Token) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.token = token
}

// Clear drops the current token.
func (s *TokenStore) Clear() {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.token = nil
}
