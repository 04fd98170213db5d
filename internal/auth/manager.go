package auth

import (
	"context"
	"time"

	"github.com/bluedragon-network/sipnav-go/pkg/sipnav"
)

// TokenManager defines the interface for managing access tokens.
type TokenManager interface {
	// GetToken returns a valid access token, authenticating if necessary.
	GetToken(ctx context.Context) (string, error)
	// RefreshToken forces re-authentication.
	RefreshToken(ctx context.Context) error
	// SetToken manually sets the access token.
	SetToken(token string, expiresAt time.Time)
}

// StaticTokenManager serves a fixed API key. It never refreshes and ignores
// session invalidation, a rejected key stays rejected.
type StaticTokenManager struct {
	store *TokenStore
}

// NewStaticTokenManager creates a token manager around a pre-issued API key.
func NewStaticTokenManager(apiKey string) *StaticTokenManager {
	store := NewTokenStore()
	store.Set(&Token{AccessToken: apiKey})

	return &StaticTokenManager{store: store}
}

// GetToken returns the configured API key.
func (m *StaticTokenManager) GetToken(ctx context.Context) (string, error) {
	token := m.store.Get()
	if token == nil {
		return "", sipnav.ErrNoCredentials
	}

	return token.AccessToken, nil
}

// RefreshToken always fails, API keys cannot be refreshed.
func (m *StaticTokenManager) RefreshToken(ctx context.Context) error {
	return sipnav.ErrStaticTokenNoRefresh
}

// SetToken replaces the API key.
func (m *StaticTokenManager) SetToken(token string, expiresAt time.Time) {
	m.store.Set(&Token{AccessToken: token, ExpiresAt: expiresAt})
}

// LoginFunc performs a credential login and returns the issued session.
type LoginFunc func(ctx context.Context) (*sipnav.Session, error)

// SessionTokenManager lazily logs in with username/password credentials and
// caches the issued session until it is invalidated or replaced. Safe for
// concurrent use; at most one login is in flight at a time.
type SessionTokenManager struct {
	login LoginFunc
	store *TokenStore

	loginMutex chan struct{}
}

// NewSessionTokenManager creates a session manager that calls login on the
// first request and after every invalidation.
func NewSessionTokenManager(login LoginFunc) *SessionTokenManager {
	gate := make(chan struct{}, 1)
	gate <- struct{}{}

	return &SessionTokenManager{
		login:      login,
		store:      NewTokenStore(),
		loginMutex: gate,
	}
}

// GetToken returns the cached session token, logging in when none is held.
func (m *SessionTokenManager) GetToken(ctx context.Context) (string, error) {
	if token := m.store.Get(); token.Valid() {
		return token.AccessToken, nil
	}

	// Serialize logins without blocking on a held mutex past ctx.
	select {
	case <-m.loginMutex:
	case <-ctx.Done():
		return "", ctx.Err()
	}
	defer func() { m.loginMutex <- struct{}{} }()

	// Another caller may have logged in while we waited.
	if token := m.store.Get(); token.Valid() {
		return token.AccessToken, nil
	}

	session, err := m.login(ctx)
	if err != nil {
		return "", err
	}

	m.store.Set(&Token{
		AccessToken: session.Token,
		Username:    session.Username,
		IssuedVia:   session.IssuedVia,
	})

	return session.Token, nil
}

// RefreshToken drops the cached session and logs in again.
func (m *SessionTokenManager) RefreshToken(ctx context.Context) error {
	m.store.Clear()

	_, err := m.GetToken(ctx)

	return err
}

// SetToken installs an externally issued token, e.g. after a proxy login.
func (m *SessionTokenManager) SetToken(token string, expiresAt time.Time) {
	m.store.Set(&Token{
		AccessToken: token,
		IssuedVia:   sipnav.IssuedViaProxy,
		ExpiresAt:   expiresAt,
	})
}

// SetSession installs a complete session, keeping its metadata.
func (m *SessionTokenManager) SetSession(session sipnav.Session) {
	m.store.Set(&Token{
		AccessToken: session.Token,
		Username:    session.Username,
		IssuedVia:   session.IssuedVia,
	})
}

// Session returns the current session, or nil when not logged in.
func (m *SessionTokenManager) Session() *sipnav.Session {
	return m.store.Get().Session()
}

// Invalidate drops the cached session so the next call re-authenticates.
// The request pipeline calls this after a 401.
func (m *SessionTokenManager) Invalidate() {
	m.store.Clear()
}
