package auth_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bluedragon-network/sipnav-go/internal/auth"
	"github.com/bluedragon-network/sipnav-go/pkg/sipnav"
)

func TestStaticTokenManager(t *testing.T) {
	t.Parallel()
	t.Run("returns the configured key", func(t *testing.T) {
		t.Parallel()

		manager := auth.NewStaticTokenManager("api-key-123")

		token, err := manager.GetToken(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "api-key-123", token)
	})

	t.Run("refresh is not supported", func(t *testing.T) {
		t.Parallel()

		manager := auth.NewStaticTokenManager("api-key-123")

		err := manager.RefreshToken(context.Background())
		require.ErrorIs(t, err, sipnav.ErrStaticTokenNoRefresh)
	})

	t.Run("set token replaces the key", func(t *testing.T) {
		t.Parallel()

		manager := auth.NewStaticTokenManager("old-key")
		manager.SetToken("new-key", time.Time{})

		token, err := manager.GetToken(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "new-key", token)
	})
}

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestSessionTokenManager(t *testing.T) {
	t.Parallel()
	t.Run("logs in lazily on first use", func(t *testing.T) {
		t.Parallel()

		var logins atomic.Int32

		manager := auth.NewSessionTokenManager(func(ctx context.Context) (*sipnav.Session, error) {
			logins.Add(1)

			return &sipnav.Session{Token: "session-token", Username: "admin", IssuedVia: sipnav.IssuedViaLogin}, nil
		})

		// No login until a token is requested.
		assert.Nil(t, manager.Session())
		assert.Equal(t, int32(0), logins.Load())

		token, err := manager.GetToken(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "session-token", token)
		assert.Equal(t, int32(1), logins.Load())

		// Subsequent calls reuse the session.
		token, err = manager.GetToken(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "session-token", token)
		assert.Equal(t, int32(1), logins.Load())

		session := manager.Session()
		require.NotNil(t, session)
		assert.Equal(t, "admin", session.Username)
		assert.Equal(t, sipnav.IssuedViaLogin, session.IssuedVia)
	})

	t.Run("login failure propagates and is retried next call", func(t *testing.T) {
		t.Parallel()

		var logins atomic.Int32

		wantErr := &sipnav.Error{Kind: sipnav.KindAuth, Message: "Invalid credentials"}

		manager := auth.NewSessionTokenManager(func(ctx context.Context) (*sipnav.Session, error) {
			if logins.Add(1) == 1 {
				return nil, wantErr
			}

			return &sipnav.Session{Token: "second-try"}, nil
		})

		_, err := manager.GetToken(context.Background())
		require.Error(t, err)
		assert.True(t, sipnav.IsAuthenticationError(err))

		token, err := manager.GetToken(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "second-try", token)
	})

	t.Run("invalidate forces re-login", func(t *testing.T) {
		t.Parallel()

		var logins atomic.Int32

		manager := auth.NewSessionTokenManager(func(ctx context.Context) (*sipnav.Session, error) {
			logins.Add(1)

			return &sipnav.Session{Token: "token"}, nil
		})

		_, err := manager.GetToken(context.Background())
		require.NoError(t, err)

		manager.Invalidate()
		assert.Nil(t, manager.Session())

		_, err = manager.GetToken(context.Background())
		require.NoError(t, err)
		assert.Equal(t, int32(2), logins.Load())
	})

	t.Run("refresh re-authenticates", func(t *testing.T) {
		t.Parallel()

		var logins atomic.Int32

		manager := auth.NewSessionTokenManager(func(ctx context.Context) (*sipnav.Session, error) {
			logins.Add(1)

			return &sipnav.Session{Token: "token"}, nil
		})

		_, err := manager.GetToken(context.Background())
		require.NoError(t, err)

		require.NoError(t, manager.RefreshToken(context.Background()))
		assert.Equal(t, int32(2), logins.Load())
	})

	t.Run("set token installs a proxy session", func(t *testing.T) {
		t.Parallel()

		manager := auth.NewSessionTokenManager(func(ctx context.Context) (*sipnav.Session, error) {
			t.Error("login should not be called")

			return nil, nil
		})

		manager.SetToken("proxy-token", time.Time{})

		token, err := manager.GetToken(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "proxy-token", token)

		session := manager.Session()
		require.NotNil(t, session)
		assert.Equal(t, sipnav.IssuedViaProxy, session.IssuedVia)
	})

	t.Run("concurrent callers share one login", func(t *testing.T) {
		t.Parallel()

		var logins atomic.Int32

		manager := auth.NewSessionTokenManager(func(ctx context.Context) (*sipnav.Session, error) {
			logins.Add(1)
			time.Sleep(10 * time.Millisecond)

			return &sipnav.Session{Token: "shared"}, nil
		})

		var wg sync.WaitGroup

		for n := 0; n < 10; n++ {
			wg.Add(1)

			go func() {
				defer wg.Done()

				token, err := manager.GetToken(context.Background())
				assert.NoError(t, err)
				assert.Equal(t, "shared", token)
			}()
		}

		wg.Wait()
		assert.Equal(t, int32(1), logins.Load())
	})

	t.Run("cancelled context aborts waiting for login", func(t *testing.T) {
		t.Parallel()

		started := make(chan struct{})
		release := make(chan struct{})

		manager := auth.NewSessionTokenManager(func(ctx context.Context) (*sipnav.Session, error) {
			close(started)
			<-release

			return &sipnav.Session{Token: "slow"}, nil
		})

		go func() {
			_, _ = manager.GetToken(context.Background())
		}()

		<-started

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := manager.GetToken(ctx)
		require.ErrorIs(t, err, context.Canceled)

		close(release)
	})
}
