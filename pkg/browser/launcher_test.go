package browser

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLauncher_Defaults(t *testing.T) {
	l := NewLauncher(Settings{}, nil, nil)
	s := l.Settings()
	assert.Equal(t, DefaultPort, s.Port)
	assert.Equal(t, DefaultStartURL, s.StartURL)
	assert.Equal(t, DefaultStartupTimeout, s.StartupTimeout)
	assert.Equal(t, FlavorEdge, s.Flavor)
	assert.Nil(t, l.Session())
}

func TestLauncher_RequiresInitialize(t *testing.T) {
	l := NewLauncher(Settings{}, nil, nil)

	_, err := l.Launch(context.Background())
	assert.ErrorIs(t, err, ErrNotInitialized)

	_, err = l.Reconnect(context.Background())
	assert.ErrorIs(t, err, ErrNotInitialized)

	assert.NoError(t, l.Shutdown())
}

func TestSession_ClosedOperations(t *testing.T) {
	s := &Session{closed: true, Port: 9223, StartedAt: time.Now()}
	ctx := context.Background()

	_, err := s.Evaluate(ctx, "1", nil)
	assert.ErrorIs(t, err, ErrSessionClosed)
	assert.ErrorIs(t, s.MouseMove(ctx, 1, 1, 3), ErrSessionClosed)
	assert.ErrorIs(t, s.MouseDown(ctx), ErrSessionClosed)
	assert.ErrorIs(t, s.MouseUp(ctx), ErrSessionClosed)
	assert.ErrorIs(t, s.Click(ctx, ".x", time.Second), ErrSessionClosed)
	assert.ErrorIs(t, s.BringToFront(ctx), ErrSessionClosed)
	assert.False(t, s.Alive(ctx))
	assert.Equal(t, "", s.URL())
	assert.True(t, s.Closed())
	assert.NoError(t, s.close())

	info := s.Info()
	assert.Equal(t, 9223, info.Port)
	assert.False(t, info.Connected)
}

func TestSession_CancelledContext(t *testing.T) {
	s := &Session{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Evaluate(ctx, "1", nil)
	assert.ErrorIs(t, err, context.Canceled)
}

// TestLauncher_Integration launches a real browser. It needs an installed
// Edge or Chrome and network access for the Playwright driver.
func TestLauncher_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping browser integration test in short mode")
	}
	if os.Getenv("TILTED_BROWSER_TESTS") == "" {
		t.Skip("set TILTED_BROWSER_TESTS=1 to launch a real browser")
	}

	l := NewLauncher(Settings{Port: 9391, StartURL: "about:blank", UserDataDir: t.TempDir()}, nil, nil)
	require.NoError(t, l.Initialize())
	defer l.Shutdown()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	session, err := l.Launch(ctx)
	require.NoError(t, err)
	assert.True(t, session.Alive(ctx))

	_, err = l.Launch(ctx)
	assert.Error(t, err, "second launch must fail while a session is open")

	result, err := session.Evaluate(ctx, "document.visibilityState", nil)
	require.NoError(t, err)
	assert.Equal(t, "visible", result)

	require.NoError(t, l.Shutdown())
	assert.False(t, session.Alive(context.Background()))
}
