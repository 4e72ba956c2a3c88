package preference

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileDefaultsEnabled(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "prefs.yaml"), nil)
	p, err := s.Load()
	require.NoError(t, err)
	assert.True(t, p.Enabled)
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "prefs.yaml")
	s := NewStore(path, nil)

	require.NoError(t, s.SetEnabled(false))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "enabled: false", strings.TrimSpace(string(data)))

	p, err := s.Load()
	require.NoError(t, err)
	assert.False(t, p.Enabled)
}

func TestLoad_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.yaml")
	require.NoError(t, os.WriteFile(path, []byte("enabled: [nope"), 0o644))
	_, err := NewStore(path, nil).Load()
	assert.Error(t, err)
}

func TestDefaultPath(t *testing.T) {
	assert.True(t, strings.HasSuffix(DefaultPath(), filepath.Join(AppName, "preferences.yaml")))
}

func TestWatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.yaml")
	s := NewStore(path, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes := make(chan Preferences, 8)
	done := make(chan error, 1)
	go func() { done <- s.Watch(ctx, func(p Preferences) { changes <- p }) }()

	select {
	case p := <-changes:
		assert.True(t, p.Enabled)
	case <-time.After(5 * time.Second):
		t.Fatal("no initial preferences")
	}

	require.NoError(t, s.SetEnabled(false))
	select {
	case p := <-changes:
		assert.False(t, p.Enabled)
	case <-time.After(5 * time.Second):
		t.Fatal("change not observed")
	}

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
}
