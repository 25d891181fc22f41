package config

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHolder(t *testing.T, body string) (*Holder, string) {
	t.Helper()
	path := writeConfig(t, t.TempDir(), body)
	loader, err := NewLoader(viper.New(), path)
	require.NoError(t, err)
	cfg, err := loader.Load()
	require.NoError(t, err)

	h := NewHolder(cfg, loader)
	h.debounce = 10 * time.Millisecond
	return h, path
}

func TestHolderReload(t *testing.T) {
	h, path := newTestHolder(t, "display:\n  split_decimals: 1\n")
	updates := h.Subscribe()
	assert.Equal(t, 1, h.Get().Display.SplitDecimals)

	require.NoError(t, os.WriteFile(path, []byte("display:\n  split_decimals: 3\n"), 0644))
	require.NoError(t, h.Reload())

	assert.Equal(t, 3, h.Get().Display.SplitDecimals)
	select {
	case cfg := <-updates:
		assert.Equal(t, 3, cfg.Display.SplitDecimals)
	default:
		t.Fatal("expected reload notification")
	}
}

func TestHolderKeepsConfigOnInvalidReload(t *testing.T) {
	h, path := newTestHolder(t, "ui:\n  layout: compact\n")
	updates := h.Subscribe()

	require.NoError(t, os.WriteFile(path, []byte("ui:\n  layout: sideways\n"), 0644))
	assert.Error(t, h.Reload())

	assert.Equal(t, "compact", h.Get().UI.Layout)
	select {
	case <-updates:
		t.Fatal("invalid config must not be published")
	default:
	}
}

func TestHolderWatchPicksUpChanges(t *testing.T) {
	h, path := newTestHolder(t, "ui:\n  refresh_per_second: 2\n")
	updates := h.Subscribe()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, h.Watch(ctx))

	require.NoError(t, os.WriteFile(path, []byte("ui:\n  refresh_per_second: 5\n"), 0644))

	select {
	case cfg := <-updates:
		assert.Equal(t, 5.0, cfg.UI.RefreshPerSecond)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for config reload")
	}
	assert.Equal(t, 5.0, h.Get().UI.RefreshPerSecond)
}

func TestHolderWatchWithoutFile(t *testing.T) {
	homedir.DisableCache = true
	t.Setenv("HOME", t.TempDir())
	loader, err := NewLoader(nil, "")
	require.NoError(t, err)

	h := NewHolder(Defaults(), loader)
	assert.NoError(t, h.Watch(context.Background()))
}
