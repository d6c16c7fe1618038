package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Setenv("CLIENT_ID", "id")
	t.Setenv("CLIENT_SECRET", "secret")
	t.Setenv("REDIRECT_URI", "http://localhost:3000/callback")
	t.Setenv("PLAYLIST_ID", "playlist")
}

func TestProvideConfigDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := ProvideConfig()
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, "id", cfg.ClientID)
	assert.Equal(t, "playlist", cfg.PlaylistID)
	assert.Equal(t, 55*time.Minute, cfg.RefreshInterval)
	assert.Equal(t, "https://accounts.spotify.com/api/token", cfg.SpotifyTokenURL)
	assert.Equal(t, "https://api.spotify.com/v1/", cfg.SpotifyAPIURL)
}

func TestProvideConfigOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("PORT", "8080")
	t.Setenv("REFRESH_INTERVAL", "10m")

	cfg, err := ProvideConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 10*time.Minute, cfg.RefreshInterval)
}

func TestProvideConfigRejectsNonPositiveRefreshInterval(t *testing.T) {
	setRequired(t)

	for _, v := range []string{"0", "0s", "-5m"} {
		t.Setenv("REFRESH_INTERVAL", v)

		_, err := ProvideConfig()
		assert.Error(t, err, "REFRESH_INTERVAL=%s", v)
	}
}

func TestProvideConfigMissingRequired(t *testing.T) {
	setRequired(t)
	// t.Setenv restores the variable after the test.
	os.Unsetenv("CLIENT_ID")

	_, err := ProvideConfig()
	assert.Error(t, err)
}
