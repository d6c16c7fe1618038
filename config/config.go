package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port string `envconfig:"PORT" default:"3000"`

	ClientID     string `envconfig:"CLIENT_ID" required:"true"`
	ClientSecret string `envconfig:"CLIENT_SECRET" required:"true"`
	RedirectURI  string `envconfig:"REDIRECT_URI" required:"true"`
	PlaylistID   string `envconfig:"PLAYLIST_ID" required:"true"`

	// RefreshInterval should stay below the provider's access token lifetime (one hour).
	RefreshInterval time.Duration `envconfig:"REFRESH_INTERVAL" default:"55m"`

	SpotifyAuthURL  string `envconfig:"SPOTIFY_AUTH_URL" default:"https://accounts.spotify.com/authorize"`
	SpotifyTokenURL string `envconfig:"SPOTIFY_TOKEN_URL" default:"https://accounts.spotify.com/api/token"`
	SpotifyAPIURL   string `envconfig:"SPOTIFY_API_URL" default:"https://api.spotify.com/v1/"`
}

// ProvideConfig reads the process environment.
func ProvideConfig() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, err
	}
	if cfg.RefreshInterval <= 0 {
		return Config{}, fmt.Errorf("REFRESH_INTERVAL must be positive, got %s", cfg.RefreshInterval)
	}
	return cfg, nil
}

var Options = ProvideConfig
