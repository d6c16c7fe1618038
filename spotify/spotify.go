package spotify

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/mager/nowplaying/config"
	spot "github.com/zmb3/spotify/v2"
	spotifyauth "github.com/zmb3/spotify/v2/auth"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
)

var scopes = []string{
	spotifyauth.ScopePlaylistModifyPrivate,
	spotifyauth.ScopePlaylistModifyPublic,
	spotifyauth.ScopeUserReadPlaybackState,
}

// ErrMissingRefreshToken is returned when the token endpoint answers an
// authorization code exchange without a refresh token.
var ErrMissingRefreshToken = errors.New("token response missing refresh_token")

// SpotifyClient talks to the Spotify accounts service and Web API.
// It holds no tokens; callers pass them in.
type SpotifyClient struct {
	oauth      *oauth2.Config
	apiURL     string
	playlistID spot.ID
	httpClient *http.Client
}

// ProvideSpotify builds the client from config.
func ProvideSpotify(cfg config.Config, log *zap.SugaredLogger) *SpotifyClient {
	log.Infow("setting up spotify client", "api_url", cfg.SpotifyAPIURL, "playlist_id", cfg.PlaylistID)

	return &SpotifyClient{
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURI,
			Scopes:       scopes,
			Endpoint: oauth2.Endpoint{
				AuthURL:  cfg.SpotifyAuthURL,
				TokenURL: cfg.SpotifyTokenURL,
				// Spotify accepts credentials in the form body.
				AuthStyle: oauth2.AuthStyleInParams,
			},
		},
		apiURL:     cfg.SpotifyAPIURL,
		playlistID: spot.ID(cfg.PlaylistID),
		httpClient: http.DefaultClient,
	}
}

// AuthURL returns the consent page URL the user is redirected to.
func (c *SpotifyClient) AuthURL() string {
	return c.oauth.AuthCodeURL("")
}

func (c *SpotifyClient) withHTTPClient(ctx context.Context) context.Context {
	return context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)
}

// Exchange trades an authorization code for an access/refresh token pair.
func (c *SpotifyClient) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	token, err := c.oauth.Exchange(c.withHTTPClient(ctx), code)
	if err != nil {
		return nil, fmt.Errorf("exchange authorization code: %w", err)
	}
	if token.RefreshToken == "" {
		return nil, ErrMissingRefreshToken
	}
	return token, nil
}

// Refresh requests a new access token using the refresh token grant.
func (c *SpotifyClient) Refresh(ctx context.Context, refreshToken string) (*oauth2.Token, error) {
	src := c.oauth.TokenSource(c.withHTTPClient(ctx), &oauth2.Token{RefreshToken: refreshToken})
	token, err := src.Token()
	if err != nil {
		return nil, fmt.Errorf("refresh access token: %w", err)
	}
	return token, nil
}

func (c *SpotifyClient) api(ctx context.Context, accessToken string) *spot.Client {
	src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken, TokenType: "Bearer"})
	httpClient := oauth2.NewClient(c.withHTTPClient(ctx), src)
	return spot.New(httpClient, spot.WithBaseURL(c.apiURL))
}

// CurrentlyPlaying returns the URI of the item playing for the authorized
// user. ok is false when nothing is playing.
func (c *SpotifyClient) CurrentlyPlaying(ctx context.Context, accessToken string) (uri spot.URI, ok bool, err error) {
	playing, err := c.api(ctx, accessToken).PlayerCurrentlyPlaying(ctx)
	if err != nil {
		return "", false, fmt.Errorf("get currently playing: %w", err)
	}
	if playing == nil || playing.Item == nil || playing.Item.URI == "" {
		return "", false, nil
	}
	return playing.Item.URI, true, nil
}

// AddToPlaylist appends uri to the configured playlist. Nothing checks whether
// the playlist already contains it.
func (c *SpotifyClient) AddToPlaylist(ctx context.Context, accessToken string, uri spot.URI) (string, error) {
	id, err := ExtractID(uri)
	if err != nil {
		return "", err
	}
	snapshot, err := c.api(ctx, accessToken).AddTracksToPlaylist(ctx, c.playlistID, id)
	if err != nil {
		return "", fmt.Errorf("add %s to playlist %s: %w", uri, c.playlistID, err)
	}
	return snapshot, nil
}

// PlaylistID is the playlist tracks are appended to.
func (c *SpotifyClient) PlaylistID() spot.ID {
	return c.playlistID
}

// ProviderError pulls whatever error payload the provider sent back out of err.
// It returns "" for transport errors.
func ProviderError(err error) string {
	var re *oauth2.RetrieveError
	if errors.As(err, &re) {
		return string(re.Body)
	}
	var se spot.Error
	if errors.As(err, &se) {
		return fmt.Sprintf("%d: %s", se.Status, se.Message)
	}
	return ""
}

var Options = ProvideSpotify
