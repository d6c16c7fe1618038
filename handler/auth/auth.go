package auth

import (
	"fmt"
	"net/http"

	"github.com/mager/nowplaying/session"
	"github.com/mager/nowplaying/spotify"
	"go.uber.org/zap"
)

const callbackSuccess = "Authorization successful! You can now use the /add-track endpoint."

// --- Login Handler ---

// LoginHandler redirects the user to Spotify's OAuth consent screen.
type LoginHandler struct {
	log           *zap.SugaredLogger
	spotifyClient *spotify.SpotifyClient
}

func (*LoginHandler) Pattern() string {
	return "/login"
}

func NewLoginHandler(log *zap.SugaredLogger, spotifyClient *spotify.SpotifyClient) *LoginHandler {
	return &LoginHandler{log: log, spotifyClient: spotifyClient}
}

// ServeHTTP redirects to the Spotify authorization page.
// @Summary Start Spotify authorization
// @Success 302
// @Router /login [get]
func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.log.Info("redirecting to Spotify authorization")
	http.Redirect(w, r, h.spotifyClient.AuthURL(), http.StatusFound)
}

// --- Callback Handler ---

// CallbackHandler exchanges the OAuth code for tokens and keeps them in the
// session store.
type CallbackHandler struct {
	log           *zap.SugaredLogger
	spotifyClient *spotify.SpotifyClient
	store         *session.Store
}

func (*CallbackHandler) Pattern() string {
	return "/callback"
}

func NewCallbackHandler(log *zap.SugaredLogger, spotifyClient *spotify.SpotifyClient, store *session.Store) *CallbackHandler {
	return &CallbackHandler{log: log, spotifyClient: spotifyClient, store: store}
}

// ServeHTTP exchanges the authorization code for a token pair.
// @Summary Spotify OAuth callback
// @Produce plain
// @Param code query string true "Authorization code"
// @Success 200 {string} string
// @Failure 500 {string} string
// @Router /callback [get]
func (h *CallbackHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// A missing code is forwarded as-is; the token endpoint rejects it.
	code := r.URL.Query().Get("code")

	token, err := h.spotifyClient.Exchange(r.Context(), code)
	if err != nil {
		h.log.Errorw("Error during token exchange", "error", err, "provider_error", spotify.ProviderError(err))
		http.Error(w, "Error getting tokens", http.StatusInternalServerError)
		return
	}

	h.store.Set(token.AccessToken, token.RefreshToken)
	h.log.Infow("Spotify account connected", "expiry", token.Expiry)

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprint(w, callbackSuccess)
}
