package playlist

import (
	"fmt"
	"net/http"

	"github.com/mager/nowplaying/session"
	"github.com/mager/nowplaying/spotify"
	"go.uber.org/zap"
)

const (
	msgAdded      = "Track added to playlist!"
	msgNotPlaying = "No song is currently playing."
)

// AddTrackHandler appends whatever is playing right now to the configured
// playlist. Calling it twice for the same track adds the track twice.
type AddTrackHandler struct {
	log           *zap.SugaredLogger
	spotifyClient *spotify.SpotifyClient
	session       session.Reader
}

func (*AddTrackHandler) Pattern() string {
	return "/add-track"
}

// NewAddTrackHandler builds a new AddTrackHandler.
func NewAddTrackHandler(log *zap.SugaredLogger, spotifyClient *spotify.SpotifyClient, store session.Reader) *AddTrackHandler {
	return &AddTrackHandler{
		log:           log,
		spotifyClient: spotifyClient,
		session:       store,
	}
}

// ServeHTTP adds the currently playing track to the playlist.
// @Summary Add currently playing track to playlist
// @Produce plain
// @Success 200 {string} string
// @Failure 500 {string} string
// @Router /add-track [get]
func (h *AddTrackHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	// Both calls use the same token even if a refresh lands in between.
	accessToken := h.session.AccessToken()
	if accessToken == "" {
		h.log.Warn("add-track called before authorization")
		http.Error(w, "Error adding track: not authorized", http.StatusInternalServerError)
		return
	}

	uri, ok, err := h.spotifyClient.CurrentlyPlaying(ctx, accessToken)
	if err != nil {
		h.log.Errorw("Error fetching current track", "error", err, "provider_error", spotify.ProviderError(err))
		http.Error(w, "Error fetching current track", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")

	if !ok {
		fmt.Fprint(w, msgNotPlaying)
		return
	}

	snapshot, err := h.spotifyClient.AddToPlaylist(ctx, accessToken, uri)
	if err != nil {
		h.log.Errorw("Error adding track", "error", err, "uri", uri, "provider_error", spotify.ProviderError(err))
		http.Error(w, "Error adding track", http.StatusInternalServerError)
		return
	}

	h.log.Infow("Track added to playlist", "uri", uri, "playlist_id", h.spotifyClient.PlaylistID(), "snapshot_id", snapshot)
	fmt.Fprint(w, msgAdded)
}
