package health

import (
	"encoding/json"
	"net/http"

	"github.com/mager/nowplaying/session"
	"go.uber.org/zap"
)

// HealthHandler reports liveness and whether a Spotify session exists.
type HealthHandler struct {
	log     *zap.SugaredLogger
	session session.Reader
}

func (*HealthHandler) Pattern() string {
	return "/health"
}

// NewHealthHandler builds a new HealthHandler.
func NewHealthHandler(log *zap.SugaredLogger, store session.Reader) *HealthHandler {
	return &HealthHandler{
		log:     log,
		session: store,
	}
}

type Response struct {
	Server     bool `json:"server"`
	Authorized bool `json:"authorized"`
}

// ServeHTTP reports server health.
// @Summary Health check
// @Produce json
// @Success 200 {object} Response
// @Router /health [get]
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var resp Response

	h.log.Debug("health check")

	resp.Server = true
	resp.Authorized = h.session.Authorized()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}
