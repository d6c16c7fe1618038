package refresh

import (
	"context"
	"sync"
	"time"

	"github.com/mager/nowplaying/config"
	"github.com/mager/nowplaying/session"
	"github.com/mager/nowplaying/spotify"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
)

// Refresher is the token endpoint call the worker depends on.
type Refresher interface {
	Refresh(ctx context.Context, refreshToken string) (*oauth2.Token, error)
}

// Store is the part of the session store the worker writes to.
type Store interface {
	RefreshToken() string
	SetAccessToken(access string)
}

// Worker refreshes the stored access token on a fixed interval. It is the
// only background writer of the session store and has no HTTP surface.
type Worker struct {
	log      *zap.SugaredLogger
	client   Refresher
	store    Store
	interval time.Duration

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewWorker builds a worker. Call Start to begin ticking.
func NewWorker(log *zap.SugaredLogger, client Refresher, store Store, interval time.Duration) *Worker {
	return &Worker{
		log:      log,
		client:   client,
		store:    store,
		interval: interval,
	}
}

// ProvideWorker builds the worker and ties it to the fx lifecycle.
func ProvideWorker(lc fx.Lifecycle, log *zap.SugaredLogger, cfg config.Config, client *spotify.SpotifyClient, store *session.Store) *Worker {
	w := NewWorker(log, client, store, cfg.RefreshInterval)
	lc.Append(w.Hook())
	return w
}

// Hook starts the worker with the application and stops it on shutdown.
func (w *Worker) Hook() fx.Hook {
	return fx.Hook{
		OnStart: func(context.Context) error {
			w.Start()
			return nil
		},
		OnStop: func(context.Context) error {
			w.Stop()
			return nil
		},
	}
}

// Start launches the ticker goroutine.
func (w *Worker) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	w.cancel = cancel

	w.log.Infow("starting token refresh worker", "interval", w.interval.String())

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		w.run(ctx)
	}()
}

// Stop cancels the worker and waits for it to exit.
func (w *Worker) Stop() {
	if w.cancel == nil {
		return
	}
	w.cancel()
	w.wg.Wait()
	w.log.Info("token refresh worker stopped")
}

func (w *Worker) run(ctx context.Context) {
	if w.interval <= 0 {
		w.log.Errorw("invalid refresh interval, token refresh disabled", "interval", w.interval.String())
		return
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.RefreshOnce(ctx)
		}
	}
}

// RefreshOnce performs a single refresh cycle. Failures are logged and the
// current access token is left in place.
func (w *Worker) RefreshOnce(ctx context.Context) {
	refreshToken := w.store.RefreshToken()
	if refreshToken == "" {
		w.log.Warn("no refresh token available, skipping refresh")
		return
	}

	token, err := w.client.Refresh(ctx, refreshToken)
	if err != nil {
		w.log.Errorw("Error refreshing token", "error", err, "provider_error", spotify.ProviderError(err))
		return
	}

	// Refresh tokens are not rotated; only the access token changes.
	w.store.SetAccessToken(token.AccessToken)
	w.log.Infow("access token refreshed", "expiry", token.Expiry)
}

var Options = ProvideWorker
