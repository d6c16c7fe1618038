package main

import (
	"context"
	"errors"
	"net"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/mager/nowplaying/config"
	"github.com/mager/nowplaying/handler/auth"
	"github.com/mager/nowplaying/handler/health"
	"github.com/mager/nowplaying/handler/playlist"
	"github.com/mager/nowplaying/logger"
	"github.com/mager/nowplaying/refresh"
	"github.com/mager/nowplaying/session"
	"github.com/mager/nowplaying/spotify"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

// Route is an http.Handler that knows the mux pattern
// under which it will be registered.
type Route interface {
	http.Handler

	// Pattern reports the path at which this is registered.
	Pattern() string
}

func main() {
	fx.New(appOptions()).Run()
}

func appOptions() fx.Option {
	return fx.Options(
		fx.Provide(
			NewHTTPServer,
			fx.Annotate(NewRouter, fx.ParamTags(`group:"routes"`)),
			config.Options,
			logger.Options,
			fx.Annotate(session.Options, fx.As(fx.Self()), fx.As(new(session.Reader))),
			spotify.Options,
			refresh.Options,

			AsRoute(health.NewHealthHandler),
			AsRoute(auth.NewLoginHandler),
			AsRoute(auth.NewCallbackHandler),
			AsRoute(playlist.NewAddTrackHandler),
		),
		fx.WithLogger(func(log *zap.SugaredLogger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log.Desugar()}
		}),
		fx.Invoke(func(*http.Server, *refresh.Worker) {}),
	)
}

func NewHTTPServer(
	lc fx.Lifecycle,
	cfg config.Config,
	log *zap.SugaredLogger,
	router *mux.Router,
) *http.Server {
	srv := &http.Server{Addr: ":" + cfg.Port, Handler: router}
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ln, err := net.Listen("tcp", srv.Addr)
			if err != nil {
				return err
			}
			log.Infow("Starting HTTP server", "addr", srv.Addr)
			go serve(srv, ln, log)
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return srv.Shutdown(ctx)
		},
	})

	return srv
}

func serve(srv *http.Server, ln net.Listener, log *zap.SugaredLogger) {
	if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Errorw("HTTP server stopped", "error", err)
	}
}

// NewRouter registers every route for GET only. Token refresh has no route.
func NewRouter(routes []Route) *mux.Router {
	r := mux.NewRouter()
	for _, route := range routes {
		r.Handle(route.Pattern(), route).Methods(http.MethodGet)
	}
	return r
}

// AsRoute annotates the given constructor to state that
// it provides a route to the "routes" group.
func AsRoute(f any) any {
	return fx.Annotate(
		f,
		fx.As(new(Route)),
		fx.ResultTags(`group:"routes"`),
	)
}
