package main

import (
	"context"
	"fmt"
	"net"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"github.com/mager/cochlea/config"
	_ "github.com/mager/cochlea/docs"
	"github.com/mager/cochlea/handler/health"
	historyHandler "github.com/mager/cochlea/handler/history"
	"github.com/mager/cochlea/handler/modes"
	"github.com/mager/cochlea/handler/mood"
	recHandler "github.com/mager/cochlea/handler/recommend"
	"github.com/mager/cochlea/history"
	"github.com/mager/cochlea/linker"
	"github.com/mager/cochlea/logger"
	"github.com/mager/cochlea/metrics"
	"github.com/mager/cochlea/musicbrainz"
	"github.com/mager/cochlea/recommend"
	"github.com/mager/cochlea/spotify"
	"github.com/mager/cochlea/youtube"
)

// Route is an http.Handler that knows the mux pattern
// under which it will be registered.
type Route interface {
	http.Handler

	// Pattern reports the path at which this is registered.
	Pattern() string

	// Methods reports the HTTP methods the route accepts.
	Methods() []string
}

//	@title			Cochlea
//	@version		1.0
//	@description	Content-based music recommendations over a track catalog

//	@license.name	Apache 2.0
//	@license.url	http://www.apache.org/licenses/LICENSE-2.0.html

// @host		localhost:8080
// @BasePath	/
func main() {
	fx.New(
		fx.Provide(
			fx.Annotate(
				NewHTTPServer,
				fx.ParamTags(``, ``, ``, `group:"routes"`),
			),
			config.Options,
			logger.Options,
			logger.ProvideSugar,
			recommend.Options,
			history.Options,
			youtube.Options,
			spotify.Options,
			musicbrainz.Options,
			linker.Options,

			AsRoute(health.NewHealthHandler),
			AsRoute(recHandler.NewRecommendHandler),
			AsRoute(modes.NewModesHandler),
			AsRoute(mood.NewMoodHandler),
			AsRoute(historyHandler.NewHistoryHandler),
		),
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log}
		}),
		fx.Invoke(func(*http.Server) {}),
	).Run()
}

func NewHTTPServer(
	lc fx.Lifecycle,
	cfg config.Config,
	log *zap.SugaredLogger,
	routes []Route,
) *http.Server {
	router := NewRouter(routes)

	srv := &http.Server{Addr: fmt.Sprintf(":%d", cfg.Port), Handler: router}
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ln, err := net.Listen("tcp", srv.Addr)
			if err != nil {
				return err
			}
			log.Infow("Starting HTTP server", "addr", srv.Addr, "routes", len(routes))
			go srv.Serve(ln)
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return srv.Shutdown(ctx)
		},
	})

	return srv
}

// NewRouter mounts every route under its pattern and methods. JSON content
// type applies to the routes only, not to /metrics.
func NewRouter(routes []Route) *mux.Router {
	router := mux.NewRouter()
	router.Handle("/metrics", metrics.Handler()).Methods(http.MethodGet)

	api := router.NewRoute().Subrouter()
	api.Use(jsonMiddleware)
	for _, route := range routes {
		api.Handle(route.Pattern(), route).Methods(route.Methods()...)
	}
	return router
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

func jsonMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Add("Content-Type", "application/json")
		next.ServeHTTP(w, r)
	})
}
