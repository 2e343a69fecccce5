package httpapi

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"filmorate/internal/service"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type RouterOpts struct {
	Logger *slog.Logger
	IsProd bool

	DBPing func(context.Context) error

	Films   *service.FilmsService
	Users   *service.UsersService
	Friends *service.FriendsService
	Catalog *service.CatalogService

	// PopularDefault is the count used by GET /films/popular when the
	// query omits it.
	PopularDefault int

	RateLimitRPS   float64
	RateLimitBurst int
}

func NewRouter(opts RouterOpts) http.Handler {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if opts.PopularDefault <= 0 {
		opts.PopularDefault = service.DefaultPopularCount
	}

	api := &api{
		logger:         logger,
		isProd:         opts.IsProd,
		dbPing:         opts.DBPing,
		filmsSvc:       opts.Films,
		usersSvc:       opts.Users,
		friendsSvc:     opts.Friends,
		catalogSvc:     opts.Catalog,
		popularDefault: opts.PopularDefault,
	}

	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", api.handleHealthz)
	mux.Handle("GET /metrics", promhttp.Handler())

	if api.filmsSvc != nil {
		mux.HandleFunc("GET /films", api.handleFilmsList)
		mux.HandleFunc("POST /films", api.handleFilmsCreate)
		mux.HandleFunc("PUT /films", api.handleFilmsUpdate)
		mux.HandleFunc("GET /films/popular", api.handleFilmsPopular)
		mux.HandleFunc("GET /films/{id}", api.handleFilmsGet)
		mux.HandleFunc("DELETE /films/{id}", api.handleFilmsDelete)
		mux.HandleFunc("PUT /films/{id}/like/{userId}", api.handleFilmsLike)
		mux.HandleFunc("DELETE /films/{id}/like/{userId}", api.handleFilmsUnlike)
	}

	if api.usersSvc != nil {
		mux.HandleFunc("GET /users", api.handleUsersList)
		mux.HandleFunc("POST /users", api.handleUsersCreate)
		mux.HandleFunc("PUT /users", api.handleUsersUpdate)
		mux.HandleFunc("GET /users/{id}", api.handleUsersGet)
		mux.HandleFunc("DELETE /users/{id}", api.handleUsersDelete)
	}

	if api.friendsSvc != nil {
		mux.HandleFunc("GET /users/{id}/friends", api.handleFriendsList)
		mux.HandleFunc("GET /users/{id}/friends/common/{otherId}", api.handleFriendsCommon)
		mux.HandleFunc("GET /users/{id}/friends/{friendId}", api.handleFriendsGet)
		mux.HandleFunc("PUT /users/{id}/friends/{friendId}", api.handleFriendsAdd)
		mux.HandleFunc("DELETE /users/{id}/friends/{friendId}", api.handleFriendsRemove)
	}

	if api.catalogSvc != nil {
		mux.HandleFunc("GET /genres", api.handleGenresList)
		mux.HandleFunc("GET /genres/{id}", api.handleGenresGet)
		mux.HandleFunc("GET /mpa", api.handleRatingsList)
		mux.HandleFunc("GET /mpa/{id}", api.handleRatingsGet)
	}

	root := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, pattern := mux.Handler(r); pattern == "" {
			handleNotFound(w, r)
			return
		}
		mux.ServeHTTP(w, r)
	})

	var h http.Handler = root
	h = Metrics()(h)
	h = RateLimit(opts.RateLimitRPS, opts.RateLimitBurst)(h)
	h = RequestLogger(logger)(h)
	h = RequestID()(h)
	h = Recoverer(logger, opts.IsProd)(h)
	return h
}

func handleNotFound(w http.ResponseWriter, _ *http.Request) {
	WriteError(w, http.StatusNotFound, codeNotFound, "not found")
}

type api struct {
	logger *slog.Logger
	isProd bool

	dbPing func(context.Context) error

	filmsSvc   *service.FilmsService
	usersSvc   *service.UsersService
	friendsSvc *service.FriendsService
	catalogSvc *service.CatalogService

	popularDefault int
}

func (a *api) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")

	if a.dbPing != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 1*time.Second)
		defer cancel()
		if err := a.dbPing(ctx); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte("db down"))
			return
		}
	}

	_, _ = w.Write([]byte("ok"))
}
