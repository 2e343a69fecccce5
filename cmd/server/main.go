package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"filmorate/internal/config"
	"filmorate/internal/httpapi"
	"filmorate/internal/service"
	"filmorate/internal/store/memory"
	"filmorate/internal/store/postgres"
	"filmorate/internal/validation"
)

type backend struct {
	films       service.FilmsStore
	likes       service.LikesStore
	users       service.UsersStore
	friendships service.FriendshipsStore
	genres      service.GenresStore
	ratings     service.RatingsStore
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		_, _ = os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}

	logger := newLogger(cfg)
	slog.SetDefault(logger)

	var (
		be     backend
		dbPing func(context.Context) error
	)

	if cfg.DBDSN != "" {
		pgPool, err := postgres.Open(context.Background(), cfg.DBDSN)
		if err != nil {
			logger.Error("db open failed", "err", err)
			os.Exit(1)
		}
		defer pgPool.Close()

		if err := postgres.Migrate(context.Background(), pgPool, logger); err != nil {
			logger.Error("db migrate failed", "err", err)
			os.Exit(1)
		}

		st := postgres.NewStores(pgPool)
		be = backend{
			films:       st.Films,
			likes:       st.Likes,
			users:       st.Users,
			friendships: st.Friendships,
			genres:      st.Genres,
			ratings:     st.Ratings,
		}
		dbPing = pgPool.Ping
		logger.Info("storage ready", "backend", "postgres")
	} else {
		st := memory.New()
		be = backend{films: st, likes: st, users: st, friendships: st, genres: st, ratings: st}
		logger.Info("storage ready", "backend", "memory")
	}

	v := validation.Default()
	catalogSvc := &service.CatalogService{Genres: be.genres, Ratings: be.ratings}

	apiRouter := httpapi.NewRouter(httpapi.RouterOpts{
		Logger: logger,
		IsProd: cfg.IsProd(),
		DBPing: dbPing,
		Films: &service.FilmsService{
			Films:     be.films,
			Likes:     be.likes,
			Users:     be.users,
			Catalog:   catalogSvc,
			Validator: v,
		},
		Users:          &service.UsersService{Users: be.users, Validator: v},
		Friends:        &service.FriendsService{Users: be.users, Friendships: be.friendships},
		Catalog:        catalogSvc,
		PopularDefault: cfg.PopularDefault,
		RateLimitRPS:   cfg.RateLimitRPS,
		RateLimitBurst: cfg.RateLimitBurst,
	})

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           apiRouter,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "env", cfg.Env, "addr", cfg.Addr)
		errCh <- srv.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		logger.Info("shutting down", "timeout", cfg.ShutdownTimeout)
		ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("shutdown failed", "err", err)
		}
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "err", err)
			os.Exit(1)
		}
	}
}

func newLogger(cfg config.Config) *slog.Logger {
	var level slog.Level
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "info", "":
		level = slog.LevelInfo
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if cfg.IsProd() {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}
