package postgres

import (
	"context"
	"fmt"

	"filmorate/internal/service"

	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	_ service.FilmsStore       = (*FilmsStore)(nil)
	_ service.UsersStore       = (*UsersStore)(nil)
	_ service.LikesStore       = (*LikesStore)(nil)
	_ service.FriendshipsStore = (*FriendshipsStore)(nil)
	_ service.GenresStore      = (*GenresStore)(nil)
	_ service.RatingsStore     = (*RatingsStore)(nil)
)

func Open(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse postgres dsn: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("open postgres pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	return pool, nil
}

// Stores bundles every store backed by one pool.
type Stores struct {
	Films       *FilmsStore
	Users       *UsersStore
	Likes       *LikesStore
	Friendships *FriendshipsStore
	Genres      *GenresStore
	Ratings     *RatingsStore
}

func NewStores(pool *pgxpool.Pool) Stores {
	return Stores{
		Films:       NewFilmsStore(pool),
		Users:       NewUsersStore(pool),
		Likes:       NewLikesStore(pool),
		Friendships: NewFriendshipsStore(pool),
		Genres:      NewGenresStore(pool),
		Ratings:     NewRatingsStore(pool),
	}
}
