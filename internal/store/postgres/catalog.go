package postgres

import (
	"context"
	"fmt"

	"filmorate/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type GenresStore struct {
	pool *pgxpool.Pool
}

func NewGenresStore(pool *pgxpool.Pool) *GenresStore {
	return &GenresStore{pool: pool}
}

func (s *GenresStore) ListGenres(ctx context.Context) ([]domain.Genre, error) {
	rows, err := s.pool.Query(ctx, `SELECT id, name FROM genres ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list genres: %w", err)
	}
	out, err := pgx.CollectRows(rows, pgx.RowToStructByPos[domain.Genre])
	if err != nil {
		return nil, fmt.Errorf("list genres: %w", err)
	}
	return out, nil
}

func (s *GenresStore) GetGenre(ctx context.Context, id int64) (domain.Genre, error) {
	var g domain.Genre
	if err := s.pool.QueryRow(ctx, `SELECT id, name FROM genres WHERE id = $1`, id).Scan(&g.ID, &g.Name); err != nil {
		return domain.Genre{}, wrapErr("get genre", err)
	}
	return g, nil
}

type RatingsStore struct {
	pool *pgxpool.Pool
}

func NewRatingsStore(pool *pgxpool.Pool) *RatingsStore {
	return &RatingsStore{pool: pool}
}

func (s *RatingsStore) ListRatings(ctx context.Context) ([]domain.Rating, error) {
	rows, err := s.pool.Query(ctx, `SELECT id, name FROM ratings ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list ratings: %w", err)
	}
	out, err := pgx.CollectRows(rows, pgx.RowToStructByPos[domain.Rating])
	if err != nil {
		return nil, fmt.Errorf("list ratings: %w", err)
	}
	return out, nil
}

func (s *RatingsStore) GetRating(ctx context.Context, id int64) (domain.Rating, error) {
	var r domain.Rating
	if err := s.pool.QueryRow(ctx, `SELECT id, name FROM ratings WHERE id = $1`, id).Scan(&r.ID, &r.Name); err != nil {
		return domain.Rating{}, wrapErr("get rating", err)
	}
	return r, nil
}
