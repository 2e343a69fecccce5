package service

import (
	"context"
	"fmt"

	"filmorate/internal/domain"
)

type GenresStore interface {
	ListGenres(ctx context.Context) ([]domain.Genre, error)
	GetGenre(ctx context.Context, id int64) (domain.Genre, error)
}

type RatingsStore interface {
	ListRatings(ctx context.Context) ([]domain.Rating, error)
	GetRating(ctx context.Context, id int64) (domain.Rating, error)
}

// CatalogService serves the read-only genre and MPA rating reference data.
type CatalogService struct {
	Genres  GenresStore
	Ratings RatingsStore
}

func (s *CatalogService) ListGenres(ctx context.Context) ([]domain.Genre, error) {
	return s.Genres.ListGenres(ctx)
}

func (s *CatalogService) Genre(ctx context.Context, id int64) (domain.Genre, error) {
	g, err := s.Genres.GetGenre(ctx, id)
	if err != nil {
		return domain.Genre{}, fmt.Errorf("genre %d: %w", id, err)
	}
	return g, nil
}

func (s *CatalogService) ListRatings(ctx context.Context) ([]domain.Rating, error) {
	return s.Ratings.ListRatings(ctx)
}

func (s *CatalogService) Rating(ctx context.Context, id int64) (domain.Rating, error) {
	r, err := s.Ratings.GetRating(ctx, id)
	if err != nil {
		return domain.Rating{}, fmt.Errorf("mpa %d: %w", id, err)
	}
	return r, nil
}
