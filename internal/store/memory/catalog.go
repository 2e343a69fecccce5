package memory

import (
	"context"

	"filmorate/internal/domain"
)

func (s *Store) ListGenres(_ context.Context) ([]domain.Genre, error) {
	return append([]domain.Genre(nil), s.genres...), nil
}

func (s *Store) GetGenre(_ context.Context, id int64) (domain.Genre, error) {
	for _, g := range s.genres {
		if g.ID == id {
			return g, nil
		}
	}
	return domain.Genre{}, domain.ErrNotFound
}

func (s *Store) ListRatings(_ context.Context) ([]domain.Rating, error) {
	return append([]domain.Rating(nil), s.ratings...), nil
}

func (s *Store) GetRating(_ context.Context, id int64) (domain.Rating, error) {
	for _, r := range s.ratings {
		if r.ID == id {
			return r, nil
		}
	}
	return domain.Rating{}, domain.ErrNotFound
}
