package service

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"filmorate/internal/domain"
	"filmorate/internal/logging"
	"filmorate/internal/metrics"
	"filmorate/internal/validation"
)

const DefaultPopularCount = 10

type FilmsStore interface {
	CreateFilm(ctx context.Context, f domain.Film) (domain.Film, error)
	UpdateFilm(ctx context.Context, f domain.Film) (domain.Film, error)
	GetFilm(ctx context.Context, id int64) (domain.Film, error)
	ListFilms(ctx context.Context) ([]domain.Film, error)
	DeleteFilm(ctx context.Context, id int64) error
}

// LikesStore records at most one like per (film, user) pair.
// AddLike and RemoveLike report whether the ledger changed.
type LikesStore interface {
	AddLike(ctx context.Context, filmID, userID int64) (bool, error)
	RemoveLike(ctx context.Context, filmID, userID int64) (bool, error)
	CountLikes(ctx context.Context, filmID int64) (int, error)
	// TopFilms returns ids of liked films ordered by like count descending,
	// then by id ascending.
	TopFilms(ctx context.Context, n int) ([]int64, error)
}

type FilmsService struct {
	Films     FilmsStore
	Likes     LikesStore
	Users     UsersStore
	Catalog   *CatalogService
	Validator *validation.Validator
}

func (s *FilmsService) validator() *validation.Validator {
	if s.Validator != nil {
		return s.Validator
	}
	return validation.Default()
}

func (s *FilmsService) Create(ctx context.Context, f domain.Film) (domain.Film, error) {
	if f.ID != 0 {
		if _, err := s.Films.GetFilm(ctx, f.ID); err == nil {
			return domain.Film{}, fmt.Errorf("film %d: %w", f.ID, domain.ErrAlreadyExists)
		} else if !errors.Is(err, domain.ErrNotFound) {
			return domain.Film{}, err
		}
		f.ID = 0
	}

	f, err := s.prepare(ctx, f)
	if err != nil {
		return domain.Film{}, err
	}

	created, err := s.Films.CreateFilm(ctx, f)
	if err != nil {
		return domain.Film{}, err
	}
	logging.FromContext(ctx).Debug("film created", "film_id", created.ID)
	return created, nil
}

func (s *FilmsService) Update(ctx context.Context, f domain.Film) (domain.Film, error) {
	f, err := s.prepare(ctx, f)
	if err != nil {
		return domain.Film{}, err
	}
	return s.Films.UpdateFilm(ctx, f)
}

// prepare validates f and resolves its rating and genres against the catalog.
func (s *FilmsService) prepare(ctx context.Context, f domain.Film) (domain.Film, error) {
	if err := s.validator().Struct(f); err != nil {
		return domain.Film{}, err
	}

	if f.Mpa != nil {
		r, err := s.Catalog.Rating(ctx, f.Mpa.ID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return domain.Film{}, domain.NewValidationError(map[string]string{
					"mpa": fmt.Sprintf("unknown rating id %d", f.Mpa.ID),
				})
			}
			return domain.Film{}, err
		}
		f.Mpa = &r
	}

	genres := make([]domain.Genre, 0, len(f.Genres))
	seen := make(map[int64]bool, len(f.Genres))
	for _, g := range f.Genres {
		if seen[g.ID] {
			continue
		}
		seen[g.ID] = true

		resolved, err := s.Catalog.Genre(ctx, g.ID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return domain.Film{}, domain.NewValidationError(map[string]string{
					"genres": fmt.Sprintf("unknown genre id %d", g.ID),
				})
			}
			return domain.Film{}, err
		}
		genres = append(genres, resolved)
	}
	sort.Slice(genres, func(i, j int) bool { return genres[i].ID < genres[j].ID })
	f.Genres = genres

	return f, nil
}

func (s *FilmsService) Get(ctx context.Context, id int64) (domain.Film, error) {
	return s.Films.GetFilm(ctx, id)
}

func (s *FilmsService) List(ctx context.Context) ([]domain.Film, error) {
	return s.Films.ListFilms(ctx)
}

func (s *FilmsService) Delete(ctx context.Context, id int64) error {
	return s.Films.DeleteFilm(ctx, id)
}

func (s *FilmsService) AddLike(ctx context.Context, filmID, userID int64) error {
	if err := s.checkFilmAndUser(ctx, filmID, userID); err != nil {
		return err
	}
	added, err := s.Likes.AddLike(ctx, filmID, userID)
	if err != nil {
		return err
	}
	metrics.RecordLike("add", added)
	logging.FromContext(ctx).Debug("like added", "film_id", filmID, "user_id", userID, "changed", added)
	return nil
}

func (s *FilmsService) RemoveLike(ctx context.Context, filmID, userID int64) error {
	if err := s.checkFilmAndUser(ctx, filmID, userID); err != nil {
		return err
	}
	removed, err := s.Likes.RemoveLike(ctx, filmID, userID)
	if err != nil {
		return err
	}
	metrics.RecordLike("remove", removed)
	logging.FromContext(ctx).Debug("like removed", "film_id", filmID, "user_id", userID, "changed", removed)
	return nil
}

func (s *FilmsService) LikeCount(ctx context.Context, filmID int64) (int, error) {
	if _, err := s.Films.GetFilm(ctx, filmID); err != nil {
		return 0, err
	}
	return s.Likes.CountLikes(ctx, filmID)
}

func (s *FilmsService) checkFilmAndUser(ctx context.Context, filmID, userID int64) error {
	if _, err := s.Films.GetFilm(ctx, filmID); err != nil {
		return fmt.Errorf("film %d: %w", filmID, err)
	}
	if _, err := s.Users.GetUser(ctx, userID); err != nil {
		return fmt.Errorf("user %d: %w", userID, err)
	}
	return nil
}

// Popular returns up to n liked films, most liked first. Films without likes
// are not ranked. Films deleted between ranking and lookup are skipped.
func (s *FilmsService) Popular(ctx context.Context, n int) ([]domain.Film, error) {
	if n <= 0 {
		return nil, domain.NewValidationError(map[string]string{
			"count": fmt.Sprintf("must be positive, got %d", n),
		})
	}

	ids, err := s.Likes.TopFilms(ctx, n)
	if err != nil {
		return nil, err
	}

	out := make([]domain.Film, 0, len(ids))
	for _, id := range ids {
		f, err := s.Films.GetFilm(ctx, id)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				continue
			}
			return nil, err
		}
		out = append(out, f)
	}
	return out, nil
}
