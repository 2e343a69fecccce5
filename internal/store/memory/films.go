package memory

import (
	"context"
	"fmt"
	"sort"

	"filmorate/internal/domain"
)

func cloneFilm(f domain.Film) domain.Film {
	if f.Mpa != nil {
		r := *f.Mpa
		f.Mpa = &r
	}
	f.Genres = append(make([]domain.Genre, 0, len(f.Genres)), f.Genres...)
	return f
}

func (s *Store) CreateFilm(_ context.Context, f domain.Film) (domain.Film, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextFilmID++
	f.ID = s.nextFilmID
	if _, ok := s.films[f.ID]; ok {
		return domain.Film{}, fmt.Errorf("film %d: %w", f.ID, domain.ErrAlreadyExists)
	}
	s.films[f.ID] = cloneFilm(f)
	s.likes[f.ID] = &likeSet{users: make(map[int64]struct{})}
	return cloneFilm(f), nil
}

func (s *Store) UpdateFilm(_ context.Context, f domain.Film) (domain.Film, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.films[f.ID]; !ok {
		return domain.Film{}, domain.ErrNotFound
	}
	s.films[f.ID] = cloneFilm(f)
	return cloneFilm(f), nil
}

func (s *Store) GetFilm(_ context.Context, id int64) (domain.Film, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	f, ok := s.films[id]
	if !ok {
		return domain.Film{}, domain.ErrNotFound
	}
	return cloneFilm(f), nil
}

func (s *Store) ListFilms(_ context.Context) ([]domain.Film, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Film, 0, len(s.films))
	for _, f := range s.films {
		out = append(out, cloneFilm(f))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) DeleteFilm(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.films[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.films, id)
	delete(s.likes, id)
	return nil
}
