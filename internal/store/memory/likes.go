package memory

import (
	"context"
	"sort"

	"filmorate/internal/domain"
)

// likeSetFor must be called with s.mu held.
func (s *Store) likeSetFor(filmID, userID int64) (*likeSet, error) {
	ls, ok := s.likes[filmID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if _, ok := s.users[userID]; !ok {
		return nil, domain.ErrNotFound
	}
	return ls, nil
}

func (s *Store) AddLike(_ context.Context, filmID, userID int64) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ls, err := s.likeSetFor(filmID, userID)
	if err != nil {
		return false, err
	}

	ls.mu.Lock()
	defer ls.mu.Unlock()
	if _, ok := ls.users[userID]; ok {
		return false, nil
	}
	ls.users[userID] = struct{}{}
	return true, nil
}

func (s *Store) RemoveLike(_ context.Context, filmID, userID int64) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ls, err := s.likeSetFor(filmID, userID)
	if err != nil {
		return false, err
	}

	ls.mu.Lock()
	defer ls.mu.Unlock()
	if _, ok := ls.users[userID]; !ok {
		return false, nil
	}
	delete(ls.users, userID)
	return true, nil
}

func (s *Store) CountLikes(_ context.Context, filmID int64) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ls, ok := s.likes[filmID]
	if !ok {
		return 0, domain.ErrNotFound
	}
	ls.mu.Lock()
	defer ls.mu.Unlock()
	return len(ls.users), nil
}

func (s *Store) TopFilms(_ context.Context, n int) ([]int64, error) {
	if n <= 0 {
		return nil, nil
	}

	type ranked struct {
		id    int64
		count int
	}

	s.mu.RLock()
	all := make([]ranked, 0, len(s.likes))
	for id, ls := range s.likes {
		ls.mu.Lock()
		c := len(ls.users)
		ls.mu.Unlock()
		if c > 0 {
			all = append(all, ranked{id: id, count: c})
		}
	}
	s.mu.RUnlock()

	sort.Slice(all, func(i, j int) bool {
		if all[i].count != all[j].count {
			return all[i].count > all[j].count
		}
		return all[i].id < all[j].id
	})
	if len(all) > n {
		all = all[:n]
	}

	out := make([]int64, 0, len(all))
	for _, r := range all {
		out = append(out, r.id)
	}
	return out, nil
}
