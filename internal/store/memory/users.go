package memory

import (
	"context"
	"fmt"
	"sort"

	"filmorate/internal/domain"
)

func (s *Store) CreateUser(_ context.Context, u domain.User) (domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextUserID++
	u.ID = s.nextUserID
	if _, ok := s.users[u.ID]; ok {
		return domain.User{}, fmt.Errorf("user %d: %w", u.ID, domain.ErrAlreadyExists)
	}
	s.users[u.ID] = u
	s.friends[u.ID] = &adjacency{out: make(map[int64]domain.FriendshipStatus)}
	return u, nil
}

func (s *Store) UpdateUser(_ context.Context, u domain.User) (domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[u.ID]; !ok {
		return domain.User{}, domain.ErrNotFound
	}
	s.users[u.ID] = u
	return u, nil
}

func (s *Store) GetUser(_ context.Context, id int64) (domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return domain.User{}, domain.ErrNotFound
	}
	return u, nil
}

func (s *Store) ListUsers(_ context.Context) ([]domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// DeleteUser removes the user along with their likes and every friendship
// edge that starts or ends at them.
func (s *Store) DeleteUser(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.users, id)
	delete(s.friends, id)
	for _, adj := range s.friends {
		delete(adj.out, id)
	}
	for _, ls := range s.likes {
		delete(ls.users, id)
	}
	return nil
}
