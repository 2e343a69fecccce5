package memory

import (
	"context"
	"sort"

	"filmorate/internal/domain"
)

// lockPair locks the adjacency of both users in id order and returns the
// unlock func. Must be called with s.mu held.
func (s *Store) lockPair(userID, friendID int64) (user, friend *adjacency, unlock func(), err error) {
	user, ok := s.friends[userID]
	if !ok {
		return nil, nil, nil, domain.ErrNotFound
	}
	friend, ok = s.friends[friendID]
	if !ok {
		return nil, nil, nil, domain.ErrNotFound
	}

	if userID == friendID {
		user.mu.Lock()
		return user, friend, user.mu.Unlock, nil
	}

	first, second := user, friend
	if friendID < userID {
		first, second = friend, user
	}
	first.mu.Lock()
	second.mu.Lock()
	return user, friend, func() {
		second.mu.Unlock()
		first.mu.Unlock()
	}, nil
}

func setEdge(adj *adjacency, to int64, status domain.FriendshipStatus) {
	if status == domain.FriendshipAbsent {
		delete(adj.out, to)
		return
	}
	adj.out[to] = status
}

func (s *Store) transition(userID, friendID int64, apply func(domain.Edges) domain.Edges) (domain.Edges, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, friend, unlock, err := s.lockPair(userID, friendID)
	if err != nil {
		return domain.Edges{}, err
	}
	defer unlock()

	next := apply(domain.Edges{Out: user.out[friendID], In: friend.out[userID]})
	setEdge(user, friendID, next.Out)
	setEdge(friend, userID, next.In)
	return next, nil
}

func (s *Store) ProposeFriendship(_ context.Context, userID, friendID int64) (domain.Edges, error) {
	return s.transition(userID, friendID, domain.ProposeFriendship)
}

func (s *Store) RevokeFriendship(_ context.Context, userID, friendID int64) (domain.Edges, error) {
	return s.transition(userID, friendID, domain.RevokeFriendship)
}

func (s *Store) GetEdges(_ context.Context, userID, friendID int64) (domain.Edges, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, friend, unlock, err := s.lockPair(userID, friendID)
	if err != nil {
		return domain.Edges{}, err
	}
	defer unlock()
	return domain.Edges{Out: user.out[friendID], In: friend.out[userID]}, nil
}

func (s *Store) ListFriends(_ context.Context, userID int64) ([]domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	adj, ok := s.friends[userID]
	if !ok {
		return nil, domain.ErrNotFound
	}

	adj.mu.Lock()
	ids := make([]int64, 0, len(adj.out))
	for id := range adj.out {
		ids = append(ids, id)
	}
	adj.mu.Unlock()

	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	out := make([]domain.User, 0, len(ids))
	for _, id := range ids {
		if u, ok := s.users[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}
