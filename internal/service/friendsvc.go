package service

import (
	"context"
	"fmt"

	"filmorate/internal/domain"
	"filmorate/internal/logging"
	"filmorate/internal/metrics"
)

// FriendshipsStore applies the friendship protocol atomically for a pair of
// users. Propose and Revoke return the edges after the transition, seen from
// userID.
type FriendshipsStore interface {
	ProposeFriendship(ctx context.Context, userID, friendID int64) (domain.Edges, error)
	RevokeFriendship(ctx context.Context, userID, friendID int64) (domain.Edges, error)
	GetEdges(ctx context.Context, userID, friendID int64) (domain.Edges, error)
	// ListFriends returns users with an edge from userID, ordered by id.
	ListFriends(ctx context.Context, userID int64) ([]domain.User, error)
}

type FriendsService struct {
	Users       UsersStore
	Friendships FriendshipsStore
}

func (s *FriendsService) checkPair(ctx context.Context, userID, friendID int64) error {
	if userID == friendID {
		return domain.NewValidationError(map[string]string{
			"friendId": fmt.Sprintf("cannot friend yourself, got %d", friendID),
		})
	}
	if _, err := s.Users.GetUser(ctx, userID); err != nil {
		return fmt.Errorf("user %d: %w", userID, err)
	}
	if _, err := s.Users.GetUser(ctx, friendID); err != nil {
		return fmt.Errorf("user %d: %w", friendID, err)
	}
	return nil
}

func (s *FriendsService) AddFriend(ctx context.Context, userID, friendID int64) (domain.Friendship, error) {
	if err := s.checkPair(ctx, userID, friendID); err != nil {
		return domain.Friendship{}, err
	}

	edges, err := s.Friendships.ProposeFriendship(ctx, userID, friendID)
	if err != nil {
		return domain.Friendship{}, err
	}
	metrics.RecordFriendshipTransition("propose", edges)
	logging.FromContext(ctx).Debug("friendship proposed",
		"user_id", userID, "friend_id", friendID, "status", edges.Out, "reverse_status", edges.In)
	return domain.NewFriendship(userID, friendID, edges), nil
}

func (s *FriendsService) RemoveFriend(ctx context.Context, userID, friendID int64) (domain.Friendship, error) {
	if err := s.checkPair(ctx, userID, friendID); err != nil {
		return domain.Friendship{}, err
	}

	edges, err := s.Friendships.RevokeFriendship(ctx, userID, friendID)
	if err != nil {
		return domain.Friendship{}, err
	}
	metrics.RecordFriendshipTransition("revoke", edges)
	logging.FromContext(ctx).Debug("friendship revoked",
		"user_id", userID, "friend_id", friendID, "status", edges.Out, "reverse_status", edges.In)
	return domain.NewFriendship(userID, friendID, edges), nil
}

func (s *FriendsService) Friendship(ctx context.Context, userID, friendID int64) (domain.Friendship, error) {
	if err := s.checkPair(ctx, userID, friendID); err != nil {
		return domain.Friendship{}, err
	}
	edges, err := s.Friendships.GetEdges(ctx, userID, friendID)
	if err != nil {
		return domain.Friendship{}, err
	}
	return domain.NewFriendship(userID, friendID, edges), nil
}

// Friends lists users userID has an outgoing edge to, pending or confirmed.
func (s *FriendsService) Friends(ctx context.Context, userID int64) ([]domain.User, error) {
	if _, err := s.Users.GetUser(ctx, userID); err != nil {
		return nil, fmt.Errorf("user %d: %w", userID, err)
	}
	return s.Friendships.ListFriends(ctx, userID)
}

func (s *FriendsService) CommonFriends(ctx context.Context, userID, otherID int64) ([]domain.User, error) {
	mine, err := s.Friends(ctx, userID)
	if err != nil {
		return nil, err
	}
	theirs, err := s.Friends(ctx, otherID)
	if err != nil {
		return nil, err
	}

	inOther := make(map[int64]bool, len(theirs))
	for _, u := range theirs {
		inOther[u.ID] = true
	}
	out := make([]domain.User, 0)
	for _, u := range mine {
		if inOther[u.ID] {
			out = append(out, u)
		}
	}
	return out, nil
}
