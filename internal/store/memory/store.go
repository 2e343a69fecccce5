// Package memory keeps films, users, likes and friendships in process memory.
//
// Entity maps are guarded by one RWMutex. Like and friendship mutations only
// take the read lock plus a lock owned by the film (likes) or by each user of
// the pair (friendships), so unrelated films and users do not contend.
package memory

import (
	"sync"

	"filmorate/internal/domain"
	"filmorate/internal/service"
)

var (
	_ service.FilmsStore       = (*Store)(nil)
	_ service.UsersStore       = (*Store)(nil)
	_ service.LikesStore       = (*Store)(nil)
	_ service.FriendshipsStore = (*Store)(nil)
	_ service.GenresStore      = (*Store)(nil)
	_ service.RatingsStore     = (*Store)(nil)
)

type likeSet struct {
	mu    sync.Mutex
	users map[int64]struct{}
}

type adjacency struct {
	mu  sync.Mutex
	out map[int64]domain.FriendshipStatus
}

type Store struct {
	mu sync.RWMutex

	films      map[int64]domain.Film
	users      map[int64]domain.User
	likes      map[int64]*likeSet
	friends    map[int64]*adjacency
	nextFilmID int64
	nextUserID int64

	genres  []domain.Genre
	ratings []domain.Rating
}

func New() *Store {
	return &Store{
		films:   make(map[int64]domain.Film),
		users:   make(map[int64]domain.User),
		likes:   make(map[int64]*likeSet),
		friends: make(map[int64]*adjacency),
		genres:  append([]domain.Genre(nil), domain.Genres...),
		ratings: append([]domain.Rating(nil), domain.Ratings...),
	}
}
