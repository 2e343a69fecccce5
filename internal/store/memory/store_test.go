package memory

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"testing"
	"time"

	"filmorate/internal/domain"
)

func seedUsers(t *testing.T, s *Store, n int) []int64 {
	t.Helper()
	ids := make([]int64, 0, n)
	for i := 0; i < n; i++ {
		u, err := s.CreateUser(context.Background(), domain.User{
			Email:    "user@example.com",
			Login:    "user",
			Birthday: domain.NewDate(1990, time.January, 1),
		})
		if err != nil {
			t.Fatalf("CreateUser: %v", err)
		}
		ids = append(ids, u.ID)
	}
	return ids
}

func seedFilms(t *testing.T, s *Store, names ...string) []int64 {
	t.Helper()
	ids := make([]int64, 0, len(names))
	for _, name := range names {
		f, err := s.CreateFilm(context.Background(), domain.Film{
			Name:        name,
			ReleaseDate: domain.NewDate(2000, time.January, 1),
			Duration:    90,
		})
		if err != nil {
			t.Fatalf("CreateFilm: %v", err)
		}
		ids = append(ids, f.ID)
	}
	return ids
}

func TestCreateAssignsSequentialIDs(t *testing.T) {
	s := New()
	ids := seedFilms(t, s, "a", "b", "c")
	if !reflect.DeepEqual(ids, []int64{1, 2, 3}) {
		t.Fatalf("film ids: %v", ids)
	}
	uids := seedUsers(t, s, 2)
	if !reflect.DeepEqual(uids, []int64{1, 2}) {
		t.Fatalf("user ids: %v", uids)
	}
}

func TestFilmLifecycle(t *testing.T) {
	ctx := context.Background()
	s := New()
	ids := seedFilms(t, s, "before")

	if _, err := s.UpdateFilm(ctx, domain.Film{ID: 99, Name: "x"}); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("update unknown: %v", err)
	}

	updated, err := s.UpdateFilm(ctx, domain.Film{ID: ids[0], Name: "after", Genres: []domain.Genre{{ID: 1, Name: "Comedy"}}})
	if err != nil {
		t.Fatalf("UpdateFilm: %v", err)
	}
	updated.Genres[0].Name = "mutated"

	got, err := s.GetFilm(ctx, ids[0])
	if err != nil {
		t.Fatalf("GetFilm: %v", err)
	}
	if got.Name != "after" || got.Genres[0].Name != "Comedy" {
		t.Fatalf("stored film aliased or not updated: %+v", got)
	}

	if err := s.DeleteFilm(ctx, ids[0]); err != nil {
		t.Fatalf("DeleteFilm: %v", err)
	}
	if _, err := s.GetFilm(ctx, ids[0]); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("get deleted: %v", err)
	}
	if err := s.DeleteFilm(ctx, ids[0]); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("delete twice: %v", err)
	}
}

func TestLikesAreIdempotent(t *testing.T) {
	ctx := context.Background()
	s := New()
	films := seedFilms(t, s, "film")
	users := seedUsers(t, s, 1)

	if changed, err := s.RemoveLike(ctx, films[0], users[0]); err != nil || changed {
		t.Fatalf("remove on empty: changed=%v err=%v", changed, err)
	}
	if n, _ := s.CountLikes(ctx, films[0]); n != 0 {
		t.Fatalf("count after empty remove: %d", n)
	}

	if changed, err := s.AddLike(ctx, films[0], users[0]); err != nil || !changed {
		t.Fatalf("first add: changed=%v err=%v", changed, err)
	}
	if changed, err := s.AddLike(ctx, films[0], users[0]); err != nil || changed {
		t.Fatalf("second add: changed=%v err=%v", changed, err)
	}
	if n, _ := s.CountLikes(ctx, films[0]); n != 1 {
		t.Fatalf("count after double add: %d", n)
	}

	if _, err := s.AddLike(ctx, 42, users[0]); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("unknown film: %v", err)
	}
	if _, err := s.AddLike(ctx, films[0], 42); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("unknown user: %v", err)
	}
}

func TestTopFilmsOrdering(t *testing.T) {
	ctx := context.Background()
	s := New()
	films := seedFilms(t, s, "a", "b", "c", "d")
	users := seedUsers(t, s, 3)

	like := func(f int64, us ...int64) {
		for _, u := range us {
			if _, err := s.AddLike(ctx, f, u); err != nil {
				t.Fatalf("AddLike: %v", err)
			}
		}
	}
	like(films[2], users...)
	like(films[1], users[0])
	like(films[3], users[1])

	got, err := s.TopFilms(ctx, 10)
	if err != nil {
		t.Fatalf("TopFilms: %v", err)
	}
	want := []int64{films[2], films[1], films[3]}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("TopFilms: got %v want %v", got, want)
	}

	got, _ = s.TopFilms(ctx, 2)
	if !reflect.DeepEqual(got, want[:2]) {
		t.Fatalf("TopFilms(2): got %v", got)
	}
}

func TestFriendshipTransitions(t *testing.T) {
	ctx := context.Background()
	s := New()
	ids := seedUsers(t, s, 2)
	a, b := ids[0], ids[1]

	e, err := s.ProposeFriendship(ctx, a, b)
	if err != nil || e != (domain.Edges{Out: domain.FriendshipPending}) {
		t.Fatalf("propose a->b: %+v %v", e, err)
	}
	e, err = s.ProposeFriendship(ctx, b, a)
	if err != nil || e != (domain.Edges{Out: domain.FriendshipConfirmed, In: domain.FriendshipConfirmed}) {
		t.Fatalf("propose b->a: %+v %v", e, err)
	}

	e, err = s.RevokeFriendship(ctx, a, b)
	if err != nil || e != (domain.Edges{In: domain.FriendshipPending}) {
		t.Fatalf("revoke a->b: %+v %v", e, err)
	}

	fa, _ := s.ListFriends(ctx, a)
	fb, _ := s.ListFriends(ctx, b)
	if len(fa) != 0 {
		t.Fatalf("a still lists %v", fa)
	}
	if len(fb) != 1 || fb[0].ID != a {
		t.Fatalf("b lists %v", fb)
	}

	if _, err := s.ProposeFriendship(ctx, a, 99); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("unknown friend: %v", err)
	}
}

func TestDeleteUserCascades(t *testing.T) {
	ctx := context.Background()
	s := New()
	ids := seedUsers(t, s, 2)
	films := seedFilms(t, s, "film")

	if _, err := s.ProposeFriendship(ctx, ids[0], ids[1]); err != nil {
		t.Fatalf("propose: %v", err)
	}
	if _, err := s.AddLike(ctx, films[0], ids[1]); err != nil {
		t.Fatalf("like: %v", err)
	}
	if err := s.DeleteUser(ctx, ids[1]); err != nil {
		t.Fatalf("DeleteUser: %v", err)
	}

	friends, _ := s.ListFriends(ctx, ids[0])
	if len(friends) != 0 {
		t.Fatalf("edge to deleted user survived: %v", friends)
	}
	if n, _ := s.CountLikes(ctx, films[0]); n != 0 {
		t.Fatalf("like from deleted user survived: %d", n)
	}
}

func TestConcurrentLikes(t *testing.T) {
	ctx := context.Background()
	s := New()
	films := seedFilms(t, s, "a", "b")
	users := seedUsers(t, s, 50)

	var wg sync.WaitGroup
	for _, u := range users {
		for _, f := range films {
			for rep := 0; rep < 3; rep++ {
				wg.Add(1)
				go func(f, u int64) {
					defer wg.Done()
					if _, err := s.AddLike(ctx, f, u); err != nil {
						t.Errorf("AddLike: %v", err)
					}
				}(f, u)
			}
		}
	}
	wg.Wait()

	for _, f := range films {
		if n, _ := s.CountLikes(ctx, f); n != len(users) {
			t.Fatalf("film %d: count %d want %d", f, n, len(users))
		}
	}
}

func TestConcurrentMutualProposals(t *testing.T) {
	ctx := context.Background()
	s := New()

	for i := 0; i < 100; i++ {
		ids := seedUsers(t, s, 2)
		a, b := ids[0], ids[1]

		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, _ = s.ProposeFriendship(ctx, a, b)
		}()
		go func() {
			defer wg.Done()
			_, _ = s.ProposeFriendship(ctx, b, a)
		}()
		wg.Wait()

		e, err := s.GetEdges(ctx, a, b)
		if err != nil {
			t.Fatalf("GetEdges: %v", err)
		}
		if e.Out != domain.FriendshipConfirmed || e.In != domain.FriendshipConfirmed {
			t.Fatalf("pair %d/%d: %+v", a, b, e)
		}
	}
}

func TestCatalog(t *testing.T) {
	ctx := context.Background()
	s := New()

	genres, _ := s.ListGenres(ctx)
	if len(genres) != 6 {
		t.Fatalf("genres: %v", genres)
	}
	if g, err := s.GetGenre(ctx, 2); err != nil || g.Name != "Drama" {
		t.Fatalf("GetGenre: %+v %v", g, err)
	}
	if _, err := s.GetRating(ctx, 6); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("GetRating unknown: %v", err)
	}
	if r, err := s.GetRating(ctx, 3); err != nil || r.Name != "PG-13" {
		t.Fatalf("GetRating: %+v %v", r, err)
	}
}
