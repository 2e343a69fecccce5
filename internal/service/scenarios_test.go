package service_test

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"filmorate/internal/domain"
	"filmorate/internal/service"
	"filmorate/internal/store/memory"
	"filmorate/internal/validation"
)

type services struct {
	films   *service.FilmsService
	users   *service.UsersService
	friends *service.FriendsService
	catalog *service.CatalogService
}

func newServices() services {
	st := memory.New()
	v := validation.New(func() time.Time { return time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC) })
	catalog := &service.CatalogService{Genres: st, Ratings: st}
	return services{
		films:   &service.FilmsService{Films: st, Likes: st, Users: st, Catalog: catalog, Validator: v},
		users:   &service.UsersService{Users: st, Validator: v},
		friends: &service.FriendsService{Users: st, Friendships: st},
		catalog: catalog,
	}
}

func film(name string) domain.Film {
	return domain.Film{
		Name:        name,
		Description: "desc",
		ReleaseDate: domain.NewDate(2021, time.September, 3),
		Duration:    155,
	}
}

func mustFilm(t *testing.T, svc services, f domain.Film) domain.Film {
	t.Helper()
	created, err := svc.films.Create(context.Background(), f)
	if err != nil {
		t.Fatalf("create film %q: %v", f.Name, err)
	}
	return created
}

func mustUser(t *testing.T, svc services, login string) domain.User {
	t.Helper()
	u, err := svc.users.Create(context.Background(), domain.User{
		Email:    login + "@example.com",
		Login:    login,
		Birthday: domain.NewDate(1990, time.May, 1),
	})
	if err != nil {
		t.Fatalf("create user %q: %v", login, err)
	}
	return u
}

func ids[T any](items []T, id func(T) int64) []int64 {
	out := make([]int64, 0, len(items))
	for _, it := range items {
		out = append(out, id(it))
	}
	return out
}

func userIDs(us []domain.User) []int64 { return ids(us, func(u domain.User) int64 { return u.ID }) }

func expectValidation(t *testing.T, err error) {
	t.Helper()
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestFilmCreateValidation(t *testing.T) {
	svc := newServices()
	ctx := context.Background()

	long := film("long")
	long.Description = strings.Repeat("x", 201)
	_, err := svc.films.Create(ctx, long)
	expectValidation(t, err)

	early := film("early")
	early.ReleaseDate = domain.NewDate(1890, time.March, 25)
	_, err = svc.films.Create(ctx, early)
	expectValidation(t, err)

	all, _ := svc.films.List(ctx)
	if len(all) != 0 {
		t.Fatalf("invalid films were stored: %v", all)
	}
}

func TestFilmResolvesCatalog(t *testing.T) {
	svc := newServices()
	ctx := context.Background()

	f := film("Dune")
	f.Mpa = &domain.Rating{ID: 3}
	f.Genres = []domain.Genre{{ID: 6}, {ID: 2}, {ID: 6}}
	created := mustFilm(t, svc, f)

	if created.Mpa == nil || created.Mpa.Name != "PG-13" {
		t.Fatalf("mpa not resolved: %+v", created.Mpa)
	}
	want := []domain.Genre{{ID: 2, Name: "Drama"}, {ID: 6, Name: "Action"}}
	if !reflect.DeepEqual(created.Genres, want) {
		t.Fatalf("genres: got %+v want %+v", created.Genres, want)
	}

	bad := film("bad")
	bad.Mpa = &domain.Rating{ID: 9}
	_, err := svc.films.Create(ctx, bad)
	expectValidation(t, err)

	bad = film("bad")
	bad.Genres = []domain.Genre{{ID: 100}}
	_, err = svc.films.Create(ctx, bad)
	expectValidation(t, err)
}

func TestFilmUpdate(t *testing.T) {
	svc := newServices()
	ctx := context.Background()
	created := mustFilm(t, svc, film("old"))

	created.Name = "new"
	updated, err := svc.films.Update(ctx, created)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Name != "new" || updated.ID != created.ID {
		t.Fatalf("update: %+v", updated)
	}

	missing := film("ghost")
	missing.ID = 9999
	if _, err := svc.films.Update(ctx, missing); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("update unknown: %v", err)
	}
}

func TestFilmCreateWithExistingID(t *testing.T) {
	svc := newServices()
	created := mustFilm(t, svc, film("first"))

	dup := film("second")
	dup.ID = created.ID
	if _, err := svc.films.Create(context.Background(), dup); !errors.Is(err, domain.ErrAlreadyExists) {
		t.Fatalf("expected already exists, got %v", err)
	}
}

func TestUserNameDefaultsToLogin(t *testing.T) {
	svc := newServices()
	ctx := context.Background()

	u := mustUser(t, svc, "dolore")
	if u.Name != "dolore" {
		t.Fatalf("create name: %q", u.Name)
	}

	u.Name = "Real Name"
	u, err := svc.users.Update(ctx, u)
	if err != nil || u.Name != "Real Name" {
		t.Fatalf("update: %+v %v", u, err)
	}

	u.Name = ""
	u.Login = "renamed"
	u, err = svc.users.Update(ctx, u)
	if err != nil || u.Name != "renamed" {
		t.Fatalf("update empty name: %+v %v", u, err)
	}
}

func TestUserLoginWithSpace(t *testing.T) {
	svc := newServices()
	_, err := svc.users.Create(context.Background(), domain.User{
		Email:    "a@b.c",
		Login:    "dolore ullamco",
		Birthday: domain.NewDate(2000, time.August, 20),
	})
	expectValidation(t, err)
}

func TestLikesIdempotent(t *testing.T) {
	svc := newServices()
	ctx := context.Background()
	f := mustFilm(t, svc, film("film"))
	u := mustUser(t, svc, "user")

	if err := svc.films.RemoveLike(ctx, f.ID, u.ID); err != nil {
		t.Fatalf("RemoveLike on empty: %v", err)
	}
	if n, _ := svc.films.LikeCount(ctx, f.ID); n != 0 {
		t.Fatalf("count after remove on empty: %d", n)
	}

	for i := 0; i < 2; i++ {
		if err := svc.films.AddLike(ctx, f.ID, u.ID); err != nil {
			t.Fatalf("AddLike: %v", err)
		}
	}
	if n, _ := svc.films.LikeCount(ctx, f.ID); n != 1 {
		t.Fatalf("count after double like: %d", n)
	}

	if err := svc.films.AddLike(ctx, f.ID, 404); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("unknown user: %v", err)
	}
	if err := svc.films.AddLike(ctx, 404, u.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("unknown film: %v", err)
	}
}

func TestPopularDuneScenario(t *testing.T) {
	svc := newServices()
	ctx := context.Background()

	dune := mustFilm(t, svc, domain.Film{
		Name:        "Dune",
		Description: "desc",
		ReleaseDate: domain.NewDate(1990, time.January, 1),
		Duration:    666,
	})
	dune2 := mustFilm(t, svc, domain.Film{
		Name:        "Dune 2",
		Description: "desc",
		ReleaseDate: domain.NewDate(1990, time.January, 1),
		Duration:    6666,
	})

	got, err := svc.films.Popular(ctx, 10)
	if err != nil {
		t.Fatalf("Popular: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("popular without likes: %v", got)
	}

	u1 := mustUser(t, svc, "u1")
	u2 := mustUser(t, svc, "u2")
	for _, like := range [][2]int64{{dune2.ID, u1.ID}, {dune.ID, u1.ID}, {dune.ID, u2.ID}} {
		if err := svc.films.AddLike(ctx, like[0], like[1]); err != nil {
			t.Fatalf("AddLike: %v", err)
		}
	}

	got, err = svc.films.Popular(ctx, 2)
	if err != nil {
		t.Fatalf("Popular: %v", err)
	}
	names := []string{}
	for _, f := range got {
		names = append(names, f.Name)
	}
	if !reflect.DeepEqual(names, []string{"Dune", "Dune 2"}) {
		t.Fatalf("popular: %v", names)
	}
	if got[0].Duration != 666 || got[1].Duration != 6666 {
		t.Fatalf("durations: %d, %d", got[0].Duration, got[1].Duration)
	}
}

func TestPopularListsOnlyLikedFilms(t *testing.T) {
	svc := newServices()
	ctx := context.Background()

	mustFilm(t, svc, film("a"))
	b := mustFilm(t, svc, film("b"))
	c := mustFilm(t, svc, film("c"))
	u := mustUser(t, svc, "u")
	v := mustUser(t, svc, "v")
	for _, like := range [][2]int64{{c.ID, u.ID}, {b.ID, u.ID}, {b.ID, v.ID}} {
		if err := svc.films.AddLike(ctx, like[0], like[1]); err != nil {
			t.Fatalf("AddLike: %v", err)
		}
	}

	got, err := svc.films.Popular(ctx, service.DefaultPopularCount)
	if err != nil {
		t.Fatalf("Popular: %v", err)
	}
	gotIDs := ids(got, func(f domain.Film) int64 { return f.ID })
	if want := []int64{b.ID, c.ID}; !reflect.DeepEqual(gotIDs, want) {
		t.Fatalf("popular: got %v want %v", gotIDs, want)
	}

	got, _ = svc.films.Popular(ctx, 1)
	if len(got) != 1 || got[0].ID != b.ID {
		t.Fatalf("popular(1): %v", got)
	}

	if err := svc.films.RemoveLike(ctx, c.ID, u.ID); err != nil {
		t.Fatalf("RemoveLike: %v", err)
	}
	got, _ = svc.films.Popular(ctx, service.DefaultPopularCount)
	if len(got) != 1 || got[0].ID != b.ID {
		t.Fatalf("popular after unlike: %v", got)
	}

	_, err = svc.films.Popular(ctx, 0)
	expectValidation(t, err)
}

func TestFriendsMutualAndRevoke(t *testing.T) {
	svc := newServices()
	ctx := context.Background()
	a := mustUser(t, svc, "a")
	b := mustUser(t, svc, "b")

	if _, err := svc.friends.AddFriend(ctx, a.ID, b.ID); err != nil {
		t.Fatalf("AddFriend a->b: %v", err)
	}
	fs, err := svc.friends.AddFriend(ctx, b.ID, a.ID)
	if err != nil {
		t.Fatalf("AddFriend b->a: %v", err)
	}
	if fs.Status != domain.FriendshipConfirmed || fs.ReverseStatus != domain.FriendshipConfirmed {
		t.Fatalf("expected confirmed both ways: %+v", fs)
	}

	fa, _ := svc.friends.Friends(ctx, a.ID)
	fb, _ := svc.friends.Friends(ctx, b.ID)
	if !reflect.DeepEqual(userIDs(fa), []int64{b.ID}) || !reflect.DeepEqual(userIDs(fb), []int64{a.ID}) {
		t.Fatalf("friends: a=%v b=%v", userIDs(fa), userIDs(fb))
	}

	fs, err = svc.friends.RemoveFriend(ctx, a.ID, b.ID)
	if err != nil {
		t.Fatalf("RemoveFriend: %v", err)
	}
	if fs.Status != domain.FriendshipAbsent || fs.ReverseStatus != domain.FriendshipPending {
		t.Fatalf("after revoke: %+v", fs)
	}

	fa, _ = svc.friends.Friends(ctx, a.ID)
	fb, _ = svc.friends.Friends(ctx, b.ID)
	if len(fa) != 0 {
		t.Fatalf("a still lists %v", userIDs(fa))
	}
	if !reflect.DeepEqual(userIDs(fb), []int64{a.ID}) {
		t.Fatalf("b lists %v", userIDs(fb))
	}
}

func TestFriendsPendingCount(t *testing.T) {
	svc := newServices()
	ctx := context.Background()
	a := mustUser(t, svc, "a")
	b := mustUser(t, svc, "b")
	c := mustUser(t, svc, "c")

	for _, to := range []int64{c.ID, b.ID} {
		if _, err := svc.friends.AddFriend(ctx, a.ID, to); err != nil {
			t.Fatalf("AddFriend: %v", err)
		}
	}
	fa, _ := svc.friends.Friends(ctx, a.ID)
	if !reflect.DeepEqual(userIDs(fa), []int64{b.ID, c.ID}) {
		t.Fatalf("friends: %v", userIDs(fa))
	}

	fs, err := svc.friends.Friendship(ctx, b.ID, a.ID)
	if err != nil {
		t.Fatalf("Friendship: %v", err)
	}
	if fs.Status != domain.FriendshipAbsent || fs.ReverseStatus != domain.FriendshipPending {
		t.Fatalf("b view: %+v", fs)
	}
}

func TestCommonFriendsSymmetric(t *testing.T) {
	svc := newServices()
	ctx := context.Background()
	a := mustUser(t, svc, "a")
	b := mustUser(t, svc, "b")
	c := mustUser(t, svc, "c")
	d := mustUser(t, svc, "d")

	for _, pair := range [][2]int64{{a.ID, c.ID}, {a.ID, d.ID}, {b.ID, c.ID}, {b.ID, a.ID}} {
		if _, err := svc.friends.AddFriend(ctx, pair[0], pair[1]); err != nil {
			t.Fatalf("AddFriend: %v", err)
		}
	}

	ab, err := svc.friends.CommonFriends(ctx, a.ID, b.ID)
	if err != nil {
		t.Fatalf("CommonFriends: %v", err)
	}
	ba, _ := svc.friends.CommonFriends(ctx, b.ID, a.ID)
	if !reflect.DeepEqual(userIDs(ab), []int64{c.ID}) || !reflect.DeepEqual(userIDs(ab), userIDs(ba)) {
		t.Fatalf("common: ab=%v ba=%v", userIDs(ab), userIDs(ba))
	}
}

func TestFriendsErrors(t *testing.T) {
	svc := newServices()
	ctx := context.Background()
	a := mustUser(t, svc, "a")

	_, err := svc.friends.AddFriend(ctx, a.ID, a.ID)
	expectValidation(t, err)

	if _, err := svc.friends.AddFriend(ctx, a.ID, 77); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("unknown friend: %v", err)
	}
	if _, err := svc.friends.Friends(ctx, 77); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("unknown user: %v", err)
	}
	if _, err := svc.friends.CommonFriends(ctx, a.ID, 77); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("unknown other: %v", err)
	}
}
