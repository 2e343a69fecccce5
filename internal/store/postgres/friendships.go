package postgres

import (
	"context"
	"fmt"

	"filmorate/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type FriendshipsStore struct {
	pool *pgxpool.Pool
}

func NewFriendshipsStore(pool *pgxpool.Pool) *FriendshipsStore {
	return &FriendshipsStore{pool: pool}
}

// lockPair takes row locks on both users in id order so concurrent
// transitions on the same pair run one after another.
func lockPair(ctx context.Context, tx pgx.Tx, userID, friendID int64) error {
	const q = `SELECT id FROM users WHERE id = ANY($1) ORDER BY id FOR UPDATE`

	want := 2
	if userID == friendID {
		want = 1
	}

	rows, err := tx.Query(ctx, q, []int64{userID, friendID})
	if err != nil {
		return err
	}
	defer rows.Close()

	found := 0
	for rows.Next() {
		found++
	}
	if err := rows.Err(); err != nil {
		return err
	}
	if found != want {
		return domain.ErrNotFound
	}
	return nil
}

type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

func readEdges(ctx context.Context, q querier, userID, friendID int64) (domain.Edges, error) {
	const sql = `
		SELECT user_id, status
		FROM friends
		WHERE (user_id = $1 AND friend_id = $2) OR (user_id = $2 AND friend_id = $1)
	`

	rows, err := q.Query(ctx, sql, userID, friendID)
	if err != nil {
		return domain.Edges{}, err
	}
	defer rows.Close()

	var e domain.Edges
	for rows.Next() {
		var from int64
		var status string
		if err := rows.Scan(&from, &status); err != nil {
			return domain.Edges{}, err
		}
		st, err := parseStatus(status)
		if err != nil {
			return domain.Edges{}, err
		}
		if from == userID {
			e.Out = st
		} else {
			e.In = st
		}
	}
	return e, rows.Err()
}

func writeEdge(ctx context.Context, tx pgx.Tx, from, to int64, before, after domain.FriendshipStatus) error {
	if before == after {
		return nil
	}
	if after == domain.FriendshipAbsent {
		_, err := tx.Exec(ctx, `DELETE FROM friends WHERE user_id = $1 AND friend_id = $2`, from, to)
		return err
	}

	const q = `
		INSERT INTO friends (user_id, friend_id, status, last_updated)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (user_id, friend_id) DO UPDATE
		SET status = excluded.status, last_updated = excluded.last_updated
	`
	_, err := tx.Exec(ctx, q, from, to, string(after))
	return err
}

func (s *FriendshipsStore) transition(ctx context.Context, op string, userID, friendID int64, apply func(domain.Edges) domain.Edges) (domain.Edges, error) {
	var next domain.Edges
	err := pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		if err := lockPair(ctx, tx, userID, friendID); err != nil {
			return err
		}
		cur, err := readEdges(ctx, tx, userID, friendID)
		if err != nil {
			return err
		}

		next = apply(cur)
		if err := writeEdge(ctx, tx, userID, friendID, cur.Out, next.Out); err != nil {
			return err
		}
		return writeEdge(ctx, tx, friendID, userID, cur.In, next.In)
	})
	if err != nil {
		return domain.Edges{}, wrapErr(op, err)
	}
	return next, nil
}

func (s *FriendshipsStore) ProposeFriendship(ctx context.Context, userID, friendID int64) (domain.Edges, error) {
	return s.transition(ctx, "propose friendship", userID, friendID, domain.ProposeFriendship)
}

func (s *FriendshipsStore) RevokeFriendship(ctx context.Context, userID, friendID int64) (domain.Edges, error) {
	return s.transition(ctx, "revoke friendship", userID, friendID, domain.RevokeFriendship)
}

func (s *FriendshipsStore) GetEdges(ctx context.Context, userID, friendID int64) (domain.Edges, error) {
	e, err := readEdges(ctx, s.pool, userID, friendID)
	if err != nil {
		return domain.Edges{}, fmt.Errorf("get friendship: %w", err)
	}
	return e, nil
}

func (s *FriendshipsStore) ListFriends(ctx context.Context, userID int64) ([]domain.User, error) {
	const q = `
		SELECT ` + userColumns + `
		FROM friends f
		JOIN users u ON u.id = f.friend_id
		WHERE f.user_id = $1
		ORDER BY u.id
	`

	var exists bool
	if err := s.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)`, userID).Scan(&exists); err != nil {
		return nil, fmt.Errorf("list friends: %w", err)
	}
	if !exists {
		return nil, domain.ErrNotFound
	}

	rows, err := s.pool.Query(ctx, q, userID)
	if err != nil {
		return nil, fmt.Errorf("list friends: %w", err)
	}
	return collectUsers(rows, "list friends")
}
