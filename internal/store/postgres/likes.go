package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type LikesStore struct {
	pool *pgxpool.Pool
}

func NewLikesStore(pool *pgxpool.Pool) *LikesStore {
	return &LikesStore{pool: pool}
}

func (s *LikesStore) AddLike(ctx context.Context, filmID, userID int64) (bool, error) {
	const q = `
		INSERT INTO likes (film_id, user_id)
		VALUES ($1, $2)
		ON CONFLICT (film_id, user_id) DO NOTHING
	`
	ct, err := s.pool.Exec(ctx, q, filmID, userID)
	if err != nil {
		return false, wrapErr("add like", err)
	}
	return ct.RowsAffected() == 1, nil
}

func (s *LikesStore) RemoveLike(ctx context.Context, filmID, userID int64) (bool, error) {
	ct, err := s.pool.Exec(ctx, `DELETE FROM likes WHERE film_id = $1 AND user_id = $2`, filmID, userID)
	if err != nil {
		return false, fmt.Errorf("remove like: %w", err)
	}
	return ct.RowsAffected() == 1, nil
}

func (s *LikesStore) CountLikes(ctx context.Context, filmID int64) (int, error) {
	const q = `
		SELECT (SELECT count(*) FROM likes l WHERE l.film_id = f.id)
		FROM films f
		WHERE f.id = $1
	`
	var n int
	if err := s.pool.QueryRow(ctx, q, filmID).Scan(&n); err != nil {
		return 0, wrapErr("count likes", err)
	}
	return n, nil
}

func (s *LikesStore) TopFilms(ctx context.Context, n int) ([]int64, error) {
	const q = `
		SELECT film_id
		FROM likes
		GROUP BY film_id
		ORDER BY count(*) DESC, film_id ASC
		LIMIT $1
	`
	if n <= 0 {
		return nil, nil
	}

	rows, err := s.pool.Query(ctx, q, n)
	if err != nil {
		return nil, fmt.Errorf("top films: %w", err)
	}
	defer rows.Close()

	out := make([]int64, 0, min(n, 64))
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan top film: %w", err)
		}
		out = append(out, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("top films: %w", err)
	}
	return out, nil
}
