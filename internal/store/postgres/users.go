package postgres

import (
	"context"
	"fmt"

	"filmorate/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

type UsersStore struct {
	pool *pgxpool.Pool
}

func NewUsersStore(pool *pgxpool.Pool) *UsersStore {
	return &UsersStore{pool: pool}
}

const userColumns = `u.id, u.email, u.login, u.name, u.birthday`

func scanUser(row pgx.Row) (domain.User, error) {
	var (
		u        domain.User
		birthday pgtype.Date
	)
	if err := row.Scan(&u.ID, &u.Email, &u.Login, &u.Name, &birthday); err != nil {
		return domain.User{}, err
	}
	u.Birthday = dateOf(birthday)
	return u, nil
}

func collectUsers(rows pgx.Rows, op string) ([]domain.User, error) {
	defer rows.Close()

	out := make([]domain.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return out, nil
}

func (s *UsersStore) CreateUser(ctx context.Context, u domain.User) (domain.User, error) {
	const q = `
		INSERT INTO users (email, login, name, birthday)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	if err := s.pool.QueryRow(ctx, q, u.Email, u.Login, u.Name, u.Birthday.Time).Scan(&u.ID); err != nil {
		return domain.User{}, wrapErr("create user", err)
	}
	return u, nil
}

func (s *UsersStore) UpdateUser(ctx context.Context, u domain.User) (domain.User, error) {
	const q = `
		UPDATE users
		SET email = $2, login = $3, name = $4, birthday = $5
		WHERE id = $1
	`
	ct, err := s.pool.Exec(ctx, q, u.ID, u.Email, u.Login, u.Name, u.Birthday.Time)
	if err != nil {
		return domain.User{}, wrapErr("update user", err)
	}
	if ct.RowsAffected() == 0 {
		return domain.User{}, domain.ErrNotFound
	}
	return u, nil
}

func (s *UsersStore) GetUser(ctx context.Context, id int64) (domain.User, error) {
	u, err := scanUser(s.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users u WHERE u.id = $1`, id))
	if err != nil {
		return domain.User{}, wrapErr("get user", err)
	}
	return u, nil
}

func (s *UsersStore) ListUsers(ctx context.Context) ([]domain.User, error) {
	rows, err := s.pool.Query(ctx, `SELECT `+userColumns+` FROM users u ORDER BY u.id`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return collectUsers(rows, "list users")
}

func (s *UsersStore) DeleteUser(ctx context.Context, id int64) error {
	ct, err := s.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
