package postgres

import (
	"errors"
	"fmt"

	"filmorate/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

func pgErrorCode(err error) string {
	var pgerr *pgconn.PgError
	if errors.As(err, &pgerr) {
		return pgerr.Code
	}
	return ""
}

// wrapErr maps missing rows and dangling references to domain.ErrNotFound
// and duplicate keys to domain.ErrAlreadyExists. Anything else is wrapped
// with op.
func wrapErr(op string, err error) error {
	switch {
	case errors.Is(err, pgx.ErrNoRows), pgErrorCode(err) == pgForeignKeyViolation:
		return domain.ErrNotFound
	case pgErrorCode(err) == pgUniqueViolation:
		return domain.ErrAlreadyExists
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrAlreadyExists):
		return err
	}
	return fmt.Errorf("%s: %w", op, err)
}

func dateOf(d pgtype.Date) domain.Date {
	if !d.Valid {
		return domain.Date{}
	}
	return domain.DateOf(d.Time)
}

func ratingOrNil(id pgtype.Int8, name pgtype.Text) *domain.Rating {
	if !id.Valid {
		return nil
	}
	return &domain.Rating{ID: id.Int64, Name: textOrEmpty(name)}
}

func textOrEmpty(t pgtype.Text) string {
	if t.Valid {
		return t.String
	}
	return ""
}

// parseStatus converts a stored friends.status value. Absent edges have no
// row, so an empty status is as invalid as an unknown one.
func parseStatus(raw string) (domain.FriendshipStatus, error) {
	st := domain.FriendshipStatus(raw)
	if st == domain.FriendshipAbsent || !st.Valid() {
		return "", fmt.Errorf("unexpected friendship status %q", raw)
	}
	return st, nil
}
