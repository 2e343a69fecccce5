package postgres

import (
	"context"
	"fmt"

	"filmorate/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

type FilmsStore struct {
	pool *pgxpool.Pool
}

func NewFilmsStore(pool *pgxpool.Pool) *FilmsStore {
	return &FilmsStore{pool: pool}
}

func (s *FilmsStore) CreateFilm(ctx context.Context, f domain.Film) (domain.Film, error) {
	const q = `
		INSERT INTO films (name, description, release_date, duration)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	err := pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		if err := tx.QueryRow(ctx, q, f.Name, f.Description, f.ReleaseDate.Time, f.Duration).Scan(&f.ID); err != nil {
			return err
		}
		return writeFilmRefs(ctx, tx, f)
	})
	if err != nil {
		return domain.Film{}, wrapErr("create film", err)
	}
	if f.Genres == nil {
		f.Genres = []domain.Genre{}
	}
	return f, nil
}

func (s *FilmsStore) UpdateFilm(ctx context.Context, f domain.Film) (domain.Film, error) {
	const q = `
		UPDATE films
		SET name = $2, description = $3, release_date = $4, duration = $5
		WHERE id = $1
	`

	err := pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		ct, err := tx.Exec(ctx, q, f.ID, f.Name, f.Description, f.ReleaseDate.Time, f.Duration)
		if err != nil {
			return err
		}
		if ct.RowsAffected() == 0 {
			return domain.ErrNotFound
		}
		if _, err := tx.Exec(ctx, `DELETE FROM film_rating WHERE film_id = $1`, f.ID); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, `DELETE FROM film_genre WHERE film_id = $1`, f.ID); err != nil {
			return err
		}
		return writeFilmRefs(ctx, tx, f)
	})
	if err != nil {
		return domain.Film{}, wrapErr("update film", err)
	}
	if f.Genres == nil {
		f.Genres = []domain.Genre{}
	}
	return f, nil
}

func writeFilmRefs(ctx context.Context, tx pgx.Tx, f domain.Film) error {
	if f.Mpa != nil {
		if _, err := tx.Exec(ctx, `INSERT INTO film_rating (film_id, rating_id) VALUES ($1, $2)`, f.ID, f.Mpa.ID); err != nil {
			return err
		}
	}
	if len(f.Genres) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, g := range f.Genres {
		batch.Queue(`INSERT INTO film_genre (film_id, genre_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`, f.ID, g.ID)
	}
	return tx.SendBatch(ctx, batch).Close()
}

const selectFilms = `
	SELECT f.id, f.name, f.description, f.release_date, f.duration, r.id, r.name
	FROM films f
	LEFT JOIN film_rating fr ON fr.film_id = f.id
	LEFT JOIN ratings r ON r.id = fr.rating_id
`

func scanFilm(row pgx.Row) (domain.Film, error) {
	var (
		f          domain.Film
		release    pgtype.Date
		ratingID   pgtype.Int8
		ratingName pgtype.Text
	)
	if err := row.Scan(&f.ID, &f.Name, &f.Description, &release, &f.Duration, &ratingID, &ratingName); err != nil {
		return domain.Film{}, err
	}
	f.ReleaseDate = dateOf(release)
	f.Mpa = ratingOrNil(ratingID, ratingName)
	f.Genres = []domain.Genre{}
	return f, nil
}

func (s *FilmsStore) GetFilm(ctx context.Context, id int64) (domain.Film, error) {
	f, err := scanFilm(s.pool.QueryRow(ctx, selectFilms+` WHERE f.id = $1`, id))
	if err != nil {
		return domain.Film{}, wrapErr("get film", err)
	}

	genres, err := s.genresByFilm(ctx, []int64{id})
	if err != nil {
		return domain.Film{}, err
	}
	if g, ok := genres[id]; ok {
		f.Genres = g
	}
	return f, nil
}

func (s *FilmsStore) ListFilms(ctx context.Context) ([]domain.Film, error) {
	rows, err := s.pool.Query(ctx, selectFilms+` ORDER BY f.id`)
	if err != nil {
		return nil, fmt.Errorf("list films: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Film, 0)
	ids := make([]int64, 0)
	for rows.Next() {
		f, err := scanFilm(rows)
		if err != nil {
			return nil, fmt.Errorf("scan film: %w", err)
		}
		out = append(out, f)
		ids = append(ids, f.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list films: %w", err)
	}

	genres, err := s.genresByFilm(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range out {
		if g, ok := genres[out[i].ID]; ok {
			out[i].Genres = g
		}
	}
	return out, nil
}

func (s *FilmsStore) genresByFilm(ctx context.Context, filmIDs []int64) (map[int64][]domain.Genre, error) {
	const q = `
		SELECT fg.film_id, g.id, g.name
		FROM film_genre fg
		JOIN genres g ON g.id = fg.genre_id
		WHERE fg.film_id = ANY($1)
		ORDER BY fg.film_id, g.id
	`

	out := make(map[int64][]domain.Genre)
	if len(filmIDs) == 0 {
		return out, nil
	}

	rows, err := s.pool.Query(ctx, q, filmIDs)
	if err != nil {
		return nil, fmt.Errorf("list film genres: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var filmID int64
		var g domain.Genre
		if err := rows.Scan(&filmID, &g.ID, &g.Name); err != nil {
			return nil, fmt.Errorf("scan film genre: %w", err)
		}
		out[filmID] = append(out[filmID], g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list film genres: %w", err)
	}
	return out, nil
}

func (s *FilmsStore) DeleteFilm(ctx context.Context, id int64) error {
	ct, err := s.pool.Exec(ctx, `DELETE FROM films WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete film: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
