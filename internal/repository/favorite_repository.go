package repository

import (
	"context"
	"database/sql"
	"strings"
)

// FavoriteRepo manages the favorite_movies table.  One row per
// (user, movie): a second insert for the same pair is rejected with
// ErrAlreadyExists rather than silently ignored, so callers can
// surface the duplicate to the client.
type FavoriteRepo struct{ db *sql.DB }

// NewFavoriteRepo returns a new FavoriteRepo bound to the given database.
func NewFavoriteRepo(db *sql.DB) *FavoriteRepo { return &FavoriteRepo{db: db} }

// Add inserts a favorite for the (user, movie) pair.  The table
// carries a unique key over (user_id, movie_id); a duplicate insert
// surfaces as MySQL error 1062 and is mapped to ErrAlreadyExists.
func (r *FavoriteRepo) Add(ctx context.Context, userID, movieID uint64) error {
	const q = `INSERT INTO favorite_movies (user_id, movie_id) VALUES (?, ?)`
	if _, err := r.db.ExecContext(ctx, q, userID, movieID); err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return ErrAlreadyExists
		}
		return err
	}
	return nil
}

// Remove deletes the favorite for the (user, movie) pair, returning
// ErrNotFound when no row matched.
func (r *FavoriteRepo) Remove(ctx context.Context, userID, movieID uint64) error {
	const q = `DELETE FROM favorite_movies WHERE user_id = ? AND movie_id = ?`
	res, err := r.db.ExecContext(ctx, q, userID, movieID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// ListMovieIDs returns the user's favorite movie ids in insertion order.
func (r *FavoriteRepo) ListMovieIDs(ctx context.Context, userID uint64) ([]uint64, error) {
	const q = `SELECT movie_id FROM favorite_movies WHERE user_id = ? ORDER BY id`
	return queryMovieIDs(ctx, r.db, q, userID)
}

// queryMovieIDs runs a single-column movie_id query and collects the
// results.  Shared by the favorite and watched repositories.
func queryMovieIDs(ctx context.Context, db *sql.DB, q string, userID uint64) ([]uint64, error) {
	rows, err := db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	ids := make([]uint64, 0)
	for rows.Next() {
		var id uint64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return ids, nil
}
