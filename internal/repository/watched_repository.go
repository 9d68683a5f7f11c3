package repository

import (
	"context"
	"database/sql"
	"strings"
)

// WatchedRepo manages the watched_movies table with the same
// insert-or-reject discipline as FavoriteRepo.
type WatchedRepo struct{ db *sql.DB }

// NewWatchedRepo returns a new WatchedRepo bound to the given database.
func NewWatchedRepo(db *sql.DB) *WatchedRepo { return &WatchedRepo{db: db} }

// Add marks a movie as watched, rejecting duplicates with ErrAlreadyExists.
func (r *WatchedRepo) Add(ctx context.Context, userID, movieID uint64) error {
	const q = `INSERT INTO watched_movies (user_id, movie_id) VALUES (?, ?)`
	if _, err := r.db.ExecContext(ctx, q, userID, movieID); err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return ErrAlreadyExists
		}
		return err
	}
	return nil
}

// Remove un-marks a watched movie, returning ErrNotFound when no row matched.
func (r *WatchedRepo) Remove(ctx context.Context, userID, movieID uint64) error {
	const q = `DELETE FROM watched_movies WHERE user_id = ? AND movie_id = ?`
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

// ListMovieIDs returns the user's watched movie ids in insertion order.
func (r *WatchedRepo) ListMovieIDs(ctx context.Context, userID uint64) ([]uint64, error) {
	const q = `SELECT movie_id FROM watched_movies WHERE user_id = ? ORDER BY id`
	return queryMovieIDs(ctx, r.db, q, userID)
}
