package repository

import (
	"context"
	"database/sql"
)

// RatingRepo manages the ratings table.  Ratings have upsert
// semantics: at most one row exists per (user, movie) and rating
// the same movie again overwrites the stored value.
type RatingRepo struct{ db *sql.DB }

// NewRatingRepo returns a new RatingRepo bound to the given database.
func NewRatingRepo(db *sql.DB) *RatingRepo { return &RatingRepo{db: db} }

// AddOrUpdate validates the rating range before touching the
// database, then inserts or updates the (user, movie) row.  The
// range check must come first so an invalid value never reaches a
// lookup, even for unknown users or movies.
func (r *RatingRepo) AddOrUpdate(ctx context.Context, userID, movieID uint64, rating int) error {
	if rating < 1 || rating > 5 {
		return ErrInvalidRating
	}
	var id uint64
	err := r.db.QueryRowContext(ctx,
		`SELECT id FROM ratings WHERE user_id = ? AND movie_id = ? LIMIT 1`,
		userID, movieID).Scan(&id)
	switch {
	case err == sql.ErrNoRows:
		_, err = r.db.ExecContext(ctx,
			`INSERT INTO ratings (user_id, movie_id, rating) VALUES (?, ?, ?)`,
			userID, movieID, rating)
		return err
	case err != nil:
		return err
	default:
		_, err = r.db.ExecContext(ctx,
			`UPDATE ratings SET rating = ? WHERE id = ?`, rating, id)
		return err
	}
}

// Get returns the user's rating for a movie, or ErrNotFound when
// the pair has not been rated.
func (r *RatingRepo) Get(ctx context.Context, userID, movieID uint64) (int, error) {
	var rating int
	err := r.db.QueryRowContext(ctx,
		`SELECT rating FROM ratings WHERE user_id = ? AND movie_id = ? LIMIT 1`,
		userID, movieID).Scan(&rating)
	if err == sql.ErrNoRows {
		return 0, ErrNotFound
	}
	return rating, err
}
