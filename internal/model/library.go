package model

import "time"

// Favorite marks a movie as a favorite of a user.  At most one row
// may exist per (user, movie); a second insert is rejected.
type Favorite struct {
	ID        uint64    // favorite_movies.id
	UserID    uint64    // favorite_movies.user_id
	MovieID   uint64    // favorite_movies.movie_id
	CreatedAt time.Time // favorite_movies.created_at
}

// WatchedMovie marks a movie as seen by a user.  Same uniqueness
// discipline as Favorite: one row per (user, movie), insert-or-reject.
type WatchedMovie struct {
	ID        uint64    // watched_movies.id
	UserID    uint64    // watched_movies.user_id
	MovieID   uint64    // watched_movies.movie_id
	CreatedAt time.Time // watched_movies.created_at
}

// Rating holds a user's 1–5 star rating for a movie.  Unlike
// favorites, ratings have upsert semantics: rating the same movie
// again overwrites the stored value in place.
type Rating struct {
	ID        uint64    // ratings.id
	UserID    uint64    // ratings.user_id
	MovieID   uint64    // ratings.movie_id
	Rating    int       // ratings.rating (1..5)
	CreatedAt time.Time // ratings.created_at
	UpdatedAt time.Time // ratings.updated_at
}
