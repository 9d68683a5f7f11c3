package model

import "time"

// CartItem is a pending ticket sitting in a user's cart.  Cart rows
// are ephemeral: they are deleted one at a time by the remove
// endpoint or in bulk by a successful purchase.  Identical
// (movie, showtime, date) tuples may coexist; each row is an
// independent line item.
//
// Fields:
//  ID       – primary key identifier.
//  UserID   – owner of the cart row.
//  MovieID  – external catalog id of the movie.
//  Title    – denormalized movie title snapshot.
//  Showtime – chosen session time (display string, e.g. "19:30").
//  Date     – chosen session date (display string, e.g. "2026-09-12").
//  CreatedAt – creation timestamp.
type CartItem struct {
	ID        uint64    // cart_items.id
	UserID    uint64    // cart_items.user_id
	MovieID   uint64    // cart_items.movie_id
	Title     string    // cart_items.title
	Showtime  string    // cart_items.showtime
	Date      string    // cart_items.date
	CreatedAt time.Time // cart_items.created_at
}

// PurchasedMovie is the permanent record of a bought ticket.  Rows
// are created only by the purchase transaction, as an atomic batch
// copied from the cart, and are never mutated afterwards.  The
// PurchaseDate (not the session date) is what counts against the
// monthly quota window.
//
// Fields:
//  ID           – primary key identifier.
//  UserID       – purchasing user.
//  MovieID      – external catalog id of the movie.
//  Title        – denormalized movie title snapshot.
//  Showtime     – session time carried over from the cart row.
//  Date         – session date carried over from the cart row.
//  PurchaseDate – instant the purchase transaction committed.
type PurchasedMovie struct {
	ID           uint64    // purchased_movies.id
	UserID       uint64    // purchased_movies.user_id
	MovieID      uint64    // purchased_movies.movie_id
	Title        string    // purchased_movies.title
	Showtime     string    // purchased_movies.showtime
	Date         string    // purchased_movies.date
	PurchaseDate time.Time // purchased_movies.purchase_date
}
