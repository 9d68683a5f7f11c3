// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios and map
// each one to a stable HTTP response. The ledger deliberately keeps
// this set closed: every caller-visible failure of a core operation
// is one of these values, never a stringly-typed error.
package repository

import "errors"

// ErrNotFound is returned when a requested row (user, plan, cart
// item, favorite, watched entry or rating) does not exist. Handlers
// should translate this into an HTTP 404 response.
var ErrNotFound = errors.New("not found")

// ErrAlreadyExists is returned when inserting a favorite or watched
// row that already exists for the (user, movie) pair. Handlers
// should translate this into an HTTP 409 response.
var ErrAlreadyExists = errors.New("already exists")

// ErrInvalidRating is returned when a rating outside the inclusive
// [1,5] range is submitted. The check happens before any database
// lookup. Handlers should translate this into an HTTP 400 response.
var ErrInvalidRating = errors.New("rating must be between 1 and 5")

// ErrNoActivePlan is returned when no subscription window of the
// user contains the current instant. Quota queries and purchases
// cannot proceed without an active plan.
var ErrNoActivePlan = errors.New("no active plan")

// ErrQuotaExceeded is returned when the already-purchased count plus
// the pending cart size would exceed the active plan's monthly
// ticket limit. No rows are mutated when this error is returned.
var ErrQuotaExceeded = errors.New("purchase exceeds plan limit")

// ErrEmptyCart is returned when a purchase is attempted with no
// items in the cart.
var ErrEmptyCart = errors.New("cart is empty")
