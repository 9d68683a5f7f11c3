package model

import "time"

// Plan is a row of the immutable subscription plan catalog.  Plans
// are seeded once at startup and never modified afterwards.  The
// MovieLimit is the number of tickets a subscriber may purchase per
// monthly window.
//
// Fields:
//  ID         – primary key identifier.
//  Name       – display name of the plan (e.g. Standard, Premium).
//  Price      – monthly price in the store currency.
//  MovieLimit – tickets allowed per subscription month.
type Plan struct {
	ID         uint64  // plans.id
	Name       string  // plans.name
	Price      float64 // plans.price
	MovieLimit int     // plans.movie_limit
}

// Subscription binds a user to a plan for a calendar-month window.
// Rows are append-only: subscribing again creates a new row and the
// resolver picks the newest matching window.  Windows may overlap.
//
// Fields:
//  ID        – primary key identifier; doubles as the insertion
//              sequence number used to break ties between
//              overlapping windows.
//  UserID    – subscribing user.
//  PlanID    – plan being subscribed to.
//  StartDate – first instant of the window (inclusive).
//  EndDate   – last instant of the window (inclusive).
//  CreatedAt – creation timestamp.
type Subscription struct {
	ID        uint64    // subscriptions.id
	UserID    uint64    // subscriptions.user_id
	PlanID    uint64    // subscriptions.plan_id
	StartDate time.Time // subscriptions.start_date
	EndDate   time.Time // subscriptions.end_date
	CreatedAt time.Time // subscriptions.created_at
}
