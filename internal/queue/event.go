// Package queue defines message payloads exchanged over the message broker.
package queue

// PurchasedTicket is one line of a committed purchase as carried in
// the event payload.
type PurchasedTicket struct {
	MovieID  uint64 `json:"movie_id"`
	Title    string `json:"title"`
	Showtime string `json:"showtime"`
	Date     string `json:"date"`
}

// PurchaseCompletedEvent is published after a purchase transaction
// commits.  It contains enough information for downstream consumers
// to log, notify, or trigger analytics without querying the primary
// database.  Publishing happens strictly after commit: a consumer
// never sees an event for a purchase that rolled back.
type PurchaseCompletedEvent struct {
	UserID      uint64            `json:"user_id"`
	Tickets     []PurchasedTicket `json:"tickets"`
	Count       int               `json:"count"`
	PurchasedAt string            `json:"purchased_at"`
}
