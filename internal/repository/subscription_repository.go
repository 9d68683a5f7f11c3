package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/movielog/movielog/internal/model"
)

// SubscriptionRepo provides access to the subscriptions table.
// Subscription rows are append-only: subscribing creates a new row
// and nothing ever updates or deletes one.  A user may accumulate
// overlapping windows over time; ActiveSubscription decides which
// one wins at a given instant.
type SubscriptionRepo struct{ db *sql.DB }

// NewSubscriptionRepo returns a new SubscriptionRepo bound to the given database.
func NewSubscriptionRepo(db *sql.DB) *SubscriptionRepo { return &SubscriptionRepo{db: db} }

// ActiveSubscription picks the subscription whose window contains
// now, both bounds inclusive.  When several windows match, the row
// with the highest id wins: ids are auto-increment, so the highest
// id is the most recently created row.  The tie-break is by
// insertion sequence, not by start_date.  Returns nil when no
// window matches.  The input slice may be in any order.
func ActiveSubscription(subs []model.Subscription, now time.Time) *model.Subscription {
	var active *model.Subscription
	for i := range subs {
		s := &subs[i]
		if s.StartDate.After(now) || s.EndDate.Before(now) {
			continue
		}
		if active == nil || s.ID > active.ID {
			active = s
		}
	}
	return active
}

// ListByUser returns all subscription rows of a user ordered by id
// ascending (insertion order).
func (r *SubscriptionRepo) ListByUser(ctx context.Context, userID uint64) ([]model.Subscription, error) {
	const q = `SELECT id, user_id, plan_id, start_date, end_date, created_at
	           FROM subscriptions WHERE user_id = ? ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanSubscriptions(rows)
}

// ActiveForUser resolves the subscription active at now for the
// user, or ErrNoActivePlan when no window contains now.
func (r *SubscriptionRepo) ActiveForUser(ctx context.Context, userID uint64, now time.Time) (model.Subscription, error) {
	subs, err := r.ListByUser(ctx, userID)
	if err != nil {
		return model.Subscription{}, err
	}
	active := ActiveSubscription(subs, now)
	if active == nil {
		return model.Subscription{}, ErrNoActivePlan
	}
	return *active, nil
}

// ActiveForUserTx is ActiveForUser inside an existing transaction.
// The purchase flow uses it so that the resolved window cannot
// change between the quota check and the commit.
func (r *SubscriptionRepo) ActiveForUserTx(ctx context.Context, tx *sql.Tx, userID uint64, now time.Time) (model.Subscription, error) {
	const q = `SELECT id, user_id, plan_id, start_date, end_date, created_at
	           FROM subscriptions WHERE user_id = ? ORDER BY id`
	rows, err := tx.QueryContext(ctx, q, userID)
	if err != nil {
		return model.Subscription{}, err
	}
	defer rows.Close()
	subs, err := scanSubscriptions(rows)
	if err != nil {
		return model.Subscription{}, err
	}
	active := ActiveSubscription(subs, now)
	if active == nil {
		return model.Subscription{}, ErrNoActivePlan
	}
	return *active, nil
}

// Create inserts a new subscription window and returns its id.
func (r *SubscriptionRepo) Create(ctx context.Context, userID, planID uint64, start, end time.Time) (uint64, error) {
	const q = `INSERT INTO subscriptions (user_id, plan_id, start_date, end_date) VALUES (?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, userID, planID, start, end)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

func scanSubscriptions(rows *sql.Rows) ([]model.Subscription, error) {
	subs := make([]model.Subscription, 0)
	for rows.Next() {
		var s model.Subscription
		if err := rows.Scan(&s.ID, &s.UserID, &s.PlanID, &s.StartDate, &s.EndDate, &s.CreatedAt); err != nil {
			return nil, err
		}
		subs = append(subs, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return subs, nil
}
