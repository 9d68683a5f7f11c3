package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/movielog/movielog/internal/model"
)

// PurchaseRepo provides access to the purchased_movies ledger.
// Rows are written only by the purchase transaction and never
// updated or deleted afterwards: this table is the permanent record
// the rest of the system is bookkeeping for.
type PurchaseRepo struct{ db *sql.DB }

// NewPurchaseRepo returns a new PurchaseRepo bound to the given database.
func NewPurchaseRepo(db *sql.DB) *PurchaseRepo { return &PurchaseRepo{db: db} }

// DB exposes the underlying handle so the purchase handler can open
// the transaction that spans this repo and CartRepo.
func (r *PurchaseRepo) DB() *sql.DB { return r.db }

// CheckQuota validates a pending cart against the active plan's
// limit.  The sum check runs first: an oversized batch is rejected
// as a whole even when part of it would fit.  Both outcomes are
// sentinels so callers map them with errors.Is like every other
// error kind.
func CheckQuota(purchased, cartCount, movieLimit int) error {
	if purchased+cartCount > movieLimit {
		return ErrQuotaExceeded
	}
	if cartCount == 0 {
		return ErrEmptyCart
	}
	return nil
}

// LockUserTx takes a row lock on the user record for the duration
// of the surrounding transaction.  The purchase flow uses this as a
// per-user mutual exclusion section: two purchases for the same
// user serialize here, while purchases for different users proceed
// independently.  Returns ErrNotFound for an unknown user.
func (r *PurchaseRepo) LockUserTx(ctx context.Context, tx *sql.Tx, userID uint64) error {
	var id uint64
	err := tx.QueryRowContext(ctx, `SELECT id FROM users WHERE id = ? FOR UPDATE`, userID).Scan(&id)
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	return err
}

// CountInWindowTx counts the user's purchases whose purchase_date
// lies inside [start, end], both bounds inclusive.  This is the
// "already consumed" side of the quota check and must run inside
// the purchase transaction.
func (r *PurchaseRepo) CountInWindowTx(ctx context.Context, tx *sql.Tx, userID uint64, start, end time.Time) (int, error) {
	const q = `SELECT COUNT(*) FROM purchased_movies
	           WHERE user_id = ? AND purchase_date >= ? AND purchase_date <= ?`
	var n int
	err := tx.QueryRowContext(ctx, q, userID, start, end).Scan(&n)
	return n, err
}

// CountInWindow is CountInWindowTx outside a transaction, used by
// the display-only limit-usage endpoint.  A dirty read racing a
// concurrent commit is acceptable there.
func (r *PurchaseRepo) CountInWindow(ctx context.Context, userID uint64, start, end time.Time) (int, error) {
	const q = `SELECT COUNT(*) FROM purchased_movies
	           WHERE user_id = ? AND purchase_date >= ? AND purchase_date <= ?`
	var n int
	err := r.db.QueryRowContext(ctx, q, userID, start, end).Scan(&n)
	return n, err
}

// CreateBulkTx inserts one purchased_movies row per cart item in a
// single statement, all stamped with the same purchase date.
// Passing an empty slice has no effect and returns nil.
func (r *PurchaseRepo) CreateBulkTx(ctx context.Context, tx *sql.Tx, items []model.CartItem, purchasedAt time.Time) error {
	if len(items) == 0 {
		return nil
	}
	var sb strings.Builder
	sb.WriteString(`INSERT INTO purchased_movies (user_id, movie_id, title, showtime, date, purchase_date) VALUES `)
	args := make([]interface{}, 0, len(items)*6)
	for i, it := range items {
		if i > 0 {
			sb.WriteString(",")
		}
		sb.WriteString("(?, ?, ?, ?, ?, ?)")
		args = append(args, it.UserID, it.MovieID, it.Title, it.Showtime, it.Date, purchasedAt)
	}
	_, err := tx.ExecContext(ctx, sb.String(), args...)
	return err
}

// ListByUser returns the user's full purchase history, newest first.
func (r *PurchaseRepo) ListByUser(ctx context.Context, userID uint64) ([]model.PurchasedMovie, error) {
	const q = `SELECT id, user_id, movie_id, title, showtime, date, purchase_date
	           FROM purchased_movies WHERE user_id = ? ORDER BY id DESC`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.PurchasedMovie, 0)
	for rows.Next() {
		var p model.PurchasedMovie
		if err := rows.Scan(&p.ID, &p.UserID, &p.MovieID, &p.Title, &p.Showtime, &p.Date, &p.PurchaseDate); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
