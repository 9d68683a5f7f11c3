package repository

import (
	"context"
	"database/sql"

	"github.com/movielog/movielog/internal/model"
)

// CartRepo provides CRUD operations for cart line items.  Adding is
// an unconditional append: the same (movie, showtime, date) tuple
// may appear more than once and each row is an independent ticket.
// The Tx variants are used by the purchase flow, which must read
// and drain the cart inside one transaction.
type CartRepo struct{ db *sql.DB }

// NewCartRepo returns a new CartRepo bound to the given database.
func NewCartRepo(db *sql.DB) *CartRepo { return &CartRepo{db: db} }

// Add appends a line item to the user's cart and returns the stored row.
func (r *CartRepo) Add(ctx context.Context, item *model.CartItem) error {
	const q = `INSERT INTO cart_items (user_id, movie_id, title, showtime, date) VALUES (?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, item.UserID, item.MovieID, item.Title, item.Showtime, item.Date)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	item.ID = uint64(id)
	return nil
}

// Remove deletes exactly one line item.  The delete is scoped to the
// owning user so a caller cannot remove another user's row.  When no
// row matched, ErrNotFound is returned.
func (r *CartRepo) Remove(ctx context.Context, itemID, userID uint64) error {
	const q = `DELETE FROM cart_items WHERE id = ? AND user_id = ?`
	res, err := r.db.ExecContext(ctx, q, itemID, userID)
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

// ListByUser returns the user's cart in insertion order.
func (r *CartRepo) ListByUser(ctx context.Context, userID uint64) ([]model.CartItem, error) {
	const q = `SELECT id, user_id, movie_id, title, showtime, date, created_at
	           FROM cart_items WHERE user_id = ? ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanCartItems(rows)
}

// ListByUserTx returns the user's cart in insertion order within an
// existing transaction.  Called under the per-user purchase lock,
// so the rows it returns are exactly the rows the purchase commits.
func (r *CartRepo) ListByUserTx(ctx context.Context, tx *sql.Tx, userID uint64) ([]model.CartItem, error) {
	const q = `SELECT id, user_id, movie_id, title, showtime, date, created_at
	           FROM cart_items WHERE user_id = ? ORDER BY id`
	rows, err := tx.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanCartItems(rows)
}

// DeleteAllByUserTx drains the user's cart within an existing
// transaction and returns the number of rows removed.
func (r *CartRepo) DeleteAllByUserTx(ctx context.Context, tx *sql.Tx, userID uint64) (int64, error) {
	res, err := tx.ExecContext(ctx, `DELETE FROM cart_items WHERE user_id = ?`, userID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func scanCartItems(rows *sql.Rows) ([]model.CartItem, error) {
	items := make([]model.CartItem, 0)
	for rows.Next() {
		var it model.CartItem
		if err := rows.Scan(&it.ID, &it.UserID, &it.MovieID, &it.Title, &it.Showtime, &it.Date, &it.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
