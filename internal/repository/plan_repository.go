package repository

import (
	"context"
	"database/sql"

	"github.com/movielog/movielog/internal/model"
)

// PlanRepo reads the immutable plan catalog.  Plans are seeded once
// at startup (see database.SeedPlans) and never mutated afterwards, so
// this repository exposes read operations only.
type PlanRepo struct{ db *sql.DB }

// NewPlanRepo returns a new PlanRepo bound to the given database.
func NewPlanRepo(db *sql.DB) *PlanRepo { return &PlanRepo{db: db} }

// List returns every plan in the catalog ordered by id.
func (r *PlanRepo) List(ctx context.Context) ([]model.Plan, error) {
	const q = `SELECT id, name, price, movie_limit FROM plans ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	plans := make([]model.Plan, 0)
	for rows.Next() {
		var p model.Plan
		if err := rows.Scan(&p.ID, &p.Name, &p.Price, &p.MovieLimit); err != nil {
			return nil, err
		}
		plans = append(plans, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return plans, nil
}

// GetByID returns a single plan.  ErrNotFound is returned when the
// id does not exist in the catalog.
func (r *PlanRepo) GetByID(ctx context.Context, id uint64) (model.Plan, error) {
	const q = `SELECT id, name, price, movie_limit FROM plans WHERE id = ? LIMIT 1`
	var p model.Plan
	err := r.db.QueryRowContext(ctx, q, id).Scan(&p.ID, &p.Name, &p.Price, &p.MovieLimit)
	if err == sql.ErrNoRows {
		return model.Plan{}, ErrNotFound
	}
	return p, err
}

// GetByIDTx is GetByID within the scope of an existing transaction.
func (r *PlanRepo) GetByIDTx(ctx context.Context, tx *sql.Tx, id uint64) (model.Plan, error) {
	const q = `SELECT id, name, price, movie_limit FROM plans WHERE id = ? LIMIT 1`
	var p model.Plan
	err := tx.QueryRowContext(ctx, q, id).Scan(&p.ID, &p.Name, &p.Price, &p.MovieLimit)
	if err == sql.ErrNoRows {
		return model.Plan{}, ErrNotFound
	}
	return p, err
}
