// Package sqlite implements the reporting queries over the orders
// tables created by the order repository. It owns no schema of its own.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ovenline/pizza-storefront/internal/report"
)

// Repository is the SQLite implementation of report.Repository.
type Repository struct {
	db *sql.DB
}

var _ report.Repository = (*Repository)(nil)

func New(db *sql.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) RevenueByDay(ctx context.Context, days int) ([]report.DailyRevenue, error) {
	// created_at is RFC3339 TEXT, so substr(created_at, 1, 10) is the date.
	const q = `
		SELECT substr(created_at, 1, 10) AS day,
		       COUNT(*)                  AS orders,
		       SUM(total)                AS revenue
		FROM   orders
		WHERE  status != 'CANCELLED'
		  AND  created_at >= datetime('now', ?)
		GROUP  BY day
		ORDER  BY day DESC`

	rows, err := r.db.QueryContext(ctx, q, fmt.Sprintf("-%d days", days))
	if err != nil {
		return nil, fmt.Errorf("sqlite: revenue by day: %w", err)
	}
	defer rows.Close()

	var out []report.DailyRevenue
	for rows.Next() {
		var d report.DailyRevenue
		if err := rows.Scan(&d.Day, &d.Orders, &d.Revenue); err != nil {
			return nil, fmt.Errorf("sqlite: scan revenue row: %w", err)
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: revenue by day: %w", err)
	}
	return out, nil
}

func (r *Repository) OrdersByStatus(ctx context.Context) ([]report.StatusCount, error) {
	const q = `
		SELECT status, COUNT(*)
		FROM   orders
		GROUP  BY status
		ORDER  BY COUNT(*) DESC`

	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("sqlite: orders by status: %w", err)
	}
	defer rows.Close()

	var out []report.StatusCount
	for rows.Next() {
		var s report.StatusCount
		if err := rows.Scan(&s.Status, &s.Count); err != nil {
			return nil, fmt.Errorf("sqlite: scan status row: %w", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: orders by status: %w", err)
	}
	return out, nil
}

func (r *Repository) TopPizzas(ctx context.Context, limit int) ([]report.TopPizza, error) {
	const q = `
		SELECT i.product_id,
		       i.name,
		       SUM(i.quantity)           AS quantity,
		       SUM(i.price * i.quantity) AS revenue
		FROM   order_items i
		JOIN   orders o ON o.id = i.order_id
		WHERE  o.status != 'CANCELLED'
		GROUP  BY i.product_id, i.name
		ORDER  BY quantity DESC
		LIMIT  ?`

	rows, err := r.db.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, fmt.Errorf("sqlite: top pizzas: %w", err)
	}
	defer rows.Close()

	var out []report.TopPizza
	for rows.Next() {
		var t report.TopPizza
		if err := rows.Scan(&t.ProductID, &t.Name, &t.Quantity, &t.Revenue); err != nil {
			return nil, fmt.Errorf("sqlite: scan top pizza row: %w", err)
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: top pizzas: %w", err)
	}
	return out, nil
}
